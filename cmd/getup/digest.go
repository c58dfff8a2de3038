// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"go.astrophena.name/getup/internal/activity"
	"go.astrophena.name/getup/internal/api/baike"
	"go.astrophena.name/getup/internal/api/jinrishici"
	"go.astrophena.name/getup/internal/api/wikimedia"
	"go.astrophena.name/getup/internal/history"
	"go.astrophena.name/getup/internal/reads"
	"go.astrophena.name/getup/internal/running"
	"go.astrophena.name/getup/internal/streetview"
)

//go:embed message.tmpl
var messageTemplate string

var messageTmpl = template.Must(template.New("message").Parse(messageTemplate))

// Wake-up hours considered early. Extended to 9 after a few missed
// mornings.
const (
	earliestHour = 3
	latestHour   = 9
)

// digest holds the rendered sections of one morning message.
type digest struct {
	WakeTime     string
	DayOfYear    int
	YearProgress string
	Activity     string
	Running      string
	History      string
	StreetView   string
	Reads        string
	Poem         string

	// GotUpEarly decides dispatch; it's not rendered.
	GotUpEarly bool
}

func (d *digest) render() (string, error) {
	var sb strings.Builder
	if err := messageTmpl.Execute(&sb, d); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// assemble collects every section of the digest. Each section is
// best-effort: a failing source leaves its section empty (or on a
// fallback) and never aborts the run.
func (a *app) assemble(ctx context.Context, now time.Time) *digest {
	local := a.resolver.In(now)

	d := &digest{
		WakeTime:     local.Format(time.DateTime),
		DayOfYear:    a.resolver.DayOfYear(now),
		YearProgress: a.resolver.Progress(now),
		GotUpEarly:   local.Hour() >= earliestHour && local.Hour() <= latestHour,
	}

	d.Poem = a.poem(ctx)

	merger := &activity.Merger{
		Client:   a.gh,
		Username: a.cfg.Username,
		Window:   a.resolver.Yesterday(now),
		Date:     a.resolver.YesterdayDate(now),
		Slog:     a.slog,
	}
	d.Activity = merger.Block(ctx)

	store := &running.Store{SnapshotURL: a.cfg.SnapshotURL, HTTPClient: a.httpc}
	if stats, err := store.Stats(ctx, a.resolver, now); err != nil {
		a.slog.Warn("reading running log failed", "error", err)
	} else {
		d.Running = stats.Block()
	}

	month, day := a.resolver.MonthDay(now)
	selector := &history.Selector{
		Providers: []history.Provider{
			&history.Wikimedia{Client: &wikimedia.Client{HTTPClient: a.httpc}},
			&history.Baike{Client: &baike.Client{HTTPClient: a.httpc}},
		},
		BirthYear: a.cfg.BirthYear,
		Filler:    a.cfg.FillerFacts,
		Slog:      a.slog,
	}
	d.History = selector.Block(ctx, month, day, local.Year())

	d.StreetView = streetview.Block(a.cfg.Sites, now, a.resolver.Zone())

	if a.cfg.ReadsFeed != "" {
		fetcher := &reads.Fetcher{FeedURL: a.cfg.ReadsFeed, HTTPClient: a.httpc}
		if headlines, err := fetcher.Fetch(ctx); err != nil {
			a.slog.Warn("fetching morning reads failed", "feed", a.cfg.ReadsFeed, "error", err)
		} else {
			d.Reads = reads.Block(headlines)
		}
	}

	return d
}

// poem fetches the poem of the day, falling back to the configured poem
// when the API is down or returns something unusable.
func (a *app) poem(ctx context.Context) string {
	c := &jinrishici.Client{HTTPClient: a.httpc}
	p, err := c.Fetch(ctx)
	if err != nil {
		a.slog.Warn("fetching poem failed", "error", err)
		return a.cfg.PoemFallback
	}
	return fmt.Sprintf("《%s》  \n%s  \n\n—— %s·%s",
		p.Title, strings.Join(p.Lines, "  \n"), p.Dynasty, p.Author)
}
