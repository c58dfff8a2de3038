// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package history selects "on this day" historical events from a chain of
// providers tried in order, normalizes them into a common shape, and
// renders the digest section with an age annotation for each event.
//
// Every external call is guarded: when all providers fail or return nothing
// usable, the selector falls back to a fixed pool of filler facts and never
// returns an error.
package history

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/siongui/gojianfan"
)

// DefaultLimit is the number of events selected when no limit is
// configured.
const DefaultLimit = 3

// Event is a normalized historical event. Year is negative for BCE years.
type Event struct {
	Year int
	Text string
	URL  string
}

// Provider returns historical events for a month and day. Implementations
// normalize their provider-specific payloads into [Event]; entries with
// unparsable years are dropped, not reported as errors.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string
	// Events returns events for the given month and day.
	Events(ctx context.Context, month, day int) ([]Event, error)
}

// Selector picks a few historical events for today. Providers are tried in
// order until one returns a non-empty result.
type Selector struct {
	// Providers is the ordered fallback chain.
	Providers []Provider
	// BirthYear bounds the preferred event years and anchors the age
	// annotation.
	BirthYear int
	// Limit is the maximum number of selected events. Defaults to
	// DefaultLimit.
	Limit int
	// Filler is the pool of generic statements used when no provider
	// yields a usable event.
	Filler []string
	// Slog is the logger for provider failures. Defaults to slog.Default.
	Slog *slog.Logger
}

func (s *Selector) limit() int {
	if s.Limit > 0 {
		return s.Limit
	}
	return DefaultLimit
}

func (s *Selector) slog() *slog.Logger {
	if s.Slog != nil {
		return s.Slog
	}
	return slog.Default()
}

// Block returns the rendered digest section for the given calendar day.
// It never fails; the worst case is a filler fact or an empty string when
// no filler pool is configured.
func (s *Selector) Block(ctx context.Context, month, day, currentYear int) string {
	events := s.collect(ctx, month, day)
	if len(events) == 0 {
		return s.filler()
	}

	// Prefer events within the lifetime of the digest's reader; relax to
	// all CE events when that filter empties the set.
	filtered := filterYears(events, s.BirthYear, currentYear)
	if len(filtered) == 0 {
		filtered = slices.DeleteFunc(slices.Clone(events), func(e Event) bool {
			return e.Year <= 0
		})
	}
	if len(filtered) == 0 {
		return s.filler()
	}

	selected := sample(filtered, s.limit())
	slices.SortStableFunc(selected, func(a, b Event) int {
		return b.Year - a.Year
	})

	var lines []string
	for _, e := range selected {
		lines = append(lines, s.renderLine(e))
	}
	return "历史上的今天：\n\n" + strings.Join(lines, "\n")
}

// collect walks the provider chain and returns the first non-empty result.
func (s *Selector) collect(ctx context.Context, month, day int) []Event {
	for _, p := range s.Providers {
		events, err := p.Events(ctx, month, day)
		if err != nil {
			s.slog().Warn("history provider failed", "provider", p.Name(), "error", err)
			continue
		}
		if len(events) == 0 {
			s.slog().Debug("history provider returned no events", "provider", p.Name())
			continue
		}
		return events
	}
	return nil
}

func (s *Selector) filler() string {
	if len(s.Filler) == 0 {
		return ""
	}
	return s.Filler[rand.IntN(len(s.Filler))]
}

func filterYears(events []Event, from, to int) []Event {
	var out []Event
	for _, e := range events {
		if e.Year >= from && e.Year <= to {
			out = append(out, e)
		}
	}
	return out
}

// sample picks min(n, len(events)) events uniformly at random without
// replacement. It deliberately uses the shared unseeded generator, so
// repeated runs on the same day pick different events.
func sample(events []Event, n int) []Event {
	n = min(n, len(events))
	out := make([]Event, 0, n)
	for _, i := range rand.Perm(len(events))[:n] {
		out = append(out, events[i])
	}
	return out
}

func (s *Selector) renderLine(e Event) string {
	var age string
	if e.Year >= s.BirthYear {
		age = fmt.Sprintf("（那年我 %d 岁）", e.Year-s.BirthYear)
	} else {
		age = fmt.Sprintf("（我出生前 %d 年）", s.BirthYear-e.Year)
	}

	text := NormalizeText(e.Text)

	// Trailing double space keeps the Markdown line break in DingTalk.
	if e.URL != "" {
		return fmt.Sprintf("• **%d年**：[%s](%s) %s  ", e.Year, text, e.URL, age)
	}
	return fmt.Sprintf("• **%d年**：%s %s  ", e.Year, text, age)
}

// NormalizeText collapses embedded newlines to spaces and converts
// traditional Chinese text to simplified.
func NormalizeText(text string) string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
	return gojianfan.T2S(text)
}

var (
	tagRe = regexp.MustCompile(`<[^>]+>`)
	bceRe = regexp.MustCompile(`公元前(\d+)`)
	numRe = regexp.MustCompile(`(\d+)`)
)

// StripTags removes HTML markup from text.
func StripTags(text string) string {
	return tagRe.ReplaceAllString(text, "")
}

// ParseYear resolves a provider year string like "1999年" or "公元前200年"
// into a signed integer, BCE years negated. It reports false for strings
// with no parsable year.
func ParseYear(s string) (int, bool) {
	if m := bceRe.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		return -n, true
	}
	if m := numRe.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
