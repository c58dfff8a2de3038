// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package history

import (
	"context"

	"go.astrophena.name/getup/internal/api/baike"
	"go.astrophena.name/getup/internal/api/wikimedia"
)

// Wikimedia adapts the Wikimedia "on this day" feed into a [Provider].
type Wikimedia struct {
	Client *wikimedia.Client
}

// Name implements the [Provider] interface.
func (w *Wikimedia) Name() string { return "wikimedia" }

// Events implements the [Provider] interface.
func (w *Wikimedia) Events(ctx context.Context, month, day int) ([]Event, error) {
	raw, err := w.Client.OnThisDay(ctx, month, day)
	if err != nil {
		return nil, err
	}
	var events []Event
	for _, e := range raw {
		if e.Year == 0 || e.Text == "" {
			continue
		}
		events = append(events, Event{
			Year: e.Year,
			Text: e.Text,
			URL:  e.URL(),
		})
	}
	return events, nil
}

// Baike adapts the Baidu Baike events API into a [Provider]. Year strings
// are resolved into signed integers here; entries with unparsable years are
// dropped.
type Baike struct {
	Client *baike.Client
}

// Name implements the [Provider] interface.
func (b *Baike) Name() string { return "baike" }

// Events implements the [Provider] interface.
func (b *Baike) Events(ctx context.Context, month, day int) ([]Event, error) {
	raw, err := b.Client.OnThisDay(ctx, month, day)
	if err != nil {
		return nil, err
	}
	var events []Event
	for _, e := range raw {
		year, ok := ParseYear(e.Year)
		if !ok {
			continue
		}
		text := e.Title
		if text == "" {
			text = e.Desc
		}
		text = StripTags(text)
		if text == "" {
			continue
		}
		events = append(events, Event{Year: year, Text: text})
	}
	return events, nil
}
