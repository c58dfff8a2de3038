// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package reads fetches the morning-reads section: the newest headlines of
// a single RSS or Atom feed.
package reads

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.astrophena.name/getup/internal/version"

	"github.com/mmcdole/gofeed"
)

// DefaultLimit is the number of headlines included in the digest.
const DefaultLimit = 3

// Headline is a single feed entry.
type Headline struct {
	Title string
	URL   string
}

// Fetcher retrieves headlines from one feed.
type Fetcher struct {
	// FeedURL is the feed to fetch.
	FeedURL string
	// HTTPClient is an optional custom HTTP client object to use for requests.
	// If not provided, http.DefaultClient will be used.
	HTTPClient *http.Client
	// Limit is the maximum number of headlines. Defaults to DefaultLimit.
	Limit int

	fp *gofeed.Parser
}

func (f *Fetcher) limit() int {
	if f.Limit > 0 {
		return f.Limit
	}
	return DefaultLimit
}

// Fetch returns the newest headlines of the feed, newest first.
func (f *Fetcher) Fetch(ctx context.Context) ([]Headline, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.FeedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", version.UserAgent())

	httpc := f.HTTPClient
	if httpc == nil {
		httpc = http.DefaultClient
	}
	res, err := httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %q: want 200, got %d", f.FeedURL, res.StatusCode)
	}

	if f.fp == nil {
		f.fp = gofeed.NewParser()
	}
	feed, err := f.fp.Parse(res.Body)
	if err != nil {
		return nil, err
	}

	var headlines []Headline
	for _, item := range feed.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		headlines = append(headlines, Headline{Title: title, URL: item.Link})
		if len(headlines) == f.limit() {
			break
		}
	}
	return headlines, nil
}

// Block returns the rendered digest section, or an empty string when the
// feed has no usable entries.
func Block(headlines []Headline) string {
	if len(headlines) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("晨读：\n")
	for _, h := range headlines {
		if h.URL != "" {
			fmt.Fprintf(&sb, "\n• [%s](%s)  ", h.Title, h.URL)
		} else {
			fmt.Fprintf(&sb, "\n• %s  ", h.Title)
		}
	}
	return sb.String()
}
