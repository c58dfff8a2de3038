// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package wikimedia provides a client for the Wikimedia "on this day" feed
// API.
package wikimedia

import (
	"context"
	"fmt"
	"net/http"

	"go.astrophena.name/getup/internal/request"
	"go.astrophena.name/getup/internal/version"
)

const defaultAPI = "https://api.wikimedia.org/feed/v1/wikipedia/zh/onthisday/events"

// Event is a single historical event as reported by the feed.
type Event struct {
	Year  int    `json:"year"`
	Text  string `json:"text"`
	Pages []Page `json:"pages"`
}

// Page is a wiki page related to an event.
type Page struct {
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// URL returns the desktop page URL of the event's first related page, or an
// empty string when the event has none.
func (e Event) URL() string {
	if len(e.Pages) == 0 {
		return ""
	}
	return e.Pages[0].ContentURLs.Desktop.Page
}

// Client is a Wikimedia feed API client. The zero value is usable.
type Client struct {
	// APIURL overrides the API endpoint. Used in tests.
	APIURL string
	// HTTPClient is an optional custom HTTP client object to use for requests.
	// If not provided, request.DefaultClient will be used.
	HTTPClient *http.Client
}

type response struct {
	Events []Event `json:"events"`
}

// OnThisDay retrieves historical events for the given month and day.
func (c *Client) OnThisDay(ctx context.Context, month, day int) ([]Event, error) {
	api := c.APIURL
	if api == "" {
		api = defaultAPI
	}
	resp, err := request.Make[response](ctx, request.Params{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/%02d/%02d", api, month, day),
		Headers: map[string]string{
			"User-Agent":      version.UserAgent(),
			"Accept":          "application/json",
			"Accept-Language": "zh-CN,zh;q=0.9,en;q=0.8",
		},
		HTTPClient: c.HTTPClient,
	})
	if err != nil {
		return nil, err
	}
	return resp.Events, nil
}
