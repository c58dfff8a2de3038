// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package baike provides a client for the Baidu Baike "events on history"
// API.
//
// The API returns a whole month of events in one JSON document, keyed first
// by the zero-padded month and then by month+day, e.g. "01" -> "0106".
package baike

import (
	"context"
	"fmt"
	"net/http"

	"go.astrophena.name/getup/internal/request"
)

const defaultAPI = "https://baike.baidu.com/cms/home/eventsOnHistory"

// Event is a single historical event as reported by the API. Year is a
// free-form string like "1999年" or "公元前200年".
type Event struct {
	Year  string `json:"year"`
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

// Client is a Baidu Baike API client. The zero value is usable.
type Client struct {
	// APIURL overrides the API endpoint. Used in tests.
	APIURL string
	// HTTPClient is an optional custom HTTP client object to use for requests.
	// If not provided, request.DefaultClient will be used.
	HTTPClient *http.Client
}

// OnThisDay retrieves historical events for the given month and day.
func (c *Client) OnThisDay(ctx context.Context, month, day int) ([]Event, error) {
	api := c.APIURL
	if api == "" {
		api = defaultAPI
	}
	resp, err := request.Make[map[string]map[string][]Event](ctx, request.Params{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/%02d.json", api, month),
		Headers: map[string]string{
			// The API refuses requests with non-browser user agents.
			"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
			"Accept":     "application/json",
		},
		HTTPClient: c.HTTPClient,
	})
	if err != nil {
		return nil, err
	}
	return resp[fmt.Sprintf("%02d", month)][fmt.Sprintf("%02d%02d", month, day)], nil
}
