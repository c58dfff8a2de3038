// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package jinrishici provides a client for the Jinrishici (今日诗词)
// poem-of-the-day API.
package jinrishici

import (
	"context"
	"errors"
	"net/http"

	"go.astrophena.name/getup/internal/request"
)

const defaultAPI = "https://v2.jinrishici.com/one.json"

// ErrMalformed is returned when the API response doesn't contain a usable
// poem.
var ErrMalformed = errors.New("jinrishici: malformed response")

// Poem is a complete poem with its source information.
type Poem struct {
	Title   string
	Dynasty string
	Author  string
	// Lines are the poem's lines in reading order.
	Lines []string
}

// Client is a Jinrishici API client. The zero value is usable.
type Client struct {
	// APIURL overrides the API endpoint. Used in tests.
	APIURL string
	// HTTPClient is an optional custom HTTP client object to use for requests.
	// If not provided, request.DefaultClient will be used.
	HTTPClient *http.Client
}

type response struct {
	Data struct {
		Origin struct {
			Title   string   `json:"title"`
			Dynasty string   `json:"dynasty"`
			Author  string   `json:"author"`
			Content []string `json:"content"`
		} `json:"origin"`
	} `json:"data"`
}

// Fetch retrieves the poem of the day.
func (c *Client) Fetch(ctx context.Context) (*Poem, error) {
	url := c.APIURL
	if url == "" {
		url = defaultAPI
	}
	resp, err := request.Make[response](ctx, request.Params{
		Method:     http.MethodGet,
		URL:        url,
		HTTPClient: c.HTTPClient,
	})
	if err != nil {
		return nil, err
	}

	origin := resp.Data.Origin
	if origin.Title == "" || origin.Author == "" || len(origin.Content) == 0 {
		return nil, ErrMalformed
	}

	return &Poem{
		Title:   origin.Title,
		Dynasty: origin.Dynasty,
		Author:  origin.Author,
		Lines:   origin.Content,
	}, nil
}
