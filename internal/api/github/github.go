// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package github provides a client for the subset of the GitHub API used by
// getup: issue search, the public user event stream, and issues with their
// comment threads.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.astrophena.name/getup/internal/request"
)

const defaultAPI = "https://api.github.com"

// Client represents a GitHub API client.
type Client struct {
	// Token is the GitHub access token used for authentication. Optional;
	// unauthenticated requests are subject to much stricter rate limits.
	Token string
	// APIURL overrides the API endpoint. Used in tests.
	APIURL string
	// HTTPClient is an optional custom HTTP client object to use for requests.
	// If not provided, request.DefaultClient will be used.
	HTTPClient *http.Client
	// Scrubber is an optional strings.Replacer that scrubs unwanted data from
	// error messages.
	Scrubber *strings.Replacer
}

func (c *Client) api() string {
	if c.APIURL != "" {
		return c.APIURL
	}
	return defaultAPI
}

func makeRequest[Response any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (Response, error) {
	u := c.api() + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	rp := request.Params{
		Method: method,
		URL:    u,
		Headers: map[string]string{
			"Accept":               "application/vnd.github+json",
			"X-GitHub-Api-Version": "2022-11-28",
		},
		Body:       body,
		HTTPClient: c.HTTPClient,
		Scrubber:   c.Scrubber,
	}
	if c.Token != "" {
		rp.Headers["Authorization"] = "Bearer " + c.Token
	}
	return request.Make[Response](ctx, rp)
}

// User is a GitHub account.
type User struct {
	Login string `json:"login"`
}

// SearchItem is a single issue or pull request returned by issue search.
type SearchItem struct {
	User          User   `json:"user"`
	Title         string `json:"title"`
	HTMLURL       string `json:"html_url"`
	RepositoryURL string `json:"repository_url"`
}

// RepoName extracts the "owner/repo" name from the item's repository API
// URL.
func (si SearchItem) RepoName() string {
	parts := strings.Split(si.RepositoryURL, "/")
	if len(parts) < 2 {
		return si.RepositoryURL
	}
	return strings.Join(parts[len(parts)-2:], "/")
}

type searchResponse struct {
	Items []SearchItem `json:"items"`
}

// SearchIssues performs an issue search with the given query, returning a
// single page of up to perPage items.
func (c *Client) SearchIssues(ctx context.Context, query string, perPage int) ([]SearchItem, error) {
	q := url.Values{
		"q":        {query},
		"per_page": {fmt.Sprint(perPage)},
	}
	resp, err := makeRequest[searchResponse](ctx, c, http.MethodGet, "/search/issues", q, nil)
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Event is a single entry of a user's public event stream.
type Event struct {
	Type      string    `json:"type"`
	Public    bool      `json:"public"`
	CreatedAt time.Time `json:"created_at"`
	Repo      struct {
		Name string `json:"name"`
	} `json:"repo"`
	Payload Payload `json:"payload"`
}

// Payload carries the event-type-specific parts of an event that getup
// cares about.
type Payload struct {
	Action      string `json:"action"`
	PullRequest *Ref   `json:"pull_request"`
	Issue       *Ref   `json:"issue"`
}

// Ref points to an issue or a pull request.
type Ref struct {
	Title   string `json:"title"`
	HTMLURL string `json:"html_url"`
}

// ListEvents returns one page of the user's public event stream, newest
// first.
func (c *Client) ListEvents(ctx context.Context, user string, page, perPage int) ([]Event, error) {
	q := url.Values{
		"page":     {fmt.Sprint(page)},
		"per_page": {fmt.Sprint(perPage)},
	}
	return makeRequest[[]Event](ctx, c, http.MethodGet, "/users/"+user+"/events", q, nil)
}

// Issue is a GitHub issue.
type Issue struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
}

// FindOpenIssue returns the first open issue in repo with the exact title,
// or (nil, nil) when there is none.
func (c *Client) FindOpenIssue(ctx context.Context, repo, title string) (*Issue, error) {
	q := url.Values{
		"state":    {"open"},
		"per_page": {"100"},
	}
	issues, err := makeRequest[[]Issue](ctx, c, http.MethodGet, "/repos/"+repo+"/issues", q, nil)
	if err != nil {
		return nil, err
	}
	for _, issue := range issues {
		if issue.Title == title {
			return &issue, nil
		}
	}
	return nil, nil
}

// CreateIssue creates an issue in repo.
func (c *Client) CreateIssue(ctx context.Context, repo, title, body string) (*Issue, error) {
	req := struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}{title, body}
	return makeRequest[*Issue](ctx, c, http.MethodPost, "/repos/"+repo+"/issues", nil, req)
}

// Comment is a single comment of an issue's comment thread.
type Comment struct {
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// ListComments returns all comments of the issue, oldest first, following
// pagination.
func (c *Client) ListComments(ctx context.Context, repo string, number int) ([]Comment, error) {
	const perPage = 100

	var all []Comment
	for page := 1; ; page++ {
		q := url.Values{
			"page":     {fmt.Sprint(page)},
			"per_page": {fmt.Sprint(perPage)},
		}
		comments, err := makeRequest[[]Comment](ctx, c, http.MethodGet, fmt.Sprintf("/repos/%s/issues/%d/comments", repo, number), q, nil)
		if err != nil {
			return nil, err
		}
		all = append(all, comments...)
		if len(comments) < perPage {
			break
		}
	}
	return all, nil
}

// CreateComment appends a comment to the issue.
func (c *Client) CreateComment(ctx context.Context, repo string, number int, body string) error {
	req := struct {
		Body string `json:"body"`
	}{body}
	_, err := makeRequest[request.IgnoreResponse](ctx, c, http.MethodPost, fmt.Sprintf("/repos/%s/issues/%d/comments", repo, number), nil, req)
	return err
}
