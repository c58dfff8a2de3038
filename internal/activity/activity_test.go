// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"go.astrophena.name/getup/internal/api/github"
	"go.astrophena.name/getup/internal/dates"
	"go.astrophena.name/getup/internal/testutil"
)

var testWindow = dates.Window{
	Start: time.Date(2025, time.June, 13, 16, 0, 0, 0, time.UTC),
	End:   time.Date(2025, time.June, 14, 15, 59, 59, 999999999, time.UTC),
}

const inWindow = "2025-06-14T03:00:00Z"

// testServer fakes the GitHub API. Search results are keyed by the is:pr /
// is:issue query prefix; event pages by page number.
type testServer struct {
	prs, issues []github.SearchItem
	events      map[int][]github.Event

	requestedPages []int
}

func (ts *testServer) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /search/issues", func(w http.ResponseWriter, r *http.Request) {
		items := ts.issues
		if strings.Contains(r.URL.Query().Get("q"), "is:pr") {
			items = ts.prs
		}
		writeJSON(t, w, map[string]any{"items": items})
	})
	mux.HandleFunc("GET /users/{user}/events", func(w http.ResponseWriter, r *http.Request) {
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil {
			t.Errorf("bad page parameter: %v", err)
		}
		ts.requestedPages = append(ts.requestedPages, page)
		events := ts.events[page]
		if events == nil {
			events = []github.Event{}
		}
		writeJSON(t, w, events)
	})
	return mux
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Error(err)
	}
}

func testMerger(t *testing.T, ts *testServer) *Merger {
	srv := httptest.NewServer(ts.handler(t))
	t.Cleanup(srv.Close)
	return &Merger{
		Client:   &github.Client{APIURL: srv.URL},
		Username: "octocat",
		Window:   testWindow,
		Date:     "2025-06-14",
	}
}

func searchItem(title string) github.SearchItem {
	return github.SearchItem{
		User:          github.User{Login: "octocat"},
		Title:         title,
		HTMLURL:       "https://github.com/octocat/hello/pull/1",
		RepositoryURL: "https://api.github.com/repos/octocat/hello",
	}
}

func watchEvent(createdAt, repo string) github.Event {
	var e github.Event
	e.Type = "WatchEvent"
	e.Public = true
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	e.Repo.Name = repo
	e.Payload.Action = "started"
	return e
}

func TestSearchFiltersByAuthor(t *testing.T) {
	t.Parallel()

	other := searchItem("not mine")
	other.User.Login = "somebodyelse"

	m := testMerger(t, &testServer{
		prs:    []github.SearchItem{searchItem("my PR"), other},
		issues: []github.SearchItem{searchItem("my issue")},
	})
	lines := m.collect(context.Background())

	testutil.AssertEqual(t, lines, []string{
		"创建了 PR: [my PR](https://github.com/octocat/hello/pull/1) (octocat/hello)",
		"创建了 Issue: [my issue](https://github.com/octocat/hello/pull/1) (octocat/hello)",
	})
}

func TestNoDuplicateRenderedText(t *testing.T) {
	t.Parallel()

	m := testMerger(t, &testServer{
		events: map[int][]github.Event{
			1: {
				watchEvent(inWindow, "octocat/hello"),
				watchEvent(inWindow, "octocat/hello"),
				watchEvent(inWindow, "octocat/world"),
			},
		},
	})
	lines := m.collect(context.Background())

	seen := make(map[string]bool)
	for _, line := range lines {
		if seen[line] {
			t.Fatalf("duplicate line %q in %v", line, lines)
		}
		seen[line] = true
	}
	testutil.AssertEqual(t, len(lines), 2)
}

func TestEventKinds(t *testing.T) {
	t.Parallel()

	created, _ := time.Parse(time.RFC3339, inWindow)

	merged := github.Event{Type: "PullRequestEvent", Public: true, CreatedAt: created}
	merged.Repo.Name = "octocat/hello"
	merged.Payload.Action = "merged"
	merged.Payload.PullRequest = &github.Ref{Title: "Add thing", HTMLURL: "https://github.com/octocat/hello/pull/2"}

	closed := github.Event{Type: "IssuesEvent", Public: true, CreatedAt: created}
	closed.Repo.Name = "octocat/hello"
	closed.Payload.Action = "closed"
	closed.Payload.Issue = &github.Ref{Title: "Bug", HTMLURL: "https://github.com/octocat/hello/issues/3"}

	opened := github.Event{Type: "IssuesEvent", Public: true, CreatedAt: created}
	opened.Payload.Action = "opened" // unrecognized action, ignored

	push := github.Event{Type: "PushEvent", Public: true, CreatedAt: created} // ignored kind

	m := testMerger(t, &testServer{
		events: map[int][]github.Event{
			1: {merged, closed, opened, push, watchEvent(inWindow, "octocat/spoon")},
		},
	})
	lines := m.collect(context.Background())

	testutil.AssertEqual(t, lines, []string{
		"合并了 PR: [Add thing](https://github.com/octocat/hello/pull/2) (octocat/hello)",
		"关闭了 Issue: [Bug](https://github.com/octocat/hello/issues/3) (octocat/hello)",
		"Star 了项目: [octocat/spoon](https://github.com/octocat/spoon)",
	})
}

func TestNonPublicEventsSkipped(t *testing.T) {
	t.Parallel()

	private := watchEvent(inWindow, "octocat/secret")
	private.Public = false

	m := testMerger(t, &testServer{
		events: map[int][]github.Event{1: {private}},
	})
	testutil.AssertEqual(t, len(m.collect(context.Background())), 0)
}

// An event older than the window start must stop the scan immediately,
// even when newer in-window events follow it in the page.
func TestEventScanStopsAtOldEvent(t *testing.T) {
	t.Parallel()

	ts := &testServer{
		events: map[int][]github.Event{
			1: append(
				[]github.Event{
					watchEvent(inWindow, "octocat/before"),
					watchEvent("2025-06-12T03:00:00Z", "octocat/too-old"),
					watchEvent(inWindow, "octocat/after"),
				},
				// Pad to a full page so only the early exit can stop paging.
				make([]github.Event, eventPageSize-3)...,
			),
			2: {watchEvent(inWindow, "octocat/page2")},
		},
	}
	m := testMerger(t, ts)
	lines := m.collect(context.Background())

	testutil.AssertEqual(t, lines, []string{"Star 了项目: [octocat/before](https://github.com/octocat/before)"})
	testutil.AssertEqual(t, ts.requestedPages, []int{1})
}

func TestEventPagingStopsOnShortPage(t *testing.T) {
	t.Parallel()

	ts := &testServer{
		events: map[int][]github.Event{
			1: {watchEvent(inWindow, "octocat/only")},
			2: {watchEvent(inWindow, "octocat/never-seen")},
		},
	}
	m := testMerger(t, ts)
	m.collect(context.Background())

	testutil.AssertEqual(t, ts.requestedPages, []int{1})
}

func TestFullPageRequestsNext(t *testing.T) {
	t.Parallel()

	fullPage := make([]github.Event, 0, eventPageSize)
	for i := range eventPageSize {
		fullPage = append(fullPage, watchEvent(inWindow, fmt.Sprintf("octocat/repo%d", i)))
	}
	ts := &testServer{
		events: map[int][]github.Event{1: fullPage},
	}
	m := testMerger(t, ts)
	lines := m.collect(context.Background())

	// 30 unique in-window events, capped at 15, earliest-seen first.
	testutil.AssertEqual(t, len(lines), maxEntries)
	testutil.AssertEqual(t, lines[0], "Star 了项目: [octocat/repo0](https://github.com/octocat/repo0)")
	testutil.AssertEqual(t, lines[maxEntries-1], fmt.Sprintf("Star 了项目: [octocat/repo%d](https://github.com/octocat/repo%d)", maxEntries-1, maxEntries-1))
	testutil.AssertEqual(t, ts.requestedPages, []int{1, 2})
}

func TestBlockSuppressedWhenEmpty(t *testing.T) {
	t.Parallel()

	m := testMerger(t, &testServer{})
	testutil.AssertEqual(t, m.Block(context.Background()), "")
}

func TestBlockRender(t *testing.T) {
	t.Parallel()

	m := testMerger(t, &testServer{
		events: map[int][]github.Event{1: {watchEvent(inWindow, "octocat/hello")}},
	})
	want := "GitHub：\n\n• Star 了项目: [octocat/hello](https://github.com/octocat/hello)"
	testutil.AssertEqual(t, m.Block(context.Background()), want)
}
