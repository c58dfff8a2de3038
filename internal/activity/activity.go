// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package activity gathers yesterday's GitHub activity from two independent
// sources, the issue search API and the public event stream, and merges
// them into one deduplicated digest section.
//
// Both sources are best-effort: failures are logged and produce a shorter
// (possibly empty) section, never an error.
package activity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.astrophena.name/getup/internal/api/github"
	"go.astrophena.name/getup/internal/dates"
)

const (
	searchPageSize = 100
	eventPageSize  = 30
	maxEventPages  = 3
	maxEntries     = 15
)

// Merger collects and merges yesterday's activity for one user.
type Merger struct {
	// Client is the GitHub API client.
	Client *github.Client
	// Username is the GitHub login whose activity is collected.
	Username string
	// Window is yesterday's day boundaries in UTC.
	Window dates.Window
	// Date is yesterday formatted as YYYY-MM-DD, used in search queries.
	Date string
	// Slog is the logger for source failures. Defaults to slog.Default.
	Slog *slog.Logger
}

func (m *Merger) slog() *slog.Logger {
	if m.Slog != nil {
		return m.Slog
	}
	return slog.Default()
}

// Block returns the rendered digest section, or an empty string when there
// was no activity.
func (m *Merger) Block(ctx context.Context) string {
	lines := m.collect(ctx)
	if len(lines) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("GitHub：\n")
	for _, line := range lines {
		sb.WriteString("\n• " + line)
	}
	return sb.String()
}

// collect merges the search-based and event-stream-based lists,
// deduplicating by exact rendered text while preserving first-seen order,
// capped at maxEntries.
func (m *Merger) collect(ctx context.Context) []string {
	lines := append(m.fromSearch(ctx), m.fromEvents(ctx)...)

	seen := make(map[string]bool)
	var unique []string
	for _, line := range lines {
		if seen[line] {
			continue
		}
		seen[line] = true
		unique = append(unique, line)
		if len(unique) == maxEntries {
			break
		}
	}
	return unique
}

// fromSearch runs the two fixed search queries for PRs and issues the user
// created yesterday.
func (m *Merger) fromSearch(ctx context.Context) []string {
	var lines []string
	for _, q := range []struct {
		query  string
		action string
	}{
		{fmt.Sprintf("is:pr is:public author:%s created:%s", m.Username, m.Date), "创建了 PR"},
		{fmt.Sprintf("is:issue is:public author:%s created:%s", m.Username, m.Date), "创建了 Issue"},
	} {
		items, err := m.Client.SearchIssues(ctx, q.query, searchPageSize)
		if err != nil {
			m.slog().Warn("search failed", "query", q.query, "error", err)
			continue
		}
		for _, item := range items {
			if item.User.Login != m.Username {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s: [%s](%s) (%s)", q.action, item.Title, item.HTMLURL, item.RepoName()))
		}
	}
	return lines
}

// fromEvents consumes the public event stream, newest first, across up to
// maxEventPages pages. The stream is time-ordered, so scanning stops
// entirely at the first event older than the window start, and paging
// stops early when a page comes back short or empty.
func (m *Merger) fromEvents(ctx context.Context) []string {
	var lines []string
	for page := 1; page <= maxEventPages; page++ {
		events, err := m.Client.ListEvents(ctx, m.Username, page, eventPageSize)
		if err != nil {
			m.slog().Warn("listing events failed", "page", page, "error", err)
			continue
		}
		if len(events) == 0 {
			break
		}

		for _, e := range events {
			if e.CreatedAt.Before(m.Window.Start) {
				return lines
			}
			if !m.Window.Contains(e.CreatedAt) || !e.Public {
				continue
			}
			if line, ok := renderEvent(e); ok {
				lines = append(lines, line)
			}
		}

		if len(events) < eventPageSize {
			break
		}
	}
	return lines
}

// renderEvent maps the three recognized event kinds to their rendered
// lines. All other kinds are ignored.
func renderEvent(e github.Event) (string, bool) {
	switch e.Type {
	case "PullRequestEvent":
		if e.Payload.Action == "merged" && e.Payload.PullRequest != nil {
			return fmt.Sprintf("合并了 PR: [%s](%s) (%s)", e.Payload.PullRequest.Title, e.Payload.PullRequest.HTMLURL, e.Repo.Name), true
		}
	case "IssuesEvent":
		if e.Payload.Action == "closed" && e.Payload.Issue != nil {
			return fmt.Sprintf("关闭了 Issue: [%s](%s) (%s)", e.Payload.Issue.Title, e.Payload.Issue.HTMLURL, e.Repo.Name), true
		}
	case "WatchEvent":
		if e.Payload.Action == "started" {
			return fmt.Sprintf("Star 了项目: [%s](https://github.com/%s)", e.Repo.Name, e.Repo.Name), true
		}
	}
	return "", false
}
