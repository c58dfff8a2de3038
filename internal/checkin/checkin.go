// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package checkin decides whether the digest already went out today by
// looking at the tail of an externally persisted append-only log, the
// comment thread of a tracking issue.
//
// Known quirk: only the day and the month of the latest entry are compared,
// so an entry created on the same date in a previous year also counts as
// "already ran today". Callers relying on multi-year logs should be aware.
package checkin

import (
	"context"
	"fmt"
	"time"

	"go.astrophena.name/getup/internal/api/github"
)

// Log is a read-only view of the append-only run record. Writing a new
// entry after a successful run is the dispatcher's job, not this package's.
type Log interface {
	// Latest returns the creation time of the most recent entry. ok is false
	// when the log is empty.
	Latest(ctx context.Context) (t time.Time, ok bool, err error)
}

// RanToday reports whether the latest log entry falls on today's calendar
// day in the given timezone. An empty log means "not yet run". Read
// failures are propagated: a wrong "not run yet" answer would cause a
// duplicate send, so this is not a place for silent fallback.
func RanToday(ctx context.Context, log Log, now time.Time, zone *time.Location) (bool, error) {
	latest, ok, err := log.Latest(ctx)
	if err != nil {
		return false, fmt.Errorf("reading run log: %w", err)
	}
	if !ok {
		return false, nil
	}

	latest, now = latest.In(zone), now.In(zone)
	return latest.Day() == now.Day() && latest.Month() == now.Month(), nil
}

// IssueLog reads the run record from a GitHub issue's comment thread.
type IssueLog struct {
	// Client is the GitHub API client.
	Client *github.Client
	// Repo is the "owner/repo" holding the tracking issue.
	Repo string
	// Number is the tracking issue number.
	Number int
}

// Latest implements the [Log] interface.
func (l *IssueLog) Latest(ctx context.Context) (time.Time, bool, error) {
	comments, err := l.Client.ListComments(ctx, l.Repo, l.Number)
	if err != nil {
		return time.Time{}, false, err
	}
	if len(comments) == 0 {
		return time.Time{}, false, nil
	}
	return comments[len(comments)-1].CreatedAt, true, nil
}
