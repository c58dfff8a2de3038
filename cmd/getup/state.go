// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"

	"go.astrophena.name/getup/internal/api/github"
)

// trackingIssueTitle names the issue whose comment thread is the check-in
// record.
const trackingIssueTitle = "GET UP"

// trackingIssue returns the open tracking issue, creating it when it
// doesn't exist yet. A failed lookup still falls through to creation: an
// extra issue is recoverable, a lost check-in record is not.
func (a *app) trackingIssue(ctx context.Context) (*github.Issue, error) {
	issue, err := a.gh.FindOpenIssue(ctx, a.repo, trackingIssueTitle)
	if err != nil {
		a.slog.Warn("looking up tracking issue failed", "error", err)
		return a.gh.CreateIssue(ctx, a.repo, trackingIssueTitle, trackingIssueTitle)
	}
	if issue != nil {
		return issue, nil
	}
	a.slog.Info("tracking issue not found, creating it", "repo", a.repo)
	return a.gh.CreateIssue(ctx, a.repo, trackingIssueTitle, trackingIssueTitle)
}
