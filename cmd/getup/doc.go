// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Getup posts a morning wake-up digest and records that it went out.

# Usage

	$ getup [flags...]

Getup looks for an open issue titled "GET UP" in the tracking repository,
creating it when missing, and reads the newest comment of its thread. If a
comment was already left today, the run exits quietly. Otherwise it
assembles the digest: a poem of the day, the year progress, yesterday's
GitHub activity, running totals, a few historical events, a street-view
destination and optional morning reads. When the wake-up hour falls
between 03:00 and 09:00, the digest is sent to Telegram and DingTalk and
appended to the issue's comment thread; a later wake-up skips sending, so
the next early morning still counts.

# Environment Variables

The getup program relies on the following environment variables:

  - GETUP_REPO: GitHub repository ("owner/repo") holding the tracking
    issue. Required.
  - GITHUB_TOKEN: GitHub personal access token for accessing the GitHub API.
  - TELEGRAM_TOKEN: Telegram bot token. If empty, the Telegram send is
    skipped.
  - CHAT_ID: Telegram chat ID where the digest is sent.
  - DINGTALK_WEBHOOK: DingTalk robot webhook URL. If empty, the DingTalk
    send is skipped.
  - DINGTALK_SECRET: DingTalk robot signing secret. If set, webhook
    requests carry a timestamp and an HMAC-SHA256 signature.

# Configuration

Personal knobs (timezone, GitHub username, birth year, filler facts,
street-view sites, the morning-reads feed) live in a Starlark file passed
with the -config flag. Without the flag a built-in default configuration
is used. For example:

	timezone = "Asia/Shanghai"
	username = "octocat"
	birth_year = 1999
	reads_feed = "https://example.com/feed.xml"

Use the -dry flag to assemble and print the digest without sending
anything or touching the tracking issue.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/getup/internal/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
