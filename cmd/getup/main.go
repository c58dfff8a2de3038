// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"cmp"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.astrophena.name/getup/internal/api/github"
	"go.astrophena.name/getup/internal/api/telegram"
	"go.astrophena.name/getup/internal/checkin"
	"go.astrophena.name/getup/internal/cli"
	"go.astrophena.name/getup/internal/dates"
	"go.astrophena.name/getup/internal/request"
)

func main() { cli.Main(new(app)) }

type app struct {
	dry        bool
	configPath string

	// Loaded from environment variables.
	ghToken         string
	repo            string
	tgToken         string
	chatID          string
	dingtalkWebhook string
	dingtalkSecret  string

	cfg      *config
	resolver *dates.Resolver
	scrub    *strings.Replacer

	gh *github.Client
	tg *telegram.Client

	// now returns the current time. Overridden in tests.
	now func() time.Time
	// httpc is the HTTP client used for all external requests. Overridden
	// in tests.
	httpc *http.Client
	slog  *slog.Logger
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&a.dry, "dry", false, "Assemble and print the digest, but don't send it or touch the tracking issue.")
	fs.StringVar(&a.configPath, "config", "", "Read configuration from `path` instead of the built-in default.")
}

func (a *app) Run(ctx context.Context, env *cli.Env) error {
	a.ghToken = cmp.Or(a.ghToken, env.Getenv("GITHUB_TOKEN"))
	a.repo = cmp.Or(a.repo, env.Getenv("GETUP_REPO"))
	a.tgToken = cmp.Or(a.tgToken, env.Getenv("TELEGRAM_TOKEN"))
	a.chatID = cmp.Or(a.chatID, env.Getenv("CHAT_ID"))
	a.dingtalkWebhook = cmp.Or(a.dingtalkWebhook, env.Getenv("DINGTALK_WEBHOOK"))
	a.dingtalkSecret = cmp.Or(a.dingtalkSecret, env.Getenv("DINGTALK_SECRET"))

	if a.repo == "" {
		return fmt.Errorf("%w: environment variable GETUP_REPO is not set", cli.ErrInvalidArgs)
	}

	if a.now == nil {
		a.now = time.Now
	}
	if a.httpc == nil {
		a.httpc = request.DefaultClient
	}
	if a.slog == nil {
		level := slog.LevelInfo
		if a.dry {
			level = slog.LevelDebug
		}
		a.slog = slog.New(slog.NewTextHandler(env.Stderr, &slog.HandlerOptions{Level: level}))
	}
	a.scrub = scrubber(a.ghToken, a.tgToken, a.dingtalkSecret)

	if err := a.loadConfig(); err != nil {
		return err
	}
	resolver, err := dates.NewResolver(a.cfg.Timezone)
	if err != nil {
		return err
	}
	a.resolver = resolver

	a.gh = &github.Client{
		Token:      a.ghToken,
		HTTPClient: a.httpc,
		Scrubber:   a.scrub,
	}
	a.tg = &telegram.Client{
		Token:      a.tgToken,
		HTTPClient: a.httpc,
	}

	return a.run(ctx, env)
}

func (a *app) run(ctx context.Context, env *cli.Env) error {
	now := a.now()

	issue, err := a.trackingIssue(ctx)
	if err != nil {
		return fmt.Errorf("resolving tracking issue: %w", err)
	}

	log := &checkin.IssueLog{Client: a.gh, Repo: a.repo, Number: issue.Number}
	ran, err := checkin.RanToday(ctx, log, now, a.resolver.Zone())
	if err != nil {
		return err
	}
	if ran {
		env.Logf("Already recorded the wake-up time today.")
		return nil
	}

	d := a.assemble(ctx, now)
	body, err := d.render()
	if err != nil {
		return err
	}

	if a.dry {
		fmt.Fprint(env.Stdout, body)
		return nil
	}

	if !d.GotUpEarly {
		env.Logf("Woke up late, skipping the digest.")
		return nil
	}

	// Sends are best-effort: a dead channel shouldn't lose the check-in.
	if a.tgToken != "" && a.chatID != "" {
		if err := a.tg.SendMessage(ctx, a.chatID, body); err != nil {
			a.slog.Warn("sending Telegram message failed", "error", err)
		}
	}
	if a.dingtalkWebhook != "" {
		if err := a.sendDingTalk(ctx, body); err != nil {
			a.slog.Warn("sending DingTalk message failed", "error", err)
		}
	}

	return a.gh.CreateComment(ctx, a.repo, issue.Number, stripGitHubLinks(body))
}

func scrubber(secrets ...string) *strings.Replacer {
	var pairs []string
	for _, s := range secrets {
		if s != "" {
			pairs = append(pairs, s, "[EXPUNGED]")
		}
	}
	return strings.NewReplacer(pairs...)
}
