// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"go.astrophena.name/getup/internal/request"
)

var githubLinkRe = regexp.MustCompile(`\[([^\]]+)\]\(https://github\.com/[^\)]+\)`)

// stripGitHubLinks rewrites GitHub Markdown links to their bare text.
// Links to github.com left in a comment body would flood the linked
// issues and pull requests with cross-references.
func stripGitHubLinks(text string) string {
	return githubLinkRe.ReplaceAllString(text, "$1")
}

// signWebhook appends the timestamp and the HMAC-SHA256 signature that
// DingTalk expects on secret-protected webhooks.
func signWebhook(webhook, secret string, now time.Time) string {
	ts := now.UnixMilli()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d\n%s", ts, secret)
	sign := url.QueryEscape(base64.StdEncoding.EncodeToString(mac.Sum(nil)))
	return fmt.Sprintf("%s&timestamp=%d&sign=%s", webhook, ts, sign)
}

type dingtalkResponse struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

// sendDingTalk posts the digest to the DingTalk robot webhook as a
// Markdown message. DingTalk reports failures inside an HTTP 200
// response, so the error code is checked explicitly.
func (a *app) sendDingTalk(ctx context.Context, body string) error {
	webhook := a.dingtalkWebhook
	if a.dingtalkSecret != "" {
		webhook = signWebhook(webhook, a.dingtalkSecret, a.now())
	}

	msg := struct {
		MsgType  string `json:"msgtype"`
		Markdown struct {
			Title string `json:"title"`
			Text  string `json:"text"`
		} `json:"markdown"`
	}{MsgType: "markdown"}
	msg.Markdown.Title = "早起打卡"
	msg.Markdown.Text = body

	resp, err := request.Make[dingtalkResponse](ctx, request.Params{
		Method:     http.MethodPost,
		URL:        webhook,
		Body:       msg,
		HTTPClient: a.httpc,
		Scrubber:   a.scrub,
	})
	if err != nil {
		return err
	}
	if resp.ErrCode != 0 {
		return fmt.Errorf("dingtalk: %s (code %d)", resp.ErrMsg, resp.ErrCode)
	}
	return nil
}
