// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package telegram provides a minimal client for the Telegram Bot API.
package telegram

import (
	"context"
	"net/http"
	"strings"

	"go.astrophena.name/getup/internal/request"
)

const defaultAPI = "https://api.telegram.org"

// Client represents a Telegram Bot API client.
type Client struct {
	// Token is the bot token used for authentication.
	Token string
	// APIURL overrides the API endpoint. Used in tests.
	APIURL string
	// HTTPClient is an optional custom HTTP client object to use for requests.
	// If not provided, request.DefaultClient will be used.
	HTTPClient *http.Client
}

type message struct {
	ChatID              string `json:"chat_id"`
	Text                string `json:"text"`
	ParseMode           string `json:"parse_mode,omitempty"`
	DisableNotification bool   `json:"disable_notification,omitempty"`
	LinkPreviewOptions  struct {
		IsDisabled bool `json:"is_disabled"`
	} `json:"link_preview_options"`
}

// SendMessage sends a Markdown-formatted message to the chat, without
// triggering a notification. The bot token is scrubbed from error messages.
func (c *Client) SendMessage(ctx context.Context, chatID, text string) error {
	api := c.APIURL
	if api == "" {
		api = defaultAPI
	}
	msg := &message{
		ChatID:              chatID,
		Text:                text,
		ParseMode:           "Markdown",
		DisableNotification: true,
	}
	_, err := request.Make[request.IgnoreResponse](ctx, request.Params{
		Method:     http.MethodPost,
		URL:        api + "/bot" + c.Token + "/sendMessage",
		Body:       msg,
		HTTPClient: c.HTTPClient,
		Scrubber:   strings.NewReplacer(c.Token, "[EXPUNGED]"),
	})
	return err
}
