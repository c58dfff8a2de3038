// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"go.astrophena.name/getup/internal/testutil"
)

func TestStripGitHubLinks(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		in, want string
	}{
		"github link": {
			in:   "创建了 PR: [Add feature](https://github.com/example/up/pull/2) (example/up)",
			want: "创建了 PR: Add feature (example/up)",
		},
		"other links are kept": {
			in:   "[开始随机街景之旅](https://randomstreetview.com/#jpn)",
			want: "[开始随机街景之旅](https://randomstreetview.com/#jpn)",
		},
		"multiple links": {
			in:   "[a](https://github.com/x/y) and [b](https://github.com/z/w)",
			want: "a and b",
		},
		"no links": {
			in:   "起床啦。",
			want: "起床啦。",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, stripGitHubLinks(tc.in), tc.want)
		})
	}
}

func TestSignWebhook(t *testing.T) {
	t.Parallel()

	// Known-answer vector for secret "test-secret" at a fixed timestamp.
	got := signWebhook(
		"https://oapi.dingtalk.com/robot/send?access_token=x",
		"test-secret",
		time.UnixMilli(1750000000000),
	)
	want := "https://oapi.dingtalk.com/robot/send?access_token=x" +
		"&timestamp=1750000000000" +
		"&sign=LtvaLV%2F9wOiv6aEFFB9sUsCFHRpGeLxYPse0caCATxQ%3D"
	testutil.AssertEqual(t, got, want)
}

func TestSendDingTalkSigned(t *testing.T) {
	t.Parallel()

	m := testMux(t, map[string]http.HandlerFunc{
		sendDingTalk: func(w http.ResponseWriter, r *http.Request) {
			if r.FormValue("timestamp") == "" || r.FormValue("sign") == "" {
				http.Error(w, "missing signature", http.StatusForbidden)
				return
			}
			body := testutil.UnmarshalJSON[map[string]any](t, read(t, r.Body))
			testutil.AssertEqual(t, body["msgtype"], "markdown")
			w.Write([]byte(`{"errcode": 0, "errmsg": "ok"}`))
		},
	})
	a := testApp(m)
	a.dingtalkWebhook = "https://oapi.dingtalk.com/robot/send?access_token=test"
	a.dingtalkSecret = "test-secret"

	if err := a.sendDingTalk(context.Background(), "起床啦。"); err != nil {
		t.Fatal(err)
	}
}

func TestSendDingTalkReportsErrCode(t *testing.T) {
	t.Parallel()

	m := testMux(t, map[string]http.HandlerFunc{
		sendDingTalk: func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"errcode": 310000, "errmsg": "keywords not in content"}`))
		},
	})
	a := testApp(m)
	a.dingtalkWebhook = "https://oapi.dingtalk.com/robot/send?access_token=test"

	err := a.sendDingTalk(context.Background(), "some message")
	if err == nil {
		t.Fatal("want error on non-zero errcode")
	}
	wantContains(t, err.Error(), "keywords not in content")
}
