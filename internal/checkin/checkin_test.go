// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package checkin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.astrophena.name/getup/internal/api/github"
	"go.astrophena.name/getup/internal/testutil"
)

type fakeLog struct {
	t   time.Time
	ok  bool
	err error
}

func (l *fakeLog) Latest(ctx context.Context) (time.Time, bool, error) {
	return l.t, l.ok, l.err
}

func shanghai(t *testing.T) *time.Location {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		t.Fatal(err)
	}
	return loc
}

func TestRanTodayEmptyLog(t *testing.T) {
	t.Parallel()

	ran, err := RanToday(context.Background(), &fakeLog{}, time.Now(), shanghai(t))
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, ran, false)
}

func TestRanTodayPropagatesReadError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("comment listing failed")
	_, err := RanToday(context.Background(), &fakeLog{err: wantErr}, time.Now(), shanghai(t))
	if !errors.Is(err, wantErr) {
		t.Fatalf("got %v, want wrapped %v", err, wantErr)
	}
}

func TestRanToday(t *testing.T) {
	t.Parallel()

	zone := shanghai(t)
	now := time.Date(2025, time.June, 15, 7, 30, 0, 0, zone)

	cases := map[string]struct {
		latest time.Time
		want   bool
	}{
		"same morning": {
			latest: time.Date(2025, time.June, 15, 6, 0, 0, 0, zone),
			want:   true,
		},
		"yesterday": {
			latest: time.Date(2025, time.June, 14, 7, 30, 0, 0, zone),
			want:   false,
		},
		// The latest entry is recorded in UTC; 2025-06-14 22:00 UTC is
		// already June 15 in Shanghai.
		"utc conversion": {
			latest: time.Date(2025, time.June, 14, 22, 0, 0, 0, time.UTC),
			want:   true,
		},
		// Day+month comparison ignores the year: the anniversary date of a
		// past year still counts as today.
		"one year ago": {
			latest: time.Date(2024, time.June, 15, 7, 0, 0, 0, zone),
			want:   true,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			ran, err := RanToday(context.Background(), &fakeLog{t: tc.latest, ok: true}, now, zone)
			if err != nil {
				t.Fatal(err)
			}
			testutil.AssertEqual(t, ran, tc.want)
		})
	}
}

func TestIssueLogLatest(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octocat/diary/issues/1/comments", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"created_at": "2025-06-14T23:00:00Z"},
			{"created_at": "2025-06-15T01:00:00Z"}
		]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	log := &IssueLog{
		Client: &github.Client{APIURL: srv.URL},
		Repo:   "octocat/diary",
		Number: 1,
	}
	latest, ok, err := log.Latest(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, latest, time.Date(2025, time.June, 15, 1, 0, 0, 0, time.UTC))
}

func TestIssueLogEmpty(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octocat/diary/issues/1/comments", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	log := &IssueLog{
		Client: &github.Client{APIURL: srv.URL},
		Repo:   "octocat/diary",
		Number: 1,
	}
	_, ok, err := log.Latest(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, ok, false)
}
