// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package running reads the personal running log: a SQLite snapshot
// published at a fixed URL, downloaded fresh on every run and queried
// read-only for yesterday, month-to-date and year-to-date totals.
package running

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"go.astrophena.name/getup/internal/dates"
	"go.astrophena.name/getup/internal/version"

	_ "github.com/tailscale/sqlite"
)

// DefaultSnapshotURL is where the running log snapshot is published.
const DefaultSnapshotURL = "https://raw.githubusercontent.com/coutureone/running/master/run_page/data.db"

// Totals is the aggregate over one date range.
type Totals struct {
	Count int
	Km    float64
}

// Stats are the three digest ranges.
type Stats struct {
	Yesterday Totals
	Month     Totals
	Year      Totals
}

// Store downloads and queries the running log snapshot.
type Store struct {
	// SnapshotURL overrides DefaultSnapshotURL. Used in tests.
	SnapshotURL string
	// HTTPClient is an optional custom HTTP client object to use for the
	// download. If not provided, http.DefaultClient will be used.
	HTTPClient *http.Client
}

// Stats downloads the snapshot and computes totals for yesterday, the
// current month and the current year, all in the resolver's timezone.
func (s *Store) Stats(ctx context.Context, r *dates.Resolver, now time.Time) (*Stats, error) {
	path, cleanup, err := s.download(ctx)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var (
		yesterday = r.YesterdayDate(now)
		tomorrow  = r.In(now).AddDate(0, 0, 1).Format(time.DateOnly)
		stats     Stats
	)

	stats.Yesterday, err = queryTotals(ctx, db,
		`SELECT COUNT(*), ROUND(COALESCE(SUM(distance), 0)/1000, 2)
		 FROM activities WHERE DATE(start_date_local) = ?`, yesterday)
	if err != nil {
		return nil, err
	}

	stats.Month, err = queryTotals(ctx, db,
		`SELECT COUNT(*), ROUND(COALESCE(SUM(distance), 0)/1000, 2)
		 FROM activities WHERE DATE(start_date_local) >= ? AND DATE(start_date_local) < ?`,
		r.MonthStart(now).Format(time.DateOnly), tomorrow)
	if err != nil {
		return nil, err
	}

	stats.Year, err = queryTotals(ctx, db,
		`SELECT COUNT(*), ROUND(COALESCE(SUM(distance), 0)/1000, 2)
		 FROM activities WHERE DATE(start_date_local) >= ? AND DATE(start_date_local) < ?`,
		r.YearStart(now).Format(time.DateOnly), tomorrow)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

func queryTotals(ctx context.Context, db *sql.DB, query string, args ...any) (Totals, error) {
	var t Totals
	if err := db.QueryRowContext(ctx, query, args...).Scan(&t.Count, &t.Km); err != nil {
		return Totals{}, err
	}
	return t, nil
}

// download fetches the snapshot into a temporary file. The caller must
// call cleanup when done.
func (s *Store) download(ctx context.Context) (path string, cleanup func(), err error) {
	url := s.SnapshotURL
	if url == "" {
		url = DefaultSnapshotURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("User-Agent", version.UserAgent())

	httpc := s.HTTPClient
	if httpc == nil {
		httpc = http.DefaultClient
	}
	res, err := httpc.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("downloading %q: want 200, got %d", url, res.StatusCode)
	}

	f, err := os.CreateTemp("", "getup-running-*.db")
	if err != nil {
		return "", nil, err
	}
	cleanup = func() { os.Remove(f.Name()) }

	if _, err := io.Copy(f, res.Body); err != nil {
		f.Close()
		cleanup()
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return f.Name(), cleanup, nil
}

// Block renders the digest section for the given stats.
func (st *Stats) Block() string {
	var lines []string

	if st.Yesterday.Count > 0 {
		lines = append(lines, fmt.Sprintf("• 昨天跑了 %s 公里", formatKm(st.Yesterday.Km)))
	} else {
		lines = append(lines, "• 昨天没跑")
	}
	if st.Month.Count > 0 {
		lines = append(lines, fmt.Sprintf("• 本月跑了 %s 公里", formatKm(st.Month.Km)))
	} else {
		lines = append(lines, "• 本月没跑")
	}
	if st.Year.Count > 0 {
		lines = append(lines, fmt.Sprintf("• 今年跑了 %s 公里", formatKm(st.Year.Km)))
	} else {
		lines = append(lines, "• 今年没跑")
	}

	return "Run：\n\n" + strings.Join(lines, "\n")
}

func formatKm(km float64) string {
	return strconv.FormatFloat(km, 'f', -1, 64)
}
