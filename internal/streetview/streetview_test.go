// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package streetview

import (
	"strings"
	"testing"
	"time"

	"go.astrophena.name/getup/internal/testutil"
)

func TestPickDeterministicWithinDay(t *testing.T) {
	t.Parallel()

	morning := time.Date(2025, time.June, 15, 7, 0, 0, 0, time.UTC)
	evening := time.Date(2025, time.June, 15, 21, 0, 0, 0, time.UTC)

	testutil.AssertEqual(t,
		Pick(DefaultSites, morning, time.UTC),
		Pick(DefaultSites, evening, time.UTC),
	)
}

func TestPickVariesAcrossDays(t *testing.T) {
	t.Parallel()

	// A uniform pick from 40 sites repeating across 60 consecutive days
	// would make every day collide with the next only with vanishing
	// probability; require at least one difference.
	base := time.Date(2025, time.March, 1, 7, 0, 0, 0, time.UTC)
	var differs bool
	for i := range 59 {
		a := Pick(DefaultSites, base.AddDate(0, 0, i), time.UTC)
		b := Pick(DefaultSites, base.AddDate(0, 0, i+1), time.UTC)
		if a != b {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("pick never changed across 60 consecutive days")
	}
}

func TestPickRespectsZoneBoundary(t *testing.T) {
	t.Parallel()

	shanghai, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		t.Fatal(err)
	}

	// 2025-06-15 20:00 UTC is already June 16 in Shanghai. The pick must
	// follow the fixed zone's calendar, not UTC's.
	now := time.Date(2025, time.June, 15, 20, 0, 0, 0, time.UTC)
	nextDay := time.Date(2025, time.June, 16, 7, 0, 0, 0, shanghai)

	testutil.AssertEqual(t,
		Pick(DefaultSites, now, shanghai),
		Pick(DefaultSites, nextDay, shanghai),
	)
}

func TestBlock(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.June, 15, 7, 0, 0, 0, time.UTC)
	block := Block(DefaultSites, now, time.UTC)

	if !strings.HasPrefix(block, "今日街景：") {
		t.Errorf("block = %q, want street view heading", block)
	}
	if !strings.Contains(block, "[开始随机街景之旅](https://randomstreetview.com") {
		t.Errorf("block = %q, want link", block)
	}

	testutil.AssertEqual(t, Block(nil, now, time.UTC), "")
}
