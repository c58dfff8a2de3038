// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package streetview picks the street-view destination of the day.
//
// The pick is derived from the calendar day through a locally scoped,
// day-seeded generator: repeated runs on the same day land on the same
// place, and the shared process-wide generator is never touched.
package streetview

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Site is a named street-view destination.
type Site struct {
	Name string
	URL  string
}

// DefaultSites is the built-in destination pool.
var DefaultSites = []Site{
	{"🇯🇵 日本", "https://randomstreetview.com/#jpn"},
	{"🇮🇹 意大利", "https://randomstreetview.com/#ita"},
	{"🇫🇷 法国", "https://randomstreetview.com/#fra"},
	{"🇬🇧 英国", "https://randomstreetview.com/#gbr"},
	{"🇺🇸 美国", "https://randomstreetview.com/#usa"},
	{"🇦🇺 澳大利亚", "https://randomstreetview.com/#aus"},
	{"🇧🇷 巴西", "https://randomstreetview.com/#bra"},
	{"🇿🇦 南非", "https://randomstreetview.com/#zaf"},
	{"🇹🇭 泰国", "https://randomstreetview.com/#tha"},
	{"🇲🇽 墨西哥", "https://randomstreetview.com/#mex"},
	{"🇪🇸 西班牙", "https://randomstreetview.com/#esp"},
	{"🇩🇪 德国", "https://randomstreetview.com/#deu"},
	{"🇵🇹 葡萄牙", "https://randomstreetview.com/#prt"},
	{"🇳🇴 挪威", "https://randomstreetview.com/#nor"},
	{"🇸🇪 瑞典", "https://randomstreetview.com/#swe"},
	{"🇫🇮 芬兰", "https://randomstreetview.com/#fin"},
	{"🇵🇱 波兰", "https://randomstreetview.com/#pol"},
	{"🇨🇿 捷克", "https://randomstreetview.com/#cze"},
	{"🇬🇷 希腊", "https://randomstreetview.com/#grc"},
	{"🇹🇷 土耳其", "https://randomstreetview.com/#tur"},
	{"🇷🇺 俄罗斯", "https://randomstreetview.com/#rus"},
	{"🇦🇷 阿根廷", "https://randomstreetview.com/#arg"},
	{"🇨🇱 智利", "https://randomstreetview.com/#chl"},
	{"🇨🇴 哥伦比亚", "https://randomstreetview.com/#col"},
	{"🇵🇪 秘鲁", "https://randomstreetview.com/#per"},
	{"🇮🇩 印尼", "https://randomstreetview.com/#idn"},
	{"🇲🇾 马来西亚", "https://randomstreetview.com/#mys"},
	{"🇸🇬 新加坡", "https://randomstreetview.com/#sgp"},
	{"🇵🇭 菲律宾", "https://randomstreetview.com/#phl"},
	{"🇹🇼 台湾", "https://randomstreetview.com/#twn"},
	{"🇭🇰 香港", "https://randomstreetview.com/#hkg"},
	{"🇰🇷 韩国", "https://randomstreetview.com/#kor"},
	{"🇮🇱 以色列", "https://randomstreetview.com/#isr"},
	{"🇦🇪 阿联酋", "https://randomstreetview.com/#are"},
	{"🇮🇪 爱尔兰", "https://randomstreetview.com/#irl"},
	{"🇳🇱 荷兰", "https://randomstreetview.com/#nld"},
	{"🇧🇪 比利时", "https://randomstreetview.com/#bel"},
	{"🇨🇭 瑞士", "https://randomstreetview.com/#che"},
	{"🇦🇹 奥地利", "https://randomstreetview.com/#aut"},
	{"🌍 全球随机", "https://randomstreetview.com/"},
}

// Pick returns the destination for now's calendar day in the given
// timezone. Two calls on the same day return the same site.
func Pick(sites []Site, now time.Time, zone *time.Location) Site {
	n := now.In(zone)
	seed := uint64(n.Year()*1000 + n.YearDay())
	rng := rand.New(rand.NewPCG(seed, 0))
	return sites[rng.IntN(len(sites))]
}

// Block returns the rendered digest section, or an empty string when the
// site pool is empty.
func Block(sites []Site, now time.Time, zone *time.Location) string {
	if len(sites) == 0 {
		return ""
	}
	s := Pick(sites, now, zone)
	return fmt.Sprintf("今日街景：%s\n\n[开始随机街景之旅](%s)", s.Name, s.URL)
}
