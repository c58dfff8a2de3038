// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	_ "embed"
	"fmt"
	"os"

	"go.astrophena.name/getup/internal/running"
	"go.astrophena.name/getup/internal/streetview"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

//go:embed config.star
var defaultConfig []byte

// config holds the personal knobs of the digest. Credentials and wiring
// stay in environment variables; everything here is safe to commit.
type config struct {
	Timezone     string
	Username     string
	BirthYear    int
	PoemFallback string
	FillerFacts  []string
	Sites        []streetview.Site
	ReadsFeed    string
	SnapshotURL  string
}

func (a *app) loadConfig() error {
	src := defaultConfig
	if a.configPath != "" {
		b, err := os.ReadFile(a.configPath)
		if err != nil {
			return err
		}
		src = b
	}
	cfg, err := parseConfig(src, func(msg string) { a.slog.Info(msg) })
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func parseConfig(src []byte, print func(string)) (*config, error) {
	globals, err := starlark.ExecFileOptions(
		&syntax.FileOptions{
			TopLevelControl: true,
		},
		&starlark.Thread{
			Print: func(_ *starlark.Thread, msg string) { print(msg) },
		},
		"config.star",
		src,
		nil,
	)
	if err != nil {
		return nil, err
	}

	cfg := &config{
		Timezone:    "Asia/Shanghai",
		Sites:       streetview.DefaultSites,
		SnapshotURL: running.DefaultSnapshotURL,
	}
	for name, dst := range map[string]*string{
		"timezone":         &cfg.Timezone,
		"username":         &cfg.Username,
		"poem_fallback":    &cfg.PoemFallback,
		"reads_feed":       &cfg.ReadsFeed,
		"running_snapshot": &cfg.SnapshotURL,
	} {
		if err := getString(globals, name, dst); err != nil {
			return nil, err
		}
	}
	if err := getInt(globals, "birth_year", &cfg.BirthYear); err != nil {
		return nil, err
	}
	if err := getStrings(globals, "filler_facts", &cfg.FillerFacts); err != nil {
		return nil, err
	}
	if err := getSites(globals, "street_view_sites", &cfg.Sites); err != nil {
		return nil, err
	}

	if cfg.Username == "" {
		return nil, fmt.Errorf("config.star: %q must be set", "username")
	}
	if cfg.BirthYear == 0 {
		return nil, fmt.Errorf("config.star: %q must be set", "birth_year")
	}

	return cfg, nil
}

func getString(globals starlark.StringDict, name string, dst *string) error {
	v, ok := globals[name]
	if !ok {
		return nil
	}
	s, ok := v.(starlark.String)
	if !ok {
		return fmt.Errorf("config.star: %q must be a string, got %s", name, v.Type())
	}
	*dst = string(s)
	return nil
}

func getInt(globals starlark.StringDict, name string, dst *int) error {
	v, ok := globals[name]
	if !ok {
		return nil
	}
	i, ok := v.(starlark.Int)
	if !ok {
		return fmt.Errorf("config.star: %q must be an int, got %s", name, v.Type())
	}
	n, ok := i.Int64()
	if !ok {
		return fmt.Errorf("config.star: %q is out of range", name)
	}
	*dst = int(n)
	return nil
}

func getStrings(globals starlark.StringDict, name string, dst *[]string) error {
	v, ok := globals[name]
	if !ok {
		return nil
	}
	list, ok := v.(*starlark.List)
	if !ok {
		return fmt.Errorf("config.star: %q must be a list of strings, got %s", name, v.Type())
	}
	var out []string
	for elem := range list.Elements() {
		s, ok := elem.(starlark.String)
		if !ok {
			return fmt.Errorf("config.star: %q must contain only strings, got %s", name, elem.Type())
		}
		out = append(out, string(s))
	}
	*dst = out
	return nil
}

func getSites(globals starlark.StringDict, name string, dst *[]streetview.Site) error {
	v, ok := globals[name]
	if !ok {
		return nil
	}
	list, ok := v.(*starlark.List)
	if !ok {
		return fmt.Errorf("config.star: %q must be a list of (name, url) tuples, got %s", name, v.Type())
	}
	var out []streetview.Site
	for elem := range list.Elements() {
		tuple, ok := elem.(starlark.Tuple)
		if !ok || tuple.Len() != 2 {
			return fmt.Errorf("config.star: %q must contain (name, url) tuples", name)
		}
		sname, ok1 := tuple.Index(0).(starlark.String)
		url, ok2 := tuple.Index(1).(starlark.String)
		if !ok1 || !ok2 {
			return fmt.Errorf("config.star: %q must contain (name, url) tuples of strings", name)
		}
		out = append(out, streetview.Site{Name: string(sname), URL: string(url)})
	}
	*dst = out
	return nil
}
