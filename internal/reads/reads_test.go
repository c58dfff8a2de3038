// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package reads

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.astrophena.name/getup/internal/testutil"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Example</title>
<item><title>First post</title><link>https://example.com/1</link></item>
<item><title>Second post</title><link>https://example.com/2</link></item>
<item><title>  </title><link>https://example.com/untitled</link></item>
<item><title>Third post</title><link>https://example.com/3</link></item>
<item><title>Fourth post</title><link>https://example.com/4</link></item>
</channel>
</rss>`

func TestFetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testFeed))
	}))
	defer srv.Close()

	f := &Fetcher{FeedURL: srv.URL}
	headlines, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	// Untitled entries are skipped; the limit cuts after three.
	testutil.AssertEqual(t, headlines, []Headline{
		{Title: "First post", URL: "https://example.com/1"},
		{Title: "Second post", URL: "https://example.com/2"},
		{Title: "Third post", URL: "https://example.com/3"},
	})
}

func TestFetchError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	f := &Fetcher{FeedURL: srv.URL}
	if _, err := f.Fetch(context.Background()); err == nil {
		t.Fatal("want error on non-200 response")
	}
}

func TestBlock(t *testing.T) {
	t.Parallel()

	testutil.AssertEqual(t, Block(nil), "")

	block := Block([]Headline{
		{Title: "First post", URL: "https://example.com/1"},
		{Title: "No link"},
	})
	want := "晨读：\n\n• [First post](https://example.com/1)  \n• No link  "
	testutil.AssertEqual(t, block, want)
}
