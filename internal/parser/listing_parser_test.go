package parser

import (
	"reflect"
	"strings"
	"testing"

	"github.com/Belphemur/TorrentGrabber/internal/testutil"
)

const moviePrefix = "https://yts.mx/movies/"

func TestListingParser_ParseHtml(t *testing.T) {
	html := testutil.GenerateListingHTML(
		[]string{moviePrefix + "foo-2020", moviePrefix + "bar-2021"},
		"https://yts.mx/browse-movies?page=2",
		"https://yts.mx/torrent/download/ABC",
		"/movies/relative-2019",
	)

	links, err := NewListingParser(moviePrefix).ParseHtml(strings.NewReader(html))
	if err != nil {
		t.Fatalf("ParseHtml failed: %v", err)
	}

	want := []string{moviePrefix + "foo-2020", moviePrefix + "bar-2021"}
	if got := testutil.LinkStrings(links); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestListingParser_NeverReturnsForeignOrDuplicateLinks(t *testing.T) {
	tests := []struct {
		name string
		html string
		want int
	}{
		{
			name: "empty document",
			html: "",
			want: 0,
		},
		{
			name: "no anchors",
			html: "<html><body><p>nothing here</p></body></html>",
			want: 0,
		},
		{
			name: "anchor without href",
			html: `<a>Foo</a><a href="">empty</a>`,
			want: 0,
		},
		{
			name: "prefix must match at the start",
			html: `<a href="http://mirror.example/?u=https://yts.mx/movies/foo-2020">x</a>`,
			want: 0,
		},
		{
			name: "repeated link",
			html: `<a href="https://yts.mx/movies/foo-2020">a</a><a href="https://yts.mx/movies/foo-2020">b</a><a href=" https://yts.mx/movies/foo-2020 ">c</a>`,
			want: 1,
		},
		{
			name: "malformed markup",
			html: `<div><a href="https://yts.mx/movies/foo-2020">Foo<div><span>unclosed`,
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			links, err := NewListingParser(moviePrefix).ParseHtml(strings.NewReader(tt.html))
			if err != nil {
				t.Fatalf("ParseHtml failed: %v", err)
			}
			if len(links) != tt.want {
				t.Fatalf("Expected %d links, got %d: %v", tt.want, len(links), links)
			}
			seen := map[string]bool{}
			for _, l := range links {
				if !strings.HasPrefix(string(l), moviePrefix) {
					t.Errorf("Link %q does not start with %q", l, moviePrefix)
				}
				if seen[string(l)] {
					t.Errorf("Duplicate link %q", l)
				}
				seen[string(l)] = true
			}
		})
	}
}

func TestListingParser_EmptyPrefixMatchesNothing(t *testing.T) {
	links, err := NewListingParser("").ParseHtml(strings.NewReader(`<a href="https://yts.mx/movies/foo-2020">Foo</a>`))
	if err != nil {
		t.Fatalf("ParseHtml failed: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("Expected no links with an empty prefix, got %v", links)
	}
}

func TestListingParser_FiltersForeignLinks(t *testing.T) {
	html := `<html><body>
		<a href="https://yts.mx/movies/foo-2020">Foo</a>
		<a href="https://yts.mx/movies/bar-2021">Bar</a>
		<a href="https://yts.mx/login">Login</a>
		<a href="https://example.com/movies/foo-2020">Elsewhere</a>
	</body></html>`

	links, err := NewListingParser(moviePrefix).ParseHtml(strings.NewReader(html))
	if err != nil {
		t.Fatalf("ParseHtml failed: %v", err)
	}
	got := testutil.LinkStrings(links)
	want := []string{"https://yts.mx/movies/foo-2020", "https://yts.mx/movies/bar-2021"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
