// Package api talks to the course site's lessons API, which hands signed-in
// pro accounts a direct download location for each lesson.
package api

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"github.com/eggdl-cli/eggdl/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// JSONFetcher decodes the JSON body behind a URL.
type JSONFetcher interface {
	GetJSON(ctx context.Context, url string, v any) error
}

// Lesson is one entry of the next-up listing.
type Lesson struct {
	Slug          string `json:"slug"`
	DownloadURL   string `json:"download_url"`
	LessonHTTPURL string `json:"lesson_http_url"`
}

type nextUp struct {
	List *struct {
		Lessons []Lesson `json:"lessons"`
	} `json:"list"`
}

var downloadName = regexp.MustCompile(`^https://.*/lessons/.*/(?P<name>[^/?]+)\?.*`)

// Client queries the lessons API rooted at base.
type Client struct {
	base    string
	fetcher JSONFetcher
}

// New returns a Client for the API at base, e.g. https://egghead.io/api/v1/lessons.
func New(base string, fetcher JSONFetcher) *Client {
	return &Client{base: base, fetcher: fetcher}
}

// NextUp lists the lessons the API returns for slug. A response without a
// list yields no lessons.
func (c *Client) NextUp(ctx context.Context, slug string) ([]Lesson, error) {
	var resp nextUp
	endpoint := fmt.Sprintf("%s/%s/next_up", c.base, url.PathEscape(slug))
	if err := c.fetcher.GetJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	if resp.List == nil {
		return []Lesson{}, nil
	}
	return resp.List.Lessons, nil
}

// Find returns the listed lesson whose slug is slug and which carries a download URL.
func (c *Client) Find(ctx context.Context, slug string) (mo.Option[Lesson], error) {
	lessons, err := c.NextUp(ctx, slug)
	if err != nil {
		return mo.None[Lesson](), err
	}

	found, ok := lo.Find(lessons, func(l Lesson) bool {
		return l.Slug == slug && l.DownloadURL != ""
	})
	if !ok {
		return mo.None[Lesson](), nil
	}
	return mo.Some(found), nil
}

// Filename is the last path segment of a signed download URL.
func (l Lesson) Filename() (string, bool) {
	name := util.ReGroups(downloadName, l.DownloadURL)["name"]
	return name, name != ""
}
