// Package entry classifies the URL a run starts from.
package entry

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/eggdl-cli/eggdl/util"
)

// Kind tells a single lesson apart from a page listing many lessons.
type Kind int

const (
	Lesson Kind = iota
	Collection
)

func (k Kind) String() string {
	if k == Lesson {
		return "lesson"
	}
	return "collection"
}

// ErrUnsupported is returned for URLs that are neither a lesson nor a collection.
var ErrUnsupported = errors.New("unsupported url")

var (
	supportedPath = regexp.MustCompile(`egghead\.io/(lessons|series|playlists|courses)/`)
	lessonPath    = regexp.MustCompile(`egghead\.io/lessons/(?P<slug>[^?#]*)`)
)

// URL is a parsed entry URL.
type URL struct {
	Raw  string
	Kind Kind
	// Slug is the lesson identifier, empty for collections.
	Slug string
}

// Parse classifies raw by its path shape.
func Parse(raw string) (URL, error) {
	raw = strings.TrimSpace(raw)
	if _, err := url.Parse(raw); err != nil {
		return URL{}, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	if !supportedPath.MatchString(raw) {
		return URL{}, fmt.Errorf("%w: %s", ErrUnsupported, raw)
	}

	slug := strings.Trim(util.ReGroups(lessonPath, raw)["slug"], "/")
	if slug != "" {
		return URL{Raw: raw, Kind: Lesson, Slug: slug}, nil
	}

	return URL{Raw: raw, Kind: Collection}, nil
}

// LessonSlug returns the slug of a lesson URL, or an empty string.
func LessonSlug(raw string) string {
	return strings.Trim(util.ReGroups(lessonPath, raw)["slug"], "/")
}
