// Package collection lists the lesson links of a series, playlist or course page.
package collection

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/eggdl-cli/eggdl/constant"
	"github.com/eggdl-cli/eggdl/source"
)

// lessonLink matches the anchors the site uses for each lesson row.
var lessonLink = fmt.Sprintf(`a[href^="%s/lessons/"][class^="base no-underline mb3"]`, constant.SiteURL)

// Discover returns every lesson link of the page in document order.
// Repeated links are kept, one entry per occurrence.
func Discover(page string) ([]source.Lesson, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse collection page: %w", err)
	}

	return DiscoverIn(doc), nil
}

// DiscoverIn is Discover over an already parsed document.
func DiscoverIn(doc *goquery.Document) []source.Lesson {
	lessons := make([]source.Lesson, 0)

	doc.Find(lessonLink).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		lessons = append(lessons, source.Lesson{
			URL:   href,
			Index: len(lessons),
		})
	})

	return lessons
}
