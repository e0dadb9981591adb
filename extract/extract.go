// Package extract pulls lesson data out of lesson page markup.
//
// Every function tolerates missing sections: absent markup yields an empty
// result, never an error. The selectors mirror the course site's markup.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	transcriptSelector = "#tab-transcript > div > p"
	codeLinkSelector   = "#tab-code strong > a"
	codeHintSelector   = "#tab-code em"

	contentURLSelector = `meta[itemprop="contentURL"]`
	nameSelector       = `meta[itemprop="name"]`
	mediaScriptSelect  = `script[src*="/embed/medias/"]`
)

// Parse builds a queryable document from page text.
func Parse(page string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return doc, nil
}

// Transcript joins the transcript paragraphs in document order.
func Transcript(doc *goquery.Document) string {
	paragraphs := doc.Find(transcriptSelector).Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	})
	return strings.Join(paragraphs, "\n")
}

// Code returns the primary code link followed by every hint in the code tab, one per line.
func Code(doc *goquery.Document) string {
	var lines []string

	if href, ok := doc.Find(codeLinkSelector).First().Attr("href"); ok && href != "" {
		lines = append(lines, href)
	}

	doc.Find(codeHintSelector).Each(func(_ int, s *goquery.Selection) {
		lines = append(lines, s.Text())
	})

	return strings.Join(lines, "\n")
}

// Title returns the lesson name declared next to a hosted-video contentURL.
// Both fields must share a parent element.
func Title(doc *goquery.Document) (string, bool) {
	var title string

	doc.Find(contentURLSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		content, _ := s.Attr("content")
		if !strings.Contains(content, "/deliveries/") {
			return true
		}

		name, ok := s.Parent().ChildrenFiltered(nameSelector).First().Attr("content")
		if !ok || strings.TrimSpace(name) == "" {
			return true
		}

		title = strings.TrimSpace(name)
		return false
	})

	return title, title != ""
}

// ContentURL returns the hosted-video contentURL of the page, if any.
// The delivery it names is not a reliable download location.
func ContentURL(doc *goquery.Document) (string, bool) {
	var found string

	doc.Find(contentURLSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		content, _ := s.Attr("content")
		if strings.Contains(content, "/deliveries/") {
			found = content
			return false
		}
		return true
	})

	return found, found != ""
}

// MetadataScript returns the absolute URL of the per-video metadata script referenced by the page.
func MetadataScript(doc *goquery.Document) (string, bool) {
	var found string

	doc.Find(mediaScriptSelect).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src, _ := s.Attr("src")
		if strings.HasSuffix(src, ".jsonp") {
			found = AbsoluteURL(src)
			return false
		}
		return true
	})

	return found, found != ""
}

// AbsoluteURL turns a protocol-relative reference into an https URL.
func AbsoluteURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "//") {
		return "https:" + ref
	}
	return ref
}
