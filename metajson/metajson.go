// Package metajson recovers a JSON object embedded in JavaScript source.
//
// The surrounding code offers no reliable delimiters, so the object is found
// by brace matching: for each opening brace, closing braces are tried from the
// rightmost one backwards and the first span that parses wins. This yields the
// largest valid object starting at that brace, nested structures included.
package metajson

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNotFound is returned when no brace-delimited span parses as JSON.
var ErrNotFound = errors.New("no embedded json object found")

// Locate searches the region of text between the first two occurrences of
// marker. With a single occurrence the region runs from the marker to the end
// of text; without one, all of text is searched.
func Locate(text, marker string) (json.RawMessage, error) {
	return LocateIn(Region(text, marker), 0)
}

// Region returns the part of text bounded by the first two occurrences of marker.
func Region(text, marker string) string {
	if marker == "" {
		return text
	}

	first := strings.Index(text, marker)
	if first < 0 {
		return text
	}

	rest := text[first+len(marker):]
	second := strings.Index(rest, marker)
	if second < 0 {
		return rest
	}

	return rest[:second]
}

// LocateIn returns the first parseable object whose opening brace lies at or after start.
func LocateIn(text string, start int) (json.RawMessage, error) {
	if start < 0 {
		start = 0
	}

	for open := indexFrom(text, '{', start); open >= 0; open = indexFrom(text, '{', open+1) {
		for end := strings.LastIndexByte(text, '}'); end > open; end = strings.LastIndexByte(text[:end], '}') {
			candidate := text[open : end+1]
			if json.Valid([]byte(candidate)) {
				return json.RawMessage(candidate), nil
			}
		}
	}

	return nil, ErrNotFound
}

// Decode locates the object and unmarshals it into v.
func Decode(text, marker string, v any) error {
	raw, err := Locate(text, marker)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func indexFrom(s string, c byte, from int) int {
	if from >= len(s) {
		return -1
	}
	i := strings.IndexByte(s[from:], c)
	if i < 0 {
		return -1
	}
	return from + i
}
