// Package source defines the records that flow through lesson resolution and into the download stage.
package source

import (
	"errors"
	"strings"
)

// ErrIncompleteVideo is returned by NewVideo when a required field is missing.
var ErrIncompleteVideo = errors.New("incomplete video descriptor")

// Video describes one downloadable lesson. Values are never modified after NewVideo returns them.
type Video struct {
	// Direct, stable download location of the video file.
	URL string `json:"url" jsonschema:"minLength=1"`
	// Filename the video is saved under.
	Filename string `json:"filename" jsonschema:"minLength=1"`
	// Transcript paragraphs joined by newlines. May be empty.
	Transcript string `json:"transcript"`
	// Code link followed by textual hints, one per line. May be empty.
	Code string `json:"code"`
}

// NewVideo builds a Video, refusing an empty URL or filename.
func NewVideo(url, filename, transcript, code string) (*Video, error) {
	url = strings.TrimSpace(url)
	filename = strings.TrimSpace(filename)

	switch {
	case url == "":
		return nil, errors.Join(ErrIncompleteVideo, errors.New("missing url"))
	case filename == "":
		return nil, errors.Join(ErrIncompleteVideo, errors.New("missing filename"))
	}

	return &Video{
		URL:        url,
		Filename:   filename,
		Transcript: transcript,
		Code:       code,
	}, nil
}

// String returns the filename for display.
func (v *Video) String() string {
	return v.Filename
}
