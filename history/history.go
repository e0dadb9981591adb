// Package history records the videos that were downloaded and where they went.
package history

import (
	"time"

	"github.com/eggdl-cli/eggdl/filesystem"
	"github.com/eggdl-cli/eggdl/source"
	"github.com/eggdl-cli/eggdl/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// SavedVideo is one downloaded video.
type SavedVideo struct {
	// URL is the download location the video was fetched from.
	URL      string    `json:"url"`
	Filename string    `json:"filename"`
	// Path is where the file was written.
	Path    string    `json:"path"`
	SavedAt time.Time `json:"saved_at"`
}

var cacher = gache.New[map[string]*SavedVideo](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns every record keyed by download URL.
func Get() (map[string]*SavedVideo, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedVideo), nil
	}
	return cached, nil
}

// Save records that video was written to path. Saving the same video again
// replaces the previous record.
func Save(video *source.Video, path string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	saved[video.URL] = &SavedVideo{
		URL:      video.URL,
		Filename: video.Filename,
		Path:     path,
		SavedAt:  time.Now(),
	}

	return cacher.Set(saved)
}

// Recent returns up to limit records, newest first. A non-positive limit returns all of them.
func Recent(limit int) ([]*SavedVideo, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	records := lo.Values(saved)
	slices.SortFunc(records, func(a, b *SavedVideo) int {
		return b.SavedAt.Compare(a.SavedAt)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Remove deletes the record of the video downloaded from url.
func Remove(url string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, url)
	return cacher.Set(saved)
}
