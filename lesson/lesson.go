// Package lesson resolves a single lesson page into a downloadable video.
package lesson

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/eggdl-cli/eggdl/constant"
	"github.com/eggdl-cli/eggdl/entry"
	"github.com/eggdl-cli/eggdl/extract"
	"github.com/eggdl-cli/eggdl/log"
	"github.com/eggdl-cli/eggdl/metajson"
	"github.com/eggdl-cli/eggdl/source"
	"github.com/eggdl-cli/eggdl/util"
	"github.com/samber/lo"
)

// ErrExtractionFailed covers every reason a lesson page cannot be resolved.
// Paywalled pages look the same as malformed ones, so reasons are not told apart.
var ErrExtractionFailed = errors.New("extraction failed")

// MediaMarker names the variable holding the media object in the metadata script.
const MediaMarker = "mediaJson"

const (
	originalType = "original"
	originalSlug = "original"
	videoExt     = ".mp4"
)

var deliveryID = regexp.MustCompile(`/deliveries/(?P<id>[^/.]+)\.bin`)

// Fetcher retrieves the text behind a URL.
type Fetcher interface {
	Get(ctx context.Context, url string) (string, error)
}

// Asset is one delivery variant listed in the media metadata.
type Asset struct {
	Type string `json:"type"`
	Slug string `json:"slug"`
	URL  string `json:"url"`
}

type media struct {
	Assets []Asset `json:"assets"`
	Media  *struct {
		Assets []Asset `json:"assets"`
	} `json:"media"`
}

func (m media) assets() ([]Asset, bool) {
	if m.Assets != nil {
		return m.Assets, true
	}
	if m.Media != nil && m.Media.Assets != nil {
		return m.Media.Assets, true
	}
	return nil, false
}

// Resolver turns lesson pages into videos.
type Resolver struct {
	fetcher Fetcher
}

// NewResolver returns a Resolver fetching through f.
func NewResolver(f Fetcher) *Resolver {
	return &Resolver{fetcher: f}
}

// Resolve fetches pageURL and resolves it.
func (r *Resolver) Resolve(ctx context.Context, pageURL string) (*source.Video, error) {
	page, err := r.fetcher.Get(ctx, pageURL)
	if err != nil {
		return nil, failed("fetch lesson page: %v", err)
	}
	return r.ResolvePage(ctx, pageURL, page)
}

// ResolvePage resolves an already fetched lesson page.
func (r *Resolver) ResolvePage(ctx context.Context, pageURL, page string) (*source.Video, error) {
	logger := log.With(log.Fields{"lesson": pageURL})

	doc, err := extract.Parse(page)
	if err != nil {
		return nil, failed("%v", err)
	}

	filename, err := Filename(doc, pageURL)
	if err != nil {
		return nil, err
	}
	if legacy, ok := extract.ContentURL(doc); ok {
		logger.Debugf("ignoring page contentURL %s", legacy)
	}

	transcript := extract.Transcript(doc)
	code := extract.Code(doc)

	scriptURL, ok := extract.MetadataScript(doc)
	if !ok {
		return nil, failed("no media metadata script on page")
	}

	script, err := r.fetcher.Get(ctx, scriptURL)
	if err != nil {
		return nil, failed("fetch media metadata %s: %v", scriptURL, err)
	}

	asset, err := OriginalAsset(script)
	if err != nil {
		logger.Warn(err)
		return nil, err
	}

	videoURL, err := DeliveryURL(asset)
	if err != nil {
		return nil, err
	}

	video, err := source.NewVideo(videoURL, filename, transcript, code)
	if err != nil {
		return nil, failed("%v", err)
	}

	logger.Infof("resolved %s", video.URL)
	return video, nil
}

// Filename picks the name the video is saved under: the page title when the
// page declares one next to its video, the lesson slug otherwise.
func Filename(doc *goquery.Document, pageURL string) (string, error) {
	if title, ok := extract.Title(doc); ok {
		return title + videoExt, nil
	}

	if slug := entry.LessonSlug(pageURL); slug != "" {
		return slug + videoExt, nil
	}

	return "", failed("no title or slug for %s", pageURL)
}

// OriginalAsset locates the media object in script and returns its original delivery.
func OriginalAsset(script string) (Asset, error) {
	var m media
	if err := metajson.Decode(script, MediaMarker, &m); err != nil {
		return Asset{}, failed("media metadata: %v", err)
	}

	assets, ok := m.assets()
	if !ok {
		return Asset{}, failed("media metadata has no assets")
	}

	asset, ok := lo.Find(assets, func(a Asset) bool {
		return a.Type == originalType && a.Slug == originalSlug
	})
	if !ok {
		return Asset{}, failed("no original asset among %s", util.Quantify(len(assets), "asset", "assets"))
	}

	return asset, nil
}

// DeliveryURL maps an asset to its direct mp4 location.
func DeliveryURL(asset Asset) (string, error) {
	id := util.ReGroups(deliveryID, asset.URL)["id"]
	if id == "" {
		return "", failed("no delivery id in %q", asset.URL)
	}
	return fmt.Sprintf("https://%s/deliveries/%s/file%s", constant.VideoHost, id, videoExt), nil
}

func failed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrExtractionFailed, fmt.Sprintf(format, args...))
}
