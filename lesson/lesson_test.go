package lesson

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const (
	pageURL   = "https://egghead.io/lessons/js-map-an-array"
	scriptURL = "https://fast.wistia.com/embed/medias/h1x2y3z4.jsonp"
)

const page = `<html><body>
<div itemscope itemtype="http://schema.org/VideoObject">
  <meta itemprop="name" content="Map an Array">
  <meta itemprop="contentURL" content="https://embed-ssl.wistia.com/deliveries/unreliable.bin">
</div>
<div id="tab-transcript"><div><p>One.</p><p>Two.</p></div></div>
<div id="tab-code"><strong><a href="https://jsbin.com/abc">code</a></strong><em>hint</em></div>
<script src="//fast.wistia.com/embed/medias/h1x2y3z4.jsonp" async></script>
</body></html>`

const script = `window.Wistia = window.Wistia || {}; var cfg = {a:1};
mediaJson = {"assets":[
  {"type":"iphone_video","slug":"mp4_h264_1","url":"https://embed-ssl.wistia.com/deliveries/small01.bin"},
  {"type":"original","slug":"original","url":"https://embed-ssl.wistia.com/deliveries/ID123.bin"}
]};
Wistia.embed(mediaJson);`

func TestResolve(t *testing.T) {
	ctx := context.Background()

	Convey("Given a lesson page and its media metadata", t, func() {
		fetcher := newPages(map[string]string{pageURL: page, scriptURL: script})
		resolver := NewResolver(fetcher)

		Convey("The video is built from the original asset", func() {
			video, err := resolver.Resolve(ctx, pageURL)
			So(err, ShouldBeNil)
			So(video.URL, ShouldEqual, "https://embed-ssl.wistia.com/deliveries/ID123/file.mp4")
			So(video.Filename, ShouldEqual, "Map an Array.mp4")
			So(video.Transcript, ShouldEqual, "One.\nTwo.")
			So(video.Code, ShouldEqual, "https://jsbin.com/abc\nhint")
			So(fetcher.hits[scriptURL], ShouldEqual, 1)
		})

		Convey("Resolving twice yields equal videos", func() {
			first, err := resolver.Resolve(ctx, pageURL)
			So(err, ShouldBeNil)
			second, err := resolver.Resolve(ctx, pageURL)
			So(err, ShouldBeNil)
			So(*second, ShouldResemble, *first)
		})
	})

	Convey("Given a page without a title", t, func() {
		bare := `<html><body><script src="//fast.wistia.com/embed/medias/h1x2y3z4.jsonp"></script></body></html>`
		resolver := NewResolver(newPages(map[string]string{pageURL: bare, scriptURL: script}))

		Convey("The lesson slug names the file and the optional parts are empty", func() {
			video, err := resolver.Resolve(ctx, pageURL)
			So(err, ShouldBeNil)
			So(video.Filename, ShouldEqual, "js-map-an-array.mp4")
			So(video.Transcript, ShouldBeEmpty)
			So(video.Code, ShouldBeEmpty)
		})
	})

	Convey("Extraction fails", t, func() {
		Convey("When the page cannot be fetched", func() {
			_, err := NewResolver(newPages(nil)).Resolve(ctx, pageURL)
			So(errors.Is(err, ErrExtractionFailed), ShouldBeTrue)
		})

		Convey("When the page has no metadata script", func() {
			resolver := NewResolver(newPages(map[string]string{pageURL: `<html><body>Sign up to watch</body></html>`}))
			_, err := resolver.Resolve(ctx, pageURL)
			So(errors.Is(err, ErrExtractionFailed), ShouldBeTrue)
		})

		Convey("When the metadata script cannot be fetched", func() {
			resolver := NewResolver(newPages(map[string]string{pageURL: page}))
			_, err := resolver.Resolve(ctx, pageURL)
			So(errors.Is(err, ErrExtractionFailed), ShouldBeTrue)
		})

		Convey("When the metadata script holds no json", func() {
			resolver := NewResolver(newPages(map[string]string{pageURL: page, scriptURL: `Wistia.noop();`}))
			_, err := resolver.Resolve(ctx, pageURL)
			So(errors.Is(err, ErrExtractionFailed), ShouldBeTrue)
		})

		Convey("When the json lacks assets", func() {
			resolver := NewResolver(newPages(map[string]string{pageURL: page, scriptURL: `mediaJson = {"name":"x"}; mediaJson`}))
			_, err := resolver.Resolve(ctx, pageURL)
			So(errors.Is(err, ErrExtractionFailed), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "no assets")
		})

		Convey("When no asset is the original", func() {
			only := `mediaJson = {"assets":[{"type":"original","slug":"mp4","url":"https://x/deliveries/a.bin"}]}; mediaJson`
			resolver := NewResolver(newPages(map[string]string{pageURL: page, scriptURL: only}))
			_, err := resolver.Resolve(ctx, pageURL)
			So(errors.Is(err, ErrExtractionFailed), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "no original asset")
		})
	})
}

func TestOriginalAsset(t *testing.T) {
	Convey("OriginalAsset also reads assets nested under media", t, func() {
		nested := `Wistia.embed({"media":{"assets":[{"type":"original","slug":"original","url":"https://x/deliveries/NEST9.bin"}]}});`
		asset, err := OriginalAsset(nested)
		So(err, ShouldBeNil)
		So(asset.URL, ShouldEqual, "https://x/deliveries/NEST9.bin")
	})
}

func TestDeliveryURL(t *testing.T) {
	Convey("DeliveryURL", t, func() {
		u, err := DeliveryURL(Asset{URL: "https://embed-ssl.wistia.com/deliveries/abc123def.bin"})
		So(err, ShouldBeNil)
		So(u, ShouldEqual, "https://embed-ssl.wistia.com/deliveries/abc123def/file.mp4")

		_, err = DeliveryURL(Asset{URL: "https://embed-ssl.wistia.com/other/abc.mp4"})
		So(errors.Is(err, ErrExtractionFailed), ShouldBeTrue)
	})
}
