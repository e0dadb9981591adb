package extract

import (
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

const lessonPage = `<!DOCTYPE html>
<html>
<head><title>Map an array</title></head>
<body>
  <div itemscope itemtype="http://schema.org/VideoObject">
    <meta itemprop="name" content="Map an Array with Array.prototype.map">
    <meta itemprop="contentURL" content="https://embed-ssl.wistia.com/deliveries/legacy999.bin">
  </div>
  <div id="tab-transcript">
    <div>
      <p>First we create an array.</p>
      <p>Then we call map on it.</p>
    </div>
    <p>outside the inner div</p>
  </div>
  <div id="tab-code">
    <strong><a href="https://jsbin.com/abc/edit">Code</a></strong>
    <em>Uses ES2015</em>
    <em>Run it in the console</em>
  </div>
  <script src="//fast.wistia.com/assets/external/E-v1.js" async></script>
  <script src="//fast.wistia.com/embed/medias/h1x2y3z4.jsonp" async></script>
</body>
</html>`

const barePage = `<html><body><h1>Members only</h1></body></html>`

func TestTranscript(t *testing.T) {
	Convey("Transcript", t, func() {
		Convey("Joins the paragraphs of the inner container in order", func() {
			doc := lo.Must(Parse(lessonPage))
			So(Transcript(doc), ShouldEqual, "First we create an array.\nThen we call map on it.")
		})

		Convey("Is empty without a transcript container", func() {
			doc := lo.Must(Parse(barePage))
			So(Transcript(doc), ShouldBeEmpty)
		})

		Convey("Is empty for an empty container", func() {
			doc := lo.Must(Parse(`<div id="tab-transcript"><div></div></div>`))
			So(Transcript(doc), ShouldBeEmpty)
		})
	})
}

func TestCode(t *testing.T) {
	Convey("Code", t, func() {
		Convey("Lists the link then every hint", func() {
			doc := lo.Must(Parse(lessonPage))
			So(Code(doc), ShouldEqual, "https://jsbin.com/abc/edit\nUses ES2015\nRun it in the console")
		})

		Convey("Omits a missing link", func() {
			doc := lo.Must(Parse(`<div id="tab-code"><em>No code for this one</em></div>`))
			So(Code(doc), ShouldEqual, "No code for this one")
		})

		Convey("Is empty without a code tab", func() {
			doc := lo.Must(Parse(barePage))
			So(Code(doc), ShouldBeEmpty)
		})
	})
}

func TestTitle(t *testing.T) {
	Convey("Title", t, func() {
		Convey("Reads the name next to the contentURL", func() {
			title, ok := Title(lo.Must(Parse(lessonPage)))
			So(ok, ShouldBeTrue)
			So(title, ShouldEqual, "Map an Array with Array.prototype.map")
		})

		Convey("Ignores a name that is not co-located", func() {
			page := `<div><meta itemprop="name" content="Elsewhere"></div>
<div><meta itemprop="contentURL" content="https://embed-ssl.wistia.com/deliveries/x.bin"></div>`
			_, ok := Title(lo.Must(Parse(page)))
			So(ok, ShouldBeFalse)
		})

		Convey("Needs a delivery contentURL", func() {
			page := `<div><meta itemprop="name" content="Lesson"><meta itemprop="contentURL" content="https://cdn.example/x.mp4"></div>`
			_, ok := Title(lo.Must(Parse(page)))
			So(ok, ShouldBeFalse)
		})
	})

	Convey("ContentURL", t, func() {
		u, ok := ContentURL(lo.Must(Parse(lessonPage)))
		So(ok, ShouldBeTrue)
		So(u, ShouldEqual, "https://embed-ssl.wistia.com/deliveries/legacy999.bin")

		_, ok = ContentURL(lo.Must(Parse(barePage)))
		So(ok, ShouldBeFalse)
	})
}

func TestMetadataScript(t *testing.T) {
	Convey("MetadataScript", t, func() {
		Convey("Finds the media script and makes it absolute", func() {
			ref, ok := MetadataScript(lo.Must(Parse(lessonPage)))
			So(ok, ShouldBeTrue)
			So(ref, ShouldEqual, "https://fast.wistia.com/embed/medias/h1x2y3z4.jsonp")
		})

		Convey("Reports absence", func() {
			_, ok := MetadataScript(lo.Must(Parse(barePage)))
			So(ok, ShouldBeFalse)
		})
	})

	Convey("AbsoluteURL", t, func() {
		So(AbsoluteURL("//fast.wistia.com/x.jsonp"), ShouldEqual, "https://fast.wistia.com/x.jsonp")
		So(AbsoluteURL("http://fast.wistia.com/x.jsonp"), ShouldEqual, "http://fast.wistia.com/x.jsonp")
	})
}
