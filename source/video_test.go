package source

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNewVideo(t *testing.T) {
	Convey("NewVideo", t, func() {
		Convey("Builds a complete descriptor", func() {
			v, err := NewVideo("https://embed-ssl.wistia.com/deliveries/abc/file.mp4", "intro.mp4", "hello", "")
			So(err, ShouldBeNil)
			So(v.URL, ShouldEqual, "https://embed-ssl.wistia.com/deliveries/abc/file.mp4")
			So(v.Filename, ShouldEqual, "intro.mp4")
			So(v.Transcript, ShouldEqual, "hello")
			So(v.Code, ShouldBeEmpty)
			So(v.String(), ShouldEqual, "intro.mp4")
		})

		Convey("Rejects an empty url", func() {
			v, err := NewVideo("  ", "intro.mp4", "", "")
			So(v, ShouldBeNil)
			So(errors.Is(err, ErrIncompleteVideo), ShouldBeTrue)
		})

		Convey("Rejects an empty filename", func() {
			v, err := NewVideo("https://x/file.mp4", "", "", "")
			So(v, ShouldBeNil)
			So(errors.Is(err, ErrIncompleteVideo), ShouldBeTrue)
		})
	})
}
