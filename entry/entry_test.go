package entry

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Parse", t, func() {
		Convey("A lesson URL is a lesson with its slug", func() {
			u, err := Parse("https://egghead.io/lessons/react-use-hooks?pl=react-course")
			So(err, ShouldBeNil)
			So(u.Kind, ShouldEqual, Lesson)
			So(u.Slug, ShouldEqual, "react-use-hooks")
			So(u.Kind.String(), ShouldEqual, "lesson")
		})

		Convey("Series, playlists and courses are collections", func() {
			for _, raw := range []string{
				"https://egghead.io/series/getting-started-with-redux",
				"https://egghead.io/playlists/my-list-1234",
				"https://egghead.io/courses/intro-to-go",
			} {
				u, err := Parse(raw)
				So(err, ShouldBeNil)
				So(u.Kind, ShouldEqual, Collection)
				So(u.Slug, ShouldBeEmpty)
			}
		})

		Convey("Anything else is unsupported", func() {
			_, err := Parse("https://example.com/lessons/foo")
			So(errors.Is(err, ErrUnsupported), ShouldBeTrue)

			_, err = Parse("https://egghead.io/instructors/someone")
			So(errors.Is(err, ErrUnsupported), ShouldBeTrue)
		})
	})

	Convey("LessonSlug", t, func() {
		So(LessonSlug("https://egghead.io/lessons/js-array-map/"), ShouldEqual, "js-array-map")
		So(LessonSlug("https://egghead.io/courses/js"), ShouldBeEmpty)
	})
}
