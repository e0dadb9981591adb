package metajson

import (
	"encoding/json"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type media struct {
	Assets []struct {
		Type string `json:"type"`
		Slug string `json:"slug"`
		URL  string `json:"url"`
	} `json:"assets"`
}

func TestLocate(t *testing.T) {
	Convey("Given a metadata script with unrelated braces around the object", t, func() {
		script := `var x = {a:1}; mediaJson = {"assets":[{"type":"original","slug":"original","url":"https://x.wistia.com/deliveries/ID123.bin"}]}; mediaJson`

		raw, err := Locate(script, "mediaJson")

		Convey("The assets object is recovered exactly", func() {
			So(err, ShouldBeNil)
			So(string(raw), ShouldEqual, `{"assets":[{"type":"original","slug":"original","url":"https://x.wistia.com/deliveries/ID123.bin"}]}`)

			var m media
			So(json.Unmarshal(raw, &m), ShouldBeNil)
			So(m.Assets, ShouldHaveLength, 1)
			So(m.Assets[0].URL, ShouldContainSubstring, "ID123")
		})
	})

	Convey("Given code between the markers that closes more braces than the object", t, func() {
		script := `if (w) { mediaJson = {"a":{"b":{"c":[1,2,{"d":"}"}]}}}; run(function(){ return {}; }); } mediaJson;`

		raw, err := Locate(script, "mediaJson")

		Convey("The largest valid span from the first brace wins", func() {
			So(err, ShouldBeNil)
			So(string(raw), ShouldEqual, `{"a":{"b":{"c":[1,2,{"d":"}"}]}}}`)
		})
	})

	Convey("Given a single marker occurrence", t, func() {
		script := `var skip = {"no":1}; window.mediaJson = {"assets":[]}; trailing();`

		Convey("Only the text after the marker is searched", func() {
			raw, err := Locate(script, "mediaJson")
			So(err, ShouldBeNil)
			So(string(raw), ShouldEqual, `{"assets":[]}`)
		})
	})

	Convey("Given no marker at all", t, func() {
		Convey("The whole text is searched", func() {
			raw, err := Locate(`callback({"media":{"assets":[]}});`, "mediaJson")
			So(err, ShouldBeNil)
			So(string(raw), ShouldEqual, `{"media":{"assets":[]}}`)
		})
	})

	Convey("Given text where no balanced span parses", t, func() {
		Convey("NotFound is reported", func() {
			for _, text := range []string{
				``,
				`no braces at all`,
				`var a = {b: c}; } {`,
				`mediaJson = {"open": [1, 2; mediaJson`,
				`}}}{{{`,
			} {
				raw, err := Locate(text, "mediaJson")
				So(raw, ShouldBeNil)
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			}
		})
	})
}

func TestLocateIn(t *testing.T) {
	Convey("LocateIn honours the start offset", t, func() {
		text := `{"first":1} {"second":2}`

		raw, err := LocateIn(text, 0)
		So(err, ShouldBeNil)
		So(string(raw), ShouldEqual, `{"first":1}`)

		raw, err = LocateIn(text, 1)
		So(err, ShouldBeNil)
		So(string(raw), ShouldEqual, `{"second":2}`)

		_, err = LocateIn(text, len(text))
		So(errors.Is(err, ErrNotFound), ShouldBeTrue)
	})
}

func TestDecode(t *testing.T) {
	Convey("Decode unmarshals the located object", t, func() {
		var m media
		err := Decode(`mediaJson = {"assets":[{"type":"original","slug":"original","url":"u"}]}; mediaJson`, "mediaJson", &m)
		So(err, ShouldBeNil)
		So(m.Assets[0].Slug, ShouldEqual, "original")
	})
}
