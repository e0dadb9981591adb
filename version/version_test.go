package version

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Compare", t, func() {
		Convey("Orders by major, minor then patch", func() {
			So(lo.Must(Compare("1.0.0", "0.9.9")), ShouldEqual, 1)
			So(lo.Must(Compare("0.1.0", "0.1.1")), ShouldEqual, -1)
			So(lo.Must(Compare("v0.2.0", "0.2.0")), ShouldEqual, 0)
		})

		Convey("Rejects malformed versions", func() {
			_, err := Compare("latest", "0.1.0")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestFetchLatest(t *testing.T) {
	ctx := context.Background()

	Convey("Given a releases endpoint", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/ok":
				_, _ = w.Write([]byte(`{"tag_name":"v1.2.3"}`))
			case "/empty":
				_, _ = w.Write([]byte(`{}`))
			default:
				http.NotFound(w, r)
			}
		}))
		defer server.Close()

		Convey("The tag is returned without its prefix", func() {
			version, err := fetchLatest(ctx, server.Client(), server.URL+"/ok")
			So(err, ShouldBeNil)
			So(version, ShouldEqual, "1.2.3")
		})

		Convey("An empty tag is an error", func() {
			_, err := fetchLatest(ctx, server.Client(), server.URL+"/empty")
			So(err, ShouldNotBeNil)
		})

		Convey("A missing release is an error", func() {
			_, err := fetchLatest(ctx, server.Client(), server.URL+"/missing")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestPrintNotice(t *testing.T) {
	Convey("printNotice", t, func() {
		var out bytes.Buffer

		Convey("Stays quiet when up to date", func() {
			printNotice(&out, "0.1.0", "0.1.0")
			So(out.String(), ShouldBeEmpty)
		})

		Convey("Mentions the newer release", func() {
			printNotice(&out, "0.2.0", "0.1.0")
			So(out.String(), ShouldContainSubstring, "New version is available")
			So(out.String(), ShouldContainSubstring, "releases/tag/v0.2.0")
		})
	})
}
