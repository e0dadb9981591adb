package download

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/eggdl-cli/eggdl/filesystem"
	"github.com/eggdl-cli/eggdl/source"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func newServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/deliveries/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("video:" + r.URL.Path))
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	})
	return httptest.NewServer(mux)
}

func video(server *httptest.Server, id, filename string) *source.Video {
	return lo.Must(source.NewVideo(server.URL+"/deliveries/"+id, filename, "transcript of "+id, "code of "+id))
}

func read(path string) string {
	return string(lo.Must(filesystem.API().ReadFile(path)))
}

func TestDownload(t *testing.T) {
	ctx := context.Background()
	server := newServer()
	defer server.Close()

	Convey("Given videos to download", t, func() {
		filesystem.SetMemMapFs()
		var out bytes.Buffer
		dir := filepath.Join("out", "redux")

		videos := []*source.Video{
			video(server, "a", "first.mp4"),
			video(server, "b", "second.mp4"),
		}

		Convey("Each video gets a numbered folder with its code and transcript", func() {
			summary, err := New(server.Client(), Options{Dir: dir, Out: &out}).All(ctx, videos)
			So(err, ShouldBeNil)
			So(summary, ShouldResemble, Summary{Saved: 2})

			So(read(filepath.Join(dir, "1", "first.mp4")), ShouldEqual, "video:/deliveries/a")
			So(read(filepath.Join(dir, "2", "second.mp4")), ShouldEqual, "video:/deliveries/b")
			So(read(filepath.Join(dir, "1", "code")), ShouldEqual, "code of a")
			So(read(filepath.Join(dir, "2", "transcript")), ShouldEqual, "transcript of b")
			So(filesystem.IsFile(filepath.Join(dir, "1", "first.mp4.part")), ShouldBeFalse)
		})

		Convey("Saved videos are reported", func() {
			var saved []string
			options := Options{Dir: dir, Out: &out, OnSaved: func(v *source.Video, path string) error {
				saved = append(saved, v.Filename+"@"+path)
				return nil
			}}

			_, err := New(server.Client(), options).All(ctx, videos)
			So(err, ShouldBeNil)
			So(saved, ShouldResemble, []string{
				"first.mp4@" + filepath.Join(dir, "1", "first.mp4"),
				"second.mp4@" + filepath.Join(dir, "2", "second.mp4"),
			})
		})

		Convey("Counting prefixes the padded number", func() {
			many := make([]*source.Video, 10)
			for i := range many {
				many[i] = video(server, "v", "lesson.mp4")
			}

			_, err := New(server.Client(), Options{Dir: dir, Count: true, Out: &out}).All(ctx, many)
			So(err, ShouldBeNil)
			So(filesystem.IsFile(filepath.Join(dir, "01", "01-lesson.mp4")), ShouldBeTrue)
			So(filesystem.IsFile(filepath.Join(dir, "10", "10-lesson.mp4")), ShouldBeTrue)
		})

		Convey("Existing videos are skipped", func() {
			existing := filepath.Join(dir, "1", "first.mp4")
			So(filesystem.API().MkdirAll(filepath.Dir(existing), 0o755), ShouldBeNil)
			So(filesystem.API().WriteFile(existing, []byte("old"), 0o644), ShouldBeNil)

			summary, err := New(server.Client(), Options{Dir: dir, Out: &out}).All(ctx, videos)
			So(err, ShouldBeNil)
			So(summary, ShouldResemble, Summary{Saved: 1, Skipped: 1})
			So(read(existing), ShouldEqual, "old")
			So(out.String(), ShouldContainSubstring, "File first.mp4 already exists, skip")

			Convey("Unless forced", func() {
				summary, err := New(server.Client(), Options{Dir: dir, Force: true, Out: &out}).All(ctx, videos)
				So(err, ShouldBeNil)
				So(summary.Saved, ShouldEqual, 2)
				So(read(existing), ShouldEqual, "video:/deliveries/a")
			})
		})

		Convey("Filenames are made filesystem safe", func() {
			_, err := New(server.Client(), Options{Dir: dir, Out: &out}).All(ctx, []*source.Video{video(server, "a", "Map an Array.mp4")})
			So(err, ShouldBeNil)
			So(filesystem.IsFile(filepath.Join(dir, "1", "Map_an_Array.mp4")), ShouldBeTrue)
		})

		Convey("A progress bar is drawn when enabled", func() {
			_, err := New(server.Client(), Options{Dir: dir, Progress: true, Out: &out}).All(ctx, videos[:1])
			So(err, ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "Downloading video 1 out of 1: 'first.mp4'")
		})

		Convey("A failed download stops the batch", func() {
			gone := lo.Must(source.NewVideo(server.URL+"/gone", "gone.mp4", "", ""))
			summary, err := New(server.Client(), Options{Dir: dir, Out: &out}).All(ctx, []*source.Video{gone, videos[0]})
			So(err, ShouldNotBeNil)
			So(summary.Saved, ShouldEqual, 0)
			So(filesystem.IsFile(filepath.Join(dir, "1", "gone.mp4")), ShouldBeFalse)
		})

		Convey("A file in place of a folder is an error", func() {
			So(filesystem.API().MkdirAll(dir, 0o755), ShouldBeNil)
			So(filesystem.API().WriteFile(filepath.Join(dir, "1"), []byte("x"), 0o644), ShouldBeNil)

			_, err := New(server.Client(), Options{Dir: dir, Out: &out}).All(ctx, videos)
			So(errors.Is(err, ErrNotDirectory), ShouldBeTrue)
		})
	})
}
