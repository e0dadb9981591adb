// Package download saves resolved videos, with their transcript and code, into numbered folders.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/eggdl-cli/eggdl/filesystem"
	"github.com/eggdl-cli/eggdl/icon"
	"github.com/eggdl-cli/eggdl/log"
	"github.com/eggdl-cli/eggdl/source"
	"github.com/eggdl-cli/eggdl/style"
	"github.com/eggdl-cli/eggdl/util"
)

const (
	codeFile       = "code"
	transcriptFile = "transcript"
	partSuffix     = ".part"
)

// ErrNotDirectory is returned when a file occupies a folder the download needs.
var ErrNotDirectory = errors.New("not a directory")

// Options control where and how videos are saved.
type Options struct {
	// Dir receives one numbered folder per video.
	Dir string
	// Count prefixes each video file with its padded number.
	Count bool
	// Force overwrites videos that already exist.
	Force bool
	// Progress draws a progress bar while a video streams.
	Progress bool
	// Out receives the console messages. Defaults to os.Stdout.
	Out io.Writer
	// OnSaved, when set, is told about every video written to disk.
	OnSaved func(video *source.Video, path string) error
}

// Status tells what happened to one video.
type Status int

const (
	Saved Status = iota
	Skipped
)

// Summary counts the outcome of a batch.
type Summary struct {
	Saved   int
	Skipped int
}

// Downloader streams videos over client.
type Downloader struct {
	client  *http.Client
	options Options
}

// New returns a Downloader. A nil client means http.DefaultClient.
func New(client *http.Client, options Options) *Downloader {
	if client == nil {
		client = http.DefaultClient
	}
	if options.Out == nil {
		options.Out = os.Stdout
	}
	return &Downloader{client: client, options: options}
}

// All saves videos in order and stops at the first failed download.
func (d *Downloader) All(ctx context.Context, videos []*source.Video) (Summary, error) {
	var summary Summary

	if err := ensureDir(d.options.Dir); err != nil {
		return summary, err
	}

	for i, video := range videos {
		status, err := d.One(ctx, i+1, len(videos), video)
		if err != nil {
			return summary, err
		}

		switch status {
		case Saved:
			summary.Saved++
		case Skipped:
			summary.Skipped++
		}
	}

	return summary, nil
}

// One saves video as number n out of total.
func (d *Downloader) One(ctx context.Context, n, total int, video *source.Video) (Status, error) {
	counter := util.PadCounter(n, total)
	dir := filepath.Join(d.options.Dir, counter)
	if err := ensureDir(dir); err != nil {
		return Saved, err
	}

	filename := util.SanitizeFilename(video.Filename)
	if d.options.Count {
		filename = counter + "-" + filename
	}
	path := filepath.Join(dir, filename)

	if !d.options.Force && filesystem.IsFile(path) {
		fmt.Fprintf(d.options.Out, "%s File %s already exists, skip\n", icon.Get(icon.Skip), filename)
		return Skipped, nil
	}

	label := fmt.Sprintf("Downloading video %s out of %d: '%s'", counter, total, video.Filename)
	if err := d.fetch(ctx, video.URL, path, label); err != nil {
		return Saved, fmt.Errorf("download of '%s' failed: %w", video.URL, err)
	}

	api := filesystem.API()
	if err := api.WriteFile(filepath.Join(dir, codeFile), []byte(video.Code), os.ModePerm); err != nil {
		return Saved, err
	}
	if err := api.WriteFile(filepath.Join(dir, transcriptFile), []byte(video.Transcript), os.ModePerm); err != nil {
		return Saved, err
	}

	if d.options.OnSaved != nil {
		if err := d.options.OnSaved(video, path); err != nil {
			log.With(log.Fields{"path": path}).Warn(err)
		}
	}

	fmt.Fprintf(d.options.Out, "%s %s\n", icon.Get(icon.Success), style.Faint(path))
	return Saved, nil
}

// fetch streams url into a sibling part file and moves it into place once complete.
func (d *Downloader) fetch(ctx context.Context, url, path, label string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	api := filesystem.API()
	part := path + partSuffix
	file, err := api.Create(part)
	if err != nil {
		return err
	}

	var body io.Reader = resp.Body
	if d.options.Progress {
		bar := newBar(d.options.Out, label, resp.ContentLength)
		defer bar.done()
		body = io.TeeReader(resp.Body, bar)
	} else {
		log.Info(label)
	}

	if _, err = io.Copy(file, body); err != nil {
		_ = file.Close()
		_ = api.Remove(part)
		return err
	}

	if err = file.Close(); err != nil {
		return err
	}

	return api.Rename(part, path)
}

// ensureDir creates dir unless it already exists as a directory.
func ensureDir(dir string) error {
	api := filesystem.API()

	info, err := api.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return fmt.Errorf("can't create the directory '%s' because a file with the same name exists: %w", dir, ErrNotDirectory)
	case !errors.Is(err, os.ErrNotExist):
		return err
	}

	if err = api.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("creating the directory '%s' failed: %w", dir, err)
	}
	return nil
}
