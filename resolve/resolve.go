// Package resolve turns an entry URL into the set of videos to download.
package resolve

import (
	"context"
	"errors"
	"fmt"

	"github.com/eggdl-cli/eggdl/api"
	"github.com/eggdl-cli/eggdl/collection"
	"github.com/eggdl-cli/eggdl/config"
	"github.com/eggdl-cli/eggdl/entry"
	"github.com/eggdl-cli/eggdl/extract"
	"github.com/eggdl-cli/eggdl/lesson"
	"github.com/eggdl-cli/eggdl/log"
	"github.com/eggdl-cli/eggdl/source"
	"github.com/eggdl-cli/eggdl/util"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

var (
	// ErrTerminal aborts the run: the entry URL is unsupported or its page cannot be fetched.
	ErrTerminal = errors.New("terminal failure")
	// ErrEmptyResult means nothing was resolved, so there is nothing to download.
	ErrEmptyResult = errors.New("no video found")
)

// Fetcher is the network surface resolution needs.
type Fetcher interface {
	Get(ctx context.Context, url string) (string, error)
	GetJSON(ctx context.Context, url string, v any) error
}

// Result holds the resolved videos in discovery order and the lessons that failed.
type Result struct {
	Videos   []*source.Video  `json:"videos"`
	Failures []source.Failure `json:"failures"`
}

// Orchestrator resolves one entry URL.
type Orchestrator struct {
	cfg      config.Run
	fetcher  Fetcher
	resolver *lesson.Resolver
	api      *api.Client
}

// New returns an Orchestrator for cfg. The lessons API at apiBase is only
// consulted for single lessons of signed-in pro runs.
func New(cfg config.Run, fetcher Fetcher, apiBase string) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		fetcher:  fetcher,
		resolver: lesson.NewResolver(fetcher),
		api:      api.New(apiBase, fetcher),
	}
}

// ResolveAll resolves the configured entry URL. The returned Result is
// non-nil whenever the entry page was reached, even if ErrEmptyResult is returned,
// so callers can report the failures.
func (o *Orchestrator) ResolveAll(ctx context.Context) (*Result, error) {
	target, err := entry.Parse(o.cfg.EntryURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTerminal, err)
	}

	log.Infof("resolving %s %s", target.Kind, target.Raw)

	var result *Result
	switch target.Kind {
	case entry.Lesson:
		result, err = o.resolveLesson(ctx, target)
	default:
		result, err = o.resolveCollection(ctx, target)
	}
	if err != nil {
		return nil, err
	}

	if len(result.Videos) == 0 {
		return result, ErrEmptyResult
	}

	log.Infof(
		"resolved %s, %s failed",
		util.Quantify(len(result.Videos), "video", "videos"),
		util.Quantify(len(result.Failures), "lesson", "lessons"),
	)
	return result, nil
}

func (o *Orchestrator) resolveLesson(ctx context.Context, target entry.URL) (*Result, error) {
	ref := source.Lesson{URL: target.Raw}

	if o.cfg.Pro && o.cfg.Authenticated() {
		if video, ok := o.fromAPI(ctx, target); ok {
			return &Result{Videos: []*source.Video{video}, Failures: []source.Failure{}}, nil
		}
	}

	page, err := o.fetcher.Get(ctx, target.Raw)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch entry page: %w", ErrTerminal, err)
	}

	video, err := o.resolver.ResolvePage(ctx, target.Raw, page)
	videos, failures := source.Partition([]source.Outcome{outcome(ref, video, err)})
	return &Result{Videos: videos, Failures: failures}, nil
}

// fromAPI asks the lessons API for a direct download. Any problem falls back
// to scraping the page.
func (o *Orchestrator) fromAPI(ctx context.Context, target entry.URL) (*source.Video, bool) {
	logger := log.With(log.Fields{"lesson": target.Raw, "slug": target.Slug})

	found, err := o.api.Find(ctx, target.Slug)
	if err != nil {
		logger.Warnf("lessons api: %v", err)
		return nil, false
	}

	match, ok := found.Get()
	if !ok {
		logger.Debug("lessons api has no matching lesson")
		return nil, false
	}

	filename, ok := match.Filename()
	if !ok {
		filename = target.Slug + ".mp4"
	}

	var transcript, code string
	if match.LessonHTTPURL != "" {
		page, err := o.fetcher.Get(ctx, match.LessonHTTPURL)
		if err != nil {
			logger.Warnf("lesson page for transcript: %v", err)
		} else if doc, err := extract.Parse(page); err == nil {
			transcript = extract.Transcript(doc)
			code = extract.Code(doc)
		}
	}

	video, err := source.NewVideo(match.DownloadURL, filename, transcript, code)
	if err != nil {
		logger.Warn(err)
		return nil, false
	}

	logger.Infof("resolved %s through the lessons api", video.URL)
	return video, true
}

func (o *Orchestrator) resolveCollection(ctx context.Context, target entry.URL) (*Result, error) {
	page, err := o.fetcher.Get(ctx, target.Raw)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch entry page: %w", ErrTerminal, err)
	}

	lessons, err := collection.Discover(page)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTerminal, err)
	}

	log.Infof("discovered %s", util.Quantify(len(lessons), "lesson", "lessons"))

	outcomes := o.resolveEach(ctx, lessons)
	videos, failures := source.Partition(outcomes)
	return &Result{Videos: videos, Failures: failures}, nil
}

// resolveEach resolves every lesson and waits for all of them. Per-lesson
// errors are kept in the outcomes.
func (o *Orchestrator) resolveEach(ctx context.Context, lessons []source.Lesson) []source.Outcome {
	var (
		g        errgroup.Group
		limiter  *rate.Limiter
		outcomes = make([]source.Outcome, len(lessons))
	)

	if o.cfg.Concurrency > 0 {
		g.SetLimit(o.cfg.Concurrency)
	}
	if o.cfg.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(o.cfg.Rate), 1)
	}

	for i, l := range lessons {
		g.Go(func() error {
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					outcomes[i] = source.Failed(l, err)
					return nil
				}
			}

			video, err := o.resolver.Resolve(ctx, l.URL)
			outcomes[i] = outcome(l, video, err)
			return nil
		})
	}

	_ = g.Wait()
	return outcomes
}

func outcome(l source.Lesson, video *source.Video, err error) source.Outcome {
	if err != nil {
		log.With(log.Fields{"lesson": l.URL}).Warn(err)
		return source.Failed(l, err)
	}
	return source.Resolved(l, video)
}
