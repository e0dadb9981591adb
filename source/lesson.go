package source

import (
	"sort"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Lesson references one member lesson page. Index is its position in discovery order.
type Lesson struct {
	URL   string `json:"url"`
	Index int    `json:"index"`
}

func (l Lesson) String() string {
	return l.URL
}

// Failure records a lesson that could not be resolved.
type Failure struct {
	Lesson Lesson `json:"lesson"`
	Reason string `json:"reason"`
}

// Outcome is the settled result of resolving one lesson.
type Outcome struct {
	Lesson Lesson
	Result mo.Result[*Video]
}

// Resolved wraps a successful resolution.
func Resolved(lesson Lesson, video *Video) Outcome {
	return Outcome{Lesson: lesson, Result: mo.Ok(video)}
}

// Failed wraps a failed resolution.
func Failed(lesson Lesson, err error) Outcome {
	return Outcome{Lesson: lesson, Result: mo.Err[*Video](err)}
}

// Partition splits outcomes into videos, ordered by lesson discovery index,
// and failures in the same order.
func Partition(outcomes []Outcome) ([]*Video, []Failure) {
	sorted := make([]Outcome, len(outcomes))
	copy(sorted, outcomes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Lesson.Index < sorted[j].Lesson.Index
	})

	ok, failed := lo.FilterReject(sorted, func(o Outcome, _ int) bool {
		return o.Result.IsOk()
	})

	videos := lo.Map(ok, func(o Outcome, _ int) *Video {
		return o.Result.MustGet()
	})
	failures := lo.Map(failed, func(o Outcome, _ int) Failure {
		return Failure{Lesson: o.Lesson, Reason: o.Result.Error().Error()}
	})

	return videos, failures
}
