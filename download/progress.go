package download

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/eggdl-cli/eggdl/color"
	"github.com/eggdl-cli/eggdl/icon"
	"github.com/eggdl-cli/eggdl/util"
)

const barWidth = 40

// bar renders a static bubbles progress bar on a single, rewritten line.
// It is an io.Writer so it can sit behind an io.TeeReader.
type bar struct {
	out     io.Writer
	label   string
	model   progress.Model
	total   int64
	written int64
	shown   int
}

func newBar(out io.Writer, label string, total int64) *bar {
	width := util.Min(barWidth, util.Max(util.TerminalWidth(80)-len(label)-8, 10))
	return &bar{
		out:   out,
		label: label,
		model: progress.New(
			progress.WithGradient(color.GradientFrom, color.GradientTo),
			progress.WithWidth(width),
		),
		total: total,
		shown: -1,
	}
}

func (b *bar) Write(p []byte) (int, error) {
	b.written += int64(len(p))
	b.render()
	return len(p), nil
}

// percent is the completed share, or 0 when the size is unknown.
func (b *bar) percent() float64 {
	if b.total <= 0 {
		return 0
	}
	return util.Min(float64(b.written)/float64(b.total), 1)
}

func (b *bar) render() {
	// redraw only when the whole percentage changes
	whole := int(b.percent() * 100)
	if whole == b.shown {
		return
	}
	b.shown = whole

	fmt.Fprintf(b.out, "\r%s %s %s", icon.Get(icon.Progress), b.label, b.model.ViewAs(b.percent()))
}

func (b *bar) done() {
	fmt.Fprintf(b.out, "\r%s\r", strings.Repeat(" ", len(b.label)+barWidth+16))
}
