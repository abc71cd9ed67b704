package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// Reporter provides progress feedback while model/provider pairs are processed.
type Reporter interface {
	Start(total int)
	Update(current int, message string)
	Finish()
}

// NewReporter returns a TerminalReporter when w is an interactive terminal
// outside CI, and a LineReporter otherwise.
func NewReporter(w io.Writer) Reporter {
	if isTerminal(w) && os.Getenv("CI") == "" && os.Getenv("GITHUB_ACTIONS") == "" {
		return &TerminalReporter{w: w}
	}
	return &LineReporter{w: w}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// TerminalReporter displays a progress bar in the terminal.
type TerminalReporter struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription("Analyzing"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

// Update describes the pair now in flight; current counts the pairs already
// finished.
func (r *TerminalReporter) Update(current int, message string) {
	if r.bar != nil {
		r.bar.Describe(message)
		_ = r.bar.Set(current)
	}
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// LineReporter prints one line per update, suitable for pipes and CI logs.
type LineReporter struct {
	w io.Writer
}

func (r *LineReporter) Start(int) {}

func (r *LineReporter) Update(_ int, message string) {
	fmt.Fprintln(r.w, message)
}

func (r *LineReporter) Finish() {}

// Nop discards all progress.
type Nop struct{}

func (Nop) Start(int) {}

func (Nop) Update(int, string) {}

func (Nop) Finish() {}
