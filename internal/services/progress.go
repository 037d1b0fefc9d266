package services

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// ProgressReporter receives byte-level progress of a single download.
// Start is only called when the total size is known.
type ProgressReporter interface {
	Start(name string, total int64)
	Advance(done, total int64)
	Finish()
}

// barReporter renders progress as a terminal bar
type barReporter struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

// NewBarReporter creates a progress reporter drawing a 50 column bar to out
func NewBarReporter(out io.Writer) ProgressReporter {
	return &barReporter{out: out}
}

func (r *barReporter) Start(name string, total int64) {
	r.bar = progressbar.NewOptions64(
		total,
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSetDescription(name),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func (r *barReporter) Advance(done, total int64) {
	if r.bar == nil {
		return
	}
	_ = r.bar.Set64(done)
}

func (r *barReporter) Finish() {
	if r.bar == nil {
		return
	}
	_ = r.bar.Finish()
	_, _ = fmt.Fprintln(r.out)
	r.bar = nil
}

// NopReporter discards all progress
type NopReporter struct{}

func (NopReporter) Start(string, int64)  {}
func (NopReporter) Advance(int64, int64) {}
func (NopReporter) Finish()              {}
