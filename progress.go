package folco

import "fmt"

// DefaultProgressCapacity is the number of events buffered between the
// batch and its consumer before the batch blocks.
const DefaultProgressCapacity = 32

// Progress is one event of a batch status stream. The set of events is
// closed: Started, Rendering, RenderFailed, Processing, FolderComplete,
// FolderFailed and Completed.
type Progress interface {
	progress()
	fmt.Stringer
}

// Started opens every batch.
type Started struct{ Total int }

// Rendering is sent before the composite icon is rendered.
type Rendering struct{}

// RenderFailed ends a customize batch before any directory is touched.
type RenderFailed struct{ Err error }

// Processing is sent right before a directory is modified.
type Processing struct{ Path string }

// FolderComplete reports a directory handled successfully.
type FolderComplete struct{ Path string }

// FolderFailed reports a directory which could not be handled.
type FolderFailed struct {
	Path string
	Err  error
}

// Completed closes a batch which reached its directories.
type Completed struct{ Succeeded, Failed int }

func (Started) progress()        {}
func (Rendering) progress()      {}
func (RenderFailed) progress()   {}
func (Processing) progress()     {}
func (FolderComplete) progress() {}
func (FolderFailed) progress()   {}
func (Completed) progress()      {}

func (e Started) String() string        { return fmt.Sprintf("started: %d directories", e.Total) }
func (Rendering) String() string        { return "rendering" }
func (e RenderFailed) String() string   { return fmt.Sprintf("render failed: %v", e.Err) }
func (e Processing) String() string     { return "processing " + e.Path }
func (e FolderComplete) String() string { return "done " + e.Path }
func (e FolderFailed) String() string   { return fmt.Sprintf("failed %s: %v", e.Path, e.Err) }
func (e Completed) String() string {
	return fmt.Sprintf("completed: %d succeeded, %d failed", e.Succeeded, e.Failed)
}

// Result is the outcome of a batch. Err is only set when the batch could not
// reach its directories (the render step failed).
type Result struct {
	Total     int
	Succeeded int
	Failed    int
	Err       error
}

// NewProgressChannel returns a bounded progress channel. A capacity below
// one falls back to DefaultProgressCapacity.
func NewProgressChannel(capacity int) chan Progress {
	if capacity < 1 {
		capacity = DefaultProgressCapacity
	}
	return make(chan Progress, capacity)
}

// Drain consumes events until the channel is closed, calling fn for each of
// them, and returns the batch result observed on the stream. It never stops
// early: every buffered event is handed to fn.
func Drain(events <-chan Progress, fn func(Progress)) Result {
	var res Result
	for ev := range events {
		switch e := ev.(type) {
		case Started:
			res.Total = e.Total
		case RenderFailed:
			res.Err = e.Err
		case Completed:
			res.Succeeded, res.Failed = e.Succeeded, e.Failed
		}
		if fn != nil {
			fn(ev)
		}
	}
	return res
}
