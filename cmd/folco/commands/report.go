package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/esimov/folco"
	"github.com/esimov/folco/utils"
	"go.uber.org/zap"
)

// reporter renders the progress stream of a batch, either as a progress
// bar on terminals or as one line per event.
type reporter struct {
	app   *app
	w     io.Writer
	bar   *utils.ProgressBar
	start time.Time
}

func newReporter(a *app, w io.Writer) *reporter {
	r := &reporter{app: a, w: w, start: time.Now()}
	if utils.IsTerminal(w) {
		r.bar = utils.NewProgressBar(w, 0, 120*time.Millisecond, true)
	}
	return r
}

// handle is called for every event, in stream order.
func (r *reporter) handle(ev folco.Progress) {
	if r.bar != nil {
		r.drawBar(ev)
		return
	}
	r.printLine(ev)
}

func (r *reporter) drawBar(ev folco.Progress) {
	switch e := ev.(type) {
	case folco.Started:
		r.bar.SetTotal(e.Total)
		r.bar.Start()
	case folco.Rendering:
		r.bar.SetMessage("rendering icon")
	case folco.RenderFailed:
		r.bar.Println(r.failure("render failed", e.Err))
		r.bar.Finish("")
	case folco.Processing:
		r.bar.SetMessage(e.Path)
	case folco.FolderComplete:
		r.bar.Inc()
	case folco.FolderFailed:
		r.bar.Println(r.failure(e.Path, e.Err))
		r.bar.Inc()
	case folco.Completed:
		r.bar.Finish(r.summary(e))
	}
}

func (r *reporter) printLine(ev folco.Progress) {
	switch e := ev.(type) {
	case folco.Started:
		fmt.Fprintf(r.w, "processing %d directories\n", e.Total)
	case folco.Rendering:
		fmt.Fprintln(r.w, "rendering icon")
	case folco.RenderFailed:
		fmt.Fprintln(r.w, r.failure("render failed", e.Err))
	case folco.Processing:
		r.app.log.Debug("processing", zap.String("path", e.Path))
	case folco.FolderComplete:
		fmt.Fprintf(r.w, "%s %s\n", utils.DecorateText("ok", utils.SuccessMessage), e.Path)
	case folco.FolderFailed:
		fmt.Fprintln(r.w, r.failure(e.Path, e.Err))
	case folco.Completed:
		fmt.Fprintln(r.w, r.summary(e))
	}
}

func (r *reporter) failure(subject string, err error) string {
	return fmt.Sprintf("%s %s: %s",
		utils.DecorateText("failed", utils.ErrorMessage),
		subject,
		utils.DecorateText(r.app.describe(err), utils.DefaultMessage),
	)
}

func (r *reporter) summary(e folco.Completed) string {
	msgType := utils.SuccessMessage
	switch {
	case e.Failed > 0 && e.Succeeded > 0:
		msgType = utils.WarningMessage
	case e.Failed > 0:
		msgType = utils.ErrorMessage
	}
	return fmt.Sprintf("%s in %s",
		utils.DecorateText(fmt.Sprintf("%d succeeded, %d failed", e.Succeeded, e.Failed), msgType),
		utils.FormatTime(time.Since(r.start)),
	)
}

// close stops the progress bar in case the stream ended early.
func (r *reporter) close() {
	if r.bar != nil {
		r.bar.Stop()
	}
}
