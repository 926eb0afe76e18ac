package folco

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

var errNoInstaller = errors.New("no installer configured")

// Composite is the rendered folder icon shared by every directory of a
// customize batch. Installers must treat it as read-only.
type Composite struct {
	Image *image.NRGBA
}

// EncodePNG writes the composite as a PNG image.
func (c *Composite) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.Image)
}

// Renderer turns a profile into a composite icon.
type Renderer interface {
	Render(ctx context.Context, p Profile) (*Composite, error)
}

// Installer attaches or removes the custom icon of a single directory.
// Failures are per directory and must never be fatal to the process.
type Installer interface {
	Install(ctx context.Context, img *Composite, dir string) error
	Remove(ctx context.Context, dir string) error
}

// Customizer drives batches of directories: render once and install many,
// or remove many. The per directory operations run on a bounded pool of
// workers; Workers set to 1 processes the directories sequentially in input
// order.
type Customizer struct {
	Renderer  Renderer
	Installer Installer
	// Workers bounds the directories processed concurrently. Values below
	// one default to the number of CPUs, values above 20 are capped.
	Workers int
	// Capacity of the channels returned by the async entry points.
	Capacity int
	Logger   *zap.Logger
}

// result holds the outcome of a single directory operation.
type result struct {
	path string
	err  error
}

type dirOp func(ctx context.Context, dir string) error

// Customize renders p once and installs the composite on every directory,
// reporting each step on events. It blocks until the batch is over and
// closes events before returning. A render failure ends the stream right
// after the RenderFailed event.
func (c *Customizer) Customize(ctx context.Context, dirs []string, p Profile, events chan<- Progress) Result {
	defer close(events)
	dirs = append([]string(nil), dirs...)
	log := c.logger()

	events <- Started{Total: len(dirs)}
	events <- Rendering{}

	img, err := c.render(ctx, p)
	if err != nil {
		log.Error("render failed", zap.Error(err))
		events <- RenderFailed{Err: err}
		return Result{Total: len(dirs), Err: err}
	}
	log.Debug("rendered composite", zap.Stringer("bounds", img.Image.Bounds()))

	return c.run(ctx, dirs, events, "install", func(ctx context.Context, dir string) error {
		if c.Installer == nil {
			return errNoInstaller
		}
		return c.Installer.Install(ctx, img, dir)
	})
}

// Reset removes the custom icon of every directory, reporting each step on
// events. It blocks until the batch is over and closes events before returning.
func (c *Customizer) Reset(ctx context.Context, dirs []string, events chan<- Progress) Result {
	defer close(events)
	dirs = append([]string(nil), dirs...)

	events <- Started{Total: len(dirs)}
	return c.run(ctx, dirs, events, "remove", func(ctx context.Context, dir string) error {
		if c.Installer == nil {
			return errNoInstaller
		}
		return c.Installer.Remove(ctx, dir)
	})
}

// CustomizeAsync starts Customize in its own goroutine and returns the
// bounded event stream. The stream is closed once the batch is over.
func (c *Customizer) CustomizeAsync(ctx context.Context, dirs []string, p Profile) <-chan Progress {
	events := NewProgressChannel(c.Capacity)
	go c.Customize(ctx, dirs, p, events)
	return events
}

// ResetAsync starts Reset in its own goroutine and returns the bounded event
// stream. The stream is closed once the batch is over.
func (c *Customizer) ResetAsync(ctx context.Context, dirs []string) <-chan Progress {
	events := NewProgressChannel(c.Capacity)
	go c.Reset(ctx, dirs, events)
	return events
}

func (c *Customizer) render(ctx context.Context, p Profile) (img *Composite, err error) {
	if c.Renderer == nil {
		return nil, &Error{Kind: KindRender, Op: "render", Err: errors.New("no renderer configured")}
	}
	if err := p.Validate(); err != nil {
		return nil, &Error{Kind: KindRender, Op: "render", Err: err}
	}
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, &Error{Kind: KindRender, Op: "render", Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	img, err = c.Renderer.Render(ctx, p)
	if err != nil {
		return nil, &Error{Kind: KindRender, Op: "render", Err: err}
	}
	if img == nil || img.Image == nil {
		return nil, &Error{Kind: KindRender, Op: "render", Err: errors.New("renderer returned no image")}
	}
	return img, nil
}

// run fans the directories out to the workers and folds their results into
// the batch tally. Completed is sent once every worker has returned, so it
// always follows the last per directory event.
func (c *Customizer) run(ctx context.Context, dirs []string, events chan<- Progress, name string, op dirOp) Result {
	log := c.logger()
	workers := c.workers(len(dirs))

	paths := make(chan string)
	results := make(chan result)

	go func() {
		defer close(paths)
		for _, dir := range dirs {
			paths <- dir
		}
	}()

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			c.consumer(ctx, paths, events, name, op, results)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(results)
		wg.Wait()
	}()

	res := Result{Total: len(dirs)}
	for r := range results {
		if r.err != nil {
			res.Failed++
			log.Warn(name+" failed", zap.String("path", r.path), zap.Error(r.err))
			continue
		}
		res.Succeeded++
	}
	log.Info("batch completed",
		zap.String("op", name),
		zap.Int("succeeded", res.Succeeded),
		zap.Int("failed", res.Failed))

	events <- Completed{Succeeded: res.Succeeded, Failed: res.Failed}
	return res
}

// consumer reads the directories from the paths channel, applies op to each
// of them and reports the outcome, first on the event stream and then on the
// results channel. Once ctx is done the remaining directories are reported
// as failed without calling op.
func (c *Customizer) consumer(
	ctx context.Context,
	paths <-chan string,
	events chan<- Progress,
	name string,
	op dirOp,
	results chan<- result,
) {
	for dir := range paths {
		events <- Processing{Path: dir}

		err := ctx.Err()
		if err == nil {
			err = safeCall(ctx, op, dir)
		}
		if err != nil {
			err = &Error{Kind: KindInstall, Op: name, Path: dir, Err: err}
			events <- FolderFailed{Path: dir, Err: err}
		} else {
			events <- FolderComplete{Path: dir}
		}
		results <- result{path: dir, err: err}
	}
}

// safeCall turns a panicking directory operation into an error, so a single
// directory can never take the batch down.
func safeCall(ctx context.Context, op dirOp, dir string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return op(ctx, dir)
}

func (c *Customizer) workers(n int) int {
	w := c.Workers
	// Limit the concurrently running workers to maxWorkers.
	if w <= 0 {
		w = runtime.NumCPU()
	}
	if w > maxWorkers {
		w = maxWorkers
	}
	if w > n {
		w = n
	}
	return w
}

func (c *Customizer) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
