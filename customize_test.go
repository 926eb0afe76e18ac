package folco

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errInstall = errors.New("disk on fire")

type fakeRenderer struct {
	calls atomic.Int32
	err   error
	img   *Composite
}

func (r *fakeRenderer) Render(_ context.Context, _ Profile) (*Composite, error) {
	r.calls.Add(1)
	if r.err != nil {
		return nil, r.err
	}
	if r.img == nil {
		r.img = &Composite{Image: image.NewNRGBA(image.Rect(0, 0, 1, 1))}
	}
	return r.img, nil
}

type fakeInstaller struct {
	mu      sync.Mutex
	fail    map[string]bool
	delay   time.Duration
	images  []*Composite
	paths   []string
	removed []string
}

func (f *fakeInstaller) Install(_ context.Context, img *Composite, dir string) error {
	time.Sleep(f.delay)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.images = append(f.images, img)
	f.paths = append(f.paths, dir)
	if f.fail[dir] {
		return errInstall
	}
	return nil
}

func (f *fakeInstaller) Remove(_ context.Context, dir string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, dir)
	if f.fail[dir] {
		return errInstall
	}
	return nil
}

func (f *fakeInstaller) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.paths) + len(f.removed)
}

// collect runs the batch with a channel of the given capacity and returns
// every event observed by a concurrent consumer.
func collect(capacity int, batch func(chan<- Progress) Result) ([]Progress, Result) {
	events := NewProgressChannel(capacity)
	var seen []Progress
	done := make(chan struct{})
	go func() {
		defer close(done)
		Drain(events, func(p Progress) { seen = append(seen, p) })
	}()
	res := batch(events)
	<-done
	return seen, res
}

func TestCustomize_AllSucceedSequential(t *testing.T) {
	assert := assert.New(t)
	r := &fakeRenderer{}
	inst := &fakeInstaller{}
	c := &Customizer{Renderer: r, Installer: inst, Workers: 1}
	dirs := []string{"/a", "/b", "/c"}

	events, res := collect(DefaultProgressCapacity, func(ch chan<- Progress) Result {
		return c.Customize(context.Background(), dirs, NewProfile(), ch)
	})

	assert.Equal([]Progress{
		Started{Total: 3},
		Rendering{},
		Processing{Path: "/a"},
		FolderComplete{Path: "/a"},
		Processing{Path: "/b"},
		FolderComplete{Path: "/b"},
		Processing{Path: "/c"},
		FolderComplete{Path: "/c"},
		Completed{Succeeded: 3, Failed: 0},
	}, events)
	assert.Equal(Result{Total: 3, Succeeded: 3}, res)

	// Rendered once, shared by every directory.
	assert.Equal(int32(1), r.calls.Load())
	require.Len(t, inst.images, 3)
	for _, img := range inst.images {
		assert.Same(r.img, img)
	}
}

func TestCustomize_RenderFailed(t *testing.T) {
	assert := assert.New(t)
	boom := errors.New("boom")
	inst := &fakeInstaller{}
	c := &Customizer{Renderer: &fakeRenderer{err: boom}, Installer: inst}

	events, res := collect(DefaultProgressCapacity, func(ch chan<- Progress) Result {
		return c.Customize(context.Background(), []string{"/a", "/b"}, NewProfile(), ch)
	})

	require.Len(t, events, 3)
	assert.Equal(Started{Total: 2}, events[0])
	assert.Equal(Rendering{}, events[1])
	failed, ok := events[2].(RenderFailed)
	require.True(t, ok)
	assert.ErrorIs(failed.Err, boom)
	assert.ErrorIs(failed.Err, &Error{Kind: KindRender})

	assert.Zero(inst.calls())
	assert.Zero(res.Succeeded)
	assert.Zero(res.Failed)
	assert.ErrorIs(res.Err, boom)
}

func TestCustomize_InvalidProfile(t *testing.T) {
	assert := assert.New(t)
	r := &fakeRenderer{}
	c := &Customizer{Renderer: r, Installer: &fakeInstaller{}}

	p := NewProfile().WithDecal(DecalSettings{Source: FromSvg("<svg/>"), Scale: 2, Enabled: true})
	events, res := collect(DefaultProgressCapacity, func(ch chan<- Progress) Result {
		return c.Customize(context.Background(), []string{"/a"}, p, ch)
	})

	require.Len(t, events, 3)
	assert.IsType(RenderFailed{}, events[2])
	assert.ErrorIs(res.Err, ErrScaleOutOfRange)
	assert.Zero(r.calls.Load())
}

func TestCustomize_RendererPanics(t *testing.T) {
	c := &Customizer{Renderer: panicRenderer{}, Installer: &fakeInstaller{}}

	events, res := collect(DefaultProgressCapacity, func(ch chan<- Progress) Result {
		return c.Customize(context.Background(), []string{"/a"}, NewProfile(), ch)
	})
	assert.IsType(t, RenderFailed{}, events[len(events)-1])
	assert.Error(t, res.Err)
}

type panicRenderer struct{}

func (panicRenderer) Render(context.Context, Profile) (*Composite, error) {
	panic("renderer exploded")
}

func TestCustomize_PartialFailure(t *testing.T) {
	assert := assert.New(t)
	inst := &fakeInstaller{fail: map[string]bool{"/b": true}}
	c := &Customizer{Renderer: &fakeRenderer{}, Installer: inst, Workers: 1}

	events, res := collect(DefaultProgressCapacity, func(ch chan<- Progress) Result {
		return c.Customize(context.Background(), []string{"/a", "/b", "/c"}, NewProfile(), ch)
	})

	assert.Equal(2, res.Succeeded)
	assert.Equal(1, res.Failed)
	assert.Equal(Completed{Succeeded: 2, Failed: 1}, events[len(events)-1])

	var failed []FolderFailed
	var complete []string
	for _, ev := range events {
		switch e := ev.(type) {
		case FolderFailed:
			failed = append(failed, e)
		case FolderComplete:
			complete = append(complete, e.Path)
		}
	}
	require.Len(t, failed, 1)
	assert.Equal("/b", failed[0].Path)
	assert.ErrorIs(failed[0].Err, errInstall)
	assert.ErrorIs(failed[0].Err, &Error{Kind: KindInstall})
	assert.Equal([]string{"/a", "/c"}, complete)
}

func TestCustomize_CanceledContext(t *testing.T) {
	assert := assert.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inst := &fakeInstaller{}
	c := &Customizer{Renderer: &fakeRenderer{}, Installer: inst, Workers: 2}
	dirs := []string{"/a", "/b", "/c", "/d"}

	events, res := collect(DefaultProgressCapacity, func(ch chan<- Progress) Result {
		return c.Customize(ctx, dirs, NewProfile(), ch)
	})

	assert.Zero(inst.calls())
	assert.Equal(Result{Total: 4, Succeeded: 0, Failed: 4}, res)
	assert.Equal(Completed{Succeeded: 0, Failed: 4}, events[len(events)-1])

	failed := 0
	for _, ev := range events {
		if e, ok := ev.(FolderFailed); ok {
			failed++
			assert.ErrorIs(e.Err, context.Canceled)
		}
	}
	assert.Equal(4, failed)
}

func TestCustomize_SlowConsumer(t *testing.T) {
	assert := assert.New(t)
	c := &Customizer{Renderer: &fakeRenderer{}, Installer: &fakeInstaller{}, Workers: 1}

	dirs := make([]string, 20)
	for i := range dirs {
		dirs[i] = string(rune('a' + i))
	}

	events := NewProgressChannel(1)
	go c.Customize(context.Background(), dirs, NewProfile(), events)

	var seen []Progress
	res := Drain(events, func(p Progress) {
		time.Sleep(time.Millisecond)
		seen = append(seen, p)
	})

	// Started, Rendering, two events per directory and Completed.
	assert.Len(seen, 2+2*len(dirs)+1)
	assert.Equal(Started{Total: 20}, seen[0])
	assert.Equal(Completed{Succeeded: 20}, seen[len(seen)-1])
	assert.Equal(Result{Total: 20, Succeeded: 20}, res)
	for i, dir := range dirs {
		assert.Equal(Processing{Path: dir}, seen[2+2*i])
		assert.Equal(FolderComplete{Path: dir}, seen[3+2*i])
	}
}

func TestCustomize_Backpressure(t *testing.T) {
	assert := assert.New(t)
	inst := &fakeInstaller{}
	c := &Customizer{Renderer: &fakeRenderer{}, Installer: inst, Workers: 1}

	dirs := make([]string, 10)
	for i := range dirs {
		dirs[i] = string(rune('a' + i))
	}

	// Nobody reads until the buffer is full: Started, Rendering, then
	// Processing and FolderComplete of the first directory.
	events := NewProgressChannel(4)
	done := make(chan Result, 1)
	go func() { done <- c.Customize(context.Background(), dirs, NewProfile(), events) }()

	require.Eventually(t, func() bool { return len(events) == cap(events) }, time.Second, time.Millisecond)
	assert.Never(func() bool { return inst.calls() > 1 }, 50*time.Millisecond, 5*time.Millisecond)
	assert.Equal(1, inst.calls())
	select {
	case <-done:
		t.Fatal("batch finished with a full event buffer")
	default:
	}

	res := Drain(events, nil)
	assert.Equal(Result{Total: 10, Succeeded: 10}, res)
	assert.Equal(Result{Total: 10, Succeeded: 10}, <-done)
	assert.Equal(len(dirs), inst.calls())
}

func TestCustomize_ParallelOrdering(t *testing.T) {
	assert := assert.New(t)
	inst := &fakeInstaller{delay: 2 * time.Millisecond, fail: map[string]bool{"d3": true}}
	c := &Customizer{Renderer: &fakeRenderer{}, Installer: inst, Workers: 4}

	dirs := []string{"d0", "d1", "d2", "d3", "d4", "d5", "d6", "d7"}
	events, res := collect(4, func(ch chan<- Progress) Result {
		return c.Customize(context.Background(), dirs, NewProfile(), ch)
	})

	assert.Equal(Started{Total: 8}, events[0])
	assert.Equal(Completed{Succeeded: 7, Failed: 1}, events[len(events)-1])
	assert.Equal(7, res.Succeeded)

	processing := map[string]int{}
	terminal := map[string]int{}
	for i, ev := range events {
		switch e := ev.(type) {
		case Processing:
			processing[e.Path] = i
		case FolderComplete:
			_, dup := terminal[e.Path]
			assert.False(dup)
			terminal[e.Path] = i
		case FolderFailed:
			_, dup := terminal[e.Path]
			assert.False(dup)
			terminal[e.Path] = i
		}
	}
	for _, dir := range dirs {
		p, ok := processing[dir]
		require.True(t, ok, dir)
		done, ok := terminal[dir]
		require.True(t, ok, dir)
		assert.Less(p, done, dir)
	}
}

func TestReset(t *testing.T) {
	assert := assert.New(t)
	r := &fakeRenderer{}
	inst := &fakeInstaller{fail: map[string]bool{"/b": true}}
	c := &Customizer{Renderer: r, Installer: inst, Workers: 1}

	events, res := collect(DefaultProgressCapacity, func(ch chan<- Progress) Result {
		return c.Reset(context.Background(), []string{"/a", "/b"}, ch)
	})

	require.Len(t, events, 6)
	assert.Equal(Started{Total: 2}, events[0])
	assert.Equal(Processing{Path: "/a"}, events[1])
	assert.Equal(FolderComplete{Path: "/a"}, events[2])
	assert.Equal(Processing{Path: "/b"}, events[3])
	assert.IsType(FolderFailed{}, events[4])
	assert.Equal(Completed{Succeeded: 1, Failed: 1}, events[5])
	assert.Equal(Result{Total: 2, Succeeded: 1, Failed: 1}, res)

	assert.Zero(r.calls.Load())
	assert.Equal([]string{"/a", "/b"}, inst.removed)
}

func TestAsyncEntryPoints(t *testing.T) {
	assert := assert.New(t)
	c := &Customizer{Renderer: &fakeRenderer{}, Installer: &fakeInstaller{}, Capacity: 2}

	res := Drain(c.CustomizeAsync(context.Background(), []string{"/a", "/b"}, NewProfile()), nil)
	assert.Equal(Result{Total: 2, Succeeded: 2}, res)

	res = Drain(c.ResetAsync(context.Background(), []string{"/a"}), nil)
	assert.Equal(Result{Total: 1, Succeeded: 1}, res)

	res = Drain(c.CustomizeAsync(context.Background(), nil, NewProfile()), nil)
	assert.Equal(Result{}, res)
}

func TestCustomize_NoInstaller(t *testing.T) {
	c := &Customizer{Renderer: &fakeRenderer{}}
	res := Drain(c.CustomizeAsync(context.Background(), []string{"/a"}, NewProfile()), nil)
	assert.Equal(t, 1, res.Failed)
}

func TestWorkers(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(1, (&Customizer{Workers: 1}).workers(10))
	assert.Equal(3, (&Customizer{Workers: 8}).workers(3))
	assert.Equal(maxWorkers, (&Customizer{Workers: 100}).workers(100))
	assert.LessOrEqual((&Customizer{}).workers(100), maxWorkers)
	assert.GreaterOrEqual((&Customizer{}).workers(100), 1)
}
