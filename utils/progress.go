package utils

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/term"
)

// defaultBarWidth is used when the terminal width cannot be determined.
const defaultBarWidth = 80

// ProgressBar renders a single line progress indicator: a spinner, a bar
// filled by the completed steps, a counter and a message.
type ProgressBar struct {
	mu         *sync.Mutex
	delay      time.Duration
	writer     io.Writer
	message    string
	lastOutput string
	total      int
	current    int
	hideCursor bool
	frame      int
	started    bool
	stopChan   chan struct{}
	doneChan   chan struct{}
}

// NewProgressBar instantiates a new progress indicator writing to w.
func NewProgressBar(w io.Writer, total int, d time.Duration, hideCursor bool) *ProgressBar {
	return &ProgressBar{
		mu:         &sync.Mutex{},
		delay:      d,
		writer:     w,
		total:      total,
		hideCursor: hideCursor,
		stopChan:   make(chan struct{}),
		doneChan:   make(chan struct{}),
	}
}

// IsTerminal reports whether w is a terminal, the only kind of output the
// progress bar should be drawn on.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Start starts the spinner animation.
func (p *ProgressBar) Start() {
	if p.hideCursor && runtime.GOOS != "windows" {
		// hides the cursor
		fmt.Fprint(p.writer, "\033[?25l")
	}
	p.started = true

	go func() {
		defer close(p.doneChan)
		ticker := time.NewTicker(p.delay)
		defer ticker.Stop()
		for {
			select {
			case <-p.stopChan:
				return
			case <-ticker.C:
				p.mu.Lock()
				p.frame++
				p.draw()
				p.mu.Unlock()
			}
		}
	}()
}

// SetTotal updates the number of steps.
func (p *ProgressBar) SetTotal(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = n
	p.draw()
}

// SetMessage replaces the message shown after the counter.
func (p *ProgressBar) SetMessage(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.message = msg
	p.draw()
}

// Inc advances the bar by one step.
func (p *ProgressBar) Inc() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current < p.total {
		p.current++
	}
	p.draw()
}

// Println prints a line above the bar and redraws the bar below it.
func (p *ProgressBar) Println(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clear()
	fmt.Fprintln(p.writer, s)
	p.draw()
}

// Finish stops the animation, draws the final state with msg and moves to
// a new line.
func (p *ProgressBar) Finish(msg string) {
	p.Stop()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.message = msg
	p.draw()
	fmt.Fprintln(p.writer)
	p.lastOutput = ""
}

// Stop stops the animation and restores the cursor. It is safe to call it
// more than once.
func (p *ProgressBar) Stop() {
	select {
	case <-p.stopChan:
		return
	default:
		close(p.stopChan)
	}
	if p.started {
		<-p.doneChan
	}
	p.RestoreCursor()
}

// RestoreCursor restores back the cursor visibility.
func (p *ProgressBar) RestoreCursor() {
	if p.hideCursor && runtime.GOOS != "windows" {
		// makes the cursor visible
		fmt.Fprint(p.writer, "\033[?25h")
	}
}

// draw renders the bar. Caller must hold the locker.
func (p *ProgressBar) draw() {
	frames := []rune(`⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏`)
	counter := fmt.Sprintf("%d/%d", p.current, p.total)

	width := p.width() - utf8.RuneCountInString(counter) - utf8.RuneCountInString(p.message) - 6
	width = Clamp(width, 10, 40)

	filled := 0
	if p.total > 0 {
		filled = width * p.current / p.total
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	output := fmt.Sprintf("\r%c %s %s %s",
		frames[p.frame%len(frames)],
		DecorateText(bar, SuccessMessage),
		counter,
		p.message,
	)
	p.clear()
	fmt.Fprint(p.writer, output)
	p.lastOutput = output
}

func (p *ProgressBar) width() int {
	if f, ok := p.writer.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return defaultBarWidth
}

// clear deletes the last line. Caller must hold the the locker.
func (p *ProgressBar) clear() {
	if p.lastOutput == "" {
		return
	}
	n := utf8.RuneCountInString(p.lastOutput)
	if runtime.GOOS == "windows" {
		clearString := "\r" + strings.Repeat(" ", n) + "\r"
		fmt.Fprint(p.writer, clearString)
		p.lastOutput = ""
		return
	}
	fmt.Fprint(p.writer, "\r\033[K") // clear line
	p.lastOutput = ""
}
