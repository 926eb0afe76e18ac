package folco

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by the profile and source constructors.
var (
	ErrSourceNotFoundOrMarkup = errors.New("input is neither an existing file nor svg markup")
	ErrScaleOutOfRange        = errors.New("scale must be in the range (0, 1]")
	ErrShiftOutOfRange        = errors.New("hsl shift out of range")
	ErrInvalidPosition        = errors.New("invalid anchor position")
	ErrUnknownSourceKind      = errors.New("unknown svg source kind")
	ErrUnknownColor           = errors.New("unknown folder color")
	ErrEmptySource            = errors.New("empty svg source")
	ErrInvalidProfile         = errors.New("invalid profile document")
)

// Kind classifies an error by the stage of the pipeline which produced it.
type Kind int

// The error kinds, in pipeline order.
const (
	KindSourceResolution Kind = iota + 1
	KindProfile
	KindRender
	KindInstall
)

func (k Kind) String() string {
	switch k {
	case KindSourceResolution:
		return "source resolution"
	case KindProfile:
		return "profile"
	case KindRender:
		return "render"
	case KindInstall:
		return "install"
	}
	return "unknown"
}

// Error carries the context of a failure: the stage, the operation, the
// offending input or path and the underlying cause.
type Error struct {
	Kind  Kind
	Op    string
	Input string
	Path  string
	Err   error
}

// Error implements the error interface. It always renders the full chain.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	switch {
	case e.Path != "":
		fmt.Fprintf(&b, " %s", e.Path)
	case e.Input != "":
		fmt.Fprintf(&b, " %q", truncate(e.Input, 48))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return t.Kind == e.Kind && (t.Op == "" || t.Op == e.Op)
	}
	return false
}

// Summary returns the root cause of err, without the wrapping context.
// Callers which prefer a terse output use it instead of err.Error().
func Summary(err error) string {
	if err == nil {
		return ""
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

// truncate shortens long inputs (svg markup mostly) for error messages.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
