package folco

import (
	"fmt"
	"strings"
)

// Position anchors an overlay on the folder icon. The zero value is not a
// valid position: callers must always pick one.
type Position int

// The supported anchors.
const (
	BottomLeft Position = iota + 1
	BottomRight
	TopLeft
	TopRight
	Center
)

// DefaultOverlayPosition is the anchor used by the command line when no
// position is given.
const DefaultOverlayPosition = BottomRight

var positionNames = []struct {
	pos  Position
	name string
}{
	{BottomLeft, "bottom-left"},
	{BottomRight, "bottom-right"},
	{TopLeft, "top-left"},
	{TopRight, "top-right"},
	{Center, "center"},
}

// Positions returns every supported anchor.
func Positions() []Position {
	out := make([]Position, 0, len(positionNames))
	for _, p := range positionNames {
		out = append(out, p.pos)
	}
	return out
}

// ParsePosition parses an anchor name. Both "bottom-right" and
// "bottom_right" forms are accepted, case-insensitively.
func ParsePosition(s string) (Position, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for _, p := range positionNames {
		if p.name == norm {
			return p.pos, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
}

// Valid reports whether p is one of the supported anchors.
func (p Position) Valid() bool {
	return p >= BottomLeft && p <= Center
}

func (p Position) String() string {
	for _, n := range positionNames {
		if n.pos == p {
			return n.name
		}
	}
	return fmt.Sprintf("Position(%d)", int(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p Position) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPosition, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Position) UnmarshalText(text []byte) error {
	pos, err := ParsePosition(string(text))
	if err != nil {
		return err
	}
	*p = pos
	return nil
}
