package folco

import (
	"encoding/json"
	"fmt"
)

// SourceKind tags the content of an SvgSource.
type SourceKind int

// The supported source kinds. The zero value is not a valid kind.
const (
	SourceSvg SourceKind = iota + 1
	SourceEmoji
	SourceEmojiName
)

var sourceKindNames = map[SourceKind]string{
	SourceSvg:       "svg",
	SourceEmoji:     "emoji",
	SourceEmojiName: "emoji_name",
}

func (k SourceKind) String() string {
	if name, ok := sourceKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("SourceKind(%d)", int(k))
}

// MarshalText encodes the kind by its name.
func (k SourceKind) MarshalText() ([]byte, error) {
	name, ok := sourceKindNames[k]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSourceKind, int(k))
	}
	return []byte(name), nil
}

// UnmarshalText decodes a kind name.
func (k *SourceKind) UnmarshalText(text []byte) error {
	for kind, name := range sourceKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownSourceKind, text)
}

// SvgSource references a renderable vector asset. It is a tagged union:
// raw svg markup, a single emoji grapheme or an emoji name. The only
// producers are FromSvg, FromEmoji and FromEmojiName.
type SvgSource struct {
	kind  SourceKind
	value string
}

// FromSvg wraps raw svg markup.
func FromSvg(markup string) SvgSource {
	return SvgSource{kind: SourceSvg, value: markup}
}

// FromEmoji wraps an emoji character (grapheme cluster).
func FromEmoji(grapheme string) SvgSource {
	return SvgSource{kind: SourceEmoji, value: grapheme}
}

// FromEmojiName wraps an emoji identifier such as "duck".
func FromEmojiName(name string) SvgSource {
	return SvgSource{kind: SourceEmojiName, value: name}
}

// Kind returns the tag of the source.
func (s SvgSource) Kind() SourceKind { return s.kind }

// Value returns the markup, grapheme or name carried by the source.
func (s SvgSource) Value() string { return s.value }

// IsZero reports whether s was never produced by one of the constructors.
func (s SvgSource) IsZero() bool { return s.kind == 0 }

// Validate checks that the source has a known tag and a non-empty value.
func (s SvgSource) Validate() error {
	if _, ok := sourceKindNames[s.kind]; !ok {
		return ErrUnknownSourceKind
	}
	if s.value == "" {
		return ErrEmptySource
	}
	return nil
}

func (s SvgSource) String() string {
	return fmt.Sprintf("%s(%s)", s.kind, truncate(s.value, 32))
}

// svgSourceJSON is the wire form of SvgSource.
type svgSourceJSON struct {
	Kind  SourceKind `json:"kind"`
	Value string     `json:"value" jsonschema:"minLength=1,description=Svg markup or emoji character or emoji name"`
}

// MarshalJSON implements json.Marshaler.
func (s SvgSource) MarshalJSON() ([]byte, error) {
	return json.Marshal(svgSourceJSON{Kind: s.kind, Value: s.value})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *SvgSource) UnmarshalJSON(data []byte) error {
	var w svgSourceJSON
	if err := decodeStrict(data, &w); err != nil {
		return err
	}
	*s = SvgSource{kind: w.Kind, value: w.Value}
	return s.Validate()
}
