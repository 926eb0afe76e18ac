package folco

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// HSLMutation adjusts the base folder colour. HueShift is expressed in
// degrees, SaturationShift and LightnessShift are added to the [0, 1]
// saturation and lightness components.
type HSLMutation struct {
	HueShift        float64 `json:"hue_shift" jsonschema:"minimum=-360,maximum=360,description=Hue rotation in degrees"`
	SaturationShift float64 `json:"saturation_shift" jsonschema:"minimum=-1,maximum=1"`
	LightnessShift  float64 `json:"lightness_shift" jsonschema:"minimum=-1,maximum=1"`
}

// Validate checks that the hue shift lies in [-360, 360] and the
// saturation and lightness shifts in [-1, 1].
func (m HSLMutation) Validate() error {
	if !inRange(m.HueShift, 360) {
		return fmt.Errorf("%w: hue_shift %v", ErrShiftOutOfRange, m.HueShift)
	}
	if !inRange(m.SaturationShift, 1) {
		return fmt.Errorf("%w: saturation_shift %v", ErrShiftOutOfRange, m.SaturationShift)
	}
	if !inRange(m.LightnessShift, 1) {
		return fmt.Errorf("%w: lightness_shift %v", ErrShiftOutOfRange, m.LightnessShift)
	}
	return nil
}

// inRange reports whether v is within [-limit, limit]. NaN is not.
func inRange(v, limit float64) bool {
	return v >= -limit && v <= limit
}

// IsIdentity reports whether the mutation leaves colours unchanged.
func (m HSLMutation) IsIdentity() bool {
	return math.Mod(m.HueShift, 360) == 0 && m.SaturationShift == 0 && m.LightnessShift == 0
}

// DecalSettings describes a vector asset drawn centered on the folder.
// A decal which is not Enabled is kept in the profile but never rendered.
type DecalSettings struct {
	Source  SvgSource `json:"source"`
	Scale   float64   `json:"scale" jsonschema:"exclusiveMinimum=0,maximum=1"`
	Enabled bool      `json:"enabled"`
}

// NewDecalSettings returns enabled decal settings, rejecting scales outside (0, 1].
func NewDecalSettings(src SvgSource, scale float64) (DecalSettings, error) {
	d := DecalSettings{Source: src, Scale: scale, Enabled: true}
	if err := d.Validate(); err != nil {
		return DecalSettings{}, err
	}
	return d, nil
}

// Validate checks the scale range and the source.
func (d DecalSettings) Validate() error {
	if err := validateScale(d.Scale); err != nil {
		return err
	}
	return d.Source.Validate()
}

// OverlaySettings describes a vector asset or emoji drawn at an anchor.
// An overlay which is not Enabled is kept in the profile but never rendered.
type OverlaySettings struct {
	Source   SvgSource `json:"source"`
	Position Position  `json:"position"`
	Scale    float64   `json:"scale" jsonschema:"exclusiveMinimum=0,maximum=1"`
	Enabled  bool      `json:"enabled"`
}

// NewOverlaySettings returns enabled overlay settings, rejecting scales
// outside (0, 1] and unknown positions.
func NewOverlaySettings(src SvgSource, pos Position, scale float64) (OverlaySettings, error) {
	o := OverlaySettings{Source: src, Position: pos, Scale: scale, Enabled: true}
	if err := o.Validate(); err != nil {
		return OverlaySettings{}, err
	}
	return o, nil
}

// Validate checks the scale range, the anchor and the source.
func (o OverlaySettings) Validate() error {
	if err := validateScale(o.Scale); err != nil {
		return err
	}
	if !o.Position.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPosition, int(o.Position))
	}
	return o.Source.Validate()
}

func validateScale(scale float64) error {
	if math.IsNaN(scale) || scale <= 0 || scale > 1 {
		return fmt.Errorf("%w: %v", ErrScaleOutOfRange, scale)
	}
	return nil
}

// Profile is the declarative description of a folder icon customization.
// Each of the three axes (colour mutation, decal, overlay) is optional; a
// profile with none of them set is valid and renders the plain folder.
//
// Profiles are values: the With* methods return a modified copy and never
// change the receiver.
type Profile struct {
	hsl     *HSLMutation
	decal   *DecalSettings
	overlay *OverlaySettings
}

// NewProfile returns an empty profile.
func NewProfile() Profile {
	return Profile{}
}

// WithHSLMutation returns a copy of p with the colour mutation set.
func (p Profile) WithHSLMutation(m HSLMutation) Profile {
	p.hsl = &m
	return p
}

// WithDecal returns a copy of p with the decal set.
func (p Profile) WithDecal(d DecalSettings) Profile {
	p.decal = &d
	return p
}

// WithOverlay returns a copy of p with the overlay set.
func (p Profile) WithOverlay(o OverlaySettings) Profile {
	p.overlay = &o
	return p
}

// WithoutHSLMutation returns a copy of p without colour mutation.
func (p Profile) WithoutHSLMutation() Profile {
	p.hsl = nil
	return p
}

// WithoutDecal returns a copy of p without decal.
func (p Profile) WithoutDecal() Profile {
	p.decal = nil
	return p
}

// WithoutOverlay returns a copy of p without overlay.
func (p Profile) WithoutOverlay() Profile {
	p.overlay = nil
	return p
}

// HSLMutation returns the colour mutation and whether it is set.
func (p Profile) HSLMutation() (HSLMutation, bool) {
	if p.hsl == nil {
		return HSLMutation{}, false
	}
	return *p.hsl, true
}

// Decal returns the decal settings and whether they are set.
func (p Profile) Decal() (DecalSettings, bool) {
	if p.decal == nil {
		return DecalSettings{}, false
	}
	return *p.decal, true
}

// Overlay returns the overlay settings and whether they are set.
func (p Profile) Overlay() (OverlaySettings, bool) {
	if p.overlay == nil {
		return OverlaySettings{}, false
	}
	return *p.overlay, true
}

// ActiveDecal returns the decal only when it is set and enabled.
func (p Profile) ActiveDecal() (DecalSettings, bool) {
	d, ok := p.Decal()
	return d, ok && d.Enabled
}

// ActiveOverlay returns the overlay only when it is set and enabled.
func (p Profile) ActiveOverlay() (OverlaySettings, bool) {
	o, ok := p.Overlay()
	return o, ok && o.Enabled
}

// IsNoop reports whether rendering p yields the plain folder icon.
func (p Profile) IsNoop() bool {
	_, decal := p.ActiveDecal()
	_, overlay := p.ActiveOverlay()
	return (p.hsl == nil || p.hsl.IsIdentity()) && !decal && !overlay
}

// Validate checks every axis which is set. Disabled settings are validated
// too: staging an invalid decal is still an error.
func (p Profile) Validate() error {
	var errs []error
	if p.hsl != nil {
		if err := p.hsl.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("hsl mutation: %w", err))
		}
	}
	if p.decal != nil {
		if err := p.decal.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("decal: %w", err))
		}
	}
	if p.overlay != nil {
		if err := p.overlay.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("overlay: %w", err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &Error{Kind: KindProfile, Op: "validate profile", Err: errors.Join(errs...)}
}

// Equal reports whether p and q describe the same customization.
func (p Profile) Equal(q Profile) bool {
	return equalPtr(p.hsl, q.hsl) && equalPtr(p.decal, q.decal) && equalPtr(p.overlay, q.overlay)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// profileJSON is the stable wire form of Profile.
type profileJSON struct {
	HSLMutation *HSLMutation     `json:"hsl_mutation,omitempty" jsonschema:"description=Adjustment of the base folder colour"`
	Decal       *DecalSettings   `json:"decal,omitempty" jsonschema:"description=Vector asset drawn centered on the folder"`
	Overlay     *OverlaySettings `json:"overlay,omitempty" jsonschema:"description=Vector asset or emoji drawn at an anchor"`
}

// MarshalJSON implements json.Marshaler.
func (p Profile) MarshalJSON() ([]byte, error) {
	return json.Marshal(profileJSON{HSLMutation: p.hsl, Decal: p.decal, Overlay: p.overlay})
}

// UnmarshalJSON implements json.Unmarshaler. Unknown keys are rejected and
// the decoded profile is validated.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var w profileJSON
	if err := decodeStrict(data, &w); err != nil {
		return err
	}
	np := Profile{hsl: w.HSLMutation, decal: w.Decal, overlay: w.Overlay}
	if err := np.Validate(); err != nil {
		return err
	}
	*p = np
	return nil
}

// decodeStrict decodes a single JSON value into v, failing on keys which
// v does not declare. json.Unmarshal does not carry this setting into
// nested Unmarshalers, so every wire type decodes through here.
func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after the JSON value")
	}
	return nil
}

// ToJSON encodes the profile to its JSON form.
func (p Profile) ToJSON() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", &Error{Kind: KindProfile, Op: "encode profile", Err: err}
	}
	return string(b), nil
}

// ProfileFromJSON decodes and validates a profile.
func ProfileFromJSON(s string) (Profile, error) {
	var p Profile
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		var fe *Error
		if errors.As(err, &fe) && fe.Kind == KindProfile {
			return Profile{}, err
		}
		return Profile{}, &Error{Kind: KindProfile, Op: "decode profile", Input: s, Err: fmt.Errorf("%w: %w", ErrInvalidProfile, err)}
	}
	return p, nil
}
