// Package color converts between hex strings and RGBA colours.
package color

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrDecode is returned when a string is not a 6 or 8 digit hex colour.
var ErrDecode = errors.New("not a valid hex color")

// Color is an RGB colour with an alpha channel. All channels are in [0, 1].
type Color struct {
	colorful.Color
	Alpha float64
}

var (
	// Gray is used whenever a stored colour cannot be decoded.
	Gray = mustDecode("#8E8E93")

	// Blue is the default colour for new categories.
	Blue = mustDecode("#007AFF")
)

// Decode parses a hex colour with an optional leading "#".
//
// Six digits are read as RRGGBB with an alpha of 1, eight digits as RRGGBBAA.
func Decode(hex string) (Color, error) {
	s := strings.ToUpper(strings.TrimSpace(hex))
	s = strings.TrimPrefix(s, "#")

	if len(s) != 6 && len(s) != 8 {
		return Color{}, fmt.Errorf("%w: %q must have 6 or 8 hex digits", ErrDecode, hex)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q contains non-hex characters", ErrDecode, hex)
	}

	channel := func(shift uint) float64 {
		return float64((v>>shift)&0xFF) / 255.0
	}

	if len(s) == 6 {
		return Color{
			Color: colorful.Color{R: channel(16), G: channel(8), B: channel(0)},
			Alpha: 1.0,
		}, nil
	}

	return Color{
		Color: colorful.Color{R: channel(24), G: channel(16), B: channel(8)},
		Alpha: channel(0),
	}, nil
}

// DecodeOr decodes hex and returns fallback if that fails.
func DecodeOr(hex string, fallback Color) Color {
	c, err := Decode(hex)
	if err != nil {
		return fallback
	}
	return c
}

// Encode returns the colour as "#rrggbb".
//
// The alpha channel is dropped, so encoding a colour decoded from an
// eight digit string does not give back the original string.
func Encode(c Color) string {
	return c.Clamped().Hex()
}

// Hex is a shorthand for Encode(c).
func (c Color) Hex() string {
	return Encode(c)
}

func mustDecode(hex string) Color {
	c, err := Decode(hex)
	if err != nil {
		panic(err)
	}
	return c
}
