package board

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Default square colours.
const (
	DefaultLight     = "#ffffffff"
	DefaultDark      = "#99999999"
	DefaultHighlight = "#00ff00ff"
)

// ParseColor parses #rgb, #rrggbb and #rrggbbaa hex strings.
func ParseColor(s string) (color.Color, error) {
	hex := strings.TrimSpace(s)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}

	alpha := uint8(0xff)
	if len(hex) == 9 {
		a, err := strconv.ParseUint(hex[7:], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid colour %q: %w", s, err)
		}
		alpha = uint8(a)
		hex = hex[:7]
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// Palette holds the colours a board is drawn with.
type Palette struct {
	Light     color.Color
	Dark      color.Color
	Highlight color.Color
}

// ParsePalette parses the three hex colours of a palette.
func ParsePalette(light, dark, highlight string) (Palette, error) {
	var p Palette
	var err error
	if p.Light, err = ParseColor(light); err != nil {
		return Palette{}, fmt.Errorf("light squares: %w", err)
	}
	if p.Dark, err = ParseColor(dark); err != nil {
		return Palette{}, fmt.Errorf("dark squares: %w", err)
	}
	if p.Highlight, err = ParseColor(highlight); err != nil {
		return Palette{}, fmt.Errorf("highlight: %w", err)
	}
	return p, nil
}
