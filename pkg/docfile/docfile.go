// Package docfile reads and writes strata documents as YAML.
//
// The format is versioned by the top-level "strata" field. Versions are
// compared by semver major: a file written by any v1.x tool loads here,
// while a future v2 file is rejected with a format error.
//
// Raster layers carry a "source" reference instead of inline pixel data;
// resolving the reference into pixels is the caller's concern (the CLI
// loads sources relative to the document file).
package docfile

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"golang.org/x/mod/semver"
)

// FormatVersion is the version written to new files.
const FormatVersion = "v1"

// fileDoc is the YAML shape of a document file.
type fileDoc struct {
	Strata string      `yaml:"strata"`
	ID     string      `yaml:"id,omitempty"`
	Title  string      `yaml:"title,omitempty"`
	Layers []fileLayer `yaml:"layers,omitempty"`
}

// fileLayer is the YAML shape of one layer. Kind selects which of the
// remaining fields apply: "group" uses flattened and layers, "raster"
// uses bounds and source, "fill" uses bounds and color.
//
// Opacity and visible are pointers so an omitted field keeps the
// document defaults (1 and true) instead of the YAML zero values.
type fileLayer struct {
	Kind      string      `yaml:"kind"`
	Name      string      `yaml:"name,omitempty"`
	Order     float64     `yaml:"order,omitempty"`
	Opacity   *float64    `yaml:"opacity,omitempty"`
	Visible   *bool       `yaml:"visible,omitempty"`
	Flattened bool        `yaml:"flattened,omitempty"`
	Bounds    fileBounds  `yaml:"bounds,omitempty"`
	Source    string      `yaml:"source,omitempty"`
	Color     string      `yaml:"color,omitempty"`
	Layers    []fileLayer `yaml:"layers,omitempty"`
}

// fileBounds is a layer placement in document space.
type fileBounds struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func (b fileBounds) rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

func boundsOf(r image.Rectangle) fileBounds {
	return fileBounds{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// versionSupported reports whether a file version can be loaded by this
// package. The version must be valid semver and share FormatVersion's
// major.
func versionSupported(v string) bool {
	return semver.IsValid(v) && semver.Major(v) == semver.Major(FormatVersion)
}

// ParseColor reads a "#rrggbb" or "#rrggbbaa" color string.
func ParseColor(s string) (color.NRGBA, bool) {
	if (len(s) != 7 && len(s) != 9) || s[0] != '#' {
		return color.NRGBA{}, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 64)
	if err != nil {
		return color.NRGBA{}, false
	}
	if len(s) == 7 {
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
}

// FormatColor renders a color as "#rrggbb", or "#rrggbbaa" when the
// alpha channel is not fully opaque.
func FormatColor(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
