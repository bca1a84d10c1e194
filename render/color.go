package render

import "github.com/gdamore/tcell/v2"

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// Unit builds a color from [0,1] channels, out of range values are clamped
func Unit(r, g, b float32) RGB {
	return RGB{R: unitChannel(r), G: unitChannel(g), B: unitChannel(b)}
}

func unitChannel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (dst RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(dst.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(dst.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(dst.B)*inv),
	}
}

// Scale multiplies all channels by factor, clamped
func (dst RGB) Scale(factor float64) RGB {
	s := func(c uint8) uint8 {
		v := float64(c) * factor
		if v >= 255 {
			return 255
		}
		if v <= 0 {
			return 0
		}
		return uint8(v)
	}
	return RGB{R: s(dst.R), G: s(dst.G), B: s(dst.B)}
}

// Grayscale converts to luma using Rec. 601 coefficients
func (dst RGB) Grayscale() RGB {
	gray := uint8((int(dst.R)*299 + int(dst.G)*587 + int(dst.B)*114) / 1000)
	return RGB{R: gray, G: gray, B: gray}
}

// Tcell converts to a true color tcell value; tcell downsamples on 256-color terminals
func (dst RGB) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(dst.R), int32(dst.G), int32(dst.B))
}
