package vtcore

import "image/color"

// ansiBaseColors holds the 16 named ANSI colors: normal 0-7, bright 8-15.
var ansiBaseColors = [16][3]uint8{
	{0, 0, 0}, {205, 49, 49}, {13, 188, 121}, {229, 229, 16},
	{36, 114, 200}, {188, 63, 188}, {17, 168, 205}, {229, 229, 229},
	{102, 102, 102}, {241, 76, 76}, {35, 209, 139}, {245, 245, 67},
	{59, 142, 234}, {214, 112, 214}, {41, 184, 219}, {255, 255, 255},
}

// DefaultPalette is the standard 256-color palette: the 16 named colors,
// a 6x6x6 color cube (16-231), and 24 grayscale steps (232-255).
var DefaultPalette = buildDefaultPalette()

func buildDefaultPalette() [256]color.RGBA {
	var p [256]color.RGBA
	for i, c := range ansiBaseColors {
		p[i] = color.RGBA{c[0], c[1], c[2], 255}
	}
	for i := 16; i < 232; i++ {
		n := i - 16
		p[i] = color.RGBA{
			R: uint8(n / 36 * 51),
			G: uint8(n / 6 % 6 * 51),
			B: uint8(n % 6 * 51),
			A: 255,
		}
	}
	for i := 232; i < 256; i++ {
		gray := uint8(8 + (i-232)*10)
		p[i] = color.RGBA{gray, gray, gray, 255}
	}
	return p
}

// DefaultForeground is the default text color.
var DefaultForeground = color.RGBA{229, 229, 229, 255}

// DefaultBackground is the default background color.
var DefaultBackground = color.RGBA{0, 0, 0, 255}

// DefaultCursorColor is the default cursor rendering color.
var DefaultCursorColor = color.RGBA{229, 229, 229, 255}

// ColorKind discriminates the Color tagged union described by the data
// model: every cell foreground, background, and underline color is one of
// Default, Undefined, Indexed, Bright, or RGB.
type ColorKind uint8

const (
	// ColorDefault means "use the screen's current default fg/bg".
	ColorDefault ColorKind = iota
	// ColorUndefined means no color has ever been assigned (distinct from
	// ColorDefault so SGR 39/49 reset and DECRQSS reporting can tell them apart).
	ColorUndefined
	// ColorIndexed is one of the 256 palette entries.
	ColorIndexed
	// ColorBright is one of the 8 aixterm bright colors (SGR 90-97/100-107).
	ColorBright
	// ColorRGB is a 24-bit truecolor value.
	ColorRGB
)

// Color is the tagged color value from the data model. It implements
// color.Color so it drops into existing Go color plumbing, while code that
// cares about VT semantics switches on Kind.
type Color struct {
	Kind  ColorKind
	Index uint8      // valid for ColorIndexed (0-255) and ColorBright (0-7)
	RGBAValue color.RGBA // valid for ColorRGB
}

// DefaultColor is the zero-value Color: "use the screen default".
var DefaultColor = Color{Kind: ColorDefault}

// UndefinedColor marks a color attribute that was never set.
var UndefinedColor = Color{Kind: ColorUndefined}

// IndexedColor builds a Color referencing the palette at idx (0-255).
func IndexedColor(idx uint8) Color { return Color{Kind: ColorIndexed, Index: idx} }

// BrightColorOf builds a Color referencing one of the 8 aixterm bright slots.
func BrightColorOf(idx uint8) Color { return Color{Kind: ColorBright, Index: idx % 8} }

// RGBColor builds a truecolor Color.
func RGBColor(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, RGBAValue: color.RGBA{R: r, G: g, B: b, A: 255}}
}

// RGBA implements color.Color by resolving against DefaultPalette and the
// package default foreground. Code that needs background-biased resolution
// (where ColorDefault/ColorUndefined should resolve to the background
// instead) should call ResolveDefaultColor(c, false) directly.
func (c Color) RGBA() (r, g, b, a uint32) {
	return ResolveDefaultColor(c, true).RGBA()
}

// resolve converts the tagged Color into a concrete RGBA using the given
// palette and default fg/bg. fg selects which default applies to
// ColorDefault/ColorUndefined.
func (c Color) resolve(palette *[256]color.RGBA, fg bool, defFg, defBg color.RGBA) color.RGBA {
	switch c.Kind {
	case ColorIndexed:
		return palette[c.Index]
	case ColorBright:
		return palette[8+(c.Index%8)]
	case ColorRGB:
		return c.RGBAValue
	default:
		if fg {
			return defFg
		}
		return defBg
	}
}

// Resolve resolves c against a custom palette/defaults, foreground-biased.
func (c Color) Resolve(palette *[256]color.RGBA, defFg, defBg color.RGBA) color.RGBA {
	return c.resolve(palette, true, defFg, defBg)
}

// ResolveBG resolves c against a custom palette/defaults, background-biased.
func (c Color) ResolveBG(palette *[256]color.RGBA, defFg, defBg color.RGBA) color.RGBA {
	return c.resolve(palette, false, defFg, defBg)
}

// ResolveDefaultColor converts a Color to RGBA using DefaultPalette and the
// package default foreground/background.
func ResolveDefaultColor(c Color, fg bool) color.RGBA {
	return c.resolve(&DefaultPalette, fg, DefaultForeground, DefaultBackground)
}

// hlsToRGB and hueToRGB support Sixel HLS color specifications; kept next to
// the rest of the color machinery they serve.
func hlsToRGB(h, l, s int) color.RGBA {
	hf := float64(h) / 360.0
	lf := float64(l) / 100.0
	sf := float64(s) / 100.0

	if sf == 0 {
		v := uint8(lf * 255)
		return color.RGBA{v, v, v, 255}
	}

	var q float64
	if lf < 0.5 {
		q = lf * (1 + sf)
	} else {
		q = lf + sf - lf*sf
	}
	p := 2*lf - q

	r := hueToRGB(p, q, hf+1.0/3.0)
	g := hueToRGB(p, q, hf)
	b := hueToRGB(p, q, hf-1.0/3.0)

	return color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}
