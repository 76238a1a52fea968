package vtcore

import "image/color"

// SixelImage is the decoded form of a Sixel DCS payload, ready to hand to
// an ImageRegistry for storage and placement.
type SixelImage struct {
	Width       uint32
	Height      uint32
	Data        []byte // RGBA pixels
	Transparent bool
}

// sixelBaseColors is the canonical startup palette for registers 0-15; the
// remaining registers default to a grayscale ramp.
var sixelBaseColors = [16][3]uint8{
	{0, 0, 0}, {0, 0, 205}, {205, 0, 0}, {205, 0, 205},
	{0, 205, 0}, {0, 205, 205}, {205, 205, 0}, {205, 205, 205},
	{0, 0, 0}, {0, 0, 255}, {255, 0, 0}, {255, 0, 255},
	{0, 255, 0}, {0, 255, 255}, {255, 255, 0}, {255, 255, 255},
}

// sixelDecoder accumulates the pixel grid a Sixel stream describes. Rows
// grow on demand; a pixel with zero alpha was never drawn, which is what
// lets the transparent-background mode skip the fill pass.
type sixelDecoder struct {
	palette     [256]color.RGBA
	color       int
	x, y        int
	width       int
	rows        [][]color.RGBA
	transparent bool
}

func newSixelDecoder() *sixelDecoder {
	d := &sixelDecoder{}
	for i, c := range sixelBaseColors {
		d.palette[i] = color.RGBA{c[0], c[1], c[2], 0xFF}
	}
	for i := 16; i < 256; i++ {
		g := uint8((i - 16) * 255 / 239)
		d.palette[i] = color.RGBA{g, g, g, 0xFF}
	}
	return d
}

// ParseSixel decodes a Sixel stream into an RGBA image. params are the DCS
// parameters (P1;P2;P3); P2=1 selects a transparent background. data holds
// the raw bytes accumulated after the 'q' final.
func ParseSixel(params []Param, data []byte) (*SixelImage, error) {
	d := newSixelDecoder()
	if len(params) >= 2 && params[1].First(0) == 1 {
		d.transparent = true
	}

	for i := 0; i < len(data); {
		b := data[i]
		i++
		switch {
		case b == '$': // graphics carriage return
			d.x = 0
		case b == '-': // graphics newline: next band of six pixels
			d.x = 0
			d.y += 6
		case b == '!': // repeat introducer
			var n int
			n, i = readSixelNumber(data, i)
			if i < len(data) && data[i] >= '?' && data[i] <= '~' {
				d.plot(data[i], n)
				i++
			}
		case b == '#':
			i = d.selectColor(data, i)
		case b == '"':
			// Raster attributes (Pan;Pad;Ph;Pv): parsed and discarded,
			// there being no fixed output canvas here.
			for {
				_, i = readSixelNumber(data, i)
				if i < len(data) && data[i] == ';' {
					i++
					continue
				}
				break
			}
		case b >= '?' && b <= '~':
			d.plot(b, 1)
		}
	}

	return d.image(), nil
}

func readSixelNumber(data []byte, i int) (int, int) {
	n := 0
	for i < len(data) && data[i] >= '0' && data[i] <= '9' {
		n = n*10 + int(data[i]-'0')
		i++
	}
	return n, i
}

// selectColor handles '#': a bare register number selects a drawing color;
// "#reg;type;v1;v2;v3" additionally redefines the register, type 1 being
// HLS and type 2 RGB percentages.
func (d *sixelDecoder) selectColor(data []byte, i int) int {
	var reg int
	reg, i = readSixelNumber(data, i)

	var vals []int
	for i < len(data) && data[i] == ';' {
		i++
		var v int
		v, i = readSixelNumber(data, i)
		vals = append(vals, v)
	}

	if reg < 0 || reg > 255 {
		return i
	}
	if len(vals) >= 4 {
		if vals[0] == 1 {
			d.palette[reg] = hlsToRGB(vals[1], vals[2], vals[3])
		} else {
			d.palette[reg] = color.RGBA{sixelPct(vals[1]), sixelPct(vals[2]), sixelPct(vals[3]), 0xFF}
		}
	}
	d.color = reg
	return i
}

func sixelPct(v int) uint8 {
	v = clamp(v, 0, 100)
	return uint8(v * 255 / 100)
}

// plot draws one sixel character: six vertical pixels encoded as bits 0-5
// of b-'?', repeated moving right.
func (d *sixelDecoder) plot(b byte, repeat int) {
	if repeat < 1 {
		repeat = 1
	}
	bits := b - '?'
	c := d.palette[d.color]
	for n := 0; n < repeat; n++ {
		for bit := 0; bit < 6; bit++ {
			if bits&(1<<bit) != 0 {
				d.setPixel(d.x, d.y+bit, c)
			}
		}
		d.x++
	}
}

func (d *sixelDecoder) setPixel(x, y int, c color.RGBA) {
	for y >= len(d.rows) {
		d.rows = append(d.rows, nil)
	}
	row := d.rows[y]
	for x >= len(row) {
		row = append(row, color.RGBA{})
	}
	row[x] = c
	d.rows[y] = row
	if x+1 > d.width {
		d.width = x + 1
	}
}

// image flattens the accumulated rows into a dense RGBA buffer, filling
// undrawn pixels with register 0 unless the background is transparent.
func (d *sixelDecoder) image() *SixelImage {
	height := len(d.rows)
	if d.width == 0 || height == 0 {
		return &SixelImage{Transparent: d.transparent}
	}

	out := make([]byte, d.width*height*4)
	if !d.transparent {
		bg := d.palette[0]
		for i := 0; i < len(out); i += 4 {
			out[i], out[i+1], out[i+2], out[i+3] = bg.R, bg.G, bg.B, bg.A
		}
	}
	for y, row := range d.rows {
		for x, c := range row {
			if c.A == 0 {
				continue
			}
			o := (y*d.width + x) * 4
			out[o], out[o+1], out[o+2], out[o+3] = c.R, c.G, c.B, c.A
		}
	}

	return &SixelImage{
		Width:       uint32(d.width),
		Height:      uint32(height),
		Data:        out,
		Transparent: d.transparent,
	}
}
