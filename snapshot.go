package vtcore

import (
	"encoding/base64"
	"fmt"
)

// SnapshotDetail specifies the level of detail in a snapshot.
type SnapshotDetail string

const (
	// SnapshotDetailText returns plain text only.
	SnapshotDetailText SnapshotDetail = "text"
	// SnapshotDetailStyled returns text with style segments per line.
	SnapshotDetailStyled SnapshotDetail = "styled"
	// SnapshotDetailFull returns full cell-by-cell data.
	SnapshotDetailFull SnapshotDetail = "full"
)

// Snapshot is a structured capture of the active screen: size, cursor, line
// content at the requested detail, and image placement metadata. It reads
// the grid directly, row by row, and does not go through a Renderer.
type Snapshot struct {
	Size   SnapshotSize    `json:"size"`
	Cursor SnapshotCursor  `json:"cursor"`
	Lines  []SnapshotLine  `json:"lines"`
	Images []SnapshotImage `json:"images,omitempty"`
}

// SnapshotSize holds terminal dimensions.
type SnapshotSize struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// SnapshotCursor holds cursor state.
type SnapshotCursor struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Visible bool   `json:"visible"`
	Style   string `json:"style"`
}

// SnapshotLine represents a single line in the snapshot.
type SnapshotLine struct {
	Text     string            `json:"text"`
	Segments []SnapshotSegment `json:"segments,omitempty"`
	Cells    []SnapshotCell    `json:"cells,omitempty"`
}

// SnapshotSegment is a run of cells sharing one style within a line.
type SnapshotSegment struct {
	Text       string        `json:"text"`
	Fg         string        `json:"fg,omitempty"`
	Bg         string        `json:"bg,omitempty"`
	Attributes SnapshotAttrs `json:"attrs,omitempty"`
	Hyperlink  *SnapshotLink `json:"hyperlink,omitempty"`
}

// SnapshotCell is a single cell with full attributes.
type SnapshotCell struct {
	Char       string        `json:"char"`
	Fg         string        `json:"fg"`
	Bg         string        `json:"bg"`
	Attributes SnapshotAttrs `json:"attrs,omitempty"`
	Hyperlink  *SnapshotLink `json:"hyperlink,omitempty"`
	Wide       bool          `json:"wide,omitempty"`
	WideSpacer bool          `json:"wide_spacer,omitempty"`
}

// SnapshotAttrs holds text formatting attributes.
type SnapshotAttrs struct {
	Bold          bool `json:"bold,omitempty"`
	Faint         bool `json:"faint,omitempty"`
	Italic        bool `json:"italic,omitempty"`
	Underline     bool `json:"underline,omitempty"`
	Blink         bool `json:"blink,omitempty"`
	Inverse       bool `json:"inverse,omitempty"`
	Hidden        bool `json:"hidden,omitempty"`
	Strikethrough bool `json:"strikethrough,omitempty"`
}

// SnapshotLink holds hyperlink information.
type SnapshotLink struct {
	ID  string `json:"id,omitempty"`
	URI string `json:"uri"`
}

// SnapshotImage holds image placement metadata (without pixel data).
type SnapshotImage struct {
	ID          uint32 `json:"id"`
	PlacementID uint32 `json:"placement_id"`
	Row         int    `json:"row"`
	Col         int    `json:"col"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	PixelWidth  uint32 `json:"pixel_width"`
	PixelHeight uint32 `json:"pixel_height"`
	ZIndex      int32  `json:"z_index"`
}

// ImageSnapshot holds complete image data for retrieval.
type ImageSnapshot struct {
	ID     uint32 `json:"id"`
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
	Format string `json:"format"` // "rgba" (raw RGBA pixels, base64 encoded)
	Data   string `json:"data"`
}

// GetImageData returns the image data for the given ID, or nil if not found.
func (t *Terminal) GetImageData(id uint32) *ImageSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	img := t.Screen().Images.Image(id)
	if img == nil {
		return nil
	}

	return &ImageSnapshot{
		ID:     img.ID,
		Width:  img.Width,
		Height: img.Height,
		Format: "rgba",
		Data:   base64.StdEncoding.EncodeToString(img.Data),
	}
}

// Snapshot captures the current state of the active screen. The detail
// parameter controls how much information each line carries.
func (t *Terminal) Snapshot(detail SnapshotDetail) *Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := t.Screen()
	snap := &Snapshot{
		Size: SnapshotSize{
			Rows: s.Grid.Lines(),
			Cols: s.Grid.Cols(),
		},
		Cursor: SnapshotCursor{
			Row:     s.Cursor.Line,
			Col:     s.Cursor.Column,
			Visible: s.Cursor.Visible,
			Style:   cursorStyleToString(s.Cursor.Style),
		},
		Lines: make([]SnapshotLine, s.Grid.Lines()),
	}

	for row := 0; row < s.Grid.Lines(); row++ {
		snap.Lines[row] = t.snapshotLine(s, row, detail)
	}

	snap.Images = t.snapshotImages(s)

	return snap
}

func (t *Terminal) snapshotImages(s *Screen) []SnapshotImage {
	placements := s.Images.Placements()
	if len(placements) == 0 {
		return nil
	}

	images := make([]SnapshotImage, 0, len(placements))
	for _, p := range placements {
		img := s.Images.Image(p.ImageID)
		if img == nil {
			continue
		}

		images = append(images, SnapshotImage{
			ID:          p.ImageID,
			PlacementID: p.ID,
			Row:         p.Row,
			Col:         p.Col,
			Rows:        p.Rows,
			Cols:        p.Cols,
			PixelWidth:  img.Width,
			PixelHeight: img.Height,
			ZIndex:      p.ZIndex,
		})
	}

	return images
}

func (t *Terminal) snapshotLine(s *Screen, row int, detail SnapshotDetail) SnapshotLine {
	line := SnapshotLine{
		Text: s.Grid.Line(row).String(),
	}

	switch detail {
	case SnapshotDetailStyled:
		line.Segments = t.lineToSegments(s, row)
	case SnapshotDetailFull:
		line.Cells = t.lineToCells(s, row)
	}

	return line
}

// lineToSegments converts a line to styled segments (runs of same style).
func (t *Terminal) lineToSegments(s *Screen, row int) []SnapshotSegment {
	var segments []SnapshotSegment
	var current *SnapshotSegment
	var currentChars []rune

	for col := 0; col < s.Grid.Cols(); col++ {
		cell := s.Grid.Cell(row, col)
		if cell.IsWideSpacer() {
			continue
		}

		fg := t.colorToHex(cell.Attrs.Foreground, true)
		bg := t.colorToHex(cell.Attrs.Background, false)
		attrs := cellAttrsToSnapshot(cell)
		link := t.cellHyperlinkToSnapshot(s, cell)

		if current == nil || !segmentMatches(current, fg, bg, attrs, link) {
			if current != nil && len(currentChars) > 0 {
				current.Text = string(currentChars)
				segments = append(segments, *current)
			}
			current = &SnapshotSegment{
				Fg:         fg,
				Bg:         bg,
				Attributes: attrs,
				Hyperlink:  link,
			}
			currentChars = nil
		}

		ch := cell.Char
		if ch == 0 {
			ch = ' '
		}
		currentChars = append(currentChars, ch)
	}

	if current != nil && len(currentChars) > 0 {
		current.Text = string(currentChars)
		segments = append(segments, *current)
	}

	return segments
}

// lineToCells converts a line to full cell data.
func (t *Terminal) lineToCells(s *Screen, row int) []SnapshotCell {
	cells := make([]SnapshotCell, 0, s.Grid.Cols())

	for col := 0; col < s.Grid.Cols(); col++ {
		cell := s.Grid.Cell(row, col)

		ch := cell.Char
		if ch == 0 {
			ch = ' '
		}

		cells = append(cells, SnapshotCell{
			Char:       string(ch),
			Fg:         t.colorToHex(cell.Attrs.Foreground, true),
			Bg:         t.colorToHex(cell.Attrs.Background, false),
			Attributes: cellAttrsToSnapshot(cell),
			Hyperlink:  t.cellHyperlinkToSnapshot(s, cell),
			Wide:       cell.IsWide(),
			WideSpacer: cell.IsWideSpacer(),
		})
	}

	return cells
}

func segmentMatches(seg *SnapshotSegment, fg, bg string, attrs SnapshotAttrs, link *SnapshotLink) bool {
	if seg.Fg != fg || seg.Bg != bg {
		return false
	}
	if seg.Attributes != attrs {
		return false
	}
	if seg.Hyperlink == nil && link == nil {
		return true
	}
	if seg.Hyperlink == nil || link == nil {
		return false
	}
	return seg.Hyperlink.URI == link.URI && seg.Hyperlink.ID == link.ID
}

// colorToHex resolves a tagged Color against the terminal's palette and
// default colors, rendering "#rrggbb".
func (t *Terminal) colorToHex(c Color, fg bool) string {
	var rgba = c.resolve(&t.palette, fg, t.defaultFg, t.defaultBg)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

func cellAttrsToSnapshot(cell Cell) SnapshotAttrs {
	return SnapshotAttrs{
		Bold:   cell.HasFlag(CellFlagBold),
		Faint:  cell.HasFlag(CellFlagFaint),
		Italic: cell.HasFlag(CellFlagItalic),
		Underline: cell.HasFlag(CellFlagUnderline) || cell.HasFlag(CellFlagDoublyUnderlined) ||
			cell.HasFlag(CellFlagCurlyUnderline) || cell.HasFlag(CellFlagDottedUnderline) ||
			cell.HasFlag(CellFlagDashedUnderline),
		Blink:         cell.HasFlag(CellFlagBlinking) || cell.HasFlag(CellFlagRapidBlinking),
		Inverse:       cell.HasFlag(CellFlagInverse),
		Hidden:        cell.HasFlag(CellFlagHidden),
		Strikethrough: cell.HasFlag(CellFlagCrossedOut),
	}
}

func (t *Terminal) cellHyperlinkToSnapshot(s *Screen, cell Cell) *SnapshotLink {
	if cell.Hyperlink == 0 {
		return nil
	}
	link := s.Links.Lookup(cell.Hyperlink)
	if link == nil {
		return nil
	}
	return &SnapshotLink{
		ID:  link.UserID,
		URI: link.URI,
	}
}

func cursorStyleToString(style CursorStyle) string {
	switch style {
	case CursorStyleBlinkingBlock, CursorStyleSteadyBlock:
		return "block"
	case CursorStyleBlinkingUnderline, CursorStyleSteadyUnderline:
		return "underline"
	case CursorStyleBlinkingBar, CursorStyleSteadyBar:
		return "bar"
	default:
		return "block"
	}
}
