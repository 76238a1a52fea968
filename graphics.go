package vtcore

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/png"
)

// handleSixel decodes a DCS Sixel payload and places the result at the
// cursor, advancing it below the image the way real Sixel-capable
// terminals do.
func (sq *Sequencer) handleSixel(params []Param, data []byte) {
	img, err := ParseSixel(params, data)
	if err != nil || img.Width == 0 || img.Height == 0 {
		return
	}
	s := sq.target.Screen()
	sq.placeImageAt(s, img.Width, img.Height, img.Data, 0, 0, 0, true)
}

// handleKittyGraphics parses a Kitty graphics APC command and performs the
// transmit/display/delete action it names. Chunked transmission is out of
// scope: each APC is expected to carry a complete image, matching the
// direct-transmission path most clients use.
func (sq *Sequencer) handleKittyGraphics(text string) {
	cmd, err := ParseKittyGraphics(text)
	if err != nil {
		return
	}
	s := sq.target.Screen()

	switch cmd.Action {
	case KittyActionDelete:
		sq.kittyDelete(s, cmd)
		return
	case KittyActionQuery:
		if cmd.Quiet == 0 {
			sq.target.Reply(kittyResponse(cmd.ImageID, ""))
		}
		return
	}

	var rgba []byte
	var width, height uint32
	if cmd.Format == KittyFormatPNG || len(cmd.Payload) > 0 {
		rgba, width, height, err = cmd.DecodePixels()
	}
	if err != nil {
		if cmd.Quiet < 2 {
			sq.target.Reply(kittyResponse(cmd.ImageID, err.Error()))
		}
		return
	}

	switch cmd.Action {
	case KittyActionTransmit:
		sq.storeKittyImage(s, cmd, rgba, width, height)
	case KittyActionTransmitDisplay:
		id := sq.storeKittyImage(s, cmd, rgba, width, height)
		sq.placeImageAt(s, width, height, rgba, id, cmd.Cols, cmd.Rows, !cmd.NoCursor)
	case KittyActionDisplay:
		sq.placeImageAt(s, width, height, rgba, cmd.ImageID, cmd.Cols, cmd.Rows, !cmd.NoCursor)
	}

	if cmd.Quiet == 0 {
		sq.target.Reply(kittyResponse(cmd.ImageID, ""))
	}
}

func (sq *Sequencer) storeKittyImage(s *Screen, cmd *KittyCommand, rgba []byte, width, height uint32) uint32 {
	if cmd.ImageID != 0 {
		s.Images.Put(cmd.ImageID, width, height, rgba)
		return cmd.ImageID
	}
	return s.Images.Intern(width, height, rgba)
}

func (sq *Sequencer) kittyDelete(s *Screen, cmd *KittyCommand) {
	target, withData := cmd.Delete.Norm()

	switch target {
	case KittyDeleteAll:
		if withData {
			s.Images.Clear()
			return
		}
		s.Images.DropPlacements(false, func(*ImagePlacement) bool { return true })
	case KittyDeleteByID:
		if withData {
			s.Images.DeleteImage(cmd.ImageID)
			return
		}
		s.Images.DropPlacements(false, func(p *ImagePlacement) bool { return p.ImageID == cmd.ImageID })
	case KittyDeleteAtCursor:
		row, col := s.Cursor.Line, s.Cursor.Column
		s.Images.DropPlacements(withData, func(p *ImagePlacement) bool {
			return row >= p.Row && row < p.Row+p.Rows && col >= p.Col && col < p.Col+p.Cols
		})
	case KittyDeleteByCol:
		s.Images.DropPlacements(withData, func(p *ImagePlacement) bool {
			return cmd.X >= p.Col && cmd.X < p.Col+p.Cols
		})
	case KittyDeleteByRow:
		s.Images.DropPlacements(withData, func(p *ImagePlacement) bool {
			return cmd.Y >= p.Row && cmd.Y < p.Row+p.Rows
		})
	case KittyDeleteByZIndex:
		s.Images.DropPlacements(withData, func(p *ImagePlacement) bool { return p.ZIndex == cmd.ZIndex })
	}
}

// decodePixelData decodes any std-image-decodable byte stream (PNG in
// practice) into dense RGBA pixels. Shared by the Kitty PNG path and the
// OSC 1337 inline-image path.
func decodePixelData(data []byte) ([]byte, uint32, uint32, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decode image: %w", err)
	}
	rgba, w, h := rgbaFromImage(img)
	return rgba, w, h, nil
}

// rgbaFromImage flattens an image.Image into an RGBA byte buffer.
func rgbaFromImage(img image.Image) ([]byte, uint32, uint32) {
	bounds := img.Bounds()
	width := uint32(bounds.Dx())
	height := uint32(bounds.Dy())
	rgba := make([]byte, width*height*4)
	for y := 0; y < int(height); y++ {
		for x := 0; x < int(width); x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			off := (uint32(y)*width + uint32(x)) * 4
			rgba[off+0] = uint8(r >> 8)
			rgba[off+1] = uint8(g >> 8)
			rgba[off+2] = uint8(b >> 8)
			rgba[off+3] = uint8(a >> 8)
		}
	}
	return rgba, width, height
}

// placeDecodedImage decodes a base64 image payload and places it at the
// cursor; it backs the iTerm2-style OSC 1337 inline-image path, which
// carries no cell-sizing parameters of its own.
func (sq *Sequencer) placeDecodedImage(payload []byte, inline bool, cols, rows int) {
	if !inline {
		return
	}
	raw, err := base64.StdEncoding.DecodeString(string(payload))
	if err != nil {
		return
	}
	rgba, width, height, err := decodePixelData(raw)
	if err != nil {
		return
	}
	s := sq.target.Screen()
	sq.placeImageAt(s, width, height, rgba, 0, uint32(cols), uint32(rows), true)
}

// placeImageAt stores rgba pixel data (reusing id if non-zero) in s's image
// registry, anchors a placement at the cursor sized to cols x rows cells
// (computed from the size provider's cell pixel size when zero), stamps the
// covered cells with CellImage references, and optionally advances the
// cursor below the placed image.
func (sq *Sequencer) placeImageAt(s *Screen, width, height uint32, rgba []byte, id, cols, rows uint32, moveCursor bool) uint32 {
	if id == 0 {
		id = s.Images.Intern(width, height, rgba)
	} else {
		s.Images.Put(id, width, height, rgba)
	}

	cw, ch := s.size.CellSizePixels()
	if cw <= 0 {
		cw = 8
	}
	if ch <= 0 {
		ch = 16
	}
	if cols == 0 {
		cols = (width + uint32(cw) - 1) / uint32(cw)
	}
	if rows == 0 {
		rows = (height + uint32(ch) - 1) / uint32(ch)
	}
	if cols == 0 {
		cols = 1
	}
	if rows == 0 {
		rows = 1
	}

	p := &ImagePlacement{
		ImageID: id,
		Row:     s.Cursor.Line,
		Col:     s.Cursor.Column,
		Cols:    int(cols),
		Rows:    int(rows),
		SrcW:    width,
		SrcH:    height,
	}
	placementID := s.Images.Place(p)

	for r := uint32(0); r < rows; r++ {
		row := s.Cursor.Line + int(r)
		if row < 0 || row >= s.Grid.Lines() {
			continue
		}
		for c := uint32(0); c < cols; c++ {
			col := s.Cursor.Column + int(c)
			if col < 0 || col >= s.Grid.Cols() {
				continue
			}
			cell := s.Grid.Cell(row, col)
			cell.Image = &CellImage{
				PlacementID: placementID,
				ImageID:     id,
				U0:          float32(c) / float32(cols),
				V0:          float32(r) / float32(rows),
				U1:          float32(c+1) / float32(cols),
				V1:          float32(r+1) / float32(rows),
			}
			s.Grid.SetCell(row, col, cell)
		}
	}

	if moveCursor {
		s.Cursor.Line += int(rows)
		if s.Cursor.Line >= s.Grid.Lines() {
			s.Cursor.Line = s.Grid.Lines() - 1
		}
		s.Cursor.Column = s.boundsLeft()
	}

	return placementID
}
