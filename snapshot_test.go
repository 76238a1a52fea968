package vtcore

import "testing"

func TestSnapshotText(t *testing.T) {
	term := New(WithSize(3, 10))
	term.WriteString("hello\r\nworld")

	snap := term.Snapshot(SnapshotDetailText)

	if snap.Size.Rows != 3 || snap.Size.Cols != 10 {
		t.Fatalf("expected 3x10, got %dx%d", snap.Size.Rows, snap.Size.Cols)
	}
	if snap.Lines[0].Text != "hello" || snap.Lines[1].Text != "world" {
		t.Errorf("unexpected text lines %q %q", snap.Lines[0].Text, snap.Lines[1].Text)
	}
	if snap.Lines[0].Segments != nil || snap.Lines[0].Cells != nil {
		t.Error("expected text detail to omit segments and cells")
	}
	if snap.Cursor.Row != 1 || snap.Cursor.Col != 5 {
		t.Errorf("expected cursor (1, 5), got (%d, %d)", snap.Cursor.Row, snap.Cursor.Col)
	}
	if snap.Cursor.Style != "block" {
		t.Errorf("expected block cursor, got %q", snap.Cursor.Style)
	}
}

func TestSnapshotStyled(t *testing.T) {
	term := New(WithSize(1, 6))
	term.WriteString("\x1b[31mAB\x1b[0mC")

	snap := term.Snapshot(SnapshotDetailStyled)

	segs := snap.Lines[0].Segments
	if len(segs) < 2 {
		t.Fatalf("expected at least 2 segments, got %d", len(segs))
	}
	if segs[0].Text != "AB" {
		t.Errorf("expected first segment 'AB', got %q", segs[0].Text)
	}
	if segs[0].Fg != "#cd3131" {
		t.Errorf("expected red fg #cd3131, got %q", segs[0].Fg)
	}
	if segs[1].Text[0] != 'C' {
		t.Errorf("expected second segment to start with 'C', got %q", segs[1].Text)
	}
}

func TestSnapshotFull(t *testing.T) {
	term := New(WithSize(1, 4))
	term.WriteString("\x1b[1m日")

	snap := term.Snapshot(SnapshotDetailFull)

	cells := snap.Lines[0].Cells
	if len(cells) != 4 {
		t.Fatalf("expected 4 cells, got %d", len(cells))
	}
	if cells[0].Char != "日" || !cells[0].Wide {
		t.Errorf("expected wide first cell, got %+v", cells[0])
	}
	if !cells[1].WideSpacer {
		t.Error("expected continuation marker on second cell")
	}
	if !cells[0].Attributes.Bold {
		t.Error("expected bold attribute carried")
	}
}

func TestSnapshotHyperlink(t *testing.T) {
	term := New(WithSize(1, 10))
	term.WriteString("\x1b]8;;https://x.example\x1b\\L\x1b]8;;\x1b\\")

	snap := term.Snapshot(SnapshotDetailFull)

	link := snap.Lines[0].Cells[0].Hyperlink
	if link == nil || link.URI != "https://x.example" {
		t.Errorf("expected hyperlink on first cell, got %+v", link)
	}
	if snap.Lines[0].Cells[2].Hyperlink != nil {
		t.Error("expected no hyperlink past the link range")
	}
}

func TestSnapshotImages(t *testing.T) {
	term := New(WithSize(10, 20))
	term.WriteString("\x1bPq#1~~~\x1b\\")

	snap := term.Snapshot(SnapshotDetailText)

	if len(snap.Images) != 1 {
		t.Fatalf("expected 1 image placement, got %d", len(snap.Images))
	}
	img := snap.Images[0]
	if img.PixelWidth != 3 || img.PixelHeight != 6 {
		t.Errorf("expected 3x6 source image, got %dx%d", img.PixelWidth, img.PixelHeight)
	}
}

func TestGetImageData(t *testing.T) {
	term := New(WithSize(10, 20))
	term.WriteString("\x1bPq#1~\x1b\\")

	placements := term.ImagePlacements()
	if len(placements) != 1 {
		t.Fatal("expected a placement")
	}

	data := term.GetImageData(placements[0].ImageID)
	if data == nil {
		t.Fatal("expected image data")
	}
	if data.Format != "rgba" || data.Width != 1 || data.Height != 6 {
		t.Errorf("unexpected image data %+v", data)
	}
	if term.GetImageData(9999) != nil {
		t.Error("expected nil for unknown image id")
	}
}
