package vtcore

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// KittyAction selects what a Kitty graphics APC command does. Only the
// direct-transmission subset is implemented: animation actions arrive as
// unrecognized actions and are ignored.
type KittyAction byte

const (
	KittyActionTransmit        KittyAction = 't'
	KittyActionTransmitDisplay KittyAction = 'T'
	KittyActionQuery           KittyAction = 'q'
	KittyActionDisplay         KittyAction = 'p'
	KittyActionDelete          KittyAction = 'd'
)

// KittyFormat names the pixel encoding of a transmitted payload.
type KittyFormat uint32

const (
	KittyFormatRGB  KittyFormat = 24
	KittyFormatRGBA KittyFormat = 32
	KittyFormatPNG  KittyFormat = 100
)

// KittyDelete selects which placements a delete command targets. The
// protocol doubles each letter: the uppercase form also deletes the image
// data behind the matched placements, which Norm folds into a flag.
type KittyDelete byte

const (
	KittyDeleteAll      KittyDelete = 'a'
	KittyDeleteByID     KittyDelete = 'i'
	KittyDeleteAtCursor KittyDelete = 'c'
	KittyDeleteByCol    KittyDelete = 'x'
	KittyDeleteByRow    KittyDelete = 'y'
	KittyDeleteByZIndex KittyDelete = 'z'
)

// Norm returns the lowercase delete target and whether the uppercase
// also-delete-data variant was requested.
func (d KittyDelete) Norm() (KittyDelete, bool) {
	if d >= 'A' && d <= 'Z' {
		return d + 'a' - 'A', true
	}
	return d, false
}

// KittyCommand is one parsed Kitty graphics command: the control keys this
// module acts on, plus the base64-decoded payload.
type KittyCommand struct {
	Action      KittyAction
	Format      KittyFormat
	Compression byte // 'z' for zlib, 0 for none

	ImageID     uint32 // i=
	PlacementID uint32 // p=

	Width  uint32 // s= source width in pixels
	Height uint32 // v= source height in pixels

	Cols, Rows uint32 // c=, r= target size in cells
	X, Y       int    // x=, y= (delete coordinates)
	ZIndex     int32  // z=
	NoCursor   bool   // C=1: leave the cursor in place after display

	Delete KittyDelete // d=
	Quiet  uint32      // q= 0 reply always, 1 suppress OK, 2 suppress all

	Payload []byte
}

// ParseKittyGraphics parses an APC G payload: "key=value,..." control data,
// then an optional ";base64" image payload.
func ParseKittyGraphics(text string) (*KittyCommand, error) {
	cmd := &KittyCommand{
		Action: KittyActionTransmitDisplay,
		Format: KittyFormatRGBA,
	}

	text = strings.TrimPrefix(text, "G")

	control := text
	if i := strings.IndexByte(text, ';'); i >= 0 {
		control = text[:i]
		decoded, err := decodeBase64(text[i+1:])
		if err != nil {
			return nil, fmt.Errorf("kitty payload: %w", err)
		}
		cmd.Payload = decoded
	}

	for _, kv := range strings.Split(control, ",") {
		eq := strings.IndexByte(kv, '=')
		if eq < 1 {
			continue
		}
		key, value := kv[0], kv[eq+1:]
		switch key {
		case 'a':
			if value != "" {
				cmd.Action = KittyAction(value[0])
			}
		case 'f':
			cmd.Format = KittyFormat(kittyUint(value))
		case 'o':
			if value != "" {
				cmd.Compression = value[0]
			}
		case 'i':
			cmd.ImageID = kittyUint(value)
		case 'p':
			cmd.PlacementID = kittyUint(value)
		case 's':
			cmd.Width = kittyUint(value)
		case 'v':
			cmd.Height = kittyUint(value)
		case 'c':
			cmd.Cols = kittyUint(value)
		case 'r':
			cmd.Rows = kittyUint(value)
		case 'x':
			cmd.X = kittyInt(value)
		case 'y':
			cmd.Y = kittyInt(value)
		case 'z':
			cmd.ZIndex = int32(kittyInt(value))
		case 'C':
			cmd.NoCursor = kittyUint(value) == 1
		case 'd':
			if value != "" {
				cmd.Delete = KittyDelete(value[0])
			}
		case 'q':
			cmd.Quiet = kittyUint(value)
		}
	}

	return cmd, nil
}

// DecodePixels converts the command's payload into RGBA pixels, inflating
// zlib compression and expanding RGB/PNG data as needed.
func (cmd *KittyCommand) DecodePixels() ([]byte, uint32, uint32, error) {
	data := cmd.Payload
	if cmd.Compression == 'z' && len(data) > 0 {
		inflated, err := zlibInflate(data)
		if err != nil {
			return nil, 0, 0, err
		}
		data = inflated
	}

	switch cmd.Format {
	case KittyFormatPNG:
		return decodePixelData(data)

	case KittyFormatRGB:
		if err := cmd.checkPixelCount(len(data), 3); err != nil {
			return nil, 0, 0, err
		}
		rgba := make([]byte, cmd.Width*cmd.Height*4)
		for i := uint32(0); i < cmd.Width*cmd.Height; i++ {
			copy(rgba[i*4:], data[i*3:i*3+3])
			rgba[i*4+3] = 0xFF
		}
		return rgba, cmd.Width, cmd.Height, nil

	case KittyFormatRGBA:
		if err := cmd.checkPixelCount(len(data), 4); err != nil {
			return nil, 0, 0, err
		}
		return data[:cmd.Width*cmd.Height*4], cmd.Width, cmd.Height, nil

	default:
		return nil, 0, 0, fmt.Errorf("unsupported kitty format %d", cmd.Format)
	}
}

func (cmd *KittyCommand) checkPixelCount(have, bytesPerPixel int) error {
	if cmd.Width == 0 || cmd.Height == 0 {
		return fmt.Errorf("kitty format %d requires s= and v=", cmd.Format)
	}
	need := int(cmd.Width*cmd.Height) * bytesPerPixel
	if have < need {
		return fmt.Errorf("kitty payload short: %d bytes, need %d", have, need)
	}
	return nil
}

func zlibInflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("kitty zlib: %w", err)
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("kitty zlib: %w", err)
	}
	return out, nil
}

func decodeBase64(s string) ([]byte, error) {
	if out, err := base64.StdEncoding.DecodeString(s); err == nil {
		return out, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}

func kittyUint(s string) uint32 {
	n, _ := strconv.ParseUint(s, 10, 32)
	return uint32(n)
}

func kittyInt(s string) int {
	n, _ := strconv.ParseInt(s, 10, 32)
	return int(n)
}

// kittyResponse renders the APC reply for a command: "OK" on success, the
// error text otherwise.
func kittyResponse(imageID uint32, message string) string {
	if message == "" {
		message = "OK"
	}
	id := ""
	if imageID > 0 {
		id = fmt.Sprintf("i=%d", imageID)
	}
	return "\x1b_G" + id + ";" + message + "\x1b\\"
}
