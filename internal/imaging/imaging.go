// =============================================================================
// EFT Viewer - Imaging Module
// =============================================================================
//
// This module inspects fingerprint image payloads handed over by the
// decoder. It reports format and pixel dimensions and decodes the formats
// the Go image ecosystem supports.
//
// FORMATS:
//   - PNG, JPEG, GIF   stdlib decoders
//   - BMP, TIFF, WebP  golang.org/x/image decoders
//   - WSQ, JPEG 2000   recognized by signature, not decoded
//   - raw              uncompressed 8-bit grayscale sized by the record
//
// =============================================================================

package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register decoders
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/ginjaninja78/eft-viewer/internal/types"
)

var (
	// ErrNoImageData means the record has no image payload.
	ErrNoImageData = errors.New("no image data")

	// ErrUnsupportedFormat means the payload format was recognized or
	// guessed but cannot be decoded here.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// Format names returned in Info.
const (
	FormatWSQ     = "wsq"
	FormatJP2     = "jp2"
	FormatRaw     = "raw"
	FormatUnknown = "unknown"
)

// Info describes an image payload.
type Info struct {
	Format string
	Width  int
	Height int
	Bytes  int
}

func (i Info) String() string {
	if i.Width == 0 && i.Height == 0 {
		return fmt.Sprintf("%s, %d bytes", i.Format, i.Bytes)
	}
	return fmt.Sprintf("%s %dx%d, %d bytes", i.Format, i.Width, i.Height, i.Bytes)
}

var (
	wsqSignature       = []byte{0xFF, 0xA0}
	jp2Signature       = []byte{0x00, 0x00, 0x00, 0x0C, 0x6A, 0x50, 0x20, 0x20, 0x0D, 0x0A, 0x87, 0x0A}
	jp2CodeStreamMagic = []byte{0xFF, 0x4F, 0xFF, 0x51}
)

// Probe reads the format and dimensions of payload without decoding pixels.
func Probe(payload []byte) (Info, error) {
	info := Info{Format: FormatUnknown, Bytes: len(payload)}
	if len(payload) == 0 {
		return info, ErrNoImageData
	}

	switch {
	case bytes.HasPrefix(payload, wsqSignature):
		info.Format = FormatWSQ
		return info, fmt.Errorf("%w: %s", ErrUnsupportedFormat, FormatWSQ)
	case bytes.HasPrefix(payload, jp2Signature), bytes.HasPrefix(payload, jp2CodeStreamMagic):
		info.Format = FormatJP2
		return info, fmt.Errorf("%w: %s", ErrUnsupportedFormat, FormatJP2)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(payload))
	if err != nil {
		return info, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	info.Format = format
	info.Width = cfg.Width
	info.Height = cfg.Height
	return info, nil
}

// Decode decodes payload into pixels.
func Decode(payload []byte) (image.Image, Info, error) {
	info, err := Probe(payload)
	if err != nil {
		return nil, info, err
	}
	img, _, err := image.Decode(bytes.NewReader(payload))
	if err != nil {
		return nil, info, fmt.Errorf("failed to decode %s image: %w", info.Format, err)
	}
	return img, info, nil
}

// ProbeFingerprint probes the image of a fingerprint record. An
// uncompressed payload whose size matches the record's width and height is
// reported as raw 8-bit grayscale.
func ProbeFingerprint(r *types.FingerprintRecord) (Info, error) {
	payload := r.ImageData()
	if len(payload) == 0 {
		return Info{Format: FormatUnknown}, ErrNoImageData
	}

	if w, h, ok := rawDimensions(r, len(payload)); ok {
		return Info{Format: FormatRaw, Width: w, Height: h, Bytes: len(payload)}, nil
	}
	return Probe(payload)
}

// DecodeFingerprint decodes the image of a fingerprint record.
func DecodeFingerprint(r *types.FingerprintRecord) (image.Image, Info, error) {
	payload := r.ImageData()
	if w, h, ok := rawDimensions(r, len(payload)); ok {
		img := &image.Gray{Pix: payload, Stride: w, Rect: image.Rect(0, 0, w, h)}
		return img, Info{Format: FormatRaw, Width: w, Height: h, Bytes: len(payload)}, nil
	}
	if len(payload) == 0 {
		return nil, Info{Format: FormatUnknown}, ErrNoImageData
	}
	return Decode(payload)
}

// rawDimensions reports the record's dimensions when its payload is
// uncompressed 8-bit grayscale.
func rawDimensions(r *types.FingerprintRecord, size int) (int, int, bool) {
	if !isUncompressed(r) {
		return 0, 0, false
	}
	w, okW := r.ImageWidth()
	h, okH := r.ImageHeight()
	if !okW || !okH || w <= 0 || h <= 0 || w*h != size {
		return 0, 0, false
	}
	return w, h, true
}

func isUncompressed(r *types.FingerprintRecord) bool {
	switch strings.ToUpper(strings.TrimSpace(r.CompressionAlgorithm())) {
	case "0", "NONE":
		return true
	}
	return false
}
