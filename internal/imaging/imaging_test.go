package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/ginjaninja78/eft-viewer/internal/decoder"
	"github.com/ginjaninja78/eft-viewer/internal/testutil/eftgen"
	"github.com/ginjaninja78/eft-viewer/internal/types"
)

func grayImage(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7)
	}
	return img
}

func encode(t *testing.T, fn func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := fn(&buf, grayImage(5, 3)); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestProbe(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		format  string
	}{
		{name: "png", payload: encode(t, func(b *bytes.Buffer, m image.Image) error { return png.Encode(b, m) }), format: "png"},
		{name: "bmp", payload: encode(t, func(b *bytes.Buffer, m image.Image) error { return bmp.Encode(b, m) }), format: "bmp"},
		{name: "tiff", payload: encode(t, func(b *bytes.Buffer, m image.Image) error { return tiff.Encode(b, m, nil) }), format: "tiff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Probe(tt.payload)
			if err != nil {
				t.Fatalf("Probe: %v", err)
			}
			if info.Format != tt.format || info.Width != 5 || info.Height != 3 {
				t.Errorf("Probe = %+v, want %s 5x3", info, tt.format)
			}
		})
	}
}

func TestProbeUnsupported(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		format  string
		want    error
	}{
		{name: "wsq", payload: []byte{0xFF, 0xA0, 0xFF, 0xA8}, format: FormatWSQ, want: ErrUnsupportedFormat},
		{name: "jp2 codestream", payload: []byte{0xFF, 0x4F, 0xFF, 0x51, 0x00}, format: FormatJP2, want: ErrUnsupportedFormat},
		{name: "garbage", payload: []byte("not an image"), format: FormatUnknown, want: ErrUnsupportedFormat},
		{name: "empty", payload: nil, format: FormatUnknown, want: ErrNoImageData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Probe(tt.payload)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if info.Format != tt.format {
				t.Errorf("Format = %q, want %q", info.Format, tt.format)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	payload := encode(t, func(b *bytes.Buffer, m image.Image) error { return png.Encode(b, m) })
	img, info, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Bounds().Dx() != 5 || info.Format != "png" {
		t.Errorf("Decode = %v, %+v", img.Bounds(), info)
	}
	if got := color.GrayModel.Convert(img.At(1, 0)).(color.Gray).Y; got != 7 {
		t.Errorf("pixel (1,0) = %d, want 7", got)
	}
}

func fingerprint(t *testing.T, rec eftgen.Type4) *types.FingerprintRecord {
	t.Helper()
	data := eftgen.File(
		eftgen.Transaction([]eftgen.Entry{{RecordType: 4, IDC: 1}}),
		eftgen.Binary4(rec),
	)
	f, err := decoder.Decode(data, "")
	if err != nil {
		t.Fatal(err)
	}
	prints := f.FingerprintRecords()
	if len(prints) != 1 {
		t.Fatalf("got %d fingerprints: %q", len(prints), f.Warnings())
	}
	return prints[0]
}

func TestFingerprintRaw(t *testing.T) {
	pixels := grayImage(4, 2).Pix
	fp := fingerprint(t, eftgen.Type4{Width: 4, Height: 2, Compression: 0, Image: pixels})

	info, err := ProbeFingerprint(fp)
	if err != nil {
		t.Fatalf("ProbeFingerprint: %v", err)
	}
	if info.Format != FormatRaw || info.Width != 4 || info.Height != 2 {
		t.Errorf("ProbeFingerprint = %+v", info)
	}

	img, _, err := DecodeFingerprint(fp)
	if err != nil {
		t.Fatalf("DecodeFingerprint: %v", err)
	}
	if got := img.(*image.Gray).GrayAt(3, 1).Y; got != pixels[7] {
		t.Errorf("pixel (3,1) = %d, want %d", got, pixels[7])
	}
}

func TestFingerprintWSQ(t *testing.T) {
	fp := fingerprint(t, eftgen.Type4{Width: 4, Height: 2, Compression: 1, Image: []byte{0xFF, 0xA0, 0x00}})
	if _, err := ProbeFingerprint(fp); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFingerprintNoImage(t *testing.T) {
	fp := fingerprint(t, eftgen.Type4{Width: 4, Height: 2})
	if _, err := ProbeFingerprint(fp); !errors.Is(err, ErrNoImageData) {
		t.Errorf("error = %v, want ErrNoImageData", err)
	}
}
