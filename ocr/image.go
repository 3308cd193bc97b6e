package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// DecodeToPNG re-encodes a scan held in a format Tesseract handles
// poorly or not at all (BMP, some TIFF variants) as PNG. PNG and JPEG
// inputs pass through the same path, so callers can feed any
// supported scan format without sniffing it first.
func DecodeToPNG(data []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode scan: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode %s scan as PNG: %w", format, err)
	}
	return buf.Bytes(), nil
}
