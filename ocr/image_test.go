package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// encodeTestScanPNG builds a small grayscale scan with a dark block,
// the kind of input a page-1 sidecar image provides.
func encodeTestScanPNG(t testing.TB, width, height int) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, testScan(width, height)); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func testScan(width, height int) image.Image {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	for x := 10; x < 50 && x < width; x++ {
		for y := 10; y < 30 && y < height; y++ {
			img.Set(x, y, color.Black)
		}
	}
	return img
}

func TestDecodeToPNGFromTIFF(t *testing.T) {
	var buf bytes.Buffer
	if err := tiff.Encode(&buf, testScan(60, 40), nil); err != nil {
		t.Fatal(err)
	}

	out, err := DecodeToPNG(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeToPNG failed: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("Output is not valid PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 60 || decoded.Bounds().Dy() != 40 {
		t.Errorf("Bounds = %v, want 60x40", decoded.Bounds())
	}
}

func TestDecodeToPNGFromBMP(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, testScan(32, 32)); err != nil {
		t.Fatal(err)
	}

	out, err := DecodeToPNG(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeToPNG failed: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(out)); err != nil {
		t.Errorf("Output is not valid PNG: %v", err)
	}
}

func TestDecodeToPNGPassthrough(t *testing.T) {
	out, err := DecodeToPNG(encodeTestScanPNG(t, 20, 20))
	if err != nil {
		t.Fatalf("DecodeToPNG failed: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(out)); err != nil {
		t.Errorf("Output is not valid PNG: %v", err)
	}
}

func TestDecodeToPNGGarbage(t *testing.T) {
	if _, err := DecodeToPNG([]byte("not an image")); err == nil {
		t.Fatal("Expected error for non-image data")
	}
}
