package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 80, A: 255})
		}
	}
	return img
}

func TestProcessPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(2000, 1200)); err != nil {
		t.Fatalf("encoding test PNG: %v", err)
	}

	result, err := Process(&buf)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if result.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg output, got %q", result.MIME)
	}

	full, err := jpeg.Decode(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("decoding processed photo: %v", err)
	}
	if w := full.Bounds().Dx(); w != MaxDimension {
		t.Errorf("expected width %d after downscale, got %d", MaxDimension, w)
	}

	thumb, err := jpeg.Decode(bytes.NewReader(result.Thumb))
	if err != nil {
		t.Fatalf("decoding thumbnail: %v", err)
	}
	if b := thumb.Bounds(); b.Dx() != ThumbDimension || b.Dy() != ThumbDimension {
		t.Errorf("expected %dx%d thumbnail, got %dx%d", ThumbDimension, ThumbDimension, b.Dx(), b.Dy())
	}
}

func TestProcessKeepsSmallImages(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, testImage(300, 200), nil); err != nil {
		t.Fatalf("encoding test JPEG: %v", err)
	}

	result, err := Process(&buf)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	full, _ := jpeg.Decode(bytes.NewReader(result.Data))
	if b := full.Bounds(); b.Dx() != 300 || b.Dy() != 200 {
		t.Errorf("expected 300x200 unchanged, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestProcessRejectsNonImages(t *testing.T) {
	if _, err := Process(bytes.NewReader([]byte("definitely not an image"))); err == nil {
		t.Error("expected an error for non-image data")
	}
}
