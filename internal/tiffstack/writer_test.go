package tiffstack

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/tiff"
)

func grayPage(w, h int, base uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: base + uint8(x+y)})
		}
	}
	return img
}

func rgbPage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestEncode_PageChain(t *testing.T) {
	pages := []image.Image{
		grayPage(16, 12, 0),
		grayPage(16, 12, 50),
		grayPage(16, 12, 100),
	}

	var buf bytes.Buffer
	if err := Encode(&buf, pages, nil); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	sizes, err := PageSizes(buf.Bytes())
	if err != nil {
		t.Fatalf("PageSizes failed: %v", err)
	}
	if len(sizes) != 3 {
		t.Fatalf("got %d pages, want 3", len(sizes))
	}
	for i, size := range sizes {
		if size.Width != 16 || size.Height != 12 {
			t.Errorf("page %d: got %dx%d, want 16x12", i, size.Width, size.Height)
		}
	}
}

func TestEncode_FirstPageDecodes(t *testing.T) {
	want := grayPage(20, 10, 30)
	pages := []image.Image{want, grayPage(20, 10, 200)}

	for name, opt := range map[string]*Options{
		"deflate":      nil,
		"uncompressed": {Compression: Uncompressed},
	} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, pages, opt); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			// A standard TIFF reader sees the first page.
			img, err := tiff.Decode(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("tiff.Decode failed: %v", err)
			}
			bounds := img.Bounds()
			if bounds.Dx() != 20 || bounds.Dy() != 10 {
				t.Fatalf("got %dx%d, want 20x10", bounds.Dx(), bounds.Dy())
			}
			for _, p := range []image.Point{{0, 0}, {19, 9}, {7, 3}} {
				wr, _, _, _ := want.At(p.X, p.Y).RGBA()
				gr, _, _, _ := img.At(p.X, p.Y).RGBA()
				if wr != gr {
					t.Errorf("pixel %v: got %d, want %d", p, gr>>8, wr>>8)
				}
			}
		})
	}
}

func TestEncode_RGBPage(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, []image.Image{rgbPage(8, 8, color.NRGBA{R: 200, G: 100, B: 50, A: 255})}, nil)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	img, err := tiff.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("tiff.Decode failed: %v", err)
	}
	r, g, b, _ := img.At(4, 4).RGBA()
	if r>>8 != 200 || g>>8 != 100 || b>>8 != 50 {
		t.Errorf("got rgb(%d,%d,%d), want rgb(200,100,50)", r>>8, g>>8, b>>8)
	}
}

func TestEncode_MixedPages(t *testing.T) {
	pages := []image.Image{
		grayPage(10, 10, 0),
		rgbPage(10, 10, color.NRGBA{R: 1, G: 2, B: 3, A: 255}),
	}
	var buf bytes.Buffer
	if err := Encode(&buf, pages, nil); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	count, err := PageCount(buf.Bytes())
	if err != nil {
		t.Fatalf("PageCount failed: %v", err)
	}
	if count != 2 {
		t.Errorf("got %d pages, want 2", count)
	}
}

func TestEncode_NoPages(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, nil, nil); err == nil {
		t.Error("encoding zero pages should fail")
	}
}

func TestPageSizes_Garbage(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("MM"), []byte("not a tiff at all")} {
		if _, err := PageSizes(data); err == nil {
			t.Errorf("garbage input %q should fail", data)
		}
	}
}
