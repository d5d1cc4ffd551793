package export

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/tessellab/region-bridge/internal/regions"
)

func gradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func TestFileSource_Metadata(t *testing.T) {
	src := NewFileSource("gradient", gradientImage(120, 90))
	if src.Width() != 120 || src.Height() != 90 {
		t.Errorf("extent: got %dx%d, want 120x90", src.Width(), src.Height())
	}
	if src.Channels() != 3 {
		t.Errorf("color image channels: got %d, want 3", src.Channels())
	}
	if src.ZSlices() != 1 || src.Timepoints() != 1 {
		t.Errorf("flat image should have one z and one t")
	}

	gray := NewFileSource("gray", image.NewGray(image.Rect(0, 0, 10, 10)))
	if gray.Channels() != 1 {
		t.Errorf("gray image channels: got %d, want 1", gray.Channels())
	}
}

func TestFileSource_ReadRegion(t *testing.T) {
	src := NewFileSource("gradient", gradientImage(100, 100))

	img, err := src.ReadRegion(regions.DefaultPlane(), 1.0, 20, 30, 40, 50)
	if err != nil {
		t.Fatalf("ReadRegion failed: %v", err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 50 {
		t.Fatalf("got %dx%d, want 40x50", img.Bounds().Dx(), img.Bounds().Dy())
	}

	// Top-left of the crop is the source pixel (20, 30).
	r, g, _, _ := img.At(img.Bounds().Min.X, img.Bounds().Min.Y).RGBA()
	if uint8(r>>8) != 20 || uint8(g>>8) != 30 {
		t.Errorf("crop origin: got (%d,%d), want (20,30)", r>>8, g>>8)
	}
}

func TestFileSource_Downsample(t *testing.T) {
	src := NewFileSource("gradient", gradientImage(100, 100))
	img, err := src.ReadRegion(regions.DefaultPlane(), 4.0, 0, 0, 100, 100)
	if err != nil {
		t.Fatalf("ReadRegion failed: %v", err)
	}
	if img.Bounds().Dx() != 25 || img.Bounds().Dy() != 25 {
		t.Errorf("got %dx%d, want 25x25", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestFileSource_Clamp(t *testing.T) {
	src := NewFileSource("gradient", gradientImage(50, 50))
	img, err := src.ReadRegion(regions.DefaultPlane(), 1.0, 40, 40, 100, 100)
	if err != nil {
		t.Fatalf("out-of-bounds request should clamp, not fail: %v", err)
	}
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 10 {
		t.Errorf("got %dx%d, want clamped 10x10", img.Bounds().Dx(), img.Bounds().Dy())
	}

	if _, err := src.ReadRegion(regions.DefaultPlane(), 1.0, 60, 60, 10, 10); err == nil {
		t.Error("fully outside request should fail")
	}
}

func TestFileSource_ChannelExtraction(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = 200 // R
		img.Pix[i+1] = 100 // G
		img.Pix[i+2] = 50  // B
		img.Pix[i+3] = 255
	}
	src := NewFileSource("solid", img)

	wantByChannel := []uint8{200, 100, 50}
	for c, want := range wantByChannel {
		plane := regions.PlaneWithChannel(c, 0, 0)
		out, err := src.ReadRegion(plane, 1.0, 0, 0, 10, 10)
		if err != nil {
			t.Fatalf("channel %d: %v", c, err)
		}
		gray, ok := out.(*image.Gray)
		if !ok {
			t.Fatalf("channel %d: got %T, want *image.Gray", c, out)
		}
		if got := gray.GrayAt(5, 5).Y; got != want {
			t.Errorf("channel %d: got %d, want %d", c, got, want)
		}
	}
}

func TestFileSource_MissingPlanes(t *testing.T) {
	src := NewFileSource("gradient", gradientImage(10, 10))
	if _, err := src.ReadRegion(regions.PlaneWithChannel(5, 0, 0), 1.0, 0, 0, 5, 5); err == nil {
		t.Error("channel beyond the image should fail")
	}
	if _, err := src.ReadRegion(regions.PlaneWithChannel(0, 1, 0), 1.0, 0, 0, 5, 5); err == nil {
		t.Error("z slice beyond the image should fail")
	}
}

func TestSourceCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "img.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, gradientImage(32, 24)); err != nil {
		t.Fatal(err)
	}
	f.Close()

	cache := NewSourceCache()
	first, err := cache.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if first.Width() != 32 || first.Height() != 24 {
		t.Errorf("got %dx%d, want 32x24", first.Width(), first.Height())
	}

	second, err := cache.Open(path)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	if first != second {
		t.Error("repeated Open should return the cached source")
	}

	cache.Evict(path)
	third, err := cache.Open(path)
	if err != nil {
		t.Fatalf("Open after Evict failed: %v", err)
	}
	if third == first {
		t.Error("Evict should drop the cached source")
	}

	if _, err := cache.Open(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestRegionStats(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = 255
		img.Pix[i+1] = 0
		img.Pix[i+2] = 0
		img.Pix[i+3] = 255
	}
	src := NewFileSource("red", img)

	stats, err := RegionStats(src, Request{Downsample: 1, Width: 20, Height: 20})
	if err != nil {
		t.Fatalf("RegionStats failed: %v", err)
	}
	if stats.MeanHex != "#ff0000" {
		t.Errorf("hex: got %s, want #ff0000", stats.MeanHex)
	}
	if stats.MeanR != 255 || stats.MeanG != 0 || stats.MeanB != 0 {
		t.Errorf("rgb: got (%d,%d,%d), want (255,0,0)", stats.MeanR, stats.MeanG, stats.MeanB)
	}
	if stats.MeanHSL.H != 0 || stats.MeanHSL.S != 100 || stats.MeanHSL.L != 50 {
		t.Errorf("hsl: got %+v, want {0 100 50}", stats.MeanHSL)
	}

	if _, err := RegionStats(src, Request{Downsample: 1}); err == nil {
		t.Error("zero-area stats request should fail")
	}
}
