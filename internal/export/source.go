package export

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"math"
	"os"
	"sync"

	"github.com/anthonynsimon/bild/channel"
	"github.com/disintegration/imaging"

	"github.com/tessellab/region-bridge/internal/regions"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
)

// Source is a pixel provider for a multi-dimensional image. Channel,
// z and timepoint counts describe the full volume; ReadRegion pulls
// one plane's rectangle at a downsample. Implementations may block on
// backing storage; they decide their own clamping and timeout
// behavior.
type Source interface {
	Name() string
	Width() int
	Height() int
	Channels() int
	ZSlices() int
	Timepoints() int
	ReadRegion(plane regions.Plane, downsample float64, x, y, width, height int) (image.Image, error)
}

// fileSource serves planes out of a single decoded raster: one z
// slice, one timepoint, and one channel per color band.
type fileSource struct {
	name     string
	img      image.Image
	channels int
}

// NewFileSource wraps an already-decoded image.
func NewFileSource(name string, img image.Image) Source {
	channels := 3
	if _, ok := img.(*image.Gray); ok {
		channels = 1
	}
	if _, ok := img.(*image.Gray16); ok {
		channels = 1
	}
	return &fileSource{name: name, img: img, channels: channels}
}

func (s *fileSource) Name() string    { return s.name }
func (s *fileSource) Width() int      { return s.img.Bounds().Dx() }
func (s *fileSource) Height() int     { return s.img.Bounds().Dy() }
func (s *fileSource) Channels() int   { return s.channels }
func (s *fileSource) ZSlices() int    { return 1 }
func (s *fileSource) Timepoints() int { return 1 }

var bandByIndex = []channel.Channel{channel.Red, channel.Green, channel.Blue}

func (s *fileSource) ReadRegion(plane regions.Plane, downsample float64, x, y, width, height int) (image.Image, error) {
	if plane.Z != 0 || plane.T != 0 {
		return nil, fmt.Errorf("%s: no plane %s", s.name, plane)
	}
	if plane.C >= s.channels {
		return nil, fmt.Errorf("%s: no channel %d of %d", s.name, plane.C, s.channels)
	}

	bounds := s.img.Bounds()
	rect := image.Rect(x, y, x+width, y+height).Add(bounds.Min).Intersect(bounds)
	if rect.Empty() {
		return nil, fmt.Errorf("%s: region [%d,%d %dx%d] outside image", s.name, x, y, width, height)
	}

	out := imaging.Crop(s.img, rect)
	if downsample != 1.0 {
		w := int(math.Round(float64(rect.Dx()) / downsample))
		h := int(math.Round(float64(rect.Dy()) / downsample))
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		out = imaging.Resize(out, w, h, imaging.Lanczos)
	}
	if plane.C >= 0 {
		band := bandByIndex[0]
		if plane.C < len(bandByIndex) {
			band = bandByIndex[plane.C]
		}
		return channel.Extract(out, band), nil
	}
	return out, nil
}

// SourceCache opens file-backed sources and keeps them decoded, so
// repeated region exports against the same image skip disk I/O. Safe
// for concurrent use.
type SourceCache struct {
	mu      sync.RWMutex
	sources map[string]Source
}

func NewSourceCache() *SourceCache {
	return &SourceCache{sources: make(map[string]Source)}
}

// Open returns the cached source for path, decoding the file on first
// use. PNG, JPEG, GIF, BMP and TIFF files are supported.
func (c *SourceCache) Open(path string) (Source, error) {
	c.mu.RLock()
	if src, ok := c.sources[path]; ok {
		c.mu.RUnlock()
		return src, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	src := NewFileSource(path, img)
	c.mu.Lock()
	c.sources[path] = src
	c.mu.Unlock()
	return src, nil
}

// Evict removes one cached source.
func (c *SourceCache) Evict(path string) {
	c.mu.Lock()
	delete(c.sources, path)
	c.mu.Unlock()
}

// Clear drops every cached source.
func (c *SourceCache) Clear() {
	c.mu.Lock()
	c.sources = make(map[string]Source)
	c.mu.Unlock()
}
