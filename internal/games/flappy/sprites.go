package flappy

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/image/draw"
)

// Sprite is an image frame with its precomputed silhouette.
type Sprite struct {
	Image *image.NRGBA
	Mask  *Mask
}

func newSprite(img *image.NRGBA) Sprite {
	return Sprite{Image: img, Mask: MaskFromImage(img)}
}

// Sprites holds every frame the simulation needs for collision tests.
// Images are stored at playfield scale (twice the art resolution).
type Sprites struct {
	Bird       [3]Sprite
	PipeBottom Sprite
	PipeTop    Sprite
	Base       Sprite
}

// BirdSize returns the dimensions of a bird frame.
func (s *Sprites) BirdSize() (w, h int) {
	return s.Bird[0].Mask.Width(), s.Bird[0].Mask.Height()
}

// PipeWidth returns the width of a pipe image.
func (s *Sprites) PipeWidth() int {
	return s.PipeBottom.Mask.Width()
}

// PipeHeight returns the height of a pipe image.
func (s *Sprites) PipeHeight() int {
	return s.PipeTop.Mask.Height()
}

// BaseWidth returns the width of one floor tile.
func (s *Sprites) BaseWidth() int {
	return s.Base.Mask.Width()
}

var (
	skyYellow  = color.NRGBA{R: 250, G: 200, B: 40, A: 255}
	beakOrange = color.NRGBA{R: 240, G: 110, B: 30, A: 255}
	wingWhite  = color.NRGBA{R: 250, G: 250, B: 235, A: 255}
	pipeGreen  = color.NRGBA{R: 100, G: 190, B: 50, A: 255}
	lipGreen   = color.NRGBA{R: 80, G: 160, B: 40, A: 255}
	sandBrown  = color.NRGBA{R: 220, G: 210, B: 150, A: 255}
)

// Native art dimensions.
const (
	birdArtW    = 34
	birdArtH    = 24
	pipeArtW    = 52
	pipeArtH    = 320
	pipeLipArtH = 26
	baseArtW    = 336
	baseArtH    = 112
)

// DefaultSprites returns the built-in silhouettes. The result is shared and
// must not be modified.
var DefaultSprites = sync.OnceValue(func() *Sprites {
	var birds [3]*image.NRGBA
	for i, wingY := range []float64{4, 12, 20} {
		birds[i] = drawBird(wingY)
	}
	return buildSprites(birds, drawPipe(), drawBase())
})

// LoadSprites reads bird1.png, bird2.png, bird3.png, pipe.png and base.png
// from dir. An empty dir selects the built-in silhouettes.
func LoadSprites(dir string) (*Sprites, error) {
	if dir == "" {
		return DefaultSprites(), nil
	}

	var birds [3]*image.NRGBA
	for i := range birds {
		img, err := readPNG(filepath.Join(dir, fmt.Sprintf("bird%d.png", i+1)))
		if err != nil {
			return nil, err
		}
		birds[i] = img
	}
	pipe, err := readPNG(filepath.Join(dir, "pipe.png"))
	if err != nil {
		return nil, err
	}
	base, err := readPNG(filepath.Join(dir, "base.png"))
	if err != nil {
		return nil, err
	}
	return buildSprites(birds, pipe, base), nil
}

func buildSprites(birds [3]*image.NRGBA, pipe, base *image.NRGBA) *Sprites {
	s := &Sprites{}
	for i, b := range birds {
		s.Bird[i] = newSprite(scale2x(b))
	}
	bottom := scale2x(pipe)
	s.PipeBottom = newSprite(bottom)
	s.PipeTop = newSprite(flipVertical(bottom))
	s.Base = newSprite(scale2x(base))
	return s
}

func readPNG(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sprites: cannot open %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("sprites: cannot decode %s: %w", path, err)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst, nil
}

// scale2x doubles an image with nearest-neighbour sampling.
func scale2x(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*2, b.Dy()*2))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func flipVertical(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.SetNRGBA(x, b.Dy()-1-y, src.NRGBAAt(x, y))
		}
	}
	return dst
}

func inEllipse(x, y int, cx, cy, rx, ry float64) bool {
	dx := (float64(x) + 0.5 - cx) / rx
	dy := (float64(y) + 0.5 - cy) / ry
	return dx*dx+dy*dy <= 1
}

// drawBird paints a round body with a beak and a wing centred at wingY.
// The corners stay transparent.
func drawBird(wingY float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, birdArtW, birdArtH))
	for y := 0; y < birdArtH; y++ {
		for x := 0; x < birdArtW; x++ {
			switch {
			case inEllipse(x, y, 9, wingY, 6, 3.5):
				img.SetNRGBA(x, y, wingWhite)
			case inEllipse(x, y, 16, 12, 14, 10):
				img.SetNRGBA(x, y, skyYellow)
			case x >= 29 && y >= 11 && y <= 15:
				img.SetNRGBA(x, y, beakOrange)
			}
		}
	}
	return img
}

// drawPipe paints an upright pipe: a full-width lip over a narrower body.
func drawPipe() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, pipeArtW, pipeArtH))
	for y := 0; y < pipeArtH; y++ {
		for x := 0; x < pipeArtW; x++ {
			switch {
			case y < pipeLipArtH:
				img.SetNRGBA(x, y, lipGreen)
			case x >= 2 && x < pipeArtW-2:
				img.SetNRGBA(x, y, pipeGreen)
			}
		}
	}
	return img
}

func drawBase() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, baseArtW, baseArtH))
	draw.Draw(img, img.Bounds(), image.NewUniform(sandBrown), image.Point{}, draw.Src)
	return img
}
