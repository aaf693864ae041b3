package hexview

import (
	"image"
	"image/color"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
)

type variantKey struct {
	id   string
	typ  ImageType
	zoom int
}

type tintKey struct {
	variantKey
	col    color.RGBA
	amount int // percent
}

// imageCache derives zoom-scaled, colour-adjusted variants of source images.
// Variants depend on the zoom and the global time-of-day adjustment, so both
// changes flush the cache.
type imageCache struct {
	src      ImageSource
	log      *logrus.Entry
	baseZoom int
	adjust   [3]int
	onFlush  func() // runs whenever derived images are dropped

	missing  map[string]bool
	variants map[variantKey]image.Image
	tints    map[tintKey]image.Image
	bars     map[variantKey]image.Rectangle
}

func newImageCache(src ImageSource, baseZoom int, log *logrus.Entry) *imageCache {
	return &imageCache{
		src:      src,
		log:      log,
		baseZoom: baseZoom,
		missing:  make(map[string]bool),
		variants: make(map[variantKey]image.Image),
		tints:    make(map[tintKey]image.Image),
		bars:     make(map[variantKey]image.Rectangle),
	}
}

// exists reports whether id resolves, without logging.
func (c *imageCache) exists(id string) bool {
	if id == "" || c.src == nil {
		return false
	}
	_, ok := c.src.Image(id)
	return ok
}

// raw returns the unmodified source image. A missing id is logged once.
func (c *imageCache) raw(id string) (image.Image, bool) {
	if id == "" {
		return nil, false
	}
	if c.src != nil {
		if img, ok := c.src.Image(id); ok && img != nil {
			return img, true
		}
	}
	if !c.missing[id] {
		c.missing[id] = true
		c.log.WithField("image", id).Warn("missing image, layer skipped")
	}
	return nil, false
}

// get returns the variant of id for typ at zoom.
func (c *imageCache) get(id string, typ ImageType, zoom int) (image.Image, bool) {
	key := variantKey{id: id, typ: typ, zoom: zoom}
	if img, ok := c.variants[key]; ok {
		return img, true
	}
	src, ok := c.raw(id)
	if !ok {
		return nil, false
	}
	img := c.scale(src, zoom)

	ar, ag, ab := c.adjust[0], c.adjust[1], c.adjust[2]
	switch typ {
	case ImageScaled:
		if ar != 0 || ag != 0 || ab != 0 {
			img = mapPixels(img, func(r, g, b uint8) (uint8, uint8, uint8) {
				return addChannel(r, ar), addChannel(g, ag), addChannel(b, ab)
			})
		}
	case ImageGreyed:
		img = mapPixels(img, func(r, g, b uint8) (uint8, uint8, uint8) {
			l := uint8((int(r)*299 + int(g)*587 + int(b)*114) / 1000)
			return addChannel(l, ar), addChannel(l, ag), addChannel(l, ab)
		})
	case ImageBrightened:
		img = mapPixels(img, brighten(ar, ag, ab, 1.5))
	case ImageSemiBrightened:
		img = mapPixels(img, brighten(ar, ag, ab, 1.25))
	case ImageUnmasked:
	}
	c.variants[key] = img
	return img, true
}

// tinted returns the variant of id blended towards col by amount in [0, 1].
func (c *imageCache) tinted(id string, typ ImageType, zoom int, col color.RGBA, amount float64) (image.Image, bool) {
	base, ok := c.get(id, typ, zoom)
	if !ok {
		return nil, false
	}
	pct := int(amount*100 + 0.5)
	if pct <= 0 {
		return base, true
	}
	key := tintKey{variantKey: variantKey{id: id, typ: typ, zoom: zoom}, col: col, amount: pct}
	if img, ok := c.tints[key]; ok {
		return img, true
	}
	a := float64(min(pct, 100)) / 100
	img := mapPixels(base, func(r, g, b uint8) (uint8, uint8, uint8) {
		return mix(r, col.R, a), mix(g, col.G, a), mix(b, col.B, a)
	})
	c.tints[key] = img
	return img, true
}

// setColorAdjust changes the global colour adjustment and drops every
// variant built with the old one.
func (c *imageCache) setColorAdjust(r, g, b int) {
	adj := [3]int{r, g, b}
	if adj == c.adjust {
		return
	}
	c.adjust = adj
	clear(c.variants)
	clear(c.tints)
	c.flushed()
}

// flush drops every derived image, e.g. after a zoom change.
func (c *imageCache) flush() {
	clear(c.variants)
	clear(c.tints)
	clear(c.bars)
	c.flushed()
}

func (c *imageCache) flushed() {
	if c.onFlush != nil {
		c.onFlush()
	}
}

// barRect returns the fill rectangle of a bar template at zoom, computed
// once per template and zoom.
func (c *imageCache) barRect(id string, zoom int) (image.Rectangle, bool) {
	key := variantKey{id: id, typ: ImageUnmasked, zoom: zoom}
	if r, ok := c.bars[key]; ok {
		return r, true
	}
	img, ok := c.get(id, ImageUnmasked, zoom)
	if !ok {
		return image.Rectangle{}, false
	}
	r := energyBarRect(img)
	c.bars[key] = r
	return r, true
}

// energyBarRect locates the bar area of a template: the bounding box of the
// nearly transparent light pixels, relative to the image origin.
func energyBarRect(img image.Image) image.Rectangle {
	b := img.Bounds()
	firstRow, lastRow, firstCol, lastCol := -1, -1, -1, -1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A >= 0x50 || c.R <= 0x99 || c.G <= 0x99 || c.B <= 0x99 {
				continue
			}
			if firstRow < 0 {
				firstRow = y
			}
			lastRow = y
			if firstCol < 0 || x < firstCol {
				firstCol = x
			}
			if x > lastCol {
				lastCol = x
			}
		}
	}
	if firstRow < 0 {
		return image.Rectangle{}
	}
	return image.Rect(firstCol, firstRow, lastCol+1, lastRow+1).Sub(b.Min)
}

func (c *imageCache) scale(src image.Image, zoom int) image.Image {
	if zoom == c.baseZoom || c.baseZoom <= 0 {
		return src
	}
	b := src.Bounds()
	w := max(1, b.Dx()*zoom/c.baseZoom)
	h := max(1, b.Dy()*zoom/c.baseZoom)
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(out, out.Bounds(), src, b, draw.Src, nil)
	return out
}

// mapPixels applies f to the colour of every non-transparent pixel.
func mapPixels(src image.Image, f func(r, g, b uint8) (uint8, uint8, uint8)) image.Image {
	b := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), src, b.Min, draw.Src)
	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i+3] == 0 {
			continue
		}
		out.Pix[i], out.Pix[i+1], out.Pix[i+2] = f(out.Pix[i], out.Pix[i+1], out.Pix[i+2])
	}
	return out
}

func brighten(ar, ag, ab int, factor float64) func(r, g, b uint8) (uint8, uint8, uint8) {
	return func(r, g, b uint8) (uint8, uint8, uint8) {
		return scaleChannel(addChannel(r, ar), factor),
			scaleChannel(addChannel(g, ag), factor),
			scaleChannel(addChannel(b, ab), factor)
	}
}

func addChannel(v uint8, d int) uint8 {
	return uint8(min(255, max(0, int(v)+d)))
}

func scaleChannel(v uint8, f float64) uint8 {
	return uint8(min(255, max(0, int(float64(v)*f))))
}

func mix(v, to uint8, a float64) uint8 {
	return uint8(float64(v)*(1-a) + float64(to)*a + 0.5)
}
