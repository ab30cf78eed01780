package covers

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	gradientTop    = color.RGBA{R: 52, G: 73, B: 120, A: 255}
	gradientBottom = color.RGBA{R: 28, G: 37, B: 65, A: 255}
	borderColor    = color.RGBA{R: 120, G: 144, B: 196, A: 255}
	titleColor     = color.RGBA{R: 240, G: 240, B: 245, A: 255}
	authorColor    = color.RGBA{R: 180, G: 190, B: 210, A: 255}
)

// Placeholder draws a generated cover with the book title and author,
// used when a PDF page cannot be rendered.
func Placeholder(title, author string) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, coverWidth, coverHeight))

	for y := 0; y < coverHeight; y++ {
		t := float64(y) / float64(coverHeight-1)
		c := color.RGBA{
			R: lerp(gradientTop.R, gradientBottom.R, t),
			G: lerp(gradientTop.G, gradientBottom.G, t),
			B: lerp(gradientTop.B, gradientBottom.B, t),
			A: 255,
		}
		draw.Draw(img, image.Rect(0, y, coverWidth, y+1), &image.Uniform{C: c}, image.Point{}, draw.Src)
	}

	drawBorder(img, 6, borderColor)

	face := basicfont.Face7x13
	lines := wrapText(title, face, coverWidth-40)
	if len(lines) > 6 {
		lines = lines[:6]
	}

	y := coverHeight/2 - (len(lines)*18)/2
	for _, line := range lines {
		drawCenteredText(img, face, line, y, titleColor)
		y += 18
	}

	if author != "" {
		drawCenteredText(img, face, author, coverHeight-60, authorColor)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode placeholder: %w", err)
	}

	return buf.Bytes(), nil
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

func drawBorder(img *image.RGBA, thickness int, c color.RGBA) {
	bounds := img.Bounds()
	src := &image.Uniform{C: c}
	draw.Draw(img, image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Min.Y+thickness), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(bounds.Min.X, bounds.Max.Y-thickness, bounds.Max.X, bounds.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Min.X+thickness, bounds.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(bounds.Max.X-thickness, bounds.Min.Y, bounds.Max.X, bounds.Max.Y), src, image.Point{}, draw.Src)
}

func drawCenteredText(img *image.RGBA, face font.Face, text string, y int, c color.RGBA) {
	width := font.MeasureString(face, text).Ceil()
	x := (coverWidth - width) / 2
	if x < 10 {
		x = 10
	}

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{C: c},
		Face: face,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(text)
}

func wrapText(text string, face font.Face, maxWidth int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	lines := make([]string, 0, 4)
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if font.MeasureString(face, candidate).Ceil() > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	lines = append(lines, current)

	return lines
}
