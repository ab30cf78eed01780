package covers

import (
	"bytes"
	"image"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
)

func TestPlaceholderProducesCoverSizedJPEG(t *testing.T) {
	data, err := Placeholder("A Very Long Book Title That Needs Wrapping Across Lines", "Some Author")
	require.NoError(t, err)
	require.NotEmpty(t, data)

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, coverWidth, bounds.Dx())
	assert.Equal(t, coverHeight, bounds.Dy())
}

func TestPlaceholderEmptyAuthor(t *testing.T) {
	data, err := Placeholder("Untitled", "")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestWrapText(t *testing.T) {
	face := basicfont.Face7x13

	lines := wrapText("short", face, 260)
	assert.Equal(t, []string{"short"}, lines)

	lines = wrapText("a very long title that will certainly not fit on one narrow line", face, 100)
	assert.Greater(t, len(lines), 1)

	assert.Nil(t, wrapText("   ", face, 100))
}

func TestEncodeCoverScalesDown(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1200, 1800))

	data, err := EncodeCover(src)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), coverWidth)
	assert.LessOrEqual(t, img.Bounds().Dy(), coverHeight)
}
