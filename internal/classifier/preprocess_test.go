package classifier

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestPixelsToTensor_Shape(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"landscape", 640, 480},
		{"portrait", 480, 640},
		{"exact", 224, 224},
		{"smaller than crop", 100, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := solidImage(tt.w, tt.h, color.RGBA{R: 128, G: 128, B: 128, A: 255})
			data := pixelsToTensor(img, 224, 224)
			assert.Len(t, data, 3*224*224)
		})
	}
}

func TestPixelsToTensor_Normalization(t *testing.T) {
	// A pure white image normalizes to (1 - mean) / std per channel.
	img := solidImage(300, 300, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	data := pixelsToTensor(img, 224, 224)

	plane := 224 * 224
	require.Len(t, data, 3*plane)
	assert.InDelta(t, (1.0-channelMean[0])/channelStd[0], data[0], 0.01)
	assert.InDelta(t, (1.0-channelMean[1])/channelStd[1], data[plane], 0.01)
	assert.InDelta(t, (1.0-channelMean[2])/channelStd[2], data[2*plane], 0.01)
}

func TestCenterCrop_Dimensions(t *testing.T) {
	img := solidImage(400, 300, color.RGBA{R: 10, G: 200, B: 30, A: 255})
	cropped := centerCrop(img, 224, 224)

	assert.Equal(t, 224, cropped.Bounds().Dx())
	assert.Equal(t, 224, cropped.Bounds().Dy())
}
