package classifier

import (
	"image"

	"golang.org/x/image/draw"
)

// defaultInputSize is used when the model declares dynamic spatial dims.
const defaultInputSize = 224

// ImageNet channel statistics used by MobileNet-class models.
var (
	channelMean = [3]float32{0.485, 0.456, 0.406}
	channelStd  = [3]float32{0.229, 0.224, 0.225}
)

// pixelsToTensor converts an image to a normalized NCHW float32 tensor of
// shape [1, 3, height, width]. The image is scaled so its shorter side
// matches the target, then center-cropped.
func pixelsToTensor(img image.Image, height, width int) []float32 {
	cropped := centerCrop(img, width, height)

	data := make([]float32, 3*height*width)
	plane := height * width

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := cropped.At(x, y).RGBA()
			idx := y*width + x
			data[idx] = (float32(r)/65535.0 - channelMean[0]) / channelStd[0]
			data[plane+idx] = (float32(g)/65535.0 - channelMean[1]) / channelStd[1]
			data[2*plane+idx] = (float32(b)/65535.0 - channelMean[2]) / channelStd[2]
		}
	}
	return data
}

// centerCrop scales img so its shorter side matches the target and crops the
// excess of the longer side evenly from both ends.
func centerCrop(img image.Image, width, height int) *image.RGBA {
	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()

	// Scale factor that makes the shorter side fit exactly.
	scaleW := float64(width) / float64(srcW)
	scaleH := float64(height) / float64(srcH)
	scale := scaleW
	if scaleH > scale {
		scale = scaleH
	}

	scaledW := int(float64(srcW)*scale + 0.5)
	scaledH := int(float64(srcH)*scale + 0.5)
	if scaledW < width {
		scaledW = width
	}
	if scaledH < height {
		scaledH = height
	}

	scaled := image.NewRGBA(image.Rect(0, 0, scaledW, scaledH))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Src, nil)

	offX := (scaledW - width) / 2
	offY := (scaledH - height) / 2

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Copy(out, image.Point{}, scaled, image.Rect(offX, offY, offX+width, offY+height), draw.Src, nil)
	return out
}
