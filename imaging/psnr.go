package imaging

import (
	"fmt"
	"image"
	"math"
)

// CalculatePSNR compares the colour channels of two same-sized images.
// Alpha is ignored since the codec never touches it.
func CalculatePSNR(original, stego *image.NRGBA) float64 {
	if original == nil || stego == nil {
		return 0.0
	}
	if original.Rect.Dx() != stego.Rect.Dx() || original.Rect.Dy() != stego.Rect.Dy() {
		return 0.0
	}

	w, h := original.Rect.Dx(), original.Rect.Dy()
	if w == 0 || h == 0 {
		return 0.0
	}

	var mse float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := original.PixOffset(original.Rect.Min.X+x, original.Rect.Min.Y+y)
			s := stego.PixOffset(stego.Rect.Min.X+x, stego.Rect.Min.Y+y)
			for c := 0; c < 3; c++ {
				diff := float64(original.Pix[o+c]) - float64(stego.Pix[s+c])
				mse += diff * diff
			}
		}
	}
	mse /= float64(w * h * 3)

	// If MSE is 0, images are identical
	if mse == 0 {
		return math.Inf(1)
	}

	// PSNR = 20 * log10(MAX / sqrt(MSE)), MAX = 255 for 8-bit channels
	maxValue := 255.0
	return 20 * math.Log10(maxValue/math.Sqrt(mse))
}

func ValidatePSNR(psnr float64, threshold float64) bool {
	if math.IsInf(psnr, 1) {
		return true // Infinite PSNR is always good
	}
	return psnr >= threshold
}

// FormatPSNR renders psnr for a response header.
func FormatPSNR(psnr float64) string {
	if math.IsInf(psnr, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.2f", psnr)
}
