// Concrete implementations of comparison metrics
package metrics

import (
	"math"

	"arnold-cat-map/internal/catmap"
)

// maxPSNR caps PSNR so that identical grids still normalise; Calculate
// itself reports +Inf for them.
const maxPSNR = 100.0

// MSE is the mean squared error over the R, G and B channels.
type MSE struct{}

func NewMSE() *MSE {
	return &MSE{}
}

func (m *MSE) Calculate(original, processed *catmap.Grid) (float64, error) {
	if err := checkPair(original, processed); err != nil {
		return 0, err
	}
	return meanSquaredError(original, processed), nil
}

func (m *MSE) GetName() string        { return "Mean Squared Error" }
func (m *MSE) GetDescription() string { return "Average squared channel difference" }
func (m *MSE) GetRange() (float64, float64) {
	return 0, 255 * 255
}
func (m *MSE) IsHigherBetter() bool { return false }

// PSNR implements Peak Signal-to-Noise Ratio metric
type PSNR struct{}

func NewPSNR() *PSNR {
	return &PSNR{}
}

func (p *PSNR) Calculate(original, processed *catmap.Grid) (float64, error) {
	if err := checkPair(original, processed); err != nil {
		return 0, err
	}

	mse := meanSquaredError(original, processed)
	if mse == 0 {
		return math.Inf(1), nil // Perfect match
	}
	return 20 * math.Log10(255.0/math.Sqrt(mse)), nil
}

func (p *PSNR) GetName() string        { return "Peak Signal-to-Noise Ratio" }
func (p *PSNR) GetDescription() string { return "Similarity in dB, higher is closer to the original" }
func (p *PSNR) GetRange() (float64, float64) {
	return 0, maxPSNR
}
func (p *PSNR) IsHigherBetter() bool { return true }

// Displaced is the fraction of positions whose pixel differs.
type Displaced struct{}

func NewDisplaced() *Displaced {
	return &Displaced{}
}

func (d *Displaced) Calculate(original, processed *catmap.Grid) (float64, error) {
	if err := checkPair(original, processed); err != nil {
		return 0, err
	}

	changed := 0
	for i := range original.Pix {
		if original.Pix[i] != processed.Pix[i] {
			changed++
		}
	}
	return float64(changed) / float64(len(original.Pix)), nil
}

func (d *Displaced) GetName() string        { return "Displaced Pixels" }
func (d *Displaced) GetDescription() string { return "Fraction of positions holding a different color" }
func (d *Displaced) GetRange() (float64, float64) {
	return 0, 1
}
func (d *Displaced) IsHigherBetter() bool { return false }

func meanSquaredError(a, b *catmap.Grid) float64 {
	sum := 0.0
	for i := range a.Pix {
		r1, g1, b1 := a.Pix[i].Channels()
		r2, g2, b2 := b.Pix[i].Channels()
		dr := float64(r1) - float64(r2)
		dg := float64(g1) - float64(g2)
		db := float64(b1) - float64(b2)
		sum += dr*dr + dg*dg + db*db
	}
	return sum / float64(3*len(a.Pix))
}
