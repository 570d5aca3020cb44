package metrics

import (
	"errors"
	"math"
	"testing"

	"arnold-cat-map/internal/catmap"
)

func grid(width, height int, pix ...catmap.Pixel) *catmap.Grid {
	return &catmap.Grid{Width: width, Height: height, Pix: pix}
}

func TestIdenticalGrids(t *testing.T) {
	g := grid(2, 1, catmap.RGB(10, 20, 30), catmap.RGB(40, 50, 60))
	e := NewEvaluator()

	values := e.CalculateAll(g, g.Clone())
	if values["mse"] != 0 {
		t.Errorf("mse = %v, want 0", values["mse"])
	}
	if !math.IsInf(values["psnr"], 1) {
		t.Errorf("psnr = %v, want +Inf", values["psnr"])
	}
	if values["displaced"] != 0 {
		t.Errorf("displaced = %v, want 0", values["displaced"])
	}

	report := e.GenerateReport(g, g.Clone())
	if report.Scramble != 0 || report.Level != "identical" {
		t.Errorf("report = %+v, want identical with score 0", report)
	}
}

func TestKnownValues(t *testing.T) {
	a := grid(2, 1, catmap.RGB(0, 0, 0), catmap.RGB(10, 10, 10))
	b := grid(2, 1, catmap.RGB(0, 0, 0), catmap.RGB(10, 10, 40))

	tests := []struct {
		metric Metric
		want   float64
	}{
		{NewMSE(), 900.0 / 6},
		{NewDisplaced(), 0.5},
		{NewPSNR(), 20 * math.Log10(255/math.Sqrt(150))},
	}
	for _, tt := range tests {
		t.Run(tt.metric.GetName(), func(t *testing.T) {
			got, err := tt.metric.Calculate(a, b)
			if err != nil {
				t.Fatalf("Calculate: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDimensionMismatch(t *testing.T) {
	a := grid(1, 1, 0)
	b := grid(2, 1, 0, 0)
	for _, name := range NewEvaluator().Names() {
		if _, err := NewEvaluator().Calculate(name, a, b); !errors.Is(err, ErrDimensionMismatch) {
			t.Errorf("%s: err = %v, want ErrDimensionMismatch", name, err)
		}
	}
}

func TestUnknownMetric(t *testing.T) {
	g := grid(1, 1, 0)
	if _, err := NewEvaluator().Calculate("ssim", g, g); err == nil {
		t.Error("expected error for unregistered metric")
	}
}

func TestScrambledReport(t *testing.T) {
	g, _ := catmap.NewGrid(8, 8)
	for i := range g.Pix {
		g.Pix[i] = catmap.Pixel(i * 0x030507)
	}
	scrambled, err := catmap.Apply(g, 2)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	report := NewEvaluator().GenerateReport(g, scrambled)
	if report.Scramble <= 0 || report.Scramble > 100 {
		t.Errorf("scramble = %v, want in (0, 100]", report.Scramble)
	}
	if report.Level == "identical" {
		t.Error("scrambled grid reported as identical")
	}
	if len(report.Metrics) != 3 {
		t.Errorf("got %d metrics, want 3", len(report.Metrics))
	}
}

func TestMetricInfo(t *testing.T) {
	info := NewEvaluator().GetMetricInfo()
	tests := []struct {
		name         string
		higherBetter bool
	}{
		{"mse", false},
		{"psnr", true},
		{"displaced", false},
	}
	for _, tt := range tests {
		mi, ok := info[tt.name]
		if !ok {
			t.Errorf("%s: missing info", tt.name)
			continue
		}
		if mi.Description == "" {
			t.Errorf("%s: empty description", tt.name)
		}
		if mi.HigherBetter != tt.higherBetter {
			t.Errorf("%s: HigherBetter = %v, want %v", tt.name, mi.HigherBetter, tt.higherBetter)
		}
		if mi.Range[0] >= mi.Range[1] {
			t.Errorf("%s: range %v is empty", tt.name, mi.Range)
		}
	}
}
