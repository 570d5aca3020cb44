package catmap

import (
	"errors"
	"image"
	"image/color"
	"math/rand"
	"slices"
	"testing"
)

const (
	pxA Pixel = 0xAA0000
	pxB Pixel = 0x00BB00
	pxC Pixel = 0x0000CC
	pxD Pixel = 0xDDDDDD
)

// labeled returns a grid whose pixels are all distinct.
func labeled(width, height int) *Grid {
	g, _ := NewGrid(width, height)
	for i := range g.Pix {
		g.Pix[i] = Pixel(i + 1)
	}
	return g
}

func random(width, height int, seed int64) *Grid {
	r := rand.New(rand.NewSource(seed))
	g, _ := NewGrid(width, height)
	for i := range g.Pix {
		g.Pix[i] = Pixel(r.Uint32() & 0xFFFFFF)
	}
	return g
}

func sorted(pix []Pixel) []Pixel {
	out := slices.Clone(pix)
	slices.Sort(out)
	return out
}

func TestApplyTwoByTwoScenario(t *testing.T) {
	g := &Grid{Width: 2, Height: 2, Pix: []Pixel{pxA, pxB, pxC, pxD}}

	got, err := Apply(g, 1)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	// (0,0)->(0,0) A, (0,1)->(1,0) C, (1,0)->(1,1) B, (1,1)->(0,1) D
	want := []Pixel{pxA, pxC, pxD, pxB}
	if !slices.Equal(got.Pix, want) {
		t.Errorf("one round = %06x, want %06x", got.Pix, want)
	}

	rounds := 0
	cur := g
	for {
		cur, err = Step(cur)
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		rounds++
		if cur.Equal(g) {
			break
		}
		if rounds > 100 {
			t.Fatal("2x2 grid never returned to its original arrangement")
		}
	}
	p, err := Period(2, 2)
	if err != nil {
		t.Fatalf("Period: %v", err)
	}
	if rounds != p || p != 3 {
		t.Errorf("measured period %d, Period(2,2) = %d, want 3", rounds, p)
	}
}

func TestApplyZeroIsCopy(t *testing.T) {
	g := random(7, 5, 1)
	got, err := Apply(g, 0)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !got.Equal(g) {
		t.Fatal("Apply(g, 0) differs from g")
	}
	got.Pix[0]++
	if got.Pix[0] == g.Pix[0] {
		t.Error("Apply(g, 0) shares storage with its input")
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	g := random(6, 6, 2)
	before := g.Clone()
	if _, err := Apply(g, 5); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !g.Equal(before) {
		t.Error("Apply modified its input")
	}
}

func TestApplyNegativeIterations(t *testing.T) {
	got, err := Apply(labeled(3, 3), -1)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
	if got != nil {
		t.Error("expected no output on failure")
	}
}

func TestApplyInvalidGrid(t *testing.T) {
	tests := []struct {
		name string
		grid *Grid
	}{
		{"nil", nil},
		{"zero width", &Grid{Width: 0, Height: 2}},
		{"short storage", &Grid{Width: 2, Height: 2, Pix: make([]Pixel, 3)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Apply(tt.grid, 1); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestApplyPreservesDimensions(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1, 2}, {3, 1}, {4, 7}, {9, 9}, {16, 3}}
	for _, s := range sizes {
		for _, n := range []int{0, 1, 2, 13} {
			got, err := Apply(random(s[0], s[1], 3), n)
			if err != nil {
				t.Fatalf("Apply(%dx%d, %d): %v", s[0], s[1], n, err)
			}
			if got.Width != s[0] || got.Height != s[1] || len(got.Pix) != s[0]*s[1] {
				t.Errorf("Apply(%dx%d, %d) produced %dx%d with %d pixels",
					s[0], s[1], n, got.Width, got.Height, len(got.Pix))
			}
		}
	}
}

func TestApplyPermutesPixels(t *testing.T) {
	sizes := [][2]int{{1, 1}, {2, 1}, {1, 3}, {2, 2}, {3, 3}, {4, 2}, {6, 3}, {8, 8}, {13, 13}}
	for _, s := range sizes {
		if !Bijective(s[0], s[1]) {
			t.Fatalf("%dx%d expected to be bijective", s[0], s[1])
		}
		g := random(s[0], s[1], 4)
		for _, n := range []int{1, 2, 5, 11} {
			got, err := Apply(g, n)
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if !slices.Equal(sorted(got.Pix), sorted(g.Pix)) {
				t.Errorf("%dx%d after %d rounds: pixel multiset changed", s[0], s[1], n)
			}
		}
	}
}

func TestApplyCollisionLastWriteWins(t *testing.T) {
	// On 1x2 both cells map to (0,0); the y=1 source is written last.
	g := &Grid{Width: 1, Height: 2, Pix: []Pixel{pxA, pxB}}
	got, err := Apply(g, 1)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if want := []Pixel{pxB, 0}; !slices.Equal(got.Pix, want) {
		t.Errorf("got %06x, want %06x", got.Pix, want)
	}
}

func TestApplyComposes(t *testing.T) {
	sizes := [][2]int{{5, 5}, {4, 6}, {1, 2}, {7, 3}}
	for _, s := range sizes {
		g := random(s[0], s[1], 5)
		for _, ab := range [][2]int{{0, 3}, {2, 0}, {1, 1}, {3, 4}} {
			first, _ := Apply(g, ab[0])
			chained, err := Apply(first, ab[1])
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			direct, _ := Apply(g, ab[0]+ab[1])
			if !chained.Equal(direct) {
				t.Errorf("%dx%d: Apply(Apply(g,%d),%d) != Apply(g,%d)",
					s[0], s[1], ab[0], ab[1], ab[0]+ab[1])
			}
		}
	}
}

func TestPeriodKnownValues(t *testing.T) {
	tests := []struct {
		width, height int
		want          int
	}{
		{1, 1, 1},
		{2, 2, 3},
		{3, 3, 4},
		{4, 4, 3},
		{5, 5, 10},
		{6, 6, 12},
		{7, 7, 8},
		{10, 10, 30},
		{3, 1, 1},
		{4, 2, 6},
		{6, 3, 8},
	}
	for _, tt := range tests {
		p, err := Period(tt.width, tt.height)
		if err != nil {
			t.Fatalf("Period(%d, %d): %v", tt.width, tt.height, err)
		}
		if p != tt.want {
			t.Errorf("Period(%d, %d) = %d, want %d", tt.width, tt.height, p, tt.want)
		}

		g := labeled(tt.width, tt.height)
		got, _ := Apply(g, p)
		if !got.Equal(g) {
			t.Errorf("%dx%d not restored after %d rounds", tt.width, tt.height, p)
		}
		for n := 1; n < p; n++ {
			mid, _ := Apply(g, n)
			if mid.Equal(g) {
				t.Errorf("%dx%d restored early after %d rounds", tt.width, tt.height, n)
			}
		}
	}
}

func TestPeriodNotBijective(t *testing.T) {
	for _, s := range [][2]int{{1, 2}, {2, 3}, {3, 2}, {5, 4}} {
		if Bijective(s[0], s[1]) {
			t.Errorf("Bijective(%d, %d) = true", s[0], s[1])
		}
		if _, err := Period(s[0], s[1]); !errors.Is(err, ErrNotBijective) {
			t.Errorf("Period(%d, %d) err = %v, want ErrNotBijective", s[0], s[1], err)
		}
	}
	if _, err := Period(0, 3); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Period(0, 3) err = %v, want ErrInvalidArgument", err)
	}
}

func TestReduce(t *testing.T) {
	tests := []struct {
		name                     string
		width, height, n, reduce int
	}{
		{"square", 5, 5, 1_000_003, 1_000_003 % 10},
		{"exact multiple", 2, 2, 9, 0},
		{"not bijective", 1, 2, 41, 41},
		{"zero", 4, 4, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reduce(tt.width, tt.height, tt.n); got != tt.reduce {
				t.Errorf("Reduce = %d, want %d", got, tt.reduce)
			}
		})
	}

	g := random(5, 5, 6)
	big, _ := Apply(g, 1003)
	small, _ := Apply(g, Reduce(5, 5, 1003))
	if !big.Equal(small) {
		t.Error("reduced iteration count changed the result")
	}
}

func TestImageRoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 20, 13, 22))
	src.Set(10, 20, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	src.Set(12, 21, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	g, err := FromImage(src)
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	if g.Width != 3 || g.Height != 2 {
		t.Fatalf("size = %dx%d, want 3x2", g.Width, g.Height)
	}
	if got := g.At(0, 0); got != RGB(1, 2, 3) {
		t.Errorf("At(0,0) = %06x", got)
	}
	if got := g.At(2, 1); got != RGB(200, 100, 50) {
		t.Errorf("At(2,1) = %06x", got)
	}

	out := g.ToImage()
	if c := out.RGBAAt(2, 1); c != (color.RGBA{R: 200, G: 100, B: 50, A: 255}) {
		t.Errorf("ToImage pixel = %v", c)
	}
}

func TestPixelChannels(t *testing.T) {
	p := RGB(0x12, 0x34, 0x56)
	if p != 0x123456 {
		t.Fatalf("RGB = %06x", p)
	}
	if r, g, b := p.Channels(); r != 0x12 || g != 0x34 || b != 0x56 {
		t.Errorf("Channels = %x %x %x", r, g, b)
	}
}
