package filter

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func f64ptr(v float64) *float64 { return &v }

func TestCanny_OutputIsBinary(t *testing.T) {
	img := NewBuffer(16, 16)
	for y := 0; y < 16; y++ {
		for x := 8; x < 16; x++ {
			img.Set(x, y, 220)
		}
	}

	out, err := Canny(img, CannyOptions{AutoThreshold: true})
	if err != nil {
		t.Fatalf("Canny failed: %v", err)
	}
	if out.W != 16 || out.H != 16 {
		t.Fatalf("dims: got %dx%d, want 16x16", out.W, out.H)
	}
	edges := 0
	for i, v := range out.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("Pix[%d] = %d, want 0 or 255", i, v)
		}
		if v == 255 {
			edges++
		}
	}
	if edges == 0 {
		t.Error("no edge pixels found on a step-edge image")
	}
}

func TestCanny_UniformImageHasNoEdges(t *testing.T) {
	img := uniformBuffer(10, 10, 200)

	out, err := Canny(img, CannyOptions{AutoThreshold: true})
	if err != nil {
		t.Fatalf("Canny failed: %v", err)
	}
	for i, v := range out.Pix {
		if v != 0 {
			t.Fatalf("Pix[%d] = %d, want 0 for a uniform image", i, v)
		}
	}
}

func TestCanny_ManualThresholds(t *testing.T) {
	img := NewBuffer(12, 12)
	for y := 0; y < 12; y++ {
		for x := 6; x < 12; x++ {
			img.Set(x, y, 255)
		}
	}

	// A threshold pair above any achievable gradient magnitude must kill
	// every edge; a permissive pair on the same image must keep some.
	none, err := Canny(img, CannyOptions{Low: f64ptr(1e6), High: f64ptr(2e6)})
	if err != nil {
		t.Fatalf("Canny failed: %v", err)
	}
	for i, v := range none.Pix {
		if v != 0 {
			t.Fatalf("Pix[%d] = %d, want 0 with unreachable thresholds", i, v)
		}
	}

	some, err := Canny(img, CannyOptions{Low: f64ptr(10), High: f64ptr(20)})
	if err != nil {
		t.Fatalf("Canny failed: %v", err)
	}
	edges := 0
	for _, v := range some.Pix {
		if v == 255 {
			edges++
		}
	}
	if edges == 0 {
		t.Error("no edges with permissive manual thresholds")
	}
}

func TestAutoThreshold(t *testing.T) {
	t.Run("high above low on varied magnitudes", func(t *testing.T) {
		m := mat.NewDense(4, 4, []float64{
			0, 10, 20, 30,
			40, 50, 60, 70,
			80, 90, 100, 110,
			120, 130, 140, 150,
		})
		low, high := autoThreshold(m)
		if high <= low {
			t.Errorf("got low=%v high=%v, want high > low", low, high)
		}
		if low != float64(int(low)) || high != float64(int(high)) {
			t.Errorf("thresholds not truncated to integers: low=%v high=%v", low, high)
		}
	})

	t.Run("collapsed percentiles double the low", func(t *testing.T) {
		vals := make([]float64, 16)
		for i := range vals {
			vals[i] = 10
		}
		low, high := autoThreshold(mat.NewDense(4, 4, vals))
		if low != 10 || high != 20 {
			t.Errorf("got low=%v high=%v, want 10 and 20", low, high)
		}
	})

	t.Run("empty magnitude map falls back to defaults", func(t *testing.T) {
		low, high := autoThreshold(mat.NewDense(4, 4, nil))
		if low != cannyDefaultLow || high != cannyDefaultHigh {
			t.Errorf("got low=%v high=%v, want defaults %d and %d",
				low, high, cannyDefaultLow, cannyDefaultHigh)
		}
	})

	t.Run("float noise treated as no gradients", func(t *testing.T) {
		// Smoothing a flat region leaves magnitudes around 1e-14, which must
		// not be mistaken for edges: truncation would collapse the pair to
		// (0, 0) and mark the whole image strong.
		vals := make([]float64, 16)
		for i := range vals {
			vals[i] = 3e-14
		}
		low, high := autoThreshold(mat.NewDense(4, 4, vals))
		if low != cannyDefaultLow || high != cannyDefaultHigh {
			t.Errorf("got low=%v high=%v, want defaults %d and %d",
				low, high, cannyDefaultLow, cannyDefaultHigh)
		}
	})

	t.Run("sub-unit magnitudes never yield high <= low", func(t *testing.T) {
		vals := make([]float64, 16)
		for i := range vals {
			vals[i] = 0.5 // above epsilon but truncates to 0
		}
		low, high := autoThreshold(mat.NewDense(4, 4, vals))
		if high <= low {
			t.Errorf("got low=%v high=%v, want high > low", low, high)
		}
	})
}

func TestNonMaxSuppress_BorderStaysZero(t *testing.T) {
	vals := make([]float64, 25)
	for i := range vals {
		vals[i] = 100
	}
	m := mat.NewDense(5, 5, vals)
	out := nonMaxSuppress(m, mat.NewDense(5, 5, nil))

	for i := 0; i < 5; i++ {
		for _, at := range [][2]int{{0, i}, {4, i}, {i, 0}, {i, 4}} {
			if v := out.At(at[0], at[1]); v != 0 {
				t.Errorf("border At(%d,%d) = %v, want 0", at[0], at[1], v)
			}
		}
	}
	// Plateau interior survives because the comparison is >=, not >.
	if v := out.At(2, 2); v != 100 {
		t.Errorf("interior plateau At(2,2) = %v, want 100", v)
	}
}

func TestTrackEdges_PromotesConnectedWeakOnly(t *testing.T) {
	// 1x5 interior row: strong at x=1, weak chain at x=2,3, isolated weak at
	// far side of a gap. Layout is 3 rows so x positions sit in the interior.
	w, h := 7, 3
	strong := make([]uint8, w*h)
	weak := make([]uint8, w*h)
	strong[1*w+1] = 255
	weak[1*w+2] = 255
	weak[1*w+3] = 255
	weak[1*w+5] = 255 // separated by the gap at x=4

	out := trackEdges(strong, weak, w, h)

	wantOn := [][2]int{{1, 1}, {2, 1}, {3, 1}}
	for _, p := range wantOn {
		if out.At(p[0], p[1]) != 255 {
			t.Errorf("At(%d,%d) = %d, want promoted to 255", p[0], p[1], out.At(p[0], p[1]))
		}
	}
	if v := out.At(5, 1); v != 0 {
		t.Errorf("disconnected weak pixel At(5,1) = %d, want 0", v)
	}
	if v := out.At(4, 1); v != 0 {
		t.Errorf("gap pixel At(4,1) = %d, want 0", v)
	}
}
