package filter

import "testing"

func uniformBuffer(w, h int, v uint8) *Buffer {
	b := NewBuffer(w, h)
	for i := range b.Pix {
		b.Pix[i] = v
	}
	return b
}

func TestSobel_UniformImageHasNoEdges(t *testing.T) {
	img := uniformBuffer(5, 5, 128)

	out, err := Sobel(img)
	if err != nil {
		t.Fatalf("Sobel failed: %v", err)
	}
	if out.W != 5 || out.H != 5 {
		t.Fatalf("dims: got %dx%d, want 5x5", out.W, out.H)
	}
	for i, v := range out.Pix {
		if v != 0 {
			t.Fatalf("Pix[%d] = %d, want 0 for a uniform image", i, v)
		}
	}
}

func TestSobel_VerticalStepEdge(t *testing.T) {
	// Left half dark, right half bright. The strongest response must sit on
	// the two columns straddling the step, and the flat interiors must stay
	// near zero after normalization.
	img := NewBuffer(8, 8)
	for y := 0; y < 8; y++ {
		for x := 4; x < 8; x++ {
			img.Set(x, y, 255)
		}
	}

	out, err := Sobel(img)
	if err != nil {
		t.Fatalf("Sobel failed: %v", err)
	}

	for y := 0; y < 8; y++ {
		if v := out.At(3, y); v != 255 {
			t.Errorf("edge column At(3,%d) = %d, want 255", y, v)
		}
		if v := out.At(4, y); v != 255 {
			t.Errorf("edge column At(4,%d) = %d, want 255", y, v)
		}
		if v := out.At(0, y); v != 0 {
			t.Errorf("flat region At(0,%d) = %d, want 0", y, v)
		}
		if v := out.At(7, y); v != 0 {
			t.Errorf("flat region At(7,%d) = %d, want 0", y, v)
		}
	}
}

func TestSobel_OutputRange(t *testing.T) {
	// A gradient ramp exercises the min-max normalization: the output must
	// span the full byte range.
	img := NewBuffer(16, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, uint8(x*x))
		}
	}

	out, err := Sobel(img)
	if err != nil {
		t.Fatalf("Sobel failed: %v", err)
	}

	var min, max uint8 = 255, 0
	for _, v := range out.Pix {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min != 0 || max != 255 {
		t.Errorf("normalized range: got [%d, %d], want [0, 255]", min, max)
	}
}
