package window

import (
	"math"
	"testing"
)

func TestGenerateAllTypes(t *testing.T) {
	types := []Type{
		TypeRectangular,
		TypeHann,
		TypeHamming,
		TypeBlackman,
		TypeBlackmanHarris4Term,
		TypeTriangle,
		TypeWelch,
	}

	for _, typ := range types {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 64)
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}

			for i, v := range w {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("coefficient[%d] invalid: %v", i, v)
				}
			}
		})
	}
}

func TestPeriodicDiffersFromSymmetric(t *testing.T) {
	a := Generate(TypeHann, 16)

	b := Generate(TypeHann, 16, WithPeriodic())
	if len(a) != 16 || len(b) != 16 {
		t.Fatalf("unexpected lengths: %d %d", len(a), len(b))
	}

	if almostEqual(a[15], b[15], 1e-12) {
		t.Fatal("expected different end coefficient for periodic form")
	}
}

func TestBartlettVariant(t *testing.T) {
	wBart := Generate(TypeTriangle, 32, WithBartlett())

	if wBart[0] != 0 {
		t.Fatalf("bartlett expected first coeff 0, got %v", wBart[0])
	}

	wTri := Generate(TypeTriangle, 33)
	if !almostEqual(wTri[16], 1, 1e-12) {
		t.Fatalf("triangle expected peak 1 at center, got %v", wTri[16])
	}
}

func TestPeriodicHannOverlapSumConstant(t *testing.T) {
	// Periodic Hann with hop N/4 satisfies constant overlap-add exactly.
	const n = 32
	const hop = 8

	w := Generate(TypeHann, n, WithPeriodic())

	want := 0.0
	for j := 0; j < n/hop; j++ {
		want += w[j*hop]
	}

	for off := 0; off < n; off++ {
		sum := 0.0
		for j := 0; j < n/hop; j++ {
			sum += w[(off+j*hop)%n]
		}
		if !almostEqual(sum, want, 1e-12) {
			t.Fatalf("overlap sum at offset %d: got %v want %v", off, sum, want)
		}
	}
}

func TestApplyInPlaceByType(t *testing.T) {
	buf := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	Apply(TypeRectangular, buf)

	for i, v := range buf {
		if v != float64(i+1) {
			t.Fatalf("rectangular should be passthrough at %d: %v", i, v)
		}
	}

	Apply(TypeHann, buf)

	if buf[0] != 0 {
		t.Fatalf("hann first sample should be 0, got %v", buf[0])
	}
}

func TestENBWAndCoherentGain(t *testing.T) {
	w := Generate(TypeHann, 2048, WithPeriodic())

	enbw, err := EquivalentNoiseBandwidth(w)
	if err != nil {
		t.Fatalf("EquivalentNoiseBandwidth error: %v", err)
	}

	if !almostEqual(enbw, 1.5, 1e-9) {
		t.Fatalf("hann ENBW=%v, want 1.5", enbw)
	}

	cg, err := CoherentGain(w)
	if err != nil {
		t.Fatalf("CoherentGain error: %v", err)
	}

	if !almostEqual(cg, 0.5, 1e-9) {
		t.Fatalf("hann coherent gain=%v, want 0.5", cg)
	}

	rect := Generate(TypeRectangular, 64)

	enbw, err = EquivalentNoiseBandwidth(rect)
	if err != nil {
		t.Fatal(err)
	}

	if !almostEqual(enbw, 1.0, 1e-12) {
		t.Fatalf("rectangular ENBW=%v, want 1", enbw)
	}
}

func TestCompatibilityWrappers(t *testing.T) {
	_, err := Hann(64)
	if err != nil {
		t.Fatal(err)
	}

	_, err = Hamming(64)
	if err != nil {
		t.Fatal(err)
	}

	_, err = Blackman(64)
	if err != nil {
		t.Fatal(err)
	}
}

func TestGoldenVectors(t *testing.T) {
	hannExpected := []float64{
		0.0, 0.1882550990706332, 0.6112604669781572, 0.9504844339512095,
		0.9504844339512095, 0.6112604669781573, 0.1882550990706333, 0.0,
	}
	hammingExpected := []float64{
		0.08, 0.25319469114498255, 0.6423596296199047, 0.9544456792351128,
		0.9544456792351128, 0.6423596296199048, 0.25319469114498266, 0.08,
	}
	bh4Expected := []float64{
		0.00006, 0.03339172347815117, 0.332833504298565,
		0.8893697722232837, 0.8893697722232838, 0.3328335042985652,
		0.0333917234781512, 0.00006,
	}

	checkGolden(t, Generate(TypeHann, 8), hannExpected, 1e-10)
	checkGolden(t, Generate(TypeHamming, 8), hammingExpected, 1e-10)
	checkGolden(t, Generate(TypeBlackmanHarris4Term, 8), bh4Expected, 1e-10)
}

func TestValidationAndEdgeCases(t *testing.T) {
	if got := Generate(TypeHann, 0); got != nil {
		t.Fatalf("expected nil for zero length, got %v", got)
	}

	_, err := Hann(0)
	if err == nil {
		t.Fatal("expected size validation error")
	}

	_, err = EquivalentNoiseBandwidth(nil)
	if err == nil {
		t.Fatal("expected empty coeffs error")
	}

	_, err = EquivalentNoiseBandwidth([]float64{0, 0, 0})
	if err == nil {
		t.Fatal("expected zero coherent gain error")
	}

	_, err = CoherentGain(nil)
	if err == nil {
		t.Fatal("expected empty coeffs error")
	}
}

func checkGolden(t *testing.T, got, want []float64, tol float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("len mismatch got=%d want=%d", len(got), len(want))
	}

	for i := range got {
		if !almostEqual(got[i], want[i], tol) {
			t.Fatalf("index %d: got=%.16f want=%.16f", i, got[i], want[i])
		}
	}
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
