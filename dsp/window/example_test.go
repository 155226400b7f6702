package window

import "fmt"

func ExampleGenerate() {
	w := Generate(TypeHann, 4)
	fmt.Printf("%.2f %.2f %.2f %.2f\n", w[0], w[1], w[2], w[3])
	// Output:
	// 0.00 0.75 0.75 0.00
}

func ExampleApply() {
	buf := []float64{1, 1, 1, 1}
	Apply(TypeHann, buf)
	fmt.Printf("%.2f %.2f %.2f %.2f\n", buf[0], buf[1], buf[2], buf[3])
	// Output:
	// 0.00 0.75 0.75 0.00
}

func ExampleEquivalentNoiseBandwidth() {
	w := Generate(TypeHann, 1024, WithPeriodic())
	enbw, _ := EquivalentNoiseBandwidth(w)
	fmt.Printf("%s %.2f\n", TypeHann, enbw)
	// Output:
	// Hann 1.50
}
