package main

import (
	"fmt"
	"log"
	"math"

	lattice "github.com/jwaldner/lattice/lattice_lib"
)

// Compares the convergence of the Leisen-Reimer calibration against the
// generic lattice seeded with CRR move sizes, for a European call across
// step counts. The LR column should sit on the closed-form value almost
// immediately while the CRR column oscillates toward it.
func main() {
	s0, k, r, t := 50.0, 52.0, 0.05, 2.0
	div, sigma := 0.0, 0.3

	bs := lattice.BlackScholesCall(s0, k, r, t, div, sigma)
	fmt.Printf("Black-Scholes reference: %.6f\n\n", bs)
	fmt.Printf("%6s  %12s  %12s  %12s  %12s\n", "steps", "CRR", "CRR err", "LR", "LR err")

	for _, n := range []int{5, 10, 15, 20, 25, 50, 75, 100, 200, 300} {
		pu, pd := lattice.CRRMoveSizes(sigma, t, n)
		crrOption, err := lattice.NewStockOption(s0, k, r, t, n, pu, pd, div, sigma, "call", false)
		if err != nil {
			log.Fatalf("building contract: %v", err)
		}
		crr := lattice.NewBinomialTreeOption(crrOption).Price()

		lrOption, err := lattice.NewStockOption(s0, k, r, t, n, 0, 0, div, sigma, "call", false)
		if err != nil {
			log.Fatalf("building contract: %v", err)
		}
		lr := lattice.NewBinomialLROption(lattice.NewBinomialTreeOption(lrOption)).Price()

		fmt.Printf("%6d  %12.6f  %12.2e  %12.6f  %12.2e\n",
			n, crr, math.Abs(crr-bs), lr, math.Abs(lr-bs))
	}
}
