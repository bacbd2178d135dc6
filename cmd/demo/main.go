package main

import (
	"fmt"
	"log"

	lattice "github.com/jwaldner/lattice/lattice_lib"
)

// Prices the reference contract (S=50, K=52, r=5%, T=2y, sigma=30%,
// European call, 300 steps) and prints the Leisen-Reimer price next to the
// closed-form value, then the five Greeks.
func main() {
	s0, k, r, t := 50.0, 52.0, 0.05, 2.0
	n := 300
	div, sigma := 0.0, 0.3

	fmt.Println("Binomial Leisen-Reimer option pricing demo")
	fmt.Printf("Parameters: S=%.2f, K=%.2f, r=%.2f, T=%.1fy, n=%d, sigma=%.2f\n\n", s0, k, r, t, n, sigma)

	// Generic lattice with CRR move sizes, for comparison.
	pu, pd := lattice.CRRMoveSizes(sigma, t, n)
	crr, err := lattice.NewStockOption(s0, k, r, t, n, pu, pd, div, sigma, "call", false)
	if err != nil {
		log.Fatalf("building contract: %v", err)
	}
	fmt.Printf("Generic (CRR) price:  %.6f\n", lattice.NewBinomialTreeOption(crr).Price())
	fmt.Printf("Black-Scholes price:  %.6f\n", lattice.BlackScholesCall(s0, k, r, t, div, sigma))

	res, err := lattice.PriceAndGreeks(s0, k, r, t, n, 0, 0, div, sigma, "call", false)
	if err != nil {
		log.Fatalf("pricing: %v", err)
	}

	fmt.Printf("Leisen-Reimer price:  %.6f\n\n", res.Price)
	fmt.Printf("Delta: %.6f\n", res.Delta)
	fmt.Printf("Gamma: %.6f\n", res.Gamma)
	fmt.Printf("Theta: %.6f\n", res.Theta)
	fmt.Printf("Vega:  %.6f\n", res.Vega)
	fmt.Printf("Rho:   %.6f\n", res.Rho)
}
