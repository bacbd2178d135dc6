package lattice

import "math"

// Closed-form Black-Scholes reference prices with a flat continuous dividend
// yield. The lattice engine does not use these; they anchor the convergence
// diagnostics and the test suite.

// BlackScholesCall returns the European call price.
func BlackScholesCall(s0, k, r, t, div, sigma float64) float64 {
	d1, d2 := dPlusMinus(s0, k, r, t, div, sigma)
	return s0*math.Exp(-div*t)*normCDF(d1) - k*math.Exp(-r*t)*normCDF(d2)
}

// BlackScholesPut returns the European put price.
func BlackScholesPut(s0, k, r, t, div, sigma float64) float64 {
	d1, d2 := dPlusMinus(s0, k, r, t, div, sigma)
	return k*math.Exp(-r*t)*normCDF(-d2) - s0*math.Exp(-div*t)*normCDF(-d1)
}

func dPlusMinus(s0, k, r, t, div, sigma float64) (float64, float64) {
	volT := sigma * math.Sqrt(t)
	d1 := (math.Log(s0/k) + (r-div+0.5*sigma*sigma)*t) / volT
	return d1, d1 - volT
}

// normCDF is the standard normal cumulative distribution, via math.Erf.
func normCDF(x float64) float64 {
	return 0.5 * (1.0 + math.Erf(x/math.Sqrt2))
}
