package biquad

// Chain is an ordered cascade of biquad sections processed in series.
// It is used for multi-stage filters such as the two-stage K-weighting
// cascade, where each second-order section feeds into the next.
type Chain struct {
	sections []Section
}

// NewChain creates a cascade from one or more coefficient sets.
// Each Coefficients value becomes one Section in the cascade.
func NewChain(coeffs ...Coefficients) *Chain {
	c := &Chain{
		sections: make([]Section, len(coeffs)),
	}
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}

	return c
}

// ProcessSample cascades input through all sections in order.
func (c *Chain) ProcessSample(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters a block in-place through the full cascade.
func (c *Chain) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// ProcessBlockTo filters src into dst through the full cascade.
// Both slices must have the same length; dst may alias src.
func (c *Chain) ProcessBlockTo(dst, src []float64) {
	if len(c.sections) == 0 {
		copy(dst, src)
		return
	}

	c.sections[0].ProcessBlockTo(dst, src)
	for i := 1; i < len(c.sections); i++ {
		c.sections[i].ProcessBlock(dst)
	}
}

// Reset clears all section states.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// Order returns the total filter order (2 per full biquad section).
func (c *Chain) Order() int {
	return 2 * len(c.sections)
}

// Sections returns the number of sections in the cascade.
func (c *Chain) Sections() int {
	return len(c.sections)
}
