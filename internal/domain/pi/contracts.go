package pi

// DefaultIterations is the number of series terms evaluated when no count is given
const DefaultIterations = 1000000

// Calculator approximates pi.
type Calculator interface {
	// Approximate evaluates exactly iterations terms after the leading 4 and returns the
	// accumulated value. Zero iterations yields 4.
	Approximate(iterations int) float64
}
