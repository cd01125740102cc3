package numeric

import (
	"github.com/MGTheTrain/toypas/internal/domain/pi"
	"github.com/MGTheTrain/toypas/internal/pkg/logger"
)

// leibnizCalculator struct that implements the pi.Calculator interface
type leibnizCalculator struct {
	logger logger.Logger
}

// NewLeibnizCalculator creates and returns a new instance of leibnizCalculator
func NewLeibnizCalculator(logger logger.Logger) (pi.Calculator, error) {
	return &leibnizCalculator{
		logger: logger,
	}, nil
}

// Approximate sums 4 - 4/3 + 4/5 - 4/7 ... for exactly iterations terms after the leading 4.
// Negative counts behave like zero.
func (c *leibnizCalculator) Approximate(iterations int) float64 {
	acc := 4.0
	denom := 3
	subtract := true

	for i := 0; i < iterations; i++ {
		term := 4.0 / float64(denom)
		if subtract {
			acc -= term
		} else {
			acc += term
		}
		subtract = !subtract
		denom += 2
	}

	c.logger.Debug("Approximated pi with ", iterations, " Leibniz iterations")
	return acc
}
