package procgen

import "io"

// DefaultUpperBound is the exclusive upper bound of the generated chain (r1..r9999)
const DefaultUpperBound = 10000

// Generator emits a procedure-chain program.
type Generator interface {
	// Generate writes the fixed header, one block per index in [1, upperBound) and the
	// fixed trailer to w. It returns the number of generated blocks.
	Generate(w io.Writer, upperBound int) (int, error)
}
