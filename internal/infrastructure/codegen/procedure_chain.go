package codegen

import (
	"bufio"
	"fmt"
	"io"

	"github.com/MGTheTrain/toypas/internal/domain/procgen"
	"github.com/MGTheTrain/toypas/internal/pkg/logger"
)

const chainHeader = `
    program Main;
    var v :  real;

    procedure r0() -> real;
    begin
       return 5;
    end;
`

const chainBlock = `
procedure r%d() -> real;
begin
    return r%d();
end;
`

const chainTrailer = `
    begin
       v := r0();
       dump(v);
    end.
`

// procedureChainGenerator emits a program where every procedure r{i} returns r{i-1}()
type procedureChainGenerator struct {
	logger logger.Logger
}

// NewProcedureChainGenerator creates and returns a new instance of procedureChainGenerator
func NewProcedureChainGenerator(logger logger.Logger) (procgen.Generator, error) {
	return &procedureChainGenerator{
		logger: logger,
	}, nil
}

// Generate writes the chain r1..r{upperBound-1} between the fixed header and trailer.
func (g *procedureChainGenerator) Generate(w io.Writer, upperBound int) (int, error) {
	bw := bufio.NewWriter(w)

	if _, err := io.WriteString(bw, chainHeader); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	blocks := 0
	for i := 1; i < upperBound; i++ {
		if _, err := fmt.Fprintf(bw, chainBlock, i, i-1); err != nil {
			return blocks, fmt.Errorf("failed to write procedure r%d: %w", i, err)
		}
		if _, err := io.WriteString(bw, "\n"); err != nil {
			return blocks, fmt.Errorf("failed to write procedure r%d: %w", i, err)
		}
		blocks++
	}

	if _, err := io.WriteString(bw, chainTrailer); err != nil {
		return blocks, fmt.Errorf("failed to write trailer: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return blocks, fmt.Errorf("failed to flush output: %w", err)
	}

	g.logger.Debug("Generated procedure chain with ", blocks, " blocks")
	return blocks, nil
}
