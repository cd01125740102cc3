package interpreter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/diag"
	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/runtime"
)

type builtinFunc func(e *evaluator, line int, args []runtime.Value) (runtime.Value, error)

// builtins implements every signature declared in semantic.Builtins
var builtins = map[string]builtinFunc{
	"DUMP":    builtinDump,
	"PRINT":   builtinPrint,
	"PRINTLN": builtinPrintln,
	"SLEEP":   builtinSleep,
	"STOI":    builtinStoi,
}

func builtinError(line int, name, format string, args ...interface{}) error {
	return diag.Runtimef(line, "Error in built-in function %s: %s", name, fmt.Sprintf(format, args...))
}

func builtinDump(e *evaluator, line int, args []runtime.Value) (runtime.Value, error) {
	if _, err := fmt.Fprintln(e.stdout, args[0].String()); err != nil {
		return runtime.Value{}, builtinError(line, "DUMP", "%v", err)
	}
	return runtime.Value{}, nil
}

func builtinPrint(e *evaluator, line int, args []runtime.Value) (runtime.Value, error) {
	if _, err := fmt.Fprint(e.stdout, args[0].String()); err != nil {
		return runtime.Value{}, builtinError(line, "PRINT", "%v", err)
	}
	return runtime.Value{}, nil
}

func builtinPrintln(e *evaluator, line int, args []runtime.Value) (runtime.Value, error) {
	if _, err := fmt.Fprintln(e.stdout, args[0].String()); err != nil {
		return runtime.Value{}, builtinError(line, "PRINTLN", "%v", err)
	}
	return runtime.Value{}, nil
}

// builtinSleep pauses for the given number of milliseconds or until the run is cancelled
func builtinSleep(e *evaluator, line int, args []runtime.Value) (runtime.Value, error) {
	if !args[0].IsNumeric() {
		return runtime.Value{}, builtinError(line, "SLEEP", "expected a numeric argument, got %s", args[0].Kind)
	}
	d := time.Duration(args[0].AsReal() * float64(time.Millisecond))
	if d <= 0 {
		return runtime.Value{}, nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return runtime.Value{}, nil
	case <-e.ctx.Done():
		return runtime.Value{}, fmt.Errorf("execution interrupted: %w", e.ctx.Err())
	}
}

func builtinStoi(e *evaluator, line int, args []runtime.Value) (runtime.Value, error) {
	s := strings.TrimSpace(args[0].String())
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return runtime.Value{}, builtinError(line, "STOI", "cannot convert %q to an integer", s)
	}
	return runtime.Int(i), nil
}
