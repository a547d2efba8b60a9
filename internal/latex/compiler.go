package latex

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const texFileName = "document.tex"

// ErrCompilerNotFound is returned when the configured LaTeX binary is missing.
var ErrCompilerNotFound = errors.New("latex compiler not found")

// CompileError carries the verbatim compiler log for a failed run so callers
// can show it to the user unchanged.
type CompileError struct {
	Log string
	Err error
}

func (e *CompileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("latex compile failed: %v", e.Err)
	}
	return "latex compile failed"
}

func (e *CompileError) Unwrap() error { return e.Err }

// CompileResult holds the produced PDF and the compiler output.
type CompileResult struct {
	PDF []byte
	Log string
}

// Compiler invokes an external LaTeX toolchain (pdflatex by default).
type Compiler struct {
	Binary  string
	Timeout time.Duration
}

// NewCompiler constructs a Compiler with defaults applied.
func NewCompiler(binary string, timeout time.Duration) *Compiler {
	if strings.TrimSpace(binary) == "" {
		binary = "pdflatex"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Compiler{Binary: binary, Timeout: timeout}
}

// Compile writes source to a fresh temp workspace, runs the compiler there and
// reads back the produced PDF. The workspace is removed on every exit path.
func (c *Compiler) Compile(ctx context.Context, source string) (CompileResult, error) {
	if strings.TrimSpace(source) == "" {
		return CompileResult{}, fmt.Errorf("empty latex source")
	}
	if _, err := exec.LookPath(c.Binary); err != nil {
		return CompileResult{}, fmt.Errorf("%w: %s", ErrCompilerNotFound, c.Binary)
	}

	dir, err := os.MkdirTemp("", "latex-build-*")
	if err != nil {
		return CompileResult{}, fmt.Errorf("create workspace: %w", err)
	}
	defer os.RemoveAll(dir)

	texPath := filepath.Join(dir, texFileName)
	if err := os.WriteFile(texPath, []byte(source), 0o644); err != nil {
		return CompileResult{}, fmt.Errorf("write tex file: %w", err)
	}

	runCtx := ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, c.Binary, "-interaction=nonstopmode", "-halt-on-error", texFileName)
	cmd.Dir = dir
	output, runErr := cmd.CombinedOutput()
	compilerLog := string(output)

	if runErr != nil {
		if runCtx.Err() != nil {
			return CompileResult{}, fmt.Errorf("latex compile timed out after %s: %w", c.Timeout, runCtx.Err())
		}
		return CompileResult{}, &CompileError{Log: compilerLog, Err: runErr}
	}

	pdfPath := strings.TrimSuffix(texPath, ".tex") + ".pdf"
	pdf, err := os.ReadFile(pdfPath)
	if err != nil {
		return CompileResult{}, &CompileError{Log: compilerLog, Err: fmt.Errorf("compiler produced no PDF: %w", err)}
	}
	if len(pdf) == 0 {
		return CompileResult{}, &CompileError{Log: compilerLog, Err: errors.New("compiler produced empty PDF")}
	}

	return CompileResult{PDF: pdf, Log: compilerLog}, nil
}
