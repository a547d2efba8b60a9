package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"resume-builder/internal/latex"
	"resume-builder/internal/shared/config"
)

// texbuild compiles a LaTeX file with the configured toolchain. Handy for
// checking a template or a failed generation's source outside the server.
func main() {
	cfg := config.Load()

	inPath := flag.String("in", "", "Path to the .tex file to compile")
	outPath := flag.String("out", "", "Output PDF path (defaults to the input path with a .pdf extension)")
	flag.Parse()

	if strings.TrimSpace(*inPath) == "" {
		exitErr("in path is required")
	}

	source, err := os.ReadFile(*inPath)
	if err != nil {
		exitErr(fmt.Sprintf("read tex file: %v", err))
	}

	compiler := latex.NewCompiler(cfg.LatexBin, cfg.LatexTimeout)
	result, err := compiler.Compile(context.Background(), string(source))
	if err != nil {
		var compileErr *latex.CompileError
		if errors.As(err, &compileErr) {
			fmt.Fprintln(os.Stderr, compileErr.Log)
		}
		exitErr(fmt.Sprintf("compile: %v", err))
	}

	target := strings.TrimSpace(*outPath)
	if target == "" {
		target = strings.TrimSuffix(*inPath, ".tex") + ".pdf"
	}
	if err := os.WriteFile(target, result.PDF, 0o644); err != nil {
		exitErr(fmt.Sprintf("write pdf: %v", err))
	}

	fmt.Printf("OK: wrote %s (%d bytes)\n", target, len(result.PDF))
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
