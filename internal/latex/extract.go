package latex

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoDocument is returned when no LaTeX content can be located in LLM output.
var ErrNoDocument = errors.New("no LaTeX document found in output")

// Fence patterns tried in order. Models wrap LaTeX in ```latex blocks most of
// the time, but plain fences and bare documents show up too.
var fencePatterns = []*regexp.Regexp{
	regexp.MustCompile("(?is)```latex\\s*(.*?)\\s*```"),
	regexp.MustCompile("(?is)```\\s*(\\\\documentclass.*?)\\s*```"),
	regexp.MustCompile("(?is)```\\s*latex\\s*(.*?)\\s*```"),
	regexp.MustCompile("(?is)```\\s*(.*?\\\\begin\\{document\\}.*?)```"),
}

var latexIndicators = []string{
	"\\documentclass",
	"\\begin{document}",
	"\\end{document}",
	"\\section",
	"\\subsection",
	"\\textbf",
	"\\textit",
}

// ExtractDocument pulls a LaTeX document out of raw LLM output. Fenced code
// blocks are preferred; bare output is accepted when it already looks like
// LaTeX.
func ExtractDocument(text string) (string, error) {
	for _, pattern := range fencePatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		content := strings.TrimSpace(match[1])
		if looksLikeLatex(content) {
			return content, nil
		}
	}

	trimmed := strings.TrimSpace(text)
	if looksLikeLatex(trimmed) {
		return trimmed, nil
	}
	return "", ErrNoDocument
}

func looksLikeLatex(content string) bool {
	for _, indicator := range latexIndicators {
		if strings.Contains(content, indicator) {
			return true
		}
	}
	return false
}
