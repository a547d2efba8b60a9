package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
)

// defaultTemplate keeps the pipeline usable before a real template is loaded.
const defaultTemplate = "\\documentclass{article}\n\\begin{document}\n% replace me via PUT /api/v1/profile/template\n\\end{document}\n"

// ErrInvalidTemplate is returned when a submitted template is not a LaTeX document.
var ErrInvalidTemplate = errors.New("template must contain \\documentclass")

// Service owns the candidate's current resume template, profile JSON and any
// text extracted from an uploaded source resume. State lives in memory and is
// seeded from disk at startup; template updates are written back.
type Service struct {
	mu           sync.RWMutex
	templatePath string
	profilePath  string

	template         string
	profileJSON      string
	sourceResumeText string
}

// NewService constructs a Service seeded from the given paths. Missing files
// are not an error; the defaults apply until content is provided.
func NewService(templatePath, profilePath string) *Service {
	s := &Service{
		templatePath: templatePath,
		profilePath:  profilePath,
	}
	if raw, err := os.ReadFile(templatePath); err == nil && strings.TrimSpace(string(raw)) != "" {
		s.template = strings.TrimSpace(string(raw))
	}
	if raw, err := os.ReadFile(profilePath); err == nil && json.Valid(raw) {
		s.profileJSON = strings.TrimSpace(string(raw))
	}
	return s
}

// Template returns the current LaTeX resume template.
func (s *Service) Template() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.template == "" {
		return defaultTemplate
	}
	return s.template
}

// SetTemplate validates and replaces the current template, persisting it to disk.
func (s *Service) SetTemplate(template string) error {
	trimmed := strings.TrimSpace(template)
	if trimmed == "" || !strings.Contains(trimmed, "\\documentclass") {
		return ErrInvalidTemplate
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.templatePath != "" {
		if err := os.WriteFile(s.templatePath, []byte(trimmed+"\n"), 0o644); err != nil {
			return fmt.Errorf("persist template: %w", err)
		}
	}
	s.template = trimmed
	return nil
}

// SetSourceResumeText stores text extracted from an uploaded resume.
func (s *Service) SetSourceResumeText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sourceResumeText = strings.TrimSpace(text)
}

// SourceResumeText returns the extracted text of the uploaded resume, if any.
func (s *Service) SourceResumeText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sourceResumeText
}

// EffectiveProfileJSON merges the profile JSON with any uploaded resume text
// into a single JSON document for prompt interpolation.
func (s *Service) EffectiveProfileJSON() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.sourceResumeText == "" {
		if s.profileJSON == "" {
			return "{}"
		}
		return s.profileJSON
	}

	merged := map[string]json.RawMessage{}
	if s.profileJSON != "" {
		merged["profile"] = json.RawMessage(s.profileJSON)
	}
	textJSON, err := json.Marshal(s.sourceResumeText)
	if err != nil {
		return s.profileJSON
	}
	merged["importedResumeText"] = json.RawMessage(textJSON)

	out, err := json.Marshal(merged)
	if err != nil {
		return s.profileJSON
	}
	return string(out)
}
