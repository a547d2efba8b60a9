package profile

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewServiceSeedsFromDisk(t *testing.T) {
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "resume.tex")
	profilePath := filepath.Join(dir, "profile.json")

	if err := os.WriteFile(templatePath, []byte("\\documentclass{article}\n\\begin{document}\nseeded\n\\end{document}\n"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := os.WriteFile(profilePath, []byte(`{"name":"Jane Doe"}`), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}

	svc := NewService(templatePath, profilePath)
	if !strings.Contains(svc.Template(), "seeded") {
		t.Fatalf("template not seeded: %q", svc.Template())
	}
	if svc.EffectiveProfileJSON() != `{"name":"Jane Doe"}` {
		t.Fatalf("profile not seeded: %q", svc.EffectiveProfileJSON())
	}
}

func TestNewServiceMissingFilesUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(filepath.Join(dir, "missing.tex"), filepath.Join(dir, "missing.json"))

	if !strings.Contains(svc.Template(), "\\documentclass") {
		t.Fatalf("expected default template, got %q", svc.Template())
	}
	if svc.EffectiveProfileJSON() != "{}" {
		t.Fatalf("expected empty profile object, got %q", svc.EffectiveProfileJSON())
	}
}

func TestSetTemplatePersistsAndValidates(t *testing.T) {
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "resume.tex")
	svc := NewService(templatePath, filepath.Join(dir, "profile.json"))

	if err := svc.SetTemplate("not latex at all"); !errors.Is(err, ErrInvalidTemplate) {
		t.Fatalf("expected ErrInvalidTemplate, got %v", err)
	}

	doc := "\\documentclass{article}\n\\begin{document}\nupdated\n\\end{document}"
	if err := svc.SetTemplate(doc); err != nil {
		t.Fatalf("set template: %v", err)
	}
	if svc.Template() != doc {
		t.Fatalf("template not updated: %q", svc.Template())
	}

	raw, err := os.ReadFile(templatePath)
	if err != nil {
		t.Fatalf("read persisted template: %v", err)
	}
	if !strings.Contains(string(raw), "updated") {
		t.Fatalf("template not persisted: %q", raw)
	}
}

func TestEffectiveProfileJSONMergesUploadedResume(t *testing.T) {
	dir := t.TempDir()
	profilePath := filepath.Join(dir, "profile.json")
	if err := os.WriteFile(profilePath, []byte(`{"name":"Jane Doe"}`), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}

	svc := NewService(filepath.Join(dir, "resume.tex"), profilePath)
	svc.SetSourceResumeText("Jane Doe\nBackend Engineer at Acme")

	var merged struct {
		Profile            json.RawMessage `json:"profile"`
		ImportedResumeText string          `json:"importedResumeText"`
	}
	if err := json.Unmarshal([]byte(svc.EffectiveProfileJSON()), &merged); err != nil {
		t.Fatalf("unmarshal merged profile: %v", err)
	}
	if string(merged.Profile) != `{"name":"Jane Doe"}` {
		t.Fatalf("unexpected profile: %s", merged.Profile)
	}
	if !strings.Contains(merged.ImportedResumeText, "Backend Engineer") {
		t.Fatalf("unexpected imported text: %q", merged.ImportedResumeText)
	}
}
