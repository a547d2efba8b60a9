package generations

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"resume-builder/internal/latex"
	"resume-builder/internal/llm"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/storage/object/local"
)

const testResumeDoc = "\\documentclass{article}\n\\begin{document}\nAcme resume\n\\end{document}"
const testCoverDoc = "\\documentclass{article}\n\\begin{document}\nAcme cover letter\n\\end{document}"

type stubClient struct {
	fn func(ctx context.Context, in llm.GenerateInput) (llm.Generation, error)
}

func (s *stubClient) Generate(ctx context.Context, in llm.GenerateInput) (llm.Generation, error) {
	return s.fn(ctx, in)
}

type stubCompiler struct {
	fn func(ctx context.Context, source string) (latex.CompileResult, error)
}

func (s *stubCompiler) Compile(ctx context.Context, source string) (latex.CompileResult, error) {
	return s.fn(ctx, source)
}

type stubProfile struct {
	template    string
	profileJSON string
}

func (p stubProfile) Template() string             { return p.template }
func (p stubProfile) EffectiveProfileJSON() string { return p.profileJSON }

func okClient(t *testing.T) *stubClient {
	t.Helper()
	return &stubClient{fn: func(_ context.Context, in llm.GenerateInput) (llm.Generation, error) {
		doc := testResumeDoc
		usage := llm.Usage{PromptTokens: 321, CompletionTokens: 179, TotalTokens: 500}
		if strings.Contains(in.Messages[0].Content, "cover letter") {
			doc = testCoverDoc
			usage = llm.Usage{PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150}
		}
		return llm.Generation{
			Text:  "```latex\n" + doc + "\n```",
			Model: "gpt-4o-mini",
			Usage: usage,
		}, nil
	}}
}

func okCompiler() *stubCompiler {
	return &stubCompiler{fn: func(_ context.Context, source string) (latex.CompileResult, error) {
		return latex.CompileResult{PDF: []byte("%PDF-1.4 fake"), Log: "Output written on document.pdf"}, nil
	}}
}

func newTestService(t *testing.T, client llm.Client, compiler Compiler) (*Service, *MemoryRepo, object.ObjectStore) {
	t.Helper()
	store := local.New(t.TempDir())
	repo := NewMemoryRepo()
	profile := stubProfile{template: testResumeDoc, profileJSON: `{"name":"Jane Doe"}`}
	svc := NewService(client, compiler, store, repo, profile, 20000)
	return svc, repo, store
}

func storeHas(t *testing.T, store object.ObjectStore, key string) bool {
	t.Helper()
	rc, err := store.Open(context.Background(), key)
	if err != nil {
		return false
	}
	defer rc.Close()
	return true
}

func readStored(t *testing.T, store object.ObjectStore, key string) string {
	t.Helper()
	rc, err := store.Open(context.Background(), key)
	if err != nil {
		t.Fatalf("open %s: %v", key, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read %s: %v", key, err)
	}
	return string(data)
}

func TestGenerateSuccess(t *testing.T) {
	var resumeTemp float32
	client := okClient(t)
	inner := client.fn
	client.fn = func(ctx context.Context, in llm.GenerateInput) (llm.Generation, error) {
		resumeTemp = in.Temperature
		return inner(ctx, in)
	}
	svc, repo, store := newTestService(t, client, okCompiler())

	result, err := svc.Generate(context.Background(), Request{
		Company:        "Acme",
		JobDescription: "Backend engineer building Go services.",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if result.Status != StatusCompleted {
		t.Fatalf("status = %q", result.Status)
	}
	if result.Usage.TotalTokens != 500 || result.Usage.PromptTokens != 321 || result.Usage.CompletionTokens != 179 {
		t.Fatalf("usage not passed through verbatim: %+v", result.Usage)
	}
	if result.LatexSource != testResumeDoc {
		t.Fatalf("unexpected latex source: %q", result.LatexSource)
	}
	if resumeTemp != 0.25 {
		t.Fatalf("resume temperature = %v", resumeTemp)
	}

	if got := readStored(t, store, ArtifactKey(result.ID, ArtifactResumePDF)); !strings.HasPrefix(got, "%PDF") {
		t.Fatalf("stored PDF invalid: %q", got)
	}
	if got := readStored(t, store, ArtifactKey(result.ID, ArtifactResumeTex)); got != testResumeDoc {
		t.Fatalf("stored tex mismatch: %q", got)
	}
	if storeHas(t, store, ArtifactKey(result.ID, ArtifactCoverLetterPDF)) {
		t.Fatal("cover letter artifact present although not requested")
	}

	records, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 run record, got %d", len(records))
	}
	rec := records[0]
	if rec.ID != result.ID || rec.Status != StatusCompleted || rec.TotalTokens != 500 || rec.Company != "Acme" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestGenerateValidationLeavesLogUnchanged(t *testing.T) {
	calls := 0
	client := &stubClient{fn: func(context.Context, llm.GenerateInput) (llm.Generation, error) {
		calls++
		return llm.Generation{}, errors.New("should not be called")
	}}
	svc, repo, _ := newTestService(t, client, okCompiler())

	if _, err := svc.Generate(context.Background(), Request{Company: "  ", JobDescription: "jd"}); !errors.Is(err, llm.ErrCompanyRequired) {
		t.Fatalf("expected ErrCompanyRequired, got %v", err)
	}
	if _, err := svc.Generate(context.Background(), Request{Company: "Acme", JobDescription: ""}); !errors.Is(err, llm.ErrJobDescriptionRequired) {
		t.Fatalf("expected ErrJobDescriptionRequired, got %v", err)
	}
	if _, err := svc.Generate(context.Background(), Request{Company: "Acme", JobDescription: strings.Repeat("x", 20001)}); !errors.Is(err, ErrJobDescriptionTooLong) {
		t.Fatalf("expected ErrJobDescriptionTooLong, got %v", err)
	}

	if calls != 0 {
		t.Fatalf("provider called %d times for invalid input", calls)
	}
	records, _ := repo.List(context.Background())
	if len(records) != 0 {
		t.Fatalf("run log changed after validation failures: %d records", len(records))
	}
}

func TestGenerateProviderFailure(t *testing.T) {
	client := &stubClient{fn: func(context.Context, llm.GenerateInput) (llm.Generation, error) {
		return llm.Generation{}, errors.New("rate limited")
	}}
	svc, repo, _ := newTestService(t, client, okCompiler())

	_, err := svc.Generate(context.Background(), Request{Company: "Acme", JobDescription: "jd"})
	if !errors.Is(err, ErrProvider) {
		t.Fatalf("expected ErrProvider, got %v", err)
	}

	records, _ := repo.List(context.Background())
	if len(records) != 0 {
		t.Fatalf("run log changed after provider failure: %d records", len(records))
	}
}

func TestGenerateCompileFailureRecordsRun(t *testing.T) {
	compiler := &stubCompiler{fn: func(context.Context, string) (latex.CompileResult, error) {
		return latex.CompileResult{}, &latex.CompileError{
			Log: "! Undefined control sequence.\nl.1 \\badcommand",
			Err: errors.New("exit status 1"),
		}
	}}
	svc, repo, store := newTestService(t, okClient(t), compiler)

	result, err := svc.Generate(context.Background(), Request{Company: "Acme", JobDescription: "jd"})
	if !errors.Is(err, ErrCompileFailed) {
		t.Fatalf("expected ErrCompileFailed, got %v", err)
	}
	if result.Status != StatusCompileFailed {
		t.Fatalf("status = %q", result.Status)
	}
	if !strings.Contains(result.CompilerLog, "Undefined control sequence") {
		t.Fatalf("compiler log not surfaced verbatim: %q", result.CompilerLog)
	}
	if !storeHas(t, store, ArtifactKey(result.ID, ArtifactResumeTex)) {
		t.Fatal("latex source not kept for failed compile")
	}
	if storeHas(t, store, ArtifactKey(result.ID, ArtifactResumePDF)) {
		t.Fatal("PDF artifact present for failed compile")
	}

	records, _ := repo.List(context.Background())
	if len(records) != 1 {
		t.Fatalf("expected 1 record for compile failure, got %d", len(records))
	}
	if records[0].Status != StatusCompileFailed || records[0].TotalTokens != 500 {
		t.Fatalf("unexpected record: %+v", records[0])
	}
}

func TestGenerateWithCoverLetter(t *testing.T) {
	var temps []float32
	client := okClient(t)
	inner := client.fn
	client.fn = func(ctx context.Context, in llm.GenerateInput) (llm.Generation, error) {
		temps = append(temps, in.Temperature)
		return inner(ctx, in)
	}
	svc, repo, store := newTestService(t, client, okCompiler())

	result, err := svc.Generate(context.Background(), Request{
		Company:         "Acme",
		JobDescription:  "Backend engineer",
		WantCoverLetter: true,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if result.CoverLetterSource != testCoverDoc {
		t.Fatalf("unexpected cover letter source: %q", result.CoverLetterSource)
	}
	if !result.HasCoverLetterPDF {
		t.Fatal("expected cover letter PDF")
	}
	if result.CoverLetterError != "" {
		t.Fatalf("unexpected cover letter error: %q", result.CoverLetterError)
	}
	if result.Usage.TotalTokens != 650 {
		t.Fatalf("usage not summed across calls: %+v", result.Usage)
	}
	if len(temps) != 2 || temps[0] != 0.25 || temps[1] != 0.3 {
		t.Fatalf("unexpected temperatures: %v", temps)
	}
	if !storeHas(t, store, ArtifactKey(result.ID, ArtifactCoverLetterPDF)) {
		t.Fatal("cover letter PDF not stored")
	}
	if !storeHas(t, store, ArtifactKey(result.ID, ArtifactCoverLetterTex)) {
		t.Fatal("cover letter tex not stored")
	}

	records, _ := repo.List(context.Background())
	if len(records) != 1 || records[0].TotalTokens != 650 {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestGenerateCoverLetterFailureKeepsRun(t *testing.T) {
	client := okClient(t)
	inner := client.fn
	calls := 0
	client.fn = func(ctx context.Context, in llm.GenerateInput) (llm.Generation, error) {
		calls++
		if calls == 2 {
			return llm.Generation{}, errors.New("rate limited")
		}
		return inner(ctx, in)
	}
	svc, repo, store := newTestService(t, client, okCompiler())

	result, err := svc.Generate(context.Background(), Request{
		Company:         "Acme",
		JobDescription:  "Backend engineer",
		WantCoverLetter: true,
	})
	if err != nil {
		t.Fatalf("resume pipeline should still succeed: %v", err)
	}
	if result.Status != StatusCompleted {
		t.Fatalf("status = %q", result.Status)
	}
	if result.CoverLetterError == "" {
		t.Fatal("expected cover letter error to be reported")
	}
	if result.HasCoverLetterPDF {
		t.Fatal("unexpected cover letter PDF")
	}
	if !storeHas(t, store, ArtifactKey(result.ID, ArtifactResumePDF)) {
		t.Fatal("resume PDF missing")
	}

	records, _ := repo.List(context.Background())
	if len(records) != 1 || records[0].Status != StatusCompleted {
		t.Fatalf("unexpected records: %+v", records)
	}
}
