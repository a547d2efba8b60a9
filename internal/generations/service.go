package generations

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/latex"
	"resume-builder/internal/llm"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/telemetry"
)

const (
	resumeTemperature      = 0.25
	coverLetterTemperature = 0.3
)

// Errors surfaced by Generate, used by the handler to pick a status code.
var (
	ErrJobDescriptionTooLong = errors.New("job description exceeds the configured limit")
	ErrProvider              = errors.New("llm provider request failed")
	ErrCompileFailed         = errors.New("latex compile failed")
)

// Compiler turns LaTeX source into a PDF.
type Compiler interface {
	Compile(ctx context.Context, source string) (latex.CompileResult, error)
}

// Profile supplies the template and candidate data interpolated into prompts.
type Profile interface {
	Template() string
	EffectiveProfileJSON() string
}

// Service runs the tailoring pipeline: prompt, provider call, LaTeX
// extraction, compile, artifact storage and the append-only run log.
type Service struct {
	llmClient              llm.Client
	compiler               Compiler
	store                  object.ObjectStore
	repo                   Repo
	profile                Profile
	maxJobDescriptionChars int
}

func NewService(client llm.Client, compiler Compiler, store object.ObjectStore, repo Repo, profile Profile, maxJobDescriptionChars int) *Service {
	return &Service{
		llmClient:              client,
		compiler:               compiler,
		store:                  store,
		repo:                   repo,
		profile:                profile,
		maxJobDescriptionChars: maxJobDescriptionChars,
	}
}

// Generate runs the full pipeline for one request. A run record is appended
// on every run that consumed provider tokens; validation and provider
// failures leave the log untouched.
func (s *Service) Generate(ctx context.Context, req Request) (Result, error) {
	req.Company = strings.TrimSpace(req.Company)
	req.JobDescription = strings.TrimSpace(req.JobDescription)
	if s.maxJobDescriptionChars > 0 && len([]rune(req.JobDescription)) > s.maxJobDescriptionChars {
		return Result{}, ErrJobDescriptionTooLong
	}

	messages, err := llm.BuildResumePrompt(llm.ResumePromptInput{
		Company:        req.Company,
		JobDescription: req.JobDescription,
		ResumeTemplate: s.profile.Template(),
		ProfileJSON:    s.profile.EffectiveProfileJSON(),
	})
	if err != nil {
		return Result{}, err
	}

	metrics.IncGenerationStarted()
	start := time.Now()
	result := Result{ID: uuid.NewString(), CreatedAt: start.UTC()}

	telemetry.Info("generation.started", map[string]any{
		"generation_id":   result.ID,
		"company":         req.Company,
		"wantCoverLetter": req.WantCoverLetter,
	})

	gen, err := s.llmClient.Generate(ctx, llm.GenerateInput{Messages: messages, Temperature: resumeTemperature})
	if err != nil {
		metrics.IncGenerationFailed()
		telemetry.Error("generation.llm_failed", map[string]any{
			"generation_id": result.ID,
			"err":           err.Error(),
		})
		return Result{}, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	result.Model = gen.Model
	result.Usage = gen.Usage
	metrics.AddTokensUsed(gen.Usage.TotalTokens)

	source, err := latex.ExtractDocument(gen.Text)
	if err != nil {
		metrics.IncGenerationFailed()
		telemetry.Error("generation.extract_failed", map[string]any{
			"generation_id": result.ID,
			"err":           err.Error(),
		})
		return Result{}, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	result.LatexSource = source

	compileStart := time.Now()
	compiled, err := s.compiler.Compile(ctx, source)
	metrics.ObserveCompileDurationMs(float64(time.Since(compileStart).Milliseconds()))
	if err != nil {
		result.Status = StatusCompileFailed
		var compileErr *latex.CompileError
		if errors.As(err, &compileErr) {
			result.CompilerLog = compileErr.Log
		}
		result.ElapsedSeconds = time.Since(start).Seconds()
		// Tokens were spent, so the run is recorded and the source kept.
		_ = s.saveArtifact(ctx, result.ID, ArtifactResumeTex, "application/x-tex", []byte(source))
		s.record(ctx, req, result)
		metrics.IncGenerationFailed()
		telemetry.Error("generation.compile_failed", map[string]any{
			"generation_id": result.ID,
			"err":           err.Error(),
		})
		return result, fmt.Errorf("%w: %w", ErrCompileFailed, err)
	}
	result.CompilerLog = compiled.Log

	if err := s.saveArtifact(ctx, result.ID, ArtifactResumeTex, "application/x-tex", []byte(source)); err != nil {
		metrics.IncGenerationFailed()
		return Result{}, err
	}
	if err := s.saveArtifact(ctx, result.ID, ArtifactResumePDF, "application/pdf", compiled.PDF); err != nil {
		metrics.IncGenerationFailed()
		return Result{}, err
	}
	result.ElapsedSeconds = time.Since(start).Seconds()

	if req.WantCoverLetter {
		s.generateCoverLetter(ctx, req, &result)
	}

	result.Status = StatusCompleted
	s.record(ctx, req, result)
	metrics.IncGenerationCompleted()
	metrics.ObserveGenerationDurationMs(float64(time.Since(start).Milliseconds()))
	telemetry.Info("generation.completed", map[string]any{
		"generation_id":  result.ID,
		"company":        req.Company,
		"model":          result.Model,
		"totalTokens":    result.Usage.TotalTokens,
		"elapsedSeconds": result.ElapsedSeconds,
		"coverLetter":    result.HasCoverLetterPDF,
	})
	return result, nil
}

// History returns the run log in insertion order.
func (s *Service) History(ctx context.Context) ([]RunRecord, error) {
	return s.repo.List(ctx)
}

// generateCoverLetter is best effort: failures are reported on the result
// without failing the run, since the resume already compiled.
func (s *Service) generateCoverLetter(ctx context.Context, req Request, result *Result) {
	start := time.Now()
	defer func() {
		result.CoverLetterSeconds = time.Since(start).Seconds()
	}()

	messages, err := llm.BuildCoverLetterPrompt(llm.CoverLetterPromptInput{
		Company:         req.Company,
		JobDescription:  req.JobDescription,
		ResumeTemplate:  s.profile.Template(),
		GeneratedResume: result.LatexSource,
	})
	if err != nil {
		result.CoverLetterError = err.Error()
		return
	}

	gen, err := s.llmClient.Generate(ctx, llm.GenerateInput{Messages: messages, Temperature: coverLetterTemperature})
	if err != nil {
		result.CoverLetterError = err.Error()
		telemetry.Warn("generation.cover_letter_llm_failed", map[string]any{
			"generation_id": result.ID,
			"err":           err.Error(),
		})
		return
	}
	result.Usage.PromptTokens += gen.Usage.PromptTokens
	result.Usage.CompletionTokens += gen.Usage.CompletionTokens
	result.Usage.TotalTokens += gen.Usage.TotalTokens
	metrics.AddTokensUsed(gen.Usage.TotalTokens)

	source, err := latex.ExtractDocument(gen.Text)
	if err != nil {
		result.CoverLetterError = err.Error()
		return
	}
	result.CoverLetterSource = source
	_ = s.saveArtifact(ctx, result.ID, ArtifactCoverLetterTex, "application/x-tex", []byte(source))

	compiled, err := s.compiler.Compile(ctx, source)
	if err != nil {
		result.CoverLetterError = err.Error()
		telemetry.Warn("generation.cover_letter_compile_failed", map[string]any{
			"generation_id": result.ID,
			"err":           err.Error(),
		})
		return
	}
	if err := s.saveArtifact(ctx, result.ID, ArtifactCoverLetterPDF, "application/pdf", compiled.PDF); err != nil {
		result.CoverLetterError = err.Error()
		return
	}
	result.HasCoverLetterPDF = true
}

func (s *Service) record(ctx context.Context, req Request, result Result) {
	rec := RunRecord{
		ID:                 result.ID,
		CreatedAt:          result.CreatedAt,
		Company:            req.Company,
		Status:             result.Status,
		Model:              result.Model,
		PromptTokens:       result.Usage.PromptTokens,
		CompletionTokens:   result.Usage.CompletionTokens,
		TotalTokens:        result.Usage.TotalTokens,
		ElapsedSeconds:     result.ElapsedSeconds,
		CoverLetterSeconds: result.CoverLetterSeconds,
	}
	if err := s.repo.Append(ctx, rec); err != nil {
		telemetry.Error("generation.record_failed", map[string]any{
			"generation_id": result.ID,
			"err":           err.Error(),
		})
	}
}

func (s *Service) saveArtifact(ctx context.Context, generationID, name, contentType string, data []byte) error {
	if _, err := s.store.SaveWithKey(ctx, ArtifactKey(generationID, name), contentType, bytes.NewReader(data)); err != nil {
		telemetry.Error("generation.artifact_save_failed", map[string]any{
			"generation_id": generationID,
			"artifact":      name,
			"err":           err.Error(),
		})
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}
