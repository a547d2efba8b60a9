package generations

import (
	"time"

	"resume-builder/internal/llm"
)

// Status of a finished pipeline run.
type Status string

const (
	StatusCompleted     Status = "completed"
	StatusCompileFailed Status = "compile_failed"
)

// Artifact names under a generation's storage prefix.
const (
	ArtifactResumePDF      = "resume.pdf"
	ArtifactResumeTex      = "resume.tex"
	ArtifactCoverLetterPDF = "cover_letter.pdf"
	ArtifactCoverLetterTex = "cover_letter.tex"
)

// ArtifactKey returns the object store key for a generation artifact.
func ArtifactKey(generationID, name string) string {
	return "generations/" + generationID + "/" + name
}

// Request describes a single tailoring run.
type Request struct {
	Company         string
	JobDescription  string
	WantCoverLetter bool
}

// Result is the outcome of a pipeline run, including partial data when the
// run failed after the provider call.
type Result struct {
	ID                 string
	Status             Status
	Model              string
	LatexSource        string
	CompilerLog        string
	CoverLetterSource  string
	CoverLetterError   string
	Usage              llm.Usage
	ElapsedSeconds     float64
	CoverLetterSeconds float64
	CreatedAt          time.Time
	HasCoverLetterPDF  bool
}

// RunRecord is the append-only per-run metrics entry kept for the session.
type RunRecord struct {
	ID                 string    `json:"id"`
	CreatedAt          time.Time `json:"createdAt"`
	Company            string    `json:"company"`
	Status             Status    `json:"status"`
	Model              string    `json:"model"`
	PromptTokens       int       `json:"promptTokens"`
	CompletionTokens   int       `json:"completionTokens"`
	TotalTokens        int       `json:"totalTokens"`
	ElapsedSeconds     float64   `json:"elapsedSeconds"`
	CoverLetterSeconds float64   `json:"coverLetterSeconds,omitempty"`
}
