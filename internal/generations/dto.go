package generations

import (
	"time"

	"resume-builder/internal/llm"
)

type createGenerationRequest struct {
	Company         string `json:"company"`
	JobDescription  string `json:"jobDescription"`
	WantCoverLetter bool   `json:"wantCoverLetter"`
}

type artifactLinks struct {
	ResumePDF      string `json:"resumePdf,omitempty"`
	ResumeTex      string `json:"resumeTex,omitempty"`
	CoverLetterPDF string `json:"coverLetterPdf,omitempty"`
	CoverLetterTex string `json:"coverLetterTex,omitempty"`
}

type generationResponse struct {
	ID                 string        `json:"id"`
	Status             Status        `json:"status"`
	Model              string        `json:"model"`
	LatexSource        string        `json:"latexSource"`
	CoverLetterSource  string        `json:"coverLetterSource,omitempty"`
	CoverLetterError   string        `json:"coverLetterError,omitempty"`
	Usage              llm.Usage     `json:"usage"`
	ElapsedSeconds     float64       `json:"elapsedSeconds"`
	CoverLetterSeconds float64       `json:"coverLetterSeconds,omitempty"`
	CreatedAt          time.Time     `json:"createdAt"`
	Artifacts          artifactLinks `json:"artifacts"`
}

type historyResponse struct {
	Runs []RunRecord `json:"runs"`
}

func artifactPath(generationID, name string) string {
	return "/api/v1/generations/" + generationID + "/artifacts/" + name
}

func toGenerationResponse(result Result) generationResponse {
	resp := generationResponse{
		ID:                 result.ID,
		Status:             result.Status,
		Model:              result.Model,
		LatexSource:        result.LatexSource,
		CoverLetterSource:  result.CoverLetterSource,
		CoverLetterError:   result.CoverLetterError,
		Usage:              result.Usage,
		ElapsedSeconds:     result.ElapsedSeconds,
		CoverLetterSeconds: result.CoverLetterSeconds,
		CreatedAt:          result.CreatedAt,
		Artifacts: artifactLinks{
			ResumePDF: artifactPath(result.ID, ArtifactResumePDF),
			ResumeTex: artifactPath(result.ID, ArtifactResumeTex),
		},
	}
	if result.CoverLetterSource != "" {
		resp.Artifacts.CoverLetterTex = artifactPath(result.ID, ArtifactCoverLetterTex)
	}
	if result.HasCoverLetterPDF {
		resp.Artifacts.CoverLetterPDF = artifactPath(result.ID, ArtifactCoverLetterPDF)
	}
	return resp
}
