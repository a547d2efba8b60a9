package llm

import (
	"errors"
	"strings"
)

const (
	systemPromptResume      = "You are a professional resume writer. Respond with a complete LaTeX document only, inside a ```latex code block. No commentary outside the document."
	systemPromptCoverLetter = "You are a professional cover letter writer. Respond with a complete LaTeX document only, inside a ```latex code block. No commentary outside the document."
)

// Validation errors returned before any provider call is made.
var (
	ErrCompanyRequired        = errors.New("company name is required")
	ErrJobDescriptionRequired = errors.New("job description is required")
)

// ResumePromptInput holds everything interpolated into the resume prompt.
type ResumePromptInput struct {
	Company        string
	JobDescription string
	ResumeTemplate string
	ProfileJSON    string
}

// CoverLetterPromptInput holds everything interpolated into the cover letter prompt.
type CoverLetterPromptInput struct {
	Company         string
	JobDescription  string
	ResumeTemplate  string
	GeneratedResume string
}

// BuildResumePrompt composes the chat messages for a tailored resume request.
// Company and job description must be non-blank; both are embedded verbatim.
func BuildResumePrompt(in ResumePromptInput) ([]Message, error) {
	if strings.TrimSpace(in.Company) == "" {
		return nil, ErrCompanyRequired
	}
	if strings.TrimSpace(in.JobDescription) == "" {
		return nil, ErrJobDescriptionRequired
	}

	profile := in.ProfileJSON
	if strings.TrimSpace(profile) == "" {
		profile = "{}"
	}

	replacer := strings.NewReplacer(
		"{{COMPANY_NAME}}", in.Company,
		"{{JOB_DESCRIPTION}}", in.JobDescription,
		"{{CURRENT_LATEX_RESUME}}", in.ResumeTemplate,
		"{{PROFILE_JSON}}", profile,
	)

	return []Message{
		{Role: "system", Content: systemPromptResume},
		{Role: "user", Content: replacer.Replace(ResumePromptTemplate())},
	}, nil
}

// BuildCoverLetterPrompt composes the chat messages for a cover letter request.
func BuildCoverLetterPrompt(in CoverLetterPromptInput) ([]Message, error) {
	if strings.TrimSpace(in.Company) == "" {
		return nil, ErrCompanyRequired
	}
	if strings.TrimSpace(in.JobDescription) == "" {
		return nil, ErrJobDescriptionRequired
	}

	replacer := strings.NewReplacer(
		"{{COMPANY_NAME}}", in.Company,
		"{{JOB_DESCRIPTION}}", in.JobDescription,
		"{{CURRENT_LATEX_RESUME}}", in.ResumeTemplate,
		"{{GENERATED_RESUME}}", in.GeneratedResume,
	)

	return []Message{
		{Role: "system", Content: systemPromptCoverLetter},
		{Role: "user", Content: replacer.Replace(CoverLetterPromptTemplate())},
	}, nil
}
