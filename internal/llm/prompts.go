package llm

import _ "embed"

var (
	//go:embed prompts/resume_v1.txt
	resumePromptV1 string
	//go:embed prompts/cover_letter_v1.txt
	coverLetterPromptV1 string
)

// ResumePromptTemplate returns the current resume generation template.
func ResumePromptTemplate() string {
	return resumePromptV1
}

// CoverLetterPromptTemplate returns the current cover letter template.
func CoverLetterPromptTemplate() string {
	return coverLetterPromptV1
}
