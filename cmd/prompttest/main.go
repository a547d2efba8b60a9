package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"resume-builder/internal/extract"
	"resume-builder/internal/llm"
	"resume-builder/internal/profile"
	"resume-builder/internal/shared/config"
)

// prompttest prints the exact chat messages a generation would send, so
// prompt changes can be reviewed without spending provider tokens.
func main() {
	cfg := config.Load()

	company := flag.String("company", "", "Target company name")
	jdPath := flag.String("jd", "", "Path to a job description text file")
	resumePath := flag.String("resume", "", "Optional path to a resume file (pdf or docx) to import")
	coverLetter := flag.Bool("cover-letter", false, "Also print the cover letter prompt")
	flag.Parse()

	if strings.TrimSpace(*company) == "" {
		exitErr("company is required")
	}
	if strings.TrimSpace(*jdPath) == "" {
		exitErr("jd path is required")
	}

	jdBytes, err := os.ReadFile(*jdPath)
	if err != nil {
		exitErr(fmt.Sprintf("read job description: %v", err))
	}

	profileSvc := profile.NewService(cfg.ResumeTemplatePath, cfg.ProfilePath)
	if strings.TrimSpace(*resumePath) != "" {
		importResume(profileSvc, *resumePath)
	}

	messages, err := llm.BuildResumePrompt(llm.ResumePromptInput{
		Company:        *company,
		JobDescription: string(jdBytes),
		ResumeTemplate: profileSvc.Template(),
		ProfileJSON:    profileSvc.EffectiveProfileJSON(),
	})
	if err != nil {
		exitErr(fmt.Sprintf("build resume prompt: %v", err))
	}
	printMessages("resume", messages)

	if *coverLetter {
		messages, err := llm.BuildCoverLetterPrompt(llm.CoverLetterPromptInput{
			Company:         *company,
			JobDescription:  string(jdBytes),
			ResumeTemplate:  profileSvc.Template(),
			GeneratedResume: "(generated resume goes here)",
		})
		if err != nil {
			exitErr(fmt.Sprintf("build cover letter prompt: %v", err))
		}
		printMessages("cover letter", messages)
	}
}

func importResume(svc *profile.Service, path string) {
	mimeType, err := mimeFromExt(path)
	if err != nil {
		exitErr(err.Error())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		exitErr(fmt.Sprintf("read resume: %v", err))
	}
	text, err := extract.Text(data, mimeType, filepath.Base(path))
	if err != nil {
		exitErr(fmt.Sprintf("extract resume text: %v", err))
	}
	svc.SetSourceResumeText(text)
}

func printMessages(label string, messages []llm.Message) {
	fmt.Printf("==== %s prompt ====\n", label)
	for _, m := range messages {
		fmt.Printf("--- %s ---\n%s\n", m.Role, m.Content)
	}
}

func mimeFromExt(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf", nil
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document", nil
	default:
		return "", fmt.Errorf("unsupported resume file type: %s", filepath.Ext(path))
	}
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
