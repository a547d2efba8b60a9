package health

import "os/exec"

// Service reports readiness of the external dependencies the pipeline needs.
type Service struct {
	env         string
	latexBinary string
	llmProvider string
	llmReady    bool
}

// Status is the health payload. OK reflects process liveness; the component
// fields tell an operator what a generation attempt would run into.
type Status struct {
	OK          bool   `json:"ok"`
	Env         string `json:"env"`
	Compiler    bool   `json:"compiler"`
	LLMProvider string `json:"llmProvider"`
	LLMReady    bool   `json:"llmReady"`
}

func NewService(env, latexBinary, llmProvider string, llmReady bool) *Service {
	return &Service{
		env:         env,
		latexBinary: latexBinary,
		llmProvider: llmProvider,
		llmReady:    llmReady,
	}
}

func (s *Service) Status() Status {
	_, err := exec.LookPath(s.latexBinary)
	return Status{
		OK:          true,
		Env:         s.env,
		Compiler:    err == nil,
		LLMProvider: s.llmProvider,
		LLMReady:    s.llmReady,
	}
}
