package bootstrap

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/generations"
	"resume-builder/internal/latex"
	"resume-builder/internal/llm"
	openai "resume-builder/internal/llm/openai"
	"resume-builder/internal/profile"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/server"
	"resume-builder/internal/shared/storage/object"
	localstore "resume-builder/internal/shared/storage/object/local"
	s3store "resume-builder/internal/shared/storage/object/s3"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config             config.Config
	Router             *gin.Engine
	Store              object.ObjectStore
	Compiler           *latex.Compiler
	LLM                llm.Client
	ProfileService     *profile.Service
	GenerationsRepo    generations.Repo
	GenerationsService *generations.Service
	GenerationsHandler *generations.Handler
	ProfileHandler     *profile.Handler
	Health             *health.Service
}

// Build prepares all dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	store, err := buildStore(cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLMClient(cfg)
	if err != nil {
		return nil, err
	}

	compiler := latex.NewCompiler(cfg.LatexBin, cfg.LatexTimeout)
	profileSvc := profile.NewService(cfg.ResumeTemplatePath, cfg.ProfilePath)
	repo := generations.NewMemoryRepo()
	genSvc := generations.NewService(llmClient, compiler, store, repo, profileSvc, cfg.MaxJobDescriptionChars)

	app := &App{
		Config:             cfg,
		Store:              store,
		Compiler:           compiler,
		LLM:                llmClient,
		ProfileService:     profileSvc,
		GenerationsRepo:    repo,
		GenerationsService: genSvc,
		GenerationsHandler: generations.NewHandler(genSvc, store),
		ProfileHandler:     profile.NewHandler(profileSvc),
	}

	_, isPlaceholder := llmClient.(llm.PlaceholderClient)
	app.Health = health.NewService(cfg.Env, cfg.LatexBin, cfg.LLMProvider, !isPlaceholder)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:             cfg,
		GenerationsHandler: app.GenerationsHandler,
		ProfileHandler:     app.ProfileHandler,
		Health:             app.Health,
	})

	return app, nil
}

func buildStore(cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(context.Background(), cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildLLMClient(cfg config.Config) (llm.Client, error) {
	if cfg.LLMProvider != "openai" {
		return llm.PlaceholderClient{}, nil
	}
	if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: OPENAI_API_KEY empty; using placeholder client")
			return llm.PlaceholderClient{}, nil
		}
		return nil, fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=openai")
	}
	return openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.OpenAIBaseURL)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
