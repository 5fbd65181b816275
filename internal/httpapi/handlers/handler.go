package handlers

import (
	"context"

	"gorm.io/gorm"

	"github.com/interviewninja/backend/internal/ai"
	"github.com/interviewninja/backend/internal/config"
	"github.com/interviewninja/backend/internal/interview"
	"github.com/interviewninja/backend/internal/sandbox"
	"github.com/interviewninja/backend/internal/scrape"
	"github.com/interviewninja/backend/internal/speech"
	"github.com/interviewninja/backend/internal/store/rabbitmq"
	"github.com/interviewninja/backend/internal/store/redisstore"
)

type Handler struct {
	Cfg      config.Config
	Provider ai.Provider
	SessSvc  *interview.Service
	Archive  *interview.Archive
	Repo     *interview.Repo
	Speech   *speech.Client
	Scraper  *scrape.Scraper
	Sandbox  *sandbox.Client
	Rabbit   *rabbitmq.Publisher // nil disables async analysis
}

func NewHandler(db *gorm.DB, cfg config.Config, rds *redisstore.Store, rabbit *rabbitmq.Publisher) *Handler {
	reg := ai.NewProviderRegistry(ai.ProviderConfig{
		OpenAIBaseURL: cfg.OpenAIBaseURL,
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		OpenAIModel:   cfg.OpenAIModel,
		OllamaBaseURL: cfg.OllamaBaseURL,
		OllamaModel:   cfg.OllamaModel,
	})
	provider, err := reg.Get(context.Background(), cfg.AIProvider, "")
	if err != nil {
		panic(err)
	}

	var cache speech.ByteCache
	if rds != nil {
		cache = rds
	}
	tts := speech.NewClient(cfg.ElevenLabsBaseURL, cfg.ElevenLabsAPIKey, cache)
	repo := interview.NewRepo(db)

	return &Handler{
		Cfg:      cfg,
		Provider: provider,
		SessSvc:  interview.NewService(interview.NewStore(), provider, tts),
		Archive:  interview.NewArchive(repo),
		Repo:     repo,
		Speech:   tts,
		Scraper:  scrape.New(provider),
		Sandbox:  sandbox.New(cfg.PistonBaseURL),
		Rabbit:   rabbit,
	}
}
