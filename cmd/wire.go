package main

import (
	"time"

	"github.com/sells-group/voicelead/internal/config"
	"github.com/sells-group/voicelead/internal/pipeline"
	"github.com/sells-group/voicelead/pkg/anthropic"
	"github.com/sells-group/voicelead/pkg/clickup"
	"github.com/sells-group/voicelead/pkg/firecrawl"
	"github.com/sells-group/voicelead/pkg/gmail"
)

// buildOrchestrator constructs the pipeline with its real service clients.
func buildOrchestrator(cfg *config.Config) *pipeline.Orchestrator {
	fcClient := firecrawl.NewClient(cfg.Firecrawl.Key,
		firecrawl.WithBaseURL(cfg.Firecrawl.BaseURL),
		firecrawl.WithTimeout(time.Duration(cfg.Firecrawl.TimeoutSecs)*2*time.Second),
	)
	aiClient := anthropic.NewClient(cfg.Anthropic.Key)
	gmailClient := gmail.NewClient(gmail.Credentials{
		User:         cfg.Gmail.User,
		ClientID:     cfg.Gmail.ClientID,
		ClientSecret: cfg.Gmail.ClientSecret,
		RefreshToken: cfg.Gmail.RefreshToken,
	})
	cuClient := clickup.NewClient(cfg.ClickUp.Key,
		clickup.WithBaseURL(cfg.ClickUp.BaseURL),
		clickup.WithRateLimit(cfg.ClickUp.RateLimit),
	)

	extractor := pipeline.NewFirecrawlExtractor(fcClient, cfg.Firecrawl)
	analyzer := pipeline.NewClaudeAnalyzer(aiClient, cfg.Anthropic)
	notifier := pipeline.NewNotifier(
		pipeline.NewGmailMailer(gmailClient),
		pipeline.NewClickUpLeadStore(cuClient, cfg.ClickUp),
	)

	return pipeline.NewOrchestrator(extractor, analyzer, notifier, cfg.Pipeline)
}
