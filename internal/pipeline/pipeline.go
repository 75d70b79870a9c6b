// Package pipeline turns a website URL into a voice-agent-ready summary by
// chaining four external services: scrape, analyze, email, lead capture.
// The orchestrator degrades gracefully: every stage failure except a
// structurally invalid request is absorbed by a fallback so the caller
// always gets speakable text.
package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/voicelead/internal/config"
	"github.com/sells-group/voicelead/internal/model"
)

// Orchestrator sequences the analysis stages for one request at a time.
// Concurrent requests share nothing but the clients and the last-report
// cache; each run owns its AnalysisResult exclusively.
type Orchestrator struct {
	provider ContentProvider
	analyzer OpportunityModel
	notifier *Notifier
	cfg      config.PipelineConfig
	now      func() time.Time

	mu   sync.Mutex
	last *cachedReport
}

// cachedReport keeps the most recent rendered report so a voice agent can
// ask for it to be re-sent when the caller supplies an email manually.
type cachedReport struct {
	BusinessName string
	ReportHTML   string
	GeneratedAt  time.Time
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(provider ContentProvider, analyzer OpportunityModel, notifier *Notifier, cfg config.PipelineConfig) *Orchestrator {
	return &Orchestrator{
		provider: provider,
		analyzer: analyzer,
		notifier: notifier,
		cfg:      cfg,
		now:      time.Now,
	}
}

// NormalizeURL validates and canonicalizes an inbound URL. A missing scheme
// gets https:// prepended; a string that is not URL-shaped at all is the
// single caller-fatal path.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &RequestError{Kind: RequestMissingField, Message: "url is required"}
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" || !strings.Contains(u.Host, ".") {
		return "", &RequestError{
			Kind:    RequestInvalidURL,
			Message: "that doesn't look like a valid website address",
		}
	}

	return u.String(), nil
}

// Run executes the full pipeline for one request. The only error it ever
// returns is a RequestError for input that is not URL-shaped; every other
// failure degrades into the returned summary.
func (o *Orchestrator) Run(ctx context.Context, req model.AnalysisRequest) (string, error) {
	target, err := NormalizeURL(req.URL)
	if err != nil {
		return "", err
	}

	result := &model.AnalysisResult{
		RunID:     uuid.NewString(),
		URL:       target,
		Stage:     model.StageStart,
		StartedAt: o.now().UTC(),
	}
	log := zap.L().With(zap.String("run_id", result.RunID), zap.String("url", target))
	log.Info("pipeline: starting analysis")

	// ===== Extracting =====
	result.Stage = model.StageExtracting
	content, extractErr := o.extract(ctx, target)
	if extractErr != nil {
		log.Warn("pipeline: extraction failed, using placeholder content",
			zap.String("stage", string(result.Stage)),
			zap.Error(extractErr),
		)
		content = PlaceholderContent()
	}
	result.Content = *content

	if ctx.Err() != nil {
		log.Warn("pipeline: abandoned", zap.String("stage", string(result.Stage)))
		return UnreachableSummary(target), nil
	}

	// ===== Analyzing =====
	result.Stage = model.StageAnalyzing
	analysis, analyzeErr := o.analyze(ctx, *content)
	if analyzeErr != nil {
		log.Warn("pipeline: analysis failed, using generic opportunities",
			zap.String("stage", string(result.Stage)),
			zap.Error(analyzeErr),
		)
		analysis = FallbackAnalysis()
	}
	result.Analysis = *analysis

	if ctx.Err() != nil {
		log.Warn("pipeline: abandoned", zap.String("stage", string(result.Stage)))
		return UnreachableSummary(target), nil
	}

	// ===== Rendering ===== (total: never fails)
	result.Stage = model.StageRendering
	result.ReportHTML = RenderReport(ReportData{
		Content:     *content,
		Analysis:    *analysis,
		URL:         target,
		GeneratedAt: o.now().UTC(),
	})
	o.cacheReport(content.BusinessName, result.ReportHTML)

	// ===== Notifying =====
	result.Stage = model.StageNotifying
	lead := buildLead(target, *content, *analysis, o.now().UTC())
	notifyCtx, cancel := context.WithTimeout(ctx, o.cfg.NotifyTimeout())
	result.Notification = o.notifier.Notify(notifyCtx, content.ContactEmail, result.ReportHTML, lead)
	cancel()

	// ===== Done =====
	result.Stage = model.StageDone
	result.VoiceSummary = ComposeVoiceSummary(*content, *analysis, result.Notification)

	log.Info("pipeline: analysis complete",
		zap.String("business", content.BusinessName),
		zap.String("industry", content.Industry),
		zap.Bool("email_sent", result.Notification.EmailSent),
		zap.Bool("lead_logged", result.Notification.LeadLogged),
		zap.Duration("elapsed", o.now().Sub(result.StartedAt)),
	)

	return result.VoiceSummary, nil
}

// ResendReport emails the most recent cached report to the given address.
// Used when no email was discoverable during analysis and the caller
// provides one over the phone.
func (o *Orchestrator) ResendReport(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", &RequestError{Kind: RequestMissingField, Message: "email is required"}
	}

	o.mu.Lock()
	last := o.last
	o.mu.Unlock()

	if last == nil {
		return "No recent analysis report found. Please run the website analysis first before sending a report.", nil
	}

	subject := "AI Automation Opportunities Report - " + last.BusinessName
	notifyCtx, cancel := context.WithTimeout(ctx, o.cfg.NotifyTimeout())
	defer cancel()

	if err := o.notifier.mailer.SendReport(notifyCtx, email, subject, last.ReportHTML); err != nil {
		zap.L().Warn("pipeline: resend failed", zap.String("recipient", email), zap.Error(err))
		return fmt.Sprintf("Failed to send the report to %s. Please check the email address and try again.", email), nil
	}

	return fmt.Sprintf("Successfully sent the automation report for %s to %s.", last.BusinessName, email), nil
}

func (o *Orchestrator) extract(ctx context.Context, target string) (*model.ExtractedContent, error) {
	extractCtx, cancel := context.WithTimeout(ctx, o.cfg.ExtractTimeout())
	defer cancel()
	return o.provider.Extract(extractCtx, target)
}

func (o *Orchestrator) analyze(ctx context.Context, content model.ExtractedContent) (*model.Analysis, error) {
	analyzeCtx, cancel := context.WithTimeout(ctx, o.cfg.AnalyzeTimeout())
	defer cancel()
	return o.analyzer.Analyze(analyzeCtx, content)
}

func (o *Orchestrator) cacheReport(businessName, reportHTML string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.last = &cachedReport{
		BusinessName: orPlaceholder(businessName, "the business"),
		ReportHTML:   reportHTML,
		GeneratedAt:  o.now().UTC(),
	}
}

// buildLead flattens the run's findings into one CRM record.
func buildLead(target string, content model.ExtractedContent, analysis model.Analysis, now time.Time) model.LeadRecord {
	lead := model.LeadRecord{
		URL:          target,
		BusinessName: orPlaceholder(content.BusinessName, "Unknown Business"),
		Industry:     orPlaceholder(content.Industry, "Unknown"),
		ContactEmail: content.ContactEmail,
		Services:     content.Services,
		Technologies: content.Technologies,
		CapturedAt:   now,
	}
	if len(content.Phones) > 0 {
		lead.Phone = content.Phones[0]
	}
	if len(content.Addresses) > 0 {
		lead.Address = content.Addresses[0]
	}
	if len(content.ContactNames) > 0 {
		lead.ContactName = content.ContactNames[0]
	}
	for _, opp := range analysis.Opportunities {
		lead.OpportunityTitle = append(lead.OpportunityTitle, opp.Title)
	}
	return lead
}
