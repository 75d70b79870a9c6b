package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/voicelead/internal/config"
	"github.com/sells-group/voicelead/internal/model"
	"github.com/sells-group/voicelead/pkg/anthropic"
)

// OpportunityModel produces exactly three automation opportunities for a
// business. Single attempt; a malformed model response is an AnalysisError,
// never a retry.
type OpportunityModel interface {
	Analyze(ctx context.Context, content model.ExtractedContent) (*model.Analysis, error)
}

// maxContentChars bounds how much raw page text is embedded in the prompt.
const maxContentChars = 2500

const analyzeSystemPrompt = `You are an expert business automation consultant. ` +
	`Provide detailed, practical automation recommendations in valid JSON format only.`

const analyzePrompt = `Review the BUSINESS INFORMATION and WEBSITE CONTENT below. Identify exactly 3 specific automation opportunities that are practical to implement, aligned with the business model and audience, and aimed at measurable outcomes.

BUSINESS INFORMATION:

Company: %s

Industry: %s

Services: %s

Technologies: %s

WEBSITE CONTENT:
%s

ANALYSIS REQUIREMENTS:

Deliver exactly 3 automation opportunities. For each opportunity state what to change and why it matters in plain business terms. "implementation" lists 3-5 simple steps. "impact" gives a quantified estimate (a percentage or time-savings figure). Sort by "priority" (High, then Medium, then Low). If information is missing, note reasonable assumptions in "overall_assessment".

Return ONLY valid JSON in this exact format:
{
"opportunities": [
{
"title": "Specific opportunity",
"description": "What exactly changes and why it matters.",
"impact": "Quantified business benefit.",
"implementation": "3-5 simple steps.",
"priority": "High/Medium/Low"
}
],
"overall_assessment": "Short assessment of automation readiness, gaps, and assumptions.",
"recommended_next_steps": "Specific next steps."
}`

// requiredOpportunities is the invariant count the voice summary enumerates.
const requiredOpportunities = 3

// ClaudeAnalyzer implements OpportunityModel on the Anthropic API.
type ClaudeAnalyzer struct {
	client anthropic.Client
	cfg    config.AnthropicConfig
}

// NewClaudeAnalyzer creates a ClaudeAnalyzer.
func NewClaudeAnalyzer(client anthropic.Client, cfg config.AnthropicConfig) *ClaudeAnalyzer {
	return &ClaudeAnalyzer{client: client, cfg: cfg}
}

// Analyze prompts the model and parses its output into exactly three
// opportunities.
func (a *ClaudeAnalyzer) Analyze(ctx context.Context, content model.ExtractedContent) (*model.Analysis, error) {
	if strings.TrimSpace(content.RawText) == "" {
		return nil, &AnalysisError{Kind: AnalysisInsufficientContent}
	}

	prompt := fmt.Sprintf(analyzePrompt,
		orPlaceholder(content.BusinessName, "Unknown"),
		orPlaceholder(content.Industry, "General"),
		strings.Join(content.Services, ", "),
		strings.Join(content.Technologies, ", "),
		truncate(content.RawText, maxContentChars),
	)

	temp := 0.7
	resp, err := a.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       a.cfg.Model,
		MaxTokens:   a.cfg.MaxTokens,
		System:      analyzeSystemPrompt,
		Messages:    []anthropic.Message{{Role: "user", Content: prompt}},
		Temperature: &temp,
	})
	if err != nil {
		return nil, &AnalysisError{Kind: AnalysisMalformedOutput, Cause: err}
	}
	resp.Usage.LogUsage(a.cfg.Model, "analyze")

	analysis, err := ParseAnalysis(resp.Text())
	if err != nil {
		return nil, &AnalysisError{Kind: AnalysisMalformedOutput, Cause: err}
	}
	return analysis, nil
}

// ParseAnalysis extracts the JSON object from a model response and validates
// the three-opportunity invariant. Extra opportunities beyond three are
// dropped; fewer than three is malformed.
func ParseAnalysis(text string) (*model.Analysis, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, eris.New("no JSON object in model response")
	}

	var analysis model.Analysis
	if err := json.Unmarshal([]byte(text[start:end+1]), &analysis); err != nil {
		return nil, eris.Wrap(err, "decode analysis")
	}

	if len(analysis.Opportunities) < requiredOpportunities {
		return nil, eris.Errorf("expected %d opportunities, got %d", requiredOpportunities, len(analysis.Opportunities))
	}
	analysis.Opportunities = analysis.Opportunities[:requiredOpportunities]

	for i, opp := range analysis.Opportunities {
		if strings.TrimSpace(opp.Title) == "" {
			return nil, eris.Errorf("opportunity %d has no title", i+1)
		}
	}

	return &analysis, nil
}

func orPlaceholder(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	// Cut on a rune boundary.
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}
