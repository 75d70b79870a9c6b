package model

import "time"

// Stage identifies the orchestrator's position in the analysis pipeline.
// Transitions are strictly linear: Start → Extracting → Analyzing →
// Rendering → Notifying → Done. There are no backward edges.
type Stage string

const (
	StageStart      Stage = "start"
	StageExtracting Stage = "extracting"
	StageAnalyzing  Stage = "analyzing"
	StageRendering  Stage = "rendering"
	StageNotifying  Stage = "notifying"
	StageDone       Stage = "done"
)

// AnalysisRequest is a single inbound request to analyze a business website.
// It is created per call and discarded once the pipeline completes.
type AnalysisRequest struct {
	URL string `json:"url"`
}

// ExtractedContent holds the business information parsed from a scraped
// website. RawText is the full markdown content the scraper returned.
type ExtractedContent struct {
	BusinessName string   `json:"business_name"`
	Industry     string   `json:"industry"`
	Description  string   `json:"description"`
	ContactEmail string   `json:"contact_email,omitempty"`
	RawText      string   `json:"raw_text"`
	Services     []string `json:"services,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Phones       []string `json:"phones,omitempty"`
	Addresses    []string `json:"addresses,omitempty"`
	ContactNames []string `json:"contact_names,omitempty"`
	WordCount    int      `json:"word_count"`
}

// Opportunity is a single automation/conversion opportunity identified by
// the analyzer. ImpactMetric is free text, passed through verbatim; no
// arithmetic is ever performed on it.
type Opportunity struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	ImpactMetric   string `json:"impact"`
	Implementation string `json:"implementation,omitempty"`
	Priority       string `json:"priority,omitempty"`
}

// Analysis is the full analyzer output: exactly three opportunities plus
// the free-text assessment sections rendered into the report.
type Analysis struct {
	Opportunities []Opportunity `json:"opportunities"`
	Assessment    string        `json:"overall_assessment,omitempty"`
	NextSteps     string        `json:"recommended_next_steps,omitempty"`
}

// AnalysisResult is assembled incrementally by the orchestrator. Fields may
// hold fallback values when stages degrade; it is owned by exactly one
// pipeline run and never shared across requests.
type AnalysisResult struct {
	RunID        string              `json:"run_id"`
	URL          string              `json:"url"`
	Stage        Stage               `json:"stage"`
	Content      ExtractedContent    `json:"content"`
	Analysis     Analysis            `json:"analysis"`
	ReportHTML   string              `json:"report_html"`
	VoiceSummary string              `json:"voice_summary"`
	Notification NotificationOutcome `json:"notification"`
	StartedAt    time.Time           `json:"started_at"`
}

// NotificationOutcome records the side effects of the notify stage. It is
// never returned to the caller directly; it only shapes the voice summary's
// closing wording and server-side logs.
type NotificationOutcome struct {
	EmailSent  bool     `json:"email_sent"`
	LeadLogged bool     `json:"lead_logged"`
	Errors     []string `json:"errors,omitempty"`
}
