package pipeline

import "github.com/sells-group/voicelead/internal/model"

// PlaceholderContent is substituted when extraction fails so the run can
// continue through every remaining stage.
func PlaceholderContent() *model.ExtractedContent {
	return &model.ExtractedContent{
		BusinessName: "the business",
		Industry:     "unspecified",
		RawText:      "",
	}
}

// FallbackAnalysis is substituted when the analyzer fails. The three
// opportunities are domain-agnostic but keep the exactly-three invariant the
// voice summary enumerates.
func FallbackAnalysis() *model.Analysis {
	return &model.Analysis{
		Opportunities: []model.Opportunity{
			{
				Title:          "Process Automation",
				Description:    "Automate repetitive manual workflows such as data entry, scheduling, and follow-ups.",
				ImpactMetric:   "typically saves 5-10 hours per week",
				Implementation: "Map the most repetitive workflows, pick one to pilot, automate it end to end, then expand.",
				Priority:       "High",
			},
			{
				Title:          "Customer Communication",
				Description:    "Introduce automated responses and follow-up sequences for inbound inquiries.",
				ImpactMetric:   "faster response times and higher conversion on inquiries",
				Implementation: "Define common inquiry types, draft response templates, wire them to the inbox, review weekly.",
				Priority:       "Medium",
			},
			{
				Title:          "Data Insights",
				Description:    "Consolidate scattered business data into a single dashboard for decision making.",
				ImpactMetric:   "better visibility into performance trends",
				Implementation: "List the key metrics, centralize their sources, build one dashboard, review monthly.",
				Priority:       "Medium",
			},
		},
		Assessment: "A detailed automated review was not possible, so these are general recommendations that apply to most businesses.",
		NextSteps:  "Schedule a consultation to identify the highest-impact opportunity for this specific business.",
	}
}
