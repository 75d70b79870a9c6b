package pipeline

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"github.com/sells-group/voicelead/internal/model"
)

// ReportData is everything the renderer needs. GeneratedAt is an input so
// that identical inputs always produce byte-identical HTML.
type ReportData struct {
	Content     model.ExtractedContent
	Analysis    model.Analysis
	URL         string
	GeneratedAt time.Time
}

// RenderReport produces the HTML opportunity report. It is a total
// function: missing fields render as placeholders and it never fails, so
// the notifier always has something to send.
func RenderReport(data ReportData) string {
	view := buildReportView(data)

	var buf bytes.Buffer
	// The template only touches fields of reportView, so execution cannot
	// fail on well-typed data.
	_ = reportTemplate.Execute(&buf, view)
	return buf.String()
}

type reportView struct {
	Company       string
	Industry      string
	URL           string
	Services      string
	Technologies  string
	Generated     string
	Assessment    string
	NextSteps     string
	Opportunities []opportunityView
}

type opportunityView struct {
	Index          int
	Title          string
	Priority       string
	PriorityClass  string
	Description    string
	Impact         string
	Implementation string
}

func buildReportView(data ReportData) reportView {
	view := reportView{
		Company:      orPlaceholder(data.Content.BusinessName, "the business"),
		Industry:     titleCase(orPlaceholder(data.Content.Industry, "General")),
		URL:          data.URL,
		Services:     orPlaceholder(strings.Join(data.Content.Services, ", "), "Not specified"),
		Technologies: orPlaceholder(strings.Join(data.Content.Technologies, ", "), "Not specified"),
		Generated:    data.GeneratedAt.UTC().Format("January 2, 2006 at 3:04 PM MST"),
		Assessment:   orPlaceholder(data.Analysis.Assessment, "This business shows strong potential for automation."),
		NextSteps:    orPlaceholder(data.Analysis.NextSteps, "Contact our automation specialists to discuss implementation."),
	}

	for i, opp := range data.Analysis.Opportunities {
		priority := orPlaceholder(opp.Priority, "Medium")
		view.Opportunities = append(view.Opportunities, opportunityView{
			Index:          i + 1,
			Title:          orPlaceholder(opp.Title, "Automation Opportunity"),
			Priority:       priority,
			PriorityClass:  strings.ToLower(priority),
			Description:    orPlaceholder(opp.Description, "No description provided"),
			Impact:         orPlaceholder(opp.ImpactMetric, "Positive business impact expected"),
			Implementation: orPlaceholder(opp.Implementation, "Custom implementation approach"),
		})
	}

	return view
}

// titleCase upper-cases the first letter of an ASCII industry label.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>AI Automation Opportunities Report - {{.Company}}</title>
    <style>
        body { font-family: 'Segoe UI', Arial, sans-serif; margin: 0; padding: 20px; background: #f4f6fb; color: #333; }
        .container { max-width: 1000px; margin: 0 auto; background: white; border-radius: 15px; box-shadow: 0 10px 30px rgba(0,0,0,0.2); overflow: hidden; }
        .header { background: linear-gradient(135deg, #2c3e50 0%, #3498db 100%); color: white; padding: 40px; text-align: center; }
        .header h1 { margin: 0; font-size: 2.2em; font-weight: 300; }
        .content { padding: 40px; }
        .business-summary { background: #f8f9fa; padding: 25px; border-radius: 10px; margin-bottom: 30px; border-left: 5px solid #3498db; }
        .opportunity { border: 1px solid #e0e0e0; border-radius: 10px; padding: 25px; margin: 20px 0; }
        .opportunity h3 { color: #2c3e50; margin-top: 0; border-bottom: 2px solid #3498db; padding-bottom: 8px; }
        .priority { display: inline-block; padding: 4px 12px; border-radius: 15px; font-size: 0.85em; font-weight: bold; }
        .high { background: #e74c3c; color: white; }
        .medium { background: #f39c12; color: white; }
        .low { background: #95a5a6; color: white; }
        .metric { background: #ecf0f1; padding: 12px; border-radius: 6px; margin: 10px 0; }
        .assessment { background: #0984e3; color: white; padding: 25px; border-radius: 10px; margin: 25px 0; }
        .next-steps { background: #d5f4e6; border: 1px solid #27ae60; border-radius: 10px; padding: 20px; margin-top: 25px; }
        .footer { background: #2c3e50; color: white; text-align: center; padding: 20px; font-size: 0.9em; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Website Opportunities Report</h1>
            <p>Comprehensive Analysis for {{.Company}}</p>
            <p>Generated: {{.Generated}}</p>
        </div>
        <div class="content">
            <div class="business-summary">
                <h2>Business Overview</h2>
                <p><strong>Company:</strong> {{.Company}}</p>
                <p><strong>Industry:</strong> {{.Industry}}</p>
                <p><strong>Website:</strong> {{.URL}}</p>
                <p><strong>Services:</strong> {{.Services}}</p>
                <p><strong>Technologies:</strong> {{.Technologies}}</p>
            </div>
            <div class="assessment">
                <h2>Overall Assessment</h2>
                <p>{{.Assessment}}</p>
            </div>
            <h2>Automation Opportunities</h2>
{{- range .Opportunities}}
            <div class="opportunity">
                <h3>{{.Index}}. {{.Title}}</h3>
                <span class="priority {{.PriorityClass}}">{{.Priority}} Priority</span>
                <div class="metric"><strong>Description:</strong> {{.Description}}</div>
                <div class="metric"><strong>Expected Impact:</strong> {{.Impact}}</div>
                <div class="metric"><strong>Implementation:</strong> {{.Implementation}}</div>
            </div>
{{- end}}
            <div class="next-steps">
                <h3>Recommended Next Steps</h3>
                <p>{{.NextSteps}}</p>
            </div>
        </div>
        <div class="footer">
            <p>Report generated: {{.Generated}}</p>
        </div>
    </div>
</body>
</html>
`))
