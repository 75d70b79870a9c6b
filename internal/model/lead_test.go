package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLeadRecordDescription(t *testing.T) {
	lead := LeadRecord{
		URL:              "https://acme.example",
		BusinessName:     "Acme Corp",
		Industry:         "technology",
		ContactEmail:     "info@acme.example",
		Phone:            "555-123-4567",
		Address:          "123 Main Street",
		ContactName:      "Jane Smith",
		Services:         []string{"custom development", "cloud migration"},
		Technologies:     []string{"cloud", "api"},
		OpportunityTitle: []string{"Lead Intake Automation", "Invoice Follow-ups", "Reporting Dashboard"},
		CapturedAt:       time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC),
	}

	desc := lead.Description()

	assert.Contains(t, desc, "Lead from voice agent website analysis")
	assert.Contains(t, desc, "Date: 2026-03-15 14:30 UTC")
	assert.Contains(t, desc, "Website: https://acme.example")
	assert.Contains(t, desc, "Industry: technology")
	assert.Contains(t, desc, "Services: custom development, cloud migration")
	assert.Contains(t, desc, "Email: info@acme.example")
	assert.Contains(t, desc, "Contact: Jane Smith")
	assert.Contains(t, desc, "Opportunities: Lead Intake Automation; Invoice Follow-ups; Reporting Dashboard")
}

func TestLeadRecordDescriptionOmitsEmptySections(t *testing.T) {
	lead := LeadRecord{
		URL:        "https://acme.example",
		Industry:   "general",
		CapturedAt: time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC),
	}

	desc := lead.Description()

	assert.NotContains(t, desc, "Services:")
	assert.NotContains(t, desc, "Email:")
	assert.NotContains(t, desc, "Phone:")
	assert.NotContains(t, desc, "Opportunities:")
}
