package model

import (
	"fmt"
	"strings"
	"time"
)

// LeadRecord is the sales follow-up record posted to the CRM after every
// analysis. Repeated analyses of the same URL create separate records;
// there is no deduplication.
type LeadRecord struct {
	URL              string    `json:"url"`
	BusinessName     string    `json:"business_name"`
	Industry         string    `json:"industry"`
	ContactEmail     string    `json:"contact_email,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	Address          string    `json:"address,omitempty"`
	ContactName      string    `json:"contact_name,omitempty"`
	Services         []string  `json:"services,omitempty"`
	Technologies     []string  `json:"technologies,omitempty"`
	OpportunityTitle []string  `json:"opportunity_titles"`
	CapturedAt       time.Time `json:"captured_at"`
}

// Description builds the human-readable CRM task body.
func (l LeadRecord) Description() string {
	var b strings.Builder
	b.WriteString("Lead from voice agent website analysis\n")
	fmt.Fprintf(&b, "Date: %s\n", l.CapturedAt.UTC().Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(&b, "Website: %s\n", l.URL)
	fmt.Fprintf(&b, "Industry: %s\n", l.Industry)
	if len(l.Services) > 0 {
		fmt.Fprintf(&b, "Services: %s\n", strings.Join(l.Services, ", "))
	}
	if len(l.Technologies) > 0 {
		fmt.Fprintf(&b, "Technologies: %s\n", strings.Join(l.Technologies, ", "))
	}
	if l.ContactEmail != "" {
		fmt.Fprintf(&b, "Email: %s\n", l.ContactEmail)
	}
	if l.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", l.Phone)
	}
	if l.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", l.Address)
	}
	if l.ContactName != "" {
		fmt.Fprintf(&b, "Contact: %s\n", l.ContactName)
	}
	if len(l.OpportunityTitle) > 0 {
		fmt.Fprintf(&b, "Opportunities: %s\n", strings.Join(l.OpportunityTitle, "; "))
	}
	return b.String()
}
