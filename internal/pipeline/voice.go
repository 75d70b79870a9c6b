package pipeline

import (
	"fmt"
	"strings"

	"github.com/sells-group/voicelead/internal/model"
)

// ComposeVoiceSummary builds the speakable text a voice agent reads to the
// caller. Plain sentences only: no markup, no JSON, no list syntax beyond
// spoken enumeration. It always enumerates exactly three opportunities.
func ComposeVoiceSummary(content model.ExtractedContent, analysis model.Analysis, outcome model.NotificationOutcome) string {
	var parts []string

	name := orPlaceholder(content.BusinessName, "the business")
	parts = append(parts, fmt.Sprintf("I've completed a comprehensive analysis of %s's website.", name))

	if content.Industry != "" && content.Industry != "unspecified" {
		parts = append(parts, fmt.Sprintf("They're in the %s industry.", content.Industry))
	}

	parts = append(parts, "I identified 3 key automation opportunities:")
	for i, opp := range analysis.Opportunities {
		if i >= requiredOpportunities {
			break
		}
		impact := orPlaceholder(opp.ImpactMetric, "significant business benefits")
		parts = append(parts, fmt.Sprintf("%d. %s - %s.", i+1, opp.Title, impact))
	}

	parts = append(parts, emailClause(content.ContactEmail, outcome))
	parts = append(parts, "The analysis has been completed and logged for follow-up.")

	return strings.Join(parts, " ")
}

// emailClause words the delivery status. It never claims a send that did
// not happen.
func emailClause(recipient string, outcome model.NotificationOutcome) string {
	switch {
	case outcome.EmailSent && recipient != "":
		return fmt.Sprintf("I've sent a detailed report to their email at %s.", recipient)
	case recipient != "":
		return fmt.Sprintf("I found their email %s but couldn't send the report automatically.", recipient)
	default:
		return "I couldn't find an email address on their website for automatic report delivery."
	}
}

// UnreachableSummary is spoken when even the fallback path cannot run, for
// example when the caller disconnects mid-analysis.
func UnreachableSummary(url string) string {
	return fmt.Sprintf("I encountered an error while analyzing the website %s. "+
		"This could be due to the website being temporarily unavailable or blocking automated access. "+
		"Please try again in a few minutes or with a different website.", url)
}
