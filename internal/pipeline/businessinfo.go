package pipeline

import (
	"regexp"
	"strings"

	"github.com/sells-group/voicelead/internal/model"
)

var (
	emailPattern   = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,7}\b`)
	phonePattern   = regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	addressPattern = regexp.MustCompile(`(?i)\d+\s+[A-Za-z][A-Za-z\s]*(?:Street|St|Avenue|Ave|Road|Rd|Drive|Dr|Lane|Ln|Boulevard|Blvd|Way|Place|Pl)\b`)

	// Person names adjacent to a title, in either order.
	titleNamePattern = regexp.MustCompile(`(?:CEO|President|Founder|Director|Manager|Owner)[\s:]+([A-Z][a-z]+\s+[A-Z][a-z]+)`)
	nameTitlePattern = regexp.MustCompile(`([A-Z][a-z]+\s+[A-Z][a-z]+)[\s,]+(?:CEO|President|Founder|Director|Manager|Owner)`)

	servicePatterns = []*regexp.Regexp{
		regexp.MustCompile(`we (?:provide|offer|deliver|specialize in) ([^.!?\n]+)`),
		regexp.MustCompile(`our services include ([^.!?\n]+)`),
		regexp.MustCompile(`services:\s*([^.!?\n]+)`),
	}
)

// industryKeywords maps an industry label to markers in page text. Order
// matters: the first matching industry wins.
var industryKeywords = []struct {
	name     string
	keywords []string
}{
	{"technology", []string{"software", "tech", "digital", "app", "platform", "saas", "development"}},
	{"consulting", []string{"consulting", "advisory", "strategy", "expert", "professional services"}},
	{"ecommerce", []string{"shop", "store", "buy", "sell", "product", "ecommerce", "retail"}},
	{"healthcare", []string{"health", "medical", "doctor", "patient", "clinic", "hospital"}},
	{"finance", []string{"finance", "banking", "investment", "financial", "accounting"}},
	{"marketing", []string{"marketing", "advertising", "campaign", "brand", "promotion", "seo"}},
	{"education", []string{"education", "learning", "course", "training", "school"}},
	{"manufacturing", []string{"manufacturing", "production", "factory", "supply"}},
}

// techKeywords are technology markers surfaced verbatim into the lead record.
var techKeywords = []string{"ai", "automation", "crm", "erp", "analytics", "cloud", "api", "database"}

// nameStopwords filter person-name false positives.
var nameStopwords = []string{"dear", "business", "company", "team", "staff"}

// ParseBusinessInfo turns scraped markdown plus page metadata into
// ExtractedContent. It never fails: unparseable sections simply stay empty.
func ParseBusinessInfo(markdown, title, description string) *model.ExtractedContent {
	lower := strings.ToLower(markdown)

	content := &model.ExtractedContent{
		BusinessName: companyNameFromTitle(title),
		Industry:     detectIndustry(lower),
		Description:  description,
		RawText:      markdown,
		WordCount:    len(strings.Fields(markdown)),
	}

	if emails := dedupe(emailPattern.FindAllString(markdown, -1)); len(emails) > 0 {
		content.ContactEmail = emails[0]
	}
	content.Phones = capSlice(dedupe(phonePattern.FindAllString(markdown, -1)), 2)
	content.Addresses = capSlice(dedupe(addressPattern.FindAllString(markdown, -1)), 2)
	content.ContactNames = capSlice(extractContactNames(markdown), 2)
	content.Services = capSlice(extractServices(lower), 5)

	for _, tech := range techKeywords {
		if strings.Contains(lower, tech) {
			content.Technologies = append(content.Technologies, tech)
		}
	}

	return content
}

// companyNameFromTitle takes the segment of the page title before the first
// separator dash.
func companyNameFromTitle(title string) string {
	if title == "" {
		return ""
	}
	name, _, _ := strings.Cut(title, "-")
	return strings.TrimSpace(name)
}

func detectIndustry(lower string) string {
	for _, ind := range industryKeywords {
		for _, kw := range ind.keywords {
			if strings.Contains(lower, kw) {
				return ind.name
			}
		}
	}
	return "general"
}

func extractContactNames(text string) []string {
	var names []string
	for _, pattern := range []*regexp.Regexp{titleNamePattern, nameTitlePattern} {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			name := strings.TrimSpace(m[1])
			if name != "" && !containsStopword(name) {
				names = append(names, name)
			}
		}
	}
	return dedupe(names)
}

func containsStopword(name string) bool {
	lower := strings.ToLower(name)
	for _, w := range nameStopwords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func extractServices(lower string) []string {
	var services []string
	for _, pattern := range servicePatterns {
		for _, m := range pattern.FindAllStringSubmatch(lower, -1) {
			for _, s := range strings.Split(m[1], ",") {
				if s = strings.TrimSpace(s); s != "" {
					services = append(services, s)
				}
			}
		}
	}
	return dedupe(services)
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func capSlice(in []string, n int) []string {
	if len(in) > n {
		return in[:n]
	}
	return in
}
