package pipeline

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/voicelead/internal/config"
	"github.com/sells-group/voicelead/internal/model"
	"github.com/sells-group/voicelead/pkg/firecrawl"
)

// ContentProvider fetches a website and returns its parsed business content.
// Implementations make a single attempt: one failed scrape degrades the
// run, it does not abort it.
type ContentProvider interface {
	Extract(ctx context.Context, url string) (*model.ExtractedContent, error)
}

// FirecrawlExtractor implements ContentProvider on the Firecrawl scrape API.
type FirecrawlExtractor struct {
	client firecrawl.Client
	cfg    config.FirecrawlConfig
}

// NewFirecrawlExtractor creates a FirecrawlExtractor.
func NewFirecrawlExtractor(client firecrawl.Client, cfg config.FirecrawlConfig) *FirecrawlExtractor {
	return &FirecrawlExtractor{client: client, cfg: cfg}
}

// Extract scrapes one URL and parses the result into ExtractedContent.
func (f *FirecrawlExtractor) Extract(ctx context.Context, url string) (*model.ExtractedContent, error) {
	resp, err := f.client.Scrape(ctx, firecrawl.ScrapeRequest{
		URL:             url,
		Formats:         []string{"markdown"},
		OnlyMainContent: true,
		TimeoutMS:       f.cfg.TimeoutSecs * 1000,
	})
	if err != nil {
		return nil, &ExtractionError{Kind: classifyScrapeError(err), URL: url, Cause: err}
	}
	if !resp.Success {
		kind := ExtractUnreachable
		if isBlockedMessage(resp.Error) {
			kind = ExtractBlocked
		}
		return nil, &ExtractionError{Kind: kind, URL: url, Cause: errors.New(resp.Error)}
	}
	if strings.TrimSpace(resp.Data.Markdown) == "" {
		return nil, &ExtractionError{Kind: ExtractEmpty, URL: url}
	}

	content := ParseBusinessInfo(resp.Data.Markdown, resp.Data.Metadata.Title, resp.Data.Metadata.Description)

	zap.L().Debug("extract: scrape complete",
		zap.String("url", url),
		zap.String("business", content.BusinessName),
		zap.String("industry", content.Industry),
		zap.Int("word_count", content.WordCount),
	)

	return content, nil
}

// classifyScrapeError maps a transport or API failure to an extraction kind.
func classifyScrapeError(err error) ExtractionErrorKind {
	var apiErr *firecrawl.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 403 || isBlockedMessage(apiErr.Body):
			return ExtractBlocked
		case apiErr.StatusCode == 404:
			return ExtractUnreachable
		}
	}
	return ExtractUnreachable
}

// isBlockedMessage checks a Firecrawl error string for anti-bot markers.
func isBlockedMessage(msg string) bool {
	lower := strings.ToLower(msg)
	for _, marker := range []string{"blocked", "forbidden", "robots", "captcha", "cloudflare"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
