package pipeline

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/voicelead/internal/config"
	"github.com/sells-group/voicelead/internal/model"
	"github.com/sells-group/voicelead/pkg/clickup"
	"github.com/sells-group/voicelead/pkg/gmail"
)

// Mailer delivers one HTML report to one recipient.
type Mailer interface {
	SendReport(ctx context.Context, recipient, subject, reportHTML string) error
}

// LeadStore appends one lead record to the configured CRM list.
type LeadStore interface {
	LogLead(ctx context.Context, lead model.LeadRecord) error
}

// GmailMailer implements Mailer on the Gmail API.
type GmailMailer struct {
	client gmail.Client
}

// NewGmailMailer creates a GmailMailer.
func NewGmailMailer(client gmail.Client) *GmailMailer {
	return &GmailMailer{client: client}
}

// SendReport implements Mailer.
func (m *GmailMailer) SendReport(ctx context.Context, recipient, subject, reportHTML string) error {
	_, err := m.client.SendHTML(ctx, recipient, subject, reportHTML)
	return err
}

// ClickUpLeadStore implements LeadStore by creating one task per lead on
// the configured list.
type ClickUpLeadStore struct {
	client clickup.Client
	cfg    config.ClickUpConfig
}

// NewClickUpLeadStore creates a ClickUpLeadStore.
func NewClickUpLeadStore(client clickup.Client, cfg config.ClickUpConfig) *ClickUpLeadStore {
	return &ClickUpLeadStore{client: client, cfg: cfg}
}

// LogLead implements LeadStore. Every call creates a new task; repeated
// analyses of the same URL are separate leads on purpose.
func (s *ClickUpLeadStore) LogLead(ctx context.Context, lead model.LeadRecord) error {
	name := lead.BusinessName
	if name == "" {
		name = lead.URL
	}

	req := clickup.TaskRequest{
		Name:        name,
		Description: lead.Description(),
	}

	addField := func(id string, value any) {
		if id == "" {
			return
		}
		req.CustomFields = append(req.CustomFields, clickup.CustomField{ID: id, Value: value})
	}
	addField(s.cfg.WebsiteFieldID, lead.URL)
	if lead.ContactEmail != "" {
		addField(s.cfg.EmailFieldID, lead.ContactEmail)
	}
	if lead.Phone != "" {
		addField(s.cfg.PhoneFieldID, lead.Phone)
	}
	if lead.Address != "" {
		addField(s.cfg.AddressFieldID, lead.Address)
	}
	if lead.ContactName != "" {
		addField(s.cfg.ContactFieldID, lead.ContactName)
	}

	_, err := s.client.CreateTask(ctx, s.cfg.ListID, req)
	return err
}

// Notifier runs the two independent side effects of a completed analysis:
// email delivery and CRM lead capture. Each may fail on its own; neither
// failure blocks the other or the voice summary.
type Notifier struct {
	mailer Mailer
	leads  LeadStore
}

// NewNotifier creates a Notifier.
func NewNotifier(mailer Mailer, leads LeadStore) *Notifier {
	return &Notifier{mailer: mailer, leads: leads}
}

// Notify sends the report (when a recipient is known) and logs the lead,
// concurrently. An absent recipient is a skip, not a failure.
func (n *Notifier) Notify(ctx context.Context, recipient, reportHTML string, lead model.LeadRecord) model.NotificationOutcome {
	var (
		mu      sync.Mutex
		outcome model.NotificationOutcome
	)
	record := func(errTag string, err error) {
		mu.Lock()
		defer mu.Unlock()
		outcome.Errors = append(outcome.Errors, fmt.Sprintf("%s:%v", errTag, err))
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if recipient == "" {
			return nil
		}
		subject := "AI Automation Opportunities Report - " + lead.BusinessName
		if err := n.mailer.SendReport(gCtx, recipient, subject, reportHTML); err != nil {
			zap.L().Warn("notify: email delivery failed",
				zap.String("recipient", recipient),
				zap.Error(err),
			)
			record("email", err)
			return nil
		}
		mu.Lock()
		outcome.EmailSent = true
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		if err := n.leads.LogLead(gCtx, lead); err != nil {
			zap.L().Warn("notify: lead capture failed",
				zap.String("url", lead.URL),
				zap.Error(err),
			)
			record("crm", err)
			return nil
		}
		mu.Lock()
		outcome.LeadLogged = true
		mu.Unlock()
		return nil
	})

	// Sub-operations never return errors; they record them instead.
	_ = g.Wait()

	return outcome
}
