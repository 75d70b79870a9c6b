package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/voicelead/internal/config"
	"github.com/sells-group/voicelead/internal/model"
	"github.com/sells-group/voicelead/pkg/clickup"
)

func sampleLead() model.LeadRecord {
	return model.LeadRecord{
		URL:          "https://acme.example",
		BusinessName: "Acme Corp",
		Industry:     "technology",
		ContactEmail: "info@acme.example",
		Phone:        "555-123-4567",
	}
}

func TestNotifyBothSucceed(t *testing.T) {
	mailer := new(mockMailer)
	mailer.On("SendReport", mock.Anything, "info@acme.example",
		"AI Automation Opportunities Report - Acme Corp", "<html>").Return(nil)

	leads := new(mockLeadStore)
	leads.On("LogLead", mock.Anything, mock.Anything).Return(nil)

	outcome := NewNotifier(mailer, leads).Notify(context.Background(), "info@acme.example", "<html>", sampleLead())

	assert.True(t, outcome.EmailSent)
	assert.True(t, outcome.LeadLogged)
	assert.Empty(t, outcome.Errors)
	mailer.AssertExpectations(t)
	leads.AssertExpectations(t)
}

func TestNotifyNoRecipientSkipsEmail(t *testing.T) {
	mailer := new(mockMailer)
	leads := new(mockLeadStore)
	leads.On("LogLead", mock.Anything, mock.Anything).Return(nil)

	outcome := NewNotifier(mailer, leads).Notify(context.Background(), "", "<html>", sampleLead())

	assert.False(t, outcome.EmailSent)
	assert.True(t, outcome.LeadLogged)
	assert.Empty(t, outcome.Errors)
	mailer.AssertNotCalled(t, "SendReport", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNotifyEmailFailureDoesNotBlockLead(t *testing.T) {
	mailer := new(mockMailer)
	mailer.On("SendReport", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	leads := new(mockLeadStore)
	leads.On("LogLead", mock.Anything, mock.Anything).Return(nil)

	outcome := NewNotifier(mailer, leads).Notify(context.Background(), "info@acme.example", "<html>", sampleLead())

	assert.False(t, outcome.EmailSent)
	assert.True(t, outcome.LeadLogged)
	require.Len(t, outcome.Errors, 1)
	assert.Contains(t, outcome.Errors[0], "email:")
}

func TestNotifyBothFail(t *testing.T) {
	mailer := new(mockMailer)
	mailer.On("SendReport", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	leads := new(mockLeadStore)
	leads.On("LogLead", mock.Anything, mock.Anything).Return(assert.AnError)

	outcome := NewNotifier(mailer, leads).Notify(context.Background(), "info@acme.example", "<html>", sampleLead())

	assert.False(t, outcome.EmailSent)
	assert.False(t, outcome.LeadLogged)
	assert.Len(t, outcome.Errors, 2)
}

func TestClickUpLeadStoreLogLead(t *testing.T) {
	cfg := config.ClickUpConfig{
		ListID:         "901234",
		WebsiteFieldID: "field-website",
		EmailFieldID:   "field-email",
		PhoneFieldID:   "field-phone",
	}

	client := new(mockClickUpClient)
	client.On("CreateTask", mock.Anything, "901234", mock.MatchedBy(func(req clickup.TaskRequest) bool {
		if req.Name != "Acme Corp" {
			return false
		}
		fields := map[string]any{}
		for _, f := range req.CustomFields {
			fields[f.ID] = f.Value
		}
		return fields["field-website"] == "https://acme.example" &&
			fields["field-email"] == "info@acme.example" &&
			fields["field-phone"] == "555-123-4567"
	})).Return(&clickup.TaskResponse{ID: "t1"}, nil)

	store := NewClickUpLeadStore(client, cfg)
	require.NoError(t, store.LogLead(context.Background(), sampleLead()))
	client.AssertExpectations(t)
}

func TestClickUpLeadStoreFallsBackToURLName(t *testing.T) {
	client := new(mockClickUpClient)
	client.On("CreateTask", mock.Anything, "1", mock.MatchedBy(func(req clickup.TaskRequest) bool {
		return req.Name == "https://acme.example"
	})).Return(&clickup.TaskResponse{ID: "t1"}, nil)

	store := NewClickUpLeadStore(client, config.ClickUpConfig{ListID: "1"})
	lead := sampleLead()
	lead.BusinessName = ""
	require.NoError(t, store.LogLead(context.Background(), lead))
	client.AssertExpectations(t)
}

func TestClickUpLeadStoreSkipsUnconfiguredFields(t *testing.T) {
	client := new(mockClickUpClient)
	client.On("CreateTask", mock.Anything, "1", mock.MatchedBy(func(req clickup.TaskRequest) bool {
		return len(req.CustomFields) == 0
	})).Return(&clickup.TaskResponse{ID: "t1"}, nil)

	store := NewClickUpLeadStore(client, config.ClickUpConfig{ListID: "1"})
	require.NoError(t, store.LogLead(context.Background(), sampleLead()))
	client.AssertExpectations(t)
}
