package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/voicelead/internal/model"
	"github.com/sells-group/voicelead/pkg/anthropic"
	"github.com/sells-group/voicelead/pkg/clickup"
	"github.com/sells-group/voicelead/pkg/firecrawl"
)

type mockContentProvider struct {
	mock.Mock
}

func (m *mockContentProvider) Extract(ctx context.Context, url string) (*model.ExtractedContent, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExtractedContent), args.Error(1)
}

type mockOpportunityModel struct {
	mock.Mock
}

func (m *mockOpportunityModel) Analyze(ctx context.Context, content model.ExtractedContent) (*model.Analysis, error) {
	args := m.Called(ctx, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Analysis), args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendReport(ctx context.Context, recipient, subject, reportHTML string) error {
	args := m.Called(ctx, recipient, subject, reportHTML)
	return args.Error(0)
}

type mockLeadStore struct {
	mock.Mock
}

func (m *mockLeadStore) LogLead(ctx context.Context, lead model.LeadRecord) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

type mockFirecrawlClient struct {
	mock.Mock
}

func (m *mockFirecrawlClient) Scrape(ctx context.Context, req firecrawl.ScrapeRequest) (*firecrawl.ScrapeResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*firecrawl.ScrapeResponse), args.Error(1)
}

type mockAnthropicClient struct {
	mock.Mock
}

func (m *mockAnthropicClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.MessageResponse), args.Error(1)
}

type mockClickUpClient struct {
	mock.Mock
}

func (m *mockClickUpClient) CreateTask(ctx context.Context, listID string, req clickup.TaskRequest) (*clickup.TaskResponse, error) {
	args := m.Called(ctx, listID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clickup.TaskResponse), args.Error(1)
}
