package refinement

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/llm"
)

type fakeParser struct {
	changes []domain.ChangeRequest
	err     error
	calls   atomic.Int32
}

func (f *fakeParser) ParseFeedback(_ context.Context, _ *domain.TravelPlan, _ string) ([]domain.ChangeRequest, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.ChangeRequest(nil), f.changes...), nil
}

type fakeReviser struct {
	fn func(plan *domain.TravelPlan) (*domain.TravelPlan, error)
}

func (f *fakeReviser) Revise(_ context.Context, plan *domain.TravelPlan, _ []domain.ChangeRequest, _ *domain.UserRequirements) (*domain.TravelPlan, error) {
	return f.fn(plan)
}

// dropLastActivity returns a copy of plan with the last activity of day 1 removed.
func dropLastActivity(plan *domain.TravelPlan) (*domain.TravelPlan, error) {
	revised := plan.Clone()
	acts := revised.DailyPlans[0].Activities
	revised.DailyPlans[0].Activities = acts[:len(acts)-1]
	return revised, nil
}

var removeChange = domain.ChangeRequest{
	Type:        domain.ChangeRemove,
	Description: "Drop the evening dinner on day 1",
	Target:      "1",
}

// mockLLMClient returns a canned response per task and records requests.
type mockLLMClient struct {
	mu        sync.Mutex
	responses map[llm.TaskType]string
	err       error
	requests  []llm.GenerateRequest
}

func (m *mockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.responses[req.Task], Model: "llama3.2"}, nil
}

func (m *mockLLMClient) Available(context.Context) bool { return m.err == nil }
