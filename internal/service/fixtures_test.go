package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/importer"
	"github.com/alexanderramin/itinera/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testPlanFile holds plan A, which passes every rule on a $1000 budget, and
// plan B, which has no daily plans.
func testPlanFile(withRequirements bool) *importer.PlanFile {
	f := &importer.PlanFile{
		Destination: "Lisbon",
		Plans: []importer.PlanImport{
			*importer.FromPlan(testutil.NewTestPlan()),
			{PlanID: domain.PlanB, PlanName: "Empty"},
		},
	}
	if withRequirements {
		f.Requirements = &importer.RequirementsImport{
			Destination:  "Lisbon",
			StartDate:    "2026-05-01",
			DurationDays: domain.IntPtr(3),
			Budget:       importer.NewNumber(1000),
			Travelers:    domain.IntPtr(2),
		}
	}
	return f
}

func writePlanFile(t *testing.T, f *importer.PlanFile) string {
	t.Helper()
	data, err := json.Marshal(f)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "plans.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last(t *testing.T) UseCaseEvent {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.events)
	return o.events[len(o.events)-1]
}

type stubParser struct {
	err error
}

func (p *stubParser) ParseFeedback(context.Context, *domain.TravelPlan, string) ([]domain.ChangeRequest, error) {
	if p.err != nil {
		return nil, p.err
	}
	return []domain.ChangeRequest{{
		Type:        domain.ChangeRemove,
		Description: "Drop the last activity of day 1",
		Target:      "1",
	}}, nil
}

// dropLastReviser removes the last activity of day 1 and recomputes totals.
type dropLastReviser struct{}

func (dropLastReviser) Revise(_ context.Context, plan *domain.TravelPlan, _ []domain.ChangeRequest, _ *domain.UserRequirements) (*domain.TravelPlan, error) {
	revised := plan.Clone()
	acts := revised.DailyPlans[0].Activities
	revised.DailyPlans[0].Activities = acts[:len(acts)-1]
	importer.Recompute(revised)
	return revised, nil
}
