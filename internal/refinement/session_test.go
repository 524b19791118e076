package refinement

import (
	"testing"
	"time"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/testutil"
	"github.com/alexanderramin/itinera/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_CopiesPlan(t *testing.T) {
	plan := testutil.NewTestPlan()
	s := NewSession(plan, *testutil.NewTestRequirements(1000), domain.ValidationResult{PlanID: plan.PlanID, Status: domain.StatusApproved, Score: 100})

	plan.PlanName = "changed outside"
	plan.DailyPlans[0].Activities[0].Name = "changed outside"

	got := s.Plan()
	assert.Equal(t, "Balanced Explorer", got.PlanName)
	assert.NotEqual(t, "changed outside", got.DailyPlans[0].Activities[0].Name)
	assert.NotEmpty(t, s.ID())
	assert.Equal(t, "Lisbon", s.Header().Destination)
	assert.Equal(t, domain.PlanA, s.Header().PlanID)
}

func TestRestoreSession(t *testing.T) {
	original := testutil.NewTestPlan()
	created := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	header := domain.RefinementSession{
		ID:            "sess-1",
		PlanID:        original.PlanID,
		Destination:   "Lisbon",
		Requirements:  *testutil.NewTestRequirements(1000),
		Plan:          original,
		InitialStatus: domain.StatusApproved,
		InitialScore:  100,
		CreatedAt:     created,
	}

	t.Run("empty history keeps the original plan", func(t *testing.T) {
		s := RestoreSession(header, nil)
		assert.Equal(t, "sess-1", s.ID())
		assert.Equal(t, domain.StatusApproved, s.Result().Status)
		assert.Equal(t, 0, s.Iterations())
		assert.Equal(t, original, s.Plan())
		assert.Equal(t, created, s.Header().UpdatedAt)
	})

	t.Run("last entry becomes the current plan", func(t *testing.T) {
		revised := original.Clone()
		revised.PlanName = "Slower Explorer"
		at := created.Add(time.Hour)
		history := []domain.RefinementEntry{{
			ID:        "e1",
			SessionID: "sess-1",
			Sequence:  1,
			Timestamp: at,
			Feedback:  "slow down",
			Status:    domain.StatusApprovedWithWarnings,
			Score:     90,
			Plan:      revised,
		}}

		s := RestoreSession(header, history)
		require.Equal(t, 1, s.Iterations())
		assert.Equal(t, "Slower Explorer", s.Plan().PlanName)
		assert.Equal(t, domain.StatusApprovedWithWarnings, s.Result().Status)
		assert.Equal(t, 90.0, s.Result().Score)
		assert.Equal(t, at, s.Header().UpdatedAt)
		assert.Equal(t, "Balanced Explorer", s.Header().Plan.PlanName, "header keeps the starting plan")
	})
}

func TestSession_RevalidateRestoresIssues(t *testing.T) {
	plan := testutil.NewTestPlan()
	req := *testutil.NewTestRequirements(500)
	v := validation.NewValidator()
	live, err := v.ValidatePlan(plan, &req)
	require.NoError(t, err)
	require.NotEmpty(t, live.Issues)

	s := RestoreSession(domain.RefinementSession{
		ID:            "sess-1",
		PlanID:        plan.PlanID,
		Requirements:  req,
		Plan:          plan,
		InitialStatus: live.Status,
		InitialScore:  live.Score,
	}, nil)
	assert.Empty(t, s.Result().Issues, "persisted state has no issues")

	require.NoError(t, s.Revalidate(v))
	assert.Equal(t, live, s.Result())
	assert.Equal(t, live.Status, s.Header().InitialStatus)
}
