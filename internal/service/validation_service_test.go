package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/importer"
	"github.com/alexanderramin/itinera/internal/repository"
	"github.com/alexanderramin/itinera/internal/testutil"
	"github.com/alexanderramin/itinera/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidationService(t *testing.T, observers ...UseCaseObserver) (ValidationService, repository.ValidationRunRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	runs := repository.NewSQLiteValidationRunRepo(database)
	svc := NewValidationService(validation.NewValidator(), runs, testutil.NewTestUoW(database), observers...)
	return svc, runs
}

func TestValidateFile_ResultsInFileOrder(t *testing.T) {
	svc, _ := newValidationService(t)
	path := writePlanFile(t, testPlanFile(true))

	run, err := svc.ValidateFile(context.Background(), path, ValidateOptions{})
	require.NoError(t, err)

	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "Lisbon", run.Destination)
	assert.Equal(t, path, run.Source, "source defaults to the path")
	require.Len(t, run.Results, 2)

	a := run.Results[0]
	assert.Equal(t, domain.PlanA, a.PlanID)
	assert.Equal(t, domain.StatusApproved, a.Status)
	assert.Equal(t, 100.0, a.Score)

	b := run.Results[1]
	assert.Equal(t, domain.PlanB, b.PlanID)
	assert.Equal(t, domain.StatusNeedsRevision, b.Status)
	assert.Equal(t, 0.0, b.Score)
	require.Len(t, b.Issues, 1)
	assert.Contains(t, b.Issues[0].Problem, "daily_plans")
}

func TestValidateFile_SaveControlsPersistence(t *testing.T) {
	ctx := context.Background()
	svc, runs := newValidationService(t)
	path := writePlanFile(t, testPlanFile(true))

	_, err := svc.ValidateFile(ctx, path, ValidateOptions{})
	require.NoError(t, err)
	listed, err := runs.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, listed)

	run, err := svc.ValidateFile(ctx, path, ValidateOptions{Save: true, Source: "cli"})
	require.NoError(t, err)

	got, err := svc.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "cli", got.Source)
	require.Len(t, got.Results, 2)
	assert.Equal(t, run.Results[0].Score, got.Results[0].Score)
	assert.Equal(t, run.Results[1].Issues, got.Results[1].Issues)

	listed, err = svc.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, run.ID, listed[0].ID)
}

func TestValidatePlanFile_Overrides(t *testing.T) {
	svc, _ := newValidationService(t)
	f := testPlanFile(true)

	run, err := svc.ValidatePlanFile(context.Background(), f, ValidateOptions{
		Override: RequirementsOverride{Budget: 500, Destination: "Porto"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Porto", run.Destination)
	a := run.Results[0]
	assert.NotEqual(t, domain.StatusApproved, a.Status, "$900 plan on a $500 budget")
	assert.Less(t, a.Score, 100.0)

	assert.Equal(t, 1000.0, f.Requirements.Budget.Value, "caller's file is not modified")
	assert.Equal(t, "Lisbon", f.Destination)
}

func TestValidatePlanFile_BudgetOverrideWithoutRequirements(t *testing.T) {
	svc, _ := newValidationService(t)

	run, err := svc.ValidatePlanFile(context.Background(), testPlanFile(false), ValidateOptions{
		Override: RequirementsOverride{Budget: 500, DurationDays: 3},
	})
	require.NoError(t, err)
	assert.NotEqual(t, domain.StatusApproved, run.Results[0].Status)

	_, err = svc.ValidatePlanFile(context.Background(), testPlanFile(false), ValidateOptions{
		Override: RequirementsOverride{Budget: 500},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "duration_days")
}

func TestValidatePlanFile_DestinationOverrideWithoutRequirements(t *testing.T) {
	svc, _ := newValidationService(t)
	f := testPlanFile(false)
	f.Plans[0].Transportation.EstimatedDailyCost = importer.NewNumber(5000)

	run, err := svc.ValidatePlanFile(context.Background(), f, ValidateOptions{
		Override: RequirementsOverride{Destination: "Porto"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Porto", run.Destination)
	require.Len(t, run.Results, 1)
	for _, issue := range run.Results[0].Issues {
		assert.NotEqual(t, domain.CategoryBudget, issue.Category)
	}
}

func TestValidatePlanFile_NoRequirementsSkipsBudget(t *testing.T) {
	svc, _ := newValidationService(t)
	f := testPlanFile(false)
	f.Plans[0].Transportation.EstimatedDailyCost = importer.NewNumber(5000)

	run, err := svc.ValidatePlanFile(context.Background(), f, ValidateOptions{})
	require.NoError(t, err)
	for _, issue := range run.Results[0].Issues {
		assert.NotEqual(t, domain.CategoryBudget, issue.Category)
	}
}

func TestValidatePlanFile_RejectsFile(t *testing.T) {
	noPlans := testPlanFile(true)
	noPlans.Plans = nil

	dup := testPlanFile(true)
	dup.Plans[1].PlanID = domain.PlanA

	badBudget := testPlanFile(true)
	badBudget.Requirements.Budget = importer.Number{Set: true, Raw: "lots"}

	tests := []struct {
		name string
		file *importer.PlanFile
		want string
	}{
		{"no plans", noPlans, "at least one plan"},
		{"duplicate plan ids", dup, "duplicate plan_id"},
		{"unparsable budget", badBudget, "not a number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newValidationService(t)
			_, err := svc.ValidatePlanFile(context.Background(), tt.file, ValidateOptions{Save: true})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), "plan file rejected")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateFile_UnreadableFile(t *testing.T) {
	svc, _ := newValidationService(t)
	dir := t.TempDir()

	_, err := svc.ValidateFile(context.Background(), filepath.Join(dir, "missing.json"), ValidateOptions{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte("{plans:"), 0o644))
	_, err = svc.ValidateFile(context.Background(), garbage, ValidateOptions{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestValidatePlanFile_CancelledContext(t *testing.T) {
	svc, _ := newValidationService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ValidatePlanFile(ctx, testPlanFile(true), ValidateOptions{Save: true})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidatePlanFile_RollbackOnResultInsertFailure(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	runs := repository.NewSQLiteValidationRunRepo(database)

	// Exec 1 inserts the run, exec 2 and 3 insert the results.
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 3, Err: errors.New("disk full")}
	svc := NewValidationService(validation.NewValidator(), runs, uow)

	_, err := svc.ValidatePlanFile(ctx, testPlanFile(true), ValidateOptions{Save: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	listed, err := runs.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, listed, "the run row is rolled back with its results")
}

func TestValidatePlanFile_ObserverEvent(t *testing.T) {
	obs := &recordingObserver{}
	svc, _ := newValidationService(t, obs)

	run, err := svc.ValidatePlanFile(context.Background(), testPlanFile(true), ValidateOptions{Source: "api"})
	require.NoError(t, err)

	ev := obs.last(t)
	assert.Equal(t, "validate-plans", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, run.ID, ev.Fields["run_id"])
	assert.Equal(t, 2, ev.Fields["plan_count"])
	assert.Equal(t, 1, ev.Fields["rejected_count"])
	assert.Equal(t, domain.PlanA, ev.Fields["best_plan"])
	assert.Equal(t, "api", ev.Fields["source"])

	_, err = svc.ValidatePlanFile(context.Background(), &importer.PlanFile{}, ValidateOptions{})
	require.Error(t, err)
	ev = obs.last(t)
	assert.False(t, ev.Success)
	assert.ErrorIs(t, ev.Err, ErrInvalidInput)
}

func TestGetRun_NotFound(t *testing.T) {
	svc, _ := newValidationService(t)
	_, err := svc.GetRun(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
