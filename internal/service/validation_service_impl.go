package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/itinera/internal/db"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/importer"
	"github.com/alexanderramin/itinera/internal/repository"
	"github.com/alexanderramin/itinera/internal/validation"
	"github.com/google/uuid"
)

type validationService struct {
	validator *validation.Validator
	runs      repository.ValidationRunRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewValidationService(
	validator *validation.Validator,
	runs repository.ValidationRunRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ValidationService {
	return &validationService{
		validator: validator,
		runs:      runs,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *validationService) ValidateFile(ctx context.Context, path string, opts ValidateOptions) (*domain.ValidationRun, error) {
	f, err := importer.LoadPlanFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if opts.Source == "" {
		opts.Source = path
	}
	return s.ValidatePlanFile(ctx, f, opts)
}

func (s *validationService) ValidatePlanFile(ctx context.Context, f *importer.PlanFile, opts ValidateOptions) (run *domain.ValidationRun, err error) {
	fields := map[string]any{
		"source": opts.Source,
		"save":   opts.Save,
	}
	done := track(ctx, s.observer, "validate-plans", fields)
	defer func() { done(err) }()

	f = applyOverride(f, opts.Override)
	if errs := importer.ValidatePlanFile(f); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	req, err := requirementsOf(f)
	if err != nil {
		return nil, err
	}

	imported := importer.ImportPlans(f)
	results := make([]domain.ValidationResult, len(imported))

	// Plans that failed to import get a failure result; the rest are
	// validated together and slotted back in file order.
	var plans []*domain.TravelPlan
	var slots []int
	for i, ip := range imported {
		if ip.Err != nil {
			results[i] = validation.FailureResult(ip.PlanID, ip.Err)
			continue
		}
		plans = append(plans, ip.Plan)
		slots = append(slots, i)
	}
	for j, res := range s.validator.ValidatePlans(ctx, plans, req) {
		results[slots[j]] = res
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	run = &domain.ValidationRun{
		ID:          uuid.New().String(),
		Destination: destinationOf(f, req),
		Source:      opts.Source,
		ValidatedAt: time.Now().UTC(),
		Results:     results,
	}
	fields["run_id"] = run.ID
	fields["plan_count"] = len(results)
	fields["rejected_count"] = len(imported) - len(plans)
	if best, ok := run.Best(); ok {
		fields["best_plan"] = best.PlanID
		fields["best_score"] = best.Score
	}

	if opts.Save {
		err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return repository.NewSQLiteValidationRunRepo(tx).Create(ctx, run)
		})
		if err != nil {
			return nil, fmt.Errorf("saving validation run: %w", err)
		}
	}
	return run, nil
}

func (s *validationService) GetRun(ctx context.Context, id string) (*domain.ValidationRun, error) {
	return s.runs.GetByID(ctx, id)
}

func (s *validationService) ListRuns(ctx context.Context, limit int) ([]*domain.ValidationRun, error) {
	return s.runs.List(ctx, limit)
}
