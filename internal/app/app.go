// Package app wires configuration, storage and services into the objects the
// command line and the HTTP API run against.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/itinera/internal/config"
	"github.com/alexanderramin/itinera/internal/db"
	"github.com/alexanderramin/itinera/internal/llm"
	"github.com/alexanderramin/itinera/internal/refinement"
	"github.com/alexanderramin/itinera/internal/repository"
	"github.com/alexanderramin/itinera/internal/service"
	"github.com/alexanderramin/itinera/internal/validation"
)

// Services is the wired application.
type Services struct {
	Validations service.ValidationService
	Refinements service.RefinementService
	// LLMEnabled reports whether refinement has a language model to call.
	LLMEnabled bool

	db *sql.DB
}

// Build opens the database and wires every service from cfg.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Services, error) {
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	client, err := newLLMClient(ctx, cfg.LLM, logger)
	if err != nil {
		database.Close()
		return nil, err
	}

	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(logger)
	validator := validation.NewValidator(validation.WithWorkers(cfg.Workers))

	refiner := refinement.NewLLMRefiner(client)
	engine := refinement.NewEngine(refiner, refiner, validator, refinement.WithMaxIterations(cfg.MaxRefinements))

	return &Services{
		Validations: service.NewValidationService(
			validator,
			repository.NewSQLiteValidationRunRepo(database),
			uow,
			observer,
		),
		Refinements: service.NewRefinementService(
			engine,
			validator,
			repository.NewSQLiteRefinementRepo(database),
			uow,
			observer,
		),
		LLMEnabled: cfg.LLM.Enabled,
		db:         database,
	}, nil
}

// Close releases the database.
func (s *Services) Close() error {
	return s.db.Close()
}

func newLLMClient(ctx context.Context, cfg llm.LLMConfig, logger *slog.Logger) (llm.LLMClient, error) {
	var observer llm.Observer = llm.NoopObserver{}
	if cfg.LogCalls {
		observer = llm.NewLogObserver(logger)
	}
	client, err := llm.NewClient(ctx, cfg, observer)
	if err != nil {
		return nil, fmt.Errorf("configuring llm client: %w", err)
	}
	return client, nil
}
