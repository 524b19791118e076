package refinement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/importer"
	"github.com/alexanderramin/itinera/internal/llm"
)

// LLMRefiner implements FeedbackParser and PlanReviser on top of an LLM client.
// Revised plans pass through the importer exactly like generator output.
type LLMRefiner struct {
	client llm.LLMClient
}

var (
	_ FeedbackParser = (*LLMRefiner)(nil)
	_ PlanReviser    = (*LLMRefiner)(nil)
)

// NewLLMRefiner creates an LLMRefiner backed by client.
func NewLLMRefiner(client llm.LLMClient) *LLMRefiner {
	return &LLMRefiner{client: client}
}

type feedbackResponse struct {
	Changes []domain.ChangeRequest `json:"changes"`
}

func (r *LLMRefiner) ParseFeedback(ctx context.Context, plan *domain.TravelPlan, feedback string) ([]domain.ChangeRequest, error) {
	resp, err := r.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskParseFeedback,
		SystemPrompt: parseFeedbackSystemPrompt,
		UserPrompt:   buildParseFeedbackPrompt(plan, feedback),
	})
	if err != nil {
		return nil, fmt.Errorf("llm parse feedback failed: %w", err)
	}

	parsed, err := llm.ExtractJSON(resp.Text, validateFeedbackResponse)
	if err != nil {
		return nil, fmt.Errorf("extracting change requests: %w", err)
	}
	for i := range parsed.Changes {
		parsed.Changes[i].Type = domain.ChangeType(strings.ToLower(string(parsed.Changes[i].Type)))
	}
	return parsed.Changes, nil
}

// validateFeedbackResponse is a schema validator for ExtractJSON.
func validateFeedbackResponse(f feedbackResponse) error {
	if len(f.Changes) == 0 {
		return fmt.Errorf("no change requests")
	}
	for i, c := range f.Changes {
		if !domain.ValidChangeTypes[strings.ToLower(string(c.Type))] {
			return fmt.Errorf("changes[%d]: unknown type %q", i, c.Type)
		}
		if strings.TrimSpace(c.Description) == "" {
			return fmt.Errorf("changes[%d]: description is required", i)
		}
	}
	return nil
}

func (r *LLMRefiner) Revise(ctx context.Context, plan *domain.TravelPlan, changes []domain.ChangeRequest, req *domain.UserRequirements) (*domain.TravelPlan, error) {
	planJSON, err := json.MarshalIndent(importer.FromPlan(plan), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding plan: %w", err)
	}
	schema, err := importer.SchemaJSON(importer.PlanSchema())
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskRevisePlan,
		SystemPrompt: fmt.Sprintf(revisePlanSystemPrompt, schema),
		UserPrompt:   buildRevisePrompt(planJSON, changes, req),
	})
	if err != nil {
		return nil, fmt.Errorf("llm revise plan failed: %w", err)
	}

	obj, err := llm.ExtractJSONObject(resp.Text)
	if err != nil {
		return nil, fmt.Errorf("extracting revised plan: %w", err)
	}
	imp, err := importer.ParsePlan([]byte(obj))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrInvalidOutput, err)
	}

	// The revised plan always keeps the label of the plan being refined.
	imp.PlanID = plan.PlanID
	if errs := importer.ValidatePlanImport(imp); len(errs) > 0 {
		return nil, fmt.Errorf("%w: revised plan rejected: %w", llm.ErrInvalidOutput, errors.Join(errs...))
	}
	return importer.Convert(imp), nil
}
