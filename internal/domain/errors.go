package domain

import "fmt"

// MalformedPlanError reports a plan whose shape cannot be validated at all.
type MalformedPlanError struct {
	PlanID string
	Field  string
	Reason string
}

func (e *MalformedPlanError) Error() string {
	id := e.PlanID
	if id == "" {
		id = "<unknown>"
	}
	return fmt.Sprintf("malformed plan %s: %s: %s", id, e.Field, e.Reason)
}
