package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/importer"
	"github.com/alexanderramin/itinera/internal/refinement"
	"github.com/alexanderramin/itinera/internal/repository"
	"github.com/alexanderramin/itinera/internal/service"
	"github.com/alexanderramin/itinera/internal/testutil"
	"github.com/alexanderramin/itinera/internal/validation"
)

type testAPI struct {
	router      *gin.Engine
	refinements service.RefinementService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	validator := validation.NewValidator()
	validations := service.NewValidationService(validator, repository.NewSQLiteValidationRunRepo(database), uow)
	engine := refinement.NewEngine(nil, nil, validator)
	refinements := service.NewRefinementService(engine, validator, repository.NewSQLiteRefinementRepo(database), uow)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &testAPI{
		router:      NewRouter(NewHandler(validations, refinements), logger),
		refinements: refinements,
	}
}

func (a *testAPI) do(t *testing.T, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func planFileBody(t *testing.T) []byte {
	t.Helper()
	f := importer.PlanFile{
		Destination: "Lisbon",
		Requirements: &importer.RequirementsImport{
			DurationDays: domain.IntPtr(3),
			Budget:       importer.NewNumber(1000),
		},
		Plans: []importer.PlanImport{*importer.FromPlan(testutil.NewTestPlan())},
	}
	body, err := json.Marshal(f)
	require.NoError(t, err)
	return body
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCreateAndGetValidation(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/v1/validations", planFileBody(t))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode[domain.ValidationRun](t, w)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Lisbon", created.Destination)
	assert.Equal(t, "api", created.Source)
	require.Len(t, created.Results, 1)
	assert.Equal(t, domain.StatusApproved, created.Results[0].Status)

	w = api.do(t, http.MethodGet, "/v1/validations/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[domain.ValidationRun](t, w)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Results[0].Score, got.Results[0].Score)

	// snake_case keys on the wire
	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Contains(t, raw, "validated_at")
	result := raw["results"].([]any)[0].(map[string]any)
	assert.Contains(t, result, "plan_id")
	assert.Contains(t, result, "warnings")
}

func TestListValidations(t *testing.T) {
	api := newTestAPI(t)
	for range 3 {
		w := api.do(t, http.MethodPost, "/v1/validations", planFileBody(t))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := api.do(t, http.MethodGet, "/v1/validations?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	listed := decode[struct {
		Validations []domain.ValidationRun `json:"validations"`
	}](t, w)
	assert.Len(t, listed.Validations, 2)

	w = api.do(t, http.MethodGet, "/v1/validations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	listed = decode[struct {
		Validations []domain.ValidationRun `json:"validations"`
	}](t, w)
	assert.Len(t, listed.Validations, 3)
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   []byte
		status int
	}{
		{"unknown run", http.MethodGet, "/v1/validations/missing", nil, http.StatusNotFound},
		{"malformed json", http.MethodPost, "/v1/validations", []byte(`{"plans":`), http.StatusBadRequest},
		{"no plans", http.MethodPost, "/v1/validations", []byte(`{"destination":"Lisbon","plans":[]}`), http.StatusBadRequest},
		{"bad limit", http.MethodGet, "/v1/validations?limit=zero", nil, http.StatusBadRequest},
		{"negative limit", http.MethodGet, "/v1/validations?limit=-1", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			w := api.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)
			body := decode[map[string]string](t, w)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestRefinementEndpoints(t *testing.T) {
	api := newTestAPI(t)
	sess, err := api.refinements.Start(context.Background(), testutil.NewTestPlan(), *testutil.NewTestRequirements(1000))
	require.NoError(t, err)

	w := api.do(t, http.MethodGet, "/v1/refinements", nil)
	require.Equal(t, http.StatusOK, w.Code)
	listed := decode[struct {
		Sessions []domain.RefinementSession `json:"sessions"`
	}](t, w)
	require.Len(t, listed.Sessions, 1)
	assert.Equal(t, sess.ID(), listed.Sessions[0].ID)

	w = api.do(t, http.MethodGet, "/v1/refinements/"+sess.ID(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[struct {
		Session domain.RefinementSession  `json:"session"`
		Entries []domain.RefinementEntry `json:"entries"`
	}](t, w)
	assert.Equal(t, domain.PlanA, got.Session.PlanID)
	assert.Empty(t, got.Entries)

	w = api.do(t, http.MethodGet, "/v1/refinements/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlanSchema(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(t, http.MethodGet, "/v1/schema/plan", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/schema+json")

	schema := decode[map[string]any](t, w)
	assert.Equal(t, "Itinerary plan file", schema["title"])
	assert.Contains(t, schema["properties"], "plans")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(repository.ErrNotFound))
	assert.Equal(t, http.StatusBadRequest, statusFor(service.ErrInvalidInput))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, "127.0.0.1:0", http.NotFoundHandler(), logger)
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
