package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/screener/internal/catalog"
	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/internal/screening"
	"github.com/wonny/screener/pkg/logger"
)

type fakeRunner struct {
	query string
	req   contracts.ScreeningRequest
	resp  *screening.Response
}

func (f *fakeRunner) Run(ctx context.Context, queryText string, req contracts.ScreeningRequest) *screening.Response {
	f.query = queryText
	f.req = req
	return f.resp
}

type fakeLister struct {
	limit int
	runs  []screening.Run
	err   error
}

func (f *fakeLister) ListRuns(ctx context.Context, limit int) ([]screening.Run, error) {
	f.limit = limit
	return f.runs, f.err
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestScreenHandler_Screen(t *testing.T) {
	runner := &fakeRunner{resp: &screening.Response{
		RunID:   uuid.New(),
		Mode:    contracts.ModePredefined,
		Outcome: "ok",
		Results: []contracts.ResultSet{{
			Mode:     contracts.ModePredefined,
			Screener: "day_gainers",
			Title:    "Day Gainers",
			Rows:     []contracts.Row{{"symbol": "AAPL", "shortName": "Apple Inc."}},
		}},
	}}
	h := NewScreenHandler(runner, logger.Nop())

	body := `{"query":"top gainers today","request":{"mode":"predefined","predefined_names":["day_gainers"]}}`
	rec := httptest.NewRecorder()
	h.Screen(rec, httptest.NewRequest(http.MethodPost, "/api/screen", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "top gainers today", runner.query)
	assert.Equal(t, contracts.ModePredefined, runner.req.Mode)
	assert.Equal(t, []string{"day_gainers"}, runner.req.PredefinedNames)

	var resp ScreenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, runner.resp.RunID, resp.RunID)
	assert.Equal(t, "ok", resp.Outcome)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "day_gainers", resp.Results[0].Tag)
	assert.Equal(t, "Screener Results: Day Gainers", resp.Results[0].Title)
	require.Len(t, resp.Results[0].Table.Rows, 1)
	assert.Equal(t, "AAPL", resp.Results[0].Table.Rows[0][0])
	assert.Empty(t, resp.Fallback)
}

func TestScreenHandler_Fallback(t *testing.T) {
	runner := &fakeRunner{resp: &screening.Response{
		RunID:    uuid.New(),
		Mode:     contracts.ModeEquity,
		Outcome:  "fallback",
		Fallback: "Here is what I found instead.",
		Err:      errors.New("backend down"),
	}}
	h := NewScreenHandler(runner, logger.Nop())

	rec := httptest.NewRecorder()
	h.Screen(rec, httptest.NewRequest(http.MethodPost, "/api/screen",
		strings.NewReader(`{"query":"cheap stocks","request":{"mode":"equity"}}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "fallback", body["outcome"])
	assert.Equal(t, "Here is what I found instead.", body["fallback"])
	assert.Empty(t, body["results"])
	assert.NotContains(t, rec.Body.String(), "backend down")
}

func TestScreenHandler_InvalidBody(t *testing.T) {
	runner := &fakeRunner{}
	h := NewScreenHandler(runner, logger.Nop())

	rec := httptest.NewRecorder()
	h.Screen(rec, httptest.NewRequest(http.MethodPost, "/api/screen", strings.NewReader("{not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decode(t, rec)["error"])
	assert.Empty(t, runner.query)
}

func TestResultTag(t *testing.T) {
	assert.Equal(t, "most_actives", resultTag(contracts.ResultSet{Mode: contracts.ModePredefined, Screener: "most_actives"}))
	assert.Equal(t, "fund", resultTag(contracts.ResultSet{Mode: contracts.ModeFund}))
}

func withVars(r *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(r, vars)
}

func TestCatalogHandler_ListScreeners(t *testing.T) {
	cat := catalog.Default()
	h := NewCatalogHandler(cat, logger.Nop())

	rec := httptest.NewRecorder()
	h.ListScreeners(rec, httptest.NewRequest(http.MethodGet, "/api/screeners", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, cat.Len(), body["count"])
	assert.Len(t, body["screeners"], cat.Len())
}

func TestCatalogHandler_GetScreener(t *testing.T) {
	h := NewCatalogHandler(catalog.Default(), logger.Nop())

	rec := httptest.NewRecorder()
	req := withVars(httptest.NewRequest(http.MethodGet, "/api/screeners/Day-Gainers", nil), map[string]string{"name": "Day-Gainers"})
	h.GetScreener(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "day_gainers", body["name"])
	assert.Equal(t, "EQUITY", body["quote_type"])

	query, ok := body["query"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "and", query["operator"])
	assert.NotEmpty(t, query["operands"])
}

func TestCatalogHandler_GetScreenerUnknown(t *testing.T) {
	h := NewCatalogHandler(catalog.Default(), logger.Nop())

	rec := httptest.NewRecorder()
	req := withVars(httptest.NewRequest(http.MethodGet, "/api/screeners/nope", nil), map[string]string{"name": "nope"})
	h.GetScreener(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "nope")
}

func TestCatalogHandler_ListFields(t *testing.T) {
	tests := []struct {
		mode   string
		status int
	}{
		{"equity", http.StatusOK},
		{"FUND", http.StatusOK},
		{"predefined", http.StatusBadRequest},
		{"bonds", http.StatusBadRequest},
	}

	h := NewCatalogHandler(catalog.Default(), logger.Nop())
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := withVars(httptest.NewRequest(http.MethodGet, "/api/fields/"+tt.mode, nil), map[string]string{"mode": tt.mode})
			h.ListFields(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.NotEmpty(t, decode(t, rec)["fields"])
			}
		})
	}
}

func TestRunsHandler_ListRuns(t *testing.T) {
	lister := &fakeLister{runs: []screening.Run{
		{ID: uuid.New(), Mode: contracts.ModeEquity, Outcome: "ok", RowCount: 3},
	}}
	h := NewRunsHandler(lister, logger.Nop())

	rec := httptest.NewRecorder()
	h.ListRuns(rec, httptest.NewRequest(http.MethodGet, "/api/runs?limit=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, lister.limit)
	assert.EqualValues(t, 1, decode(t, rec)["count"])
}

func TestRunsHandler_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler *RunsHandler
		url     string
		status  int
	}{
		{"disabled", NewRunsHandler(nil, logger.Nop()), "/api/runs", http.StatusServiceUnavailable},
		{"bad limit", NewRunsHandler(&fakeLister{}, logger.Nop()), "/api/runs?limit=abc", http.StatusBadRequest},
		{"limit too large", NewRunsHandler(&fakeLister{}, logger.Nop()), "/api/runs?limit=1000", http.StatusBadRequest},
		{"store error", NewRunsHandler(&fakeLister{err: errors.New("db down")}, logger.Nop()), "/api/runs", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.handler.ListRuns(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
