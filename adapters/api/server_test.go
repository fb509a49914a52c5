package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domain "crossval/domain/report"
	"crossval/internal"
	"crossval/internal/testkit"
)

func newTestServer() *Server {
	return NewServer(testkit.NewInMemoryReportRepository(), internal.NewLogger(internal.LogLevelError))
}

func postRun(t *testing.T, server *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/runs", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func classificationRunBody(folds int) string {
	// 8 samples of class 0, 2 of class 1
	features := make([]string, 0, 10)
	labels := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		label := "0"
		if i < 2 {
			label = "1"
		}
		features = append(features, fmt.Sprintf("[%d, %d]", i, i*2))
		labels = append(labels, label)
	}
	return fmt.Sprintf(`{
		"dataset": "api_test",
		"features": [%s],
		"labels": [%s],
		"folds": %d,
		"seed": 42,
		"model": "majority_class",
		"metric": "accuracy"
	}`, strings.Join(features, ","), strings.Join(labels, ","), folds)
}

func TestCreateRun_ReturnsReportWithSummary(t *testing.T) {
	server := newTestServer()
	rec := postRun(t, server, classificationRunBody(5))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Report  domain.Report `json:"report"`
		Summary struct {
			ScoredFolds int `json:"scored_folds"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if payload.Report.K != 5 || payload.Report.N != 10 {
		t.Errorf("report has n=%d k=%d, want n=10 k=5", payload.Report.N, payload.Report.K)
	}
	if payload.Report.Mean != 0.8 {
		t.Errorf("mean = %v, want 0.8", payload.Report.Mean)
	}
	if payload.Summary.ScoredFolds != 5 {
		t.Errorf("scored folds = %d, want 5", payload.Summary.ScoredFolds)
	}
	if payload.Report.RunID.String() == "" {
		t.Error("report is missing a run ID")
	}
}

func TestCreateRun_RunIsRetrievable(t *testing.T) {
	server := newTestServer()
	rec := postRun(t, server, classificationRunBody(5))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Report domain.Report `json:"report"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/runs/"+payload.Report.RunID.String(), nil)
	getRec := httptest.NewRecorder()
	server.Handler().ServeHTTP(getRec, req)

	if getRec.Code != http.StatusOK {
		t.Fatalf("GET status = %d, body = %s", getRec.Code, getRec.Body.String())
	}

	htmlReq := httptest.NewRequest(http.MethodGet, "/runs/"+payload.Report.RunID.String()+"/report", nil)
	htmlRec := httptest.NewRecorder()
	server.Handler().ServeHTTP(htmlRec, htmlReq)

	if htmlRec.Code != http.StatusOK {
		t.Fatalf("HTML status = %d", htmlRec.Code)
	}
	if !strings.Contains(htmlRec.Body.String(), "<table") {
		t.Error("HTML report is missing the fold table")
	}
}

func TestCreateRun_SingleFoldRejected(t *testing.T) {
	server := newTestServer()
	rec := postRun(t, server, classificationRunBody(1))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body = %s", rec.Code, rec.Body.String())
	}
}

func TestCreateRun_UnknownModelRejected(t *testing.T) {
	server := newTestServer()
	rec := postRun(t, server, `{"features": [[1]], "labels": [1], "folds": 2, "model": "gbm", "metric": "accuracy"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body = %s", rec.Code, rec.Body.String())
	}
}

func TestGetRun_UnknownIDIs404(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/runs/00000000-0000-0000-0000-000000000001", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body = %s", rec.Code, rec.Body.String())
	}
}

func TestGetRun_MalformedIDIs400(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/runs/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body = %s", rec.Code, rec.Body.String())
	}
}
