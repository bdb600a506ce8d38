package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"testgenz-result-service/internal/infra/memory"
)

func TestResultsHandlerSubmission(t *testing.T) {
	store := memory.NewResultStore()
	handler := NewResultsHandler(newWSTestService(store))

	body := `{
		"userId": "u1",
		"quizSlug": "kepo-starter-test",
		"answers": [
			{"questionId": "q1", "optionLetter": "A", "questionIndex": 0},
			{"questionId": "q2", "optionLetter": "B", "questionIndex": 1}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/results", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		ResultID string `json:"resultId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := store.GetResult(resp.ResultID); !ok {
		t.Fatalf("result %q not persisted", resp.ResultID)
	}
}

func TestResultsHandlerErrors(t *testing.T) {
	handler := NewResultsHandler(newWSTestService(memory.NewResultStore()))

	tests := []struct {
		name     string
		method   string
		body     string
		wantCode int
	}{
		{name: "unknown slug", method: http.MethodPost,
			body:     `{"userId":"u1","quizSlug":"nope","answers":[{"questionId":"q1","optionLetter":"A"}]}`,
			wantCode: http.StatusNotFound},
		{name: "wrong answer count", method: http.MethodPost,
			body:     `{"userId":"u1","quizSlug":"kepo-starter-test","answers":[{"questionId":"q1","optionLetter":"A"}]}`,
			wantCode: http.StatusBadRequest},
		{name: "missing fields", method: http.MethodPost, body: `{}`, wantCode: http.StatusBadRequest},
		{name: "invalid json", method: http.MethodPost, body: `{`, wantCode: http.StatusBadRequest},
		{name: "wrong method", method: http.MethodGet, body: "", wantCode: http.StatusMethodNotAllowed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/api/results", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d: %s", tc.wantCode, rec.Code, rec.Body.String())
			}
		})
	}
}
