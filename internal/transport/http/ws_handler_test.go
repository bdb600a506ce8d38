package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"testgenz-result-service/internal/app"
	"testgenz-result-service/internal/domain"
	"testgenz-result-service/internal/infra/memory"
	"testgenz-result-service/internal/scoring"
)

func TestWebSocketQuizFlow(t *testing.T) {
	store := memory.NewResultStore()
	service := newWSTestService(store)
	wsHandler := NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	server := httptest.NewServer(mux)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws?quizSlug=kepo-starter-test&userId=u1"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Expect started event first.
	_, payload := readNext(conn, t, "started")
	if id, _ := payload["attemptId"].(string); id == "" {
		t.Fatalf("expected attempt id in started payload, got %v", payload)
	}

	writeAnswer(conn, t, "q1", "A", 0)
	readNext(conn, t, "progress")

	// Go back and revise the first answer.
	if err := conn.WriteJSON(map[string]any{"type": "back"}); err != nil {
		t.Fatalf("write back: %v", err)
	}
	readNext(conn, t, "progress")
	writeAnswer(conn, t, "q1", "B", 0)
	readNext(conn, t, "progress")

	// Final answer yields the result identifier.
	writeAnswer(conn, t, "q2", "B", 1)
	_, resultMsg := readNext(conn, t, "result")
	resultID, _ := resultMsg["resultId"].(string)
	if resultID == "" {
		t.Fatalf("expected result id, got %v", resultMsg)
	}

	result, ok := store.GetResult(resultID)
	if !ok {
		t.Fatalf("result %s not persisted", resultID)
	}
	if result.Primary != "B" || result.Tally["B"] != 2 {
		t.Fatalf("unexpected persisted result %+v", result)
	}
	if len(store.Trail(resultID)) != 2 {
		t.Fatalf("expected 2 trail records, got %d", len(store.Trail(resultID)))
	}
}

func TestWebSocketUnknownQuiz(t *testing.T) {
	service := newWSTestService(memory.NewResultStore())
	server := httptest.NewServer(http.HandlerFunc(NewWSHandler(service).ServeWS))
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "?quizSlug=no-such-quiz&userId=u1"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	msgType, _ := readNext(conn, t, "error")
	if msgType != "error" {
		t.Fatalf("expected error, got %s", msgType)
	}
}

func writeAnswer(conn *websocket.Conn, t *testing.T, questionID, letter string, index int) {
	t.Helper()
	msg := map[string]any{
		"type": "answer",
		"payload": map[string]any{
			"questionId":    questionID,
			"optionLetter":  letter,
			"questionIndex": index,
		},
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write answer: %v", err)
	}
}

func readNext(conn *websocket.Conn, t *testing.T, expect string) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s (payload %v)", expect, msg.Type, msg.Payload)
	}
	return msg.Type, msg.Payload
}

func newWSTestService(store *memory.ResultStore) *app.ResultService {
	catalog := memory.NewCatalog(memory.NewStaticCatalogLoader(map[string]domain.Quiz{
		"kepo-starter-test": {
			ID:            "quiz-starter",
			Slug:          "kepo-starter-test",
			ScoringType:   domain.ScoringCategorical,
			QuestionCount: 2,
		},
	}), time.Minute)
	return app.NewResultService(memory.NewAttemptStore(), catalog, store, scoring.DefaultPillarTable())
}
