package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"testgenz-result-service/internal/app"
	"testgenz-result-service/internal/domain"
)

// WSHandler drives the interactive quiz-taking flow: one connection is one
// attempt. Answers arrive one at a time, "back" pops the latest one, and the
// final answer triggers scoring and persistence.
type WSHandler struct {
	service  *app.ResultService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.ResultService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	QuestionID    string `json:"questionId"`
	OptionLetter  string `json:"optionLetter"`
	QuestionIndex int    `json:"questionIndex"`
}

type startedPayload struct {
	AttemptID string       `json:"attemptId"`
	Progress  app.Progress `json:"progress"`
}

type resultPayload struct {
	ResultID string `json:"resultId"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the
// attempt use cases. The connection closing before the final answer abandons
// the attempt; a scoring or persistence failure closes the flow so the client
// restarts quiz-taking from the top.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	quizSlug := r.URL.Query().Get("quizSlug")
	userID := r.URL.Query().Get("userId")
	if quizSlug == "" || userID == "" {
		http.Error(w, "missing quizSlug or userId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	attempt, err := h.service.StartAttempt(r.Context(), userID, quizSlug)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}

	finished := false
	defer func() {
		if !finished {
			h.service.Abandon(attempt.ID())
		}
	}()

	_ = conn.WriteJSON(outboundMessage[startedPayload]{Type: "started", Payload: startedPayload{
		AttemptID: attempt.ID(),
		Progress:  attempt.Progress(),
	}})

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.writeError(conn, "invalid answer payload")
				continue
			}
			progress, resultID, err := h.service.SubmitAnswer(r.Context(), attempt.ID(), domain.Answer{
				QuestionID:    payload.QuestionID,
				OptionLetter:  payload.OptionLetter,
				QuestionIndex: payload.QuestionIndex,
			})
			switch {
			case errors.Is(err, domain.ErrInvalidOption), errors.Is(err, domain.ErrDuplicateQuestion):
				h.writeError(conn, err.Error())
			case err != nil:
				// Fatal: the attempt is gone, the client restarts from the top.
				h.writeError(conn, err.Error())
				return
			case resultID != "":
				finished = true
				_ = conn.WriteJSON(outboundMessage[resultPayload]{Type: "result", Payload: resultPayload{ResultID: resultID}})
				return
			default:
				_ = conn.WriteJSON(outboundMessage[app.Progress]{Type: "progress", Payload: progress})
			}
		case "back":
			progress, err := h.service.Back(attempt.ID())
			if err != nil {
				h.writeError(conn, err.Error())
				continue
			}
			_ = conn.WriteJSON(outboundMessage[app.Progress]{Type: "progress", Payload: progress})
		default:
			h.writeError(conn, "unsupported message type")
		}
	}
}

func (h *WSHandler) writeError(conn *websocket.Conn, message string) {
	_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: message}})
}
