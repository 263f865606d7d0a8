package server

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/vreconcile/pkg/reconcile"
	"github.com/vango-dev/vreconcile/pkg/scenario"
)

// Stream message types.
const (
	MessageStep  = "step"
	MessageDone  = "done"
	MessageError = "error"
)

// StreamMessage is one message on a scenario stream: a step report per
// step, then either the final stats or an error.
type StreamMessage struct {
	Type  string               `json:"type"`
	Step  *scenario.StepReport `json:"step,omitempty"`
	Stats *reconcile.Stats     `json:"stats,omitempty"`
	Error *ErrorBody           `json:"error,omitempty"`
}

// handleStream runs a scenario and sends each step as soon as it is
// patched. Load errors are reported as plain HTTP errors before the
// upgrade.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.load(w, r)
	if !ok {
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	send := func(msg StreamMessage) error {
		data, err := json.Marshal(msg)
		if err != nil {
			return err
		}
		conn.SetWriteDeadline(time.Now().Add(s.config.WriteWait))
		return conn.WriteMessage(websocket.TextMessage, data)
	}

	report, err := s.runner.Run(r.Context(), sc, func(step scenario.StepReport) error {
		return send(StreamMessage{Type: MessageStep, Step: &step})
	})
	if err != nil {
		s.logger.Warn("scenario stream ended early", "scenario", sc.Name, "error", err)
		body := errorBody(err)
		send(StreamMessage{Type: MessageError, Error: &body})
	} else {
		send(StreamMessage{Type: MessageDone, Stats: &report.Stats})
	}

	conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
}
