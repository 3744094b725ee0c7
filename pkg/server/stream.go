package server

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"esfpc/fpcheck/pkg/flightplan"
	"esfpc/fpcheck/pkg/rules/engine"
)

const (
	streamReadTimeout  = 60 * time.Second
	streamWriteTimeout = 10 * time.Second
)

// StreamResponse is one message sent on /v1/check/stream.
type StreamResponse struct {
	Report *engine.Report `json:"report,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// handleStream checks every flight plan sent as a text message on the
// websocket and answers each with a StreamResponse, in order. ?explain=true
// applies to the whole connection.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	explain := r.URL.Query().Get("explain") == "true"

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WarnContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(s.config.MaxBodySize)

	for {
		_ = conn.SetReadDeadline(time.Now().Add(streamReadTimeout))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.WarnContext(r.Context(), "websocket read error", "error", err)
			}
			return
		}

		var resp StreamResponse
		fp, err := flightplan.Decode(bytes.NewReader(msg), flightplan.FormatJSON)
		if err != nil {
			resp.Error = err.Error()
		} else {
			rep, _ := s.check(r, fp, explain)
			resp.Report = &rep
		}

		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
		if err := conn.WriteJSON(resp); err != nil {
			s.logger.WarnContext(r.Context(), "websocket write error", "error", err)
			return
		}
	}
}
