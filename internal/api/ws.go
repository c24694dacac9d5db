package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/commitgate/commitgate/internal/analysis"
	"github.com/commitgate/commitgate/internal/diff"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 64,
	WriteBufferSize: 1024 * 64,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local dev; restrict in production
	},
}

// WebSocket message types from client.
const (
	wsMsgLoadDiff = "load_diff"
	wsMsgMessage  = "message"
	wsMsgEvaluate = "evaluate"
)

// WebSocket message types to client.
const (
	wsMsgParsed = "parsed"
	wsMsgReport = "report"
	wsMsgError  = "error"
)

// wsMessage is the envelope for WebSocket messages in both directions.
type wsMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// wsLoadDiffMsg is the payload for "load_diff" messages.
type wsLoadDiffMsg struct {
	Diff string `json:"diff"`
}

// wsMessageMsg is the payload for "message" messages. Each one carries
// the full commit message text, so clients can stream edits as the user
// types and always get a report for the latest draft.
type wsMessageMsg struct {
	Message string `json:"message"`
}

// wsEvaluateMsg is the payload for one-shot "evaluate" messages.
type wsEvaluateMsg struct {
	Diff    string `json:"diff"`
	Message string `json:"message"`
}

// wsParsedResponse is sent after a diff is loaded.
type wsParsedResponse struct {
	Session string        `json:"session"`
	Files   []fileJSON    `json:"files"`
	Stats   diffStatsJSON `json:"stats"`
}

// wsReportResponse is sent after an evaluation completes.
type wsReportResponse struct {
	Session string           `json:"session"`
	Report  *analysis.Report `json:"report"`
}

// evalSession holds the parsed diff for a WebSocket connection so that
// repeated "message" payloads re-evaluate without re-sending the diff.
type evalSession struct {
	id string
	ds *diff.DiffSet
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade", "err", err)
		return
	}
	defer conn.Close()

	session := &evalSession{}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Error("websocket read", "err", err)
			}
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			sendWSError(conn, "invalid message format")
			continue
		}

		switch msg.Type {
		case wsMsgLoadDiff:
			s.wsLoadDiff(conn, session, msg.Data)
		case wsMsgMessage:
			s.wsMessage(conn, session, msg.Data)
		case wsMsgEvaluate:
			s.wsEvaluate(conn, session, msg.Data)
		default:
			sendWSError(conn, "unknown message type: "+msg.Type)
		}
	}
}

func (s *Server) wsLoadDiff(conn *websocket.Conn, session *evalSession, data json.RawMessage) {
	var req wsLoadDiffMsg
	if err := json.Unmarshal(data, &req); err != nil {
		sendWSError(conn, "invalid load_diff data")
		return
	}

	if !s.loadSessionDiff(conn, session, req.Diff) {
		return
	}
	s.log.Info("ws diff loaded", "session", session.id, "files", len(session.ds.Files))
}

func (s *Server) wsMessage(conn *websocket.Conn, session *evalSession, data json.RawMessage) {
	if session.ds == nil {
		sendWSError(conn, "no diff loaded")
		return
	}

	var req wsMessageMsg
	if err := json.Unmarshal(data, &req); err != nil {
		sendWSError(conn, "invalid message data")
		return
	}

	rep := analysis.Evaluate(req.Message, session.ds, s.cfg)
	s.log.Debug("ws evaluated", "session", session.id, "score", rep.OverallScore)
	sendWSMessage(conn, wsMsgReport, wsReportResponse{Session: session.id, Report: rep})
}

func (s *Server) wsEvaluate(conn *websocket.Conn, session *evalSession, data json.RawMessage) {
	var req wsEvaluateMsg
	if err := json.Unmarshal(data, &req); err != nil {
		sendWSError(conn, "invalid evaluate data")
		return
	}

	if !s.loadSessionDiff(conn, session, req.Diff) {
		return
	}

	rep := analysis.Evaluate(req.Message, session.ds, s.cfg)
	s.log.Info("ws evaluated", "session", session.id, "files", len(session.ds.Files), "score", rep.OverallScore, "status", rep.Status)
	sendWSMessage(conn, wsMsgReport, wsReportResponse{Session: session.id, Report: rep})
}

// loadSessionDiff parses raw diff text into the session and sends the
// "parsed" response. It reports false after sending an error.
func (s *Server) loadSessionDiff(conn *websocket.Conn, session *evalSession, raw string) bool {
	ds, err := diff.Parse(raw)
	if err != nil {
		sendWSError(conn, "parsing diff: "+err.Error())
		return false
	}

	session.id = uuid.NewString()
	session.ds = ds

	parsed := wsParsedResponse{Session: session.id, Stats: diffStats(ds)}
	for _, f := range ds.Files {
		parsed.Files = append(parsed.Files, fileInfo(f))
	}
	sendWSMessage(conn, wsMsgParsed, parsed)
	return true
}

func sendWSMessage(conn *websocket.Conn, msgType string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		slog.Error("ws marshal", "err", err)
		return
	}
	msg := wsMessage{Type: msgType, Data: raw}
	if err := conn.WriteJSON(msg); err != nil {
		slog.Error("ws write", "err", err)
	}
}

func sendWSError(conn *websocket.Conn, errMsg string) {
	sendWSMessage(conn, wsMsgError, map[string]string{"message": errMsg})
}
