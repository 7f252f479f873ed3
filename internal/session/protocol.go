package session

import (
	"encoding/json"

	"github.com/postcraft/postcraft/backend-go/internal/engine"
)

type Message struct {
	Type     string          `json:"type"`
	CanvasID string          `json:"canvasId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	UserID   string          `json:"userId,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

const (
	// Connection
	TypeWelcome = "welcome"
	TypeError   = "error"

	// Editor commands and state
	TypeCmdApply  = "cmd.apply"
	TypeStateSync = "state.sync"

	// Code panel
	TypeCodeRequest = "code.request"
	TypeCodeSync    = "code.sync"
	TypeCodeIngest  = "code.ingest"

	// Presence
	TypePresenceUpdate = "presence.update"
)

type WelcomePayload struct {
	ClientID string        `json:"clientId"`
	State    *engine.State `json:"state"`
}

type StateSyncPayload struct {
	State *engine.State `json:"state"`
}

type CodeRequestPayload struct {
	Dialect string `json:"dialect"`
	Variant string `json:"variant,omitempty"`
}

type CodeSyncPayload struct {
	Dialect string `json:"dialect"`
	Variant string `json:"variant,omitempty"`
	Code    string `json:"code"`
}

type CodeIngestPayload struct {
	Source string `json:"source"`
}

type PresencePayload struct {
	Cursor      *CursorPos `json:"cursor,omitempty"`
	Selection   []string   `json:"selection,omitempty"`
	DisplayName string     `json:"displayName,omitempty"`
}

type CursorPos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
