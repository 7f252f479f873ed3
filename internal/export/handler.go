package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/postcraft/postcraft/backend-go/internal/codegen"
	"github.com/postcraft/postcraft/backend-go/internal/codeparse"
	"github.com/postcraft/postcraft/backend-go/internal/engine"
	"github.com/postcraft/postcraft/backend-go/internal/httpx"
	"github.com/postcraft/postcraft/backend-go/internal/scene"
	"github.com/postcraft/postcraft/backend-go/internal/store"
)

// Handler serves code downloads rendered from a canvas's latest snapshot.
type Handler struct {
	store store.Store
}

func NewHandler(st store.Store) *Handler {
	return &Handler{store: st}
}

type synthesizeRequest struct {
	Canvas  *scene.Canvas `json:"canvas"`
	Dialect string        `json:"dialect"`
	Variant string        `json:"variant,omitempty"`
}

type synthesizeResponse struct {
	Code string `json:"code"`
}

type ingestRequest struct {
	Source string `json:"source"`
}

type ingestResponse struct {
	Canvas *scene.Canvas `json:"canvas"`
}

// Download handles GET /export/{canvasId}?dialect=&variant=&name=.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	canvasID := mux.Vars(r)["canvasId"]
	dialect := codegen.Dialect(r.URL.Query().Get("dialect"))
	variant := codegen.Variant(r.URL.Query().Get("variant"))

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "design"
	}

	doc, err := h.store.LatestSnapshot(r.Context(), canvasID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		slog.Error("load snapshot", "error", err, "canvas", canvasID)
		httpx.Error(w, http.StatusInternalServerError, "failed to load canvas")
		return
	}

	snap := engine.DecodeSnapshot(doc)
	c := snap.CurrentCanvas
	if c == nil {
		c = scene.DefaultCanvas(canvasID)
	} else {
		c.Repair()
	}

	code := codegen.Synthesize(c, dialect, variant)
	filename := fmt.Sprintf("%s.%s", name, codegen.Extension(dialect, variant))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(code))
}

// Synthesize handles POST /api/synthesize for stateless code generation.
func (h *Handler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req synthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c := req.Canvas
	if c == nil {
		httpx.Error(w, http.StatusBadRequest, "canvas is required")
		return
	}
	c.Repair()

	code := codegen.Synthesize(c, codegen.Dialect(req.Dialect), codegen.Variant(req.Variant))
	httpx.JSON(w, http.StatusOK, synthesizeResponse{Code: code})
}

// Ingest handles POST /api/ingest for stateless code parsing.
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	httpx.JSON(w, http.StatusOK, ingestResponse{Canvas: codeparse.Ingest(req.Source)})
}

// LatestSnapshot handles GET /api/canvases/{canvasId}/snapshot.
func (h *Handler) LatestSnapshot(w http.ResponseWriter, r *http.Request) {
	canvasID := mux.Vars(r)["canvasId"]

	doc, err := h.store.LatestSnapshot(r.Context(), canvasID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "no snapshot for canvas")
			return
		}
		slog.Error("load snapshot", "error", err, "canvas", canvasID)
		httpx.Error(w, http.StatusInternalServerError, "failed to load snapshot")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}
