package media

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/postcraft/postcraft/backend-go/internal/engine"
	"github.com/postcraft/postcraft/backend-go/internal/httpx"
	"github.com/postcraft/postcraft/backend-go/internal/store"
	"github.com/postcraft/postcraft/backend-go/internal/typeid"
)

const maxUploadSize = 25 << 20 // 25MB

var extByType = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"video/mp4":  ".mp4",
	"video/webm": ".webm",
}

// Handler serves media upload, listing, and retrieval endpoints.
type Handler struct {
	dir   string
	store store.Store
}

func NewHandler(dir string, st store.Store) *Handler {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Error("create media dir", "error", err, "dir", dir)
	}
	return &Handler{dir: dir, store: st}
}

// Upload handles POST /media/upload (multipart form with "file" field).
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httpx.Error(w, http.StatusBadRequest, "file too large (max 25MB)")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	ext, ok := extByType[contentType]
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "unsupported media type")
		return
	}

	item := engine.MediaItem{
		ID:        typeid.NewMediaID(),
		Name:      header.Filename,
		Size:      header.Size,
		CreatedAt: time.Now().UnixMilli(),
	}

	if strings.HasPrefix(contentType, "image/") {
		item.Type = "image"
		cfg, _, err := image.DecodeConfig(file)
		if err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid image: "+err.Error())
			return
		}
		item.Width = cfg.Width
		item.Height = cfg.Height
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			httpx.Error(w, http.StatusInternalServerError, "failed to read file")
			return
		}
	} else {
		// Videos are stored as-is; the client reads dimensions on load.
		item.Type = "video"
	}

	filename := item.ID + ext
	path := filepath.Join(h.dir, filename)
	if err := writeFile(path, file); err != nil {
		slog.Error("save media file", "error", err)
		httpx.Error(w, http.StatusInternalServerError, "failed to save file")
		return
	}
	item.URL = "/media/" + filename

	if err := h.store.PutMedia(r.Context(), item); err != nil {
		slog.Error("record media", "error", err)
		os.Remove(path)
		httpx.Error(w, http.StatusInternalServerError, "failed to record media")
		return
	}

	httpx.JSON(w, http.StatusOK, item)
}

// List handles GET /media.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListMedia(r.Context())
	if err != nil {
		slog.Error("list media", "error", err)
		httpx.Error(w, http.StatusInternalServerError, "failed to list media")
		return
	}
	if items == nil {
		items = []engine.MediaItem{}
	}
	httpx.JSON(w, http.StatusOK, items)
}

// Delete handles DELETE /api/media/{mediaId}. The file stays on disk until a
// cleanup pass; canvases may still reference its URL.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["mediaId"]
	if err := h.store.DeleteMedia(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "media not found")
			return
		}
		slog.Error("delete media", "error", err)
		httpx.Error(w, http.StatusInternalServerError, "failed to delete media")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Serve returns an http.Handler that serves stored media files with caching
// headers. Media IDs are unique, so files are immutable.
func (h *Handler) Serve() http.Handler {
	fs := http.FileServer(http.Dir(h.dir))
	return http.StripPrefix("/media/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		fs.ServeHTTP(w, r)
	}))
}

func writeFile(dst string, src io.Reader) error {
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
