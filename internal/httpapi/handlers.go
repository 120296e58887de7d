package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"giveaway-picker/internal/auth"
	"giveaway-picker/internal/export"
	"giveaway-picker/internal/giveaway"
	"giveaway-picker/internal/hashtag"

	"github.com/go-chi/chi/v5"
)

// maxWinners bounds a single draw request.
const maxWinners = 100

type handlers struct {
	Deps
}

func (h *handlers) ready(w http.ResponseWriter, r *http.Request) {
	if h.Ready != nil {
		if err := h.Ready(r.Context()); err != nil {
			writeError(w, r, http.StatusServiceUnavailable, "NOT_READY", err.Error())
			return
		}
	}
	_, _ = w.Write([]byte("ready"))
}

func (h *handlers) platforms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"platforms": h.Comments.Platforms()})
}

func (h *handlers) extract(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	platform, raw := q.Get("platform"), q.Get("url")
	if platform == "" || raw == "" {
		writeError(w, r, http.StatusBadRequest, "MISSING_PARAMS", "platform and url are required")
		return
	}
	id, ok := h.Comments.ExtractPostID(raw, platform)
	if !ok {
		writeError(w, r, http.StatusUnprocessableEntity, "UNRECOGNIZED_URL", "could not find a post id for "+platform+" in url")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"platform": strings.ToLower(platform), "post_id": id})
}

// comments returns the RetrievalResult as-is, with 200 even when the
// retrieval failed. ?format=csv streams the comments instead.
func (h *handlers) comments(w http.ResponseWriter, r *http.Request) {
	res := h.Comments.GetComments(r.Context(), chi.URLParam(r, "platform"), chi.URLParam(r, "postID"))
	format := r.URL.Query().Get("format")
	if format == "" || !res.Success {
		writeJSON(w, http.StatusOK, res)
		return
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_FORMAT", err.Error())
		return
	}
	if f == export.CSV {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="comments.csv"`)
	} else {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
	}
	if err := export.Comments(w, f, res.Data); err != nil {
		slog.Warn("httpapi: export comments failed", "error", err)
	}
}

func (h *handlers) draw(w http.ResponseWriter, r *http.Request) {
	var req giveaway.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10))
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		return
	}
	if req.WinnerCount > maxWinners {
		writeError(w, r, http.StatusBadRequest, "INVALID_WINNER_COUNT", "winner_count must be between 1 and "+strconv.Itoa(maxWinners))
		return
	}
	req.UserID, _ = auth.UserIDFromContext(r.Context())

	res, err := h.Drawer.Draw(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, res)
	case errors.Is(err, giveaway.ErrUnsupportedPlatform):
		writeError(w, r, http.StatusBadRequest, "UNSUPPORTED_PLATFORM", "Unsupported platform")
	case errors.Is(err, giveaway.ErrInvalidURL):
		writeError(w, r, http.StatusUnprocessableEntity, "UNRECOGNIZED_URL", err.Error())
	case errors.Is(err, giveaway.ErrInvalidWinnerCount):
		writeError(w, r, http.StatusBadRequest, "INVALID_WINNER_COUNT", err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusServiceUnavailable, "CANCELLED", "request cancelled")
	default:
		slog.Error("httpapi: draw failed", "error", err, "request_id", RequestIDFromContext(r.Context()))
		writeError(w, r, http.StatusInternalServerError, "INTERNAL", "Internal server error")
	}
}

func (h *handlers) history(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	if h.History == nil {
		writeJSON(w, http.StatusOK, map[string]any{"records": []any{}})
		return
	}
	recs, err := h.History.List(r.Context(), uid)
	if err != nil {
		slog.Error("httpapi: list history failed", "user_id", uid, "error", err)
		writeError(w, r, http.StatusInternalServerError, "INTERNAL", "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": recs})
}

func (h *handlers) hashtags(w http.ResponseWriter, r *http.Request) {
	gen := h.Hashtags
	if gen == nil {
		gen = &hashtag.Generator{}
	}
	q := r.URL.Query()
	opts := hashtag.Options{
		Niche:           q.Get("niche"),
		Description:     q.Get("description"),
		IncludeNiche:    boolParam(q.Get("niche_tags"), true),
		IncludePopular:  boolParam(q.Get("popular"), true),
		IncludeTrending: boolParam(q.Get("trending"), true),
		UseAI:           boolParam(q.Get("ai"), false),
	}
	if c := q.Get("count"); c != "" {
		n, err := strconv.Atoi(c)
		if err != nil || n <= 0 || n > 100 {
			writeError(w, r, http.StatusBadRequest, "INVALID_COUNT", "count must be between 1 and 100")
			return
		}
		opts.Count = n
	}
	writeJSON(w, http.StatusOK, gen.Generate(r.Context(), opts))
}

func boolParam(s string, def bool) bool {
	if s == "" {
		return def
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}
