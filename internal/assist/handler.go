package assist

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/MYAIBV/my-ai-portfolio/internal/httpx"
	"github.com/MYAIBV/my-ai-portfolio/internal/locale"
	"github.com/MYAIBV/my-ai-portfolio/internal/middleware"
	"github.com/MYAIBV/my-ai-portfolio/internal/transport"
	"github.com/MYAIBV/my-ai-portfolio/internal/validation"
)

type Handler struct {
	client *Client
	val    *validation.Validator
	log    *slog.Logger
}

func NewHandler(client *Client, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{
		client: client,
		val:    val,
		log:    log,
	}
}

type Request struct {
	Action   string             `json:"action" validate:"required,oneof=translate suggest"`
	Text     string             `json:"text"`
	FromLang string             `json:"fromLang" validate:"omitempty,locale"`
	ToLang   string             `json:"toLang" validate:"omitempty,locale"`
	Context  *SuggestionContext `json:"context"`
	Field    string             `json:"field"`
	Language string             `json:"language" validate:"omitempty,locale"`
}

// Assist dispatches the two dashboard helpers. The client's retry
// protocol can keep a request waiting on quota for tens of seconds, so
// the route's own timeout is generous.
func (h *Handler) Assist(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	if h.client == nil {
		log.Warn("assist: not configured")
		transport.WriteError(w, http.StatusServiceUnavailable, "ai assist not configured", nil)
		return
	}

	var req Request
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("assist: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn("assist: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	switch req.Action {
	case "translate":
		h.translate(ctx, w, log, req)
	case "suggest":
		h.suggest(ctx, w, log, req)
	}
}

func (h *Handler) translate(ctx context.Context, w http.ResponseWriter, log *slog.Logger, req Request) {
	if req.FromLang == "" || req.ToLang == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing required fields: text, fromLang, toLang", nil)
		return
	}
	from, _ := locale.Parse(req.FromLang)
	to, _ := locale.Parse(req.ToLang)

	result, err := h.client.Translate(ctx, req.Text, from, to)
	if err != nil {
		h.writeClientError(w, log, "assist translate", err)
		return
	}
	log.Info("assist translate: ok", slog.String("from", from.String()), slog.String("to", to.String()))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"result": result})
}

func (h *Handler) suggest(ctx context.Context, w http.ResponseWriter, log *slog.Logger, req Request) {
	if req.Field == "" || req.Language == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing required fields: field, language", nil)
		return
	}
	field, err := ParseField(req.Field)
	if err != nil {
		transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	loc, _ := locale.Parse(req.Language)

	var sctx SuggestionContext
	if req.Context != nil {
		sctx = *req.Context
	}

	result, err := h.client.Suggest(ctx, sctx, field, loc)
	if err != nil {
		h.writeClientError(w, log, "assist suggest", err)
		return
	}
	log.Info("assist suggest: ok", slog.String("field", string(field)), slog.String("locale", loc.String()))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"result": result})
}

func (h *Handler) writeClientError(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	var rate *RateLimitError
	if errors.As(err, &rate) {
		seconds := int(math.Ceil(rate.RetryAfter.Seconds()))
		log.Warn(op+": rate limited", slog.Int("retry_after_seconds", seconds))
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
		transport.WriteJSON(w, http.StatusTooManyRequests, map[string]interface{}{
			"error":               "rate limit exceeded, please wait a moment and try again",
			"retry_after_seconds": seconds,
		})
		return
	}
	if errors.Is(err, ErrEmptyResponse) || errors.Is(err, ErrUpstream) {
		log.Error(op+": upstream error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadGateway, "ai request failed, please try again", nil)
		return
	}
	log.Error(op+": error", slog.String("error", err.Error()))
	transport.WriteError(w, http.StatusInternalServerError, "internal error", nil)
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
