package showcase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MYAIBV/my-ai-portfolio/internal/httpx"
	"github.com/MYAIBV/my-ai-portfolio/internal/locale"
	"github.com/MYAIBV/my-ai-portfolio/internal/middleware"
	"github.com/MYAIBV/my-ai-portfolio/internal/transport"
	"github.com/MYAIBV/my-ai-portfolio/internal/validation"
)

type Handler struct {
	service *Service
	val     *validation.Validator
	log     *slog.Logger
}

func NewHandler(service *Service, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{
		service: service,
		val:     val,
		log:     log,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	authenticated := middleware.UserFromContext(r.Context()) != nil
	publicOnly := r.URL.Query().Get("public") == "true"

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.service.List(ctx, authenticated, publicOnly)
	if err != nil {
		log.Error("showcase list: storage error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		return
	}

	log.Info("showcase list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	user := middleware.UserFromContext(r.Context())

	var req CreateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("showcase create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("showcase create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Create(ctx, req, user.Email)
	if err != nil {
		h.writeServiceError(w, log, "showcase create", err)
		return
	}

	log.Info("showcase create: ok", slog.String("item_id", item.ID), slog.String("slug_nl", item.Content(locale.NL).Slug), slog.String("slug_en", item.Content(locale.EN).Slug))
	transport.WriteJSON(w, http.StatusCreated, map[string]interface{}{"item": item})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}
	authenticated := middleware.UserFromContext(r.Context()) != nil

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.Get(ctx, id, authenticated)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("showcase get: not found", slog.String("item_id", id))
			transport.WriteError(w, http.StatusNotFound, "item not found", nil)
			return
		}
		log.Error("showcase get: storage error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		return
	}

	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{"item": item})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	var req UpdateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("showcase update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("showcase update: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Update(ctx, id, req)
	if err != nil {
		h.writeServiceError(w, log, "showcase update", err)
		return
	}

	log.Info("showcase update: ok", slog.String("item_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{"item": item})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("showcase delete: not found", slog.String("item_id", id))
			transport.WriteError(w, http.StatusNotFound, "item not found", nil)
			return
		}
		log.Error("showcase delete: storage error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		return
	}

	log.Info("showcase delete: ok", slog.String("item_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	rawSlug := strings.TrimSpace(chi.URLParam(r, "slug"))
	if rawSlug == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing slug", nil)
		return
	}

	var loc *locale.Locale
	if raw := strings.TrimSpace(r.URL.Query().Get("locale")); raw != "" {
		parsed, err := locale.Parse(raw)
		if err != nil {
			transport.WriteError(w, http.StatusBadRequest, "invalid locale, supported: nl, en", nil)
			return
		}
		loc = &parsed
	}
	authenticated := middleware.UserFromContext(r.Context()) != nil

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.ResolveBySlug(ctx, rawSlug, loc, authenticated)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("showcase by-slug: not found", slog.String("slug", rawSlug))
			transport.WriteError(w, http.StatusNotFound, "item not found", nil)
			return
		}
		log.Error("showcase by-slug: storage error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
		return
	}

	log.Info("showcase by-slug: ok", slog.String("slug", rawSlug), slog.String("item_id", item.ID))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{"item": item})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		log.Warn(op+": slug conflict", slog.String("field", conflict.Field()), slog.String("slug", conflict.Slug))
		transport.WriteError(w, http.StatusConflict, conflict.Error(), map[string]string{conflict.Field(): "taken"})
		return
	}
	var invalid *ValidationError
	if errors.As(err, &invalid) {
		log.Warn(op+": validation error", slog.String("field", invalid.Field))
		transport.WriteError(w, http.StatusBadRequest, invalid.Message, map[string]string{invalid.Field: "invalid"})
		return
	}
	if errors.Is(err, ErrNotFound) {
		transport.WriteError(w, http.StatusNotFound, "item not found", nil)
		return
	}
	log.Error(op+": storage error", slog.String("error", err.Error()))
	transport.WriteError(w, http.StatusInternalServerError, "storage error", nil)
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
