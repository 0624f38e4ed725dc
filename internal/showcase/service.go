package showcase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MYAIBV/my-ai-portfolio/internal/locale"
	"github.com/MYAIBV/my-ai-portfolio/internal/slug"
)

var ErrNotFound = errors.New("showcase item not found")

// ValidationError reports a malformed or missing field; Field uses the
// wire name so the UI can attach the message to the right input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ConflictError reports a slug already taken within one locale's
// namespace (or the legacy namespace when Locale is empty).
type ConflictError struct {
	Locale locale.Locale
	Slug   string
}

func (e *ConflictError) Error() string {
	if e.Locale == "" {
		return fmt.Sprintf("slug %q already taken", e.Slug)
	}
	return fmt.Sprintf("the %s slug %q is already taken", e.Locale.Name(), e.Slug)
}

// Field returns the wire name of the conflicting slug field.
func (e *ConflictError) Field() string {
	if e.Locale == "" {
		return "slug"
	}
	return "slug_" + e.Locale.String()
}

// Service owns every cross-item invariant: per-locale slug uniqueness,
// the three-tier slug resolution, and the private-item visibility rule.
// The KV layer offers no transactions, so mutations are serialized
// behind mu to keep the availability check and the write atomic with
// respect to each other.
type Service struct {
	repo Repository
	mu   sync.Mutex
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateRequest, createdBy string) (Item, error) {
	localized := make(map[locale.Locale]LocalizedContent, len(locale.All))
	for _, loc := range locale.All {
		title, rawSlug, description := req.localized(loc)
		title = strings.TrimSpace(title)
		description = strings.TrimSpace(description)
		if title == "" {
			return Item{}, &ValidationError{Field: "title_" + loc.String(), Message: "title is required in both Dutch and English"}
		}
		if description == "" {
			return Item{}, &ValidationError{Field: "description_" + loc.String(), Message: "description is required in both Dutch and English"}
		}

		itemSlug := strings.TrimSpace(rawSlug)
		if itemSlug == "" {
			itemSlug = slug.Generate(title)
		}
		if !slug.IsValid(itemSlug) {
			return Item{}, &ValidationError{
				Field:   "slug_" + loc.String(),
				Message: fmt.Sprintf("invalid %s slug format, use only lowercase letters, numbers and hyphens", loc.Name()),
			}
		}
		localized[loc] = LocalizedContent{Title: title, Slug: itemSlug, Description: description}
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return Item{}, err
	}
	// An item's own two locale slugs never conflict with each other;
	// each is checked only against other items in the same namespace.
	for _, loc := range locale.All {
		if taken(items, localized[loc].Slug, loc, "") {
			return Item{}, &ConflictError{Locale: loc, Slug: localized[loc].Slug}
		}
	}

	nl := localized[locale.NL]
	now := time.Now().UTC()
	item := Item{
		ID:          uuid.NewString(),
		Title:       firstNonEmpty(strings.TrimSpace(req.Title), nl.Title),
		Slug:        firstNonEmpty(strings.TrimSpace(req.Slug), nl.Slug),
		Description: firstNonEmpty(strings.TrimSpace(req.Description), nl.Description),
		Localized:   localized,
		ImageURL:    strings.TrimSpace(req.ImageURL),
		AppURL:      strings.TrimSpace(req.AppURL),
		Categories:  req.Categories,
		Keywords:    req.Keywords,
		IsPublic:    isPublic,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if item.Categories == nil {
		item.Categories = []string{}
	}
	if item.Keywords == nil {
		item.Keywords = []string{}
	}

	if err := s.repo.Put(ctx, item); err != nil {
		return Item{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Item, error) {
	id = strings.TrimSpace(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok, err := s.repo.Get(ctx, id)
	if err != nil {
		return Item{}, err
	}
	if !ok {
		return Item{}, ErrNotFound
	}

	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return Item{}, err
	}

	if item.Localized == nil {
		item.Localized = make(map[locale.Locale]LocalizedContent, len(locale.All))
	}
	for _, loc := range locale.All {
		title, newSlug, description := req.localized(loc)
		if title == nil && newSlug == nil && description == nil {
			continue
		}
		content := item.Content(loc)
		if title != nil {
			content.Title = strings.TrimSpace(*title)
		}
		if description != nil {
			content.Description = strings.TrimSpace(*description)
		}
		if newSlug != nil {
			candidate := strings.TrimSpace(*newSlug)
			if !slug.IsValid(candidate) {
				return Item{}, &ValidationError{
					Field:   "slug_" + loc.String(),
					Message: fmt.Sprintf("invalid %s slug format, use only lowercase letters, numbers and hyphens", loc.Name()),
				}
			}
			if taken(items, candidate, loc, id) {
				return Item{}, &ConflictError{Locale: loc, Slug: candidate}
			}
			content.Slug = candidate
		}
		item.Localized[loc] = content
	}

	if req.Slug != nil {
		candidate := strings.TrimSpace(*req.Slug)
		if !slug.IsValid(candidate) {
			return Item{}, &ValidationError{Field: "slug", Message: "invalid slug format, use only lowercase letters, numbers and hyphens"}
		}
		if legacyTaken(items, candidate, id) {
			return Item{}, &ConflictError{Slug: candidate}
		}
		item.Slug = candidate
	}
	if req.Title != nil {
		item.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}
	if req.ImageURL != nil {
		item.ImageURL = strings.TrimSpace(*req.ImageURL)
	}
	if req.AppURL != nil {
		item.AppURL = strings.TrimSpace(*req.AppURL)
	}
	if req.Categories != nil {
		item.Categories = *req.Categories
	}
	if req.Keywords != nil {
		item.Keywords = *req.Keywords
	}
	if req.IsPublic != nil {
		item.IsPublic = *req.IsPublic
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Put(ctx, item); err != nil {
		return Item{}, err
	}
	return item, nil
}

// Delete removes the item; deleting an already-deleted id reports
// ErrNotFound rather than succeeding silently.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// Get returns the item by id. Private items are reported as not found
// to unauthenticated callers so their existence is never revealed.
func (s *Service) Get(ctx context.Context, id string, authenticated bool) (Item, error) {
	item, ok, err := s.repo.Get(ctx, strings.TrimSpace(id))
	if err != nil {
		return Item{}, err
	}
	if !ok || (!item.IsPublic && !authenticated) {
		return Item{}, ErrNotFound
	}
	return item, nil
}

// List returns items newest first. Unauthenticated callers only see
// public items; publicOnly forces the public view for any caller.
func (s *Service) List(ctx context.Context, authenticated, publicOnly bool) ([]Item, error) {
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	visible := make([]Item, 0, len(items))
	for _, item := range items {
		if !item.IsPublic && (publicOnly || !authenticated) {
			continue
		}
		visible = append(visible, item)
	}
	sort.Slice(visible, func(i, j int) bool {
		return visible[i].CreatedAt.After(visible[j].CreatedAt)
	})
	return visible, nil
}

// ResolveBySlug finds the item an incoming URL refers to. Lookup order
// matters: the requested locale's namespace first, then the legacy
// default slug (records predating the bilingual model), then the other
// locale's namespace (a shared URL may belong to either language).
func (s *Service) ResolveBySlug(ctx context.Context, rawSlug string, loc *locale.Locale, authenticated bool) (Item, error) {
	rawSlug = strings.TrimSpace(rawSlug)
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return Item{}, err
	}

	visible := make([]Item, 0, len(items))
	for _, item := range items {
		if !item.IsPublic && !authenticated {
			continue
		}
		visible = append(visible, item)
	}

	if loc != nil {
		for _, item := range visible {
			if c, ok := item.Localized[*loc]; ok && c.Slug == rawSlug {
				return item, nil
			}
		}
	}
	for _, item := range visible {
		if item.Slug == rawSlug {
			return item, nil
		}
	}
	rest := locale.All
	if loc != nil {
		rest = []locale.Locale{loc.Other()}
	}
	for _, other := range rest {
		for _, item := range visible {
			if c, ok := item.Localized[other]; ok && c.Slug == rawSlug {
				return item, nil
			}
		}
	}
	return Item{}, ErrNotFound
}

// IsSlugAvailable reports whether no item other than excludeID holds
// the slug in the locale's namespace.
func (s *Service) IsSlugAvailable(ctx context.Context, candidate string, loc locale.Locale, excludeID string) (bool, error) {
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return false, err
	}
	return !taken(items, candidate, loc, excludeID), nil
}

func taken(items []Item, candidate string, loc locale.Locale, excludeID string) bool {
	for _, item := range items {
		if item.ID == excludeID {
			continue
		}
		if c, ok := item.Localized[loc]; ok && c.Slug == candidate {
			return true
		}
	}
	return false
}

func legacyTaken(items []Item, candidate, excludeID string) bool {
	for _, item := range items {
		if item.ID != excludeID && item.Slug == candidate {
			return true
		}
	}
	return false
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
