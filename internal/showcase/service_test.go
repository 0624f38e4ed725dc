package showcase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MYAIBV/my-ai-portfolio/internal/kv"
	"github.com/MYAIBV/my-ai-portfolio/internal/locale"
)

func newTestService() *Service {
	return NewService(NewRepository(kv.NewMemory()))
}

func createRequest() CreateRequest {
	return CreateRequest{
		TitleNL:       "Stem AI",
		TitleEN:       "Voice AI",
		DescriptionNL: "Een stemassistent.",
		DescriptionEN: "A voice assistant.",
		AppURL:        "https://app.example.com",
	}
}

func TestCreateDerivesSlugs(t *testing.T) {
	svc := newTestService()
	item, err := svc.Create(context.Background(), createRequest(), "info@my-ai.nl")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got := item.Content(locale.NL).Slug; got != "stem-ai" {
		t.Fatalf("nl slug = %q, want stem-ai", got)
	}
	if got := item.Content(locale.EN).Slug; got != "voice-ai" {
		t.Fatalf("en slug = %q, want voice-ai", got)
	}
	if item.Slug != "stem-ai" {
		t.Fatalf("legacy slug = %q, want stem-ai", item.Slug)
	}
	if item.ID == "" || item.CreatedAt.IsZero() || item.UpdatedAt.IsZero() {
		t.Fatalf("id/timestamps not assigned: %+v", item)
	}
}

func TestCreateRejectsMissingLocaleFields(t *testing.T) {
	svc := newTestService()
	req := createRequest()
	req.DescriptionEN = "  "
	_, err := svc.Create(context.Background(), req, "info@my-ai.nl")
	var invalid *ValidationError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if invalid.Field != "description_en" {
		t.Fatalf("field = %q, want description_en", invalid.Field)
	}
}

func TestCreateRejectsBadSlugFormat(t *testing.T) {
	svc := newTestService()
	req := createRequest()
	req.SlugEN = "Voice AI!"
	_, err := svc.Create(context.Background(), req, "info@my-ai.nl")
	var invalid *ValidationError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if invalid.Field != "slug_en" {
		t.Fatalf("field = %q, want slug_en", invalid.Field)
	}
}

func TestCreateConflictNamesLocale(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	if _, err := svc.Create(ctx, createRequest(), "info@my-ai.nl"); err != nil {
		t.Fatalf("first Create error: %v", err)
	}

	req := createRequest()
	req.TitleNL = "Andere stem"
	req.SlugEN = "voice-ai"
	_, err := svc.Create(ctx, req, "info@my-ai.nl")
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.Locale != locale.EN || conflict.Field() != "slug_en" {
		t.Fatalf("conflict = %+v, want en/slug_en", conflict)
	}
}

func TestSameSlugAcrossLocalesIsAllowed(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	// One item may use the same text for both of its locale slugs.
	req := createRequest()
	req.SlugNL = "dubbel-pad"
	req.SlugEN = "dubbel-pad"
	if _, err := svc.Create(ctx, req, "info@my-ai.nl"); err != nil {
		t.Fatalf("Create with shared slug text: %v", err)
	}

	// Uniqueness is scoped per locale: another item may hold the same
	// text as its Dutch slug while a third holds it as its English one.
	second := createRequest()
	second.TitleNL = "Spraak AI"
	second.TitleEN = "Speech AI"
	second.SlugNL = "gedeeld-pad"
	if _, err := svc.Create(ctx, second, "info@my-ai.nl"); err != nil {
		t.Fatalf("second Create error: %v", err)
	}
	third := createRequest()
	third.TitleNL = "Beeld AI"
	third.TitleEN = "Image AI"
	third.SlugEN = "gedeeld-pad"
	if _, err := svc.Create(ctx, third, "info@my-ai.nl"); err != nil {
		t.Fatalf("third Create error: %v", err)
	}
}

func TestUpdateExcludesOwnIDFromConflictScan(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	item, err := svc.Create(ctx, createRequest(), "info@my-ai.nl")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// Re-submitting its own slug must not conflict.
	slug := "voice-ai"
	if _, err := svc.Update(ctx, item.ID, UpdateRequest{SlugEN: &slug}); err != nil {
		t.Fatalf("Update with own slug: %v", err)
	}

	other := createRequest()
	other.TitleNL = "Beeld AI"
	other.TitleEN = "Image AI"
	second, err := svc.Create(ctx, other, "info@my-ai.nl")
	if err != nil {
		t.Fatalf("second Create error: %v", err)
	}
	_, err = svc.Update(ctx, second.ID, UpdateRequest{SlugEN: &slug})
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestUpdatePartialLocale(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	item, err := svc.Create(ctx, createRequest(), "info@my-ai.nl")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	desc := "An updated voice assistant."
	updated, err := svc.Update(ctx, item.ID, UpdateRequest{DescriptionEN: &desc})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got := updated.Content(locale.EN).Description; got != desc {
		t.Fatalf("en description = %q, want %q", got, desc)
	}
	if got := updated.Content(locale.NL); got != item.Content(locale.NL) {
		t.Fatalf("nl content changed: %+v", got)
	}
	if !updated.UpdatedAt.After(item.UpdatedAt) && !updated.UpdatedAt.Equal(item.UpdatedAt) {
		t.Fatalf("UpdatedAt not refreshed")
	}
	if updated.ID != item.ID {
		t.Fatalf("id changed on update")
	}
}

func TestUpdateMissingItem(t *testing.T) {
	svc := newTestService()
	_, err := svc.Update(context.Background(), "nope", UpdateRequest{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteIsIdempotentNotFound(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	item, err := svc.Create(ctx, createRequest(), "info@my-ai.nl")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := svc.Delete(ctx, item.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := svc.Delete(ctx, item.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete = %v, want ErrNotFound", err)
	}
}

func TestResolveBySlugLocaleNamespace(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	item, err := svc.Create(ctx, createRequest(), "info@my-ai.nl")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	en := locale.EN
	got, err := svc.ResolveBySlug(ctx, "voice-ai", &en, false)
	if err != nil {
		t.Fatalf("ResolveBySlug error: %v", err)
	}
	if got.ID != item.ID {
		t.Fatalf("resolved %q, want %q", got.ID, item.ID)
	}
}

func TestResolveBySlugLegacyFallback(t *testing.T) {
	svc := newTestService()
	repo := svc.repo
	ctx := context.Background()

	// A record from before the bilingual model: only the default
	// fields are populated.
	legacy := Item{
		ID:        "legacy-1",
		Title:     "Oude titel",
		Slug:      "oude-titel",
		IsPublic:  true,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := repo.Put(ctx, legacy); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	en := locale.EN
	got, err := svc.ResolveBySlug(ctx, "oude-titel", &en, false)
	if err != nil {
		t.Fatalf("ResolveBySlug error: %v", err)
	}
	if got.ID != "legacy-1" {
		t.Fatalf("resolved %q, want legacy-1", got.ID)
	}
}

func TestResolveBySlugCrossLocaleFallback(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	item, err := svc.Create(ctx, createRequest(), "info@my-ai.nl")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// No locale supplied and only the English slug matches.
	got, err := svc.ResolveBySlug(ctx, "voice-ai", nil, false)
	if err != nil {
		t.Fatalf("ResolveBySlug error: %v", err)
	}
	if got.ID != item.ID {
		t.Fatalf("resolved %q, want %q", got.ID, item.ID)
	}
}

func TestResolveBySlugHidesPrivateItems(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	req := createRequest()
	private := false
	req.IsPublic = &private
	item, err := svc.Create(ctx, req, "info@my-ai.nl")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := svc.ResolveBySlug(ctx, "voice-ai", nil, false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unauthenticated resolve = %v, want ErrNotFound", err)
	}
	got, err := svc.ResolveBySlug(ctx, "voice-ai", nil, true)
	if err != nil {
		t.Fatalf("authenticated resolve error: %v", err)
	}
	if got.ID != item.ID {
		t.Fatalf("resolved %q, want %q", got.ID, item.ID)
	}
}

func TestListVisibilityAndOrder(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.Create(ctx, createRequest(), "info@my-ai.nl")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	second := createRequest()
	second.TitleNL = "Chat AI"
	second.TitleEN = "Chat Assistant"
	private := false
	second.IsPublic = &private
	hidden, err := svc.Create(ctx, second, "info@my-ai.nl")
	if err != nil {
		t.Fatalf("second Create error: %v", err)
	}

	public, err := svc.List(ctx, false, false)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(public) != 1 || public[0].ID != first.ID {
		t.Fatalf("unauthenticated list = %d items, want only the public one", len(public))
	}

	all, err := svc.List(ctx, true, false)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("authenticated list = %d items, want 2", len(all))
	}
	if all[0].CreatedAt.Before(all[1].CreatedAt) {
		t.Fatalf("list not sorted newest first")
	}
	_ = hidden
}

func TestUniquenessHoldsAfterMutations(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	reqs := []CreateRequest{createRequest()}
	second := createRequest()
	second.TitleNL = "Beeld AI"
	second.TitleEN = "Image AI"
	reqs = append(reqs, second)
	third := createRequest()
	third.TitleNL = "Video AI"
	third.TitleEN = "Video Assistant"
	reqs = append(reqs, third)

	for _, req := range reqs {
		if _, err := svc.Create(ctx, req, "info@my-ai.nl"); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	items, err := svc.List(ctx, true, false)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	for _, loc := range locale.All {
		seen := map[string]string{}
		for _, item := range items {
			s := item.Content(loc).Slug
			if prev, dup := seen[s]; dup {
				t.Fatalf("duplicate %s slug %q on %s and %s", loc, s, prev, item.ID)
			}
			seen[s] = item.ID
		}
	}
}

func TestIsSlugAvailable(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	item, err := svc.Create(ctx, createRequest(), "info@my-ai.nl")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	ok, err := svc.IsSlugAvailable(ctx, "voice-ai", locale.EN, "")
	if err != nil || ok {
		t.Fatalf("IsSlugAvailable(voice-ai, en) = %v, %v; want false", ok, err)
	}
	ok, err = svc.IsSlugAvailable(ctx, "voice-ai", locale.EN, item.ID)
	if err != nil || !ok {
		t.Fatalf("IsSlugAvailable excluding owner = %v, %v; want true", ok, err)
	}
	ok, err = svc.IsSlugAvailable(ctx, "voice-ai", locale.NL, "")
	if err != nil || !ok {
		t.Fatalf("IsSlugAvailable(voice-ai, nl) = %v, %v; want true", ok, err)
	}
}
