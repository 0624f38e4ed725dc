package showcase

import (
	"time"

	"github.com/MYAIBV/my-ai-portfolio/internal/locale"
)

// LocalizedContent is the per-locale half of an item: what a visitor
// reading the site in that language sees, and the slug that routes to it.
type LocalizedContent struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Item is a portfolio showcase entry. The top-level title, slug and
// description predate the bilingual model and conventionally mirror the
// Dutch content; records written before the migration may have only
// those populated.
type Item struct {
	ID          string                             `json:"id"`
	Title       string                             `json:"title"`
	Slug        string                             `json:"slug"`
	Description string                             `json:"description"`
	Localized   map[locale.Locale]LocalizedContent `json:"localized"`
	ImageURL    string                             `json:"image_url"`
	AppURL      string                             `json:"app_url"`
	Categories  []string                           `json:"categories"`
	Keywords    []string                           `json:"keywords"`
	IsPublic    bool                               `json:"is_public"`
	CreatedBy   string                             `json:"created_by"`
	CreatedAt   time.Time                          `json:"created_at"`
	UpdatedAt   time.Time                          `json:"updated_at"`
}

// Content returns the locale's content, falling back to the legacy
// default fields for records that predate the bilingual model.
func (it Item) Content(loc locale.Locale) LocalizedContent {
	if c, ok := it.Localized[loc]; ok {
		return c
	}
	return LocalizedContent{Title: it.Title, Slug: it.Slug, Description: it.Description}
}

type CreateRequest struct {
	TitleNL       string   `json:"title_nl" validate:"required"`
	TitleEN       string   `json:"title_en" validate:"required"`
	SlugNL        string   `json:"slug_nl" validate:"slug"`
	SlugEN        string   `json:"slug_en" validate:"slug"`
	DescriptionNL string   `json:"description_nl" validate:"required"`
	DescriptionEN string   `json:"description_en" validate:"required"`
	Title         string   `json:"title"`
	Slug          string   `json:"slug" validate:"slug"`
	Description   string   `json:"description"`
	ImageURL      string   `json:"image_url"`
	AppURL        string   `json:"app_url" validate:"required,url"`
	Categories    []string `json:"categories" validate:"omitempty,dive,category"`
	Keywords      []string `json:"keywords"`
	IsPublic      *bool    `json:"is_public"`
}

// UpdateRequest carries a partial update; nil means "leave unchanged".
// Either locale's content can be edited without touching the other.
type UpdateRequest struct {
	TitleNL       *string   `json:"title_nl"`
	TitleEN       *string   `json:"title_en"`
	SlugNL        *string   `json:"slug_nl"`
	SlugEN        *string   `json:"slug_en"`
	DescriptionNL *string   `json:"description_nl"`
	DescriptionEN *string   `json:"description_en"`
	Title         *string   `json:"title"`
	Slug          *string   `json:"slug"`
	Description   *string   `json:"description"`
	ImageURL      *string   `json:"image_url"`
	AppURL        *string   `json:"app_url" validate:"omitempty,url"`
	Categories    *[]string `json:"categories" validate:"omitempty,dive,category"`
	Keywords      *[]string `json:"keywords"`
	IsPublic      *bool     `json:"is_public"`
}

func (r CreateRequest) localized(loc locale.Locale) (title, slug, description string) {
	if loc == locale.NL {
		return r.TitleNL, r.SlugNL, r.DescriptionNL
	}
	return r.TitleEN, r.SlugEN, r.DescriptionEN
}

func (r UpdateRequest) localized(loc locale.Locale) (title, slug, description *string) {
	if loc == locale.NL {
		return r.TitleNL, r.SlugNL, r.DescriptionNL
	}
	return r.TitleEN, r.SlugEN, r.DescriptionEN
}
