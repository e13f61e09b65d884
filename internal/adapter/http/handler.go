package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"resume-composer/internal/adapter/repository"
	"resume-composer/internal/config"
	"resume-composer/internal/export"
	"resume-composer/internal/model"
	"resume-composer/internal/render"
	"resume-composer/internal/sections"
	"resume-composer/internal/usecase"
)

type Handler struct {
	composer *usecase.Composer
	defaults render.Presentation
	log      zerolog.Logger
}

func NewHandler(c *usecase.Composer, defaults render.Presentation, log zerolog.Logger) *Handler {
	return &Handler{composer: c, defaults: defaults, log: log}
}

// Register mounts every route on r.
func (h *Handler) Register(r fiber.Router) {
	r.Get("/templates", h.ListTemplates)
	r.Get("/fonts", h.ListFonts)
	r.Get("/themes", h.ListThemes)
	r.Get("/sections", h.ListSections)

	r.Get("/documents/:id", h.GetDocument)
	r.Put("/documents/:id", h.PutDocument)
	r.Post("/documents/:id/intents", h.ApplyIntent)
	r.Get("/documents/:id/sections", h.AvailableSections)
	r.Post("/documents/:id/sections/:kind", h.AddSection)
	r.Post("/documents/:id/sections/:kind/items", h.AddBlankItem)
	r.Get("/documents/:id/preview", h.Preview)
	r.Post("/documents/:id/export/:kind", h.Export)
}

type errorBody struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func fail(c *fiber.Ctx, status int, err string, msg string) error {
	return c.Status(status).JSON(errorBody{Error: err, Code: status, Message: msg})
}

// storeError maps document lookup failures.
func (h *Handler) storeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		return fail(c, fiber.StatusBadRequest, "invalid_id", err.Error())
	case errors.Is(err, model.ErrInvalidDocument):
		h.log.Error().Err(err).Str("document", c.Params("id")).Msg("http: stored document is unreadable")
		return fail(c, fiber.StatusInternalServerError, "corrupt_document", err.Error())
	default:
		h.log.Error().Err(err).Str("path", c.Path()).Msg("http: store failure")
		return fail(c, fiber.StatusInternalServerError, "store_error", "internal error")
	}
}

// presentation reads template, font, primary and secondary query params over
// the configured defaults.
func (h *Handler) presentation(c *fiber.Ctx) render.Presentation {
	return config.Settings{
		Template:       c.Query("template"),
		Font:           c.Query("font"),
		PrimaryColor:   c.Query("primary"),
		SecondaryColor: c.Query("secondary"),
	}.Over(h.defaults)
}

func (h *Handler) ListTemplates(c *fiber.Ctx) error {
	type item struct {
		ID   render.TemplateID `json:"id"`
		Name string            `json:"name"`
	}
	tpls := render.Templates()
	out := make([]item, len(tpls))
	for i, t := range tpls {
		out[i] = item{ID: t.ID, Name: t.Name}
	}
	return c.JSON(out)
}

func (h *Handler) ListFonts(c *fiber.Ctx) error {
	return c.JSON(render.Fonts())
}

func (h *Handler) ListThemes(c *fiber.Ctx) error {
	return c.JSON(render.Themes())
}

func (h *Handler) ListSections(c *fiber.Ctx) error {
	type item struct {
		ID    model.SectionKind `json:"id"`
		Title string            `json:"title"`
		Icon  sections.Icon     `json:"icon"`
	}
	all := sections.All()
	out := make([]item, len(all))
	for i, s := range all {
		out[i] = item{ID: s.Kind, Title: s.Title, Icon: s.Icon}
	}
	return c.JSON(out)
}

func (h *Handler) AvailableSections(c *fiber.Ctx) error {
	kinds, err := h.composer.AvailableSections(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(fiber.Map{"available": kinds})
}

func (h *Handler) AddSection(c *fiber.Ctx) error {
	doc, err := h.composer.AddSection(c.UserContext(), c.Params("id"), model.SectionKind(c.Params("kind")), c.Query("title"))
	if errors.Is(err, usecase.ErrUnknownSection) {
		return fail(c, fiber.StatusNotFound, "unknown_section", err.Error())
	}
	if err != nil {
		return h.storeError(c, err)
	}
	return sendDocument(c, fiber.StatusCreated, doc)
}

func (h *Handler) AddBlankItem(c *fiber.Ctx) error {
	doc, _, err := h.composer.AddBlankItem(c.UserContext(), c.Params("id"), model.SectionKind(c.Params("kind")))
	if errors.Is(err, usecase.ErrUnknownSection) {
		return fail(c, fiber.StatusNotFound, "unknown_section", err.Error())
	}
	if err != nil {
		return h.storeError(c, err)
	}
	return sendDocument(c, fiber.StatusCreated, doc)
}

func sendDocument(c *fiber.Ctx, status int, doc model.Document) error {
	b, err := model.Encode(doc)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "encode_error", err.Error())
	}
	c.Status(status)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(b)
}

func (h *Handler) GetDocument(c *fiber.Ctx) error {
	doc, err := h.composer.Document(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.storeError(c, err)
	}
	return sendDocument(c, fiber.StatusOK, doc)
}

func (h *Handler) PutDocument(c *fiber.Ctx) error {
	doc, err := model.Decode(c.Body())
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid_document", err.Error())
	}
	if err := h.composer.Replace(c.UserContext(), c.Params("id"), doc); err != nil {
		return h.storeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) ApplyIntent(c *fiber.Ctx) error {
	in, err := model.DecodeIntent(c.Body())
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid_intent", err.Error())
	}
	doc, err := h.composer.Apply(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.storeError(c, err)
	}
	return sendDocument(c, fiber.StatusOK, doc)
}

func (h *Handler) Preview(c *fiber.Ctx) error {
	out, err := h.composer.Preview(c.UserContext(), c.Params("id"), h.presentation(c))
	if err != nil {
		return h.storeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(out)
}

func (h *Handler) Export(c *fiber.Ctx) error {
	kind := export.Kind(c.Params("kind"))
	art, err := h.composer.Export(c.UserContext(), c.Params("id"), kind, h.presentation(c))
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrUnknownExportKind):
		return fail(c, fiber.StatusNotFound, "unknown_export_kind", err.Error())
	case errors.Is(err, repository.ErrInvalidID), errors.Is(err, model.ErrInvalidDocument):
		return h.storeError(c, err)
	case errors.Is(err, export.ErrExportInProgress):
		return fail(c, fiber.StatusConflict, "export_in_progress", export.Notice(err))
	case errors.Is(err, export.ErrCapabilityMissing):
		return fail(c, fiber.StatusServiceUnavailable, "capability_missing", export.Notice(err))
	default:
		return fail(c, fiber.StatusInternalServerError, "export_failed", export.Notice(err))
	}

	c.Attachment(art.FileName)
	c.Set(fiber.HeaderContentType, art.ContentType)
	return c.Send(art.Data)
}
