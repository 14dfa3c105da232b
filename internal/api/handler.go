// Package api exposes the importer over HTTP: upload one statement, get back
// the extracted entries and their Beancount rendering.
package api

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/insightdelivered/boursorama-importer/internal/extractor"
	"github.com/insightdelivered/boursorama-importer/internal/models"
	"github.com/insightdelivered/boursorama-importer/internal/parser"
	"github.com/insightdelivered/boursorama-importer/internal/writer"
)

// ConvertResponse is the JSON body of POST /api/convert.
type ConvertResponse struct {
	Success     bool           `json:"success"`
	Error       string         `json:"error,omitempty"`
	Dialect     models.Dialect `json:"dialect,omitempty"`
	Document    string         `json:"document,omitempty"`
	Account     string         `json:"account,omitempty"`
	Entries     []entryJSON    `json:"entries"`
	Beancount   string         `json:"beancount,omitempty"`
	Diagnostics []string       `json:"diagnostics,omitempty"`
	Count       int            `json:"count"`
}

// entryJSON wraps an entry with its kind so clients can tell transactions
// from balance assertions without probing fields.
type entryJSON struct {
	Kind  string       `json:"kind"`
	Entry models.Entry `json:"entry"`
}

// Handler holds the importer the HTTP surface runs documents through.
type Handler struct {
	Importer *parser.Importer
	Log      *slog.Logger
}

// New builds a Handler; a nil logger falls back to the default.
func New(imp *parser.Importer, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{Importer: imp, Log: log}
}

// Register mounts the API routes on the fiber app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.Health)
	app.Post("/api/convert", h.Convert)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"engine":    "fiber",
		"converter": extractor.Available(),
	})
}

// Convert accepts a multipart "file" field holding either a statement PDF or
// an already-converted .txt body.
func (h *Handler) Convert(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "No file uploaded. Use form field 'file'.")
	}

	name := fileHeader.Filename
	var text string
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		tmp, err := os.CreateTemp("", "statement-*.pdf")
		if err != nil {
			return serverError(c, "could not buffer upload")
		}
		tmpPath := tmp.Name()
		tmp.Close()
		defer os.Remove(tmpPath)

		if err := c.SaveFile(fileHeader, tmpPath); err != nil {
			return serverError(c, "could not buffer upload")
		}
		text, err = extractor.Convert(tmpPath)
		if err != nil {
			h.Log.Warn("pdf conversion failed", "file", name, "err", err)
			return c.Status(fiber.StatusUnprocessableEntity).JSON(ConvertResponse{
				Error: "PDF conversion failed: " + err.Error(),
			})
		}
	case ".txt":
		f, err := fileHeader.Open()
		if err != nil {
			return serverError(c, "could not read upload")
		}
		defer f.Close()
		buf := make([]byte, fileHeader.Size)
		n, _ := f.Read(buf)
		text = string(buf[:n])
	default:
		return badRequest(c, "Only .pdf and .txt files are supported.")
	}

	result, err := h.Importer.Process(name, text)
	if err != nil {
		h.Log.Warn("import failed", "file", name, "err", err)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ConvertResponse{
			Error: err.Error(),
		})
	}

	var rendered strings.Builder
	w := &writer.BeancountWriter{IncludeMeta: true}
	if err := w.Write(&rendered, result.Entries); err != nil {
		return serverError(c, "rendering failed: "+err.Error())
	}

	resp := ConvertResponse{
		Success:   true,
		Dialect:   result.Dialect,
		Document:  result.Document,
		Account:   result.Account,
		Entries:   make([]entryJSON, 0, len(result.Entries)),
		Beancount: rendered.String(),
		Count:     len(result.Entries),
	}
	for _, e := range result.Entries {
		resp.Entries = append(resp.Entries, entryJSON{Kind: e.Kind(), Entry: e})
	}
	for _, d := range result.Diagnostics {
		resp.Diagnostics = append(resp.Diagnostics, d.Error())
	}

	h.Log.Info("statement converted",
		"file", name, "dialect", result.Dialect,
		"entries", len(result.Entries), "diagnostics", len(result.Diagnostics))
	return c.JSON(resp)
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ConvertResponse{Error: msg})
}

func serverError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(ConvertResponse{Error: msg})
}
