package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/boursorama-importer/internal/accounts"
	"github.com/insightdelivered/boursorama-importer/internal/parser"
)

func setupTestApp() *fiber.App {
	dir := accounts.Directory{
		"4979********1234": "Passif:Boursorama:CB",
	}
	app := fiber.New()
	New(parser.New(dir), nil).Register(app)
	return app
}

// convertView mirrors the scalar fields of ConvertResponse; the entries list
// is interface-typed and cannot be decoded back directly.
type convertView struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Dialect   string `json:"dialect"`
	Document  string `json:"document"`
	Account   string `json:"account"`
	Beancount string `json:"beancount"`
	Count     int    `json:"count"`
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHealthEndpoint(t *testing.T) {
	app := setupTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var result map[string]any
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, "ok", result["status"])
	assert.Equal(t, "fiber", result["engine"])
}

func TestConvertTextStatement(t *testing.T) {
	app := setupTestApp()

	statement := "Relevé de Carte\n" +
		"4979********1234\n" +
		"05/03/2023 CARTE SUPERMARCHE PARIS    45,30\n" +
		"A VOTRE DEBIT LE 04/04/2023      45,30\n" +
		"04/04/2023 BOUSFRPP 40618 00040\n"

	buf, contentType := multipartBody(t, "carte.txt", statement)
	req := httptest.NewRequest("POST", "/api/convert", buf)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var result convertView
	require.NoError(t, json.Unmarshal(body, &result))

	assert.True(t, result.Success)
	assert.Equal(t, "card", result.Dialect)
	assert.Equal(t, "Passif:Boursorama:CB", result.Account)
	assert.Equal(t, 2, result.Count)
	assert.Contains(t, result.Beancount, `2023-03-05 * "SUPERMARCHE PARIS"`)
	assert.Contains(t, result.Beancount, "2023-04-04 balance Passif:Boursorama:CB  -45.30 EUR")
}

func TestConvertUnknownAccountIsUnprocessable(t *testing.T) {
	app := setupTestApp()

	statement := "Relevé de Carte\n" +
		"4810********9999\n" +
		"05/03/2023 CARTE SUPERMARCHE PARIS    45,30\n"

	buf, contentType := multipartBody(t, "carte.txt", statement)
	req := httptest.NewRequest("POST", "/api/convert", buf)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var result convertView
	require.NoError(t, json.Unmarshal(body, &result))
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "account not in directory")
}

func TestConvertRequiresFile(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest("POST", "/api/convert", nil)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=----test")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestConvertRejectsUnknownExtension(t *testing.T) {
	app := setupTestApp()

	buf, contentType := multipartBody(t, "carte.docx", "contenu")
	req := httptest.NewRequest("POST", "/api/convert", buf)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
