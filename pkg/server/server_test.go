package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/csvtable/pkg/cache"
	"github.com/matzehuels/csvtable/pkg/pipeline"
	"github.com/matzehuels/csvtable/pkg/render/table"
	"github.com/matzehuels/csvtable/pkg/render/table/layout"
)

const scoresCSV = "Name,Score\nAlice,91\nBob,78\n"

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	logger := log.New(io.Discard)
	return New(pipeline.NewRunner(fc, nil, logger), logger, opts...)
}

func do(s http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	rec := do(newTestServer(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestPresets(t *testing.T) {
	s := newTestServer(t, WithThemes(map[string]table.Theme{"brand": {Base: table.PresetLarge}}))
	rec := do(s, http.MethodGet, "/presets", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []presetInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, len(table.Presets)+1)
	assert.Equal(t, table.PresetStandard, got[0].Name)
	assert.NotEmpty(t, got[0].Description)
	assert.Equal(t, presetInfo{Name: "brand", Theme: true}, got[len(got)-1])
}

func TestRenderPNG(t *testing.T) {
	s := newTestServer(t)
	rec := do(s, http.MethodPost, "/render?preset=professional&scale=2&dpi=300", scoresCSV)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "miss", rec.Header().Get("X-Cache"))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, rec.Header().Get("X-Table-Width"), strconv.Itoa(img.Bounds().Dx()))

	again := do(s, http.MethodPost, "/render?preset=professional&scale=2&dpi=300", scoresCSV)
	require.Equal(t, http.StatusOK, again.Code)
	assert.Equal(t, "hit", again.Header().Get("X-Cache"))
	assert.Equal(t, rec.Body.Bytes(), again.Body.Bytes())
}

func TestRenderFormats(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		format      string
		contentType string
	}{
		{"svg", "image/svg+xml"},
		{"jpg", "image/jpeg"},
		{"json", "application/json"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			rec := do(s, http.MethodPost, "/render?format="+tt.format, scoresCSV)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.NotZero(t, rec.Body.Len())
		})
	}
}

func TestRenderSVGFont(t *testing.T) {
	rec := do(newTestServer(t), http.MethodPost, "/render?format=svg&svg_font=Inter", scoresCSV)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `font-family="Inter"`)
}

func TestRenderTheme(t *testing.T) {
	red := layout.RGB(255, 0, 0)
	s := newTestServer(t, WithThemes(map[string]table.Theme{"brand": {HeaderBG: &red}}))
	rec := do(s, http.MethodPost, "/render?preset=brand&format=png", scoresCSV)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	r, g, b, _ := img.At(5, 5).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0, 0}, [3]uint32{r, g, b})
}

func TestRenderErrors(t *testing.T) {
	s := newTestServer(t, WithMaxUpload(64))
	tests := []struct {
		name   string
		target string
		body   string
		status int
		code   string
	}{
		{"empty csv", "/render", "", http.StatusUnprocessableEntity, "EMPTY_DATA"},
		{"unknown preset", "/render?preset=neon", scoresCSV, http.StatusBadRequest, "INVALID_PRESET"},
		{"unknown format", "/render?format=gif", scoresCSV, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad scale", "/render?scale=big", scoresCSV, http.StatusBadRequest, "INVALID_CONFIG"},
		{"negative scale", "/render?scale=-1", scoresCSV, http.StatusBadRequest, "INVALID_CONFIG"},
		{"NaN scale", "/render?scale=NaN", scoresCSV, http.StatusBadRequest, "INVALID_CONFIG"},
		{"scale collapses rows", "/render?scale=0.01", scoresCSV, http.StatusBadRequest, "INVALID_CONFIG"},
		{"scale too large", "/render?scale=50", scoresCSV, http.StatusBadRequest, "INVALID_CONFIG"},
		{"bad dpi", "/render?dpi=0", scoresCSV, http.StatusBadRequest, "INVALID_CONFIG"},
		{"quality zero", "/render?format=jpg&quality=0", scoresCSV, http.StatusBadRequest, "INVALID_CONFIG"},
		{"quality too high", "/render?format=jpg&quality=101", scoresCSV, http.StatusBadRequest, "INVALID_CONFIG"},
		{"bad font", "/render?font=comic", scoresCSV, http.StatusBadRequest, "INVALID_CONFIG"},
		{"too large", "/render", strings.Repeat("a,b\n", 40), http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(s, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			body := decodeError(t, rec)
			assert.Equal(t, tt.code, string(body.Code))
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	rec := do(newTestServer(t), http.MethodGet, "/render", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestIDPropagation(t *testing.T) {
	s := newTestServer(t)

	const id = "7b0c6c9e-8f4e-4a53-9f3e-2a1d8c6b5e40"
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(RequestIDHeader))
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}
