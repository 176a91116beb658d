package dashboard

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, csv string) *Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if csv != "" {
		require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewServer(Config{DataPath: path, Title: "Test Dashboard", Logger: log})
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestIndexRendersBothTabs(t *testing.T) {
	srv := newTestServer(t, ageCity)
	rec := get(t, srv, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
	assert.Empty(t, rec.Result().Cookies())

	body := rec.Body.String()
	assert.Contains(t, body, "<title>Test Dashboard</title>")
	assert.Contains(t, body, "Data &amp; Statistics")
	assert.Contains(t, body, "Visualization")
	assert.Contains(t, body, `id="tab-data" checked`)
	assert.Contains(t, body, "Jakarta")
	assert.Contains(t, body, `id="describe"`)
	assert.Contains(t, body, warnCorrelation)
	assert.Contains(t, body, "<svg")
}

func TestIndexMissingFile(t *testing.T) {
	srv := newTestServer(t, "")
	rec := get(t, srv, "/")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "was not found next to the dashboard.")
	assert.NotContains(t, body, "Data &amp; Statistics")
	assert.NotContains(t, body, "<svg")
}

func TestIndexParseError(t *testing.T) {
	srv := newTestServer(t, "a,b\n1,2\n3,4,5\n")
	rec := get(t, srv, "/")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "File could not be read as CSV")
}

func TestIndexCarriesSelectionsInForms(t *testing.T) {
	srv := newTestServer(t, "x,y,c1,c2\n1,5,a,p\n2,3,b,q\n3,1,a,p\n")

	rec := get(t, srv, "/?tab=viz&pie=c2&box=y")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="tab-viz" checked`)
	assert.Contains(t, body, `value="c2" selected`)
	assert.Contains(t, body, `value="y" selected`)
	// other panels' forms resubmit the current choices
	assert.Contains(t, body, `<input type="hidden" name="pie" value="c2">`)
	assert.Contains(t, body, `<input type="hidden" name="box" value="y">`)

	other := get(t, srv, "/?tab=viz")
	assert.NotContains(t, other.Body.String(), `value="c2" selected`)
}

func TestIndexIgnoresUnknownSelection(t *testing.T) {
	srv := newTestServer(t, ageCity)
	rec := get(t, srv, "/?tab=viz&pie=age&line=nope")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `value="city" selected`)
	assert.Contains(t, body, `value="age" selected`)
}

func TestChartEndpoint(t *testing.T) {
	srv := newTestServer(t, ageCity)

	rec := get(t, srv, "/charts/pie?column=city")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<svg")

	rec = get(t, srv, "/charts/hist")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, srv, "/charts/scatter")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, srv, "/charts/bar?column=age")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, srv, "/charts/corr")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), warnCorrelation)
}

func TestChartEndpointMissingFile(t *testing.T) {
	srv := newTestServer(t, "")
	rec := get(t, srv, "/charts/pie")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv := newTestServer(t, ageCity)
	req := httptest.NewRequest(http.MethodGet, "/charts/line", nil)
	req.Header.Set(requestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, "req-42", rec.Header().Get(requestIDHeader))
}

func TestUnknownPathIsNotFound(t *testing.T) {
	srv := newTestServer(t, ageCity)
	assert.Equal(t, http.StatusNotFound, get(t, srv, "/favicon.ico").Code)
}
