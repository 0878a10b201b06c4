package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pbaille/catkw/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, withStore bool) *Server {
	t.Helper()
	var s *store.Store
	if withStore {
		var err error
		s, err = store.New(filepath.Join(t.TempDir(), "catkw.db"))
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
	}
	return New(s, zap.NewNop())
}

func do(t *testing.T, srv http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t, false), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestDerive(t *testing.T) {
	srv := newTestServer(t, false)

	body := `{"paths":["A|B|C","A|B|D","A|E"],"blacklist":["A|B|C","A|B|D","X|Y|Z"]}`
	rec := do(t, srv, http.MethodPost, "/derive", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp DeriveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.RunID)
	assert.Equal(t, []string{"A|B"}, resp.Report.Keywords)
	assert.Equal(t, []string{"X|Y|Z"}, resp.Report.Unknown)
}

func TestDeriveValidation(t *testing.T) {
	srv := newTestServer(t, false)

	rec := do(t, srv, http.MethodPost, "/derive", "{")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPost, "/derive", `{"blacklist":["A"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPost, "/derive", `{"paths":["A"],"save":true}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSavedRuns(t *testing.T) {
	srv := newTestServer(t, true)

	rec := do(t, srv, http.MethodPost, "/derive", `{"paths":["A|B","A|C"],"blacklist":["A|B","A|C"],"save":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp DeriveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.RunID)

	rec = do(t, srv, http.MethodGet, "/runs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Runs []struct {
			ID string `json:"id"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Runs, 1)
	assert.Equal(t, resp.RunID, list.Runs[0].ID)

	rec = do(t, srv, http.MethodGet, "/runs/"+resp.RunID[:8], "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"keywords":["A"]`)

	rec = do(t, srv, http.MethodGet, "/runs/ffffffff-none", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
