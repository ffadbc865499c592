package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	RegisterValidators()
	return gin.New()
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

// detailFields returns field -> message for a VALIDATION_ERROR body.
func detailFields(t *testing.T, body map[string]interface{}) map[string]string {
	t.Helper()
	raw, ok := body["details"].([]interface{})
	require.True(t, ok, "details missing: %v", body)
	out := make(map[string]string, len(raw))
	for _, d := range raw {
		m := d.(map[string]interface{})
		out[m["field"].(string)] = m["message"].(string)
	}
	return out
}

const validProfileJSON = `{
	"name": "Ada Lovelace",
	"email": "ada@example.com",
	"education": "University of London",
	"github_url": "https://github.com/ada",
	"skills": ["Go", {"name": "Python", "level": 4}],
	"projects": [{"title": "Engine", "description": "Analytical engine notes", "links": [{"name": "repo", "url": "https://github.com/ada/engine"}]}],
	"work_experience": [{"company": "Babbage", "position": "Analyst", "start_date": "1842-01-01", "end_date": "1843-06-30"}]
}`

func doRequestWithToken(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}
