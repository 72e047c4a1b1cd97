package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessgate/internal/detect"
)

func newTemplateRouter() *gin.Engine {
	h := NewTemplateHandler(detect.NewDetector())
	router := gin.New()
	router.GET("/bulk-upload/templates/supported", h.Supported)
	router.GET("/bulk-upload/templates/:tableType", h.Template)
	return router
}

func TestTemplateHandler_Supported(t *testing.T) {
	router := newTemplateRouter()

	req := httptest.NewRequest(http.MethodGet, "/bulk-upload/templates/supported", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Tables []struct {
			Table           string   `json:"table_type"`
			RequiredColumns []string `json:"required_columns"`
		} `json:"tables"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Tables, 3)
}

func TestTemplateHandler_Template(t *testing.T) {
	t.Run("serves csv template", func(t *testing.T) {
		router := newTemplateRouter()

		req := httptest.NewRequest(http.MethodGet, "/bulk-upload/templates/employees", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "employees_template.csv")
		assert.True(t, strings.HasPrefix(w.Body.String(), "employee_id"))
	})

	t.Run("unknown table returns 404", func(t *testing.T) {
		router := newTemplateRouter()

		req := httptest.NewRequest(http.MethodGet, "/bulk-upload/templates/widgets", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
