package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/timeline-dev/timelines/internal/logging"
	"github.com/timeline-dev/timelines/internal/types"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestLogger(logging.New(&buf, "debug")))
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(types.ContextRequestIDKey)) })
	r.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	id := w.Header().Get(types.RequestIDHeader)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, w.Body.String())
	assert.Contains(t, buf.String(), "request_id="+id)
	assert.Contains(t, buf.String(), "level=INFO")

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	req.Header.Set(types.RequestIDHeader, incoming)

	buf.Reset()
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, incoming, w.Header().Get(types.RequestIDHeader))
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "status=500")

	req = httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(types.RequestIDHeader, "not-a-uuid")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(types.RequestIDHeader))
}
