package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fleet/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type bindingProbe struct {
	Email string `json:"email" binding:"required,email"`
	Pages int    `json:"pages" binding:"gte=1"`
}

func newBindingTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := &BaseHandler{}
	engine.POST("/probe", func(c *gin.Context) {
		var req bindingProbe
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindingError(c, err)
			return
		}
		h.Success(c, req)
	})
	return engine
}

func TestBindingError_FieldMessages(t *testing.T) {
	router := newBindingTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/probe",
		strings.NewReader(`{"email":"not-an-email","pages":0}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")
	assert.Contains(t, w.Body.String(), "invalid email format")
	assert.Contains(t, w.Body.String(), "greater than or equal to 1")
}

func TestHandleDomainError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &BaseHandler{}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation code", shared.NewDomainError("INVALID_AMOUNT", "Amount must not be zero"), http.StatusBadRequest},
		{"unlisted validation code", shared.NewDomainError("INVALID_MONTH", "Month must be 1-12, got 13"), http.StatusBadRequest},
		{"state conflict", shared.NewDomainError("INVALID_STATE", "Summary is approved"), http.StatusUnprocessableEntity},
		{"not found sentinel", shared.ErrNotFound, http.StatusNotFound},
		{"non-domain error", assert.AnError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			h.HandleDomainError(c, tt.err)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestBindingError_MalformedBody(t *testing.T) {
	router := newBindingTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/probe", strings.NewReader(`{"email":`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "BAD_REQUEST")
}
