package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeInvalidCredentials, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeConcurrencyConflict, http.StatusConflict},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeInvalidEffectiveDate, http.StatusUnprocessableEntity},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"SOMETHING_NEW", http.StatusInternalServerError},
		{"INVALID_AMOUNT", http.StatusBadRequest},
		{"INVALID_DESCRIPTION", http.StatusBadRequest},
		{"INVALID_MONTH", http.StatusBadRequest},
		{"INVALID_YEAR", http.StatusBadRequest},
		{"INVALID_DRIVER", http.StatusBadRequest},
		{"INVALID_ROUTE", http.StatusBadRequest},
		{"INVALID_BILLING_MODE", http.StatusBadRequest},
		{"INVALID_EXPENSE_TYPE", http.StatusBadRequest},
		{"INVALID_ITEM_TYPE", http.StatusBadRequest},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetHTTPStatus(tt.code), tt.code)
	}
}
