package serverutils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{
			name:       "validation",
			err:        NewValidationError("body must not be empty"),
			wantCode:   CodeValidation,
			wantStatus: fiber.StatusBadRequest,
		},
		{
			name:       "auth required",
			err:        NewAuthRequired("login first"),
			wantCode:   CodeAuthRequired,
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "transient io",
			err:        NewTransientIOError("store unavailable", errors.New("dial tcp: refused")),
			wantCode:   CodeTransientIO,
			wantStatus: fiber.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var appErr *AppError
			if !errors.As(tt.err, &appErr) {
				t.Fatal("not an AppError")
			}
			if appErr.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", appErr.Code, tt.wantCode)
			}
			if appErr.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", appErr.Status, tt.wantStatus)
			}
		})
	}
}

func TestCodePredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewTransientIOError("store unavailable", errors.New("down")))
	if !IsTransientIO(wrapped) {
		t.Error("IsTransientIO missed a wrapped AppError")
	}
	if IsValidation(wrapped) {
		t.Error("IsValidation matched a transient IO error")
	}
	if IsAuthRequired(errors.New("plain")) {
		t.Error("IsAuthRequired matched a plain error")
	}
}

func TestTransientIOKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := NewTransientIOError("store unavailable", cause)
	if !errors.Is(err, cause) {
		t.Error("cause lost through Unwrap")
	}
	if err.Error() != "store unavailable: dial tcp: refused" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestValidateRequest(t *testing.T) {
	type sendRequest struct {
		Channel string `json:"channel" validate:"required"`
		Body    string `json:"body" validate:"required"`
	}

	if err := ValidateRequest(sendRequest{Channel: "main", Body: "hi"}); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	err := ValidateRequest(sendRequest{Channel: "main"})
	if !IsValidation(err) {
		t.Fatalf("missing field = %v, want validation error", err)
	}
}
