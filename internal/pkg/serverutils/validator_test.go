package serverutils

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
)

type sampleRequest struct {
	Message string `validate:"required"`
	Email   string `validate:"omitempty,email"`
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     sampleRequest
		wantErr bool
	}{
		{"valid", sampleRequest{Message: "hi"}, false},
		{"missing required field", sampleRequest{}, true},
		{"bad email", sampleRequest{Message: "hi", Email: "not-an-email"}, true},
		{"empty optional email ok", sampleRequest{Message: "hi", Email: ""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr = %t", err, tt.wantErr)
			}
			if err != nil {
				var fiberErr *fiber.Error
				if !errors.As(err, &fiberErr) || fiberErr.Code != fiber.StatusBadRequest {
					t.Errorf("expected a fiber 400 error, got %v", err)
				}
			}
		})
	}
}
