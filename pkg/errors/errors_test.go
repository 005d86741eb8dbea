package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/vladyslavplus/KosherClouds-sub000/domain/order"
	"github.com/vladyslavplus/KosherClouds-sub000/domain/shared"
)

func TestFromDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   ErrorCode
		wantStatus int
	}{
		{"nil", nil, "", 0},
		{"order not found", order.NewOrderNotFoundError("o1"), CodeOrderNotFound, http.StatusNotFound},
		{"item not found", order.NewItemNotFoundError("i1"), CodeItemNotFound, http.StatusNotFound},
		{"not owner", order.NewNotOwnerError("o1", "u2"), CodeForbidden, http.StatusForbidden},
		{"invalid transition", order.NewInvalidTransitionError(order.StatusCanceled, order.ActionMarkPaid), CodeInvalidOrderState, http.StatusUnprocessableEntity},
		{"cart empty", order.NewInvalidStateError(order.ErrCartEmpty), CodeInvalidOrderState, http.StatusUnprocessableEntity},
		{"version conflict", order.NewConcurrentModificationError("o1"), CodeConcurrentModification, http.StatusConflict},
		{"validation", shared.NewValidationError("order", "user_id", "required"), CodeValidation, http.StatusBadRequest},
		{"upstream outage", shared.NewUpstreamError("catalog", stderrors.New("timeout")), CodeUpstreamUnavailable, http.StatusBadGateway},
		{"unknown", stderrors.New("boom"), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromDomainError(tt.err)
			if tt.err == nil {
				if got != nil {
					t.Fatalf("FromDomainError(nil) = %v, want nil", got)
				}
				return
			}
			if got.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", got.Code, tt.wantCode)
			}
			if got.HTTPStatusCode() != tt.wantStatus {
				t.Errorf("status = %d, want %d", got.HTTPStatusCode(), tt.wantStatus)
			}
			if !stderrors.Is(got, tt.err) {
				t.Error("cause not reachable through Unwrap")
			}
		})
	}
}

func TestFromDomainErrorHidesInternals(t *testing.T) {
	got := FromDomainError(stderrors.New("dsn user:password@tcp(db)/orders"))
	if got.Message != "internal server error" {
		t.Errorf("internal message leaked: %q", got.Message)
	}
}

func TestFromDomainErrorPassesAppErrors(t *testing.T) {
	original := TooManyRequests("slow down")
	if got := FromDomainError(original); got != original {
		t.Errorf("AppError was rewrapped: %v", got)
	}
}

func TestIs(t *testing.T) {
	err := NotFound("missing")
	if !Is(err, CodeNotFound) {
		t.Error("Is() = false for matching code")
	}
	if Is(err, CodeConflict) {
		t.Error("Is() = true for wrong code")
	}
	if Is(stderrors.New("plain"), CodeNotFound) {
		t.Error("Is() = true for non-AppError")
	}
}
