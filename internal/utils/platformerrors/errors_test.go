package platformerrors

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestErrorTypeToHTTPStatus(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		want      int
	}{
		{ErrorTypeNotFound, http.StatusNotFound},
		{ErrorTypeValidation, http.StatusBadRequest},
		{ErrorTypeConflict, http.StatusConflict},
		{ErrorTypeExternal, http.StatusBadGateway},
		{ErrorTypeDatabaseError, http.StatusInternalServerError},
		{ErrorTypeInternal, http.StatusInternalServerError},
		{ErrorType("made-up"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := ErrorTypeToHTTPStatus(tt.errorType); got != tt.want {
			t.Fatalf("%s: got %d, want %d", tt.errorType, got, tt.want)
		}
	}
}

func TestAsErrorKeepsOriginalType(t *testing.T) {
	ctx := context.Background()
	inner := NewError(ctx, LayerInfrastructure, ErrorTypeExternal, "upstream down", nil)

	wrapped := AsError(ctx, LayerDomain, inner, "geocode failed")
	if wrapped.Type != ErrorTypeExternal {
		t.Fatalf("expected external type preserved, got %s", wrapped.Type)
	}
	if wrapped.Layer != LayerDomain {
		t.Fatalf("expected re-wrapped layer, got %s", wrapped.Layer)
	}
	if !errors.Is(wrapped, inner) {
		t.Fatal("expected wrapped error to unwrap to the original")
	}
}

func TestAsErrorDefaultsToInternal(t *testing.T) {
	wrapped := AsError(context.Background(), LayerDomain, errors.New("boom"), "something failed")
	if wrapped.Type != ErrorTypeInternal {
		t.Fatalf("expected internal type, got %s", wrapped.Type)
	}
}

func TestAsErrorNil(t *testing.T) {
	if AsError(context.Background(), LayerDomain, nil, "ignored") != nil {
		t.Fatal("expected nil for nil error")
	}
}

func TestRequestIDFlowsFromContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-42")
	err := NewError(ctx, LayerHandler, ErrorTypeValidation, "bad input", nil)
	if err.RequestID != "req-42" {
		t.Fatalf("expected request id on error, got %q", err.RequestID)
	}
}

func TestIsErrorType(t *testing.T) {
	err := NewError(context.Background(), LayerDomain, ErrorTypeNotFound, "missing", nil)
	if !IsErrorType(err, ErrorTypeNotFound) {
		t.Fatal("expected match for not found")
	}
	if IsErrorType(err, ErrorTypeValidation) {
		t.Fatal("unexpected match for validation")
	}
	if IsErrorType(errors.New("plain"), ErrorTypeInternal) {
		t.Fatal("plain errors are not platform errors")
	}
}
