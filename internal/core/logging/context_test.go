package logging

import (
	"context"
	"testing"
)

func TestWithStepID(t *testing.T) {
	ctx := WithStepID(context.Background(), "3")

	if got := GetStepID(ctx); got != "3" {
		t.Errorf("GetStepID() = %q, want %q", got, "3")
	}
}

func TestWithRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")

	if got := GetRequestID(ctx); got != "req-1" {
		t.Errorf("GetRequestID() = %q, want %q", got, "req-1")
	}
}

func TestGetIDs_NotPresent(t *testing.T) {
	ctx := context.Background()

	if got := GetStepID(ctx); got != "" {
		t.Errorf("GetStepID() = %q, want empty string", got)
	}
	if got := GetRequestID(ctx); got != "" {
		t.Errorf("GetRequestID() = %q, want empty string", got)
	}
}
