package errors

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestSentinelMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrClosed", ErrClosed, "resource is closed"},
		{"ErrTimeout", ErrTimeout, "operation timed out"},
		{"ErrCapacityExceeded", ErrCapacityExceeded, "capacity exceeded"},
		{"ErrInvalidConfiguration", ErrInvalidConfiguration, "invalid configuration"},
		{"ErrRateLimited", ErrRateLimited, "rate limited"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "without hint",
			err:  NewValidationError("bucket", "rate", -1, "must be positive"),
			want: "bucket: invalid rate=-1 (must be positive)",
		},
		{
			name: "with hint",
			err: NewValidationError("bucket", "capacity", 0, "must be positive").
				WithHint("use a value greater than 0"),
			want: "bucket: invalid capacity=0 (must be positive) - use a value greater than 0",
		},
		{
			name: "string value",
			err:  NewValidationError("schedule", "cron", "", "cannot be empty"),
			want: "schedule: invalid cron= (cannot be empty)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !errors.Is(tt.err, ErrInvalidConfiguration) {
				t.Error("ValidationError should wrap ErrInvalidConfiguration")
			}
		})
	}
}

func TestValidationError_WithHintChaining(t *testing.T) {
	err := NewValidationError("test", "field", 0, "invalid")
	if got := err.WithHint("new hint"); got != err {
		t.Error("WithHint should return the same instance")
	}
	if err.Hint != "new hint" {
		t.Errorf("Hint = %q, want %q", err.Hint, "new hint")
	}
}

func TestLimitExceededError(t *testing.T) {
	err := NewLimitExceededError(5, 2, 300*time.Millisecond)

	want := "rate limit exceeded: requested 5, available 2 (retry after 300ms)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrRateLimited) {
		t.Error("LimitExceededError should wrap ErrRateLimited")
	}
	if err.Requested != 5 || err.Available != 2 {
		t.Errorf("fields = {%d %d}, want {5 2}", err.Requested, err.Available)
	}
}

func TestOperationError(t *testing.T) {
	cause := errors.New("connection refused")

	err := NewOperationError("metrics", "Register", cause)
	if got, want := err.Error(), "metrics.Register failed: connection refused"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = err.WithContext("duplicate collector")
	if got, want := err.Error(), "metrics.Register failed: connection refused (duplicate collector)"; got != want {
		t.Errorf("Error() with context = %q, want %q", got, want)
	}

	if !errors.Is(err, cause) {
		t.Error("OperationError should wrap its cause")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"timeout error", ErrTimeout, true},
		{"rate limited error", ErrRateLimited, true},
		{"limit exceeded", NewLimitExceededError(1, 0, time.Second), true},
		{"closed error", ErrClosed, false},
		{"capacity exceeded", ErrCapacityExceeded, false},
		{"random error", errors.New("random"), false},
		{"wrapped timeout", &OperationError{Cause: ErrTimeout}, true},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsTemporary(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"timeout error", ErrTimeout, true},
		{"capacity exceeded", ErrCapacityExceeded, true},
		{"rate limited error", ErrRateLimited, false},
		{"random error", errors.New("random"), false},
		{"wrapped capacity", &OperationError{Cause: ErrCapacityExceeded}, true},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTemporary(tt.err); got != tt.want {
				t.Errorf("IsTemporary() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsValidationError(t *testing.T) {
	verr := NewValidationError("test", "field", 0, "test")

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"validation error", verr, true},
		{"wrapped validation error", &OperationError{Cause: verr}, true},
		{"fmt-wrapped validation error", fmt.Errorf("setup: %w", verr), true},
		{"standard error", errors.New("test"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidationError(tt.err); got != tt.want {
				t.Errorf("IsValidationError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsRateLimited(t *testing.T) {
	if !IsRateLimited(NewLimitExceededError(2, 1, 0)) {
		t.Error("IsRateLimited should match LimitExceededError")
	}
	if IsRateLimited(ErrTimeout) {
		t.Error("IsRateLimited should not match ErrTimeout")
	}
	if IsRateLimited(nil) {
		t.Error("IsRateLimited should not match nil")
	}
}

func TestRetryAfter(t *testing.T) {
	d, ok := RetryAfter(NewLimitExceededError(3, 1, 250*time.Millisecond))
	if !ok || d != 250*time.Millisecond {
		t.Errorf("RetryAfter = (%v, %v), want (250ms, true)", d, ok)
	}

	d, ok = RetryAfter(fmt.Errorf("admission: %w", NewLimitExceededError(1, 0, time.Second)))
	if !ok || d != time.Second {
		t.Errorf("RetryAfter on wrapped error = (%v, %v), want (1s, true)", d, ok)
	}

	if _, ok := RetryAfter(errors.New("other")); ok {
		t.Error("RetryAfter should report false for unrelated errors")
	}
}
