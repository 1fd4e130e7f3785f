package validation

import (
	"errors"
	"testing"

	tperrors "github.com/CodeSingerAlex/ThreadPoolUtil/pkg/common/errors"
)

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"positive", 1, false},
		{"large positive", 1 << 20, false},
		{"zero", 0, true},
		{"negative", -5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("pool", "queueCapacity", tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePositive(%d) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && !tperrors.IsValidationError(err) {
				t.Errorf("error should be a ValidationError, got %T", err)
			}
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	if err := ValidateNonNegative("pool", "idleWorkers", 0); err != nil {
		t.Errorf("zero should be valid, got %v", err)
	}
	if err := ValidateNonNegative("pool", "idleWorkers", -1); err == nil {
		t.Error("negative value should fail validation")
	}
}

func TestValidateNotNil(t *testing.T) {
	if err := ValidateNotNil("pool", "task", "not-nil"); err != nil {
		t.Errorf("non-nil should be valid, got %v", err)
	}

	err := ValidateNotNil("pool", "task", nil)
	if err == nil {
		t.Fatal("nil value should fail validation")
	}
	if !errors.Is(err, tperrors.ErrInvalidConfiguration) {
		t.Error("validation error should wrap ErrInvalidConfiguration")
	}
}

func TestValidateNotEmpty(t *testing.T) {
	if err := ValidateNotEmpty("schedule", "id", "job-1"); err != nil {
		t.Errorf("non-empty should be valid, got %v", err)
	}
	if err := ValidateNotEmpty("schedule", "id", ""); err == nil {
		t.Error("empty string should fail validation")
	}
}
