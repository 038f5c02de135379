package template

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func TestNonEmptyString(t *testing.T) {
	if err := validation.Validate("lesson", NonEmptyString); err != nil {
		t.Fatalf("expected value to pass, got %v", err)
	}
	if err := validation.Validate("   ", NonEmptyString); err == nil {
		t.Fatal("expected blank string to fail")
	}
	if err := validation.Validate(42, NonEmptyString); err == nil {
		t.Fatal("expected non-string to fail")
	}
}

func TestNumericString(t *testing.T) {
	for _, value := range []any{15, int64(15), 15.5, "15", " 15 "} {
		if err := validation.Validate(value, NumericString); err != nil {
			t.Fatalf("expected %v (%T) to pass, got %v", value, value, err)
		}
	}
	for _, value := range []any{"fifteen", "", true} {
		if err := validation.Validate(value, NumericString); err == nil {
			t.Fatalf("expected %v (%T) to fail", value, value)
		}
	}
}
