package model

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	if err := ValidateName("Reading"); err != nil {
		t.Fatalf("expected valid name, got %v", err)
	}

	err := ValidateName("  ")
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Key != KeyNameRequired {
		t.Fatalf("expected nameRequired, got %v", err)
	}
	if !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}

	// 35 Cyrillic runes are more than 35 bytes but still valid.
	if err := ValidateName(strings.Repeat("ж", MaxNameLength)); err != nil {
		t.Fatalf("expected rune-counted limit, got %v", err)
	}
	err = ValidateName(strings.Repeat("x", MaxNameLength+1))
	if !errors.As(err, &verr) || verr.Key != KeyMaxLength {
		t.Fatalf("expected maxLengthReached, got %v", err)
	}
}

func TestValidateRepeatsMinimum(t *testing.T) {
	if err := ValidateRepeats(4, 4); err != nil {
		t.Fatalf("expected valid repeats, got %v", err)
	}
	err := ValidateRepeats(3, 4)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Key != KeyMinRepeats || verr.Arg != 4 {
		t.Fatalf("expected minRepeatsError(4), got %v", err)
	}
	if !errors.Is(err, ErrInvalidRepeats) {
		t.Fatalf("expected ErrInvalidRepeats, got %v", err)
	}
	if err := ValidateRepeats(0, 0); !errors.As(err, &verr) || verr.Key != KeyRepeatsPositive {
		t.Fatalf("expected repeatsPositive, got %v", err)
	}
}

func TestParseRepeatsSanitizes(t *testing.T) {
	n, err := ParseRepeats(" 1a0 ", 0)
	if err != nil || n != 10 {
		t.Fatalf("expected 10, got %d err=%v", n, err)
	}
	_, err = ParseRepeats("abc", 0)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Key != KeyRepeatsRequired {
		t.Fatalf("expected repeatsRequired, got %v", err)
	}
	_, err = ParseRepeats("000", 0)
	if !errors.As(err, &verr) || verr.Key != KeyRepeatsPositive {
		t.Fatalf("expected repeatsPositive, got %v", err)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Field: FieldRepeats, Key: KeyMinRepeats, Arg: 7}
	got := err.Message(func(key string) string {
		if key == KeyMinRepeats {
			return "Minimum {0} repeats"
		}
		return key
	})
	if got != "Minimum 7 repeats" {
		t.Fatalf("unexpected message %q", got)
	}
}
