package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidName    = errors.New("model: invalid goal name")
	ErrInvalidRepeats = errors.New("model: invalid repeat count")
)

// Translation keys carried by validation errors.
const (
	KeyNameRequired    = "nameRequired"
	KeyMaxLength       = "maxLengthReached"
	KeyRepeatsRequired = "repeatsRequired"
	KeyRepeatsPositive = "repeatsPositive"
	KeyMinRepeats      = "minRepeatsError"
)

type Field string

const (
	FieldName    Field = "name"
	FieldRepeats Field = "repeats"
)

// ValidationError is a field-level rejection of user input. Key names a
// translation entry; Arg fills its {0} placeholder when non-zero.
type ValidationError struct {
	Field Field
	Key   string
	Arg   int
	err   error
}

func (e *ValidationError) Error() string {
	if e.Arg != 0 {
		return fmt.Sprintf("%s: %s (%d)", e.Field, e.Key, e.Arg)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Key)
}

func (e *ValidationError) Unwrap() error { return e.err }

// Message renders the error through a translation function.
func (e *ValidationError) Message(translate func(string) string) string {
	msg := translate(e.Key)
	if e.Arg != 0 {
		msg = strings.ReplaceAll(msg, "{0}", strconv.Itoa(e.Arg))
	}
	return msg
}

func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: FieldName, Key: KeyNameRequired, err: ErrInvalidName}
	}
	if nameLength(name) > MaxNameLength {
		return &ValidationError{Field: FieldName, Key: KeyMaxLength, err: ErrInvalidName}
	}
	return nil
}

// ValidateRepeats checks a repeat count; minRepeats <= 0 disables the
// lower bound beyond positivity.
func ValidateRepeats(repeats, minRepeats int) error {
	if repeats <= 0 {
		return &ValidationError{Field: FieldRepeats, Key: KeyRepeatsPositive, err: ErrInvalidRepeats}
	}
	if minRepeats > 0 && repeats < minRepeats {
		return &ValidationError{Field: FieldRepeats, Key: KeyMinRepeats, Arg: minRepeats, err: ErrInvalidRepeats}
	}
	return nil
}

// ParseRepeats turns raw form input into a repeat count. Non-digit
// characters are stripped first, matching the numeric input widget.
func ParseRepeats(raw string, minRepeats int) (int, error) {
	digits := SanitizeNumeric(raw)
	if digits == "" {
		return 0, &ValidationError{Field: FieldRepeats, Key: KeyRepeatsRequired, err: ErrInvalidRepeats}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, &ValidationError{Field: FieldRepeats, Key: KeyRepeatsPositive, err: fmt.Errorf("%w: %v", ErrInvalidRepeats, err)}
	}
	if err := ValidateRepeats(n, minRepeats); err != nil {
		return 0, err
	}
	return n, nil
}

func SanitizeNumeric(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
