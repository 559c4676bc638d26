package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	numericCodeMin  = 100_000
	numericCodeSpan = 900_000
)

// NumericCodeGenerator produces one-shot numeric verification codes.
type NumericCodeGenerator interface {
	Generate() (string, error)
}

// NumericCode draws 6-digit codes uniformly from [100000, 999999] using
// crypto/rand. A failing random source is the only error path and indicates
// a broken environment rather than a per-call condition.
type NumericCode struct{}

// NewNumericCode returns a NumericCode generator.
func NewNumericCode() *NumericCode {
	return &NumericCode{}
}

// Generate returns a 6-digit code as a string.
func (NumericCode) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(numericCodeSpan))
	if err != nil {
		return "", fmt.Errorf("otp: numeric code generation: %w", err)
	}

	return fmt.Sprintf("%06d", n.Int64()+numericCodeMin), nil
}
