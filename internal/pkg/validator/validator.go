// Package validator wraps go-playground/validator with English messages and
// snake_case field keys suitable for JSON error responses.
package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	libvalidator "github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// ErrTranslatorNotFound indicates the English translator is unavailable.
var ErrTranslatorNotFound = errors.New("validator: translator not found")

// Validator validates annotated structs.
type Validator interface {
	// Validate returns nil or a ValidationError describing each failed field.
	Validate(v any) error
}

// ValidationError maps snake_case field names to human-readable messages.
type ValidationError map[string]string

// Error implements the error interface.
func (ve ValidationError) Error() string {
	if len(ve) == 0 {
		return "validation error"
	}

	b, err := json.Marshal(ve)
	if err != nil {
		return fmt.Sprintf("validation error (marshal failed: %v)", err)
	}

	return string(b)
}

// Values returns the field error map.
func (ve ValidationError) Values() map[string]string {
	return ve
}

// V10 implements Validator with go-playground/validator v10.
type V10 struct {
	validate   *libvalidator.Validate
	translator ut.Translator
}

// NewV10 constructs a V10 validator with English translations.
func NewV10() (*V10, error) {
	validate := libvalidator.New(libvalidator.WithRequiredStructEnabled())

	enLang := en.New()
	trans, ok := ut.New(enLang, enLang).GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("validator: register translations: %w", err)
	}

	return &V10{validate: validate, translator: trans}, nil
}

// Validate validates v and returns a ValidationError on failure.
func (v *V10) Validate(value any) error {
	err := v.validate.Struct(value)
	if err == nil {
		return nil
	}

	var fieldErrs libvalidator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(ValidationError, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[toSnake(fe.Field())] = fe.Translate(v.translator)
	}

	return out
}

// toSnake converts exported field names to snake_case, keeping acronym runs
// together (UserID -> user_id).
func toSnake(s string) string {
	runes := []rune(s)

	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range runes {
		if unicode.IsUpper(r) {
			boundary := i > 0 && (!unicode.IsUpper(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1])))
			if boundary {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}

	return b.String()
}
