package grid

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("timelabel", func(fl validator.FieldLevel) bool {
		_, _, ok := parseLabel(fl.Field().String())
		return ok
	})
	return v
}

func validateScope(scope Scope) error {
	if err := validate.Struct(scope); err != nil {
		return fmt.Errorf("%w: scope: %v", ErrValidation, err)
	}
	if _, ok := ShapeByName(scope.Shape.Name); !ok {
		return fmt.Errorf("%w: unknown table %q", ErrValidation, scope.Shape.Name)
	}
	return nil
}

// validateKey checks key against the scope shape and returns it with a
// canonical time label. Shapes without categories drop any category sent.
func validateKey(scope Scope, key Key) (Key, error) {
	if err := validateScope(scope); err != nil {
		return Key{}, err
	}
	key.Time = strings.TrimSpace(key.Time)
	if err := validate.Struct(key); err != nil {
		return Key{}, fmt.Errorf("%w: key: %v", ErrValidation, err)
	}
	label, err := NormalizeLabel(key.Time)
	if err != nil {
		return Key{}, err
	}
	key.Time = label

	if !scope.Shape.HasCategory() {
		key.Category = ""
		return key, nil
	}
	if scope.Shape.slotIndex(key.Category) < 0 {
		return Key{}, fmt.Errorf("%w: category %q not one of %v", ErrValidation, key.Category, scope.Shape.Categories)
	}
	return key, nil
}
