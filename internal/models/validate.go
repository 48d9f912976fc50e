package models

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Valid reports whether a loaded record satisfies its field constraints.
// Loaders drop records that do not.
func Valid(record any) bool {
	return validate.Struct(record) == nil
}
