package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/testlane/testlane/internal/auth"
)

// displayNameRegex accepts human readable names: letters, digits, spaces and
// a small set of punctuation, 1 to 100 characters, no leading or trailing
// whitespace.
var displayNameRegex = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ._&+-]{0,98}[\p{L}\p{N}.]$|^[\p{L}\p{N}]$`)

func displayNameValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	return displayNameRegex.MatchString(val)
}

func memberRoleValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	_, ok = auth.ParseRole(val)
	return ok
}
