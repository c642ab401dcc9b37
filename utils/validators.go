package utils

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	slugRe     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	usernameRe = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)
)

func matchString(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

var customValidators = map[string]validator.Func{
	"hexcolor7": matchString(hexColorRe),
	"slug":      matchString(slugRe),
	"username":  matchString(usernameRe),
}

// RegisterValidators добавляет наши правила в validator: и в gin binding, и в отдельный экземпляр
func RegisterValidators(v *validator.Validate) error {
	for name, fn := range customValidators {
		if err := v.RegisterValidation(name, fn); err != nil {
			return fmt.Errorf("register validator %s: %w", name, err)
		}
	}
	return nil
}

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New()
	if err := RegisterValidators(v); err != nil {
		panic(err)
	}
	return v
}

// ValidateStruct проверяет теги validate:"..." вне HTTP, например у данных сидера
func ValidateStruct(s interface{}) error {
	return structValidator.Struct(s)
}
