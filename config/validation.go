package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the configuration against its struct tags and reports the
// first offending field with a readable message.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fieldErr := validationErrors[0]
		return fmt.Errorf("field %s failed %q validation", fieldName(fieldErr), fieldErr.Tag())
	}
	return err
}

func fieldName(err validator.FieldError) string {
	// Strip the struct name prefix from the namespace ("Config.BaseURL" -> "BaseURL").
	if _, name, ok := strings.Cut(err.Namespace(), "."); ok {
		return name
	}
	return err.Field()
}
