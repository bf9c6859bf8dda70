package validation

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	// Use a singleton validator instance to avoid recreating it
	validatorInstance *validator.Validate
	validatorOnce     sync.Once
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInstance = validator.New(validator.WithRequiredStructEnabled())

		// register function to get tag name from json tags.
		validatorInstance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]

			if name == "-" {
				return ""
			}

			return name
		})
	})

	return validatorInstance
}

// Validate checks input against its struct tags and returns the failures
// keyed by field name. Messages are looked up as "<field>.<tag>"; a failure
// without a registered message falls back to the validator's own text.
func Validate(input any, messages map[string]string) map[string][]string {
	err := getValidator().Struct(input)

	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors

	if !errors.As(err, &validationErrors) {
		return map[string][]string{"_": {err.Error()}}
	}

	e := make(map[string][]string)

	for _, x := range validationErrors {
		fieldKey := x.Field()
		messageKey := fmt.Sprintf("%s.%s", fieldKey, x.Tag())
		message, ok := messages[messageKey]

		if !ok {
			slog.Debug("Validation error message not found", "key", messageKey)
			message = x.Error()
		}

		e[fieldKey] = append(e[fieldKey], message)
	}

	return e
}
