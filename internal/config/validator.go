package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterStructValidation(validateBackends, Config{})

	return validate, trans, nil
}

// validateBackends checks the settings each selected backend needs.
func validateBackends(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Config)

	if cfg.Backend == BackendREST && cfg.REST.BaseURL == "" {
		sl.ReportError(cfg.REST.BaseURL, "rest.base_url", "BaseURL", "required", "")
	}
	if cfg.Blobs == BlobsMinio {
		required := []struct{ name, value string }{
			{"minio.endpoint", cfg.Minio.Endpoint},
			{"minio.access_key", cfg.Minio.AccessKey},
			{"minio.secret_key", cfg.Minio.SecretKey},
			{"minio.bucket", cfg.Minio.Bucket},
		}
		for _, field := range required {
			if field.value == "" {
				sl.ReportError(field.value, field.name, field.name, "required", "")
			}
		}
	}
}

// Validate reports every invalid setting in one error.
func (c *Config) Validate() error {
	validate, trans, err := newValidator()
	if err != nil {
		return err
	}

	err = validate.Struct(*c)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("validate configuration: %w", err)
	}
	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fe.Translate(trans))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
}
