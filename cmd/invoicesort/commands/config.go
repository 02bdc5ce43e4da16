package commands

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jmylchreest/invoicesort/internal/output"
	"github.com/jmylchreest/invoicesort/pkg/llm"
)

// Config is the resolved command configuration.
type Config struct {
	Folder        string        `validate:"required"`
	Provider      string        `validate:"required,provider"`
	Model         string
	APIKey        string        `validate:"required"`
	BaseURL       string        `validate:"omitempty,url"`
	Timeout       time.Duration `validate:"gte=0"`
	SummaryFormat string        `validate:"summary_format"`
	XLSX          string        `validate:"omitempty,endswith=.xlsx"`
	Strict        bool
	Debug         bool
	Quiet         bool
	LogJSON       bool
}

var validate = newValidator()

// newValidator registers the provider and summary_format tags, which accept
// the registered providers and output formats.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("provider", func(fl validator.FieldLevel) bool {
		return llm.IsRegistered(fl.Field().String())
	})
	_ = v.RegisterValidation("summary_format", func(fl validator.FieldLevel) bool {
		return slices.Contains(output.Formats, output.Format(fl.Field().String()))
	})
	return v
}

// loadConfig resolves the configuration from v. The API key falls back to
// the provider's own environment variable (GEMINI_API_KEY etc.).
func loadConfig(v *viper.Viper, folder string) (Config, error) {
	cfg := Config{
		Folder:        folder,
		Provider:      strings.ToLower(v.GetString("provider")),
		Model:         v.GetString("model"),
		APIKey:        v.GetString("api_key"),
		BaseURL:       v.GetString("base_url"),
		Timeout:       v.GetDuration("timeout"),
		SummaryFormat: strings.ToLower(v.GetString("summary_format")),
		XLSX:          v.GetString("xlsx"),
		Strict:        v.GetBool("strict"),
		Debug:         v.GetBool("debug"),
		Quiet:         v.GetBool("quiet"),
		LogJSON:       v.GetBool("log_json"),
	}
	if cfg.APIKey == "" {
		if env := llm.APIKeyEnv(cfg.Provider); env != "" {
			cfg.APIKey = os.Getenv(env)
		}
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return Config{}, err
		}
		msgs := make([]string, 0, len(verrs))
		for _, e := range verrs {
			msgs = append(msgs, formatConfigError(cfg, e))
		}
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
	}
	return cfg, nil
}

// formatConfigError creates a human-readable error message.
func formatConfigError(cfg Config, e validator.FieldError) string {
	switch {
	case e.Field() == "APIKey":
		env := llm.APIKeyEnv(cfg.Provider)
		return fmt.Sprintf("missing API key for %s: set %s, INVOICESORT_API_KEY or --api-key", cfg.Provider, env)
	case e.Tag() == "provider":
		return fmt.Sprintf("%s must be one of: %s (got %q)", e.Field(), strings.Join(llm.AvailableProviders(), ", "), e.Value())
	case e.Tag() == "summary_format":
		return fmt.Sprintf("%s must be one of: %s (got %q)", e.Field(), output.FormatList(), e.Value())
	case e.Tag() == "url":
		return fmt.Sprintf("%s must be a valid URL", e.Field())
	case e.Tag() == "gte":
		return fmt.Sprintf("%s must not be negative", e.Field())
	case e.Tag() == "endswith":
		return fmt.Sprintf("%s must end with %s", e.Field(), e.Param())
	case e.Tag() == "required":
		return fmt.Sprintf("%s is required", e.Field())
	default:
		return fmt.Sprintf("%s failed validation '%s'", e.Field(), e.Tag())
	}
}
