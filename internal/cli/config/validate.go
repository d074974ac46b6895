package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration for values no command could use:
// unknown output formats, unparseable listen addresses, severity names
// that are not a recognized level, and worker counts outside 0-64.
func (c *Config) Validate() error {
	err := structValidator.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		return fmt.Errorf("invalid config: %s %q fails %q", f.Namespace(), fmt.Sprint(f.Value()), f.Tag())
	}
	return fmt.Errorf("invalid config: %w", err)
}
