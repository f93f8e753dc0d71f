package redact

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is returned when redaction options are malformed. It is the
// only error kind this package produces: configuration problems are deterministic, so
// they surface immediately and are never retried.
var ErrInvalidConfiguration = errors.New("invalid redaction configuration")

// OptionSensitiveNames is the single option key recognized by ParseConfig.
const OptionSensitiveNames = "sensitive_argument_names"

// Config carries the options for a redaction pass.
type Config struct {
	// SensitiveNames fully replaces DefaultSensitiveNames when non-nil; it does not
	// extend them. Leave nil to mask the defaults.
	SensitiveNames []string
}

// ParseConfig validates an untyped option map, for example one decoded from JSON, and
// converts it into a Config. It fails with ErrInvalidConfiguration when an unrecognized
// key is present or when sensitive_argument_names is not a flat sequence of strings.
func ParseConfig(opts map[string]any) (Config, error) {
	var cfg Config
	for key, val := range opts {
		if key != OptionSensitiveNames {
			return Config{}, fmt.Errorf("%w: unrecognized option, key=%s", ErrInvalidConfiguration, key)
		}
		names, err := stringSlice(val)
		if err != nil {
			return Config{}, err
		}
		cfg.SensitiveNames = names
	}
	return cfg, nil
}

// stringSlice converts val into []string, accepting either a typed string slice or the
// []any form produced by generic decoders.
func stringSlice(val any) ([]string, error) {
	switch v := val.(type) {
	case []string:
		return v, nil
	case []any:
		names := make([]string, len(v))
		for i, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s must contain only strings, index=%d, got=%T",
					ErrInvalidConfiguration, OptionSensitiveNames, i, e)
			}
			names[i] = s
		}
		return names, nil
	default:
		return nil, fmt.Errorf("%w: %s must be a sequence of strings, got=%T",
			ErrInvalidConfiguration, OptionSensitiveNames, val)
	}
}
