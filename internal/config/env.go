package config

import (
	"fmt"
	"os"
	"strings"
)

// EnvPrefix is the prefix of every environment variable Quire reads.
const EnvPrefix = "QUIRE_"

// envSetter applies one environment variable to a config.
type envSetter func(c *Config, value string) error

// envMapping maps environment variables to the settings they override.
var envMapping = map[string]envSetter{
	"QUIRE_WORD_CLASSIFIER": func(c *Config, v string) error {
		c.Engine.WordClassifier = strings.ToLower(v)
		return nil
	},
	"QUIRE_EMPTY_NODES": func(c *Config, v string) error {
		c.Engine.EmptyNodes = strings.ToLower(v)
		return nil
	},
	"QUIRE_DEFAULT_NODE_KIND": func(c *Config, v string) error {
		c.Engine.DefaultNodeKind = v
		return nil
	},
	"QUIRE_NODE_KINDS": func(c *Config, v string) error {
		c.Engine.NodeKinds = parseList(v)
		return nil
	},
	"QUIRE_READ_ONLY": func(c *Config, v string) error {
		b, err := parseBool(v)
		if err != nil {
			return err
		}
		c.Engine.ReadOnly = b
		return nil
	},
	"QUIRE_LOG_LEVEL": func(c *Config, v string) error {
		c.Logging.Level = strings.ToLower(v)
		return nil
	},
	"QUIRE_LOG_FORMAT": func(c *Config, v string) error {
		c.Logging.Format = strings.ToLower(v)
		return nil
	},
}

// ApplyEnv overrides settings from QUIRE_* environment variables.
// Note: Empty string values are treated as valid values, not as unset.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	for env, set := range envMapping {
		val, ok := lookup(env)
		if !ok {
			continue
		}
		if err := set(c, val); err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
	}
	return nil
}

// parseList splits a comma-separated list, dropping empty items.
func parseList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0", "":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q is not a boolean", ErrValidationFailed, s)
	}
}
