package config

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dshills/quire/internal/engine"
	"github.com/dshills/quire/internal/engine/boundary"
)

var validate = newValidator()

// newValidator reports fields by their toml key rather than the Go field name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Config holds all Quire settings.
type Config struct {
	Engine  EngineConfig  `toml:"engine" yaml:"engine"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// EngineConfig holds editing engine settings.
type EngineConfig struct {
	// WordClassifier selects how word boundaries are found.
	WordClassifier string `toml:"word_classifier" yaml:"word_classifier" validate:"oneof=whitespace punctuation"`

	// EmptyNodes is the empty node policy, "retain" or "prune".
	EmptyNodes string `toml:"empty_nodes" yaml:"empty_nodes" validate:"oneof=retain prune"`

	// DefaultNodeKind is the kind of nodes created without an explicit kind.
	DefaultNodeKind string `toml:"default_node_kind" yaml:"default_node_kind" validate:"required,max=64"`

	// NodeKinds restricts the kinds InsertNode accepts. Empty allows any kind.
	NodeKinds []string `toml:"node_kinds" yaml:"node_kinds" validate:"omitempty,dive,required,max=64"`

	// ReadOnly rejects all document writes.
	ReadOnly bool `toml:"read_only" yaml:"read_only"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `toml:"format" yaml:"format" validate:"oneof=console json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			WordClassifier:  "whitespace",
			EmptyNodes:      engine.RetainEmptyNodes.String(),
			DefaultNodeKind: "text",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks every setting and returns all problems at once.
func (c *Config) Validate() error {
	var problems []string
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			problems = append(problems, formatFieldError(fe))
		}
	}

	if len(c.Engine.NodeKinds) > 0 && !slices.Contains(c.Engine.NodeKinds, c.Engine.DefaultNodeKind) {
		problems = append(problems, fmt.Sprintf("default_node_kind %q must be one of node_kinds", c.Engine.DefaultNodeKind))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidationFailed, strings.Join(problems, "; "))
	}
	return nil
}

func formatFieldError(fe validator.FieldError) string {
	// Namespace is "Config.engine.word_classifier"; drop the root type.
	_, field, ok := strings.Cut(fe.Namespace(), ".")
	if !ok {
		field = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// EngineOptions converts the engine settings into engine options.
// The config must be valid.
func (c *Config) EngineOptions() []engine.Option {
	var opts []engine.Option

	if classifier, err := boundary.ClassifierByName(c.Engine.WordClassifier); err == nil {
		opts = append(opts, engine.WithClassifier(classifier))
	}
	if policy, err := engine.ParseEmptyNodePolicy(c.Engine.EmptyNodes); err == nil {
		opts = append(opts, engine.WithEmptyNodePolicy(policy))
	}

	if len(c.Engine.NodeKinds) > 0 {
		opts = append(opts, engine.WithNodeKinds(c.Engine.DefaultNodeKind, c.Engine.NodeKinds...))
	} else {
		opts = append(opts, engine.WithDefaultNodeKind(c.Engine.DefaultNodeKind))
	}

	if c.Engine.ReadOnly {
		opts = append(opts, engine.WithReadOnly())
	}
	return opts
}
