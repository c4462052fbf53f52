// Package config provides the configuration system for Quire.
//
// Configuration is resolved in three steps, later steps overriding earlier:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension (Load)
//  3. QUIRE_* environment variables (ApplyEnv)
//
// The result is checked with Validate and turned into engine options with
// EngineOptions.
//
// # Basic Usage
//
//	cfg, err := config.Load("quire.toml")
//	if err != nil {
//		return err
//	}
//	if err := cfg.ApplyEnv(); err != nil {
//		return err
//	}
//	if err := cfg.Validate(); err != nil {
//		return err
//	}
//	e := engine.New(cfg.EngineOptions()...)
//
// # File Format
//
//	[engine]
//	word_classifier = "punctuation"
//	empty_nodes = "prune"
//	default_node_kind = "paragraph"
//	node_kinds = ["paragraph", "heading", "quote"]
//
//	[logging]
//	level = "debug"
//	format = "console"
package config
