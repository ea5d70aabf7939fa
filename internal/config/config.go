package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is the root devproxy configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Proxy   ProxyEntries  `yaml:"proxy"`
}

// ServerConfig holds the dev server settings.
type ServerConfig struct {
	Listen string `yaml:"listen"`
	Static string `yaml:"static"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns a configuration with default values applied.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Listen: ":8080",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// ProxyEntry is one configured proxy rule, in raw form. The key
// doubles as a literal path prefix or, when it starts with '^', a
// regular expression source.
type ProxyEntry struct {
	Key     string
	Target  string
	Rewrite RewriteValue
}

// ProxyEntries is an ordered list of proxy entries. YAML decodes it
// from a mapping node while preserving document order.
type ProxyEntries []ProxyEntry

// proxyEntryBody is the value side of a proxy mapping entry.
type proxyEntryBody struct {
	Target  string       `yaml:"target"`
	Rewrite RewriteValue `yaml:"rewrite"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *ProxyEntries) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*p = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("proxy section must be a mapping, got %s", nodeKind(node))
	}

	entries := make(ProxyEntries, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return fmt.Errorf("proxy entry key at line %d: %w", keyNode.Line, err)
		}

		var body proxyEntryBody
		if err := valueNode.Decode(&body); err != nil {
			return fmt.Errorf("proxy entry %q: %w", key, err)
		}

		entries = append(entries, ProxyEntry{
			Key:     key,
			Target:  body.Target,
			Rewrite: body.Rewrite,
		})
	}

	*p = entries
	return nil
}

// RewriteValue is the raw rewrite setting of a proxy entry. It accepts
// either a boolean (true enables prefix stripping) or a string of the
// form "<regex>-><replacement>".
type RewriteValue struct {
	set     bool
	isBool  bool
	boolVal bool
	strVal  string
}

// RewriteBool returns a boolean rewrite value. Intended for tests and
// programmatic rule construction.
func RewriteBool(v bool) RewriteValue {
	return RewriteValue{set: true, isBool: true, boolVal: v}
}

// RewriteSpec returns a string rewrite value.
func RewriteSpec(spec string) RewriteValue {
	return RewriteValue{set: true, strVal: spec}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *RewriteValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Tag {
	case "!!bool":
		var v bool
		if err := node.Decode(&v); err != nil {
			return err
		}
		*r = RewriteBool(v)
		return nil
	case "!!str":
		var v string
		if err := node.Decode(&v); err != nil {
			return err
		}
		*r = RewriteSpec(v)
		return nil
	case "!!null":
		*r = RewriteValue{}
		return nil
	default:
		return fmt.Errorf("rewrite must be a boolean or string, got %s at line %d",
			node.Tag, node.Line)
	}
}

// IsZero reports whether no rewrite was configured.
func (r RewriteValue) IsZero() bool {
	return !r.set
}

// IsBool reports whether the value is a boolean.
func (r RewriteValue) IsBool() bool {
	return r.set && r.isBool
}

// Bool returns the boolean value. Only meaningful when IsBool is true.
func (r RewriteValue) Bool() bool {
	return r.boolVal
}

// Spec returns the string value. Only meaningful for string values.
func (r RewriteValue) Spec() string {
	return r.strVal
}

// nodeKind names a YAML node kind for error messages.
func nodeKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
