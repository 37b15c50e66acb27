package generator

import "fmt"

// SchemaError reports a schema node the converter cannot represent, such as
// an unknown type or an array without a single items schema.
type SchemaError struct {
	Msg string
}

func (e *SchemaError) Error() string { return "schema error: " + e.Msg }

// NotImplementedError reports a schema shape that is valid JSON Schema but not
// supported, such as a non-object branch inside allOf.
type NotImplementedError struct {
	Msg string
}

func (e *NotImplementedError) Error() string { return "not implemented: " + e.Msg }

// ConfigError reports an inconsistent serverless configuration.
type ConfigError struct {
	Function string
	Msg      string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("function %q %s", e.Function, e.Msg)
}
