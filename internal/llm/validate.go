package llm

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaRegistry compiles Schema definitions once and reuses them.
// The app carries a small fixed set of schemas (the intent decision is
// the only one today), so entries live for the process lifetime.
type schemaRegistry struct {
	mu       sync.Mutex
	compiled map[string]*jsonschema.Schema
}

var registry = &schemaRegistry{compiled: make(map[string]*jsonschema.Schema)}

func (r *schemaRegistry) lookup(schema *Schema) (*jsonschema.Schema, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.compiled[schema.Name]; ok {
		return c, nil
	}

	// The compiler wants a decoded JSON value rather than a Go map, so
	// round-trip the definition through encoding/json.
	encoded, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("encode schema %q: %w", schema.Name, err)
	}
	var decoded any
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		return nil, fmt.Errorf("decode schema %q: %w", schema.Name, err)
	}

	url := "chefmate://schemas/" + schema.Name
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, decoded); err != nil {
		return nil, fmt.Errorf("register schema %q: %w", schema.Name, err)
	}
	c, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}

	r.compiled[schema.Name] = c
	return c, nil
}

// validateResponse checks raw output against the request's schema.
// A nil schema means free-form text and always passes. Failures come
// back as *ErrInvalidResponse carrying the offending content.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("not valid JSON: %w", err)}
	}

	compiled, err := registry.lookup(schema)
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}

	if err := compiled.Validate(value); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	return nil
}
