package encoder

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Built-in encoder names.
const (
	NameJSON     = "json"
	NameExtended = "extended"

	// Default is used when settings do not name an encoder.
	Default = NameExtended
)

// Encoder turns a props mapping into JSON bytes.
type Encoder interface {
	Encode(v any) ([]byte, error)
}

// Func adapts a plain function to the Encoder interface.
type Func func(v any) ([]byte, error)

// Encode calls f(v).
func (f Func) Encode(v any) ([]byte, error) {
	return f(v)
}

// JSON is the plain encoding/json encoder.
var JSON Encoder = Func(json.Marshal)

// Registry stores encoders by name so a single setting can select one.
type Registry struct {
	mu       sync.RWMutex
	encoders map[string]Encoder
}

// NewRegistry returns a registry seeded with the built-in encoders.
func NewRegistry() *Registry {
	reg := &Registry{encoders: make(map[string]Encoder)}
	reg.MustRegister(NameJSON, JSON)
	reg.MustRegister(NameExtended, Extended)
	return reg
}

// Register adds an encoder. Duplicate names return an error.
func (r *Registry) Register(name string, enc Encoder) error {
	if enc == nil {
		return fmt.Errorf("encoder: encoder is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("encoder: encoder name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.encoders[name]; exists {
		return fmt.Errorf("encoder: encoder %q already registered", name)
	}
	r.encoders[name] = enc
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, enc Encoder) {
	if err := r.Register(name, enc); err != nil {
		panic(err)
	}
}

// Get retrieves an encoder by name.
func (r *Registry) Get(name string) (Encoder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	enc, ok := r.encoders[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("encoder: encoder %q not found", name)
	}
	return enc, nil
}

// Has reports whether an encoder is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.encoders[strings.TrimSpace(name)]
	return ok
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.encoders))
	for name := range r.encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
