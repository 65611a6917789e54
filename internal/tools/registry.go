// Package tools exposes conference queries as named tools with JSON input
// schemas. Transports look tools up by name and call them with raw JSON
// arguments.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/JonMunkholm/codemash/internal/logging"
)

// ErrUnknownTool is returned by Call for names that are not registered.
var ErrUnknownTool = errors.New("unknown tool")

// Handler runs a tool with its raw JSON arguments. args may be empty.
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

// Tool describes one callable operation.
type Tool struct {
	Name        string         `json:"name"`
	Title       string         `json:"title,omitempty"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
	Handler     Handler        `json:"-"`
}

// Registry holds tools by name.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool to the registry.
// Panics if a tool with the same name is already registered.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[t.Name]; exists {
		panic(fmt.Sprintf("tool already registered: %s", t.Name))
	}
	if t.InputSchema == nil {
		t.InputSchema = objectSchema(nil)
	}

	r.tools[t.Name] = t
}

// Get returns a tool by name.
// Returns false if not found.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tools[name]
	return t, ok
}

// All returns all registered tools sorted by name.
func (r *Registry) All() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		result = append(result, t)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Call runs the named tool and records its outcome.
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) (any, error) {
	t, ok := r.Get(name)
	if !ok {
		toolCalls.WithLabelValues(unknownToolLabel, outcomeUnknown).Inc()
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	log := logging.WithFields(ctx, "tool", name)
	start := time.Now()

	result, err := t.Handler(ctx, args)

	elapsed := time.Since(start)
	toolDuration.WithLabelValues(name).Observe(elapsed.Seconds())

	if err != nil {
		toolCalls.WithLabelValues(name, outcomeError).Inc()
		log.Warn("tool call failed", "duration", elapsed, "error", err)
		return nil, err
	}

	toolCalls.WithLabelValues(name, outcomeOK).Inc()
	log.Debug("tool call", slog.Duration("duration", elapsed), slog.Int("results", resultCount(result)))
	return result, nil
}

// resultCount is the number of items in a list result, 1 for any other
// value and 0 for nil.
func resultCount(v any) int {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Invalid:
		return 0
	case reflect.Slice, reflect.Array:
		return rv.Len()
	case reflect.Pointer, reflect.Map:
		if rv.IsNil() {
			return 0
		}
	}
	return 1
}
