// Registry of the 2x interpolation algorithms shown side by side
package algorithms

import (
	"context"
	"errors"
	"fmt"

	"interpolation-preview/internal/resample"
)

// ErrUnknownAlgorithm is returned for names that were never registered.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Algorithm defines the interface for 2x interpolation algorithms
type Algorithm interface {
	Apply(ctx context.Context, input *resample.Buffer, params map[string]interface{}) (*resample.Buffer, error)
	GetDefaultParams() map[string]interface{}
	GetName() string
	GetDescription() string
	Validate(params map[string]interface{}) error
	GetParameterInfo() []ParameterInfo
}

// ParameterInfo describes a parameter for UI generation
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "int", "float", "enum"
	Min         interface{} `json:"min,omitempty"`
	Max         interface{} `json:"max,omitempty"`
	Default     interface{} `json:"default"`
	Description string      `json:"description"`
	Options     []string    `json:"options,omitempty"` // For enum type
}

var (
	algorithms = make(map[string]Algorithm)
	order      []string
)

// Register adds an algorithm under id. Re-registering replaces the entry
// but keeps its display position.
func Register(id string, algorithm Algorithm) {
	if _, exists := algorithms[id]; !exists {
		order = append(order, id)
	}
	algorithms[id] = algorithm
}

func Get(id string) (Algorithm, bool) {
	algorithm, exists := algorithms[id]
	return algorithm, exists
}

// Apply validates params and runs the algorithm registered under id.
func Apply(ctx context.Context, id string, input *resample.Buffer, params map[string]interface{}) (*resample.Buffer, error) {
	algorithm, exists := algorithms[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, id)
	}
	if err := algorithm.Validate(params); err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	return algorithm.Apply(ctx, input, params)
}

func ValidateParameters(id string, params map[string]interface{}) error {
	algorithm, exists := algorithms[id]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownAlgorithm, id)
	}
	return algorithm.Validate(params)
}

func IsValidAlgorithm(id string) bool {
	_, exists := algorithms[id]
	return exists
}

// Names returns registered ids in display order.
func Names() []string {
	return append([]string(nil), order...)
}

func init() {
	Register(Duplicate, NewDuplicate())
	Register(Mitchell, NewMitchellNetravali())
	Register(BSpline, NewCubicBSpline())
	Register(Lanczos, NewLanczos())
}
