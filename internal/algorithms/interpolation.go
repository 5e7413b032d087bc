// Interpolation algorithms backed by the resampling engine
package algorithms

import (
	"context"
	"fmt"
	"math"

	"interpolation-preview/internal/resample"
)

// Registered algorithm ids.
const (
	Duplicate = "duplicate"
	Mitchell  = "mitchell"
	BSpline   = "bspline"
	Lanczos   = "lanczos"
)

var edgeParam = ParameterInfo{
	Name:        "edge",
	Type:        "enum",
	Default:     "omit",
	Description: "Treatment of taps outside the image",
	Options:     []string{"omit", "clamp"},
}

// DuplicateAlgorithm is the no-interpolation baseline
type DuplicateAlgorithm struct{}

func NewDuplicate() *DuplicateAlgorithm {
	return &DuplicateAlgorithm{}
}

func (d *DuplicateAlgorithm) Apply(ctx context.Context, input *resample.Buffer, params map[string]interface{}) (*resample.Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return resample.Duplicate2x(input)
}

func (d *DuplicateAlgorithm) GetDefaultParams() map[string]interface{} {
	return map[string]interface{}{}
}

func (d *DuplicateAlgorithm) GetName() string {
	return "Duplicate"
}

func (d *DuplicateAlgorithm) GetDescription() string {
	return "Pixel duplication (nearest neighbour), the unfiltered reference"
}

func (d *DuplicateAlgorithm) Validate(params map[string]interface{}) error {
	return nil
}

func (d *DuplicateAlgorithm) GetParameterInfo() []ParameterInfo {
	return nil
}

// MitchellNetravaliAlgorithm is the B/C parametric cubic
type MitchellNetravaliAlgorithm struct{}

func NewMitchellNetravali() *MitchellNetravaliAlgorithm {
	return &MitchellNetravaliAlgorithm{}
}

func (m *MitchellNetravaliAlgorithm) Apply(ctx context.Context, input *resample.Buffer, params map[string]interface{}) (*resample.Buffer, error) {
	p := resample.DefaultMitchellParams()
	p.B = floatParam(params, "b", p.B)
	p.C = floatParam(params, "c", p.C)
	opts, err := optionsParam(params)
	if err != nil {
		return nil, err
	}
	p.Options = opts
	return resample.MitchellNetravali2xContext(ctx, input, p)
}

func (m *MitchellNetravaliAlgorithm) GetDefaultParams() map[string]interface{} {
	return map[string]interface{}{
		"b":    resample.DefaultMitchellB,
		"c":    resample.DefaultMitchellC,
		"edge": "omit",
	}
}

func (m *MitchellNetravaliAlgorithm) GetName() string {
	return "Mitchell-Netravali"
}

func (m *MitchellNetravaliAlgorithm) GetDescription() string {
	return "Parametric cubic balancing blur (B) against ringing (C)"
}

func (m *MitchellNetravaliAlgorithm) Validate(params map[string]interface{}) error {
	for _, name := range []string{"b", "c"} {
		if val, ok := params[name]; ok {
			v, ok := val.(float64)
			if !ok {
				return fmt.Errorf("%s must be a float: %w", name, resample.ErrInvalidInput)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%s must be finite: %w", name, resample.ErrInvalidInput)
			}
		}
	}
	return validateEdge(params)
}

func (m *MitchellNetravaliAlgorithm) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{
		{
			Name:        "b",
			Type:        "float",
			Min:         0.0,
			Max:         1.0,
			Default:     resample.DefaultMitchellB,
			Description: "Blur: 1 is the cubic B-spline",
		},
		{
			Name:        "c",
			Type:        "float",
			Min:         0.0,
			Max:         1.0,
			Default:     resample.DefaultMitchellC,
			Description: "Ringing: 0.5 with b=0 is Catmull-Rom",
		},
		edgeParam,
	}
}

// CubicBSplineAlgorithm is the smoothing, never-overshooting cubic
type CubicBSplineAlgorithm struct{}

func NewCubicBSpline() *CubicBSplineAlgorithm {
	return &CubicBSplineAlgorithm{}
}

func (b *CubicBSplineAlgorithm) Apply(ctx context.Context, input *resample.Buffer, params map[string]interface{}) (*resample.Buffer, error) {
	opts, err := optionsParam(params)
	if err != nil {
		return nil, err
	}
	return resample.CubicBSpline2xContext(ctx, input, opts)
}

func (b *CubicBSplineAlgorithm) GetDefaultParams() map[string]interface{} {
	return map[string]interface{}{"edge": "omit"}
}

func (b *CubicBSplineAlgorithm) GetName() string {
	return "B-Spline"
}

func (b *CubicBSplineAlgorithm) GetDescription() string {
	return "Cubic B-spline, smooth with no overshoot"
}

func (b *CubicBSplineAlgorithm) Validate(params map[string]interface{}) error {
	return validateEdge(params)
}

func (b *CubicBSplineAlgorithm) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{edgeParam}
}

// LanczosAlgorithm is the windowed sinc
type LanczosAlgorithm struct{}

func NewLanczos() *LanczosAlgorithm {
	return &LanczosAlgorithm{}
}

func (l *LanczosAlgorithm) Apply(ctx context.Context, input *resample.Buffer, params map[string]interface{}) (*resample.Buffer, error) {
	p := resample.DefaultLanczosParams()
	p.A = int(floatParam(params, "a", float64(p.A)))
	opts, err := optionsParam(params)
	if err != nil {
		return nil, err
	}
	p.Options = opts
	return resample.Lanczos2xContext(ctx, input, p)
}

func (l *LanczosAlgorithm) GetDefaultParams() map[string]interface{} {
	return map[string]interface{}{
		"a":    float64(resample.DefaultLanczosA),
		"edge": "omit",
	}
}

func (l *LanczosAlgorithm) GetName() string {
	return "Lanczos"
}

func (l *LanczosAlgorithm) GetDescription() string {
	return "Windowed sinc, sharpest of the set with visible ringing"
}

func (l *LanczosAlgorithm) Validate(params map[string]interface{}) error {
	if val, ok := params["a"]; ok {
		v, ok := val.(float64)
		if !ok {
			return fmt.Errorf("a must be a number: %w", resample.ErrInvalidInput)
		}
		if v != math.Trunc(v) || v < 1 || v > 8 {
			return fmt.Errorf("a must be an integer between 1 and 8: %w", resample.ErrInvalidInput)
		}
	}
	return validateEdge(params)
}

func (l *LanczosAlgorithm) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{
		{
			Name:        "a",
			Type:        "int",
			Min:         1,
			Max:         8,
			Default:     resample.DefaultLanczosA,
			Description: "Window radius in source pixels",
		},
		edgeParam,
	}
}

func floatParam(params map[string]interface{}, name string, def float64) float64 {
	if val, ok := params[name]; ok {
		if v, ok := val.(float64); ok {
			return v
		}
	}
	return def
}

func optionsParam(params map[string]interface{}) (resample.Options, error) {
	var opts resample.Options
	if _, ok := params["edge"]; !ok {
		return opts, nil
	}
	if err := validateEdge(params); err != nil {
		return opts, err
	}
	opts.Edge, _ = resample.ParseEdgeMode(params["edge"].(string))
	return opts, nil
}

func validateEdge(params map[string]interface{}) error {
	val, ok := params["edge"]
	if !ok {
		return nil
	}
	s, ok := val.(string)
	if !ok {
		return fmt.Errorf("edge must be a string: %w", resample.ErrInvalidInput)
	}
	_, err := resample.ParseEdgeMode(s)
	return err
}
