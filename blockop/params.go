package blockop

import (
	"fmt"
	"strconv"
)

// Mu holds parameter values keyed by parameter name. Values are
// vector-valued, e.g. one diffusion coefficient per subdomain.
type Mu map[string][]float64

func (mu Mu) Get(key string, index int) float64 {
	vals, ok := mu[key]
	if !ok {
		panic(fmt.Errorf("parameter %q missing from mu", key))
	}
	return vals[index]
}

func (mu Mu) Copy() (R Mu) {
	R = make(Mu, len(mu))
	for k, v := range mu {
		R[k] = append([]float64(nil), v...)
	}
	return
}

// ParseMu accepts a Mu, a scalar (broadcast over every component), or a
// plain slice (bound to the single parameter key) and validates the result
// against the parameter shape.
func ParseMu(muRaw interface{}, shape map[string]int) (mu Mu, err error) {
	switch v := muRaw.(type) {
	case Mu:
		mu = v
	case map[string][]float64:
		mu = v
	case float64:
		mu = make(Mu, len(shape))
		for key, dim := range shape {
			vals := make([]float64, dim)
			for i := range vals {
				vals[i] = v
			}
			mu[key] = vals
		}
	case []float64:
		if len(shape) != 1 {
			return nil, fmt.Errorf("cannot bind a plain slice to %d parameter keys", len(shape))
		}
		mu = make(Mu, 1)
		for key := range shape {
			mu[key] = v
		}
	default:
		return nil, fmt.Errorf("cannot parse parameter value of type %T", muRaw)
	}
	for key, dim := range shape {
		vals, ok := mu[key]
		if !ok {
			return nil, fmt.Errorf("parameter %q missing from mu", key)
		}
		if len(vals) != dim {
			return nil, fmt.Errorf("parameter %q has %d components, expected %d", key, len(vals), dim)
		}
	}
	return
}

// Functional is a scalar coefficient of an affine operator combination,
// evaluated at a parameter.
type Functional interface {
	Evaluate(mu Mu) float64
	String() string
}

type Constant float64

func (c Constant) Evaluate(Mu) float64 { return float64(c) }
func (c Constant) String() string      { return strconv.FormatFloat(float64(c), 'g', -1, 64) }

// ParamComponent evaluates to one component of a vector-valued parameter.
type ParamComponent struct {
	Key   string
	Index int
}

func (p ParamComponent) Evaluate(mu Mu) float64 { return mu.Get(p.Key, p.Index) }
func (p ParamComponent) String() string         { return fmt.Sprintf("%s[%d]", p.Key, p.Index) }
