package reductor

import (
	"math"

	"github.com/morlab/ipldg/DD2D"
	"github.com/morlab/ipldg/blockop"
	"github.com/morlab/ipldg/model"
	"github.com/morlab/ipldg/utils"
)

// Estimators bundles the two-level a posteriori error estimation: a
// rigorous global Riesz-residual bound and localized per-domain
// indicators.
type Estimators struct {
	Global *GlobalEstimator
	Local  *IPLEstimator
}

// AssembleErrorEstimator builds both estimators for the current reductor
// state. The local residual operators stay non-reduced; reducing them
// would require projecting per-domain block residuals, which is not done
// here.
func (r *Reductor) AssembleErrorEstimator() Estimators {
	return Estimators{
		Global: &GlobalEstimator{fom: r.FOM},
		Local: &IPLEstimator{
			r:    r,
			keys: DD2D.SortedKeys(r.EstimatorDomains),
		},
	}
}

// GlobalEstimator bounds the error of a FOM-space solution by the norm of
// the Riesz representative of its residual in the energy product. For a
// coercive problem this is a rigorous bound.
type GlobalEstimator struct {
	fom *model.Stationary
}

func (e *GlobalEstimator) EstimateError(u blockop.BlockVector, muRaw interface{}) (est float64, err error) {
	mu, err := e.fom.ParseMu(muRaw)
	if err != nil {
		return
	}
	var (
		product = e.fom.Products["h1"]
		res     = e.fom.Operator.Apply(u, mu).Concat().Subtract(e.fom.RHS.AsVector(mu))
		P       = product.Assemble(mu)
	)
	riesz, err := P.LUSolve(res)
	if err != nil {
		return
	}
	// riesz . P riesz == riesz . res; the quadratic form is nonnegative,
	// clamp rounding noise at a vanishing residual
	d := riesz.Dot(res)
	if d < 0 {
		d = 0
	}
	return math.Sqrt(d), nil
}

// IPLEstimator evaluates per-estimator-domain residual indicators for a
// reduced solution and aggregates them onto subdomains. The per-subdomain
// aggregation (squared indicators summed over every subdomain a domain
// touches, one square root over the total) is not a proven bound.
type IPLEstimator struct {
	r    *Reductor
	keys []int
}

// EstimateError returns the overall indicator norm, the raw per-domain
// indicator vector, and the aggregated estimate.
func (e *IPLEstimator) EstimateError(uROM blockop.BlockVector, muRaw interface{}) (norm float64, indicators []float64, agg float64, err error) {
	mu, err := e.r.FOM.ParseMu(muRaw)
	if err != nil {
		return
	}
	indicators = make([]float64, len(e.keys))
	for idx, key := range e.keys {
		var (
			elements = e.r.EstimatorDomains[key]
			inner    = e.r.InnerNodePatches[key]
			emap     = e.r.estimatorMaps[idx]
			residual = NewResidualOperator(e.r.estimatorModels[idx])
		)
		// reconstruct the reduced solution on the domain's blocks
		uInED := blockop.BlockVector{B: make([]utils.Vector, len(elements))}
		for iLoc, el := range elements {
			uInED.B[iLoc] = e.r.reducedLocalBases[el].Lincomb(uROM.Block(el))
		}
		res := residual.Apply(uInED, mu)
		// per-element residual norms, restricted to the node patch
		var ind float64
		for _, el := range inner {
			n := res.Block(emap.GlobalToLocal(el)).Norm()
			ind += n * n
		}
		indicators[idx] = math.Sqrt(ind)
	}
	ests := make([]float64, e.r.S)
	for idx, key := range e.keys {
		for _, sd := range e.r.EstimatorDomains[key] {
			ests[sd] += indicators[idx] * indicators[idx]
		}
	}
	var total float64
	for _, v := range ests {
		total += v
	}
	agg = math.Sqrt(total)
	for _, ind := range indicators {
		norm += ind * ind
	}
	norm = math.Sqrt(norm)
	return
}
