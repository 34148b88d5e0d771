// Package reductor implements a localized reduced-basis reductor for
// coercive elliptic problems in domain-decomposed interior-penalty DG
// form. The full-order model is a block system over subdomains with
// explicit coupling blocks; reduction happens per subdomain with local
// bases, online enrichment solves localized patch problems, and a
// two-level a posteriori estimator drives adaptivity.
package reductor

import (
	"fmt"

	"github.com/morlab/ipldg/DD2D"
	"github.com/morlab/ipldg/blockop"
	"github.com/morlab/ipldg/model"
	"github.com/morlab/ipldg/utils"
)

// Reductor owns the local bases and the ROM cache; the FOM and grid are
// read-only inputs and every patch structure is immutable once built in
// NewReductor. Not safe for concurrent Reduce/Enrich calls; a single
// sequential training driver is assumed.
type Reductor struct {
	FOM  *model.Stationary
	Grid DD2D.Grid
	S    int

	LocalBases []*Basis
	// reducedLocalBases is the deep-copied snapshot taken at the last ROM
	// build; reconstruction and enrichment evaluate against it even when
	// the live bases have grown further.
	reducedLocalBases []*Basis

	ElementPatches []utils.Index
	PatchModels    []*model.Stationary
	PatchMaps      []PatchMap

	InnerNodePatches map[int]utils.Index
	EstimatorDomains map[int]utils.Index
	estimatorModels  []*model.Stationary
	estimatorMaps    []PatchMap

	lastROM     *model.Stationary
	lastROMDims int
	rebuilds    int
}

// NewReductor precomputes all element patches, patch models and estimator
// domains for the given FOM and grid. Optional initial bases must match
// the FOM's block dimensions; by default all bases start empty.
func NewReductor(fom *model.Stationary, g DD2D.Grid, localBases ...[]*Basis) (r *Reductor) {
	r = &Reductor{
		FOM:  fom,
		Grid: g,
		S:    fom.NumBlocks(),
	}
	if len(localBases) != 0 {
		r.LocalBases = localBases[0]
	} else {
		r.LocalBases = make([]*Basis, r.S)
		for I := 0; I < r.S; I++ {
			r.LocalBases[I] = NewBasis(fom.Dims[I])
		}
	}

	// element patches for online enrichment
	r.ElementPatches = DD2D.ConstructElementPatches(g)
	for _, patch := range r.ElementPatches {
		pm, pmap := ConstructLocalModel(patch, fom, g)
		r.PatchModels = append(r.PatchModels, pm)
		r.PatchMaps = append(r.PatchMaps, pmap)
	}

	// node patches, expanded by one neighbor ring, for estimation
	r.InnerNodePatches = DD2D.ConstructInnerNodePatches(g)
	r.EstimatorDomains = DD2D.AddElementNeighbors(g, r.InnerNodePatches)
	for _, key := range DD2D.SortedKeys(r.EstimatorDomains) {
		em, emap := ConstructLocalModel(r.EstimatorDomains[key], fom, g)
		r.estimatorModels = append(r.estimatorModels, em)
		r.estimatorMaps = append(r.estimatorMaps, emap)
	}
	return
}

func (r *Reductor) BasisLength() (lengths []int) {
	lengths = make([]int, r.S)
	for I, b := range r.LocalBases {
		lengths[I] = b.Len()
	}
	return
}

func (r *Reductor) totalBasisLength() (n int) {
	for _, b := range r.LocalBases {
		n += b.Len()
	}
	return
}

// Rebuilds counts how often the ROM was actually re-projected.
func (r *Reductor) Rebuilds() int { return r.rebuilds }

// Reduce returns the reduced-order model for the current bases. Dimension
// truncation is not supported and fails immediately. The cached ROM is
// reused unless the total basis length has grown past the size recorded
// at the last build.
func (r *Reductor) Reduce(dims ...int) (rom *model.Stationary, err error) {
	if len(dims) != 0 {
		return nil, fmt.Errorf("reduction to subbases is not supported")
	}
	if r.lastROM == nil || r.totalBasisLength() > r.lastROMDims {
		if r.lastROM, err = r.reduce(); err != nil {
			return nil, err
		}
		r.lastROMDims = r.totalBasisLength()
		r.rebuilds++
		// enrichment must reconstruct against the bases the ROM was
		// actually built from, so snapshot them now
		r.reducedLocalBases = make([]*Basis, r.S)
		for I, b := range r.LocalBases {
			r.reducedLocalBases[I] = b.Copy()
		}
	}
	return r.lastROM, nil
}

func (r *Reductor) reduce() (rom *model.Stationary, err error) {
	projectedOp, err := ProjectBlockOperator(r.FOM.Operator, r.LocalBases, r.LocalBases)
	if err != nil {
		return nil, err
	}
	projectedRHS, err := ProjectBlockRHS(r.FOM.RHS, r.LocalBases)
	if err != nil {
		return nil, err
	}
	var products map[string]*blockop.Operator
	if len(r.FOM.Products) != 0 {
		products = make(map[string]*blockop.Operator, len(r.FOM.Products))
		for name, p := range r.FOM.Products {
			if products[name], err = ProjectBlockOperator(p, r.LocalBases, r.LocalBases); err != nil {
				return nil, err
			}
		}
	}
	return model.NewStationary(projectedOp, projectedRHS, products, r.FOM.ParameterShape), nil
}

// AddGlobalSolution extends every subdomain basis by the matching block of
// a FOM-space solution. Extension failures are absorbed: the affected
// basis simply does not grow.
func (r *Reductor) AddGlobalSolution(us blockop.BlockVector) {
	for I := 0; I < r.S; I++ {
		r.AddLocalSolution(I, us.Block(I))
	}
}

func (r *Reductor) AddLocalSolution(I int, u utils.Vector) {
	if err := ExtendBasis(r.LocalBases[I], u); err != nil {
		fmt.Printf("extension of basis %d failed: %v\n", I, err)
	}
}

// Reconstruct expands a reduced solution into the FOM space using the
// basis snapshot belonging to the ROM in use.
func (r *Reductor) Reconstruct(uROM blockop.BlockVector) (u blockop.BlockVector) {
	u.B = make([]utils.Vector, r.S)
	for I := 0; I < r.S; I++ {
		u.B[I] = r.reducedLocalBases[I].Lincomb(uROM.Block(I))
	}
	return
}

// FromPatchToGlobal pads a patch solution to a globally defined block
// vector. Only used for visualization; blocks outside the patch are
// filled with a small constant so plot color scales stay readable.
func (r *Reductor) FromPatchToGlobal(I int, uPatch blockop.BlockVector) (u blockop.BlockVector) {
	pmap := r.PatchMaps[I]
	u.B = make([]utils.Vector, r.S)
	for i := 0; i < r.S; i++ {
		if iLoc := pmap.GlobalToLocal(i); iLoc >= 0 {
			u.B[i] = uPatch.Block(iLoc).Copy()
		} else {
			u.B[i] = utils.NewVectorConst(r.FOM.Dims[i], 1.e-4)
		}
	}
	return
}

// EnrichAllLocally runs one local enrichment on every subdomain at the
// given parameter.
func (r *Reductor) EnrichAllLocally(muRaw interface{}, useGlobalMatrix ...bool) (err error) {
	for I := 0; I < r.S; I++ {
		if _, err = r.EnrichLocally(I, muRaw, useGlobalMatrix...); err != nil {
			return
		}
	}
	return
}

// EnrichLocally solves the localized correction problem on subdomain I's
// element patch at mu and extends basis I with the resulting patch block.
// The correction right-hand side subtracts the current ROM solution's
// action a(u, .) so the patch problem targets the residual. With
// useGlobalMatrix the interaction term comes from the exact global
// operator applied to the full reconstruction (expensive, diagnostic
// only); otherwise the coupling-filtered patch operator is applied to the
// patch-restricted reduced reconstruction.
func (r *Reductor) EnrichLocally(I int, muRaw interface{}, useGlobalMatrix ...bool) (phi blockop.BlockVector, err error) {
	if r.lastROM == nil {
		if _, err = r.Reduce(); err != nil {
			return
		}
	}
	mu, err := r.FOM.ParseMu(muRaw)
	if err != nil {
		return
	}
	currentSolution, err := r.lastROM.Solve(mu)
	if err != nil {
		return
	}
	var (
		pmap       = r.PatchMaps[I]
		patchModel = r.PatchModels[I]
		sPatch     = pmap.Len()
		aUV        blockop.BlockVector
	)
	if len(useGlobalMatrix) != 0 && useGlobalMatrix[0] {
		fmt.Printf("Warning: computing the interaction term with the global operator\n")
		uH := r.Reconstruct(currentSolution)
		aUVGlobal := r.FOM.Operator.Apply(uH, mu)
		aUV.B = make([]utils.Vector, sPatch)
		for iLoc := 0; iLoc < sPatch; iLoc++ {
			aUV.B[iLoc] = aUVGlobal.Block(pmap.LocalToGlobal(iLoc))
		}
	} else {
		uPatch := blockop.BlockVector{B: make([]utils.Vector, sPatch)}
		for iLoc := 0; iLoc < sPatch; iLoc++ {
			iGlobal := pmap.LocalToGlobal(iLoc)
			uPatch.B[iLoc] = r.reducedLocalBases[iGlobal].Lincomb(currentSolution.Block(iGlobal))
		}
		filtered := RemoveIrrelevantCoupling(patchModel.Operator, pmap)
		aUV = filtered.Apply(uPatch, mu)
	}
	aUVOp := blockop.NewVectorOp("a_u_v", aUV.Concat())
	corrected := patchModel.WithRHS(blockop.NewLincombOp(
		[]*blockop.Operator{patchModel.RHS, aUVOp},
		[]blockop.Functional{blockop.Constant(1), blockop.Constant(-1)}))
	if phi, err = corrected.Solve(mu); err != nil {
		return
	}
	r.AddLocalSolution(I, phi.Block(pmap.GlobalToLocal(I)))
	return
}
