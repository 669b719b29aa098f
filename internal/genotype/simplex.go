package genotype

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// standardForm is a dense min c^T x s.t. A x = b, x >= 0 LP instance.
// Every bounded variable of the genotyping model (spec.md §4.7) has
// already been shifted to a nonnegative surrogate and given an
// explicit upper-bound row with its own slack by buildStandardForm;
// every inequality constraint has been given its own surplus
// variable. twoPhaseSimplex below only ever sees equalities.
type standardForm struct {
	A    *mat.Dense
	b    []float64
	cost []float64
	// nStruct is the number of "real" (non-artificial) columns: c'_tau,
	// their bound slacks, e'_kappa, their bound slacks, l_kappa, and the
	// two surplus columns per k-mer, in that order.
	nStruct int
	// cIndex[i] and eIndex[k] locate c'_tau / e'_kappa within the
	// first nStruct columns.
	cIndex []int
	eIndex []int
	// cLB[i] is the lower bound subtracted from c_tau to form c'_tau.
	cLB []float64
}

const bigM_unused = 0 // two-phase is used instead of big-M; kept out of the objective entirely.

// buildStandardForm assembles the full equality-only tableau described
// on standardForm from Model m and the computed variable
// bounds (spec.md §4.7 Variables/Constraints).
func buildStandardForm(m Model, cLB, cUB, eLB, eUB []float64) standardForm {
	n := len(m.Tracks)
	nk := len(m.Kmers)

	cIndex := make([]int, n)
	eIndex := make([]int, nk)
	lIndex := make([]int, nk)

	col := 0
	for i := 0; i < n; i++ {
		cIndex[i] = col
		col++
	}
	scIndex := make([]int, n)
	for i := 0; i < n; i++ {
		scIndex[i] = col
		col++
	}
	for k := 0; k < nk; k++ {
		eIndex[k] = col
		col++
	}
	seIndex := make([]int, nk)
	for k := 0; k < nk; k++ {
		seIndex[k] = col
		col++
	}
	for k := 0; k < nk; k++ {
		lIndex[k] = col
		col++
	}
	s2Index := make([]int, nk)
	for k := 0; k < nk; k++ {
		s2Index[k] = col
		col++
	}
	s3Index := make([]int, nk)
	for k := 0; k < nk; k++ {
		s3Index[k] = col
		col++
	}
	nStruct := col

	var rows [][]float64
	var rhs []float64

	row := func() []float64 { return make([]float64, nStruct) }

	// Upper bound rows: c'_tau + s_c_tau = cUB_tau - cLB_tau.
	for i := 0; i < n; i++ {
		r := row()
		r[cIndex[i]] = 1
		r[scIndex[i]] = 1
		rows = append(rows, r)
		rhs = append(rhs, cUB[i]-cLB[i])
	}
	// Upper bound rows: e'_kappa + s_e_kappa = eUB_kappa - eLB_kappa.
	for k := 0; k < nk; k++ {
		r := row()
		r[eIndex[k]] = 1
		r[seIndex[k]] = 1
		rows = append(rows, r)
		rhs = append(rhs, eUB[k]-eLB[k])
	}

	trackIndexByName := make(map[string]int, n)
	for i, tr := range m.Tracks {
		trackIndexByName[tr.Name] = i
	}

	for k, kv := range m.Kmers {
		sumMultCLB := 0.0
		r1 := row()
		for trackName, mult := range kv.Multiplicity {
			ti, ok := trackIndexByName[trackName]
			if !ok {
				continue
			}
			coef := m.Coverage * float64(mult)
			r1[cIndex[ti]] += coef
			sumMultCLB += coef * cLB[ti]
		}
		r1[eIndex[k]] = 1
		rows = append(rows, r1)
		rhs1 := float64(kv.Count) - m.Coverage*float64(kv.Residue) - sumMultCLB - eLB[k]
		rhs = append(rhs, rhs1)

		// l_kappa + e_kappa >= 0  =>  l'_k + e'_k - s2_k = -eLB_k
		r2 := row()
		r2[lIndex[k]] = 1
		r2[eIndex[k]] = 1
		r2[s2Index[k]] = -1
		rows = append(rows, r2)
		rhs = append(rhs, -eLB[k])

		// l_kappa - e_kappa >= 0  =>  l'_k - e'_k - s3_k = eLB_k
		r3 := row()
		r3[lIndex[k]] = 1
		r3[eIndex[k]] = -1
		r3[s3Index[k]] = -1
		rows = append(rows, r3)
		rhs = append(rhs, eLB[k])
	}

	nRows := len(rows)
	A := mat.NewDense(nRows, nStruct, nil)
	for i, r := range rows {
		A.SetRow(i, r)
	}

	cost := make([]float64, nStruct)
	for k := 0; k < nk; k++ {
		cost[lIndex[k]] = 1
	}

	return standardForm{A: A, b: rhs, cost: cost, nStruct: nStruct, cIndex: cIndex, eIndex: eIndex, cLB: cLB}
}

// solveSimplex runs the two-phase primal simplex and returns the
// decoded c_tau values (spec.md §4.7 Decoding consumes only these).
func solveSimplex(lp standardForm) ([]float64, error) {
	x, err := twoPhaseSimplex(lp.A, lp.b, lp.cost)
	if err != nil {
		return nil, err
	}
	c := make([]float64, len(lp.cIndex))
	for i, idx := range lp.cIndex {
		c[i] = x[idx] + lp.cLB[i]
	}
	return c, nil
}

// twoPhaseSimplex solves min cost^T x s.t. A x = b, x >= 0 via the
// classical two-phase primal simplex method: phase 1 minimizes the
// sum of artificial variables (one appended per row, after flipping
// any row with negative b so every artificial starts feasible at
// b_i >= 0); phase 2 re-optimizes the true objective from the
// feasible basis phase 1 found, pivoting artificials out of the basis
// first. Returns the values of the original (non-artificial) n
// columns of A.
func twoPhaseSimplex(A *mat.Dense, b []float64, cost []float64) ([]float64, error) {
	m, n := A.Dims()
	if len(b) != m || len(cost) != n {
		return nil, fmt.Errorf("genotype: simplex dimension mismatch")
	}

	// Tableau layout: [A | I_artificial | b], with rows sign-flipped so
	// b >= 0 (an artificial variable's initial value must be
	// nonnegative to seed a feasible basic solution).
	total := n + m
	tab := mat.NewDense(m, total, nil)
	rhs := make([]float64, m)
	for i := 0; i < m; i++ {
		sign := 1.0
		if b[i] < 0 {
			sign = -1
		}
		for j := 0; j < n; j++ {
			tab.Set(i, j, sign*A.At(i, j))
		}
		tab.Set(i, n+i, 1)
		rhs[i] = sign * b[i]
	}

	basis := make([]int, m)
	for i := range basis {
		basis[i] = n + i
	}

	phase1Cost := make([]float64, total)
	for i := 0; i < m; i++ {
		phase1Cost[n+i] = 1
	}
	if err := pivotToOptimal(tab, rhs, basis, phase1Cost, total); err != nil {
		return nil, err
	}

	obj := 0.0
	for i, bi := range basis {
		if bi >= n {
			obj += rhs[i]
		}
	}
	if obj > 1e-6 {
		return nil, fmt.Errorf("genotype: LP infeasible (phase 1 objective %.6g)", obj)
	}

	// Drive any artificial still in the basis (at value 0, a
	// degenerate feasible point) out before phase 2.
	for i, bi := range basis {
		if bi < n {
			continue
		}
		pivoted := false
		for j := 0; j < n; j++ {
			if math.Abs(tab.At(i, j)) > 1e-9 {
				pivot(tab, rhs, basis, i, j)
				pivoted = true
				break
			}
		}
		if !pivoted {
			// Row is a redundant constraint; leave the artificial at 0.
			continue
		}
	}

	phase2Cost := make([]float64, total)
	copy(phase2Cost, cost)
	// Artificial columns may not re-enter the basis in phase 2.
	if err := pivotToOptimal(tab, rhs, basis, phase2Cost, n); err != nil {
		return nil, err
	}

	x := make([]float64, n)
	for i, bi := range basis {
		if bi < n {
			x[bi] = rhs[i]
		}
	}
	return x, nil
}

// pivotToOptimal runs simplex pivots (Bland's rule to avoid cycling)
// until no column below nEnter has a negative reduced cost, given
// tab/rhs/basis already in a feasible basic form w.r.t. objCost. Only
// columns below nEnter are considered for entering the basis.
func pivotToOptimal(tab *mat.Dense, rhs []float64, basis []int, objCost []float64, nEnter int) error {
	m, total := tab.Dims()
	const maxIter = 20000

	for iter := 0; iter < maxIter; iter++ {
		reduced := make([]float64, total)
		copy(reduced, objCost)
		for i, bi := range basis {
			cb := objCost[bi]
			if cb == 0 {
				continue
			}
			for j := 0; j < total; j++ {
				reduced[j] -= cb * tab.At(i, j)
			}
		}

		enter := -1
		for j := 0; j < nEnter; j++ {
			if reduced[j] < -1e-9 {
				enter = j
				break // Bland's rule: smallest index with negative reduced cost
			}
		}
		if enter == -1 {
			return nil
		}

		leave := -1
		best := math.Inf(1)
		for i := 0; i < m; i++ {
			a := tab.At(i, enter)
			if a <= 1e-9 {
				continue
			}
			ratio := rhs[i] / a
			if ratio < best-1e-12 || (ratio < best+1e-12 && (leave == -1 || basis[i] < basis[leave])) {
				best = ratio
				leave = i
			}
		}
		if leave == -1 {
			return fmt.Errorf("genotype: LP unbounded")
		}
		pivot(tab, rhs, basis, leave, enter)
	}
	return fmt.Errorf("genotype: simplex did not converge within %d iterations", maxIter)
}

// pivot performs a Gauss-Jordan elimination step on (row, col),
// installing col into the basis at row.
func pivot(tab *mat.Dense, rhs []float64, basis []int, row, col int) {
	m, total := tab.Dims()
	piv := tab.At(row, col)
	for j := 0; j < total; j++ {
		tab.Set(row, j, tab.At(row, j)/piv)
	}
	rhs[row] /= piv

	for i := 0; i < m; i++ {
		if i == row {
			continue
		}
		factor := tab.At(i, col)
		if factor == 0 {
			continue
		}
		for j := 0; j < total; j++ {
			tab.Set(i, j, tab.At(i, j)-factor*tab.At(row, j))
		}
		rhs[i] -= factor * rhs[row]
	}
	basis[row] = col
}
