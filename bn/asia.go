// SPDX-License-Identifier: MIT
// Package bn: the asia fixture, the eight-vertex chest-clinic network of
// Lauritzen and Spiegelhalter with its published parameters. Every state
// space is ["no" "yes"], so code 0 is "no" and code 1 is "yes".

package bn

import (
	"github.com/katalvlaran/causal/digraph"
	"github.com/katalvlaran/causal/distribution"
)

// Asia returns the chest-clinic network:
//
//	asia → tub, smoke → lung, smoke → bronc, tub → either,
//	lung → either, either → xray, either → dysp, bronc → dysp.
func Asia() *CatBN {
	g, err := digraph.FromEdgeList(
		[]string{"asia", "bronc", "dysp", "either", "lung", "smoke", "tub", "xray"},
		[][2]string{
			{"asia", "tub"},
			{"bronc", "dysp"},
			{"either", "dysp"},
			{"either", "xray"},
			{"lung", "either"},
			{"smoke", "bronc"},
			{"smoke", "lung"},
			{"tub", "either"},
		})
	if err != nil {
		panic(err)
	}

	ny := []string{"no", "yes"}
	one := [][]string{ny}
	two := [][]string{ny, ny}

	mk := func(child string, parents []string, pstates [][]string, rows ...[]float64) *distribution.CatCPD {
		cpd, err := distribution.NewCatCPD(child, ny, parents, pstates, tableOf(rows...))
		if err != nil {
			panic(err)
		}

		return cpd
	}

	cpds := map[string]*distribution.CatCPD{
		"asia":  mk("asia", nil, nil, []float64{0.99, 0.01}),
		"smoke": mk("smoke", nil, nil, []float64{0.5, 0.5}),
		"tub": mk("tub", []string{"asia"}, one,
			[]float64{0.99, 0.01},
			[]float64{0.95, 0.05}),
		"lung": mk("lung", []string{"smoke"}, one,
			[]float64{0.99, 0.01},
			[]float64{0.9, 0.1}),
		"bronc": mk("bronc", []string{"smoke"}, one,
			[]float64{0.7, 0.3},
			[]float64{0.4, 0.6}),
		// either is the deterministic OR of lung and tub; rows follow the
		// (lung, tub) configuration order.
		"either": mk("either", []string{"lung", "tub"}, two,
			[]float64{1, 0},
			[]float64{0, 1},
			[]float64{0, 1},
			[]float64{0, 1}),
		"xray": mk("xray", []string{"either"}, one,
			[]float64{0.95, 0.05},
			[]float64{0.02, 0.98}),
		// Rows follow the (bronc, either) configuration order.
		"dysp": mk("dysp", []string{"bronc", "either"}, two,
			[]float64{0.9, 0.1},
			[]float64{0.3, 0.7},
			[]float64{0.2, 0.8},
			[]float64{0.1, 0.9}),
	}

	m, err := NewCatBN(g, cpds)
	if err != nil {
		panic(err)
	}

	return m
}
