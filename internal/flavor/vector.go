// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

package flavor

import "math"

// Dimensions is the fixed number of taste axes in a flavor vector.
const Dimensions = 5

// Axes names the taste axes in vector order. The ordering is part of the
// deployment contract: curated datasets, learned profiles, and model
// artifacts all assume this layout.
var Axes = [Dimensions]string{"sweet", "spicy_salty", "sour", "bitter", "umami"}

// Vector is a fixed-dimension taste fingerprint for an ingredient, recipe,
// or user preference. The zero value is a valid "no information" vector.
type Vector [Dimensions]float64

// Zero returns the all-zero vector.
func Zero() Vector {
	return Vector{}
}

// Norm returns the Euclidean norm of the vector.
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Normalized returns the unit-length copy of the vector.
// The zero vector normalizes to itself.
func (v Vector) Normalized() Vector {
	norm := v.Norm()
	if norm == 0 {
		return v
	}
	var out Vector
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

// Add returns the elementwise sum of two vectors.
func (v Vector) Add(o Vector) Vector {
	var out Vector
	for i := range v {
		out[i] = v[i] + o[i]
	}
	return out
}

// Dot returns the dot product of two vectors.
func (v Vector) Dot(o Vector) float64 {
	var sum float64
	for i := range v {
		sum += v[i] * o[i]
	}
	return sum
}

// Cosine returns the cosine similarity between two vectors.
// Returns 0.0 when either vector has zero norm, where cosine is undefined.
func Cosine(a, b Vector) float64 {
	na := a.Norm()
	nb := b.Norm()
	if na == 0 || nb == 0 {
		return 0.0
	}
	return a.Dot(b) / (na * nb)
}

// Mean returns the arithmetic mean of the given vectors.
// An empty input yields the zero vector.
func Mean(vs []Vector) Vector {
	if len(vs) == 0 {
		return Zero()
	}
	var sum Vector
	for _, v := range vs {
		sum = sum.Add(v)
	}
	n := float64(len(vs))
	for i := range sum {
		sum[i] /= n
	}
	return sum
}

// Slice returns the vector as a freshly allocated []float64.
func (v Vector) Slice() []float64 {
	out := make([]float64, Dimensions)
	copy(out, v[:])
	return out
}

// FromSlice builds a Vector from a slice, truncating or zero-padding to the
// fixed dimension.
func FromSlice(s []float64) Vector {
	var v Vector
	for i := 0; i < Dimensions && i < len(s); i++ {
		v[i] = s[i]
	}
	return v
}
