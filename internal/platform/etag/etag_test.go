// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package etag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pointercrate-rs/corengine/internal/platform/etag"
)

/*
TestCompute_Deterministic checks that the same fields in the same order
always hash to the same token.
*/
func TestCompute_Deterministic(t *testing.T) {
	a := etag.Compute(int64(1), "Bloodbath", 55, 100)
	b := etag.Compute(int64(1), "Bloodbath", 55, 100)
	assert.Equal(t, a, b)
}

/*
TestCompute_FieldChangeChangesToken asserts that changing any single
field value changes the token.
*/
func TestCompute_FieldChangeChangesToken(t *testing.T) {
	base := etag.Compute(int64(1), "Bloodbath", 55, 100)

	assert.NotEqual(t, base, etag.Compute(int64(2), "Bloodbath", 55, 100))
	assert.NotEqual(t, base, etag.Compute(int64(1), "Bloodlust", 55, 100))
	assert.NotEqual(t, base, etag.Compute(int64(1), "Bloodbath", 56, 100))
}

/*
TestCompute_FieldOrderMatters asserts that the same values in a
different order hash differently, since Compute is order-sensitive.
*/
func TestCompute_FieldOrderMatters(t *testing.T) {
	a := etag.Compute("alpha", "beta")
	b := etag.Compute("beta", "alpha")
	assert.NotEqual(t, a, b)
}

/*
TestCompute_NilField exercises a nil pointer field, the shape a cleared
optional value (like a demon's video) takes.
*/
func TestCompute_NilField(t *testing.T) {
	var video *string
	withNil := etag.Compute(int64(1), video)

	value := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	withValue := etag.Compute(int64(1), &value)

	assert.NotEqual(t, withNil, withValue)
}
