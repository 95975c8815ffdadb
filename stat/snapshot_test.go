// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: MIT

package stat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	d, err := New(Config{Base: 2, ZeroThreshold: 0.1})
	require.NoError(t, err)
	require.NoError(t, d.Add(-2, 0, 0.05, 4, 8, 8))

	s := d.Snapshot()
	assert.Equal(t, 2.0, s.Base)
	assert.Equal(t, d.ZeroThreshold(), s.ZeroThreshold)
	assert.Equal(t, len(s.Values), len(s.Counts))
	assert.IsNonDecreasing(t, s.Values)

	rebuilt, err := FromSnapshot(s)
	require.NoError(t, err)
	assert.Equal(t, d.Count(), rebuilt.Count())
	assert.Equal(t, d.Export(), rebuilt.Export())
	assert.Equal(t, d.ZeroThreshold(), rebuilt.ZeroThreshold())

	wantMean, ok := d.Mean()
	require.True(t, ok)
	gotMean, ok := rebuilt.Mean()
	require.True(t, ok)
	assert.Equal(t, wantMean, gotMean)
}

func TestFromSnapshotRejectsMismatchedLengths(t *testing.T) {
	_, err := FromSnapshot(Snapshot{
		Base:   2,
		Values: []float64{1, 2},
		Counts: []uint64{1},
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFromSnapshotRejectsBadConfig(t *testing.T) {
	_, err := FromSnapshot(Snapshot{Base: 0.5})
	assert.ErrorIs(t, err, ErrConfig)
}

func TestDistributionJSON(t *testing.T) {
	d, err := New(Config{Base: 2})
	require.NoError(t, err)
	require.NoError(t, d.Add(-2, 4, 4))

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"base":2,"values":[-2,4],"counts":[1,2]}`, string(data))

	var decoded Distribution
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, d.Count(), decoded.Count())
	assert.Equal(t, d.Export(), decoded.Export())
	assert.Equal(t, 2.0, decoded.Base())

	// The decoded distribution accepts further writes.
	require.NoError(t, decoded.Add(16))
	assert.Equal(t, uint64(4), decoded.Count())
}
