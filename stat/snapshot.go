// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: MIT

package stat

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Snapshot is a portable dump of a distribution: its configuration plus
// parallel slices of bucket representatives and counts, sorted by value.
type Snapshot struct {
	Base          float64   `json:"base"`
	ZeroThreshold float64   `json:"zeroThreshold,omitempty"`
	Values        []float64 `json:"values"`
	Counts        []uint64  `json:"counts"`
}

// Snapshot captures the current bucket contents.
func (d *Distribution) Snapshot() Snapshot {
	keys := d.sortedKeys()
	s := Snapshot{
		Base:          d.base,
		ZeroThreshold: d.zeroThreshold,
		Values:        make([]float64, len(keys)),
		Counts:        make([]uint64, len(keys)),
	}
	for i, k := range keys {
		s.Values[i] = k
		s.Counts[i] = d.buckets[k]
	}
	return s
}

// FromSnapshot rebuilds a distribution from a snapshot. Representatives
// round to themselves under the snapshot's own configuration, so the
// rebuilt distribution exports the same buckets.
func FromSnapshot(s Snapshot) (*Distribution, error) {
	if len(s.Values) != len(s.Counts) {
		return nil, fmt.Errorf("snapshot has %d values and %d counts: %w",
			len(s.Values), len(s.Counts), ErrInvalidArgument)
	}
	d, err := New(Config{Base: s.Base, ZeroThreshold: s.ZeroThreshold})
	if err != nil {
		return nil, err
	}
	weights := make(map[float64]uint64, len(s.Values))
	for i, v := range s.Values {
		weights[v] += s.Counts[i]
	}
	if err := d.AddWeighted(weights); err != nil {
		return nil, err
	}
	return d, nil
}

// MarshalJSON encodes the distribution as its snapshot.
func (d *Distribution) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Snapshot())
}

// UnmarshalJSON decodes a snapshot and replaces the distribution with it.
func (d *Distribution) UnmarshalJSON(data []byte) error {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	nd, err := FromSnapshot(s)
	if err != nil {
		return err
	}
	*d = *nd
	return nil
}
