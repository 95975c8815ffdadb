// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: MIT

package stat

// Mode estimates the most likely value as the representative of the bucket
// with the highest local density. Density spreads each bucket's count over
// the distance to its neighbors, so narrow crowded buckets win over wide
// ones with the same count. Ties keep the smallest representative. It
// reports false for an empty distribution.
func (d *Distribution) Mode() (float64, bool) {
	if d.cache.mode != nil {
		return *d.cache.mode, true
	}
	keys := d.sortedKeys()
	switch len(keys) {
	case 0:
		return 0, false
	case 1:
		only := keys[0]
		d.cache.mode = &only
		return only, true
	}

	best := keys[0]
	bestDensity := d.densityAt(keys, 0)
	for i := 1; i < len(keys); i++ {
		if density := d.densityAt(keys, i); density > bestDensity {
			best, bestDensity = keys[i], density
		}
	}
	d.cache.mode = &best
	return best, true
}

// densityAt measures concentration around keys[i]: the bucket's own count
// plus half of each neighbor, over the span between the neighbors. Edge
// buckets use their single neighbor and the span to it.
func (d *Distribution) densityAt(keys []float64, i int) float64 {
	count := func(j int) float64 { return float64(d.buckets[keys[j]]) }
	last := len(keys) - 1
	switch i {
	case 0:
		return (count(0) + count(1)/2) / (keys[1] - keys[0])
	case last:
		return (count(last) + count(last-1)/2) / (keys[last] - keys[last-1])
	default:
		return (count(i) + (count(i-1)+count(i+1))/2) / (keys[i+1] - keys[i-1])
	}
}
