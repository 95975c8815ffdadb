// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: MIT

package stat

import "github.com/hashicorp/golang-lru/simplelru"

const memoSize = 128

// queryCache memoizes derived query results. A mutation replaces the whole
// cache, so entries never need individual invalidation.
type queryCache struct {
	keys []float64
	cums []uint64

	sum    *float64
	sumsq  *float64
	mean   *float64
	varPop *float64
	varSmp *float64
	mode   *float64

	percentiles *simplelru.LRU
	moments     *simplelru.LRU

	hist *histMemo
}

type histMemo struct {
	cuts []float64
	bins []Bin
}

func newQueryCache() *queryCache {
	percentiles, _ := simplelru.NewLRU(memoSize, nil)
	moments, _ := simplelru.NewLRU(memoSize, nil)
	return &queryCache{
		percentiles: percentiles,
		moments:     moments,
	}
}
