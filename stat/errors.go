// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: MIT

package stat

import "errors"

var (
	// ErrConfig indicates construction parameters outside their domain.
	ErrConfig = errors.New("invalid configuration")

	// ErrInvalidArgument indicates a query parameter outside its domain.
	// The call fails without touching stored data.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDomain indicates a query that is mathematically undefined on the
	// current data, such as the geometric mean of mixed-sign observations.
	ErrDomain = errors.New("undefined on current data")

	// ErrUnsupportedValue indicates an observation the bucketizer cannot
	// place: NaN, an infinity, or a magnitude outside [MinValue, MaxValue].
	ErrUnsupportedValue = errors.New("unsupported value")
)
