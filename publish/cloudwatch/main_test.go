// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: MIT

package cloudwatch

import (
	"testing"

	"go.uber.org/goleak"
)

// The publisher runs a background goroutine per instance, so every test
// must stop what it starts.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
