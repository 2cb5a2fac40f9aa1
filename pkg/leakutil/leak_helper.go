// Copyright 2024 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package leakutil

import (
	"testing"

	"go.uber.org/goleak"
)

// VerifyNone verifies that no goroutines are leaked at the end of a test.
func VerifyNone(t *testing.T, options ...goleak.Option) {
	goleak.VerifyNone(t, options...)
}

// SetUpLeakTest runs goleak verification on all tests in a package.
// Usage:
//
//	func TestMain(m *testing.M) {
//		leakutil.SetUpLeakTest(m)
//	}
func SetUpLeakTest(m *testing.M, options ...goleak.Option) {
	goleak.VerifyTestMain(m, options...)
}
