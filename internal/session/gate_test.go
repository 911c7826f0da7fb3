// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGateTransitions(t *testing.T) {
	cases := []struct {
		gate  Gate
		start bool
		name  string
	}{
		{GateIdle, true, "idle"},
		{GateInFlight, false, "in_flight"},
		{GateDone, false, "done"},
		{GateFailed, true, "failed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.start, tc.gate.canStart())
			assert.Equal(t, tc.name, tc.gate.String())
		})
	}
	assert.Equal(t, "unknown", Gate(42).String())
}
