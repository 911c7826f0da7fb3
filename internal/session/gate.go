// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

// Gate is the single-shot guard over automatic profile loading for one token.
//
//	Idle ──fetch──▶ InFlight ──ok──▶ Done
//	                    │
//	                    └──error──▶ Failed ──fetch──▶ InFlight
//
// Done is terminal until the token changes; Failed permits a retry.
type Gate int

const (
	GateIdle Gate = iota
	GateInFlight
	GateDone
	GateFailed
)

func (g Gate) String() string {
	switch g {
	case GateIdle:
		return "idle"
	case GateInFlight:
		return "in_flight"
	case GateDone:
		return "done"
	case GateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// canStart reports whether a new fetch may begin from g.
func (g Gate) canStart() bool {
	return g == GateIdle || g == GateFailed
}
