package checkpoint

import (
	"fmt"
	"math"

	"github.com/dmitrymomot/probekit/pkg/probe"
)

// Unbounded marks a checkpoint with no known ceiling.
var Unbounded = math.Inf(1)

// Checkpoint ties a capability probe to the release interval in which it
// first appeared.
type Checkpoint struct {
	Probe probe.Query
	Min   float64
	Max   float64
}

// Table is an ordered list of checkpoints for one family, newest first.
type Table struct {
	Name   string
	Points []Checkpoint
}

// Clamp bounds a self-reported version into [minVersion, maxVersion].
// A report below the floor is replaced by the floor.
func Clamp(ua, minVersion, maxVersion float64) float64 {
	if ua < minVersion || math.IsNaN(ua) {
		return minVersion
	}
	return math.Min(ua, maxVersion)
}

// Match returns the first checkpoint whose probe succeeds.
func (t Table) Match(o probe.Oracle) (Checkpoint, bool) {
	for _, cp := range t.Points {
		if cp.Probe.Eval(o) {
			return cp, true
		}
	}
	return Checkpoint{}, false
}

// Bound maps a self-reported version onto the table. The first matching
// probe decides; when nothing matches the oldest floor is assumed.
func (t Table) Bound(o probe.Oracle, ua float64) float64 {
	if cp, ok := t.Match(o); ok {
		return Clamp(ua, cp.Min, cp.Max)
	}
	return t.Floor()
}

// Floor is the minimum of the oldest checkpoint, or DefaultVersion for an
// empty table.
func (t Table) Floor() float64 {
	if len(t.Points) == 0 {
		return probe.DefaultVersion
	}
	return t.Points[len(t.Points)-1].Min
}

// Validate checks that checkpoints run newest to oldest and that every
// interval is well formed.
func (t Table) Validate() error {
	for i, cp := range t.Points {
		if cp.Max < cp.Min {
			return fmt.Errorf("%w: %s[%d] %s: max %v below min %v", ErrInvalidInterval, t.Name, i, cp.Probe, cp.Max, cp.Min)
		}
		if i > 0 && cp.Min > t.Points[i-1].Min {
			return fmt.Errorf("%w: %s[%d] %s: min %v after %v", ErrUnordered, t.Name, i, cp.Probe, cp.Min, t.Points[i-1].Min)
		}
	}
	return nil
}

func at(q probe.Query, minVersion float64) Checkpoint {
	return Checkpoint{Probe: q, Min: minVersion, Max: Unbounded}
}

func span(q probe.Query, minVersion, maxVersion float64) Checkpoint {
	return Checkpoint{Probe: q, Min: minVersion, Max: maxVersion}
}

// head builds the newest checkpoint, whose ceiling is configurable.
// A ceiling below the floor collapses the interval onto the floor.
func head(q probe.Query, minVersion, latest float64) Checkpoint {
	return span(q, minVersion, math.Max(minVersion, latest))
}
