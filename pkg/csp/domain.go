package csp

import "math/bits"

// Domain is the set of values a placement may still take, encoded as a
// bitmask over the value alphabet (bit v set means Value(v) is present).
// The alphabet has NumValues entries, so a Domain fits in a byte.
//
// During propagation and search a domain only ever shrinks; every removal
// is recorded on the solver's trail so the exact prior state is restored
// on backtrack.
type Domain uint8

// fullDomain contains every value in the alphabet.
const fullDomain Domain = 1<<NumValues - 1

// Has reports whether v is in the domain.
func (d Domain) Has(v Value) bool { return d&(1<<v) != 0 }

// Count returns the number of values in the domain.
func (d Domain) Count() int { return bits.OnesCount8(uint8(d)) }

// Empty reports whether the domain has no values left. An empty domain is a
// contradiction: the variable cannot be assigned.
func (d Domain) Empty() bool { return d == 0 }

// remove returns the domain with v removed.
func (d Domain) remove(v Value) Domain { return d &^ (1 << v) }

// add returns the domain with v restored.
func (d Domain) add(v Value) Domain { return d | (1 << v) }

// Values returns the values in the domain in ascending order. The order is
// the deterministic base order that heuristics sort from.
func (d Domain) Values() []Value {
	out := make([]Value, 0, d.Count())
	for v := Value(0); v < NumValues; v++ {
		if d.Has(v) {
			out = append(out, v)
		}
	}
	return out
}

// InitialDomains builds the initial domain for every placement of p.
//
// NoTile is always legal. A tile value is legal when its shape has inventory
// left; geometric legality is shape-independent of bush colors, so no value
// is excluded by the landscape itself (visibility is a downstream count, not
// a placement-time restriction).
func InitialDomains(p *Problem) []Domain {
	base := Domain(1 << NoTile)
	for v := Value(1); v < NumValues; v++ {
		if s, ok := v.Shape(); ok && p.Inventory().Count(s) > 0 {
			base = base.add(v)
		}
	}
	domains := make([]Domain, p.NumPlacements())
	for i := range domains {
		domains[i] = base
	}
	return domains
}
