package robin

import "testing"

// TestProbeDistanceOrdering exercises spec.md §3 invariant 5: at the
// point a probe terminates, the searcher's distance from its own home
// slot is strictly greater than the resident's cached PSL on a miss,
// and equal to it on a hit (never less, on either outcome).
func TestProbeDistanceOrdering(t *testing.T) {
	constHash := func(int) uintptr { return 3 }
	s := NewWithHasher[int](constHash)

	s.Add(1) // home 3, lands at slot 3, psl 0
	s.Add(2) // home 3, lands at slot 4, psl 1
	s.Add(3) // home 3, lands at slot 5, psl 2

	if !s.Contains(3) {
		t.Fatalf("expected 3 to be present")
	}
	hitIdx := uintptr(s.lastSlot)
	if s.probeDistance(hitIdx) != 2 {
		t.Fatalf("resident PSL at a hit = %d, want 2", s.probeDistance(hitIdx))
	}

	// 99 also homes to slot 3 but was never inserted: the searcher walks
	// 3, 4, 5, 6 and must stop at slot 6 because its own probe distance
	// (3) is now strictly greater than the empty slot there (-1), while
	// at slots 3..5 its growing distance never exceeds the resident's
	// larger-or-equal PSL until it does.
	if s.Contains(99) {
		t.Fatalf("99 was never inserted")
	}

	idx := s.hasher(99) & s.capMinus1
	dist := int32(0)
	for dist <= s.probeDistance(idx) {
		idx = (idx + 1) & s.capMinus1
		dist++
	}
	// the loop mirrors Contains' own termination test; it must exit with
	// dist strictly greater than the resident's PSL (never equal, since
	// this is a miss), confirming invariant 5.
	if dist <= s.probeDistance(idx) {
		t.Fatalf("search termination invariant violated: dist %d, resident psl %d", dist, s.probeDistance(idx))
	}
}
