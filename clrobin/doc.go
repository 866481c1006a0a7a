// Package clrobin is a single-owner Robin-Hood set variant that groups
// slots into fixed-size, cache-line-sized bands and keeps a compact
// occupancy bitmask per band. Scans that would otherwise touch every
// slot (ForEach, RemoveAll, HashCode) skip an entire empty band in one
// comparison instead of probing each of its slots individually. The
// underlying probe/shift-back algorithm is identical to package robin;
// only the scan-skipping metadata differs.
//
// This package previously housed a concurrent, sync.Map-shaped variant
// of the same probing scheme; the concurrency surface has been removed
// (every structure in this module is single-owner, see the module's
// Non-goals) and the type has been repurposed into this grouped-scan
// variant instead.
package clrobin
