// Package shared holds the substrate every layout package builds on:
// the hash-mixing primitives (Mix32/Mix64 and their seeded/float
// variants), the power-of-two sizing policy, the cyclic shift-back
// test used by every open-addressing Remove, a bounded iterator pool,
// and the sentinel errors shared across packages.
//
// Nothing here is exported for its own sake; every type and function
// exists because at least one of plain, robin, sentinel, heap,
// clrobin, or the root colleng package needs it.
package shared
