// Package robin implements the generic-key Robin-Hood open-addressing
// set layout. Instead of a boolean presence array, each slot caches its
// probe distance (PSL): -1 means empty, any non-negative value is the
// forward distance from the key's natural home. On insert collision the
// resident with the smaller PSL is evicted in favor of the incoming key
// ("takes from the rich, gives to the poor"), which bounds the variance
// of probe lengths tightly around the mean instead of just bounding the
// mean itself.
package robin
