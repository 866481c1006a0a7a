// Package sentinel implements the primitive-key open-addressing set
// layout: a single contiguous key array with no parallel presence array
// at all. The key type's zero value doubles as the "empty slot" marker,
// which is unambiguous for unsigned counters, machine words, and the
// like. Since the zero value is also a legitimate user key, it is
// tracked out-of-band in a single boolean flag instead of ever being
// written into the array.
package sentinel
