package shared

const (
	// DefaultMaxLoad is the default load factor for the open-addressing
	// set layouts (plain, robin, sentinel), which can be changed with
	// MaxLoad(). This value is a trade-off of runtime and memory
	// consumption.
	DefaultMaxLoad = 0.7

	// DefaultSize is the minimal number of slots a freshly constructed
	// set reserves.
	DefaultSize = 4

	// MinCapacity is the smallest power-of-two capacity a set is ever
	// constructed with or allowed to shrink to.
	MinCapacity = 4

	// DefaultHeapCapacity is the number of usable slots (buffer[1..N])
	// a freshly constructed heap reserves.
	DefaultHeapCapacity = 15

	// HeapGrowthCrossover is the element count above which the heap
	// switches from doubling growth to bounded-proportional growth, to
	// cap the cost of a single reallocation for very large heaps.
	HeapGrowthCrossover = 1 << 16

	// IteratorPoolCapacity bounds the number of recycled iterator
	// objects a container keeps on hand; the pool is a LIFO and drops
	// anything beyond this bound instead of growing unbounded.
	IteratorPoolCapacity = 8
)
