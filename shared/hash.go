package shared

import (
	"encoding/binary"
	"math"
	"reflect"
	"unsafe"
)

// HashFn is a function that returns the hash of 't'.
type HashFn[T any] func(t T) uintptr

// Mix32 is MurmurHash3's 32-bit finalizer. It is an avalanche mixer: small
// changes to x produce large, well-distributed changes to the result, so
// the low bits masked by a power-of-two capacity stay well spread.
//
//go:inline
func Mix32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x85ebca6b
	x ^= x >> 13
	x *= 0xc2b2ae35
	x ^= x >> 16
	return x
}

// Mix32Seed XORs seed into x before mixing.
//
//go:inline
func Mix32Seed(x, seed uint32) uint32 {
	return Mix32(x ^ seed)
}

// Mix64 is David Stafford's variant 13 of the 64-bit avalanche mixer
// (splitmix64's finalizer), used as the 64-bit counterpart to Mix32.
//
//go:inline
func Mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Mix64Seed XORs seed into x before mixing.
//
//go:inline
func Mix64Seed(x, seed uint64) uint64 {
	return Mix64(x ^ seed)
}

// MixFloat32 re-interprets f as its raw IEEE-754 bit pattern before
// mixing, so +0.0 and -0.0 hash differently even though they compare
// equal under ==. This quirk is inherited from the reference
// implementation and is documented, not patched, per the spec's open
// question on float hashing.
func MixFloat32(f float32) uint32 {
	return Mix32(math.Float32bits(f))
}

// MixFloat64 is the 64-bit counterpart of MixFloat32.
func MixFloat64(f float64) uint64 {
	return Mix64(math.Float64bits(f))
}

// fnv1aModified implements a simpler and faster variant of fnv1a, used as
// the default hasher for string keys.
func fnv1aModified(b []byte) uintptr {
	const prime64 = uint64(1099511628211)
	h := uint64(14695981039346656037)

	for len(b) >= 8 {
		x := binary.BigEndian.Uint32(b)
		b = b[4:]
		y := binary.BigEndian.Uint32(b)
		b = b[4:]
		z := (uint64(x) << 32) | uint64(y)
		h = (h ^ z) * prime64
	}

	if len(b) >= 4 {
		x := binary.BigEndian.Uint16(b)
		b = b[2:]
		y := binary.BigEndian.Uint16(b)
		b = b[2:]
		z := (uint64(x) << 16) | uint64(y)
		h = (h ^ z) * prime64
	}

	if len(b) >= 2 {
		h = (h ^ uint64(b[0]^b[1])) * prime64
		b = b[2:]
	}

	if len(b) > 0 {
		h = (h ^ uint64(b[0])) * prime64
	}

	return uintptr(h)
}

// GetHasher returns a default hasher for the golang builtin key kinds.
// Complex key types (structs, slices behind a comparable wrapper) must
// supply their own HashFn via NewWithHasher.
func GetHasher[Key any]() HashFn[Key] {
	var key Key
	kind := reflect.ValueOf(&key).Elem().Type().Kind()

	switch kind {
	case reflect.Int, reflect.Uint, reflect.Uintptr:
		switch unsafe.Sizeof(key) {
		case 2:
			return *(*func(Key) uintptr)(unsafe.Pointer(&hashWord))
		case 4:
			return *(*func(Key) uintptr)(unsafe.Pointer(&hashDword))
		case 8:
			return *(*func(Key) uintptr)(unsafe.Pointer(&hashQword))
		default:
			panic("unsupported integer byte size")
		}
	case reflect.Int8, reflect.Uint8:
		return *(*func(Key) uintptr)(unsafe.Pointer(&hashByte))
	case reflect.Int16, reflect.Uint16:
		return *(*func(Key) uintptr)(unsafe.Pointer(&hashWord))
	case reflect.Int32, reflect.Uint32:
		return *(*func(Key) uintptr)(unsafe.Pointer(&hashDword))
	case reflect.Int64, reflect.Uint64:
		return *(*func(Key) uintptr)(unsafe.Pointer(&hashQword))
	case reflect.Float32:
		return *(*func(Key) uintptr)(unsafe.Pointer(&hashFloat32))
	case reflect.Float64:
		return *(*func(Key) uintptr)(unsafe.Pointer(&hashFloat64))
	case reflect.String:
		fn := func(s string) uintptr { return fnv1aModified([]byte(s)) }
		return *(*func(Key) uintptr)(unsafe.Pointer(&fn))
	default:
		panic("unsupported key kind " + kind.String())
	}
}

var hashByte = func(in uint8) uintptr {
	return uintptr(Mix32(uint32(in)))
}

var hashWord = func(in uint16) uintptr {
	return uintptr(Mix32(uint32(in)))
}

var hashDword = func(key uint32) uintptr {
	return uintptr(Mix32(key))
}

var hashQword = func(key uint64) uintptr {
	return uintptr(Mix64(key))
}

var hashFloat32 = func(in float32) uintptr {
	return uintptr(MixFloat32(in))
}

var hashFloat64 = func(in float64) uintptr {
	return uintptr(MixFloat64(in))
}

// GetSeededHasher is the seeded counterpart of GetHasher: the seed is
// XORed into the key's bit pattern before mixing, per spec.md's "seeded
// variants XOR the seed before mixing" rule. Each branch's closure takes
// a parameter of the exact byte width of the kind it handles, matching
// the unsafe-cast discipline GetHasher relies on.
func GetSeededHasher[Key any](seed uint64) HashFn[Key] {
	var key Key
	kind := reflect.ValueOf(&key).Elem().Type().Kind()
	seed32 := uint32(seed)

	switch kind {
	case reflect.Int, reflect.Uint, reflect.Uintptr:
		switch unsafe.Sizeof(key) {
		case 2:
			fn := func(k uint16) uintptr { return uintptr(Mix32Seed(uint32(k), seed32)) }
			return *(*func(Key) uintptr)(unsafe.Pointer(&fn))
		case 4:
			fn := func(k uint32) uintptr { return uintptr(Mix32Seed(k, seed32)) }
			return *(*func(Key) uintptr)(unsafe.Pointer(&fn))
		case 8:
			fn := func(k uint64) uintptr { return uintptr(Mix64Seed(k, seed)) }
			return *(*func(Key) uintptr)(unsafe.Pointer(&fn))
		default:
			panic("unsupported integer byte size")
		}
	case reflect.Int8, reflect.Uint8:
		fn := func(k uint8) uintptr { return uintptr(Mix32Seed(uint32(k), seed32)) }
		return *(*func(Key) uintptr)(unsafe.Pointer(&fn))
	case reflect.Int16, reflect.Uint16:
		fn := func(k uint16) uintptr { return uintptr(Mix32Seed(uint32(k), seed32)) }
		return *(*func(Key) uintptr)(unsafe.Pointer(&fn))
	case reflect.Int32, reflect.Uint32:
		fn := func(k uint32) uintptr { return uintptr(Mix32Seed(k, seed32)) }
		return *(*func(Key) uintptr)(unsafe.Pointer(&fn))
	case reflect.Int64, reflect.Uint64:
		fn := func(k uint64) uintptr { return uintptr(Mix64Seed(k, seed)) }
		return *(*func(Key) uintptr)(unsafe.Pointer(&fn))
	default:
		// strings and floats fall back to the unseeded default; seeding
		// those is rare enough in practice that the base hasher suffices.
		return GetHasher[Key]()
	}
}
