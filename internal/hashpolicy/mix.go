package hashpolicy

import "math"

// splitmix64 is the fixed-point mixer used to turn a canonicalized numeric
// value into a well-distributed 64-bit hash. It is the same mixer commonly
// used for integer hash tables (Sebastiano Vigna's SplitMix64 step) and is
// deterministic and allocation-free, matching the probe loop's hot-path
// requirement.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	x ^= x >> 31
	return x
}

const (
	intDomainTag   uint64 = 0x1111111111111111
	negativeTag    uint64 = 0x2222222222222222
	floatDomainTag uint64 = 0x3333333333333333
	nanHashValue   uint64 = 0x4444444444444444
)

// hashSignedMagnitude is the canonical hash for every integer value and
// every integral float value, regardless of the original static width or
// signedness: the same mathematical integer always produces the same hash.
func hashSignedMagnitude(negative bool, magnitude uint64) uint64 {
	h := splitmix64(magnitude) ^ intDomainTag
	if negative && magnitude != 0 {
		h ^= negativeTag
	}
	return h
}

// hashFloatFraction hashes a float64 value that is finite but not integral
// (i.e. has a fractional part, so it can never equal an integer key).
func hashFloatFraction(f float64) uint64 {
	if f == 0 {
		f = 0 // normalize -0 to +0
	}
	bits := math.Float64bits(f)
	return splitmix64(bits) ^ floatDomainTag
}

// int64SignMagnitude splits a signed 64-bit value into (negative, magnitude)
// without overflow, even for math.MinInt64.
func int64SignMagnitude(v int64) (negative bool, magnitude uint64) {
	if v == math.MinInt64 {
		return true, 1 << 63
	}
	if v < 0 {
		return true, uint64(-v)
	}
	return false, uint64(v)
}

// floatSignMagnitude splits a finite, integral float64 into (negative,
// magnitude). Caller must have already verified f is finite and integral.
func floatSignMagnitude(f float64) (negative bool, magnitude uint64) {
	if f < 0 {
		return true, uint64(-f)
	}
	return false, uint64(f)
}
