// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/ndtf

package ndtf

import (
	"fmt"
	"math/bits"
)

const (
	maxInt    = int(^uint(0) >> 1)
	maxUint32 = uint64(^uint32(0))
)

// intFromU64 converts a uint64 to an int.
func intFromU64(n uint64) (int, error) {
	if n > uint64(maxInt) {
		return 0, ErrSizeOverflow
	}

	return int(n), nil
}

// u32FromInt converts an int to a uint32.
func u32FromInt(n int) (uint32, error) {
	if n < 0 || uint64(n) > maxUint32 {
		return 0, ErrSizeOverflow
	}

	// #nosec G115 -- bounds checked above.
	return uint32(n), nil
}

// u16FromInt converts an int to a uint16.
func u16FromInt(n int) (uint16, error) {
	if n < 0 || n > 0xffff {
		return 0, ErrSizeOverflow
	}

	// #nosec G115 -- bounds checked above.
	return uint16(n), nil
}

// mulU64 multiplies two sizes and reports overflow.
func mulU64(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, ErrSizeOverflow
	}

	return lo, nil
}

// payloadSize converts a payload byte count to an int within MaxDataSize.
func payloadSize(n uint64) (int, error) {
	if n > MaxDataSize {
		return 0, fmt.Errorf("%w: payload of %d bytes exceeds %d", ErrSizeOverflow, n, MaxDataSize)
	}

	return intFromU64(n)
}
