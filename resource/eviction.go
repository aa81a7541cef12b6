// MIT License
//
// Copyright (c) 2026 Stagehand Engine Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package resource

import "errors"

// ErrInvalidEvictionPolicy is returned when an invalid eviction policy is specified.
var ErrInvalidEvictionPolicy = errors.New("invalid eviction policy")

// EvictionPolicy defines the strategy used to select which unreferenced
// cache entry to drop once the cache exceeds its capacity.
type EvictionPolicy int

const (
	// LRU (Least Recently Used) evicts the entry that has not been accessed
	// for the longest time. Recency is updated on every cache hit.
	LRU EvictionPolicy = iota

	// LFU (Least Frequently Used) evicts the entry with the fewest accesses.
	LFU

	// MRU (Most Recently Used) evicts the entry that was accessed most recently.
	MRU
)

// String returns the string representation of the EvictionPolicy.
// It satisfies the fmt.Stringer interface.
func (x EvictionPolicy) String() string {
	switch x {
	case LRU:
		return "LRU"
	case LFU:
		return "LFU"
	case MRU:
		return "MRU"
	default:
		return "Unknown"
	}
}

// Validate checks that the policy is one of the known values.
func (x EvictionPolicy) Validate() error {
	switch x {
	case LRU, LFU, MRU:
		return nil
	default:
		return ErrInvalidEvictionPolicy
	}
}
