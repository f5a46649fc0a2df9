package qvm

import (
	"fmt"
	"iter"
	"sort"
)

// PinnedBit holds the qubit at Address to Bit while an orbit is enumerated.
type PinnedBit struct {
	Address int
	Bit     uint8
}

/*
ValidAddresses reports whether addresses is a usable address set for a
register of the given width: the width is positive, there are no more
addresses than qubits, and every address is in range and appears once.
*/
func ValidAddresses(width int, addresses []int) bool {
	if width <= 0 || len(addresses) > width {
		return false
	}

	seen := make(map[int]struct{}, len(addresses))
	for _, address := range addresses {
		if address < 0 || address >= width {
			return false
		}
		if _, dup := seen[address]; dup {
			return false
		}
		seen[address] = struct{}{}
	}

	return true
}

/*
AddressDecoder enumerates the full register indices that agree with a set of
pinned bits. The free (unpinned) positions are driven by a counter whose bits
are inserted, lowest first, into the free positions in ascending address order,
so indices come out strictly ascending.

With m pinned bits on an n-qubit register the decoder yields exactly 2^(n-m)
indices and is then exhausted. The same pinned positions with different pinned
values enumerate a disjoint orbit; all 2^m orbits together cover every index.
*/
type AddressDecoder struct {
	width   int
	pinned  []PinnedBit
	counter int
	free    int
}

/*
NewAddressDecoder validates pinned against width and returns a decoder
positioned at the first index. The caller's slice is copied before sorting.
*/
func NewAddressDecoder(width int, pinned []PinnedBit) (*AddressDecoder, error) {
	addresses := make([]int, len(pinned))
	for i, p := range pinned {
		if p.Bit > 1 {
			return nil, fmt.Errorf("%w: pinned bit %d at address %d is not binary", ErrInvalidArgument, p.Bit, p.Address)
		}
		addresses[i] = p.Address
	}

	if !ValidAddresses(width, addresses) {
		return nil, fmt.Errorf("%w: pinned addresses %v for width %d", ErrInvalidArgument, addresses, width)
	}

	sorted := make([]PinnedBit, len(pinned))
	copy(sorted, pinned)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Address < sorted[j].Address
	})

	return &AddressDecoder{
		width:  width,
		pinned: sorted,
		free:   width - len(sorted),
	}, nil
}

// Len is the total number of indices the decoder produces.
func (d *AddressDecoder) Len() int {
	return 1 << d.free
}

/*
Decode maps a free-bit counter to its full register index. Positions are
visited from 0 upwards; a pinned position takes its pinned bit, any other
position takes the next unused bit of counter.
*/
func (d *AddressDecoder) Decode(counter int) int {
	var index, next, cursor int

	for position := 0; position < d.width; position++ {
		if next < len(d.pinned) && d.pinned[next].Address == position {
			index |= int(d.pinned[next].Bit) << position
			next++
			continue
		}

		index |= ((counter >> cursor) & 1) << position
		cursor++
	}

	return index
}

// Next returns the next index, or false once the orbit is exhausted.
func (d *AddressDecoder) Next() (int, bool) {
	if d.counter >= d.Len() {
		return 0, false
	}

	index := d.Decode(d.counter)
	d.counter++

	return index, true
}

// All drains the decoder as a range-over-func sequence.
func (d *AddressDecoder) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for {
			index, ok := d.Next()
			if !ok || !yield(index) {
				return
			}
		}
	}
}
