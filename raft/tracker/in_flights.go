package tracker

import "github.com/Orenef11/scylla/utils"

// inFlights is a sliding window of the un-acked append requests sent while
// pipelining. Indexes of the last entry of every request MUST be added in
// order. When the window is full no more request should be sent. Receiving
// an acknowledgement up to idx frees every request covered by it.
type inFlights struct {
	start  uint
	count  uint
	buffer []uint64
}

func makeInFlights(cap uint) inFlights {
	return inFlights{
		start:  0,
		count:  0,
		buffer: make([]uint64, cap),
	}
}

func (i *inFlights) full() bool {
	return i.count == i.cap()
}

func (i *inFlights) cap() uint {
	return uint(len(i.buffer))
}

func (i *inFlights) mod(idx uint) uint {
	for idx >= i.cap() {
		idx -= i.cap()
	}
	return idx
}

// add occupies one slot with the last entry index of a sent request.
func (i *inFlights) add(lastIdx uint64) {
	utils.Assert(!i.full(), "cannot add into a full inFlights")

	next := i.mod(i.start + i.count)
	i.buffer[next] = lastIdx
	i.count++
}

// freeTo frees every request whose last entry index is smaller or equal to.
func (i *inFlights) freeTo(to uint64) {
	if i.count == 0 || to < i.buffer[i.start] {
		// out of the left side of the window
		return
	}

	for j := uint(0); j < i.count; j++ {
		idx := i.mod(i.start + j)
		if to >= i.buffer[idx] {
			continue
		}

		// found the first request not covered,
		// free the j requests before it
		i.count -= j
		i.start = idx
		return
	}
	// all need free
	i.reset()
}

func (i *inFlights) reset() {
	i.count = 0
	i.start = 0
}
