package loop

// Arena hands out scratch byte slices that live for one frame.
// The loop resets it at the end of every Step, so slices obtained from Alloc
// must not be retained across frames.
type Arena struct {
	slab []byte
	off  int
	peak int
}

// NewArena creates an arena with an initial capacity in bytes.
func NewArena(capacity int) *Arena {
	if capacity < 0 {
		capacity = 0
	}
	return &Arena{slab: make([]byte, capacity)}
}

// Alloc returns a zeroed slice of n bytes valid until the next Reset.
func (a *Arena) Alloc(n int) []byte {
	if n <= 0 {
		return nil
	}
	if a.off+n > len(a.slab) {
		// Earlier slices keep the old slab alive until they are dropped.
		size := 2 * len(a.slab)
		if size < n {
			size = n
		}
		a.slab = make([]byte, size)
		a.off = 0
	}
	s := a.slab[a.off : a.off+n : a.off+n]
	clear(s)
	a.off += n
	if a.off > a.peak {
		a.peak = a.off
	}
	return s
}

// InUse returns the number of bytes handed out since the last Reset.
func (a *Arena) InUse() int {
	return a.off
}

// Peak returns the largest per-frame usage seen.
func (a *Arena) Peak() int {
	return a.peak
}

// Reset releases every allocation made since the previous Reset.
func (a *Arena) Reset() {
	a.off = 0
}
