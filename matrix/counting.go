// SPDX-License-Identifier: MIT

package matrix

import "sync"

// CountingAllocator wraps another Allocator and records how many buffers and
// elements pass through it. Useful for leak checks and for reporting the peak
// working set of a computation.
type CountingAllocator struct {
	Next Allocator // nil ⇒ HeapAllocator{}

	mu          sync.Mutex
	allocs      int
	releases    int
	outstanding int
	peak        int
}

// Alloc forwards to Next and records the request on success.
func (c *CountingAllocator) Alloc(n int) ([]float64, error) {
	next := c.Next
	if next == nil {
		next = HeapAllocator{}
	}
	buf, err := next.Alloc(n)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.allocs++
	c.outstanding += len(buf)
	if c.outstanding > c.peak {
		c.peak = c.outstanding
	}
	c.mu.Unlock()

	return buf, nil
}

// Release forwards to Next and records the release.
func (c *CountingAllocator) Release(buf []float64) {
	c.mu.Lock()
	c.releases++
	c.outstanding -= len(buf)
	c.mu.Unlock()

	if c.Next != nil {
		c.Next.Release(buf)
	}
}

// Stats returns (allocs, releases, outstanding elements, peak elements).
func (c *CountingAllocator) Stats() (allocs, releases, outstanding, peak int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.allocs, c.releases, c.outstanding, c.peak
}
