package opengl

import "github.com/gogpu/gl2d/driver"

// fboEntry is one pooled framebuffer object keyed by size.
type fboEntry struct {
	w, h int
	id   uint32
}

// fboPool caches framebuffer objects by exact (width, height) and
// reuses them across render-target textures of the same size. Entries
// are never evicted individually; the pool only grows until
// releaseAll at renderer teardown.
type fboPool struct {
	entries []fboEntry
}

// acquire returns the framebuffer for a size, allocating and
// prepending a new one on the first request. Recently used sizes stay
// near the front of the linear search.
func (p *fboPool) acquire(f driver.Funcs, w, h int) uint32 {
	for _, e := range p.entries {
		if e.w == w && e.h == h {
			return e.id
		}
	}
	id := f.GenFramebuffer()
	p.entries = append([]fboEntry{{w: w, h: h, id: id}}, p.entries...)
	return id
}

// releaseAll deletes every pooled framebuffer object.
func (p *fboPool) releaseAll(f driver.Funcs) {
	for _, e := range p.entries {
		f.DeleteFramebuffer(e.id)
	}
	p.entries = nil
}
