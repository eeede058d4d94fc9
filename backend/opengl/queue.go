package opengl

import (
	"github.com/gogpu/gl2d"
)

// Compile phase. Each Queue* method bakes one primitive's geometry
// into the queue's vertex arena and appends a command referencing it.
// Compilation never touches GPU state; only the point/line half-pixel
// bias and the per-texture sampling extent are applied here so the
// executor can replay commands without further math.

// QueueSetViewport appends a viewport change.
func (r *Renderer) QueueSetViewport(q *gl2d.Queue, rect gl2d.Rect) error {
	q.Append(gl2d.Command{Kind: gl2d.CmdSetViewport, Viewport: rect})
	return nil
}

// QueueSetClipRect appends a clip change. The enable flag and the
// rectangle are tracked independently by the executor.
func (r *Renderer) QueueSetClipRect(q *gl2d.Queue, rect gl2d.Rect, enabled bool) error {
	q.Append(gl2d.Command{Kind: gl2d.CmdSetClipRect, Clip: rect, ClipEnabled: enabled})
	return nil
}

// QueueSetDrawColor records the renderer's persistent draw color. The
// command itself is a no-op at execution time; draw commands carry
// their own color.
func (r *Renderer) QueueSetDrawColor(q *gl2d.Queue, c gl2d.Color, blend gl2d.BlendMode) error {
	r.drawColor = c
	r.drawBlend = blend
	q.Append(gl2d.Command{Kind: gl2d.CmdSetDrawColor, Color: c, Blend: blend})
	return nil
}

// QueueClear appends a full-target clear. Clears ignore the clip
// rectangle.
func (r *Renderer) QueueClear(q *gl2d.Queue, c gl2d.Color) error {
	q.Append(gl2d.Command{Kind: gl2d.CmdClear, Color: c})
	return nil
}

// QueueDrawPoints compiles points, biased to pixel centers.
func (r *Renderer) QueueDrawPoints(q *gl2d.Queue, pts []gl2d.FPoint, c gl2d.Color, blend gl2d.BlendMode) error {
	if len(pts) == 0 {
		return nil
	}
	first, v := q.Vertices.Alloc(2 * len(pts))
	for i, p := range pts {
		v[2*i] = p.X + 0.5
		v[2*i+1] = p.Y + 0.5
	}
	q.Append(gl2d.Command{Kind: gl2d.CmdDrawPoints, Color: c, Blend: blend,
		First: first, Count: len(pts)})
	return nil
}

// QueueDrawLines compiles a polyline, biased to pixel centers. The
// executor closes it as a loop when the endpoints coincide.
func (r *Renderer) QueueDrawLines(q *gl2d.Queue, pts []gl2d.FPoint, c gl2d.Color, blend gl2d.BlendMode) error {
	if len(pts) < 2 {
		return nil
	}
	first, v := q.Vertices.Alloc(2 * len(pts))
	for i, p := range pts {
		v[2*i] = p.X + 0.5
		v[2*i+1] = p.Y + 0.5
	}
	q.Append(gl2d.Command{Kind: gl2d.CmdDrawLines, Color: c, Blend: blend,
		First: first, Count: len(pts)})
	return nil
}

// QueueFillRects compiles filled rectangles as min/max extents.
// Degenerate rectangles still produce valid entries; they draw
// nothing visible.
func (r *Renderer) QueueFillRects(q *gl2d.Queue, rects []gl2d.FRect, c gl2d.Color, blend gl2d.BlendMode) error {
	if len(rects) == 0 {
		return nil
	}
	first, v := q.Vertices.Alloc(4 * len(rects))
	for i, rc := range rects {
		v[4*i] = rc.X
		v[4*i+1] = rc.Y
		v[4*i+2] = rc.X + rc.W
		v[4*i+3] = rc.Y + rc.H
	}
	q.Append(gl2d.Command{Kind: gl2d.CmdFillRects, Color: c, Blend: blend,
		First: first, Count: len(rects)})
	return nil
}

// QueueCopy compiles a textured copy: destination extents plus source
// texture coordinates normalized by the texture's logical size and
// scaled by its sampling extent.
func (r *Renderer) QueueCopy(q *gl2d.Queue, t *gl2d.Texture, src, dst gl2d.FRect, c gl2d.Color, blend gl2d.BlendMode) error {
	gt, err := r.glTex(t)
	if err != nil {
		return err
	}
	first, v := q.Vertices.Alloc(8)
	v[0] = dst.X
	v[1] = dst.Y
	v[2] = dst.X + dst.W
	v[3] = dst.Y + dst.H
	v[4], v[5], v[6], v[7] = texCoords(t, gt, src)
	q.Append(gl2d.Command{Kind: gl2d.CmdCopy, Texture: t, Color: c, Blend: blend,
		First: first, Count: 1})
	return nil
}

// QueueCopyEx compiles a rotated and/or flipped copy. The destination
// quad is expressed relative to the rotation center with flips folded
// into swapped extents; the rotation itself is applied by the executor
// through the matrix stack, not baked into vertices.
func (r *Renderer) QueueCopyEx(q *gl2d.Queue, t *gl2d.Texture, src, dst gl2d.FRect,
	angle float64, center gl2d.FPoint, flipH, flipV bool, c gl2d.Color, blend gl2d.BlendMode) error {
	gt, err := r.glTex(t)
	if err != nil {
		return err
	}
	minx := -center.X
	maxx := dst.W - center.X
	miny := -center.Y
	maxy := dst.H - center.Y
	if flipH {
		minx, maxx = maxx, minx
	}
	if flipV {
		miny, maxy = maxy, miny
	}

	first, v := q.Vertices.Alloc(11)
	v[0] = minx
	v[1] = miny
	v[2] = maxx
	v[3] = maxy
	v[4], v[5], v[6], v[7] = texCoords(t, gt, src)
	v[8] = dst.X + center.X
	v[9] = dst.Y + center.Y
	v[10] = float32(angle)
	q.Append(gl2d.Command{Kind: gl2d.CmdCopyEx, Texture: t, Color: c, Blend: blend,
		First: first, Count: 1})
	return nil
}

// texCoords maps a source rect to (minu, maxu, minv, maxv) on the
// texture's stored content.
func texCoords(t *gl2d.Texture, gt *glTexture, src gl2d.FRect) (minu, maxu, minv, maxv float32) {
	minu = src.X / float32(t.W) * gt.texW
	maxu = (src.X + src.W) / float32(t.W) * gt.texW
	minv = src.Y / float32(t.H) * gt.texH
	maxv = (src.Y + src.H) / float32(t.H) * gt.texH
	return minu, maxu, minv, maxv
}
