package softgl

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/gl2d/driver"
)

// vertex is one assembled immediate-mode vertex: clip-space position
// (captured with the matrices current at the Vertex2f call, so pushed
// transforms affect it) plus the texture coordinate.
type vertex struct {
	clip mgl32.Vec4
	uv   [2]float32
}

func (d *Driver) Begin(prim driver.Enum) {
	d.inBegin = true
	d.prim = prim
	d.verts = d.verts[:0]
}

func (d *Driver) TexCoord2f(u, v float32) {
	d.curCoord = [2]float32{u, v}
}

func (d *Driver) Vertex2f(x, y float32) {
	if !d.inBegin {
		d.errq = append(d.errq, driver.InvalidOperation)
		return
	}
	mv := d.mvStack[len(d.mvStack)-1]
	pr := d.projStack[len(d.projStack)-1]
	clip := pr.Mul4(mv).Mul4x1(mgl32.Vec4{x, y, 0, 1})
	d.verts = append(d.verts, vertex{clip: clip, uv: d.curCoord})
}

func (d *Driver) End() {
	d.inBegin = false
	switch d.prim {
	case driver.Points:
		for _, v := range d.verts {
			wx, wy := d.window(v.clip)
			d.writeFragment(int32(wx), int32(wy), d.shade(v.uv))
		}
	case driver.Lines:
		for i := 0; i+1 < len(d.verts); i += 2 {
			d.rasterLine(d.verts[i], d.verts[i+1])
		}
	case driver.LineStrip:
		for i := 0; i+1 < len(d.verts); i++ {
			d.rasterLine(d.verts[i], d.verts[i+1])
		}
	case driver.LineLoop:
		for i := 0; i+1 < len(d.verts); i++ {
			d.rasterLine(d.verts[i], d.verts[i+1])
		}
		if len(d.verts) > 2 {
			d.rasterLine(d.verts[len(d.verts)-1], d.verts[0])
		}
	case driver.TriangleStrip:
		for i := 0; i+2 < len(d.verts); i++ {
			d.rasterTriangle(d.verts[i], d.verts[i+1], d.verts[i+2])
		}
	}
}

// Rectf draws an axis-aligned filled rectangle through the ordinary
// vertex path so the current transforms apply, exactly as GL treats
// glRect as a quad.
func (d *Driver) Rectf(x1, y1, x2, y2 float32) {
	d.Begin(driver.TriangleStrip)
	d.Vertex2f(x1, y1)
	d.Vertex2f(x2, y1)
	d.Vertex2f(x1, y2)
	d.Vertex2f(x2, y2)
	d.End()
}

// window converts clip space to window coordinates (origin
// bottom-left, y up) via the current viewport.
func (d *Driver) window(clip mgl32.Vec4) (x, y float32) {
	w := clip.W()
	if w == 0 {
		w = 1
	}
	nx := clip.X() / w
	ny := clip.Y() / w
	x = float32(d.viewport[0]) + (nx+1)*0.5*float32(d.viewport[2])
	y = float32(d.viewport[1]) + (ny+1)*0.5*float32(d.viewport[3])
	return x, y
}

// rasterLine draws the half-open segment from a to b: every pixel the
// line passes through except the final one, approximating GL's
// diamond-exit rule the way the 2D pipeline relies on it.
func (d *Driver) rasterLine(a, b vertex) {
	ax, ay := d.window(a.clip)
	bx, by := d.window(b.clip)
	x0, y0 := int32(ax), int32(ay)
	x1, y1 := int32(bx), int32(by)

	col := d.shade(a.uv)

	dx := abs32(x1 - x0)
	dy := -abs32(y1 - y0)
	sx := int32(1)
	if x0 > x1 {
		sx = -1
	}
	sy := int32(1)
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		if x0 == x1 && y0 == y1 {
			return // final pixel left open
		}
		d.writeFragment(x0, y0, col)
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// rasterTriangle fills one triangle with barycentric-interpolated
// texture coordinates, sampling pixel centers.
func (d *Driver) rasterTriangle(v0, v1, v2 vertex) {
	x0, y0 := d.window(v0.clip)
	x1, y1 := d.window(v1.clip)
	x2, y2 := d.window(v2.clip)

	area := (x1-x0)*(y2-y0) - (x2-x0)*(y1-y0)
	if area == 0 {
		return
	}

	minX := int32(min3(x0, x1, x2))
	maxX := int32(max3(x0, x1, x2) + 1)
	minY := int32(min3(y0, y1, y2))
	maxY := int32(max3(y0, y1, y2) + 1)

	for py := minY; py < maxY; py++ {
		for px := minX; px < maxX; px++ {
			cx := float32(px) + 0.5
			cy := float32(py) + 0.5
			w0 := (x1-cx)*(y2-cy) - (x2-cx)*(y1-cy)
			w1 := (x2-cx)*(y0-cy) - (x0-cx)*(y2-cy)
			w2 := (x0-cx)*(y1-cy) - (x1-cx)*(y0-cy)
			if area > 0 {
				if w0 < 0 || w1 < 0 || w2 < 0 {
					continue
				}
			} else {
				if w0 > 0 || w1 > 0 || w2 > 0 {
					continue
				}
			}
			b0 := w0 / area
			b1 := w1 / area
			b2 := w2 / area
			uv := [2]float32{
				b0*v0.uv[0] + b1*v1.uv[0] + b2*v2.uv[0],
				b0*v0.uv[1] + b1*v1.uv[1] + b2*v2.uv[1],
			}
			d.writeFragment(px, py, d.shade(uv))
		}
	}
}

// YUV conversion constants matching the GLSL shader set: offset added
// to the sampled (y,u,v), then the matrix rows produce r, g, b.
var yuvOffsets = map[driver.ShaderKind][3]float32{
	driver.ShaderYUVJPEG:   {0, -0.501960814, -0.501960814},
	driver.ShaderNV12JPEG:  {0, -0.501960814, -0.501960814},
	driver.ShaderNV21JPEG:  {0, -0.501960814, -0.501960814},
	driver.ShaderYUVBT601:  {-0.0627451017, -0.501960814, -0.501960814},
	driver.ShaderNV12BT601: {-0.0627451017, -0.501960814, -0.501960814},
	driver.ShaderNV21BT601: {-0.0627451017, -0.501960814, -0.501960814},
	driver.ShaderYUVBT709:  {-0.0627451017, -0.501960814, -0.501960814},
	driver.ShaderNV12BT709: {-0.0627451017, -0.501960814, -0.501960814},
	driver.ShaderNV21BT709: {-0.0627451017, -0.501960814, -0.501960814},
}

var yuvMatrices = map[driver.ShaderKind][3][3]float32{
	driver.ShaderYUVJPEG:   jpegMatrix,
	driver.ShaderNV12JPEG:  jpegMatrix,
	driver.ShaderNV21JPEG:  jpegMatrix,
	driver.ShaderYUVBT601:  bt601Matrix,
	driver.ShaderNV12BT601: bt601Matrix,
	driver.ShaderNV21BT601: bt601Matrix,
	driver.ShaderYUVBT709:  bt709Matrix,
	driver.ShaderNV12BT709: bt709Matrix,
	driver.ShaderNV21BT709: bt709Matrix,
}

var (
	jpegMatrix = [3][3]float32{
		{1, 0, 1.402},
		{1, -0.3441, -0.7141},
		{1, 1.772, 0},
	}
	bt601Matrix = [3][3]float32{
		{1.1644, 0, 1.596},
		{1.1644, -0.3918, -0.813},
		{1.1644, 2.0172, 0},
	}
	bt709Matrix = [3][3]float32{
		{1.1644, 0, 1.7927},
		{1.1644, -0.2132, -0.5329},
		{1.1644, 2.1124, 0},
	}
)

// shade runs the active fragment stage for one texture coordinate and
// returns the premodulated RGBA color.
func (d *Driver) shade(uv [2]float32) [4]float32 {
	switch d.shader {
	case driver.ShaderSolid:
		return d.color

	case driver.ShaderYUVJPEG, driver.ShaderYUVBT601, driver.ShaderYUVBT709:
		y := d.sampleUnit(0, uv)[0]
		u := d.sampleUnit(1, uv)[0]
		v := d.sampleUnit(2, uv)[0]
		return d.convertYUV(y, u, v)

	case driver.ShaderNV12JPEG, driver.ShaderNV12BT601, driver.ShaderNV12BT709:
		y := d.sampleUnit(0, uv)[0]
		uvs := d.sampleUnit(1, uv)
		return d.convertYUV(y, uvs[0], uvs[3])

	case driver.ShaderNV21JPEG, driver.ShaderNV21BT601, driver.ShaderNV21BT709:
		y := d.sampleUnit(0, uv)[0]
		uvs := d.sampleUnit(1, uv)
		return d.convertYUV(y, uvs[3], uvs[0])

	case driver.ShaderRGB:
		t := d.sampleUnit(0, uv)
		return modulate(t, d.color)

	default:
		// Fixed function: modulate when unit 0 texturing is on.
		if d.units[0].enabled2D || d.units[0].enabledRct {
			return modulate(d.sampleUnit(0, uv), d.color)
		}
		return d.color
	}
}

func (d *Driver) convertYUV(y, u, v float32) [4]float32 {
	off := yuvOffsets[d.shader]
	m := yuvMatrices[d.shader]
	yy := y + off[0]
	uu := u + off[1]
	vv := v + off[2]
	rgb := [3]float32{
		m[0][0]*yy + m[0][1]*uu + m[0][2]*vv,
		m[1][0]*yy + m[1][1]*uu + m[1][2]*vv,
		m[2][0]*yy + m[2][1]*uu + m[2][2]*vv,
	}
	return modulate([4]float32{rgb[0], rgb[1], rgb[2], 1}, d.color)
}

// sampleUnit samples the texture bound on a unit. Rectangle textures
// take pixel-space coordinates; 2D textures take normalized ones.
// Linear magnification is honored with bilinear weights; everything
// else is nearest.
func (d *Driver) sampleUnit(unit int, uv [2]float32) [4]float32 {
	t := d.unitTexture(unit)
	if t == nil || t.pix == nil {
		return [4]float32{1, 1, 1, 1}
	}
	u, v := uv[0], uv[1]
	if t.target != driver.TextureRectangle {
		u *= float32(t.w)
		v *= float32(t.h)
	}
	if t.magFilter == int32(driver.Linear) {
		return t.bilinear(u, v)
	}
	return t.texel(int32(u), int32(v))
}

// unitTexture resolves the sampled texture for a unit, preferring the
// rectangle target when one is bound there.
func (d *Driver) unitTexture(unit int) *texture {
	if id := d.units[unit].boundRect; id != 0 {
		return d.textures[id]
	}
	return d.textures[d.units[unit].bound2D]
}

// texel reads one clamped texel as normalized RGBA, expanding
// luminance and luminance-alpha storage.
func (t *texture) texel(x, y int32) [4]float32 {
	x = clamp32(x, 0, t.w-1)
	y = clamp32(y, 0, t.h-1)
	p := t.pix[(y*t.w+x)*int32(t.bpp):]
	switch t.bpp {
	case 1:
		l := float32(p[0]) / 255
		return [4]float32{l, l, l, 1}
	case 2:
		l := float32(p[0]) / 255
		return [4]float32{l, l, l, float32(p[1]) / 255}
	default:
		return [4]float32{
			float32(p[0]) / 255, float32(p[1]) / 255,
			float32(p[2]) / 255, float32(p[3]) / 255,
		}
	}
}

func (t *texture) bilinear(u, v float32) [4]float32 {
	u -= 0.5
	v -= 0.5
	x0 := floor32(u)
	y0 := floor32(v)
	fx := u - float32(x0)
	fy := v - float32(y0)
	var out [4]float32
	c00 := t.texel(x0, y0)
	c10 := t.texel(x0+1, y0)
	c01 := t.texel(x0, y0+1)
	c11 := t.texel(x0+1, y0+1)
	for i := range out {
		top := c00[i]*(1-fx) + c10[i]*fx
		bot := c01[i]*(1-fx) + c11[i]*fx
		out[i] = top*(1-fy) + bot*fy
	}
	return out
}

// writeFragment applies viewport, scissor and blend state, then
// stores one pixel into the active render target.
func (d *Driver) writeFragment(x, y int32, col [4]float32) {
	buf, bw, bh := d.target()
	if x < 0 || y < 0 || x >= bw || y >= bh {
		return
	}
	if !inRect(x, y, d.viewport) {
		return
	}
	if d.scissorOn && !inRect(x, y, d.scissor) {
		return
	}
	p := buf[(y*bw+x)*4:]
	if d.blendOn {
		dst := [4]float32{
			float32(p[0]) / 255, float32(p[1]) / 255,
			float32(p[2]) / 255, float32(p[3]) / 255,
		}
		col = d.blendEval(col, dst)
	}
	p[0] = floatByte(col[0])
	p[1] = floatByte(col[1])
	p[2] = floatByte(col[2])
	p[3] = floatByte(col[3])
}

// blendEval evaluates the configured blend equation for one fragment.
func (d *Driver) blendEval(src, dst [4]float32) [4]float32 {
	var out [4]float32
	for i := 0; i < 3; i++ {
		s := src[i] * factor(d.srcRGB, src, dst, i)
		t := dst[i] * factor(d.dstRGB, src, dst, i)
		out[i] = combine(d.blendEq, s, t)
	}
	s := src[3] * factor(d.srcAlpha, src, dst, 3)
	t := dst[3] * factor(d.dstAlpha, src, dst, 3)
	out[3] = combine(d.blendEq, s, t)
	return out
}

func factor(f driver.Enum, src, dst [4]float32, i int) float32 {
	switch f {
	case driver.Zero:
		return 0
	case driver.One:
		return 1
	case driver.SrcColor:
		return src[i]
	case driver.OneMinusSrcColor:
		return 1 - src[i]
	case driver.SrcAlpha:
		return src[3]
	case driver.OneMinusSrcAlpha:
		return 1 - src[3]
	case driver.DstColor:
		return dst[i]
	case driver.OneMinusDstColor:
		return 1 - dst[i]
	case driver.DstAlpha:
		return dst[3]
	case driver.OneMinusDstAlpha:
		return 1 - dst[3]
	default:
		return 1
	}
}

func combine(eq driver.Enum, s, t float32) float32 {
	switch eq {
	case driver.FuncSubtract:
		return s - t
	case driver.FuncReverseSubtract:
		return t - s
	default:
		return s + t
	}
}

func modulate(a, b [4]float32) [4]float32 {
	return [4]float32{a[0] * b[0], a[1] * b[1], a[2] * b[2], a[3] * b[3]}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func clamp32(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func floor32(f float32) int32 {
	i := int32(f)
	if f < 0 && float32(i) != f {
		i--
	}
	return i
}

func min3(a, b, c float32) float32 { return min(a, min(b, c)) }
func max3(a, b, c float32) float32 { return max(a, max(b, c)) }
