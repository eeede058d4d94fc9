package opengl

import (
	"github.com/gogpu/gl2d"
	"github.com/gogpu/gl2d/driver"
)

// execState is the transient snapshot tracked across one queue
// traversal, used purely to skip redundant state-change calls. It is
// rebuilt for every traversal: viewport and clip come from the
// renderer's persistent state (which mirrors the programmed GL
// state), everything else starts at a "not applied" sentinel so the
// first draw always programs it.
type execState struct {
	color      uint32
	colorValid bool
	blend      gl2d.BlendMode
	shader     driver.ShaderKind
	texture    *gl2d.Texture
	texturing  bool

	viewport    gl2d.Rect
	clip        gl2d.Rect
	clipEnabled bool

	clearColor uint32
	clearValid bool
}

// RunQueue walks a compiled queue once, top to bottom, applying only
// the state transitions that differ from current state before each
// draw. GPU errors accumulated during the traversal surface once at
// the end (debug mode only); the traversal itself never stops early.
func (r *Renderer) RunQueue(q *gl2d.Queue) error {
	if err := r.activate(); err != nil {
		return err
	}

	st := execState{
		blend:       gl2d.BlendInvalid,
		shader:      driver.ShaderInvalid,
		viewport:    r.viewport,
		clip:        r.clip,
		clipEnabled: r.clipEnabled,
	}
	var execErr error

	cmds := q.Commands()
	for i := range cmds {
		cmd := &cmds[i]
		switch cmd.Kind {
		case gl2d.CmdSetViewport:
			if cmd.Viewport != st.viewport {
				st.viewport = cmd.Viewport
				r.viewport = cmd.Viewport
				r.applyViewport(st.viewport)
			}

		case gl2d.CmdSetClipRect:
			// The enable toggle and the rectangle value change
			// independently; either alone must take effect.
			if cmd.ClipEnabled != st.clipEnabled {
				st.clipEnabled = cmd.ClipEnabled
				if st.clipEnabled {
					r.f.Enable(driver.ScissorTest)
				} else {
					r.f.Disable(driver.ScissorTest)
				}
			}
			if cmd.ClipEnabled && cmd.Clip != st.clip {
				st.clip = cmd.Clip
				r.applyScissor(st.viewport, st.clip)
			}

		case gl2d.CmdClear:
			if c := cmd.Color.Packed(); !st.clearValid || c != st.clearColor {
				st.clearColor = c
				st.clearValid = true
				r.f.ClearColor(colorf(cmd.Color))
			}
			// Clears ignore the clip rectangle.
			if st.clipEnabled {
				r.f.Disable(driver.ScissorTest)
			}
			r.f.Clear(driver.ColorBufferBit)
			if st.clipEnabled {
				r.f.Enable(driver.ScissorTest)
			}

		case gl2d.CmdDrawPoints:
			r.setupDraw(&st, cmd, nil, driver.ShaderSolid, &execErr)
			v := q.Vertices.Slice(cmd.First, 2*cmd.Count)
			r.f.Begin(driver.Points)
			for j := 0; j < cmd.Count; j++ {
				r.f.Vertex2f(v[2*j], v[2*j+1])
			}
			r.f.End()

		case gl2d.CmdDrawLines:
			r.setupDraw(&st, cmd, nil, driver.ShaderSolid, &execErr)
			r.drawLines(q.Vertices.Slice(cmd.First, 2*cmd.Count), cmd.Count)

		case gl2d.CmdFillRects:
			r.setupDraw(&st, cmd, nil, driver.ShaderSolid, &execErr)
			v := q.Vertices.Slice(cmd.First, 4*cmd.Count)
			for j := 0; j < cmd.Count; j++ {
				r.f.Rectf(v[4*j], v[4*j+1], v[4*j+2], v[4*j+3])
			}

		case gl2d.CmdCopy:
			r.setupDraw(&st, cmd, cmd.Texture, r.copyShader(cmd.Texture), &execErr)
			v := q.Vertices.Slice(cmd.First, 8)
			r.drawQuad(v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7])

		case gl2d.CmdCopyEx:
			r.setupDraw(&st, cmd, cmd.Texture, r.copyShader(cmd.Texture), &execErr)
			v := q.Vertices.Slice(cmd.First, 11)
			// Translate to the rotation center, rotate, draw the quad
			// in center-relative coordinates. The pop pairs with the
			// push no matter what the draw did, so matrix state never
			// leaks to later commands.
			r.f.PushMatrix()
			r.f.Translatef(v[8], v[9], 0)
			r.f.Rotated(float64(v[10]), 0, 0, 1)
			r.drawQuad(v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7])
			r.f.PopMatrix()
		}
	}

	// The logical viewport/clip survive into the next traversal; the
	// rest of the snapshot is discarded.
	r.viewport = st.viewport
	r.clip = st.clip
	r.clipEnabled = st.clipEnabled

	if execErr != nil {
		return execErr
	}
	return r.sink.drain()
}

// setupDraw applies the shared draw state (color, blend, shader,
// texturing) for one command, issuing only the calls whose state
// actually changed.
func (r *Renderer) setupDraw(st *execState, cmd *gl2d.Command, tex *gl2d.Texture, kind driver.ShaderKind, execErr *error) {
	if c := cmd.Color.Packed(); !st.colorValid || c != st.color {
		st.color = c
		st.colorValid = true
		r.f.Color4f(colorf(cmd.Color))
	}

	if cmd.Blend != st.blend {
		st.blend = cmd.Blend
		r.applyBlend(cmd.Blend)
	}

	if r.caps.shaders && kind != st.shader {
		if err := r.f.SelectShader(kind); err != nil {
			if *execErr == nil {
				*execErr = err
			}
		} else {
			st.shader = kind
		}
	}

	if tex == nil {
		if st.texturing {
			st.texturing = false
			r.f.Disable(r.tier.textureTarget())
		}
		st.texture = nil
		return
	}
	if !st.texturing {
		st.texturing = true
		r.f.Enable(r.tier.textureTarget())
	}
	if st.texture != tex {
		st.texture = tex
		if gt, err := r.glTex(tex); err == nil {
			r.bindTexturePlanes(gt)
		} else if *execErr == nil {
			*execErr = err
		}
	}
}

// bindTexturePlanes binds a texture's planes to their units. Chroma
// planes go to units 2 and 1 first so the traversal ends with unit 0
// active and the primary plane bound on it.
func (r *Renderer) bindTexturePlanes(gt *glTexture) {
	if gt.v != 0 {
		r.f.ActiveTexture(driver.Texture2)
		r.f.BindTexture(gt.target, gt.v)
	}
	if gt.u != 0 {
		r.f.ActiveTexture(driver.Texture1)
		r.f.BindTexture(gt.target, gt.u)
		r.f.ActiveTexture(driver.Texture0)
	}
	r.f.BindTexture(gt.target, gt.id)
}

// copyShader resolves the shader a copy command needs. Without shader
// support the fixed-function pipeline does the sampling and nothing is
// selected.
func (r *Renderer) copyShader(t *gl2d.Texture) driver.ShaderKind {
	if !r.caps.shaders {
		return driver.ShaderInvalid
	}
	return shaderForTexture(t)
}

// applyBlend programs the blend unit for a composed mode.
func (r *Renderer) applyBlend(mode gl2d.BlendMode) {
	if mode == gl2d.BlendNone {
		r.f.Disable(driver.Blend)
		return
	}
	sc, _ := glFactor(mode.SrcColorFactor())
	dc, _ := glFactor(mode.DstColorFactor())
	sa, _ := glFactor(mode.SrcAlphaFactor())
	da, _ := glFactor(mode.DstAlphaFactor())
	eq, _ := glEquation(mode.ColorOperation())
	r.f.Enable(driver.Blend)
	r.f.BlendFuncSeparate(sc, dc, sa, da)
	r.f.BlendEquation(eq)
}

// drawLines emits a compiled polyline. Closed polylines (coincident
// endpoints) draw as a loop; open ones draw as a strip plus the
// policy-chosen endpoint pixels GL's half-open rasterization leaves
// uncovered.
func (r *Renderer) drawLines(v []float32, count int) {
	last := 2 * (count - 1)
	if count >= 3 && v[0] == v[last] && v[1] == v[last+1] {
		r.f.Begin(driver.LineLoop)
		for j := 0; j < count-1; j++ {
			r.f.Vertex2f(v[2*j], v[2*j+1])
		}
		r.f.End()
		return
	}

	r.f.Begin(driver.LineStrip)
	for j := 0; j < count; j++ {
		r.f.Vertex2f(v[2*j], v[2*j+1])
	}
	r.f.End()

	r.f.Begin(driver.Points)
	if r.lineEnd == LineEndFarthest {
		x1, y1 := v[0], v[1]
		x2, y2 := v[last], v[last+1]
		if x1 > x2 {
			r.f.Vertex2f(x1, y1)
		} else if x2 > x1 {
			r.f.Vertex2f(x2, y2)
		}
		if y1 > y2 {
			r.f.Vertex2f(x1, y1)
		} else if y2 > y1 {
			r.f.Vertex2f(x2, y2)
		}
	} else {
		r.f.Vertex2f(v[last], v[last+1])
	}
	r.f.End()
}

// drawQuad emits one textured quad as a two-triangle strip.
func (r *Renderer) drawQuad(minx, miny, maxx, maxy, minu, maxu, minv, maxv float32) {
	r.f.Begin(driver.TriangleStrip)
	r.f.TexCoord2f(minu, minv)
	r.f.Vertex2f(minx, miny)
	r.f.TexCoord2f(maxu, minv)
	r.f.Vertex2f(maxx, miny)
	r.f.TexCoord2f(minu, maxv)
	r.f.Vertex2f(minx, maxy)
	r.f.TexCoord2f(maxu, maxv)
	r.f.Vertex2f(maxx, maxy)
	r.f.End()
}

func colorf(c gl2d.Color) (rf, gf, bf, af float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255
}
