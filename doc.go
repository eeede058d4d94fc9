// Package gl2d provides a deferred 2D rendering pipeline targeting
// OpenGL-class drivers.
//
// # Overview
//
// gl2d separates drawing into two phases. Applications record abstract
// draw operations (points, lines, rectangle fills, textured copies)
// into a [Queue]; a rendering backend then compiles each operation
// into pre-baked vertex data and replays the queue against the
// graphics driver, diffing GPU state so that only transitions that
// actually change are issued.
//
// The root package holds the types shared between applications and
// backends: geometry, colors, blend modes, pixel formats (including
// the planar and semi-planar video formats), logical textures, and
// the command queue with its vertex arena.
//
// # Quick Start
//
//	b := backend.Default()
//	if err := b.Init(); err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	r, err := b.NewRenderer(640, 480)
//	// record a frame
//	q := &gl2d.Queue{}
//	r.QueueClear(q, gl2d.Black)
//	r.QueueFillRects(q, []gl2d.FRect{{X: 10, Y: 10, W: 80, H: 80}},
//		gl2d.Color{R: 255, A: 255}, gl2d.BlendNone)
//	// replay it
//	if err := r.RunQueue(q); err != nil {
//		log.Print(err)
//	}
//	r.Present()
//
// # Architecture
//
// The library is organized into:
//   - Public API: Queue, Texture, Color, BlendMode, PixelFormat
//   - backend: backend registry and the renderer contract
//   - backend/opengl: the OpenGL 2.1 backend (state diffing, texture
//     management, YUV shader selection, framebuffer pooling)
//   - driver: the graphics-API seam, with a go-gl implementation and
//     a software emulation for headless use and tests
//   - window: GLFW-based windowing collaborator
//   - pixels: pixel-format conversion for readback
package gl2d
