// Command gl2ddemo exercises the gl2d rendering backends. With a
// display it opens a window and animates the primitive set on the
// OpenGL backend; with -backend=software (or when no display is
// available) it renders one frame on the software backend and saves
// it as a PNG, upscaled for inspection.
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"math"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/gl2d"
	"github.com/gogpu/gl2d/backend"
	"github.com/gogpu/gl2d/backend/opengl"
	"github.com/gogpu/gl2d/driver/gl21"
	"github.com/gogpu/gl2d/pixels"
	"github.com/gogpu/gl2d/window"
)

func main() {
	var (
		backendName = flag.String("backend", "auto", "backend: auto, opengl or software")
		width       = flag.Int("width", 640, "drawable width")
		height      = flag.Int("height", 480, "drawable height")
		output      = flag.String("output", "demo.png", "output file (software backend)")
		scale       = flag.Int("scale", 1, "output upscale factor (software backend)")
		debug       = flag.Bool("debug", false, "enable the GL error sink")
	)
	flag.Parse()

	switch *backendName {
	case "opengl":
		if err := runWindowed(*width, *height, *debug); err != nil {
			log.Fatalf("opengl backend: %v", err)
		}
	case "software":
		if err := runHeadless(*width, *height, *output, *scale); err != nil {
			log.Fatalf("software backend: %v", err)
		}
	case "auto":
		if err := runWindowed(*width, *height, *debug); err != nil {
			log.Printf("opengl backend unavailable (%v), falling back to software", err)
			if err := runHeadless(*width, *height, *output, *scale); err != nil {
				log.Fatalf("software backend: %v", err)
			}
		}
	default:
		log.Fatalf("unknown backend %q", *backendName)
	}
}

func runWindowed(w, h int, debug bool) error {
	win, err := window.Open(window.Options{Title: "gl2d demo", Width: w, Height: h})
	if err != nil {
		return err
	}
	defer win.Close()

	d, err := gl21.Open()
	if err != nil {
		return err
	}
	r, err := opengl.New(opengl.Config{Funcs: d, Platform: win, VSync: true, Debug: debug})
	if err != nil {
		return err
	}
	defer r.Destroy()

	s, err := newScene(r, w, h)
	if err != nil {
		return err
	}
	defer s.destroy(r)

	var q gl2d.Queue
	for frame := 0; !win.ShouldClose(); frame++ {
		q.Reset()
		if err := s.frame(r, &q, frame); err != nil {
			return err
		}
		if err := r.RunQueue(&q); err != nil {
			log.Printf("frame %d: %v", frame, err)
		}
		if err := r.Present(); err != nil {
			return err
		}
		window.PollEvents()
	}
	return nil
}

func runHeadless(w, h int, output string, scale int) error {
	b := backend.Get(backend.BackendSoftware)
	if b == nil {
		return backend.ErrBackendNotAvailable
	}
	if err := b.Init(); err != nil {
		return err
	}
	defer b.Close()

	r, err := b.NewRenderer(w, h)
	if err != nil {
		return err
	}
	defer r.Destroy()

	s, err := newScene(r, w, h)
	if err != nil {
		return err
	}
	defer s.destroy(r)

	var q gl2d.Queue
	if err := s.frame(r, &q, 0); err != nil {
		return err
	}
	if err := r.RunQueue(&q); err != nil {
		return err
	}

	buf := make([]byte, w*h*4)
	if err := r.ReadPixels(gl2d.Rect{X: 0, Y: 0, W: w, H: h}, gl2d.FormatARGB8888, buf, w*4); err != nil {
		return err
	}
	img, err := pixels.ToImage(w, h, gl2d.FormatARGB8888, buf, w*4)
	if err != nil {
		return err
	}
	if scale > 1 {
		dst := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		img = dst
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return err
	}
	log.Printf("frame saved to %s", output)
	return nil
}

// scene holds the demo's textures and draws one frame.
type scene struct {
	w, h   int
	sprite *gl2d.Texture
	video  *gl2d.Texture
	target *gl2d.Texture
}

func newScene(r gl2d.Renderer, w, h int) (*scene, error) {
	s := &scene{w: w, h: h}

	// Checkerboard sprite.
	sprite, err := r.CreateTexture(64, 64, gl2d.FormatARGB8888, gl2d.AccessStatic)
	if err != nil {
		return nil, err
	}
	pix := make([]byte, 64*64*4)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			p := pix[(y*64+x)*4:]
			if (x/8+y/8)%2 == 0 {
				p[0], p[1], p[2], p[3] = 40, 160, 255, 255
			} else {
				p[0], p[1], p[2], p[3] = 240, 240, 240, 255
			}
		}
	}
	if err := r.UpdateTexture(sprite, gl2d.Rect{X: 0, Y: 0, W: 64, H: 64}, pix, 64*4); err != nil {
		return nil, err
	}
	s.sprite = sprite

	// A planar YUV gradient, the shape a video decoder would hand over.
	video, err := r.CreateTexture(128, 96, gl2d.FormatIYUV, gl2d.AccessStatic)
	if err != nil {
		return nil, err
	}
	yuv := make([]byte, pixels.BufferSize(gl2d.FormatIYUV, 96, 128))
	for y := 0; y < 96; y++ {
		for x := 0; x < 128; x++ {
			yuv[y*128+x] = byte(x * 2)
		}
	}
	chroma := yuv[128*96:]
	for i := range chroma[:64*48] {
		chroma[i] = byte(96 + i%64) // U
	}
	for i := range chroma[64*48:] {
		chroma[64*48+i] = 160 // V
	}
	if err := r.UpdateTexture(video, gl2d.Rect{X: 0, Y: 0, W: 128, H: 96}, yuv, 128); err != nil {
		return nil, err
	}
	s.video = video

	// Offscreen target, drawn once and stamped rotated every frame.
	target, err := r.CreateTexture(96, 96, gl2d.FormatARGB8888, gl2d.AccessTarget)
	if err != nil {
		return nil, err
	}
	s.target = target
	if err := s.paintTarget(r); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *scene) paintTarget(r gl2d.Renderer) error {
	if err := r.SetRenderTarget(s.target); err != nil {
		return err
	}
	var q gl2d.Queue
	r.QueueClear(&q, gl2d.Color{R: 24, G: 24, B: 40, A: 255})
	rects := []gl2d.FRect{
		{X: 8, Y: 8, W: 80, H: 80},
		{X: 24, Y: 24, W: 48, H: 48},
	}
	r.QueueFillRects(&q, rects[:1], gl2d.Color{R: 220, G: 80, B: 40, A: 255}, gl2d.BlendNone)
	r.QueueFillRects(&q, rects[1:], gl2d.Color{R: 250, G: 200, B: 60, A: 255}, gl2d.BlendNone)
	if err := r.RunQueue(&q); err != nil {
		return err
	}
	return r.SetRenderTarget(nil)
}

func (s *scene) frame(r gl2d.Renderer, q *gl2d.Queue, frame int) error {
	w, h := float32(s.w), float32(s.h)
	t := float64(frame) / 60

	r.QueueClear(q, gl2d.Color{R: 16, G: 24, B: 48, A: 255})

	// Alpha-blended bars.
	for i := 0; i < 6; i++ {
		c := gl2d.Color{R: byte(40 * i), G: 80, B: 255 - byte(40*i), A: 160}
		rect := gl2d.FRect{X: w * float32(i) / 6, Y: 0, W: w / 6, H: h / 3}
		r.QueueFillRects(q, []gl2d.FRect{rect}, c, gl2d.BlendAlpha)
	}

	// Sine wave of points.
	pts := make([]gl2d.FPoint, s.w/2)
	for i := range pts {
		x := float32(i * 2)
		pts[i] = gl2d.FPoint{
			X: x,
			Y: h/2 + float32(math.Sin(t+float64(x)/40))*h/8,
		}
	}
	r.QueueDrawPoints(q, pts, gl2d.Color{R: 255, G: 255, B: 255, A: 255}, gl2d.BlendNone)

	// Closed outline.
	cx, cy := w/4, 3*h/4
	star := make([]gl2d.FPoint, 0, 11)
	for i := 0; i <= 10; i++ {
		radius := float32(60)
		if i%2 == 1 {
			radius = 25
		}
		a := t + float64(i)*math.Pi/5
		star = append(star, gl2d.FPoint{
			X: cx + radius*float32(math.Cos(a)),
			Y: cy + radius*float32(math.Sin(a)),
		})
	}
	star[10] = star[0]
	r.QueueDrawLines(q, star, gl2d.Color{R: 255, G: 220, B: 0, A: 255}, gl2d.BlendNone)

	// Decoded video frame.
	r.QueueCopy(q, s.video,
		gl2d.FRect{X: 0, Y: 0, W: 128, H: 96},
		gl2d.FRect{X: w/2 + 20, Y: h/2 + 20, W: 128, H: 96},
		gl2d.White, gl2d.BlendNone)

	// Rotating sprite.
	r.QueueCopyEx(q, s.sprite,
		gl2d.FRect{X: 0, Y: 0, W: 64, H: 64},
		gl2d.FRect{X: w/2 - 32, Y: h/4 - 32, W: 64, H: 64},
		t*90, gl2d.FPoint{X: 32, Y: 32}, false, false,
		gl2d.White, gl2d.BlendAlpha)

	// The pre-rendered target, stamped with the opposite spin.
	r.QueueCopyEx(q, s.target,
		gl2d.FRect{X: 0, Y: 0, W: 96, H: 96},
		gl2d.FRect{X: 3 * w / 4, Y: h / 4, W: 96, H: 96},
		-t*45, gl2d.FPoint{X: 48, Y: 48}, false, false,
		gl2d.White, gl2d.BlendAlpha)

	return nil
}

func (s *scene) destroy(r gl2d.Renderer) {
	r.DestroyTexture(s.sprite)
	r.DestroyTexture(s.video)
	r.DestroyTexture(s.target)
}
