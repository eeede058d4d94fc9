package opengl

import (
	"github.com/gogpu/gl2d/driver"
)

// errorSink captures GL error state through one of two strategies,
// chosen once at renderer creation. When the context supports
// synchronous debug output, a callback accumulates messages as they
// occur, chaining to any callback that was installed before so the
// instrumentation composes. Otherwise errors are collected by
// polling the GL error queue. With the renderer's debug mode off, the
// traversal-level drain is a no-op.
type errorSink struct {
	f     driver.Funcs
	debug bool

	// callback strategy
	callback bool
	prev     driver.DebugProc
	msgs     []string
}

func newErrorSink(f driver.Funcs, debug bool) *errorSink {
	s := &errorSink{f: f, debug: debug}
	if !debug {
		return s
	}
	s.prev = f.DebugCallback()
	prev := s.prev
	if f.SetDebugCallback(func(source, gltype, id, severity driver.Enum, message string) {
		if gltype == driver.DebugTypeError {
			s.msgs = append(s.msgs, message)
		}
		if prev != nil {
			prev(source, gltype, id, severity, message)
		}
	}) {
		s.callback = true
	}
	return s
}

// synchronous reports whether the callback strategy is active.
func (s *errorSink) synchronous() bool { return s.callback }

// clear discards errors accumulated so far, so a following check
// attributes errors to one operation.
func (s *errorSink) clear() {
	if s.callback {
		s.msgs = nil
		return
	}
	for s.f.GetError() != driver.NoError {
	}
}

// check collects the errors raised since the last clear. Used on cold
// paths (resource creation) where failures must surface immediately.
func (s *errorSink) check(op string) error {
	var msgs []string
	if s.callback {
		msgs, s.msgs = s.msgs, nil
	} else {
		for {
			code := s.f.GetError()
			if code == driver.NoError {
				break
			}
			msgs = append(msgs, driver.ErrorName(code))
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return &DriverError{Messages: append([]string{op}, msgs...)}
}

// drain surfaces everything accumulated during a queue traversal as
// one aggregated error. Without debug mode it does nothing, keeping
// the hot path free of synchronous error checks.
func (s *errorSink) drain() error {
	if !s.debug {
		return nil
	}
	return s.check("queue traversal")
}

// close restores the previously-installed debug callback.
func (s *errorSink) close() {
	if s.callback {
		s.f.SetDebugCallback(s.prev)
		s.callback = false
	}
}
