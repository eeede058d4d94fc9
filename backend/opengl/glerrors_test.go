package opengl

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/gl2d"
	"github.com/gogpu/gl2d/driver"
	"github.com/gogpu/gl2d/driver/softgl"
)

func TestRunQueueReportsPolledErrors(t *testing.T) {
	r, d := newTestRenderer(t, 4, 4)

	d.InjectError(driver.InvalidOperation)
	var q gl2d.Queue
	err := r.RunQueue(&q)

	var derr *DriverError
	if !errors.As(err, &derr) {
		t.Fatalf("RunQueue() error = %v, want DriverError", err)
	}
	if !strings.Contains(derr.Error(), "GL_INVALID_OPERATION") {
		t.Errorf("DriverError = %q, want the symbolic error name", derr.Error())
	}

	// The queue was drained; the next traversal is clean.
	if err := r.RunQueue(&q); err != nil {
		t.Errorf("second RunQueue() error = %v, want nil", err)
	}
}

func TestRunQueueIgnoresErrorsWithoutDebug(t *testing.T) {
	d := softgl.New(4, 4)
	r, err := New(Config{Funcs: d, Platform: &headless{w: 4, h: 4}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	d.InjectError(driver.InvalidOperation)
	var q gl2d.Queue
	if err := r.RunQueue(&q); err != nil {
		t.Errorf("RunQueue() error = %v, want nil without debug mode", err)
	}
}

func TestErrorSinkCallbackStrategy(t *testing.T) {
	d := softgl.New(4, 4)
	d.SetDebugSupported(true)

	var prevGot []string
	d.SetDebugCallback(func(source, gltype, id, severity driver.Enum, message string) {
		prevGot = append(prevGot, message)
	})

	r, err := New(Config{Funcs: d, Platform: &headless{w: 4, h: 4}, Debug: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if !r.sink.synchronous() {
		t.Fatal("sink should use the callback strategy")
	}

	d.InjectError(driver.OutOfMemory)
	var q gl2d.Queue
	var derr *DriverError
	if err := r.RunQueue(&q); !errors.As(err, &derr) {
		t.Fatalf("RunQueue() error = %v, want DriverError", err)
	}
	if len(prevGot) == 0 {
		t.Error("previously installed callback was not chained")
	}

	// Destroy restores the earlier callback.
	r.Destroy()
	if d.DebugCallback() == nil {
		t.Error("debug callback not restored after Destroy")
	}
	before := len(prevGot)
	d.InjectError(driver.InvalidValue)
	if len(prevGot) <= before {
		t.Error("restored callback no longer receives messages")
	}
}

func TestDriverErrorMessage(t *testing.T) {
	err := &DriverError{Messages: []string{"op", "GL_OUT_OF_MEMORY"}}
	if got := err.Error(); !strings.Contains(got, "GL_OUT_OF_MEMORY") {
		t.Errorf("Error() = %q, want the message text", got)
	}
}
