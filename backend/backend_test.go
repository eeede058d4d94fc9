package backend

import (
	"sort"
	"testing"

	"github.com/gogpu/gl2d"
)

// fakeBackend is a registry test double.
type fakeBackend struct {
	name   string
	inited bool
}

func (f *fakeBackend) Name() string { return f.name }
func (f *fakeBackend) Init() error  { f.inited = true; return nil }
func (f *fakeBackend) Close()       { f.inited = false }
func (f *fakeBackend) NewRenderer(width, height int) (gl2d.Renderer, error) {
	return nil, ErrNotInitialized
}

// register installs a fake backend for the duration of the test.
func register(t *testing.T, name string) {
	t.Helper()
	Register(name, func() Backend { return &fakeBackend{name: name} })
	t.Cleanup(func() { Unregister(name) })
}

func TestRegistryRegisterAndGet(t *testing.T) {
	register(t, "test-fake")

	if !IsRegistered("test-fake") {
		t.Error("test-fake should be registered")
	}

	b := Get("test-fake")
	if b == nil {
		t.Fatal("Get(test-fake) returned nil")
	}
	if b.Name() != "test-fake" {
		t.Errorf("Get(test-fake).Name() = %q, want %q", b.Name(), "test-fake")
	}
}

func TestRegistryGetUnregistered(t *testing.T) {
	if b := Get("nonexistent"); b != nil {
		t.Error("Get(nonexistent) should return nil")
	}
}

func TestRegistryAvailable(t *testing.T) {
	register(t, "test-a")
	register(t, "test-b")

	available := Available()
	sort.Strings(available)

	found := 0
	for _, name := range available {
		if name == "test-a" || name == "test-b" {
			found++
		}
	}
	if found != 2 {
		t.Errorf("Available() = %v, want both test backends listed", available)
	}
}

func TestRegistryDefaultPriority(t *testing.T) {
	register(t, BackendSoftware)
	register(t, BackendOpenGL)

	b := Default()
	if b == nil {
		t.Fatal("Default() returned nil")
	}
	if b.Name() != BackendOpenGL {
		t.Errorf("Default().Name() = %q, want %q", b.Name(), BackendOpenGL)
	}
}

func TestRegistryDefaultFallback(t *testing.T) {
	register(t, "test-only")

	// Neither priority name is registered in this process; the first
	// available backend wins.
	if IsRegistered(BackendOpenGL) || IsRegistered(BackendSoftware) {
		t.Skip("priority backends registered by another import")
	}

	b := Default()
	if b == nil || b.Name() != "test-only" {
		t.Errorf("Default() = %v, want the only registered backend", b)
	}
}

func TestRegistryMustDefault(t *testing.T) {
	register(t, BackendSoftware)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("MustDefault() panicked: %v", r)
		}
	}()
	if b := MustDefault(); b == nil {
		t.Error("MustDefault() returned nil")
	}
}

func TestRegistryInitDefault(t *testing.T) {
	register(t, BackendSoftware)

	b, err := InitDefault()
	if err != nil {
		t.Fatalf("InitDefault() error = %v", err)
	}
	if b == nil {
		t.Fatal("InitDefault() returned nil backend")
	}
	defer b.Close()

	if fb, ok := b.(*fakeBackend); ok && !fb.inited {
		t.Error("InitDefault() did not call Init")
	}
}

func TestRegistryUnregister(t *testing.T) {
	Register("test-unregister", func() Backend { return &fakeBackend{name: "test-unregister"} })

	if !IsRegistered("test-unregister") {
		t.Error("test-unregister should be registered")
	}

	Unregister("test-unregister")

	if IsRegistered("test-unregister") {
		t.Error("test-unregister should be gone after Unregister")
	}
	if b := Get("test-unregister"); b != nil {
		t.Error("Get after Unregister should return nil")
	}
}
