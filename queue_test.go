package gl2d

import "testing"

func TestVertexArenaAlloc(t *testing.T) {
	var a VertexArena
	first, v := a.Alloc(4)
	if first != 0 || len(v) != 4 {
		t.Fatalf("Alloc(4) = (%d, len %d), want (0, 4)", first, len(v))
	}
	v[0], v[3] = 1.5, 2.5

	second, _ := a.Alloc(2)
	if second != 4 {
		t.Errorf("second Alloc offset = %d, want 4", second)
	}
	if a.Len() != 6 {
		t.Errorf("Len() = %d, want 6", a.Len())
	}

	got := a.Slice(0, 4)
	if got[0] != 1.5 || got[3] != 2.5 {
		t.Errorf("Slice(0, 4) = %v, want the written values", got)
	}

	a.Reset()
	if a.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", a.Len())
	}
}

func TestQueueAppend(t *testing.T) {
	var q Queue
	cmd := q.Append(Command{Kind: CmdClear, Color: White})
	if cmd.Kind != CmdClear {
		t.Errorf("Append returned Kind %v, want CmdClear", cmd.Kind)
	}
	cmd.First = 7

	if q.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", q.Len())
	}
	if got := q.Commands()[0]; got.First != 7 {
		t.Errorf("stored First = %d, want the pointer write to land", got.First)
	}

	q.Vertices.Alloc(3)
	q.Reset()
	if q.Len() != 0 || q.Vertices.Len() != 0 {
		t.Errorf("Reset left %d commands, %d floats", q.Len(), q.Vertices.Len())
	}
}
