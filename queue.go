package gl2d

// CommandKind discriminates queue entries.
type CommandKind uint8

// Render commands, in the order a backend's executor dispatches them.
const (
	CmdNop CommandKind = iota
	CmdSetViewport
	CmdSetClipRect
	CmdSetDrawColor
	CmdClear
	CmdDrawPoints
	CmdDrawLines
	CmdFillRects
	CmdCopy
	CmdCopyEx
)

// Command is one entry in a render queue. Only the fields relevant to
// Kind are meaningful; draw commands reference pre-compiled vertex
// data through First/Count offsets into the queue's arena.
//
// Commands are immutable once appended: the compile phase writes them,
// the execute phase only reads.
type Command struct {
	Kind CommandKind

	// CmdSetViewport.
	Viewport Rect

	// CmdSetClipRect.
	ClipEnabled bool
	Clip        Rect

	// CmdClear and every draw command.
	Color Color
	Blend BlendMode

	// CmdCopy / CmdCopyEx.
	Texture *Texture

	// Offset (in float32s) of this command's vertex data in the arena,
	// and the number of primitives it covers.
	First int
	Count int
}

// VertexArena is a caller-owned append-only block of vertex memory.
// Backends allocate from it while compiling commands and read from it
// while executing; the arena itself never interprets the contents.
type VertexArena struct {
	data []float32
}

// Alloc reserves n float32s and returns their offset plus the slice to
// fill. The slice stays valid until Reset.
func (a *VertexArena) Alloc(n int) (first int, verts []float32) {
	first = len(a.data)
	a.data = append(a.data, make([]float32, n)...)
	return first, a.data[first : first+n]
}

// Slice returns n float32s starting at first.
func (a *VertexArena) Slice(first, n int) []float32 {
	return a.data[first : first+n]
}

// Len returns the number of float32s allocated so far.
func (a *VertexArena) Len() int { return len(a.data) }

// Reset discards all allocations, retaining capacity.
func (a *VertexArena) Reset() { a.data = a.data[:0] }

// Queue is an ordered render-command sequence plus the vertex arena
// its draw commands point into. A queue is built once, executed once,
// then Reset for the next frame.
type Queue struct {
	cmds []Command

	// Vertices backs every draw command's geometry.
	Vertices VertexArena
}

// Append adds a command and returns a pointer to the stored entry so
// the compiler can fill in vertex offsets.
func (q *Queue) Append(cmd Command) *Command {
	q.cmds = append(q.cmds, cmd)
	return &q.cmds[len(q.cmds)-1]
}

// Commands returns the compiled command sequence for execution.
func (q *Queue) Commands() []Command { return q.cmds }

// Len returns the number of queued commands.
func (q *Queue) Len() int { return len(q.cmds) }

// Reset empties the queue and its arena, retaining capacity.
func (q *Queue) Reset() {
	q.cmds = q.cmds[:0]
	q.Vertices.Reset()
}
