package decoration

// Decoration defines APIs each concrete decorations should implement.
// A decoration represents a ranged decoration for a range of atoms.
type Decoration interface {
	Range() (int, int)
	Source() any
	GetPriority() int
}

// Span is a plain decoration carrying an arbitrary payload.
type Span struct {
	Src        any
	Priority   int
	Start, End int
	Payload    any
}

func (s Span) Source() any {
	return s.Src
}

func (s Span) GetPriority() int {
	return s.Priority
}

func (s Span) Range() (int, int) {
	return s.Start, s.End
}
