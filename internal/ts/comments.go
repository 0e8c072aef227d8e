package ts

// Comment is one element of a node's annotation bag: either raw source text
// (doc comments) or a machine-readable marker set by an analysis step.
type Comment interface {
	comment()
}

// Raw preserves a source comment verbatim.
type Raw struct {
	Text string
}

func (Raw) comment() {}

// Marker is a machine annotation attached by passes.
type Marker int

const (
	// MarkerIsTrivial flags a declaration whose only purpose is re-pointing
	// at another declaration; InlineTrivial follows these.
	MarkerIsTrivial Marker = iota
	// MarkerCouldBeUndefined records dropped optionality.
	MarkerCouldBeUndefined
	// MarkerExpanded flags signatures produced by overload splitting.
	MarkerExpanded
)

func (Marker) comment() {}

// Comments is the append-only annotation bag carried by every node. The zero
// value is the empty bag. All mutating operations return a new value.
type Comments struct {
	cs []Comment
}

func NoComments() Comments { return Comments{} }

func CommentsOf(cs ...Comment) Comments { return Comments{cs: cs} }

func (c Comments) IsEmpty() bool { return len(c.cs) == 0 }

func (c Comments) All() []Comment { return c.cs }

func (c Comments) Add(extra ...Comment) Comments {
	if len(extra) == 0 {
		return c
	}
	out := make([]Comment, 0, len(c.cs)+len(extra))
	out = append(out, c.cs...)
	out = append(out, extra...)
	return Comments{cs: out}
}

func (c Comments) Concat(o Comments) Comments { return c.Add(o.cs...) }

func (c Comments) Has(m Marker) bool {
	for _, e := range c.cs {
		if mk, ok := e.(Marker); ok && mk == m {
			return true
		}
	}
	return false
}

// Warning builds a raw comment recording a non-fatal anomaly inline, so the
// generated output carries the explanation next to the fallback type.
func Warning(msg string) Comment {
	return Raw{Text: "/* " + msg + " */"}
}
