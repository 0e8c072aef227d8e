package ts

// CodePath is a declaration's canonical library-relative address. The zero
// value means "no path" (synthetic or not yet placed).
type CodePath struct {
	Lib   LibIdent
	QName QIdent
}

func NoPath() CodePath { return CodePath{} }

func PathOf(lib LibIdent, qname QIdent) CodePath {
	return CodePath{Lib: lib, QName: qname}
}

func (c CodePath) HasPath() bool { return !c.Lib.IsZero() }

// Add extends the path with one more identifier; a no-path stays no-path.
func (c CodePath) Add(ident Ident) CodePath {
	if !c.HasPath() {
		return c
	}
	return CodePath{Lib: c.Lib, QName: c.QName.Add(ident)}
}

// Replaced returns the path with its qualified name swapped out, preserving
// the library. Used when flattening namespace members to a new position.
func (c CodePath) Replaced(qname QIdent) CodePath {
	if !c.HasPath() {
		return c
	}
	return CodePath{Lib: c.Lib, QName: qname}
}

func (c CodePath) String() string {
	if !c.HasPath() {
		return "<no-path>"
	}
	return c.Lib.String() + "/" + c.QName.String()
}
