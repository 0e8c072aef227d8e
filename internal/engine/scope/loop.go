package scope

import "dtsforge/internal/ts"

type loopEntry struct {
	qname ts.QIdent
	at    ts.Tree
}

// LoopDetector guards recursive name resolution. It is an immutable set of
// (qualified name, scope position) pairs accumulated along one resolution
// call chain; re-entering a visited pair means a cycle. A fresh detector is
// created per top-level lookup and must never outlive it. Identity is the
// scope's current tree node: two scope values sitting on the same node are
// the same position for cycle purposes.
type LoopDetector struct {
	entries []loopEntry
}

// Including returns a detector extended with (q, s), or ok=false when the
// pair was already on the chain.
func (ld LoopDetector) Including(q ts.QIdent, s *Scope) (LoopDetector, bool) {
	for _, e := range ld.entries {
		if e.at == s.current && e.qname.Equals(q) {
			return ld, false
		}
	}
	next := make([]loopEntry, 0, len(ld.entries)+1)
	next = append(next, ld.entries...)
	next = append(next, loopEntry{qname: q, at: s.current})
	return LoopDetector{entries: next}, true
}

// Depth is the current chain length, useful for bounding deep chains.
func (ld LoopDetector) Depth() int { return len(ld.entries) }
