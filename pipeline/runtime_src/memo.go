package hwpgrt

// Memo caches a rule function's result at a given cursor position, so a
// grammar with shared prefixes across alternatives doesn't re-parse the
// same span twice. Wired in by gosink only when generation config asks for
// it (Config.Memoize); a generated parser with memoization disabled never
// touches this type. A generated parser constructs one Memo per top-level
// Parse call, via NewMemo, so memoized results never survive across
// separate parses of separate inputs.
type Memo struct {
	cache map[memoKey]memoEntry
}

type memoKey struct {
	funcName string
	pos      int
}

// memoEntry holds the node a function built starting at pos (nil on a
// failed match) and the cursor position it left ts at.
type memoEntry struct {
	node   *Node
	endPos int
}

// NewMemo returns an empty cache.
func NewMemo() *Memo {
	return &Memo{cache: make(map[memoKey]memoEntry)}
}

// Lookup reports the cached result of calling funcName at pos, if any. A
// nil node with hit true means funcName is known to fail at pos.
func (m *Memo) Lookup(funcName string, pos int) (node *Node, endPos int, hit bool) {
	e, hit := m.cache[memoKey{funcName, pos}]
	return e.node, e.endPos, hit
}

// Store records the result of running funcName starting at pos: node (nil
// on failure) and the cursor position the call left ts at.
func (m *Memo) Store(funcName string, pos int, node *Node, endPos int) {
	m.cache[memoKey{funcName, pos}] = memoEntry{node: node, endPos: endPos}
}
