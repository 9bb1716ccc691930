package core

const (
	historyCapacity = 100
	historyRetain   = 50
)

// dedupWindow is a bounded insertion-ordered set of recent message ids.
// Once the window grows past historyCapacity it is trimmed down to the
// historyRetain most recently inserted ids. Duplicate suppression is
// therefore approximate: an id evicted from the window may be accepted
// again, which the delivery contract tolerates.
type dedupWindow struct {
	order []string
	seen  map[string]struct{}
}

func newDedupWindow() *dedupWindow {
	return &dedupWindow{seen: make(map[string]struct{}, historyCapacity)}
}

// recordIfNew inserts id and reports true, or reports false when id is
// already inside the window.
func (w *dedupWindow) recordIfNew(id string) bool {
	if _, dup := w.seen[id]; dup {
		return false
	}
	w.seen[id] = struct{}{}
	w.order = append(w.order, id)

	if len(w.order) > historyCapacity {
		evicted := w.order[:len(w.order)-historyRetain]
		for _, old := range evicted {
			delete(w.seen, old)
		}
		retained := make([]string, historyRetain)
		copy(retained, w.order[len(w.order)-historyRetain:])
		w.order = retained
	}
	return true
}

func (w *dedupWindow) size() int {
	return len(w.order)
}
