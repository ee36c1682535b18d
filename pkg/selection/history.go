package selection

// History records the ids chosen so far by one builder. The zero value is
// ready to use.
type History struct {
	ids  []string
	seen map[string]struct{}
}

func NewHistory() *History { return &History{} }

// Add appends an id; repeated ids are kept once.
func (h *History) Add(id string) {
	if h.seen == nil {
		h.seen = make(map[string]struct{})
	}
	if _, ok := h.seen[id]; ok {
		return
	}
	h.seen[id] = struct{}{}
	h.ids = append(h.ids, id)
}

func (h *History) Contains(id string) bool {
	_, ok := h.seen[id]
	return ok
}

func (h *History) Clear() {
	h.ids = nil
	h.seen = nil
}

func (h *History) Len() int { return len(h.ids) }

// IDs returns the recorded ids in the order they were first chosen.
func (h *History) IDs() []string {
	out := make([]string, len(h.ids))
	copy(out, h.ids)
	return out
}
