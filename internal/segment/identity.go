package segment

// IdentityMap assigns dense speaker IDs to raw labels in order of first
// appearance. The zero value is not usable; call NewIdentityMap.
type IdentityMap struct {
	ids    map[string]int
	labels []string
}

func NewIdentityMap() *IdentityMap {
	return &IdentityMap{ids: make(map[string]int)}
}

// Assign returns the ID for label, allocating the next one on first sight.
func (m *IdentityMap) Assign(label string) int {
	if id, ok := m.ids[label]; ok {
		return id
	}
	id := len(m.labels)
	m.ids[label] = id
	m.labels = append(m.labels, label)
	return id
}

func (m *IdentityMap) Lookup(label string) (int, bool) {
	id, ok := m.ids[label]
	return id, ok
}

// Label returns the raw label behind id.
func (m *IdentityMap) Label(id int) (string, bool) {
	if id < 0 || id >= len(m.labels) {
		return "", false
	}
	return m.labels[id], true
}

// Labels returns raw labels indexed by speaker ID.
func (m *IdentityMap) Labels() []string {
	out := make([]string, len(m.labels))
	copy(out, m.labels)
	return out
}

func (m *IdentityMap) Len() int {
	return len(m.labels)
}
