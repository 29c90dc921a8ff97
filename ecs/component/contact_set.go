package component

// ContactSet tracks overlapping entities in first-contact order. A polygon
// split into several shapes can begin contact more than once, so each entry
// keeps a reference count.
type ContactSet struct {
	ids    []uint64
	counts []int
}

// Add records one more begin contact with id. It reports whether id is new.
func (s *ContactSet) Add(id uint64) bool {
	for i, existing := range s.ids {
		if existing == id {
			s.counts[i]++
			return false
		}
	}
	s.ids = append(s.ids, id)
	s.counts = append(s.counts, 1)
	return true
}

// Remove records an end contact with id. It reports whether id left the set.
func (s *ContactSet) Remove(id uint64) bool {
	for i, existing := range s.ids {
		if existing != id {
			continue
		}
		s.counts[i]--
		if s.counts[i] > 0 {
			return false
		}
		s.ids = append(s.ids[:i], s.ids[i+1:]...)
		s.counts = append(s.counts[:i], s.counts[i+1:]...)
		return true
	}
	return false
}

func (s *ContactSet) Has(id uint64) bool {
	for _, existing := range s.ids {
		if existing == id {
			return true
		}
	}
	return false
}

func (s *ContactSet) Len() int {
	return len(s.ids)
}

// IDs returns members in first-contact order. Callers must not modify it.
func (s *ContactSet) IDs() []uint64 {
	return s.ids
}

func (s *ContactSet) Clear() {
	s.ids = nil
	s.counts = nil
}
