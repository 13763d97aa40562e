package importer

// Index is the set of TMDB IDs considered already present. It is seeded from
// the library at run start and only ever grows: every add (real or simulated)
// records its ID so later lines resolving to the same movie are classified
// as duplicates.
type Index struct {
	ids map[int64]struct{}
}

// NewIndex creates an Index seeded with the given IDs.
func NewIndex(seed map[int64]struct{}) *Index {
	ids := make(map[int64]struct{}, len(seed))
	for id := range seed {
		ids[id] = struct{}{}
	}
	return &Index{ids: ids}
}

// Contains reports whether the ID is already present.
func (x *Index) Contains(id int64) bool {
	_, ok := x.ids[id]
	return ok
}

// Add records an ID as present.
func (x *Index) Add(id int64) {
	x.ids[id] = struct{}{}
}

// Len returns the number of known IDs.
func (x *Index) Len() int {
	return len(x.ids)
}
