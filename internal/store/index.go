package store

// Index is a Resolver that answers Lookup from hash maps built once at
// construction. Only the first record per (table, field, value) is kept, so
// results match the linear scan exactly.
type Index struct {
	store *Store
	byKey map[string]map[string]map[string]Record // table -> field -> key -> record
}

var _ Resolver = (*Index)(nil)
var _ Resolver = (*Store)(nil)

// NewIndex indexes every scalar field of every record in s.
func NewIndex(s *Store) *Index {
	idx := &Index{
		store: s,
		byKey: make(map[string]map[string]map[string]Record, len(s.tables)),
	}

	for table, recs := range s.tables {
		fields := make(map[string]map[string]Record)
		for _, rec := range recs {
			for field, v := range rec {
				key, ok := indexKey(v)
				if !ok {
					continue
				}
				byValue, ok := fields[field]
				if !ok {
					byValue = make(map[string]Record)
					fields[field] = byValue
				}
				if _, seen := byValue[key]; !seen {
					byValue[key] = rec
				}
			}
		}
		idx.byKey[table] = fields
	}

	return idx
}

// Table returns the records of name in source order.
func (i *Index) Table(name string) []Record {
	return i.store.Table(name)
}

// Lookup returns the indexed first match or Empty.
func (i *Index) Lookup(table string, value any, keyField string) Record {
	if keyField == "" {
		keyField = DefaultKeyField
	}
	key, ok := indexKey(value)
	if !ok {
		return Empty
	}
	if rec, ok := i.byKey[table][keyField][key]; ok {
		return rec
	}
	return Empty
}
