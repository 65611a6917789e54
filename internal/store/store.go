// Package store holds the conference dataset in memory and provides the
// single join primitive every query is built from.
//
// A Store is built once from a source (JSON file or PostgreSQL) and is never
// mutated afterwards, so it is safe for concurrent readers without locking.
package store

import "sort"

// DefaultKeyField is the field matched by Lookup when none is given.
const DefaultKeyField = "id"

// Resolver is the read contract shared by the linear-scan Store and the
// load-time Index. Both return identical results.
type Resolver interface {
	// Table returns the records of name in source order, or nil.
	Table(name string) []Record

	// Lookup returns the first record in table whose keyField equals value,
	// or Empty when the table is absent, value is nil, or nothing matches.
	Lookup(table string, value any, keyField string) Record
}

// Store is an immutable mapping from table name to ordered records.
type Store struct {
	tables map[string][]Record
}

// New builds a Store from already-decoded tables. The map and slices are
// owned by the Store after this call.
func New(tables map[string][]Record) *Store {
	if tables == nil {
		tables = make(map[string][]Record)
	}
	return &Store{tables: tables}
}

// Table returns the records of name in source order.
func (s *Store) Table(name string) []Record {
	return s.tables[name]
}

// Lookup scans table linearly and returns the first match or Empty.
func (s *Store) Lookup(table string, value any, keyField string) Record {
	return s.LookupOr(table, value, keyField, Empty)
}

// LookupOr is Lookup with a caller-supplied default.
func (s *Store) LookupOr(table string, value any, keyField string, def Record) Record {
	if keyField == "" {
		keyField = DefaultKeyField
	}
	if value == nil {
		return def
	}
	for _, rec := range s.tables[table] {
		if rec.Equals(keyField, value) {
			return rec
		}
	}
	return def
}

// TableNames returns the loaded table names, sorted.
func (s *Store) TableNames() []string {
	names := make([]string, 0, len(s.tables))
	for name := range s.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RecordCount returns the total number of records across all tables.
func (s *Store) RecordCount() int {
	n := 0
	for _, recs := range s.tables {
		n += len(recs)
	}
	return n
}
