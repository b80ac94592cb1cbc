package loader

import "github.com/fwojciec/lazyframe"

// Registry is the ordered collection of registered records.
// Records are only ever appended.
type Registry struct {
	records []*lazyframe.Record
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends rec unless a record for the same target is already present.
// Reports whether the record was added.
func (r *Registry) Add(rec *lazyframe.Record) bool {
	if r.Find(rec.Target) != nil {
		return false
	}
	r.records = append(r.records, rec)
	return true
}

// Find returns the record for target, or nil if none is registered.
func (r *Registry) Find(target lazyframe.Element) *lazyframe.Record {
	for _, rec := range r.records {
		if rec.Target == target {
			return rec
		}
	}
	return nil
}

// Records returns the registered records in registration order.
func (r *Registry) Records() []*lazyframe.Record {
	return r.records
}

// Len returns the number of registered records.
func (r *Registry) Len() int {
	return len(r.records)
}
