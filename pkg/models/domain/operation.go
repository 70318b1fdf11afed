package domain

// OperationRecord is one row of "operation.details" (or any other model read
// from the ERP) keyed by field name.
type OperationRecord map[string]Value

func NewOperationRecord(raw map[string]interface{}) OperationRecord {
	rec := make(OperationRecord, len(raw))
	for field, value := range raw {
		rec[field] = ParseValue(value)
	}
	return rec
}

// Get returns the named field, or an empty Bare value when it is absent.
func (r OperationRecord) Get(field string) Value {
	if v, ok := r[field]; ok {
		return v
	}
	return Bare(nil)
}

// LookupTables holds the per-run id mappings used to resolve foreign references.
type LookupTables struct {
	PartnerGroups map[int64]string
	Invoices      map[int64]string
}

type LookupSummary struct {
	Name     string
	Resolved int
	Degraded bool
	Err      error
}
