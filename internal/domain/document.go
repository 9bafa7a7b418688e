package domain

import (
	"context"
	"encoding/json"
)

// DefaultPageSize is the number of documents requested per page
const DefaultPageSize = 100

// Document is a single document returned by the document database.
// Fields keeps every attribute as raw JSON so callers decide how to read it.
type Document struct {
	ID     string
	Fields map[string]json.RawMessage
}

// Field returns the raw JSON for a field, or nil when absent
func (d Document) Field(name string) json.RawMessage {
	if d.Fields == nil {
		return nil
	}
	return d.Fields[name]
}

// DocumentPage is one page of a collection listing
type DocumentPage struct {
	Documents []Document
	Total     int
}

// IsLastPage reports whether the page ends the collection.
// A page shorter than the requested limit is treated as the final page.
func (p DocumentPage) IsLastPage(limit int) bool {
	return len(p.Documents) < limit
}

// DocumentSource lists documents of a collection page by page
type DocumentSource interface {
	FetchPage(ctx context.Context, collectionID string, limit, offset int) (DocumentPage, error)
}

// RecordFields names the date and amount attributes of a collection
type RecordFields struct {
	DateField   string
	AmountField string
}

// Field conventions of the two source collections
var (
	RevenueFields = RecordFields{DateField: "orderDate", AmountField: "totalAmount"}
	ExpenseFields = RecordFields{DateField: "expenseDate", AmountField: "amount"}
)
