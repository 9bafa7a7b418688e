package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dafibh/fortuna/profit-loss-function/internal/domain"
)

// PageRequest records a single FetchPage call
type PageRequest struct {
	CollectionID string
	Limit        int
	Offset       int
}

// MockDocumentSource is an in-memory implementation of domain.DocumentSource
type MockDocumentSource struct {
	mu          sync.Mutex
	Collections map[string][]domain.Document
	Requests    []PageRequest
	// FetchFn overrides the default paging behaviour when set
	FetchFn func(collectionID string, limit, offset int) (domain.DocumentPage, error)
}

// NewMockDocumentSource creates a new MockDocumentSource
func NewMockDocumentSource() *MockDocumentSource {
	return &MockDocumentSource{
		Collections: make(map[string][]domain.Document),
	}
}

// FetchPage returns the slice [offset, offset+limit) of the collection
func (m *MockDocumentSource) FetchPage(ctx context.Context, collectionID string, limit, offset int) (domain.DocumentPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, PageRequest{CollectionID: collectionID, Limit: limit, Offset: offset})

	if err := ctx.Err(); err != nil {
		return domain.DocumentPage{}, err
	}
	if m.FetchFn != nil {
		return m.FetchFn(collectionID, limit, offset)
	}

	docs := m.Collections[collectionID]
	if offset >= len(docs) {
		return domain.DocumentPage{Total: len(docs)}, nil
	}
	end := offset + limit
	if end > len(docs) {
		end = len(docs)
	}
	page := make([]domain.Document, end-offset)
	copy(page, docs[offset:end])
	return domain.DocumentPage{Documents: page, Total: len(docs)}, nil
}

// AddDocuments appends documents to a collection (helper for tests)
func (m *MockDocumentSource) AddDocuments(collectionID string, docs ...domain.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Collections[collectionID] = append(m.Collections[collectionID], docs...)
}

// RequestsFor returns the recorded requests for one collection
func (m *MockDocumentSource) RequestsFor(collectionID string) []PageRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []PageRequest
	for _, r := range m.Requests {
		if r.CollectionID == collectionID {
			out = append(out, r)
		}
	}
	return out
}

// RequestCount returns the total number of FetchPage calls
func (m *MockDocumentSource) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

// NewDocument builds a document from plain Go values
func NewDocument(id string, fields map[string]interface{}) domain.Document {
	raw := make(map[string]json.RawMessage, len(fields)+1)
	raw["$id"] = mustMarshal(id)
	for k, v := range fields {
		raw[k] = mustMarshal(v)
	}
	return domain.Document{ID: id, Fields: raw}
}

// NewOrder builds an orders-collection document
func NewOrder(id string, orderDate interface{}, totalAmount interface{}) domain.Document {
	return NewDocument(id, map[string]interface{}{
		domain.RevenueFields.DateField:   orderDate,
		domain.RevenueFields.AmountField: totalAmount,
	})
}

// NewExpense builds an expenses-collection document
func NewExpense(id string, expenseDate interface{}, amount interface{}) domain.Document {
	return NewDocument(id, map[string]interface{}{
		domain.ExpenseFields.DateField:   expenseDate,
		domain.ExpenseFields.AmountField: amount,
	})
}

// GenerateOrders builds n orders dated date with the same amount
func GenerateOrders(n int, date string, amount float64) []domain.Document {
	docs := make([]domain.Document, 0, n)
	for i := 0; i < n; i++ {
		docs = append(docs, NewOrder(fmt.Sprintf("order-%d", i), date, amount))
	}
	return docs
}

func mustMarshal(v interface{}) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
