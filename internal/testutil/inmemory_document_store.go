package testutil

import (
	"context"

	"github.com/glowdesk/glowdesk/internal/domain/document"
	ierr "github.com/glowdesk/glowdesk/internal/errors"
	"github.com/glowdesk/glowdesk/internal/types"
)

// InMemoryDocumentStore implements document.Repository. Tests seed it
// directly through Add since the billing subsystem never writes documents.
type InMemoryDocumentStore struct {
	*InMemoryStore[*document.Document]
}

// NewInMemoryDocumentStore creates a new in-memory document repository
func NewInMemoryDocumentStore() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{
		InMemoryStore: NewInMemoryStore[*document.Document](),
	}
}

// Add seeds a document into the store
func (s *InMemoryDocumentStore) Add(ctx context.Context, doc *document.Document) error {
	return s.InMemoryStore.Create(ctx, doc.ID, doc)
}

func documentFilterFn(ctx context.Context, doc *document.Document, filter interface{}) bool {
	if doc == nil {
		return false
	}

	f, ok := filter.(*types.DocumentFilter)
	if !ok {
		return true
	}

	if f.ClientID != nil && doc.ClientID != *f.ClientID {
		return false
	}
	if f.DocumentType != nil && doc.DocumentType != *f.DocumentType {
		return false
	}
	if f.InvoiceType != nil {
		if doc.Invoice == nil || doc.Invoice.InvoiceType != *f.InvoiceType {
			return false
		}
	}

	return true
}

func documentSortFn(i, j *document.Document) bool {
	return i.CreatedAt.Before(j.CreatedAt)
}

func (s *InMemoryDocumentStore) Get(ctx context.Context, id string) (*document.Document, error) {
	doc, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewErrorf("document %s not found", id).
			WithHintf("Document %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return doc, nil
}

func (s *InMemoryDocumentStore) List(ctx context.Context, filter *types.DocumentFilter) ([]*document.Document, error) {
	return s.InMemoryStore.List(ctx, filter, documentFilterFn, documentSortFn)
}

func (s *InMemoryDocumentStore) GetLatestContract(ctx context.Context, clientID string) (*document.Document, error) {
	contractType := types.DocumentTypeContract
	docs, err := s.List(ctx, &types.DocumentFilter{
		QueryFilter:  types.NewNoLimitQueryFilter(),
		ClientID:     &clientID,
		DocumentType: &contractType,
	})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ierr.NewErrorf("no contract found for client %s", clientID).
			WithHintf("Client %s has no contract on file", clientID).
			Mark(ierr.ErrNotFound)
	}
	return docs[len(docs)-1], nil
}
