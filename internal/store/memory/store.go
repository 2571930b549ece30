// Package memory provides an in-memory Store used by tests and dry runs.
// It mirrors the relational semantics of the postgres store: deleting a
// company cascades to its categories and keywords, and transactions keep
// their rows with NULLed links when a referent disappears.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/store"
)

// Store is a mutex-guarded in-memory implementation of store.Store.
type Store struct {
	mu sync.Mutex

	companies  map[string]model.Company
	categories map[string]model.Category
	keywords   map[uint]model.Keyword

	transactions []model.Transaction
	logs         []model.ProcessingLog

	nextKeywordID     uint
	nextTransactionID uint
	nextLogID         uint
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		companies:         make(map[string]model.Company),
		categories:        make(map[string]model.Category),
		keywords:          make(map[uint]model.Keyword),
		nextKeywordID:     1,
		nextTransactionID: 1,
		nextLogID:         1,
	}
}

func (s *Store) CreateCompany(_ context.Context, c *model.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	s.companies[c.ID] = *c
	return nil
}

func (s *Store) Companies(_ context.Context) ([]model.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]model.Company, 0, len(s.companies))
	for _, c := range s.companies {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// DeleteCompany removes a company, cascades to its categories and their
// keywords, and clears the company link on transactions.
func (s *Store) DeleteCompany(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.companies[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.companies, id)

	for catID, cat := range s.categories {
		if cat.CompanyID == id {
			s.deleteCategoryLocked(catID)
		}
	}
	for i := range s.transactions {
		if s.transactions[i].CompanyID != nil && *s.transactions[i].CompanyID == id {
			s.transactions[i].CompanyID = nil
		}
	}
	return nil
}

func (s *Store) CreateCategory(_ context.Context, c *model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.companies[c.CompanyID]; !ok {
		return store.ErrNotFound
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	stored := *c
	stored.Company = nil
	stored.Keywords = nil
	s.categories[c.ID] = stored
	return nil
}

func (s *Store) Categories(_ context.Context) ([]model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]model.Category, 0, len(s.categories))
	for _, c := range s.categories {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) DeleteCategory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return store.ErrNotFound
	}
	s.deleteCategoryLocked(id)
	return nil
}

// deleteCategoryLocked cascades a category deletion. Caller holds mu.
func (s *Store) deleteCategoryLocked(id string) {
	delete(s.categories, id)
	for kwID, kw := range s.keywords {
		if kw.CategoryID == id {
			delete(s.keywords, kwID)
		}
	}
	for i := range s.transactions {
		if s.transactions[i].CategoryID != nil && *s.transactions[i].CategoryID == id {
			s.transactions[i].CategoryID = nil
		}
	}
}

func (s *Store) CreateKeyword(_ context.Context, k *model.Keyword) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if k.Text == "" {
		return store.ErrEmptyKeyword
	}
	if _, ok := s.categories[k.CategoryID]; !ok {
		return store.ErrNotFound
	}
	for _, existing := range s.keywords {
		if existing.CategoryID == k.CategoryID && existing.Text == k.Text {
			return store.ErrDuplicateKeyword
		}
	}

	k.ID = s.nextKeywordID
	s.nextKeywordID++
	k.CreatedAt = time.Now()
	stored := *k
	stored.Category = nil
	s.keywords[k.ID] = stored
	return nil
}

func (s *Store) DeleteKeyword(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.keywords[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.keywords, id)
	return nil
}

func (s *Store) KeywordRules(_ context.Context) ([]store.KeywordRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kws := make([]model.Keyword, 0, len(s.keywords))
	for _, kw := range s.keywords {
		kws = append(kws, kw)
	}
	sort.Slice(kws, func(i, j int) bool {
		if kws[i].CategoryID != kws[j].CategoryID {
			return kws[i].CategoryID < kws[j].CategoryID
		}
		return kws[i].ID < kws[j].ID
	})

	rules := make([]store.KeywordRule, 0, len(kws))
	for _, kw := range kws {
		cat, ok := s.categories[kw.CategoryID]
		if !ok {
			continue
		}
		com := s.companies[cat.CompanyID]
		rules = append(rules, store.KeywordRule{
			Text:         kw.Text,
			CategoryID:   cat.ID,
			CategoryName: cat.Name,
			CompanyID:    com.ID,
			CompanyName:  com.Name,
		})
	}
	return rules, nil
}

func (s *Store) CreateTransaction(_ context.Context, t *model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.nextTransactionID
	s.nextTransactionID++
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	stored := *t
	stored.Company = nil
	stored.Category = nil
	s.transactions = append(s.transactions, stored)
	return nil
}

func (s *Store) Transactions(_ context.Context) ([]model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]model.Transaction, len(s.transactions))
	copy(copied, s.transactions)
	return copied, nil
}

func (s *Store) UnclassifiedTransactions(_ context.Context) ([]model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []model.Transaction
	for _, t := range s.transactions {
		if !t.Classified {
			result = append(result, t)
		}
	}
	return result, nil
}

func (s *Store) ClassifyTransaction(_ context.Context, id uint, companyID, categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.transactions {
		if s.transactions[i].ID == id {
			s.transactions[i].CompanyID = &companyID
			s.transactions[i].CategoryID = &categoryID
			s.transactions[i].Classified = true
			s.transactions[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteAllTransactions(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = nil
	return nil
}

func (s *Store) CreateProcessingLog(_ context.Context, l *model.ProcessingLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l.ID = s.nextLogID
	s.nextLogID++
	l.CreatedAt = time.Now()
	s.logs = append(s.logs, *l)
	return nil
}

func (s *Store) UpdateProcessingLog(_ context.Context, l *model.ProcessingLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.logs {
		if s.logs[i].ID == l.ID {
			s.logs[i].RecordsProcessed = l.RecordsProcessed
			s.logs[i].RecordsSuccessful = l.RecordsSuccessful
			s.logs[i].RecordsFailed = l.RecordsFailed
			s.logs[i].ErrorMessage = l.ErrorMessage
			return nil
		}
	}
	return store.ErrNotFound
}

// ProcessingLogs returns all logs, newest first.
func (s *Store) ProcessingLogs(_ context.Context) ([]model.ProcessingLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]model.ProcessingLog, len(s.logs))
	copy(copied, s.logs)
	sort.Slice(copied, func(i, j int) bool { return copied[i].ID > copied[j].ID })
	return copied, nil
}

var _ store.Store = (*Store)(nil)
