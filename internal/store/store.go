package store

import (
	"context"
	"errors"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrEmptyKeyword is returned when a keyword with empty text is created.
// An empty keyword would match every description.
var ErrEmptyKeyword = errors.New("keyword text is empty")

// ErrDuplicateKeyword is returned when the (text, category) pair already exists.
var ErrDuplicateKeyword = errors.New("keyword already registered for category")

// KeywordRule is one row of the ordered keyword/category/company join
// the classifier matches against. Rules are ordered by category ID then
// keyword ID; the order is stable within a run and earlier rules win.
type KeywordRule struct {
	Text         string
	CategoryID   string
	CategoryName string
	CompanyID    string
	CompanyName  string
}

// Store is the persistence boundary for the classification core.
type Store interface {
	CreateCompany(ctx context.Context, c *model.Company) error
	Companies(ctx context.Context) ([]model.Company, error)
	DeleteCompany(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, c *model.Category) error
	Categories(ctx context.Context) ([]model.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateKeyword(ctx context.Context, k *model.Keyword) error
	DeleteKeyword(ctx context.Context, id uint) error

	// KeywordRules returns all keywords joined with their category and
	// company, ordered by category ID then keyword ID.
	KeywordRules(ctx context.Context) ([]KeywordRule, error)

	CreateTransaction(ctx context.Context, t *model.Transaction) error
	Transactions(ctx context.Context) ([]model.Transaction, error)
	UnclassifiedTransactions(ctx context.Context) ([]model.Transaction, error)

	// ClassifyTransaction links a transaction to a company and category
	// and marks it classified, updating the existing row in place.
	ClassifyTransaction(ctx context.Context, id uint, companyID, categoryID string) error

	// DeleteAllTransactions clears the transaction table ahead of a
	// full-replacement import.
	DeleteAllTransactions(ctx context.Context) error

	CreateProcessingLog(ctx context.Context, l *model.ProcessingLog) error

	// UpdateProcessingLog writes the final counts and error message of a
	// run back to its log row.
	UpdateProcessingLog(ctx context.Context, l *model.ProcessingLog) error
	ProcessingLogs(ctx context.Context) ([]model.ProcessingLog, error)
}
