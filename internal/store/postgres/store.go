// Package postgres implements store.Store on PostgreSQL via GORM.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/store"
)

// Store is the GORM-backed implementation of store.Store.
type Store struct {
	db *gorm.DB
}

// Open connects to PostgreSQL and migrates the schema.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Company{},
		&model.Category{},
		&model.Keyword{},
		&model.Transaction{},
		&model.ProcessingLog{},
	); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// NewWithDB wraps an existing GORM handle. The schema is assumed migrated.
func NewWithDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateCompany(ctx context.Context, c *model.Company) error {
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *Store) Companies(ctx context.Context) ([]model.Company, error) {
	var companies []model.Company
	if err := s.db.WithContext(ctx).Order("id").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (s *Store) DeleteCompany(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&model.Company{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CreateCategory(ctx context.Context, c *model.Category) error {
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *Store) Categories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := s.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&model.Category{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CreateKeyword(ctx context.Context, k *model.Keyword) error {
	if k.Text == "" {
		return store.ErrEmptyKeyword
	}
	err := s.db.WithContext(ctx).Create(k).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return store.ErrDuplicateKeyword
	}
	return err
}

func (s *Store) DeleteKeyword(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&model.Keyword{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) KeywordRules(ctx context.Context) ([]store.KeywordRule, error) {
	var rules []store.KeywordRule
	err := s.db.WithContext(ctx).
		Model(&model.Keyword{}).
		Select("classification_keywords.text AS text, " +
			"categories.id AS category_id, categories.name AS category_name, " +
			"companies.id AS company_id, companies.name AS company_name").
		Joins("JOIN categories ON categories.id = classification_keywords.category_id").
		Joins("JOIN companies ON companies.id = categories.company_id").
		Order("categories.id, classification_keywords.id").
		Scan(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (s *Store) CreateTransaction(ctx context.Context, t *model.Transaction) error {
	return s.db.WithContext(ctx).Create(t).Error
}

func (s *Store) Transactions(ctx context.Context) ([]model.Transaction, error) {
	var txns []model.Transaction
	if err := s.db.WithContext(ctx).Order("id").Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

func (s *Store) UnclassifiedTransactions(ctx context.Context) ([]model.Transaction, error) {
	var txns []model.Transaction
	err := s.db.WithContext(ctx).
		Where("classified = ?", false).
		Order("id").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (s *Store) ClassifyTransaction(ctx context.Context, id uint, companyID, categoryID string) error {
	res := s.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"company_id":  companyID,
			"category_id": categoryID,
			"classified":  true,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteAllTransactions(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.Transaction{}).Error
}

func (s *Store) CreateProcessingLog(ctx context.Context, l *model.ProcessingLog) error {
	return s.db.WithContext(ctx).Create(l).Error
}

func (s *Store) UpdateProcessingLog(ctx context.Context, l *model.ProcessingLog) error {
	res := s.db.WithContext(ctx).
		Model(&model.ProcessingLog{}).
		Where("id = ?", l.ID).
		Updates(map[string]any{
			"records_processed":  l.RecordsProcessed,
			"records_successful": l.RecordsSuccessful,
			"records_failed":     l.RecordsFailed,
			"error_message":      l.ErrorMessage,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ProcessingLogs(ctx context.Context) ([]model.ProcessingLog, error) {
	var logs []model.ProcessingLog
	if err := s.db.WithContext(ctx).Order("id DESC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

var _ store.Store = (*Store)(nil)
