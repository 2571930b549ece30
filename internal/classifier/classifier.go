// Package classifier assigns companies and categories to imported
// transactions by matching keyword rules against descriptions.
package classifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/store"
)

// Classifier matches unclassified transactions against keyword rules.
type Classifier struct {
	store store.Store
	log   zerolog.Logger
}

// New creates a Classifier.
func New(st store.Store, log zerolog.Logger) *Classifier {
	return &Classifier{store: st, log: log}
}

// ClassifyPending classifies all currently-unclassified transactions
// under a fresh run ID and returns the run's log entry.
func (c *Classifier) ClassifyPending(ctx context.Context) (*model.ProcessingLog, error) {
	return c.Run(ctx, uuid.New().String())
}

// Run classifies all currently-unclassified transactions.
//
// The unclassified set and the rule list are each fetched once and fixed
// for the duration of the run. For every transaction the rules are
// scanned in their stable order; the first rule whose text occurs in the
// description wins and the transaction is updated in place. Transactions
// no rule matches stay unclassified and count as failures in the run's
// statistics. A failed update on one transaction does not abort the run.
func (c *Classifier) Run(ctx context.Context, runID string) (*model.ProcessingLog, error) {
	pending, err := c.store.UnclassifiedTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching unclassified transactions: %w", err)
	}

	rules, err := c.store.KeywordRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching keyword rules: %w", err)
	}

	runLog := &model.ProcessingLog{
		RunID:            runID,
		Kind:             model.ProcessClassification,
		RecordsProcessed: len(pending),
	}
	if err := c.store.CreateProcessingLog(ctx, runLog); err != nil {
		return nil, fmt.Errorf("creating processing log: %w", err)
	}

	c.log.Info().
		Str("run_id", runID).
		Int("pending", len(pending)).
		Int("rules", len(rules)).
		Msg("classification started")

	var succeeded, failed int
	for _, txn := range pending {
		rule, ok := match(rules, txn.Description)
		if !ok {
			failed++
			continue
		}
		if err := c.store.ClassifyTransaction(ctx, txn.ID, rule.CompanyID, rule.CategoryID); err != nil {
			c.log.Warn().
				Err(err).
				Uint("transaction_id", txn.ID).
				Msg("classification update failed")
			failed++
			continue
		}
		succeeded++
	}

	runLog.RecordsSuccessful = succeeded
	runLog.RecordsFailed = failed
	if err := c.store.UpdateProcessingLog(ctx, runLog); err != nil {
		return nil, fmt.Errorf("updating processing log: %w", err)
	}

	c.log.Info().
		Str("run_id", runID).
		Int("succeeded", succeeded).
		Int("failed", failed).
		Msg("classification finished")

	return runLog, nil
}

// match returns the first rule whose text occurs in the description.
// Matching is a literal case-sensitive substring check; rule order is
// the caller-controlled priority.
func match(rules []store.KeywordRule, description string) (store.KeywordRule, bool) {
	for _, rule := range rules {
		if strings.Contains(description, rule.Text) {
			return rule, true
		}
	}
	return store.KeywordRule{}, false
}
