package ingest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ledgerline-dev/ledgerline/internal/classifier"
	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/store"
)

// Pipeline imports a bank CSV export and triggers classification.
type Pipeline struct {
	store      store.Store
	classifier *classifier.Classifier
	loc        *time.Location
	log        zerolog.Logger
}

// NewPipeline creates a Pipeline. loc is the timezone attached to
// parsed timestamps; nil means the process-local timezone.
func NewPipeline(st store.Store, cl *classifier.Classifier, loc *time.Location, log zerolog.Logger) *Pipeline {
	if loc == nil {
		loc = time.Local
	}
	return &Pipeline{store: st, classifier: cl, loc: loc, log: log}
}

// Ingest replaces the whole transaction set with the contents of the
// CSV source, then classifies the new batch.
//
// The import is a full replacement: all existing transactions are
// deleted before the new rows are inserted. Rows that fail to parse are
// counted as failures and skipped; the import continues. Only failures
// that precede per-row processing (unreadable source, missing header,
// log creation) abort the run, and rows already inserted at that point
// are kept as-is. Classification runs regardless of row failures.
//
// The returned log is the import run's entry; the classification run
// writes its own entry under the same run ID.
func (p *Pipeline) Ingest(ctx context.Context, r io.Reader, sourceName string) (*model.ProcessingLog, error) {
	runID := uuid.New().String()

	runLog := &model.ProcessingLog{
		RunID:    runID,
		Kind:     model.ProcessImport,
		FileName: sourceName,
	}
	if err := p.store.CreateProcessingLog(ctx, runLog); err != nil {
		return nil, fmt.Errorf("creating processing log: %w", err)
	}

	rows, rowErrs, err := Parse(r, p.loc)
	if err != nil {
		p.failRun(ctx, runLog, err)
		return runLog, fmt.Errorf("parsing %s: %w", sourceName, err)
	}

	p.log.Info().
		Str("run_id", runID).
		Str("file", sourceName).
		Int("rows", len(rows)+len(rowErrs)).
		Msg("import started")

	if err := p.store.DeleteAllTransactions(ctx); err != nil {
		p.failRun(ctx, runLog, err)
		return runLog, fmt.Errorf("clearing transactions: %w", err)
	}

	failed := len(rowErrs)
	for _, re := range rowErrs {
		p.log.Warn().
			Str("run_id", runID).
			Int("line", re.Line).
			Err(re.Err).
			Msg("row skipped")
	}

	var succeeded int
	for _, row := range rows {
		txn := toTransaction(row)
		if err := p.store.CreateTransaction(ctx, &txn); err != nil {
			p.log.Warn().
				Str("run_id", runID).
				Err(err).
				Msg("row insert failed")
			failed++
			continue
		}
		succeeded++
	}

	runLog.RecordsProcessed = len(rows) + len(rowErrs)
	runLog.RecordsSuccessful = succeeded
	runLog.RecordsFailed = failed
	if err := p.store.UpdateProcessingLog(ctx, runLog); err != nil {
		return runLog, fmt.Errorf("updating processing log: %w", err)
	}

	p.log.Info().
		Str("run_id", runID).
		Int("succeeded", succeeded).
		Int("failed", failed).
		Msg("import finished")

	if _, err := p.classifier.Run(ctx, runID); err != nil {
		return runLog, fmt.Errorf("classifying imported transactions: %w", err)
	}
	return runLog, nil
}

// toTransaction derives the transaction kind and signed amount from a
// parsed row. A positive deposit wins: the row is income with
// amount=deposit even if the withdrawal field is also set. Anything
// else is an expense with amount=withdrawal, including all-zero rows.
func toTransaction(row Row) model.Transaction {
	kind := model.KindExpense
	amount := row.Withdrawal
	if row.Deposit.IsPositive() {
		kind = model.KindIncome
		amount = row.Deposit
	}

	return model.Transaction{
		Date:          row.Date,
		Description:   row.Description,
		IncomeAmount:  row.Deposit,
		ExpenseAmount: row.Withdrawal,
		BalanceAfter:  row.BalanceAfter,
		Branch:        row.Branch,
		Kind:          kind,
		Amount:        amount,
		Classified:    false,
	}
}

// failRun records a pipeline-fatal error on the run's log entry.
func (p *Pipeline) failRun(ctx context.Context, runLog *model.ProcessingLog, cause error) {
	runLog.ErrorMessage = cause.Error()
	if err := p.store.UpdateProcessingLog(ctx, runLog); err != nil {
		p.log.Error().Err(err).Msg("recording import failure")
	}
}
