package ingest

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline-dev/ledgerline/internal/classifier"
	"github.com/ledgerline-dev/ledgerline/internal/logger"
	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/store/memory"
)

func newPipeline(st *memory.Store) *Pipeline {
	log := logger.Nop()
	return NewPipeline(st, classifier.New(st, log), time.UTC, log)
}

func seedRules(t *testing.T, st *memory.Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, st.CreateCompany(ctx, &model.Company{ID: "com_1", Name: "Acme"}))
	require.NoError(t, st.CreateCategory(ctx, &model.Category{
		ID: "cat_1", CompanyID: "com_1", Name: "Meals", Type: model.CategoryTypeExpense,
	}))
	require.NoError(t, st.CreateKeyword(ctx, &model.Keyword{CategoryID: "cat_1", Text: "COFFEE"}))
}

func TestIngest_CreatesTransactions(t *testing.T) {
	ctx := context.Background()
	st := memory.New()

	csv := csvHeader +
		"2025-03-01 09:30:00,STARBUCKS COFFEE #4,0.00,4.50,995.50,Main St\n" +
		"2025-03-02 12:00:00,STRIPE PAYOUT MAR,2500.00,0.00,3495.50,Online\n"

	runLog, err := newPipeline(st).Ingest(ctx, strings.NewReader(csv), "march.csv")
	require.NoError(t, err)

	assert.Equal(t, model.ProcessImport, runLog.Kind)
	assert.Equal(t, "march.csv", runLog.FileName)
	assert.Equal(t, 2, runLog.RecordsProcessed)
	assert.Equal(t, 2, runLog.RecordsSuccessful)
	assert.Equal(t, 0, runLog.RecordsFailed)

	txns, err := st.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.False(t, txns[0].Classified)
	assert.Nil(t, txns[0].CompanyID)
	assert.Nil(t, txns[0].CategoryID)
}

func TestIngest_KindDerivation(t *testing.T) {
	ctx := context.Background()
	st := memory.New()

	csv := csvHeader +
		"2025-03-01 09:30:00,PAYOUT,1000.00,0.00,1000.00,Online\n" +
		"2025-03-02 09:30:00,RENT,0.00,500.00,500.00,Main St\n" +
		"2025-03-03 09:30:00,BOTH SET,100.00,50.00,550.00,Main St\n" +
		"2025-03-04 09:30:00,NOTHING,0.00,0.00,550.00,Main St\n"

	_, err := newPipeline(st).Ingest(ctx, strings.NewReader(csv), "kinds.csv")
	require.NoError(t, err)

	txns, err := st.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 4)

	assert.Equal(t, model.KindIncome, txns[0].Kind)
	assert.Equal(t, "1000.00", txns[0].Amount.StringFixed(2))

	assert.Equal(t, model.KindExpense, txns[1].Kind)
	assert.Equal(t, "500.00", txns[1].Amount.StringFixed(2))

	// A positive deposit wins even when the withdrawal field is set.
	assert.Equal(t, model.KindIncome, txns[2].Kind)
	assert.Equal(t, "100.00", txns[2].Amount.StringFixed(2))

	// An all-zero row is an expense of zero.
	assert.Equal(t, model.KindExpense, txns[3].Kind)
	assert.True(t, txns[3].Amount.IsZero())
}

func TestIngest_FullReplacement(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	p := newPipeline(st)

	first := csvHeader +
		"2025-02-01 09:00:00,OLD ONE,0.00,1.00,99.00,Main St\n" +
		"2025-02-02 09:00:00,OLD TWO,0.00,1.00,98.00,Main St\n" +
		"2025-02-03 09:00:00,OLD THREE,0.00,1.00,97.00,Main St\n"
	_, err := p.Ingest(ctx, strings.NewReader(first), "feb.csv")
	require.NoError(t, err)

	second := csvHeader + "2025-03-01 09:00:00,NEW ONE,0.00,2.00,95.00,Main St\n"
	_, err = p.Ingest(ctx, strings.NewReader(second), "march.csv")
	require.NoError(t, err)

	txns, err := st.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "NEW ONE", txns[0].Description)
}

func TestIngest_BadRowSkipped(t *testing.T) {
	ctx := context.Background()
	st := memory.New()

	csv := csvHeader +
		"2025-03-01 09:30:00,ROW ONE,0.00,4.50,995.50,Main St\n" +
		"NOTADATE,ROW TWO,0.00,4.50,991.00,Main St\n" +
		"2025-03-03 10:00:00,ROW THREE,0.00,1.00,990.00,Main St\n"

	runLog, err := newPipeline(st).Ingest(ctx, strings.NewReader(csv), "bad.csv")
	require.NoError(t, err)

	assert.Equal(t, 3, runLog.RecordsProcessed)
	assert.Equal(t, 2, runLog.RecordsSuccessful)
	assert.Equal(t, 1, runLog.RecordsFailed)

	txns, err := st.Transactions(ctx)
	require.NoError(t, err)
	assert.Len(t, txns, 2)
}

func TestIngest_TriggersClassification(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	seedRules(t, st)

	csv := csvHeader +
		"2025-03-01 09:30:00,STARBUCKS COFFEE #4,0.00,4.50,995.50,Main St\n" +
		"2025-03-02 12:00:00,UNKNOWN VENDOR,0.00,10.00,985.50,Main St\n"

	importLog, err := newPipeline(st).Ingest(ctx, strings.NewReader(csv), "march.csv")
	require.NoError(t, err)

	txns, err := st.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.True(t, txns[0].Classified)
	assert.False(t, txns[1].Classified)

	// Both runs are logged under the same run ID, newest first.
	logs, err := st.ProcessingLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, model.ProcessClassification, logs[0].Kind)
	assert.Equal(t, model.ProcessImport, logs[1].Kind)
	assert.Equal(t, importLog.RunID, logs[0].RunID)
	assert.Equal(t, 2, logs[0].RecordsProcessed)
	assert.Equal(t, 1, logs[0].RecordsSuccessful)
	assert.Equal(t, 1, logs[0].RecordsFailed)
}

func TestIngest_MissingHeaderIsFatal(t *testing.T) {
	ctx := context.Background()
	st := memory.New()

	// Pre-existing data must survive a parse-fatal import.
	existing := &model.Transaction{
		Date:        time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Description: "KEEP ME",
		Kind:        model.KindExpense,
		Amount:      decimal.NewFromInt(1),
	}
	require.NoError(t, st.CreateTransaction(ctx, existing))

	runLog, err := newPipeline(st).Ingest(ctx, strings.NewReader("not,a,bank,export\n"), "bogus.csv")
	require.Error(t, err)
	require.NotNil(t, runLog)
	assert.NotEmpty(t, runLog.ErrorMessage)

	txns, err := st.Transactions(ctx)
	require.NoError(t, err)
	assert.Len(t, txns, 1)

	logs, err := st.ProcessingLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].ErrorMessage, "missing required column")
}
