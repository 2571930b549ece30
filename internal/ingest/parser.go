// Package ingest parses bank-transaction CSV exports and loads them
// into the store as a full replacement of the current transaction set.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the fixed timestamp layout of bank exports.
const DateFormat = "2006-01-02 15:04:05"

// Required CSV header names. Columns are located by header, not position.
const (
	colDate       = "transaction_datetime"
	colDesc       = "description"
	colDeposit    = "deposit_amount"
	colWithdrawal = "withdrawal_amount"
	colBalance    = "balance_after"
	colBranch     = "branch"
)

var requiredColumns = []string{colDate, colDesc, colDeposit, colWithdrawal, colBalance, colBranch}

// Row is one successfully parsed bank statement line.
type Row struct {
	Date         time.Time
	Description  string
	Deposit      decimal.Decimal
	Withdrawal   decimal.Decimal
	BalanceAfter decimal.Decimal
	Branch       string
}

// RowError records a line that could not be parsed. The line number is
// 1-based and counts the header.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

// Parse reads a bank CSV export. Malformed lines are collected as
// RowErrors and do not stop parsing; a missing required header or an
// unreadable source fails the whole parse. Timestamps carry loc.
func Parse(r io.Reader, loc *time.Location) ([]Row, []RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("empty CSV: missing header row")
	}

	cols, err := headerIndex(records[0])
	if err != nil {
		return nil, nil, err
	}

	var rows []Row
	var rowErrs []RowError
	for i, rec := range records[1:] {
		line := i + 2
		row, err := parseRow(rec, cols, loc)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: err})
			continue
		}
		rows = append(rows, row)
	}
	return rows, rowErrs, nil
}

// headerIndex maps required column names to their positions.
func headerIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return cols, nil
}

func parseRow(rec []string, cols map[string]int, loc *time.Location) (Row, error) {
	field := func(name string) (string, error) {
		idx := cols[name]
		if idx >= len(rec) {
			return "", fmt.Errorf("missing field %q", name)
		}
		return rec[idx], nil
	}

	dateStr, err := field(colDate)
	if err != nil {
		return Row{}, err
	}
	date, err := time.ParseInLocation(DateFormat, dateStr, loc)
	if err != nil {
		return Row{}, fmt.Errorf("parsing date %q: %w", dateStr, err)
	}

	desc, err := field(colDesc)
	if err != nil {
		return Row{}, err
	}

	deposit, err := amountField(rec, cols, colDeposit)
	if err != nil {
		return Row{}, err
	}
	withdrawal, err := amountField(rec, cols, colWithdrawal)
	if err != nil {
		return Row{}, err
	}
	balance, err := amountField(rec, cols, colBalance)
	if err != nil {
		return Row{}, err
	}

	branch, err := field(colBranch)
	if err != nil {
		return Row{}, err
	}

	return Row{
		Date:         date,
		Description:  desc,
		Deposit:      deposit,
		Withdrawal:   withdrawal,
		BalanceAfter: balance,
		Branch:       branch,
	}, nil
}

func amountField(rec []string, cols map[string]int, name string) (decimal.Decimal, error) {
	idx := cols[name]
	if idx >= len(rec) {
		return decimal.Decimal{}, fmt.Errorf("missing field %q", name)
	}
	d, err := decimal.NewFromString(rec[idx])
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing %s %q: %w", name, rec[idx], err)
	}
	return d, nil
}
