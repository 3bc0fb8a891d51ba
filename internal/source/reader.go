package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"revscope/internal/model"
)

// Date layouts tried in order. Day-first formats come before month-first
// to match the upstream data convention.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"2006/01/02",
	"2006.01.02",
	time.RFC3339,
}

// ReadCSV parses a transaction CSV with flexible, case-insensitive headers.
// Required columns (substring match): customer, date, amount. An optional
// transaction/order id column is used for deduplication.
//
// Rows with unparsable dates or amounts are dropped and reported as
// warnings; they never abort the load.
func ReadCSV(path string) (*LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return readCSV(f)
}

func readCSV(r io.Reader) (*LoadResult, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	cols := headerIndex(header)
	custIdx, ok := cols.find("customer")
	if !ok {
		return nil, &model.DataQualityError{Row: 1, Field: "customer", Reason: "column not found in header"}
	}
	dateIdx, ok := cols.find("date")
	if !ok {
		return nil, &model.DataQualityError{Row: 1, Field: "date", Reason: "column not found in header"}
	}
	amountIdx, ok := cols.find("amount")
	if !ok {
		return nil, &model.DataQualityError{Row: 1, Field: "amount", Reason: "column not found in header"}
	}
	idIdx, hasID := cols.findAny("transaction", "order", "invoice")

	result := &LoadResult{}
	row := 1 // header consumed

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row %d: %w", row+1, err)
		}
		row++
		result.TotalRows++

		customer := field(rec, custIdx)
		if customer == "" {
			result.DroppedRows++
			result.Warnings = append(result.Warnings, rowWarning(row, "empty customer id"))
			continue
		}

		dateStr := field(rec, dateIdx)
		date, ok := ParseDate(dateStr)
		if !ok {
			result.DroppedRows++
			result.Warnings = append(result.Warnings,
				rowWarning(row, fmt.Sprintf("unparsable date %q", dateStr)))
			continue
		}

		amountStr := strings.ReplaceAll(field(rec, amountIdx), ",", "")
		if amountStr == "" {
			// Missing monetary value: drop the row rather than invent one.
			result.DroppedRows++
			result.Warnings = append(result.Warnings, rowWarning(row, "missing amount"))
			continue
		}
		amount, err := strconv.ParseFloat(amountStr, 64)
		if err != nil {
			result.DroppedRows++
			result.Warnings = append(result.Warnings,
				rowWarning(row, fmt.Sprintf("unparsable amount %q", amountStr)))
			continue
		}

		txn := model.Transaction{
			CustomerID: customer,
			Date:       date,
			Amount:     amount,
		}
		if hasID {
			txn.ID = field(rec, idIdx)
		}
		if txn.ID == "" {
			txn.ID = fmt.Sprintf("row-%d", row)
		}

		result.Transactions = append(result.Transactions, txn)
	}

	return result, nil
}

// ParseDate tries each supported layout in order.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func rowWarning(row int, msg string) model.Warning {
	return model.Warning{Stage: "prep", Ref: fmt.Sprintf("row %d", row), Message: msg}
}

func field(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

type headerCols map[string]int

func headerIndex(header []string) headerCols {
	h := make(headerCols, len(header))
	for i, col := range header {
		h[strings.ToLower(strings.TrimSpace(col))] = i
	}
	return h
}

// find returns the first column whose name contains key.
func (h headerCols) find(key string) (int, bool) {
	best := -1
	for name, idx := range h {
		if strings.Contains(name, key) {
			if best == -1 || idx < best {
				best = idx
			}
		}
	}
	return best, best >= 0
}

func (h headerCols) findAny(keys ...string) (int, bool) {
	for _, key := range keys {
		if idx, ok := h.find(key); ok {
			return idx, true
		}
	}
	return -1, false
}
