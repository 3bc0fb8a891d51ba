// Package pipeline turns raw transactions into segments, forecasts,
// scenario ROI simulations, and risk metrics.
package pipeline

import (
	"fmt"
	"sort"
	"time"

	"revscope/internal/model"
)

// PrepResult is the cleaned, canonical transaction table.
type PrepResult struct {
	Transactions []model.Transaction
	Customers    []model.CustomerRecord
	Reference    time.Time // recency anchor: latest transaction date
	Deduplicated int
	Warnings     []model.Warning
}

// Prepare deduplicates and orders raw transactions and groups them per
// customer. Duplicate transaction ids keep the last occurrence. The
// reference date is the latest transaction date unless overridden.
func Prepare(raw []model.Transaction, referenceOverride time.Time) (*PrepResult, error) {
	if len(raw) == 0 {
		return nil, &model.DataQualityError{Field: "transactions", Reason: "no usable rows after cleaning"}
	}

	result := &PrepResult{}

	byID := make(map[string]model.Transaction, len(raw))
	order := make([]string, 0, len(raw))
	for _, t := range raw {
		if _, seen := byID[t.ID]; seen {
			result.Deduplicated++
			result.Warnings = append(result.Warnings, model.Warning{
				Stage:   "prep",
				Ref:     t.ID,
				Message: "duplicate transaction id, keeping last occurrence",
			})
		} else {
			order = append(order, t.ID)
		}
		byID[t.ID] = t
	}

	cleaned := make([]model.Transaction, 0, len(byID))
	for _, id := range order {
		cleaned = append(cleaned, byID[id])
	}
	sort.Slice(cleaned, func(i, j int) bool {
		if !cleaned[i].Date.Equal(cleaned[j].Date) {
			return cleaned[i].Date.Before(cleaned[j].Date)
		}
		return cleaned[i].ID < cleaned[j].ID
	})
	result.Transactions = cleaned

	reference := referenceOverride
	if reference.IsZero() {
		reference = cleaned[len(cleaned)-1].Date
	}
	result.Reference = reference

	byCustomer := make(map[string][]model.Transaction)
	for _, t := range cleaned {
		byCustomer[t.CustomerID] = append(byCustomer[t.CustomerID], t)
	}

	ids := make([]string, 0, len(byCustomer))
	for id := range byCustomer {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result.Customers = make([]model.CustomerRecord, 0, len(ids))
	for _, id := range ids {
		result.Customers = append(result.Customers, model.CustomerRecord{
			CustomerID:   id,
			Transactions: byCustomer[id],
		})
	}

	return result, nil
}

// MonthKey formats a month bucket identifier.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// MonthStart truncates a date to the first of its month (UTC).
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthlyRevenue buckets transactions into a contiguous monthly revenue
// series from the first to the last observed month. Months with no
// transactions appear as zeros so the series has no gaps.
func MonthlyRevenue(txns []model.Transaction) ([]time.Time, []float64) {
	if len(txns) == 0 {
		return nil, nil
	}

	totals := make(map[string]float64)
	first := MonthStart(txns[0].Date)
	last := first
	for _, t := range txns {
		m := MonthStart(t.Date)
		if m.Before(first) {
			first = m
		}
		if m.After(last) {
			last = m
		}
		totals[MonthKey(m)] += t.Amount
	}

	var months []time.Time
	var values []float64
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
		values = append(values, totals[MonthKey(m)])
	}
	return months, values
}
