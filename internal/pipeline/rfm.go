package pipeline

import (
	"revscope/internal/model"
)

// ComputeRFM derives recency/frequency/monetary features per customer.
// Recency is whole days between the customer's last transaction and the
// reference date, so a single-transaction customer still gets valid
// features. Output follows the customer ordering of the prep stage.
func ComputeRFM(prep *PrepResult) []model.RFMFeatures {
	features := make([]model.RFMFeatures, 0, len(prep.Customers))

	for _, c := range prep.Customers {
		var (
			total float64
			last  = c.Transactions[0].Date
		)
		for _, t := range c.Transactions {
			total += t.Amount
			if t.Date.After(last) {
				last = t.Date
			}
		}

		recency := int(prep.Reference.Sub(last).Hours() / 24)
		if recency < 0 {
			recency = 0
		}

		n := len(c.Transactions)
		features = append(features, model.RFMFeatures{
			CustomerID:  c.CustomerID,
			RecencyDays: recency,
			Frequency:   n,
			Monetary:    total,
			AvgSpend:    total / float64(n),
		})
	}

	return features
}
