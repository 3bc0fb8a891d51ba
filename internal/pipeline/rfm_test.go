package pipeline

import (
	"testing"

	"revscope/internal/model"
)

func TestComputeRFM_SingleTransactionCustomer(t *testing.T) {
	prep := &PrepResult{
		Reference: day(2024, 1, 10),
		Customers: []model.CustomerRecord{
			{CustomerID: "solo", Transactions: []model.Transaction{
				txn("t1", "solo", day(2024, 1, 7), 120),
			}},
		},
	}

	features := ComputeRFM(prep)
	if len(features) != 1 {
		t.Fatalf("len(features) = %d, want 1", len(features))
	}

	f := features[0]
	if f.RecencyDays != 3 {
		t.Errorf("RecencyDays = %d, want 3", f.RecencyDays)
	}
	if f.Frequency != 1 {
		t.Errorf("Frequency = %d, want 1", f.Frequency)
	}
	if f.Monetary != 120 {
		t.Errorf("Monetary = %v, want 120", f.Monetary)
	}
	if f.AvgSpend != 120 {
		t.Errorf("AvgSpend = %v, want 120", f.AvgSpend)
	}
}

func TestComputeRFM_AggregatesPerCustomer(t *testing.T) {
	prep := &PrepResult{
		Reference: day(2024, 3, 1),
		Customers: []model.CustomerRecord{
			{CustomerID: "alice", Transactions: []model.Transaction{
				txn("t1", "alice", day(2024, 1, 1), 100),
				txn("t2", "alice", day(2024, 2, 15), 50),
			}},
		},
	}

	f := ComputeRFM(prep)[0]
	if f.Frequency != 2 {
		t.Errorf("Frequency = %d, want 2", f.Frequency)
	}
	if f.Monetary != 150 {
		t.Errorf("Monetary = %v, want 150", f.Monetary)
	}
	if f.AvgSpend != 75 {
		t.Errorf("AvgSpend = %v, want 75", f.AvgSpend)
	}
	if f.RecencyDays != 15 {
		t.Errorf("RecencyDays = %d, want 15 (from last transaction)", f.RecencyDays)
	}
}

func TestComputeRFM_FutureTransactionClampsToZero(t *testing.T) {
	prep := &PrepResult{
		Reference: day(2024, 1, 1),
		Customers: []model.CustomerRecord{
			{CustomerID: "early", Transactions: []model.Transaction{
				txn("t1", "early", day(2024, 1, 5), 10),
			}},
		},
	}

	f := ComputeRFM(prep)[0]
	if f.RecencyDays != 0 {
		t.Errorf("RecencyDays = %d, want 0 (clamped)", f.RecencyDays)
	}
}
