package source

import (
	"strings"
	"testing"
	"time"
)

func parseCSV(t *testing.T, data string) *LoadResult {
	t.Helper()
	result, err := readCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return result
}

func TestReadCSV_FlexibleHeaders(t *testing.T) {
	result := parseCSV(t,
		"InvoiceNo,CustomerID,InvoiceDate,TotalAmount\n"+
			"INV-1,alice,15/01/2024,120.50\n"+
			"INV-2,bob,2024-01-16,80\n")

	if len(result.Transactions) != 2 {
		t.Fatalf("len(Transactions) = %d, want 2", len(result.Transactions))
	}
	if result.Transactions[0].ID != "INV-1" {
		t.Errorf("ID = %q, want INV-1 (from invoice column)", result.Transactions[0].ID)
	}
	if result.Transactions[0].CustomerID != "alice" {
		t.Errorf("CustomerID = %q, want alice", result.Transactions[0].CustomerID)
	}

	// 15/01/2024 is day-first.
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if !result.Transactions[0].Date.Equal(want) {
		t.Errorf("Date = %v, want %v (day-first)", result.Transactions[0].Date, want)
	}
}

func TestReadCSV_MissingColumn(t *testing.T) {
	_, err := readCSV(strings.NewReader("CustomerID,TotalAmount\nalice,10\n"))
	if err == nil {
		t.Fatal("expected error for missing date column")
	}
}

func TestReadCSV_DropsBadRowsWithWarnings(t *testing.T) {
	result := parseCSV(t,
		"customer_id,purchase_date,amount\n"+
			"alice,2024-01-10,100\n"+
			"bob,garbage,50\n"+
			"carol,2024-01-12,not-a-number\n"+
			",2024-01-13,25\n"+
			"dave,2024-01-14,75\n")

	if result.TotalRows != 5 {
		t.Errorf("TotalRows = %d, want 5", result.TotalRows)
	}
	if result.DroppedRows != 3 {
		t.Errorf("DroppedRows = %d, want 3", result.DroppedRows)
	}
	if len(result.Warnings) != 3 {
		t.Errorf("len(Warnings) = %d, want 3", len(result.Warnings))
	}
	if len(result.Transactions) != 2 {
		t.Errorf("len(Transactions) = %d, want 2", len(result.Transactions))
	}
}

func TestReadCSV_SyntheticIDsWithoutIDColumn(t *testing.T) {
	result := parseCSV(t,
		"customer,date,amount\n"+
			"alice,2024-01-10,100\n"+
			"bob,2024-01-11,50\n")

	if result.Transactions[0].ID != "row-2" {
		t.Errorf("ID = %q, want row-2", result.Transactions[0].ID)
	}
	if result.Transactions[1].ID != "row-3" {
		t.Errorf("ID = %q, want row-3", result.Transactions[1].ID)
	}
}

func TestReadCSV_ThousandsSeparatorInAmount(t *testing.T) {
	result := parseCSV(t,
		"customer,date,amount\n"+
			`alice,2024-01-10,"1,250.75"`+"\n")

	if len(result.Transactions) != 1 {
		t.Fatalf("len(Transactions) = %d, want 1", len(result.Transactions))
	}
	if result.Transactions[0].Amount != 1250.75 {
		t.Errorf("Amount = %v, want 1250.75", result.Transactions[0].Amount)
	}
}

func TestParseDate_Layouts(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"05/03/2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"2024/03/05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got, ok := ParseDate(c.in)
		if !ok {
			t.Errorf("ParseDate(%q) failed", c.in)
			continue
		}
		if !got.Equal(c.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", c.in, got, c.want)
		}
	}

	if _, ok := ParseDate("yesterday"); ok {
		t.Error("ParseDate accepted garbage input")
	}
}
