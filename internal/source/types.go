// Package source loads raw customer transactions from CSV files or MySQL.
package source

import "revscope/internal/model"

// LoadResult holds the raw transactions and the problems found on the way.
type LoadResult struct {
	Transactions []model.Transaction
	TotalRows    int
	DroppedRows  int
	Warnings     []model.Warning
}
