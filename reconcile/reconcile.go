// Package reconcile holds the counting core: matching scans against sheet
// lines, classifying lines against expected quantities and stamping sheet
// completion. It never touches storage; callers load lines, apply an
// operation and persist the result.
package reconcile

import (
	"errors"
	"strings"
	"time"

	"stocktake/models"
)

var (
	// ErrCodeNotFound means the scanned code matches no line on the sheet.
	// The sheet is left untouched.
	ErrCodeNotFound = errors.New("code not found on sheet")

	// ErrInvalidQuantity means the scan quantity was not a positive integer.
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")

	// ErrAlreadyCompleted guards against completing a sheet twice.
	ErrAlreadyCompleted = errors.New("sheet is already completed")

	// ErrIncompleteLines blocks completion while lines remain uncounted.
	ErrIncompleteLines = errors.New("sheet has uncounted lines")
)

// Status classifies a single line against its expected quantity.
type Status string

const (
	StatusUncounted Status = "uncounted"
	StatusShort     Status = "short"
	StatusOver      Status = "over"
	StatusExact     Status = "exact"
)

// Outcome describes a successful scan for UI feedback.
type Outcome struct {
	Code        string
	ProductName string
	Added       int64
	Total       int64
	Expected    int64
}

// ApplyScan accumulates qty onto the line whose code matches the scanned
// input. Matching is exact and case sensitive; only surrounding whitespace is
// stripped from the input. On a miss no line is modified. Returns the index
// of the updated line.
func ApplyScan(lines []models.SheetLine, code string, qty int64, now time.Time) (int, Outcome, error) {
	if qty <= 0 {
		return -1, Outcome{}, ErrInvalidQuantity
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return -1, Outcome{}, ErrCodeNotFound
	}
	for i := range lines {
		if lines[i].Code != code {
			continue
		}
		total := lines[i].Counted() + qty
		lines[i].CountedQty = &total
		scanAt := now
		lines[i].LastScanAt = &scanAt
		return i, Outcome{
			Code:        lines[i].Code,
			ProductName: lines[i].ProductName,
			Added:       qty,
			Total:       total,
			Expected:    lines[i].ExpectedQty,
		}, nil
	}
	return -1, Outcome{}, ErrCodeNotFound
}

// Classify is a total function of (counted, expected). A line counted to zero
// is not the same as a line never counted.
func Classify(line models.SheetLine) Status {
	if line.CountedQty == nil {
		return StatusUncounted
	}
	switch {
	case *line.CountedQty < line.ExpectedQty:
		return StatusShort
	case *line.CountedQty > line.ExpectedQty:
		return StatusOver
	default:
		return StatusExact
	}
}

// Summary tallies line classifications for one sheet.
type Summary struct {
	Total     int
	Exact     int
	Short     int
	Over      int
	Uncounted int
}

// Summarize classifies every line in one pass.
// Exact+Short+Over+Uncounted always equals Total.
func Summarize(lines []models.SheetLine) Summary {
	s := Summary{Total: len(lines)}
	for _, line := range lines {
		switch Classify(line) {
		case StatusExact:
			s.Exact++
		case StatusShort:
			s.Short++
		case StatusOver:
			s.Over++
		default:
			s.Uncounted++
		}
	}
	return s
}

// Complete stamps the sheet completed. When requireAllCounted is set (goods
// receipts), every line must have been scanned at least once; count sheets
// may be completed with gaps.
func Complete(sheet *models.Sheet, lines []models.SheetLine, completedBy string, now time.Time, requireAllCounted bool) error {
	if sheet.Completed() {
		return ErrAlreadyCompleted
	}
	if requireAllCounted {
		for _, line := range lines {
			if line.CountedQty == nil {
				return ErrIncompleteLines
			}
		}
	}
	sheet.Status = models.SheetStatusCompleted
	sheet.CompletedBy = completedBy
	completedAt := now
	sheet.CompletedAt = &completedAt
	return nil
}

// RequireAllCounted returns the completion coverage policy for a sheet kind.
func RequireAllCounted(kind string) bool {
	return kind == models.SheetKindReceipt
}
