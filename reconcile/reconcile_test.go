package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktake/models"
)

func qty(v int64) *int64 { return &v }

func testLines() []models.SheetLine {
	return []models.SheetLine{
		{Code: "PRD001", ProductName: "Widget", ExpectedQty: 10},
		{Code: "PRD002", ProductName: "Gadget", ExpectedQty: 5},
	}
}

func TestApplyScanAccumulates(t *testing.T) {
	lines := testLines()
	now := time.Now()

	idx, out, err := ApplyScan(lines, "PRD001", 4, now)
	require.NoError(t, err)
	require.Equal(t, 0, idx)
	assert.Equal(t, int64(4), out.Total)

	_, out, err = ApplyScan(lines, "PRD001", 7, now)
	require.NoError(t, err)
	assert.Equal(t, int64(11), out.Total)
	assert.Equal(t, int64(10), out.Expected)
	require.NotNil(t, lines[0].CountedQty)
	assert.Equal(t, int64(11), *lines[0].CountedQty)
	assert.Equal(t, StatusOver, Classify(lines[0]))
}

func TestApplyScanOrderIndependent(t *testing.T) {
	now := time.Now()

	a := testLines()
	_, _, err := ApplyScan(a, "PRD001", 5, now)
	require.NoError(t, err)
	_, _, err = ApplyScan(a, "PRD001", 3, now)
	require.NoError(t, err)

	b := testLines()
	_, _, err = ApplyScan(b, "PRD001", 3, now)
	require.NoError(t, err)
	_, _, err = ApplyScan(b, "PRD001", 5, now)
	require.NoError(t, err)

	assert.Equal(t, int64(8), a[0].Counted())
	assert.Equal(t, a[0].Counted(), b[0].Counted())
}

func TestApplyScanUnknownCodeLeavesLinesUntouched(t *testing.T) {
	lines := testLines()
	now := time.Now()
	_, _, err := ApplyScan(lines, "PRD001", 11, now)
	require.NoError(t, err)

	idx, _, err := ApplyScan(lines, "PRD999", 1, now)
	require.ErrorIs(t, err, ErrCodeNotFound)
	assert.Equal(t, -1, idx)
	assert.Equal(t, int64(11), lines[0].Counted())
	assert.Nil(t, lines[1].CountedQty)
}

func TestApplyScanTrimsInputOnly(t *testing.T) {
	lines := testLines()
	_, out, err := ApplyScan(lines, "  PRD002  ", 2, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "PRD002", out.Code)

	// Matching stays case sensitive.
	_, _, err = ApplyScan(lines, "prd002", 1, time.Now())
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestApplyScanRejectsNonPositiveQty(t *testing.T) {
	lines := testLines()
	_, _, err := ApplyScan(lines, "PRD001", 0, time.Now())
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, _, err = ApplyScan(lines, "PRD001", -3, time.Now())
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Nil(t, lines[0].CountedQty)
}

func TestClassifyDistinguishesCountedZeroFromUncounted(t *testing.T) {
	uncounted := models.SheetLine{Code: "A", ExpectedQty: 3}
	countedZero := models.SheetLine{Code: "A", ExpectedQty: 3, CountedQty: qty(0)}

	assert.Equal(t, StatusUncounted, Classify(uncounted))
	assert.Equal(t, StatusShort, Classify(countedZero))
}

func TestClassifyIsTotal(t *testing.T) {
	cases := []struct {
		counted  *int64
		expected int64
		want     Status
	}{
		{nil, 5, StatusUncounted},
		{qty(3), 5, StatusShort},
		{qty(5), 5, StatusExact},
		{qty(8), 5, StatusOver},
		{qty(0), 0, StatusExact},
		{nil, 0, StatusUncounted},
	}
	for _, tc := range cases {
		got := Classify(models.SheetLine{CountedQty: tc.counted, ExpectedQty: tc.expected})
		assert.Equal(t, tc.want, got)
	}
}

func TestSummarizeBucketsSumToTotal(t *testing.T) {
	lines := []models.SheetLine{
		{Code: "A", ExpectedQty: 5, CountedQty: qty(5)},
		{Code: "B", ExpectedQty: 5, CountedQty: qty(2)},
		{Code: "C", ExpectedQty: 5, CountedQty: qty(9)},
		{Code: "D", ExpectedQty: 5},
		{Code: "E", ExpectedQty: 1, CountedQty: qty(1)},
	}
	s := Summarize(lines)
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 2, s.Exact)
	assert.Equal(t, 1, s.Short)
	assert.Equal(t, 1, s.Over)
	assert.Equal(t, 1, s.Uncounted)
	assert.Equal(t, s.Total, s.Exact+s.Short+s.Over+s.Uncounted)
}

func TestCompleteStampsSheet(t *testing.T) {
	sheet := models.Sheet{Kind: models.SheetKindCount, Status: models.SheetStatusPending}
	lines := testLines()
	now := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)

	err := Complete(&sheet, lines, "depo1", now, RequireAllCounted(sheet.Kind))
	require.NoError(t, err)
	assert.Equal(t, models.SheetStatusCompleted, sheet.Status)
	assert.Equal(t, "depo1", sheet.CompletedBy)
	require.NotNil(t, sheet.CompletedAt)
	assert.Equal(t, now, *sheet.CompletedAt)
}

func TestCompleteRejectsSecondCompletion(t *testing.T) {
	sheet := models.Sheet{Kind: models.SheetKindCount, Status: models.SheetStatusPending}
	require.NoError(t, Complete(&sheet, nil, "depo1", time.Now(), false))

	err := Complete(&sheet, nil, "depo2", time.Now(), false)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.Equal(t, "depo1", sheet.CompletedBy)
}

func TestCompleteReceiptRequiresFullCoverage(t *testing.T) {
	sheet := models.Sheet{Kind: models.SheetKindReceipt, Status: models.SheetStatusPending}
	lines := testLines()

	err := Complete(&sheet, lines, "depo1", time.Now(), RequireAllCounted(sheet.Kind))
	require.ErrorIs(t, err, ErrIncompleteLines)
	assert.Equal(t, models.SheetStatusPending, sheet.Status)

	// Any scan that defines a counted quantity clears the block.
	now := time.Now()
	_, _, err = ApplyScan(lines, "PRD001", 10, now)
	require.NoError(t, err)
	_, _, err = ApplyScan(lines, "PRD002", 5, now)
	require.NoError(t, err)

	require.NoError(t, Complete(&sheet, lines, "depo1", now, true))
	assert.True(t, sheet.Completed())
}

func TestCompleteCountSheetAllowsGaps(t *testing.T) {
	sheet := models.Sheet{Kind: models.SheetKindCount, Status: models.SheetStatusPending}
	lines := testLines()
	lines[0].CountedQty = qty(10)

	require.NoError(t, Complete(&sheet, lines, "depo1", time.Now(), RequireAllCounted(sheet.Kind)))
	assert.True(t, sheet.Completed())
}
