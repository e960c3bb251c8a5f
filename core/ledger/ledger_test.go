package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rav6044/smartpark/core/model"
)

func TestAggregateEmpty(t *testing.T) {
	l := New()
	agg := l.Aggregate()
	assert.Equal(t, Aggregate{}, agg)
	assert.Empty(t, l.Entries())
}

func TestAppendAndAggregate(t *testing.T) {
	l := New()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	l.Append(NewEntry("AB1", model.CategoryCar, "C-01", base, base.Add(time.Hour), 1, 10))
	l.Append(NewEntry("AB2", model.CategoryBike, "B-01", base, base.Add(3*time.Hour), 3, 7))

	agg := l.Aggregate()
	assert.Equal(t, 2, agg.Count)
	assert.Equal(t, 17.0, agg.TotalFee)
	assert.Equal(t, 2.0, agg.AvgDurationHours)
	assert.Equal(t, 2, l.Len())
}

func TestNewEntryAssignsReceiptID(t *testing.T) {
	now := time.Now()
	a := NewEntry("AB1", model.CategoryCar, "C-01", now, now, 1, 10)
	b := NewEntry("AB1", model.CategoryCar, "C-01", now, now, 1, 10)
	assert.NotEmpty(t, a.ReceiptID)
	assert.NotEqual(t, a.ReceiptID, b.ReceiptID)
}

func TestEntriesReturnsCopy(t *testing.T) {
	l := New()
	now := time.Now()
	l.Append(NewEntry("AB1", model.CategoryCar, "C-01", now, now, 1, 10))

	out := l.Entries()
	out[0].Fee = 999
	assert.Equal(t, 10.0, l.Entries()[0].Fee)
}
