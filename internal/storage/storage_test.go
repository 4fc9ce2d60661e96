package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingPriceTable(t *testing.T) {
	listing := Listing{
		PriceJSON: []byte(`{"3":300,"6":550,"12":1000,"24":1800,"else":100,"night":1500}`),
	}

	table, err := listing.PriceTable()
	require.NoError(t, err)

	assert.Equal(t, 300.0, table["3"])
	assert.Equal(t, 100.0, table.HourlyRate())
	assert.Equal(t, 1500.0, table.Night())
}

func TestListingPriceTableMalformed(t *testing.T) {
	listing := Listing{PriceJSON: []byte(`{"3":`)}

	_, err := listing.PriceTable()
	assert.Error(t, err)
}

func TestOrderExportRow(t *testing.T) {
	order := Order{
		ID:            42,
		UserID:        123456,
		ListingID:     "a1b2",
		Hours:         24,
		Night:         true,
		Price:         1800,
		OriginalPrice: 2400,
		Savings:       600,
		Status:        OrderStatusPaid,
		CreatedAt:     time.Date(2025, 3, 14, 15, 4, 0, 0, time.UTC),
	}

	row := orderExportRow(order)
	require.Len(t, row, len(orderExportHeaders))

	assert.Equal(t, int64(42), row[0])
	assert.Equal(t, "yes", row[4])
	assert.Equal(t, 1800.0, row[5])
	assert.Equal(t, "2025-03-14 15:04", row[9])
}
