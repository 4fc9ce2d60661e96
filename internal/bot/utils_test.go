package bot

import (
	"testing"
	"time"

	"renthour-bot/internal/pricing"
	"renthour-bot/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHours(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"5", 5, false},
		{"4,5", 4.5, false},
		{"4.5", 4.5, false},
		{" 12 ", 12, false},
		{"168", 168, false},
		{"169", 0, true},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		hours, err := ParseHours(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, hours, "input %q", tt.input)
	}
}

func TestFormatPriceRange(t *testing.T) {
	table := pricing.PriceTable{
		"3":     300,
		"6":     550,
		"12":    1000,
		"24":    1800,
		"else":  100,
		"night": 1500,
	}

	text := FormatPriceRange("Стандартный аккаунт", pricing.BuildPriceRange(table))

	assert.Contains(t, text, "Стандартный аккаунт")
	assert.Contains(t, text, "3 ч. — 300.00 ₽ (100.00 ₽/час)")
	assert.Contains(t, text, "24 ч. — 1 800.00 ₽ (75.00 ₽/час)")
	assert.Contains(t, text, "100.00 ₽/час")
	assert.Contains(t, text, "🌙 Ночь — 1 500.00 ₽")
}

func TestFormatPriceRangeUnsetTier(t *testing.T) {
	table := pricing.PriceTable{
		"3":    0,
		"else": 90,
	}

	text := FormatPriceRange("Базовый", pricing.BuildPriceRange(table))

	assert.Contains(t, text, "3 ч. — по почасовой ставке")
	assert.NotContains(t, text, "Ночь")
}

func TestFormatQuoteWithSavings(t *testing.T) {
	text := FormatQuote(UserState{
		ListingTitle:    "Стандартный аккаунт",
		Hours:           24,
		Price:           1800,
		OriginalPrice:   2400,
		Savings:         600,
		DiscountPercent: 25,
	})

	assert.Contains(t, text, "Длительность: 24 ч.")
	assert.Contains(t, text, "К оплате: 1 800.00 ₽")
	assert.Contains(t, text, "Ваша выгода: 600.00 ₽")
	assert.Contains(t, text, "скидка 25%")
}

func TestFormatQuoteNegativeSavings(t *testing.T) {
	// A fixed tier priced above the hourly formula surfaces a warning
	// instead of hiding the markup.
	text := FormatQuote(UserState{
		ListingTitle:  "Базовый",
		Hours:         3,
		Price:         500,
		OriginalPrice: 300,
		Savings:       -200,
	})

	assert.Contains(t, text, "⚠️ Тариф дороже почасовой ставки на 200.00 ₽")
	assert.NotContains(t, text, "выгода")
}

func TestFormatQuoteNight(t *testing.T) {
	text := FormatQuote(UserState{
		ListingTitle: "Стандартный аккаунт",
		Hours:        12,
		Night:        true,
		Price:        1500,
	})

	assert.Contains(t, text, "🌙 Ночная аренда")
	assert.NotContains(t, text, "Длительность")
	assert.Contains(t, text, "1 500.00 ₽")
}

func TestFormatQuoteFractionalHours(t *testing.T) {
	text := FormatQuote(UserState{
		ListingTitle: "Базовый",
		Hours:        4.5,
		Price:        450,
	})

	assert.Contains(t, text, "Длительность: 4.5 ч.")
}

func TestFormatOrderNotification(t *testing.T) {
	order := storage.Order{
		ID:            42,
		UserID:        123456,
		ListingTitle:  "Стандартный аккаунт",
		Hours:         24,
		Price:         1800,
		OriginalPrice: 2400,
		Savings:       600,
		Status:        storage.OrderStatusPaid,
		CreatedAt:     time.Date(2025, 3, 14, 15, 4, 0, 0, time.UTC),
	}

	text := FormatOrderNotification(order)

	assert.Contains(t, text, "Новая аренда #42")
	assert.Contains(t, text, "Длительность: 24 ч.")
	assert.Contains(t, text, "Пользователь: 123456")
	assert.Contains(t, text, "14.03.2025 15:04")

	order.Night = true
	assert.Contains(t, FormatOrderNotification(order), "Длительность: ночь")
}

func TestFormatQuoteSummary(t *testing.T) {
	text := FormatQuoteSummary(storage.Order{
		ID:           7,
		ListingTitle: "Базовый",
		Hours:        6,
		Price:        550,
	})

	assert.Contains(t, text, "Заказ #7")
	assert.Contains(t, text, "Длительность: 6 ч.")
	assert.Contains(t, text, "Оплачено: 550.00 ₽")
}
