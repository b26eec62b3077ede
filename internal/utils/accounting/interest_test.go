package accounting

import (
	"testing"
	"time"

	"github.com/SscSPs/savings_ledger_app/internal/apperrors"
	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestInterest(t *testing.T) {
	tests := []struct {
		name    string
		balance string
		rate    string
		days    int
		want    string
	}{
		{"full year", "1000.00", "3.00", 365, "30.00"},
		{"single day rounds down", "1000.00", "3.00", 1, "0.08"},
		{"zero balance", "0.00", "3.00", 30, "0.00"},
		{"zero rate", "5000.00", "0.000", 90, "0.00"},
		{"livret a ceiling over a quarter", "22950.00", "3.000", 92, "173.54"},
		// 36500 * 0.005 = 182.5 -> ties are resolved towards the even cent
		{"tie rounds to even (down)", "182.50", "1.000", 1, "0.00"},
		{"tie rounds to even (up)", "547.50", "1.000", 1, "0.02"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Interest(d(tt.balance), d(tt.rate), tt.days)
			require.NoError(t, err)
			assert.True(t, d(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestInterest_InvalidArguments(t *testing.T) {
	_, err := Interest(d("-1"), d("3"), 10)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = Interest(d("100"), d("-0.5"), 10)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = Interest(d("100"), d("3"), 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestQuoBank(t *testing.T) {
	assert.Equal(t, "0.12", QuoBank(d("0.125"), d("1"), 2).String())
	assert.Equal(t, "0.14", QuoBank(d("0.135"), d("1"), 2).String())
	assert.Equal(t, "0.13", QuoBank(d("0.1250000001"), d("1"), 2).String())
	assert.Equal(t, "0.33", QuoBank(d("1"), d("3"), 2).String())
	assert.Equal(t, "0.67", QuoBank(d("2"), d("3"), 2).String())
}

func TestDayCount(t *testing.T) {
	n, err := DayCount(date(2025, 1, 1), date(2025, 1, 31))
	require.NoError(t, err)
	assert.Equal(t, 31, n)

	n, err = DayCount(date(2025, 3, 10), date(2025, 3, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = DayCount(date(2024, 1, 1), date(2024, 12, 31))
	require.NoError(t, err)
	assert.Equal(t, 366, n)

	// time of day is ignored
	n, err = DayCount(time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC), time.Date(2025, 1, 2, 1, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = DayCount(date(2025, 2, 1), date(2025, 1, 31))
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestShouldCapitalize(t *testing.T) {
	tests := []struct {
		name        string
		last        time.Time
		today       time.Time
		periodicity domain.Periodicity
		want        bool
	}{
		{"daily fires on the first", date(2025, 1, 15), date(2025, 2, 1), domain.PeriodicityDaily, true},
		{"daily does not fire mid month", date(2025, 1, 15), date(2025, 1, 16), domain.PeriodicityDaily, false},
		{"daily fires on the first even within the same month", date(2025, 2, 1), date(2025, 2, 1), domain.PeriodicityDaily, true},
		{"monthly new month", date(2025, 1, 10), date(2025, 2, 1), domain.PeriodicityMonthly, true},
		{"monthly same month", date(2025, 2, 1), date(2025, 2, 1), domain.PeriodicityMonthly, false},
		{"monthly same month number next year", date(2024, 2, 1), date(2025, 2, 1), domain.PeriodicityMonthly, false},
		{"monthly not the first", date(2025, 1, 10), date(2025, 2, 2), domain.PeriodicityMonthly, false},
		{"quarterly april after january", date(2025, 1, 1), date(2025, 4, 1), domain.PeriodicityQuarterly, true},
		{"quarterly april after march", date(2025, 3, 1), date(2025, 4, 1), domain.PeriodicityQuarterly, false},
		{"quarterly january after previous year", date(2024, 12, 1), date(2025, 1, 1), domain.PeriodicityQuarterly, true},
		{"quarterly february is not a quarter start", date(2024, 10, 1), date(2025, 2, 1), domain.PeriodicityQuarterly, false},
		{"unknown periodicity", date(2025, 1, 1), date(2025, 2, 1), domain.Periodicity("WEEKLY"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldCapitalize(tt.last, tt.today, tt.periodicity))
		})
	}
}

func TestNextCapitalizationDate(t *testing.T) {
	ref := date(2025, 1, 31)

	next, err := NextCapitalizationDate(ref, domain.PeriodicityDaily)
	require.NoError(t, err)
	assert.Equal(t, date(2025, 2, 1), next)

	next, err = NextCapitalizationDate(date(2025, 1, 15), domain.PeriodicityMonthly)
	require.NoError(t, err)
	assert.Equal(t, date(2025, 2, 15), next)

	next, err = NextCapitalizationDate(date(2025, 1, 15), domain.PeriodicityQuarterly)
	require.NoError(t, err)
	assert.Equal(t, date(2025, 4, 15), next)

	_, err = NextCapitalizationDate(ref, domain.Periodicity(""))
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestWithdrawalCap(t *testing.T) {
	assert.True(t, d("75").Equal(WithdrawalCap(d("150.00"), d("50"))))
	assert.True(t, d("150").Equal(WithdrawalCap(d("150.00"), d("100"))))
	assert.True(t, WithdrawalCap(d("150.00"), d("0")).IsZero())
}

func TestAverageBalance(t *testing.T) {
	assert.True(t, d("33.33").Equal(AverageBalance(d("100.00"), 3)))
	assert.True(t, AverageBalance(d("100.00"), 0).IsZero())
	assert.True(t, d("-0.50").Equal(AverageBalance(d("-1.00"), 2)))
}
