package accounting

import (
	"fmt"
	"time"

	"github.com/SscSPs/savings_ledger_app/internal/apperrors"
	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred       = decimal.NewFromInt(100)
	daysInYear    = decimal.NewFromInt(365)
	interestScale = hundred.Mul(daysInYear)
)

// Interest computes averageBalance * (annualRatePercent/100) * (dayCount/365),
// rounded half-to-even to 2 decimal places.
func Interest(averageBalance, annualRatePercent decimal.Decimal, dayCount int) (decimal.Decimal, error) {
	if averageBalance.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: average balance cannot be negative", apperrors.ErrInvalidArgument)
	}
	if annualRatePercent.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: interest rate cannot be negative", apperrors.ErrInvalidArgument)
	}
	if dayCount <= 0 {
		return decimal.Zero, fmt.Errorf("%w: day count must be positive, got %d", apperrors.ErrInvalidArgument, dayCount)
	}
	numerator := averageBalance.Mul(annualRatePercent).Mul(decimal.NewFromInt(int64(dayCount)))
	return QuoBank(numerator, interestScale, domain.MoneyPlaces), nil
}

// QuoBank divides n by d exactly and rounds the quotient half-to-even at the given places.
// Both operands must be non-negative and d non-zero.
func QuoBank(n, d decimal.Decimal, places int32) decimal.Decimal {
	q, r := n.QuoRem(d, places)
	if r.IsZero() {
		return q
	}
	unit := decimal.New(1, -places)
	// compare the remainder against half a unit of the divisor: 2r <=> d*unit
	switch r.Mul(decimal.NewFromInt(2)).Cmp(d.Mul(unit)) {
	case 1:
		return q.Add(unit)
	case 0:
		if q.Shift(places).Mod(decimal.NewFromInt(2)).IsZero() {
			return q
		}
		return q.Add(unit)
	default:
		return q
	}
}

// DayCount returns the inclusive number of calendar days between periodStart and periodEnd.
func DayCount(periodStart, periodEnd time.Time) (int, error) {
	start, end := domain.DateOf(periodStart), domain.DateOf(periodEnd)
	if end.Before(start) {
		return 0, fmt.Errorf("%w: period end %s precedes start %s", apperrors.ErrInvalidArgument,
			end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}

// ShouldCapitalize decides whether interest is due today.
// Every periodicity only fires on the first day of a month; DAILY therefore behaves like a monthly check.
// MONTHLY compares month numbers only, so the same month of a later year does not fire.
func ShouldCapitalize(lastCalculation, today time.Time, periodicity domain.Periodicity) bool {
	last, now := domain.DateOf(lastCalculation), domain.DateOf(today)
	if now.Day() != 1 {
		return false
	}
	switch periodicity {
	case domain.PeriodicityDaily:
		return true
	case domain.PeriodicityMonthly:
		return now.Month() != last.Month()
	case domain.PeriodicityQuarterly:
		return int(now.Month())%3 == 1 &&
			(int(now.Month())-int(last.Month()) >= 3 || now.Year() != last.Year())
	default:
		return false
	}
}

// NextCapitalizationDate returns the date interest would next be capitalized after reference.
func NextCapitalizationDate(reference time.Time, periodicity domain.Periodicity) (time.Time, error) {
	ref := domain.DateOf(reference)
	switch periodicity {
	case domain.PeriodicityDaily:
		return ref.AddDate(0, 0, 1), nil
	case domain.PeriodicityMonthly:
		return ref.AddDate(0, 1, 0), nil
	case domain.PeriodicityQuarterly:
		return ref.AddDate(0, 3, 0), nil
	default:
		return time.Time{}, fmt.Errorf("%w: unsupported periodicity %q", apperrors.ErrInvalidArgument, periodicity)
	}
}

// WithdrawalCap is the largest amount that may leave an account in one withdrawal.
func WithdrawalCap(balance, maxWithdrawalPercent decimal.Decimal) decimal.Decimal {
	return balance.Mul(maxWithdrawalPercent).Div(hundred)
}

// AverageBalance returns total/count rounded half-to-even to 2 places, or zero when count is zero.
func AverageBalance(total decimal.Decimal, count int64) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	if total.IsNegative() {
		return QuoBank(total.Neg(), decimal.NewFromInt(count), domain.MoneyPlaces).Neg()
	}
	return QuoBank(total, decimal.NewFromInt(count), domain.MoneyPlaces)
}

// RoundMoney rounds an amount half-to-even to storage precision.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(domain.MoneyPlaces)
}
