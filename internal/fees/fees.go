// Package fees prices a trade from its notional amount. The schedule is
// the A-share retail one: transfer fee, brokerage commission with a 5
// yuan floor, and stamp duty on the sell side only. Every sub-fee is
// rounded to cents before the parts are summed, so the combined fees are
// exact and reproducible.
package fees

import "github.com/shopspring/decimal"

var (
	transferFeeRate = decimal.NewFromFloat(0.00001)
	commissionRate  = decimal.NewFromFloat(0.0003)
	stampDutyRate   = decimal.NewFromFloat(0.0005)
	commissionFloor = decimal.NewFromInt(5)
)

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// TransferFee is amount * 0.001%.
func TransferFee(amount decimal.Decimal) decimal.Decimal {
	return round2(amount.Mul(transferFeeRate))
}

// Commission is amount * 0.03% with a floor of 5. The floor applies even
// when the amount is zero; callers guard against pricing empty trades.
func Commission(amount decimal.Decimal) decimal.Decimal {
	return round2(decimal.Max(amount.Mul(commissionRate), commissionFloor))
}

// StampDuty is amount * 0.05%, charged on the sell side only.
func StampDuty(amount decimal.Decimal) decimal.Decimal {
	return round2(amount.Mul(stampDutyRate))
}

// BuyFee is the combined cost of buying: transfer fee plus commission.
func BuyFee(amount decimal.Decimal) decimal.Decimal {
	return round2(TransferFee(amount).Add(Commission(amount)))
}

// SellFee is the combined cost of selling: transfer fee plus commission
// plus stamp duty.
func SellFee(amount decimal.Decimal) decimal.Decimal {
	return round2(TransferFee(amount).Add(Commission(amount)).Add(StampDuty(amount)))
}
