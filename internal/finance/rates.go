package finance

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ssemujju/sokoyetu-backend/pkg/config"
)

// Rates holds the platform's commission and VAT constants. The seller
// commission (10%) and the admin-stats commission (15%) are deliberately
// separate knobs: the two dashboards have always reported different rates
// and unifying them is a product decision, not an engineering one.
type Rates struct {
	SellerCommission     decimal.Decimal
	SellerPayout         decimal.Decimal
	AdminStatsCommission decimal.Decimal
	VAT                  decimal.Decimal
}

// DefaultRates returns the production constants.
func DefaultRates() Rates {
	return Rates{
		SellerCommission:     decimal.RequireFromString("0.10"),
		SellerPayout:         decimal.RequireFromString("0.90"),
		AdminStatsCommission: decimal.RequireFromString("0.15"),
		VAT:                  decimal.RequireFromString("0.18"),
	}
}

// RatesFromConfig parses the configured rate strings.
func RatesFromConfig(cfg config.FinanceConfig) (Rates, error) {
	sellerCommission, err := decimal.NewFromString(cfg.SellerCommissionRate)
	if err != nil {
		return Rates{}, fmt.Errorf("parsing seller commission rate: %w", err)
	}
	sellerPayout, err := decimal.NewFromString(cfg.SellerPayoutRate)
	if err != nil {
		return Rates{}, fmt.Errorf("parsing seller payout rate: %w", err)
	}
	adminCommission, err := decimal.NewFromString(cfg.AdminStatsCommissionRate)
	if err != nil {
		return Rates{}, fmt.Errorf("parsing admin stats commission rate: %w", err)
	}
	vat, err := decimal.NewFromString(cfg.VATRate)
	if err != nil {
		return Rates{}, fmt.Errorf("parsing vat rate: %w", err)
	}
	if !sellerCommission.Add(sellerPayout).Equal(decimal.NewFromInt(1)) {
		return Rates{}, fmt.Errorf("seller commission %s and payout %s must sum to 1", sellerCommission, sellerPayout)
	}
	return Rates{
		SellerCommission:     sellerCommission,
		SellerPayout:         sellerPayout,
		AdminStatsCommission: adminCommission,
		VAT:                  vat,
	}, nil
}

// Commission is the platform's cut of a seller-attributed amount.
func (r Rates) Commission(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(r.SellerCommission)
}

// Payout is the seller's share of a seller-attributed amount.
func (r Rates) Payout(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(r.SellerPayout)
}

// AdminCommission applies the admin-stats display rate.
func (r Rates) AdminCommission(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(r.AdminStatsCommission)
}

// AmountExcludingVAT back-calculates the net value from a VAT-inclusive
// amount. Prices are stored VAT-inclusive, so exclusive = inclusive / 1.18.
func (r Rates) AmountExcludingVAT(amount decimal.Decimal) decimal.Decimal {
	return amount.Div(decimal.NewFromInt(1).Add(r.VAT))
}

// VATPortion is the tax embedded in a VAT-inclusive amount.
func (r Rates) VATPortion(amount decimal.Decimal) decimal.Decimal {
	return amount.Sub(r.AmountExcludingVAT(amount))
}
