// Package fees implements the pool fee model: trade, owner-trade,
// owner-withdraw and host fees, each expressed as a uint64
// numerator/denominator pair.
package fees

import (
	"cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/coral-dex/pricing/safemath"
)

// ErrInvalidFee is returned when a fee numerator is >= its denominator.
var ErrInvalidFee = errors.Register("fees", 2, "fee numerator must be less than denominator")

// Fees holds every fee rate charged by a pool.
//
// A pair with both fields zero disables that fee. Trade fees stay in the
// vaults and accrue to LP-token holders; owner trade fees go to the pool
// owner; owner withdraw fees are charged in pool tokens on withdrawal; host
// fees carve a slice out of the owner trade fee for a front-end host.
type Fees struct {
	TradeFeeNumerator   uint64 `mapstructure:"trade_fee_numerator"`
	TradeFeeDenominator uint64 `mapstructure:"trade_fee_denominator"`

	OwnerTradeFeeNumerator   uint64 `mapstructure:"owner_trade_fee_numerator"`
	OwnerTradeFeeDenominator uint64 `mapstructure:"owner_trade_fee_denominator"`

	OwnerWithdrawFeeNumerator   uint64 `mapstructure:"owner_withdraw_fee_numerator"`
	OwnerWithdrawFeeDenominator uint64 `mapstructure:"owner_withdraw_fee_denominator"`

	HostFeeNumerator   uint64 `mapstructure:"host_fee_numerator"`
	HostFeeDenominator uint64 `mapstructure:"host_fee_denominator"`
}

// CalculateFee returns floor(amount * numerator / denominator), with a
// minimum fee of one token whenever a non-zero rate applies to a non-zero
// amount. Rounding a tiny trade's fee down to zero would otherwise let
// traders split an order into fee-free crumbs.
func CalculateFee(amount math.Int, numerator, denominator uint64) (math.Int, error) {
	if numerator == 0 || amount.IsZero() {
		return math.ZeroInt(), nil
	}
	fee, err := safemath.MulDiv(amount, math.NewIntFromUint64(numerator), math.NewIntFromUint64(denominator))
	if err != nil {
		return math.Int{}, err
	}
	if fee.IsZero() {
		return math.OneInt(), nil
	}
	return fee, nil
}

// preFeeAmount inverts CalculateFee: the smallest amount whose fee at
// numerator/denominator reduces it to postFeeAmount. Uses ceiling division so
// the round trip never undershoots.
func preFeeAmount(postFeeAmount, numerator, denominator math.Int) (math.Int, error) {
	if numerator.IsZero() || denominator.IsZero() {
		return postFeeAmount, nil
	}
	if numerator.Equal(denominator) || postFeeAmount.IsZero() {
		return math.ZeroInt(), nil
	}
	num, err := safemath.Mul(postFeeAmount, denominator)
	if err != nil {
		return math.Int{}, err
	}
	den, err := safemath.Sub(denominator, numerator)
	if err != nil {
		return math.Int{}, err
	}
	return safemath.CeilDiv(num, den)
}

func validateFraction(numerator, denominator uint64) error {
	if denominator == 0 && numerator == 0 {
		return nil
	}
	if numerator >= denominator {
		return ErrInvalidFee.Wrapf("fraction %d/%d", numerator, denominator)
	}
	return nil
}

// TradingFee returns the trade fee on the given trading-token amount.
func (f Fees) TradingFee(tradingTokens math.Int) (math.Int, error) {
	return CalculateFee(tradingTokens, f.TradeFeeNumerator, f.TradeFeeDenominator)
}

// OwnerTradingFee returns the owner trade fee on the given trading-token
// amount.
func (f Fees) OwnerTradingFee(tradingTokens math.Int) (math.Int, error) {
	return CalculateFee(tradingTokens, f.OwnerTradeFeeNumerator, f.OwnerTradeFeeDenominator)
}

// OwnerWithdrawFee returns the withdraw fee on the given pool-token amount.
func (f Fees) OwnerWithdrawFee(poolTokens math.Int) (math.Int, error) {
	return CalculateFee(poolTokens, f.OwnerWithdrawFeeNumerator, f.OwnerWithdrawFeeDenominator)
}

// HostFee returns the host's slice of an already-computed owner fee.
func (f Fees) HostFee(ownerFee math.Int) (math.Int, error) {
	return CalculateFee(ownerFee, f.HostFeeNumerator, f.HostFeeDenominator)
}

// PreTradingFeeAmount returns the minimal input whose combined trade and
// owner-trade fee reduces it to postFeeAmount. When one of the two fees is
// disabled this degrades to the single-fee inverse.
func (f Fees) PreTradingFeeAmount(postFeeAmount math.Int) (math.Int, error) {
	if f.TradeFeeNumerator == 0 || f.TradeFeeDenominator == 0 {
		return preFeeAmount(postFeeAmount,
			math.NewIntFromUint64(f.OwnerTradeFeeNumerator), math.NewIntFromUint64(f.OwnerTradeFeeDenominator))
	}
	if f.OwnerTradeFeeNumerator == 0 || f.OwnerTradeFeeDenominator == 0 {
		return preFeeAmount(postFeeAmount,
			math.NewIntFromUint64(f.TradeFeeNumerator), math.NewIntFromUint64(f.TradeFeeDenominator))
	}
	// combined fraction: (t_n*o_d + o_n*t_d) / (t_d*o_d)
	num1, err := safemath.Mul(math.NewIntFromUint64(f.TradeFeeNumerator), math.NewIntFromUint64(f.OwnerTradeFeeDenominator))
	if err != nil {
		return math.Int{}, err
	}
	num2, err := safemath.Mul(math.NewIntFromUint64(f.OwnerTradeFeeNumerator), math.NewIntFromUint64(f.TradeFeeDenominator))
	if err != nil {
		return math.Int{}, err
	}
	numerator, err := safemath.Add(num1, num2)
	if err != nil {
		return math.Int{}, err
	}
	denominator, err := safemath.Mul(math.NewIntFromUint64(f.TradeFeeDenominator), math.NewIntFromUint64(f.OwnerTradeFeeDenominator))
	if err != nil {
		return math.Int{}, err
	}
	return preFeeAmount(postFeeAmount, numerator, denominator)
}

// Validate checks that every fee pair is either disabled or a proper
// fraction.
func (f Fees) Validate() error {
	if err := validateFraction(f.TradeFeeNumerator, f.TradeFeeDenominator); err != nil {
		return err
	}
	if err := validateFraction(f.OwnerTradeFeeNumerator, f.OwnerTradeFeeDenominator); err != nil {
		return err
	}
	if err := validateFraction(f.OwnerWithdrawFeeNumerator, f.OwnerWithdrawFeeDenominator); err != nil {
		return err
	}
	return validateFraction(f.HostFeeNumerator, f.HostFeeDenominator)
}
