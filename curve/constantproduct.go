package curve

import (
	"cosmossdk.io/math"

	"github.com/coral-dex/pricing/safemath"
)

// ConstantProductCurve is the uniswap-style x*y = k invariant.
type ConstantProductCurve struct{}

// cpCeilDiv divides rounding the quotient up, then shrinks the divisor to
// the minimum that still produces the same quotient. Used on the swap path
// so the pool keeps every rounding crumb: the destination side rounds in the
// pool's favour and the trader is charged no more source tokens than the
// output actually requires.
func cpCeilDiv(dividend, divisor math.Int) (quotient, adjustedDivisor math.Int, err error) {
	quotient, err = safemath.Quo(dividend, divisor)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if quotient.IsZero() {
		// dividing a small number by a big one; bail out instead of returning
		// a spurious ceiling of 1
		return math.Int{}, math.Int{}, safemath.ErrCalculationFailure.Wrap("ceiling division quotient is zero")
	}
	remainder, err := safemath.Rem(dividend, divisor)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if remainder.IsPositive() {
		quotient = quotient.Add(math.OneInt())
		divisor, err = safemath.Quo(dividend, quotient)
		if err != nil {
			return math.Int{}, math.Int{}, err
		}
		remainder, err = safemath.Rem(dividend, quotient)
		if err != nil {
			return math.Int{}, math.Int{}, err
		}
		if remainder.IsPositive() {
			divisor = divisor.Add(math.OneInt())
		}
	}
	return quotient, divisor, nil
}

// cpSwap is the constant product swap calculation, shared with the offset
// curve. Guaranteed to work for all values such that
// 1 <= poolSourceAmount * poolDestinationAmount <= MaxUint128 and
// 1 <= sourceAmount <= MaxUint64.
func cpSwap(sourceAmount, poolSourceAmount, poolDestinationAmount math.Int) (SwapWithoutFeesResult, error) {
	invariant, err := safemath.Mul(poolSourceAmount, poolDestinationAmount)
	if err != nil {
		return SwapWithoutFeesResult{}, err
	}
	newPoolSourceAmount, err := safemath.Add(poolSourceAmount, sourceAmount)
	if err != nil {
		return SwapWithoutFeesResult{}, err
	}
	newPoolDestinationAmount, newPoolSourceAmount, err := cpCeilDiv(invariant, newPoolSourceAmount)
	if err != nil {
		return SwapWithoutFeesResult{}, err
	}
	sourceAmountSwapped, err := safemath.Sub(newPoolSourceAmount, poolSourceAmount)
	if err != nil {
		return SwapWithoutFeesResult{}, err
	}
	destinationAmountSwapped, err := safemath.Sub(poolDestinationAmount, newPoolDestinationAmount)
	if err != nil {
		return SwapWithoutFeesResult{}, err
	}
	if !sourceAmountSwapped.IsPositive() || !destinationAmountSwapped.IsPositive() {
		return SwapWithoutFeesResult{}, ErrZeroTradingTokens.Wrapf(
			"source_swapped=%s destination_swapped=%s", sourceAmountSwapped, destinationAmountSwapped)
	}
	return SwapWithoutFeesResult{
		SourceAmountSwapped:      sourceAmountSwapped,
		DestinationAmountSwapped: destinationAmountSwapped,
	}, nil
}

// cpNormalizedValue gives the square root of the invariant, shared with the
// offset curve.
func cpNormalizedValue(poolTokenAAmount, poolTokenBAmount math.Int) (math.LegacyDec, error) {
	product, err := safemath.Mul(poolTokenAAmount, poolTokenBAmount)
	if err != nil {
		return math.LegacyDec{}, err
	}
	value, err := math.LegacyNewDecFromInt(product).ApproxSqrt()
	if err != nil {
		return math.LegacyDec{}, safemath.ErrCalculationFailure.Wrapf("sqrt: %v", err)
	}
	return value, nil
}

// cpDepositSingleTokenType prices a one-sided deposit with the Balancer
// two-token formula: minted = supply * (sqrt(1 + in/x) - 1), floored.
func cpDepositSingleTokenType(sourceAmount, poolTokenAAmount, poolTokenBAmount, poolSupply math.Int, direction TradeDirection) (math.Int, error) {
	if sourceAmount.IsZero() {
		return math.ZeroInt(), nil
	}
	poolSourceAmount, _ := sourceSideAmounts(poolTokenAAmount, poolTokenBAmount, direction)
	if !poolSourceAmount.IsPositive() {
		return math.Int{}, safemath.ErrCalculationFailure.Wrap("empty source side")
	}
	ratio := math.LegacyNewDecFromInt(sourceAmount).Quo(math.LegacyNewDecFromInt(poolSourceAmount))
	root, err := math.LegacyOneDec().Add(ratio).ApproxSqrt()
	if err != nil {
		return math.Int{}, safemath.ErrCalculationFailure.Wrapf("sqrt: %v", err)
	}
	poolTokens := math.LegacyNewDecFromInt(poolSupply).Mul(root.Sub(math.LegacyOneDec()))
	return poolTokens.TruncateInt(), nil
}

// cpWithdrawSingleTokenTypeExactOut prices an exact-out one-sided withdraw:
// burned = supply * (1 - sqrt(1 - out/x)), rounded per the caller.
func cpWithdrawSingleTokenTypeExactOut(sourceAmount, poolTokenAAmount, poolTokenBAmount, poolSupply math.Int, direction TradeDirection, round RoundDirection) (math.Int, error) {
	if sourceAmount.IsZero() {
		return math.ZeroInt(), nil
	}
	poolSourceAmount, _ := sourceSideAmounts(poolTokenAAmount, poolTokenBAmount, direction)
	if !poolSourceAmount.IsPositive() {
		return math.Int{}, safemath.ErrCalculationFailure.Wrap("empty source side")
	}
	if sourceAmount.GT(poolSourceAmount) {
		return math.Int{}, safemath.ErrCalculationFailure.Wrap("withdraw exceeds pool balance")
	}
	ratio := math.LegacyNewDecFromInt(sourceAmount).Quo(math.LegacyNewDecFromInt(poolSourceAmount))
	root, err := math.LegacyOneDec().Sub(ratio).ApproxSqrt()
	if err != nil {
		return math.Int{}, safemath.ErrCalculationFailure.Wrapf("sqrt: %v", err)
	}
	poolTokens := math.LegacyNewDecFromInt(poolSupply).Mul(math.LegacyOneDec().Sub(root))
	if round == Ceiling {
		return poolTokens.Ceil().TruncateInt(), nil
	}
	return poolTokens.TruncateInt(), nil
}

// SwapWithoutFees ensures x * y = k never decreases.
func (ConstantProductCurve) SwapWithoutFees(sourceAmount, poolSourceAmount, poolDestinationAmount math.Int, _ TradeDirection) (SwapWithoutFeesResult, error) {
	return cpSwap(sourceAmount, poolSourceAmount, poolDestinationAmount)
}

func (ConstantProductCurve) PoolTokensToTradingTokens(poolTokens, poolTokenSupply, poolTokenAAmount, poolTokenBAmount math.Int, round RoundDirection) (TradingTokenResult, error) {
	return ratioTradingTokens(poolTokens, poolTokenSupply, poolTokenAAmount, poolTokenBAmount, round)
}

func (ConstantProductCurve) DepositSingleTokenType(sourceAmount, poolTokenAAmount, poolTokenBAmount, poolSupply math.Int, direction TradeDirection) (math.Int, error) {
	return cpDepositSingleTokenType(sourceAmount, poolTokenAAmount, poolTokenBAmount, poolSupply, direction)
}

func (ConstantProductCurve) WithdrawSingleTokenTypeExactOut(sourceAmount, poolTokenAAmount, poolTokenBAmount, poolSupply math.Int, direction TradeDirection, round RoundDirection) (math.Int, error) {
	return cpWithdrawSingleTokenTypeExactOut(sourceAmount, poolTokenAAmount, poolTokenBAmount, poolSupply, direction, round)
}

// NormalizedValue is the square root of the invariant.
func (ConstantProductCurve) NormalizedValue(poolTokenAAmount, poolTokenBAmount math.Int) (math.LegacyDec, error) {
	return cpNormalizedValue(poolTokenAAmount, poolTokenBAmount)
}

// Validate always succeeds; the curve has no parameters.
func (ConstantProductCurve) Validate() error { return nil }

func (ConstantProductCurve) ValidateSupply(tokenAAmount, tokenBAmount math.Int) error {
	return validateSupplyBothSides(tokenAAmount, tokenBAmount)
}

func (ConstantProductCurve) AllowsDeposits() bool { return true }

func (ConstantProductCurve) NewPoolSupply() math.Int { return InitialPoolSupply }
