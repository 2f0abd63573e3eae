package curve

import (
	"cosmossdk.io/math"

	"github.com/coral-dex/pricing/safemath"
)

// Amplification coefficient domain, exclusive on both ends.
const (
	MinAmp uint64 = 1
	MaxAmp uint64 = 1_000_000
)

// StableCurve is the stableswap invariant over two assets, flattened around
// parity by the amplification coefficient. Each side carries a
// decimal-normalization factor so tokens with different decimal counts meet
// the solver on a common scale.
type StableCurve struct {
	Amp uint64
	// TokenAFactor and TokenBFactor are powers of ten scaling each side up
	// to the higher-decimal token's scale. Equal-decimal pairs use 1/1.
	TokenAFactor uint64
	TokenBFactor uint64
}

// NewStableCurve builds a stable curve from the amplification coefficient
// and the two tokens' decimal counts.
func NewStableCurve(amp uint64, tokenADecimals, tokenBDecimals uint8) (StableCurve, error) {
	c := StableCurve{Amp: amp, TokenAFactor: 1, TokenBFactor: 1}
	if err := c.Validate(); err != nil {
		return StableCurve{}, err
	}
	var err error
	if tokenADecimals > tokenBDecimals {
		c.TokenBFactor, err = pow10(tokenADecimals - tokenBDecimals)
	} else if tokenBDecimals > tokenADecimals {
		c.TokenAFactor, err = pow10(tokenBDecimals - tokenADecimals)
	}
	if err != nil {
		return StableCurve{}, err
	}
	return c, nil
}

func pow10(exponent uint8) (uint64, error) {
	result := uint64(1)
	for i := uint8(0); i < exponent; i++ {
		var err error
		result, err = safemath.MulUint64(result, 10)
		if err != nil {
			return 0, ErrInvalidCurve.Wrapf("decimal difference %d too large", exponent)
		}
	}
	return result, nil
}

// factors orders the normalization factors as (source, destination) for the
// direction.
func (c StableCurve) factors(direction TradeDirection) (sourceFactor, destinationFactor math.Int) {
	if direction == AtoB {
		return math.NewIntFromUint64(c.TokenAFactor), math.NewIntFromUint64(c.TokenBFactor)
	}
	return math.NewIntFromUint64(c.TokenBFactor), math.NewIntFromUint64(c.TokenAFactor)
}

// SwapWithoutFees prices the trade by solving for the destination-side
// balance y that keeps D constant, on decimal-normalized balances.
func (c StableCurve) SwapWithoutFees(sourceAmount, poolSourceAmount, poolDestinationAmount math.Int, direction TradeDirection) (SwapWithoutFeesResult, error) {
	sourceFactor, destinationFactor := c.factors(direction)

	scaledSource, err := safemath.Mul(sourceAmount, sourceFactor)
	if err != nil {
		return SwapWithoutFeesResult{}, err
	}
	scaledPoolSource, err := safemath.Mul(poolSourceAmount, sourceFactor)
	if err != nil {
		return SwapWithoutFeesResult{}, err
	}
	scaledPoolDestination, err := safemath.Mul(poolDestinationAmount, destinationFactor)
	if err != nil {
		return SwapWithoutFeesResult{}, err
	}

	leverage, err := computeLeverage(c.Amp)
	if err != nil {
		return SwapWithoutFeesResult{}, err
	}
	d, err := computeD(leverage, scaledPoolSource, scaledPoolDestination)
	if err != nil {
		return SwapWithoutFeesResult{}, err
	}
	newScaledSource, err := safemath.Add(scaledPoolSource, scaledSource)
	if err != nil {
		return SwapWithoutFeesResult{}, err
	}
	y, err := computeY(leverage, newScaledSource, d)
	if err != nil {
		return SwapWithoutFeesResult{}, err
	}
	scaledAmountSwapped, err := safemath.Sub(scaledPoolDestination, y)
	if err != nil {
		return SwapWithoutFeesResult{}, err
	}
	destinationAmountSwapped, err := safemath.Quo(scaledAmountSwapped, destinationFactor)
	if err != nil {
		return SwapWithoutFeesResult{}, err
	}
	if !sourceAmount.IsPositive() || !destinationAmountSwapped.IsPositive() {
		return SwapWithoutFeesResult{}, ErrZeroTradingTokens.Wrapf(
			"source_swapped=%s destination_swapped=%s", sourceAmount, destinationAmountSwapped)
	}
	return SwapWithoutFeesResult{
		SourceAmountSwapped:      sourceAmount,
		DestinationAmountSwapped: destinationAmountSwapped,
	}, nil
}

func (c StableCurve) PoolTokensToTradingTokens(poolTokens, poolTokenSupply, poolTokenAAmount, poolTokenBAmount math.Int, round RoundDirection) (TradingTokenResult, error) {
	return ratioTradingTokens(poolTokens, poolTokenSupply, poolTokenAAmount, poolTokenBAmount, round)
}

// scaledD computes the invariant over decimal-normalized balances.
func (c StableCurve) scaledD(tokenAAmount, tokenBAmount math.Int) (math.Int, error) {
	scaledA, err := safemath.Mul(tokenAAmount, math.NewIntFromUint64(c.TokenAFactor))
	if err != nil {
		return math.Int{}, err
	}
	scaledB, err := safemath.Mul(tokenBAmount, math.NewIntFromUint64(c.TokenBFactor))
	if err != nil {
		return math.Int{}, err
	}
	leverage, err := computeLeverage(c.Amp)
	if err != nil {
		return math.Int{}, err
	}
	return computeD(leverage, scaledA, scaledB)
}

// singleSidedPoolTokens converts a one-sided balance change into pool tokens
// via the proportional change in D: |D1 - D0| / D0 * supply.
func (c StableCurve) singleSidedPoolTokens(d0, d1, poolSupply math.Int, round RoundDirection) (math.Int, error) {
	if d0.IsZero() {
		return math.Int{}, safemath.ErrCalculationFailure.Wrap("invariant is zero")
	}
	d0Dec := math.LegacyNewDecFromInt(d0)
	d1Dec := math.LegacyNewDecFromInt(d1)
	diff := d1Dec.Sub(d0Dec).Abs()
	amount := diff.MulInt(poolSupply).Quo(d0Dec)
	if round == Ceiling {
		return amount.Ceil().TruncateInt(), nil
	}
	return amount.TruncateInt(), nil
}

func (c StableCurve) DepositSingleTokenType(sourceAmount, poolTokenAAmount, poolTokenBAmount, poolSupply math.Int, direction TradeDirection) (math.Int, error) {
	if sourceAmount.IsZero() {
		return math.ZeroInt(), nil
	}
	d0, err := c.scaledD(poolTokenAAmount, poolTokenBAmount)
	if err != nil {
		return math.Int{}, err
	}
	depositSide, _ := sourceSideAmounts(poolTokenAAmount, poolTokenBAmount, direction)
	updated, err := safemath.Add(depositSide, sourceAmount)
	if err != nil {
		return math.Int{}, err
	}
	newA, newB := poolTokenAAmount, updated
	if direction == AtoB {
		newA, newB = updated, poolTokenBAmount
	}
	d1, err := c.scaledD(newA, newB)
	if err != nil {
		return math.Int{}, err
	}
	if d1.LT(d0) {
		return math.Int{}, safemath.ErrCalculationFailure.Wrap("invariant decreased on deposit")
	}
	return c.singleSidedPoolTokens(d0, d1, poolSupply, Floor)
}

func (c StableCurve) WithdrawSingleTokenTypeExactOut(sourceAmount, poolTokenAAmount, poolTokenBAmount, poolSupply math.Int, direction TradeDirection, round RoundDirection) (math.Int, error) {
	if sourceAmount.IsZero() {
		return math.ZeroInt(), nil
	}
	d0, err := c.scaledD(poolTokenAAmount, poolTokenBAmount)
	if err != nil {
		return math.Int{}, err
	}
	withdrawSide, _ := sourceSideAmounts(poolTokenAAmount, poolTokenBAmount, direction)
	updated, err := safemath.Sub(withdrawSide, sourceAmount)
	if err != nil {
		return math.Int{}, err
	}
	newA, newB := poolTokenAAmount, updated
	if direction == AtoB {
		newA, newB = updated, poolTokenBAmount
	}
	d1, err := c.scaledD(newA, newB)
	if err != nil {
		return math.Int{}, err
	}
	if d0.LT(d1) {
		return math.Int{}, safemath.ErrCalculationFailure.Wrap("invariant increased on withdraw")
	}
	return c.singleSidedPoolTokens(d0, d1, poolSupply, round)
}

// NormalizedValue is the invariant D itself, computed on the integer path.
// A floating-point cubic-root formulation exists only as a test oracle and
// never prices anything.
func (c StableCurve) NormalizedValue(poolTokenAAmount, poolTokenBAmount math.Int) (math.LegacyDec, error) {
	d, err := c.scaledD(poolTokenAAmount, poolTokenBAmount)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return math.LegacyNewDecFromInt(d), nil
}

func (c StableCurve) Validate() error {
	if c.Amp <= MinAmp {
		return ErrInvalidCurve.Wrapf("amp=%d must be greater than %d", c.Amp, MinAmp)
	}
	if c.Amp >= MaxAmp {
		return ErrInvalidCurve.Wrapf("amp=%d must be less than %d", c.Amp, MaxAmp)
	}
	return nil
}

func (c StableCurve) ValidateSupply(tokenAAmount, tokenBAmount math.Int) error {
	return validateSupplyBothSides(tokenAAmount, tokenBAmount)
}

func (StableCurve) AllowsDeposits() bool { return true }

func (StableCurve) NewPoolSupply() math.Int { return InitialPoolSupply }
