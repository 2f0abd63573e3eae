package curve

import (
	"cosmossdk.io/math"

	"github.com/coral-dex/pricing/safemath"
)

// OffsetCurve is the constant product curve with a fixed additive offset
// applied to the token B side: a * (b + offset) = k. It lets a pool creator
// sell token A against liquidity that is partly virtual.
type OffsetCurve struct {
	TokenBOffset uint64
}

func (c OffsetCurve) offset() math.Int {
	return math.NewIntFromUint64(c.TokenBOffset)
}

// SwapWithoutFees runs the constant product swap with the offset added to
// whichever side is token B for this direction. Token B balances close to
// MaxUint64 combined with a large offset can overflow the invariant; that
// surfaces as a calculation failure, not a wrap.
func (c OffsetCurve) SwapWithoutFees(sourceAmount, poolSourceAmount, poolDestinationAmount math.Int, direction TradeDirection) (SwapWithoutFeesResult, error) {
	var err error
	switch direction {
	case AtoB:
		poolDestinationAmount, err = safemath.Add(poolDestinationAmount, c.offset())
	case BtoA:
		poolSourceAmount, err = safemath.Add(poolSourceAmount, c.offset())
	}
	if err != nil {
		return SwapWithoutFeesResult{}, err
	}
	return cpSwap(sourceAmount, poolSourceAmount, poolDestinationAmount)
}

// PoolTokensToTradingTokens includes the offset in the token B side, so the
// conversion prices the virtual liquidity too. A full withdrawal of the
// pool-token supply therefore does not line up with the real token B balance
// when an offset is set; long-standing behaviour, kept as-is.
func (c OffsetCurve) PoolTokensToTradingTokens(poolTokens, poolTokenSupply, poolTokenAAmount, poolTokenBAmount math.Int, round RoundDirection) (TradingTokenResult, error) {
	offsetTokenB, err := safemath.Add(poolTokenBAmount, c.offset())
	if err != nil {
		return TradingTokenResult{}, err
	}
	return ratioTradingTokens(poolTokens, poolTokenSupply, poolTokenAAmount, offsetTokenB, round)
}

// DepositSingleTokenType prices the conversion consistently for direct
// callers; the orchestrator rejects deposits on this curve before reaching
// it.
func (c OffsetCurve) DepositSingleTokenType(sourceAmount, poolTokenAAmount, poolTokenBAmount, poolSupply math.Int, direction TradeDirection) (math.Int, error) {
	offsetTokenB, err := safemath.Add(poolTokenBAmount, c.offset())
	if err != nil {
		return math.Int{}, err
	}
	return cpDepositSingleTokenType(sourceAmount, poolTokenAAmount, offsetTokenB, poolSupply, direction)
}

func (c OffsetCurve) WithdrawSingleTokenTypeExactOut(sourceAmount, poolTokenAAmount, poolTokenBAmount, poolSupply math.Int, direction TradeDirection, round RoundDirection) (math.Int, error) {
	offsetTokenB, err := safemath.Add(poolTokenBAmount, c.offset())
	if err != nil {
		return math.Int{}, err
	}
	return cpWithdrawSingleTokenTypeExactOut(sourceAmount, poolTokenAAmount, offsetTokenB, poolSupply, direction, round)
}

// NormalizedValue adds the offset to the token B side before taking the
// constant product value.
func (c OffsetCurve) NormalizedValue(poolTokenAAmount, poolTokenBAmount math.Int) (math.LegacyDec, error) {
	offsetTokenB, err := safemath.Add(poolTokenBAmount, c.offset())
	if err != nil {
		return math.LegacyDec{}, err
	}
	return cpNormalizedValue(poolTokenAAmount, offsetTokenB)
}

func (c OffsetCurve) Validate() error {
	if c.TokenBOffset == 0 {
		return ErrInvalidCurve.Wrap("token B offset must be greater than zero")
	}
	return nil
}

// ValidateSupply requires token A liquidity; the offset stands in for the B
// side.
func (c OffsetCurve) ValidateSupply(tokenAAmount, _ math.Int) error {
	return validateSupplyTokenA(tokenAAmount)
}

// AllowsDeposits is false: with virtual B-side liquidity, a multi-sided
// depositor would buy LP tokens priced against balances the pool does not
// hold, and the pool creator could later withdraw the depositor's real
// tokens against the offset.
func (OffsetCurve) AllowsDeposits() bool { return false }

func (OffsetCurve) NewPoolSupply() math.Int { return InitialPoolSupply }
