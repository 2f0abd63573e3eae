package curve

import (
	"cosmossdk.io/math"

	"github.com/coral-dex/pricing/safemath"
)

// ratioTradingTokens converts pool tokens to trading tokens by simple
// proportion against the pool-token supply. Shared by the constant product,
// offset and stable curves.
//
// With Ceiling rounding, a side is only bumped when its floored amount is
// already non-zero: asking for a sliver of pool tokens worth 0.01 token A
// yields 0, to be rejected downstream, rather than overcharging a whole
// token.
func ratioTradingTokens(poolTokens, poolTokenSupply, poolTokenAAmount, poolTokenBAmount math.Int, round RoundDirection) (TradingTokenResult, error) {
	tokenAAmount, err := safemath.MulDiv(poolTokens, poolTokenAAmount, poolTokenSupply)
	if err != nil {
		return TradingTokenResult{}, err
	}
	tokenBAmount, err := safemath.MulDiv(poolTokens, poolTokenBAmount, poolTokenSupply)
	if err != nil {
		return TradingTokenResult{}, err
	}
	if round == Ceiling {
		productA, err := safemath.Mul(poolTokens, poolTokenAAmount)
		if err != nil {
			return TradingTokenResult{}, err
		}
		remainderA, err := safemath.Rem(productA, poolTokenSupply)
		if err != nil {
			return TradingTokenResult{}, err
		}
		if remainderA.IsPositive() && tokenAAmount.IsPositive() {
			tokenAAmount = tokenAAmount.Add(math.OneInt())
		}
		productB, err := safemath.Mul(poolTokens, poolTokenBAmount)
		if err != nil {
			return TradingTokenResult{}, err
		}
		remainderB, err := safemath.Rem(productB, poolTokenSupply)
		if err != nil {
			return TradingTokenResult{}, err
		}
		if remainderB.IsPositive() && tokenBAmount.IsPositive() {
			tokenBAmount = tokenBAmount.Add(math.OneInt())
		}
	}
	return TradingTokenResult{TokenAAmount: tokenAAmount, TokenBAmount: tokenBAmount}, nil
}

// sourceSideAmounts orders (a, b) into (source, other) for the direction.
func sourceSideAmounts(tokenAAmount, tokenBAmount math.Int, direction TradeDirection) (sourceAmount, otherAmount math.Int) {
	if direction == AtoB {
		return tokenAAmount, tokenBAmount
	}
	return tokenBAmount, tokenAAmount
}
