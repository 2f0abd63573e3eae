package curve

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/coral-dex/pricing/safemath"
)

// ConstantPriceCurve trades at a fixed rate set at pool creation: TokenBPrice
// is the amount of token A required to buy one token B.
type ConstantPriceCurve struct {
	TokenBPrice uint64
}

// SwapWithoutFees exchanges at the fixed rate. Selling A for B floors the
// consumed source amount down to a multiple of the price, so no source
// tokens are taken without a corresponding unit of output.
func (c ConstantPriceCurve) SwapWithoutFees(sourceAmount, _, _ math.Int, direction TradeDirection) (SwapWithoutFeesResult, error) {
	price := math.NewIntFromUint64(c.TokenBPrice)

	var sourceAmountSwapped, destinationAmountSwapped math.Int
	var err error
	switch direction {
	case BtoA:
		sourceAmountSwapped = sourceAmount
		destinationAmountSwapped, err = safemath.Mul(sourceAmount, price)
		if err != nil {
			return SwapWithoutFeesResult{}, err
		}
	case AtoB:
		destinationAmountSwapped, err = safemath.Quo(sourceAmount, price)
		if err != nil {
			return SwapWithoutFeesResult{}, err
		}
		remainder, err := safemath.Rem(sourceAmount, price)
		if err != nil {
			return SwapWithoutFeesResult{}, err
		}
		sourceAmountSwapped = sourceAmount
		if remainder.IsPositive() {
			sourceAmountSwapped, err = safemath.Sub(sourceAmount, remainder)
			if err != nil {
				return SwapWithoutFeesResult{}, err
			}
		}
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

// totalValue is the pool's worth in token A units: a + b*price, halved to
// normalize between the two sides. The branch divides before summing when
// b*price sits within MaxUint64 of the top of the domain, trading a little
// precision for headroom.
func (c ConstantPriceCurve) totalValue(poolTokenAAmount, poolTokenBAmount math.Int) (math.Int, error) {
	price := math.NewIntFromUint64(c.TokenBPrice)
	tokenBValue, err := safemath.Mul(poolTokenBAmount, price)
	if err != nil {
		return math.Int{}, err
	}
	threshold := safemath.MaxUint128().Sub(math.NewIntFromUint64(^uint64(0)))
	if tokenBValue.GT(threshold) {
		halfB, err := safemath.Quo(tokenBValue, math.NewInt(2))
		if err != nil {
			return math.Int{}, err
		}
		halfA, err := safemath.Quo(poolTokenAAmount, math.NewInt(2))
		if err != nil {
			return math.Int{}, err
		}
		return safemath.Add(halfA, halfB)
	}
	sum, err := safemath.Add(poolTokenAAmount, tokenBValue)
	if err != nil {
		return math.Int{}, err
	}
	return safemath.Quo(sum, math.NewInt(2))
}

// PoolTokensToTradingTokens weights the conversion by the price of token B.
func (c ConstantPriceCurve) PoolTokensToTradingTokens(poolTokens, poolTokenSupply, poolTokenAAmount, poolTokenBAmount math.Int, round RoundDirection) (TradingTokenResult, error) {
	price := math.NewIntFromUint64(c.TokenBPrice)
	totalValue, err := c.totalValue(poolTokenAAmount, poolTokenBAmount)
	if err != nil {
		return TradingTokenResult{}, err
	}
	poolValue, err := safemath.Mul(poolTokens, totalValue)
	if err != nil {
		return TradingTokenResult{}, err
	}

	var tokenAAmount, tokenBAmount math.Int
	switch round {
	case Floor:
		tokenAAmount, err = safemath.Quo(poolValue, poolTokenSupply)
		if err != nil {
			return TradingTokenResult{}, err
		}
		valueAsTokenB, err := safemath.Quo(poolValue, price)
		if err != nil {
			return TradingTokenResult{}, err
		}
		tokenBAmount, err = safemath.Quo(valueAsTokenB, poolTokenSupply)
		if err != nil {
			return TradingTokenResult{}, err
		}
	case Ceiling:
		quotient, err := ceilDiv256Strict(poolValue.BigInt(), poolTokenSupply.BigInt())
		if err != nil {
			return TradingTokenResult{}, err
		}
		tokenAAmount, err = toUint128(quotient)
		if err != nil {
			return TradingTokenResult{}, err
		}
		valueAsTokenB, err := ceilDiv256Strict(poolValue.BigInt(), price.BigInt())
		if err != nil {
			return TradingTokenResult{}, err
		}
		quotient, err = ceilDiv256Strict(valueAsTokenB, poolTokenSupply.BigInt())
		if err != nil {
			return TradingTokenResult{}, err
		}
		tokenBAmount, err = toUint128(quotient)
		if err != nil {
			return TradingTokenResult{}, err
		}
	}
	return TradingTokenResult{TokenAAmount: tokenAAmount, TokenBAmount: tokenBAmount}, nil
}

// tradingTokensToPoolTokens prices a one-sided conversion by the deposited
// value's share of the pool's total value. Intermediate products need the
// full 256-bit width.
func (c ConstantPriceCurve) tradingTokensToPoolTokens(sourceAmount, poolTokenAAmount, poolTokenBAmount, poolSupply math.Int, direction TradeDirection, round RoundDirection) (math.Int, error) {
	price := new(big.Int).SetUint64(c.TokenBPrice)

	givenValue := sourceAmount.BigInt()
	if direction == BtoA {
		var err error
		givenValue, err = mul256(givenValue, price)
		if err != nil {
			return math.Int{}, err
		}
	}
	tokenBValue, err := mul256(poolTokenBAmount.BigInt(), price)
	if err != nil {
		return math.Int{}, err
	}
	totalValue, err := add256(tokenBValue, poolTokenAAmount.BigInt())
	if err != nil {
		return math.Int{}, err
	}
	weighted, err := mul256(poolSupply.BigInt(), givenValue)
	if err != nil {
		return math.Int{}, err
	}

	var poolTokens *big.Int
	if round == Ceiling {
		poolTokens, err = ceilDiv256Strict(weighted, totalValue)
	} else {
		poolTokens, err = div256(weighted, totalValue)
	}
	if err != nil {
		return math.Int{}, err
	}
	return toUint128(poolTokens)
}

func (c ConstantPriceCurve) DepositSingleTokenType(sourceAmount, poolTokenAAmount, poolTokenBAmount, poolSupply math.Int, direction TradeDirection) (math.Int, error) {
	return c.tradingTokensToPoolTokens(sourceAmount, poolTokenAAmount, poolTokenBAmount, poolSupply, direction, Floor)
}

func (c ConstantPriceCurve) WithdrawSingleTokenTypeExactOut(sourceAmount, poolTokenAAmount, poolTokenBAmount, poolSupply math.Int, direction TradeDirection, round RoundDirection) (math.Int, error) {
	return c.tradingTokensToPoolTokens(sourceAmount, poolTokenAAmount, poolTokenBAmount, poolSupply, direction, round)
}

// NormalizedValue is (a + b*price) / 2.
func (c ConstantPriceCurve) NormalizedValue(poolTokenAAmount, poolTokenBAmount math.Int) (math.LegacyDec, error) {
	value, err := c.totalValue(poolTokenAAmount, poolTokenBAmount)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return math.LegacyNewDecFromInt(value), nil
}

func (c ConstantPriceCurve) Validate() error {
	if c.TokenBPrice == 0 {
		return ErrInvalidCurve.Wrap("token B price must be greater than zero")
	}
	return nil
}

// ValidateSupply requires token A liquidity; the B side may start empty.
func (c ConstantPriceCurve) ValidateSupply(tokenAAmount, _ math.Int) error {
	return validateSupplyTokenA(tokenAAmount)
}

func (ConstantPriceCurve) AllowsDeposits() bool { return true }

func (ConstantPriceCurve) NewPoolSupply() math.Int { return InitialPoolSupply }
