package curve_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/coral-dex/pricing/curve"
	"github.com/coral-dex/pricing/safemath"
)

func TestConstantPriceSwapAtParity(t *testing.T) {
	c := curve.ConstantPriceCurve{TokenBPrice: 1}

	result, err := c.SwapWithoutFees(
		math.NewInt(100), math.NewInt(1000), math.NewInt(1000), curve.AtoB)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(100), result.SourceAmountSwapped)
	require.Equal(t, math.NewInt(100), result.DestinationAmountSwapped)
}

func TestConstantPriceSwapFloorsSourceToMultiple(t *testing.T) {
	c := curve.ConstantPriceCurve{TokenBPrice: 10}

	// 105 only buys 10 whole tokens; the 5 leftover is not consumed
	result, err := c.SwapWithoutFees(
		math.NewInt(105), math.NewInt(0), math.NewInt(0), curve.AtoB)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(100), result.SourceAmountSwapped)
	require.Equal(t, math.NewInt(10), result.DestinationAmountSwapped)
}

func TestConstantPriceSwapBtoA(t *testing.T) {
	c := curve.ConstantPriceCurve{TokenBPrice: 10}

	result, err := c.SwapWithoutFees(
		math.NewInt(7), math.NewInt(0), math.NewInt(0), curve.BtoA)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(7), result.SourceAmountSwapped)
	require.Equal(t, math.NewInt(70), result.DestinationAmountSwapped)
}

func TestConstantPriceSwapTooSmall(t *testing.T) {
	c := curve.ConstantPriceCurve{TokenBPrice: 1000}

	_, err := c.SwapWithoutFees(
		math.NewInt(999), math.NewInt(0), math.NewInt(0), curve.AtoB)
	require.Error(t, err)
	require.True(t, curve.ErrZeroTradingTokens.Is(err))
}

func TestConstantPriceSwapOverflow(t *testing.T) {
	c := curve.ConstantPriceCurve{TokenBPrice: ^uint64(0)}
	huge := safemath.MaxUint128()

	_, err := c.SwapWithoutFees(huge, math.NewInt(0), math.NewInt(0), curve.BtoA)
	require.Error(t, err)
	require.True(t, safemath.ErrCalculationFailure.Is(err))
}

func TestConstantPricePoolTokensToTradingTokens(t *testing.T) {
	c := curve.ConstantPriceCurve{TokenBPrice: 2}

	// total value = (100 + 50*2) / 2 = 100; half the supply is worth 50 token
	// A or 25 token B
	result, err := c.PoolTokensToTradingTokens(
		math.NewInt(500), math.NewInt(1000), math.NewInt(100), math.NewInt(50), curve.Floor)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(50), result.TokenAAmount)
	require.Equal(t, math.NewInt(25), result.TokenBAmount)

	ceiling, err := c.PoolTokensToTradingTokens(
		math.NewInt(501), math.NewInt(1000), math.NewInt(100), math.NewInt(50), curve.Ceiling)
	require.NoError(t, err)
	require.True(t, ceiling.TokenAAmount.GTE(result.TokenAAmount))
	require.True(t, ceiling.TokenBAmount.GTE(result.TokenBAmount))
}

func TestConstantPriceDepositSingleTokenType(t *testing.T) {
	c := curve.ConstantPriceCurve{TokenBPrice: 2}

	// pool value = 100 + 50*2 = 200; depositing 100 token A adds half the
	// pool's value
	poolTokens, err := c.DepositSingleTokenType(
		math.NewInt(100), math.NewInt(100), math.NewInt(50), math.NewInt(1000), curve.AtoB)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(500), poolTokens)

	// token B carries its price as weight
	poolTokens, err = c.DepositSingleTokenType(
		math.NewInt(50), math.NewInt(100), math.NewInt(50), math.NewInt(1000), curve.BtoA)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(500), poolTokens)
}

func TestConstantPriceNormalizedValueOverflowBranch(t *testing.T) {
	c := curve.ConstantPriceCurve{TokenBPrice: 2}

	// b*price lands within MaxUint64 of the top of the 128-bit domain, taking
	// the divide-before-sum branch
	tokenB := safemath.MaxUint128().Sub(math.OneInt()).QuoRaw(2)
	value, err := c.NormalizedValue(math.NewInt(100), tokenB)
	require.NoError(t, err)
	require.True(t, value.IsPositive())
	// halved B value plus half the A side
	expected := math.LegacyNewDecFromInt(tokenB.Add(math.NewInt(50)))
	require.Equal(t, expected, value)
}

func TestConstantPriceValidate(t *testing.T) {
	require.NoError(t, curve.ConstantPriceCurve{TokenBPrice: 1}.Validate())
	err := curve.ConstantPriceCurve{TokenBPrice: 0}.Validate()
	require.Error(t, err)
	require.True(t, curve.ErrInvalidCurve.Is(err))
}

func TestConstantPriceValidateSupply(t *testing.T) {
	c := curve.ConstantPriceCurve{TokenBPrice: 1}
	require.NoError(t, c.ValidateSupply(math.OneInt(), math.ZeroInt()))
	require.True(t, curve.ErrEmptySupply.Is(c.ValidateSupply(math.ZeroInt(), math.OneInt())))
}
