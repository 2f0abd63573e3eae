package curve_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/coral-dex/pricing/curve"
	"github.com/coral-dex/pricing/safemath"
)

func TestStableSwapBalancedPool(t *testing.T) {
	c, err := curve.NewStableCurve(100, 6, 6)
	require.NoError(t, err)

	result, err := c.SwapWithoutFees(
		math.NewInt(1_000_000), math.NewInt(1_000_000), math.NewInt(1_000_000), curve.AtoB)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_000_000), result.SourceAmountSwapped)

	// reference value for amp=100 on a balanced 1e6/1e6 pool; integer
	// truncation in the solver may land a hair off
	diff := result.DestinationAmountSwapped.Sub(math.NewInt(934_112)).Abs()
	require.True(t, diff.LTE(math.NewInt(2)),
		"destination %s not within tolerance of 934112", result.DestinationAmountSwapped)
}

func TestStableSwapLessSlippageThanConstantProduct(t *testing.T) {
	stable, err := curve.NewStableCurve(100, 6, 6)
	require.NoError(t, err)
	cp := curve.ConstantProductCurve{}

	source := math.NewInt(10_000)
	poolSrc := math.NewInt(1_000_000)
	poolDst := math.NewInt(1_000_000)

	stableResult, err := stable.SwapWithoutFees(source, poolSrc, poolDst, curve.AtoB)
	require.NoError(t, err)
	cpResult, err := cp.SwapWithoutFees(source, poolSrc, poolDst, curve.AtoB)
	require.NoError(t, err)
	require.True(t, stableResult.DestinationAmountSwapped.GT(cpResult.DestinationAmountSwapped))
}

func TestStableSwapDecimalFactors(t *testing.T) {
	// token A has 6 decimals, token B has 9: the B side is worth 1000x per
	// unit, so balances at a 1:1000 ratio are at parity
	c, err := curve.NewStableCurve(100, 9, 6)
	require.NoError(t, err)
	require.EqualValues(t, 1, c.TokenAFactor)
	require.EqualValues(t, 1000, c.TokenBFactor)

	result, err := c.SwapWithoutFees(
		math.NewInt(1_000_000), math.NewInt(1_000_000_000), math.NewInt(1_000_000), curve.AtoB)
	require.NoError(t, err)
	// near parity, 1_000_000 base units of A buy about 1_000 base units of B
	diff := result.DestinationAmountSwapped.Sub(math.NewInt(1000)).Abs()
	require.True(t, diff.LTE(math.NewInt(10)),
		"destination %s not near 1000", result.DestinationAmountSwapped)
}

func TestStableSwapZeroOutput(t *testing.T) {
	c, err := curve.NewStableCurve(100, 6, 6)
	require.NoError(t, err)

	_, err = c.SwapWithoutFees(
		math.ZeroInt(), math.NewInt(1_000_000), math.NewInt(1_000_000), curve.AtoB)
	require.Error(t, err)
}

func TestStableSingleSidedDepositWithdraw(t *testing.T) {
	c, err := curve.NewStableCurve(100, 6, 6)
	require.NoError(t, err)

	poolA := math.NewInt(1_000_000)
	poolB := math.NewInt(1_000_000)

	minted, err := c.DepositSingleTokenType(
		math.NewInt(100_000), poolA, poolB, curve.InitialPoolSupply, curve.AtoB)
	require.NoError(t, err)
	require.True(t, minted.IsPositive())
	// a one-sided deposit into a balanced pool mints slightly less than the
	// proportional share
	require.True(t, minted.LT(math.NewInt(50_000_000)))

	burnedFloor, err := c.WithdrawSingleTokenTypeExactOut(
		math.NewInt(100_000), poolA, poolB, curve.InitialPoolSupply, curve.AtoB, curve.Floor)
	require.NoError(t, err)
	burnedCeiling, err := c.WithdrawSingleTokenTypeExactOut(
		math.NewInt(100_000), poolA, poolB, curve.InitialPoolSupply, curve.AtoB, curve.Ceiling)
	require.NoError(t, err)
	require.True(t, burnedCeiling.GTE(burnedFloor))
	// withdrawing one-sided burns slightly more than the proportional share
	require.True(t, burnedCeiling.GT(math.NewInt(50_000_000)))
}

func TestStableValidate(t *testing.T) {
	tests := []struct {
		name string
		amp  uint64
		ok   bool
	}{
		{"zero", 0, false},
		{"lower bound", 1, false},
		{"just above lower bound", 2, true},
		{"typical", 100, true},
		{"just below upper bound", 999_999, true},
		{"upper bound", 1_000_000, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := curve.StableCurve{Amp: tc.amp, TokenAFactor: 1, TokenBFactor: 1}.Validate()
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.True(t, curve.ErrInvalidCurve.Is(err))
			}
		})
	}
}

func TestNewStableCurveRejectsInvalidAmp(t *testing.T) {
	_, err := curve.NewStableCurve(1, 6, 6)
	require.True(t, curve.ErrInvalidCurve.Is(err))
	_, err = curve.NewStableCurve(1_000_000, 6, 6)
	require.True(t, curve.ErrInvalidCurve.Is(err))
}

// uint128 composes a 128-bit balance from two fuzzed 64-bit limbs.
func uint128(hi, lo uint64) math.Int {
	return math.NewIntFromUint64(hi).
		Mul(math.NewIntFromUint64(^uint64(0)).Add(math.OneInt())).
		Add(math.NewIntFromUint64(lo))
}

// FuzzStableSolverConvergence drives the Newton solvers across the whole
// amplification domain and the full 128-bit balance range; every run must
// terminate inside the iteration cap with either a result or a
// checked-arithmetic failure.
func FuzzStableSolverConvergence(f *testing.F) {
	f.Add(uint64(100), uint64(0), uint64(1_000_000), uint64(0), uint64(1_000_000), uint64(0), uint64(1_000_000))
	f.Add(uint64(2), uint64(0), uint64(1), uint64(0), uint64(1), uint64(0), uint64(1))
	f.Add(uint64(999_999), uint64(1<<30), uint64(7), uint64(0), uint64(1), uint64(1<<30), uint64(9))
	f.Add(uint64(85), uint64(^uint64(0)), uint64(^uint64(0)), uint64(1), uint64(0), uint64(0), uint64(1000))

	f.Fuzz(func(t *testing.T, amp, sourceHi, sourceLo, poolSourceHi, poolSourceLo, poolDestinationHi, poolDestinationLo uint64) {
		if amp <= curve.MinAmp || amp >= curve.MaxAmp {
			return
		}
		sourceAmount := uint128(sourceHi, sourceLo)
		poolSource := uint128(poolSourceHi, poolSourceLo)
		poolDestination := uint128(poolDestinationHi, poolDestinationLo)
		if sourceAmount.IsZero() || poolSource.IsZero() || poolDestination.IsZero() {
			return
		}
		c, err := curve.NewStableCurve(amp, 6, 6)
		require.NoError(t, err)

		result, err := c.SwapWithoutFees(sourceAmount, poolSource, poolDestination, curve.AtoB)
		if err != nil {
			require.True(t,
				safemath.ErrCalculationFailure.Is(err) ||
					safemath.ErrConversionFailure.Is(err) ||
					curve.ErrZeroTradingTokens.Is(err),
				"unexpected error: %v", err)
			return
		}
		require.True(t, result.DestinationAmountSwapped.IsPositive())
		require.True(t, result.DestinationAmountSwapped.LTE(poolDestination))
	})
}

// FuzzStableValueNonDecreasing checks the invariant D never shrinks across a
// swap.
func FuzzStableValueNonDecreasing(f *testing.F) {
	f.Add(uint64(100), int64(500_000), int64(1_000_000), int64(1_000_000))
	f.Add(uint64(1000), int64(1), int64(100), int64(100))

	f.Fuzz(func(t *testing.T, amp uint64, sourceAmount, poolSource, poolDestination int64) {
		if amp <= curve.MinAmp || amp >= curve.MaxAmp {
			return
		}
		if sourceAmount <= 0 || poolSource <= 0 || poolDestination <= 0 {
			return
		}
		c, err := curve.NewStableCurve(amp, 6, 6)
		require.NoError(t, err)

		result, err := c.SwapWithoutFees(
			math.NewInt(sourceAmount), math.NewInt(poolSource), math.NewInt(poolDestination), curve.AtoB)
		if err != nil {
			return
		}
		before, err := c.NormalizedValue(math.NewInt(poolSource), math.NewInt(poolDestination))
		require.NoError(t, err)
		after, err := c.NormalizedValue(
			math.NewInt(poolSource).Add(result.SourceAmountSwapped),
			math.NewInt(poolDestination).Sub(result.DestinationAmountSwapped))
		require.NoError(t, err)
		// allow the solver's unit-sized convergence tolerance
		require.True(t, after.Add(math.LegacyNewDec(2)).GTE(before),
			"value decreased: %s -> %s", before, after)
	})
}
