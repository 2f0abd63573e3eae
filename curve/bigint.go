package curve

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/coral-dex/pricing/safemath"
)

// 256-bit checked arithmetic for the places where 128-bit products are not
// enough: the stable solver and the constant price pool-token weighting.
// Mirrors the safemath package but stays on raw big.Int to keep the Newton
// loops allocation-light.

var (
	bigOne     = big.NewInt(1)
	maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
)

func mul256(a, b *big.Int) (*big.Int, error) {
	result := new(big.Int).Mul(a, b)
	if result.Cmp(maxUint256) > 0 {
		return nil, safemath.ErrCalculationFailure.Wrap("256-bit multiplication overflow")
	}
	return result, nil
}

func add256(a, b *big.Int) (*big.Int, error) {
	result := new(big.Int).Add(a, b)
	if result.Cmp(maxUint256) > 0 {
		return nil, safemath.ErrCalculationFailure.Wrap("256-bit addition overflow")
	}
	return result, nil
}

func sub256(a, b *big.Int) (*big.Int, error) {
	if a.Cmp(b) < 0 {
		return nil, safemath.ErrCalculationFailure.Wrap("256-bit subtraction underflow")
	}
	return new(big.Int).Sub(a, b), nil
}

func div256(a, b *big.Int) (*big.Int, error) {
	if b.Sign() == 0 {
		return nil, safemath.ErrCalculationFailure.Wrap("256-bit division by zero")
	}
	return new(big.Int).Quo(a, b), nil
}

// ceilDiv256Strict rounds the quotient up, refusing a zero floored quotient:
// dividing a small number by a big one fails rather than conjuring a
// spurious 1.
func ceilDiv256Strict(dividend, divisor *big.Int) (*big.Int, error) {
	if divisor.Sign() == 0 {
		return nil, safemath.ErrCalculationFailure.Wrap("256-bit ceiling division by zero")
	}
	quotient, remainder := new(big.Int).QuoRem(dividend, divisor, new(big.Int))
	if quotient.Sign() == 0 {
		return nil, safemath.ErrCalculationFailure.Wrap("ceiling division quotient is zero")
	}
	if remainder.Sign() > 0 {
		quotient.Add(quotient, bigOne)
	}
	return quotient, nil
}

// toUint128 narrows a 256-bit intermediate back to the engine's working
// width.
func toUint128(v *big.Int) (math.Int, error) {
	if v.Cmp(maxUint128) > 0 {
		return math.Int{}, safemath.ErrConversionFailure.Wrapf("value %s does not fit in 128 bits", v.String())
	}
	return math.NewIntFromBigInt(new(big.Int).Set(v)), nil
}
