// Package safemath provides overflow-checked integer arithmetic for the
// pricing engine.
//
// All token amounts flow through these helpers as math.Int values confined to
// the unsigned 128-bit domain; anything that would wrap, truncate, or divide
// by zero returns ErrCalculationFailure instead. Narrowing back down to
// uint64 goes through ToUint64, which returns ErrConversionFailure when the
// value does not fit. The stable-curve solver carries its own 256-bit
// helpers, since its intermediate products exceed 128 bits by design.
package safemath

import (
	"math/big"

	"cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// Sentinel errors for checked arithmetic.
var (
	ErrCalculationFailure = errors.Register("safemath", 2, "calculation failure: overflow, underflow or division by zero")
	ErrConversionFailure  = errors.Register("safemath", 3, "conversion failure: value does not fit target width")
)

var (
	maxUint64  = new(big.Int).SetUint64(^uint64(0))
	maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
)

// MaxUint128 returns the largest value representable in the engine's working
// width.
func MaxUint128() math.Int {
	return math.NewIntFromBigInt(new(big.Int).Set(maxUint128))
}

func checked(result *big.Int) (math.Int, error) {
	if result.Sign() < 0 {
		return math.Int{}, ErrCalculationFailure.Wrap("negative result")
	}
	if result.Cmp(maxUint128) > 0 {
		return math.Int{}, ErrCalculationFailure.Wrapf("result %s exceeds 128 bits", result.String())
	}
	return math.NewIntFromBigInt(result), nil
}

// Add returns a + b, failing on overflow past 128 bits.
func Add(a, b math.Int) (math.Int, error) {
	return checked(new(big.Int).Add(a.BigInt(), b.BigInt()))
}

// Sub returns a - b, failing on underflow below zero.
func Sub(a, b math.Int) (math.Int, error) {
	if a.LT(b) {
		return math.Int{}, ErrCalculationFailure.Wrapf("underflow: cannot subtract %s from %s", b.String(), a.String())
	}
	return math.NewIntFromBigInt(new(big.Int).Sub(a.BigInt(), b.BigInt())), nil
}

// Mul returns a * b, failing on overflow past 128 bits.
func Mul(a, b math.Int) (math.Int, error) {
	if a.IsZero() || b.IsZero() {
		return math.ZeroInt(), nil
	}
	return checked(new(big.Int).Mul(a.BigInt(), b.BigInt()))
}

// Quo returns floor(a / b), failing on division by zero.
func Quo(a, b math.Int) (math.Int, error) {
	if b.IsZero() {
		return math.Int{}, ErrCalculationFailure.Wrap("division by zero")
	}
	return math.NewIntFromBigInt(new(big.Int).Quo(a.BigInt(), b.BigInt())), nil
}

// Rem returns a mod b, failing on division by zero.
func Rem(a, b math.Int) (math.Int, error) {
	if b.IsZero() {
		return math.Int{}, ErrCalculationFailure.Wrap("remainder by zero")
	}
	return math.NewIntFromBigInt(new(big.Int).Rem(a.BigInt(), b.BigInt())), nil
}

// CeilDiv returns ceil(a / b) computed as (a + b - 1) / b. The intermediate
// sum is bound-checked, so inputs near the top of the domain fail rather than
// wrap.
func CeilDiv(a, b math.Int) (math.Int, error) {
	if b.IsZero() {
		return math.Int{}, ErrCalculationFailure.Wrap("ceiling division by zero")
	}
	sum, err := Add(a, b)
	if err != nil {
		return math.Int{}, err
	}
	return math.NewIntFromBigInt(new(big.Int).Quo(new(big.Int).Sub(sum.BigInt(), big.NewInt(1)), b.BigInt())), nil
}

// MulDiv returns floor(a * b / c) with the product bound-checked before the
// division. Commonly used for ratio calculations.
func MulDiv(a, b, c math.Int) (math.Int, error) {
	product, err := Mul(a, b)
	if err != nil {
		return math.Int{}, err
	}
	return Quo(product, c)
}

// ToUint64 narrows v to uint64.
func ToUint64(v math.Int) (uint64, error) {
	if v.IsNegative() || v.BigInt().Cmp(maxUint64) > 0 {
		return 0, ErrConversionFailure.Wrapf("value %s does not fit in uint64", v.String())
	}
	return v.Uint64(), nil
}

// AddUint64 adds two uint64 values with overflow checking.
func AddUint64(a, b uint64) (uint64, error) {
	if a > ^uint64(0)-b {
		return 0, ErrCalculationFailure.Wrap("uint64 addition overflow")
	}
	return a + b, nil
}

// MulUint64 multiplies two uint64 values with overflow checking.
func MulUint64(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	result := a * b
	if result/a != b {
		return 0, ErrCalculationFailure.Wrap("uint64 multiplication overflow")
	}
	return result, nil
}
