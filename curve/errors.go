package curve

import "cosmossdk.io/errors"

// Sentinel errors for curve calculations.
var (
	// ErrZeroTradingTokens rejects any swap, deposit or withdraw whose
	// computed amount rounds to zero. Trades too small to move the other side
	// are refused outright, never partially executed.
	ErrZeroTradingTokens = errors.Register("curve", 2, "given amount of tokens rounds to zero trading tokens")

	// ErrInvalidCurve flags a curve parameter outside its valid domain.
	ErrInvalidCurve = errors.Register("curve", 3, "curve parameter outside valid domain")

	// ErrEmptySupply flags degenerate initial liquidity for the curve.
	ErrEmptySupply = errors.Register("curve", 4, "initial token supply invalid for curve")

	// ErrUnsupportedCurveOperation flags an operation the curve does not
	// permit, such as a multi-sided deposit on a curve that disallows
	// deposits.
	ErrUnsupportedCurveOperation = errors.Register("curve", 5, "operation not supported by this curve")

	// ErrFeeCalculationFailure wraps a failed external transfer-fee lookup.
	ErrFeeCalculationFailure = errors.Register("curve", 6, "transfer fee calculation failed")
)
