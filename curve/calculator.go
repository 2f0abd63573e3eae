// Package curve implements the pricing curves of the swap engine: constant
// product, constant price, offset and stable, all behind one Calculator
// contract, plus the fee-aware swap orchestration on top of them.
//
// Everything here is a pure function over caller-supplied snapshots. The
// engine never owns reserves, never performs transfers and never touches
// state; callers apply the returned amounts themselves.
package curve

import (
	"cosmossdk.io/math"
)

// TradeDirection identifies which pool asset is being sold.
type TradeDirection int

const (
	// AtoB sells token A for token B.
	AtoB TradeDirection = iota
	// BtoA sells token B for token A.
	BtoA
)

// Opposite returns the reversed direction.
func (d TradeDirection) Opposite() TradeDirection {
	if d == AtoB {
		return BtoA
	}
	return AtoB
}

func (d TradeDirection) String() string {
	if d == AtoB {
		return "a_to_b"
	}
	return "b_to_a"
}

// RoundDirection selects who bears rounding loss on a fractional result.
type RoundDirection int

const (
	// Floor truncates, favouring the pool.
	Floor RoundDirection = iota
	// Ceiling rounds up, favouring the pool when tokens are being paid in.
	Ceiling
)

// InitialPoolSupply is the fixed LP-token amount minted the first time
// liquidity is supplied to a pool, regardless of the deposited value.
var InitialPoolSupply = math.NewInt(1_000_000_000)

// SwapWithoutFeesResult holds the raw curve output of a swap, before any fee
// accounting.
type SwapWithoutFeesResult struct {
	// SourceAmountSwapped is the amount of source token the curve actually
	// consumed; some curves consume less than offered to avoid taking tokens
	// without producing output.
	SourceAmountSwapped math.Int
	// DestinationAmountSwapped is the amount of destination token produced.
	DestinationAmountSwapped math.Int
}

// TradingTokenResult holds the token A and token B amounts corresponding to
// some quantity of pool tokens.
type TradingTokenResult struct {
	TokenAAmount math.Int
	TokenBAmount math.Int
}

// Calculator is the capability set shared by all curve variants.
//
// Amounts are non-negative math.Int values; implementations must stay within
// 128 bits for inputs and results and may use up to 256-bit intermediates.
type Calculator interface {
	// SwapWithoutFees computes the raw swap output for sourceAmount against
	// the given pool balances. Fails with ErrZeroTradingTokens when either
	// side of the result rounds to zero.
	SwapWithoutFees(sourceAmount, poolSourceAmount, poolDestinationAmount math.Int, direction TradeDirection) (SwapWithoutFeesResult, error)

	// PoolTokensToTradingTokens converts a pool-token quantity into the
	// token A / token B amounts it represents.
	PoolTokensToTradingTokens(poolTokens, poolTokenSupply, poolTokenAAmount, poolTokenBAmount math.Int, round RoundDirection) (TradingTokenResult, error)

	// DepositSingleTokenType returns the pool tokens minted for a one-sided
	// deposit of sourceAmount on the direction's source side.
	DepositSingleTokenType(sourceAmount, poolTokenAAmount, poolTokenBAmount, poolSupply math.Int, direction TradeDirection) (math.Int, error)

	// WithdrawSingleTokenTypeExactOut returns the pool tokens burned to
	// withdraw exactly sourceAmount of the direction's source side.
	WithdrawSingleTokenTypeExactOut(sourceAmount, poolTokenAAmount, poolTokenBAmount, poolSupply math.Int, direction TradeDirection, round RoundDirection) (math.Int, error)

	// NormalizedValue is a monotone measure of total pool worth, used to
	// assert value never decreases across operations. It is not on the
	// production swap path.
	NormalizedValue(poolTokenAAmount, poolTokenBAmount math.Int) (math.LegacyDec, error)

	// Validate checks the curve's parameters against their domain.
	Validate() error

	// ValidateSupply checks that initial liquidity is non-degenerate for
	// this curve.
	ValidateSupply(tokenAAmount, tokenBAmount math.Int) error

	// AllowsDeposits reports whether outside parties may make multi-sided
	// deposits into pools on this curve.
	AllowsDeposits() bool

	// NewPoolSupply returns the initial LP-token mint amount.
	NewPoolSupply() math.Int
}

func validateSupplyBothSides(tokenAAmount, tokenBAmount math.Int) error {
	if !tokenAAmount.IsPositive() {
		return ErrEmptySupply.Wrap("token A amount must be greater than zero")
	}
	if !tokenBAmount.IsPositive() {
		return ErrEmptySupply.Wrap("token B amount must be greater than zero")
	}
	return nil
}

func validateSupplyTokenA(tokenAAmount math.Int) error {
	if !tokenAAmount.IsPositive() {
		return ErrEmptySupply.Wrap("token A amount must be greater than zero")
	}
	return nil
}
