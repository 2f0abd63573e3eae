package curve

import (
	"cosmossdk.io/math"

	"github.com/coral-dex/pricing/fees"
	"github.com/coral-dex/pricing/safemath"
)

// TransferFeeCalculator supplies externally determined token-transfer fees.
// The engine passes amounts through it without knowing the schedule; a nil
// calculator disables transfer-fee handling entirely.
type TransferFeeCalculator interface {
	// Fee returns the transfer fee withheld when the given amount is moved.
	Fee(amount math.Int) (math.Int, error)
	// InverseFee returns the fee to add on top so that postFeeAmount arrives
	// after the transfer fee is withheld.
	InverseFee(postFeeAmount math.Int) (math.Int, error)
}

// FeeInputs bundles everything fee-related a swap needs.
type FeeInputs struct {
	PoolFees fees.Fees
	// TransferFees is optional; nil means the source token charges no
	// transfer fee.
	TransferFees TransferFeeCalculator
	// HostFees routes a slice of the owner fee to a host account when true.
	HostFees bool
}

// SwapResult is the full outcome of one fee-aware swap computation.
type SwapResult struct {
	// NewSourceAmount is the updated source vault balance: the old balance
	// plus the curve-consumed amount plus the trade fee. Owner and host fees
	// are collected outside the vault and are not included.
	NewSourceAmount math.Int
	// NewDestinationAmount is the updated destination vault balance.
	NewDestinationAmount math.Int
	// SourceAmountSwapped is the trader's total source debit, fees included.
	SourceAmountSwapped math.Int
	// DestinationAmountSwapped is the amount of destination token paid out.
	DestinationAmountSwapped math.Int
	// SourceAmountToVault is what must physically arrive in the source vault:
	// the curve-consumed amount plus the trade fee, grossed up by the inverse
	// transfer fee when one applies.
	SourceAmountToVault math.Int
	// TradeFee stays in the vault and accrues to LP-token holders.
	TradeFee math.Int
	// OwnerFee goes to the pool owner's fee account.
	OwnerFee math.Int
	// HostFee is the host's slice, already carved out of the owner fee.
	HostFee math.Int
}

// TotalFees is trade + owner + host, checked.
func (r SwapResult) TotalFees() (math.Int, error) {
	total, err := safemath.Add(r.TradeFee, r.OwnerFee)
	if err != nil {
		return math.Int{}, err
	}
	return safemath.Add(total, r.HostFee)
}

// SwapCurve pairs a curve variant with its calculator and layers the fee
// model on top.
type SwapCurve struct {
	CurveType  CurveType
	Calculator Calculator
}

// Swap computes the full fee-aware swap.
//
// Fee ordering: the owner fee (and the host slice inside it) is taken off the
// top, then any transfer fee on the way into the vault, then the trade fee;
// what remains is priced by the curve. The trade fee is re-added afterwards
// since it stays in the vault, and the transfer fee is grossed back up so the
// vault receives the full amount after withholding.
func (c SwapCurve) Swap(sourceAmount, poolSourceAmount, poolDestinationAmount math.Int, direction TradeDirection, feeInputs FeeInputs) (SwapResult, error) {
	ownerAndHostFee, err := feeInputs.PoolFees.OwnerTradingFee(sourceAmount)
	if err != nil {
		return SwapResult{}, err
	}
	hostFee := math.ZeroInt()
	if feeInputs.HostFees {
		hostFee, err = feeInputs.PoolFees.HostFee(ownerAndHostFee)
		if err != nil {
			return SwapResult{}, err
		}
	}
	ownerFee, err := safemath.Sub(ownerAndHostFee, hostFee)
	if err != nil {
		return SwapResult{}, err
	}

	remaining, err := safemath.Sub(sourceAmount, ownerAndHostFee)
	if err != nil {
		return SwapResult{}, err
	}
	transferFee := math.ZeroInt()
	if feeInputs.TransferFees != nil {
		transferFee, err = feeInputs.TransferFees.Fee(remaining)
		if err != nil {
			return SwapResult{}, ErrFeeCalculationFailure.Wrapf("transfer fee: %v", err)
		}
		remaining, err = safemath.Sub(remaining, transferFee)
		if err != nil {
			return SwapResult{}, err
		}
	}

	tradeFee, err := feeInputs.PoolFees.TradingFee(remaining)
	if err != nil {
		return SwapResult{}, err
	}
	curveSourceAmount, err := safemath.Sub(remaining, tradeFee)
	if err != nil {
		return SwapResult{}, err
	}

	swapped, err := c.Calculator.SwapWithoutFees(curveSourceAmount, poolSourceAmount, poolDestinationAmount, direction)
	if err != nil {
		return SwapResult{}, err
	}

	// the trade fee stays in the vault, so it rides along with the consumed
	// amount everywhere below
	vaultSourceAmount, err := safemath.Add(swapped.SourceAmountSwapped, tradeFee)
	if err != nil {
		return SwapResult{}, err
	}
	newSourceAmount, err := safemath.Add(poolSourceAmount, vaultSourceAmount)
	if err != nil {
		return SwapResult{}, err
	}
	newDestinationAmount, err := safemath.Sub(poolDestinationAmount, swapped.DestinationAmountSwapped)
	if err != nil {
		return SwapResult{}, err
	}

	sourceAmountToVault := vaultSourceAmount
	if feeInputs.TransferFees != nil {
		inverseFee, err := feeInputs.TransferFees.InverseFee(vaultSourceAmount)
		if err != nil {
			return SwapResult{}, ErrFeeCalculationFailure.Wrapf("inverse transfer fee: %v", err)
		}
		sourceAmountToVault, err = safemath.Add(vaultSourceAmount, inverseFee)
		if err != nil {
			return SwapResult{}, err
		}
	}

	sourceAmountSwapped, err := safemath.Add(vaultSourceAmount, ownerAndHostFee)
	if err != nil {
		return SwapResult{}, err
	}
	if !transferFee.IsZero() {
		sourceAmountSwapped, err = safemath.Add(sourceAmountSwapped, transferFee)
		if err != nil {
			return SwapResult{}, err
		}
	}

	return SwapResult{
		NewSourceAmount:          newSourceAmount,
		NewDestinationAmount:     newDestinationAmount,
		SourceAmountSwapped:      sourceAmountSwapped,
		DestinationAmountSwapped: swapped.DestinationAmountSwapped,
		SourceAmountToVault:      sourceAmountToVault,
		TradeFee:                 tradeFee,
		OwnerFee:                 ownerFee,
		HostFee:                  hostFee,
	}, nil
}

// DepositSingleTokenType converts a one-sided deposit into pool tokens,
// debiting the trading fees a swap of half the amount for the other side
// would have incurred, after the Balancer single-asset-deposit formula.
func (c SwapCurve) DepositSingleTokenType(sourceAmount, poolTokenAAmount, poolTokenBAmount, poolSupply math.Int, direction TradeDirection, poolFees fees.Fees) (math.Int, error) {
	if !c.Calculator.AllowsDeposits() {
		return math.Int{}, ErrUnsupportedCurveOperation.Wrapf("%s curve does not allow deposits", c.CurveType)
	}
	if sourceAmount.IsZero() {
		return math.ZeroInt(), nil
	}
	halfSourceAmount := math.MaxInt(math.OneInt(), sourceAmount.QuoRaw(2))
	tradeFee, err := poolFees.TradingFee(halfSourceAmount)
	if err != nil {
		return math.Int{}, err
	}
	ownerFee, err := poolFees.OwnerTradingFee(halfSourceAmount)
	if err != nil {
		return math.Int{}, err
	}
	totalFees, err := safemath.Add(tradeFee, ownerFee)
	if err != nil {
		return math.Int{}, err
	}
	netSourceAmount, err := safemath.Sub(sourceAmount, totalFees)
	if err != nil {
		return math.Int{}, err
	}
	return c.Calculator.DepositSingleTokenType(netSourceAmount, poolTokenAAmount, poolTokenBAmount, poolSupply, direction)
}

// WithdrawSingleTokenTypeExactOut returns the pool tokens to burn so that
// exactly sourceAmount of one side reaches the withdrawer. The exact-out
// shape needs the fee inverted: half the amount is grossed up by the
// pre-trading-fee inverse before pricing, and the conversion rounds up.
func (c SwapCurve) WithdrawSingleTokenTypeExactOut(sourceAmount, poolTokenAAmount, poolTokenBAmount, poolSupply math.Int, direction TradeDirection, poolFees fees.Fees) (math.Int, error) {
	if sourceAmount.IsZero() {
		return math.ZeroInt(), nil
	}
	halfSourceAmount := sourceAmount.Add(math.OneInt()).QuoRaw(2)
	preFeeSourceAmount, err := poolFees.PreTradingFeeAmount(halfSourceAmount)
	if err != nil {
		return math.Int{}, err
	}
	grossSourceAmount, err := safemath.Sub(sourceAmount, halfSourceAmount)
	if err != nil {
		return math.Int{}, err
	}
	grossSourceAmount, err = safemath.Add(grossSourceAmount, preFeeSourceAmount)
	if err != nil {
		return math.Int{}, err
	}
	return c.Calculator.WithdrawSingleTokenTypeExactOut(grossSourceAmount, poolTokenAAmount, poolTokenBAmount, poolSupply, direction, Ceiling)
}

// DepositAllTokenTypes converts a pool-token amount into the token A and
// token B amounts an outside depositor must supply, rounding up so the pool
// never undercharges. Curves with virtual liquidity refuse outside deposits.
func (c SwapCurve) DepositAllTokenTypes(poolTokens, poolTokenSupply, poolTokenAAmount, poolTokenBAmount math.Int) (TradingTokenResult, error) {
	if !c.Calculator.AllowsDeposits() {
		return TradingTokenResult{}, ErrUnsupportedCurveOperation.Wrapf("%s curve does not allow deposits", c.CurveType)
	}
	result, err := c.Calculator.PoolTokensToTradingTokens(poolTokens, poolTokenSupply, poolTokenAAmount, poolTokenBAmount, Ceiling)
	if err != nil {
		return TradingTokenResult{}, err
	}
	// a deposit must fund both sides; minting against a zero contribution on
	// either one dilutes that side's holders
	if result.TokenAAmount.IsZero() || result.TokenBAmount.IsZero() {
		return TradingTokenResult{}, ErrZeroTradingTokens.Wrapf("pool_tokens=%s", poolTokens)
	}
	return result, nil
}

// WithdrawAllTokenTypes converts a pool-token amount into the token A and
// token B amounts paid out, debiting the owner withdraw fee from the pool
// tokens first and rounding the payout down.
func (c SwapCurve) WithdrawAllTokenTypes(poolTokens, poolTokenSupply, poolTokenAAmount, poolTokenBAmount math.Int, poolFees fees.Fees) (TradingTokenResult, math.Int, error) {
	withdrawFee, err := poolFees.OwnerWithdrawFee(poolTokens)
	if err != nil {
		return TradingTokenResult{}, math.Int{}, err
	}
	remainingPoolTokens, err := safemath.Sub(poolTokens, withdrawFee)
	if err != nil {
		return TradingTokenResult{}, math.Int{}, err
	}
	result, err := c.Calculator.PoolTokensToTradingTokens(remainingPoolTokens, poolTokenSupply, poolTokenAAmount, poolTokenBAmount, Floor)
	if err != nil {
		return TradingTokenResult{}, math.Int{}, err
	}
	if result.TokenAAmount.IsZero() && result.TokenBAmount.IsZero() {
		return TradingTokenResult{}, math.Int{}, ErrZeroTradingTokens.Wrapf("pool_tokens=%s", poolTokens)
	}
	return result, withdrawFee, nil
}
