package cmd

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/coral-dex/pricing/curve"
	"github.com/coral-dex/pricing/fees"
)

const (
	flagConfig = "config"

	flagCurve          = "curve"
	flagTokenBPrice    = "token-b-price"
	flagTokenBOffset   = "token-b-offset"
	flagAmp            = "amp"
	flagTokenADecimals = "token-a-decimals"
	flagTokenBDecimals = "token-b-decimals"

	flagPoolTokenA = "pool-a"
	flagPoolTokenB = "pool-b"
	flagPoolSupply = "pool-supply"
	flagAmount     = "amount"
	flagDirection  = "direction"

	flagTradeFeeNum         = "trade-fee-numerator"
	flagTradeFeeDen         = "trade-fee-denominator"
	flagOwnerTradeFeeNum    = "owner-trade-fee-numerator"
	flagOwnerTradeFeeDen    = "owner-trade-fee-denominator"
	flagOwnerWithdrawFeeNum = "owner-withdraw-fee-numerator"
	flagOwnerWithdrawFeeDen = "owner-withdraw-fee-denominator"
	flagHostFeeNum          = "host-fee-numerator"
	flagHostFeeDen          = "host-fee-denominator"
	flagHostFees            = "host-fees"
)

func addPoolFlags(fs *pflag.FlagSet) {
	fs.String(flagCurve, "constant_product", "curve type: constant_product, constant_price, offset or stable")
	fs.Uint64(flagTokenBPrice, 0, "fixed token B price for the constant price curve")
	fs.Uint64(flagTokenBOffset, 0, "token B offset for the offset curve")
	fs.Uint64(flagAmp, 0, "amplification coefficient for the stable curve")
	fs.Uint8(flagTokenADecimals, 6, "token A decimals for the stable curve")
	fs.Uint8(flagTokenBDecimals, 6, "token B decimals for the stable curve")

	fs.String(flagPoolTokenA, "0", "token A reserve")
	fs.String(flagPoolTokenB, "0", "token B reserve")
	fs.String(flagPoolSupply, curve.InitialPoolSupply.String(), "LP token supply")
	fs.String(flagAmount, "0", "input amount")
	fs.String(flagDirection, "a_to_b", "trade direction: a_to_b or b_to_a")

	fs.Uint64(flagTradeFeeNum, 0, "trade fee numerator")
	fs.Uint64(flagTradeFeeDen, 0, "trade fee denominator")
	fs.Uint64(flagOwnerTradeFeeNum, 0, "owner trade fee numerator")
	fs.Uint64(flagOwnerTradeFeeDen, 0, "owner trade fee denominator")
	fs.Uint64(flagOwnerWithdrawFeeNum, 0, "owner withdraw fee numerator")
	fs.Uint64(flagOwnerWithdrawFeeDen, 0, "owner withdraw fee denominator")
	fs.Uint64(flagHostFeeNum, 0, "host fee numerator")
	fs.Uint64(flagHostFeeDen, 0, "host fee denominator")
	fs.Bool(flagHostFees, false, "route a host fee slice out of the owner fee")
}

func curveParamsFromConfig(v *viper.Viper) (curve.CurveParams, error) {
	var curveType curve.CurveType
	switch name := v.GetString(flagCurve); name {
	case "constant_product":
		curveType = curve.ConstantProduct
	case "constant_price":
		curveType = curve.ConstantPrice
	case "offset":
		curveType = curve.Offset
	case "stable":
		curveType = curve.Stable
	default:
		return curve.CurveParams{}, fmt.Errorf("unknown curve %q", name)
	}
	tokenADecimals, err := decimalsFromConfig(v, flagTokenADecimals)
	if err != nil {
		return curve.CurveParams{}, err
	}
	tokenBDecimals, err := decimalsFromConfig(v, flagTokenBDecimals)
	if err != nil {
		return curve.CurveParams{}, err
	}
	return curve.CurveParams{
		Type:           curveType,
		TokenBPrice:    v.GetUint64(flagTokenBPrice),
		TokenBOffset:   v.GetUint64(flagTokenBOffset),
		Amp:            v.GetUint64(flagAmp),
		TokenADecimals: tokenADecimals,
		TokenBDecimals: tokenBDecimals,
	}, nil
}

func decimalsFromConfig(v *viper.Viper, flag string) (uint8, error) {
	raw := v.GetUint(flag)
	if raw > 255 {
		return 0, fmt.Errorf("--%s %d out of range, must be at most 255", flag, raw)
	}
	return uint8(raw), nil
}

func feesFromConfig(v *viper.Viper) (fees.Fees, error) {
	poolFees := fees.Fees{
		TradeFeeNumerator:           v.GetUint64(flagTradeFeeNum),
		TradeFeeDenominator:         v.GetUint64(flagTradeFeeDen),
		OwnerTradeFeeNumerator:      v.GetUint64(flagOwnerTradeFeeNum),
		OwnerTradeFeeDenominator:    v.GetUint64(flagOwnerTradeFeeDen),
		OwnerWithdrawFeeNumerator:   v.GetUint64(flagOwnerWithdrawFeeNum),
		OwnerWithdrawFeeDenominator: v.GetUint64(flagOwnerWithdrawFeeDen),
		HostFeeNumerator:            v.GetUint64(flagHostFeeNum),
		HostFeeDenominator:          v.GetUint64(flagHostFeeDen),
	}
	if err := poolFees.Validate(); err != nil {
		return fees.Fees{}, err
	}
	return poolFees, nil
}

func amountFromConfig(v *viper.Viper, flag string) (math.Int, error) {
	raw := v.GetString(flag)
	amount, ok := math.NewIntFromString(raw)
	if !ok || amount.IsNegative() {
		return math.Int{}, fmt.Errorf("invalid amount %q for --%s", raw, flag)
	}
	return amount, nil
}

func directionFromConfig(v *viper.Viper) (curve.TradeDirection, error) {
	switch raw := v.GetString(flagDirection); raw {
	case "a_to_b":
		return curve.AtoB, nil
	case "b_to_a":
		return curve.BtoA, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", raw)
	}
}
