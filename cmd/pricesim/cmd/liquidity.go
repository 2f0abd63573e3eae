package cmd

import (
	"fmt"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coral-dex/pricing/curve"
)

func newDepositCmd(v *viper.Viper, logger log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Convert an LP token amount into the token A and B amounts to deposit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			swapCurve, poolA, poolB, supply, amount, err := liquidityInputs(v)
			if err != nil {
				return err
			}

			logger.Info("pricing deposit",
				"curve", swapCurve.CurveType.String(),
				"pool_tokens", amount.String(),
			)

			result, err := swapCurve.DepositAllTokenTypes(amount, supply, poolA, poolB)
			if err != nil {
				logger.Error("deposit pricing failed", "err", err)
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "token_a_amount: %s\n", result.TokenAAmount)
			fmt.Fprintf(out, "token_b_amount: %s\n", result.TokenBAmount)
			return nil
		},
	}
	addPoolFlags(cmd.Flags())
	return cmd
}

func newWithdrawCmd(v *viper.Viper, logger log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Convert an LP token amount into the token A and B amounts paid out",
		RunE: func(cmd *cobra.Command, _ []string) error {
			swapCurve, poolA, poolB, supply, amount, err := liquidityInputs(v)
			if err != nil {
				return err
			}
			poolFees, err := feesFromConfig(v)
			if err != nil {
				return err
			}

			logger.Info("pricing withdraw",
				"curve", swapCurve.CurveType.String(),
				"pool_tokens", amount.String(),
			)

			result, withdrawFee, err := swapCurve.WithdrawAllTokenTypes(amount, supply, poolA, poolB, poolFees)
			if err != nil {
				logger.Error("withdraw pricing failed", "err", err)
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "token_a_amount: %s\n", result.TokenAAmount)
			fmt.Fprintf(out, "token_b_amount: %s\n", result.TokenBAmount)
			fmt.Fprintf(out, "withdraw_fee:   %s\n", withdrawFee)
			return nil
		},
	}
	addPoolFlags(cmd.Flags())
	return cmd
}

func liquidityInputs(v *viper.Viper) (swapCurve curve.SwapCurve, poolA, poolB, supply, amount math.Int, err error) {
	params, err := curveParamsFromConfig(v)
	if err != nil {
		return curve.SwapCurve{}, math.Int{}, math.Int{}, math.Int{}, math.Int{}, err
	}
	swapCurve, err = curve.NewSwapCurve(params)
	if err != nil {
		return curve.SwapCurve{}, math.Int{}, math.Int{}, math.Int{}, math.Int{}, err
	}
	poolA, err = amountFromConfig(v, flagPoolTokenA)
	if err != nil {
		return curve.SwapCurve{}, math.Int{}, math.Int{}, math.Int{}, math.Int{}, err
	}
	poolB, err = amountFromConfig(v, flagPoolTokenB)
	if err != nil {
		return curve.SwapCurve{}, math.Int{}, math.Int{}, math.Int{}, math.Int{}, err
	}
	supply, err = amountFromConfig(v, flagPoolSupply)
	if err != nil {
		return curve.SwapCurve{}, math.Int{}, math.Int{}, math.Int{}, math.Int{}, err
	}
	amount, err = amountFromConfig(v, flagAmount)
	if err != nil {
		return curve.SwapCurve{}, math.Int{}, math.Int{}, math.Int{}, math.Int{}, err
	}
	return swapCurve, poolA, poolB, supply, amount, nil
}
