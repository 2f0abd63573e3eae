package cmd

import (
	"fmt"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coral-dex/pricing/curve"
)

func newQuoteCmd(v *viper.Viper, logger log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a swap against a reserve snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := curveParamsFromConfig(v)
			if err != nil {
				return err
			}
			swapCurve, err := curve.NewSwapCurve(params)
			if err != nil {
				return err
			}
			poolFees, err := feesFromConfig(v)
			if err != nil {
				return err
			}
			poolA, err := amountFromConfig(v, flagPoolTokenA)
			if err != nil {
				return err
			}
			poolB, err := amountFromConfig(v, flagPoolTokenB)
			if err != nil {
				return err
			}
			amount, err := amountFromConfig(v, flagAmount)
			if err != nil {
				return err
			}
			direction, err := directionFromConfig(v)
			if err != nil {
				return err
			}

			poolSource, poolDestination := poolA, poolB
			if direction == curve.BtoA {
				poolSource, poolDestination = poolB, poolA
			}

			logger.Info("quoting swap",
				"curve", swapCurve.CurveType.String(),
				"direction", direction.String(),
				"amount", amount.String(),
				"pool_source", poolSource.String(),
				"pool_destination", poolDestination.String(),
			)

			result, err := swapCurve.Swap(amount, poolSource, poolDestination, direction,
				curve.FeeInputs{PoolFees: poolFees, HostFees: v.GetBool(flagHostFees)})
			if err != nil {
				logger.Error("swap failed", "err", err)
				return err
			}

			totalFees, err := result.TotalFees()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "source_amount_swapped:      %s\n", result.SourceAmountSwapped)
			fmt.Fprintf(out, "destination_amount_swapped: %s\n", result.DestinationAmountSwapped)
			fmt.Fprintf(out, "source_amount_to_vault:     %s\n", result.SourceAmountToVault)
			fmt.Fprintf(out, "new_source_amount:          %s\n", result.NewSourceAmount)
			fmt.Fprintf(out, "new_destination_amount:     %s\n", result.NewDestinationAmount)
			fmt.Fprintf(out, "trade_fee:                  %s\n", result.TradeFee)
			fmt.Fprintf(out, "owner_fee:                  %s\n", result.OwnerFee)
			fmt.Fprintf(out, "host_fee:                   %s\n", result.HostFee)
			fmt.Fprintf(out, "total_fees:                 %s\n", totalFees)
			return nil
		},
	}
	addPoolFlags(cmd.Flags())
	return cmd
}
