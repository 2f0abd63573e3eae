// Package cmd wires the pricesim CLI: offline quoting against the pricing
// engine, with pool parameters supplied by flags or a config file.
package cmd

import (
	"os"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd creates the root command for pricesim.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "pricesim",
		Short: "Offline AMM pricing simulator",
		Long: `pricesim runs the pool pricing engine against a reserve snapshot you
supply on the command line, without touching any chain state. Curve
parameters and the fee schedule come from flags or a config file.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			configFile, err := cmd.Flags().GetString(flagConfig)
			if err != nil {
				return err
			}
			if configFile != "" {
				v.SetConfigFile(configFile)
				if err := v.ReadInConfig(); err != nil {
					return err
				}
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String(flagConfig, "", "path to a config file with curve and fee settings")

	logger := log.NewLogger(os.Stderr)
	rootCmd.AddCommand(
		newQuoteCmd(v, logger),
		newDepositCmd(v, logger),
		newWithdrawCmd(v, logger),
	)
	return rootCmd
}
