package cmd

import (
	"strings"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/IyanuOluwaJesuloba/coralswap-core/x/pair/types"
)

// NewRootCmd builds the pairsim command tree. Fee parameters are shared by
// all subcommands and can come from flags, environment (PAIRSIM_*) or a
// config file.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "pairsim",
		Short: "Drive a trading-pair settlement engine against in-memory fakes",
		Long: `pairsim runs the pair engine (constant-product swaps, dynamic fees,
flash loans, liquidity shares) against an in-memory bank and store, so fee
parameters and trade sequences can be explored without a running chain.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			v.SetEnvPrefix("pairsim")
			v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			v.AutomaticEnv()

			if cfg := v.GetString("config"); cfg != "" {
				v.SetConfigFile(cfg)
				if err := v.ReadInConfig(); err != nil {
					return err
				}
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "optional config file")
	rootCmd.PersistentFlags().Uint32("baseline-fee-bps", types.DefaultFeeBps, "fee charged at zero volatility")
	rootCmd.PersistentFlags().Uint32("min-fee-bps", 5, "lower fee bound")
	rootCmd.PersistentFlags().Uint32("max-fee-bps", 100, "upper fee bound")
	rootCmd.PersistentFlags().Uint32("ramp-up-multiplier", 2, "volatility-to-fee multiplier")
	rootCmd.PersistentFlags().Uint32("cooldown-divisor", 2, "accumulator divisor per idle period")
	rootCmd.PersistentFlags().Uint64("decay-threshold", 100, "idle blocks before fee decay")

	rootCmd.AddCommand(
		newSimulateCmd(v),
		newFeeCurveCmd(v),
	)
	return rootCmd
}

func feeParamsFromViper(v *viper.Viper) (types.FeeParams, error) {
	p := types.FeeParams{
		BaselineFeeBps:       v.GetUint32("baseline-fee-bps"),
		MinFeeBps:            v.GetUint32("min-fee-bps"),
		MaxFeeBps:            v.GetUint32("max-fee-bps"),
		RampUpMultiplier:     v.GetUint32("ramp-up-multiplier"),
		CooldownDivisor:      v.GetUint32("cooldown-divisor"),
		EmaAlpha:             types.Scale.QuoRaw(10),
		DecayThresholdBlocks: v.GetUint64("decay-threshold"),
	}
	if err := p.Validate(); err != nil {
		return types.FeeParams{}, err
	}
	return p, nil
}

func mustInt(v *viper.Viper, key string) math.Int {
	return math.NewInt(v.GetInt64(key))
}
