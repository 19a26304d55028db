package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/IyanuOluwaJesuloba/coralswap-core/x/pair/keeper"
	"github.com/IyanuOluwaJesuloba/coralswap-core/x/pair/types"
)

func newFeeCurveCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fee-curve",
		Short: "Print the fee charged across the volatility range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := feeParamsFromViper(v)
			if err != nil {
				return err
			}

			steps := v.GetInt("steps")
			if steps < 1 {
				steps = 1
			}

			fs := params.NewFeeState(0)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "vol_accumulator\tfee_bps")
			for i := 0; i <= steps; i++ {
				fs.VolAccumulator = types.Scale.MulRaw(int64(i)).QuoRaw(int64(steps))
				fmt.Fprintf(w, "%s\t%d\n", fs.VolAccumulator, keeper.ComputeFeeBps(fs))
			}
			return w.Flush()
		},
	}

	cmd.Flags().Int("steps", 10, "number of volatility samples between 0 and full scale")
	return cmd
}
