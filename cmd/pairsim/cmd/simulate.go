package cmd

import (
	"fmt"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/IyanuOluwaJesuloba/coralswap-core/internal/memstate"
	"github.com/IyanuOluwaJesuloba/coralswap-core/x/pair/keeper"
	"github.com/IyanuOluwaJesuloba/coralswap-core/x/pair/types"
)

const (
	simPairAddress = "pair1sim"
	simTrader      = "coral1simtrader"
	simTokenA      = "ucoral"
	simTokenB      = "uusd"
	simLpToken     = "lp-ucoral-uusd"
)

func newSimulateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a sequence of swaps and report reserves and fee drift",
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := feeParamsFromViper(v)
			if err != nil {
				return err
			}
			return runSimulation(cmd, v, params)
		},
	}

	cmd.Flags().Int64("reserve-a", 1_000_000, "initial deposit of token A")
	cmd.Flags().Int64("reserve-b", 1_000_000, "initial deposit of token B")
	cmd.Flags().Int("swaps", 10, "number of swaps to run")
	cmd.Flags().Int64("trade-size", 50_000, "input amount per swap")
	return cmd
}

func runSimulation(cmd *cobra.Command, v *viper.Viper, params types.FeeParams) error {
	store := memstate.NewMemStore()
	bank := memstate.NewBank()
	logger := log.NewLogger(cmd.ErrOrStderr())

	k := keeper.NewKeeper(store, bank, bank, nil, logger, simPairAddress, params)

	ctx := types.Context{BlockTime: 1, BlockHeight: 1, Caller: simTrader}
	if err := k.Initialize(ctx, "sim-registry", simTokenA, simTokenB, simLpToken); err != nil {
		return err
	}

	depositA := mustInt(v, "reserve-a")
	depositB := mustInt(v, "reserve-b")
	bank.Fund(simTokenA, simPairAddress, depositA)
	bank.Fund(simTokenB, simPairAddress, depositB)
	shares, err := k.Mint(ctx, simTrader)
	if err != nil {
		return err
	}
	logger.Info("pool seeded", "reserve_a", depositA.String(), "reserve_b", depositB.String(), "shares", shares.String())

	tradeSize := mustInt(v, "trade-size")
	swaps := v.GetInt("swaps")

	for i := 0; i < swaps; i++ {
		ctx.BlockTime += 5
		ctx.BlockHeight++

		reserveA, reserveB, _, err := k.GetReserves()
		if err != nil {
			return err
		}
		feeBps := k.GetCurrentFeeBps()

		out, err := quoteOutput(tradeSize, reserveA, reserveB, feeBps)
		if err != nil {
			return err
		}
		if !out.IsPositive() {
			logger.Info("trade too small to quote, stopping", "step", i)
			break
		}

		bank.Fund(simTokenA, simPairAddress, tradeSize)
		if err := k.Swap(ctx, math.ZeroInt(), out, simTrader); err != nil {
			return err
		}

		logger.Info("swap executed",
			"step", i,
			"fee_bps", feeBps,
			"amount_in", tradeSize.String(),
			"amount_out", out.String(),
		)
	}

	reserveA, reserveB, _, err := k.GetReserves()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "final reserves: %s %s / %s %s, fee %d bps\n",
		reserveA, simTokenA, reserveB, simTokenB, k.GetCurrentFeeBps())
	return nil
}

// quoteOutput derives the largest token B output the invariant allows for the
// given input:
//
//	out = reserve_out * in_adj / (reserve_in*10000 + in_adj),  in_adj = in*(10000-fee)
func quoteOutput(amountIn, reserveIn, reserveOut math.Int, feeBps uint32) (math.Int, error) {
	inAdj, err := keeper.SafeMul(amountIn, types.BpsDenominator.SubRaw(int64(feeBps)))
	if err != nil {
		return math.Int{}, err
	}
	numerator, err := keeper.SafeMul(reserveOut, inAdj)
	if err != nil {
		return math.Int{}, err
	}
	scaledReserve, err := keeper.SafeMul(reserveIn, types.BpsDenominator)
	if err != nil {
		return math.Int{}, err
	}
	denominator, err := keeper.SafeAdd(scaledReserve, inAdj)
	if err != nil {
		return math.Int{}, err
	}
	return keeper.SafeQuo(numerator, denominator)
}
