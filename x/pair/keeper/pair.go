package keeper

import (
	"cosmossdk.io/math"

	"github.com/IyanuOluwaJesuloba/coralswap-core/x/pair/types"
)

// Initialize creates the pair record. The registry collaborator calls it
// exactly once per pair; a second call fails. Tokens must arrive in
// canonical order (tokenA < tokenB) so a swapped argument order cannot
// produce a duplicate pair.
func (k Keeper) Initialize(ctx types.Context, registry, tokenA, tokenB, lpToken string) error {
	if k.store.Has(types.PairStateKey) {
		return types.ErrAlreadyInitialized
	}

	if tokenA == "" || tokenB == "" || lpToken == "" {
		return types.ErrInvalidInput.Wrap("token identities must be set")
	}
	if tokenA == tokenB {
		return types.ErrInvalidInput.Wrap("pair tokens must differ")
	}
	if tokenA > tokenB {
		return types.ErrInvalidInput.Wrapf("tokens out of canonical order: %s > %s", tokenA, tokenB)
	}

	state := types.PairState{
		Registry:           registry,
		TokenA:             tokenA,
		TokenB:             tokenB,
		LpToken:            lpToken,
		ReserveA:           math.ZeroInt(),
		ReserveB:           math.ZeroInt(),
		BlockTimestampLast: ctx.BlockTime,
		PriceACumulative:   math.ZeroInt(),
		PriceBCumulative:   math.ZeroInt(),
		KLast:              math.ZeroInt(),
	}
	if err := k.setPairState(state); err != nil {
		return err
	}

	k.logger.Info("pair initialized",
		"token_a", tokenA,
		"token_b", tokenB,
		"lp_token", lpToken,
		"registry", registry,
	)
	return nil
}

// GetReserves returns the engine's bookkeeping of both reserves and the
// timestamp of the last reserve/oracle update.
func (k Keeper) GetReserves() (math.Int, math.Int, uint64, error) {
	pair, found, err := k.GetPairState()
	if err != nil {
		return math.Int{}, math.Int{}, 0, err
	}
	if !found {
		return math.Int{}, math.Int{}, 0, types.ErrNotInitialized
	}
	return pair.ReserveA, pair.ReserveB, pair.BlockTimestampLast, nil
}

// GetCurrentFeeBps reports the fee a swap would pay right now. Before any
// FeeState exists the engine charges the fixed default.
func (k Keeper) GetCurrentFeeBps() uint32 {
	fs, found, err := k.GetFeeState()
	if err != nil || !found {
		return types.DefaultFeeBps
	}
	return ComputeFeeBps(fs)
}

// LpToken returns the identity of the external liquidity-share token.
func (k Keeper) LpToken() (string, error) {
	pair, found, err := k.GetPairState()
	if err != nil {
		return "", err
	}
	if !found {
		return "", types.ErrNotInitialized
	}
	return pair.LpToken, nil
}

// Sync force-matches the engine's reserve bookkeeping to the balances
// actually held in custody, accruing the oracle for the elapsed window first.
func (k Keeper) Sync(ctx types.Context) error {
	pair, found, err := k.GetPairState()
	if err != nil {
		return err
	}
	if !found {
		return types.ErrNotInitialized
	}

	balanceA, balanceB, err := k.custodyBalances(ctx, pair)
	if err != nil {
		return err
	}

	if err := accrueCumulativePrices(&pair, ctx.BlockTime); err != nil {
		return err
	}

	pair.ReserveA = balanceA
	pair.ReserveB = balanceB
	pair.KLast, err = SafeMul(balanceA, balanceB)
	if err != nil {
		return err
	}

	if err := k.setPairState(pair); err != nil {
		return err
	}

	k.emitEvent(types.EventTypeSync, map[string]string{
		types.AttributeKeyReserveA: balanceA.String(),
		types.AttributeKeyReserveB: balanceB.String(),
	})
	GetPairMetrics().SyncsTotal.Inc()

	return nil
}
