package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/IyanuOluwaJesuloba/coralswap-core/testutil/keeper"
	"github.com/IyanuOluwaJesuloba/coralswap-core/x/pair/types"
)

// deliverInput moves the trader's input tokens into the pair's custody ahead
// of the swap call, the optimistic-transfer convention.
func deliverInput(t *testing.T, f *keepertest.Fixture, ctx types.Context, token string, amount math.Int) {
	t.Helper()
	f.Bank.Fund(token, keepertest.Trader, amount)
	require.NoError(t, f.Bank.Transfer(ctx, token, keepertest.Trader, keepertest.PairAddress, amount))
}

func TestSwap_SufficientInputSucceeds(t *testing.T) {
	f := keepertest.InitializedPair(t)
	ctx := keepertest.Ctx(100, 10, keepertest.Trader)
	keepertest.SeedLiquidity(t, f, ctx, math.NewInt(1_000_000), math.NewInt(1_000_000))

	// At 30 bps, 10500 in covers 10000 out with margin.
	deliverInput(t, f, ctx, keepertest.TokenA, math.NewInt(10_500))
	err := f.Keeper.Swap(ctx, math.ZeroInt(), math.NewInt(10_000), keepertest.Trader)
	require.NoError(t, err)

	got, err := f.Bank.Balance(ctx, keepertest.TokenB, keepertest.Trader)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(10_000), got)

	reserveA, reserveB, _, err := f.Keeper.GetReserves()
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_010_500), reserveA)
	require.Equal(t, math.NewInt(990_000), reserveB)

	evt := f.Emitter.Last(types.EventTypeSwap)
	require.NotNil(t, evt)
	require.Equal(t, "10500", evt.Attributes[types.AttributeKeyAmountAIn])
	require.Equal(t, "10000", evt.Attributes[types.AttributeKeyAmountBOut])
	require.Equal(t, "30", evt.Attributes[types.AttributeKeyFeeBps])
}

func TestSwap_ExactRatioInputFailsInvariant(t *testing.T) {
	f := keepertest.InitializedPair(t)
	ctx := keepertest.Ctx(100, 10, keepertest.Trader)
	keepertest.SeedLiquidity(t, f, ctx, math.NewInt(1_000_000), math.NewInt(1_000_000))

	// 10000 in for 10000 out pays no fee and no slippage, so the
	// fee-adjusted product shrinks.
	deliverInput(t, f, ctx, keepertest.TokenA, math.NewInt(10_000))
	err := f.Keeper.Swap(ctx, math.ZeroInt(), math.NewInt(10_000), keepertest.Trader)
	require.ErrorIs(t, err, types.ErrInvalidK)

	// The optimistic output came back; reserves are untouched.
	reserveA, reserveB, _, err := f.Keeper.GetReserves()
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_000_000), reserveA)
	require.Equal(t, math.NewInt(1_000_000), reserveB)

	got, err := f.Bank.Balance(ctx, keepertest.TokenB, keepertest.Trader)
	require.NoError(t, err)
	require.True(t, got.IsZero())
}

func TestSwap_NoInputDelivered(t *testing.T) {
	f := keepertest.InitializedPair(t)
	ctx := keepertest.Ctx(100, 10, keepertest.Trader)
	keepertest.SeedLiquidity(t, f, ctx, math.NewInt(1_000_000), math.NewInt(1_000_000))

	err := f.Keeper.Swap(ctx, math.ZeroInt(), math.NewInt(10_000), keepertest.Trader)
	require.ErrorIs(t, err, types.ErrInsufficientInputAmount)
}

func TestSwap_ZeroOutputs(t *testing.T) {
	f := keepertest.InitializedPair(t)
	ctx := keepertest.Ctx(100, 10, keepertest.Trader)
	keepertest.SeedLiquidity(t, f, ctx, math.NewInt(1_000_000), math.NewInt(1_000_000))

	err := f.Keeper.Swap(ctx, math.ZeroInt(), math.ZeroInt(), keepertest.Trader)
	require.ErrorIs(t, err, types.ErrInsufficientOutputAmount)
}

func TestSwap_NegativeOutput(t *testing.T) {
	f := keepertest.InitializedPair(t)
	ctx := keepertest.Ctx(100, 10, keepertest.Trader)
	keepertest.SeedLiquidity(t, f, ctx, math.NewInt(1_000_000), math.NewInt(1_000_000))

	err := f.Keeper.Swap(ctx, math.NewInt(-1), math.NewInt(10), keepertest.Trader)
	require.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestSwap_OutputExceedsReserve(t *testing.T) {
	f := keepertest.InitializedPair(t)
	ctx := keepertest.Ctx(100, 10, keepertest.Trader)
	keepertest.SeedLiquidity(t, f, ctx, math.NewInt(1_000_000), math.NewInt(1_000_000))

	// Draining a reserve entirely is rejected, even at the exact amount.
	err := f.Keeper.Swap(ctx, math.ZeroInt(), math.NewInt(1_000_000), keepertest.Trader)
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
}

func TestSwap_NotInitialized(t *testing.T) {
	f := keepertest.PairKeeper(t)
	ctx := keepertest.Ctx(100, 10, keepertest.Trader)

	err := f.Keeper.Swap(ctx, math.ZeroInt(), math.NewInt(10), keepertest.Trader)
	require.ErrorIs(t, err, types.ErrNotInitialized)
}

func TestSwap_RaisesFeeAfterVolatileTrade(t *testing.T) {
	f := keepertest.InitializedPair(t)
	ctx := keepertest.Ctx(100, 10, keepertest.Trader)
	keepertest.SeedLiquidity(t, f, ctx, math.NewInt(1_000_000), math.NewInt(1_000_000))

	require.Equal(t, types.DefaultFeeBps, f.Keeper.GetCurrentFeeBps())

	// A trade worth over half the pool moves the spot price enough for the
	// damped EMA to push the fee above baseline.
	deliverInput(t, f, ctx, keepertest.TokenA, math.NewInt(1_100_000))
	err := f.Keeper.Swap(ctx, math.ZeroInt(), math.NewInt(500_000), keepertest.Trader)
	require.NoError(t, err)

	fs, found, err := f.Keeper.GetFeeState()
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, fs.VolAccumulator.IsPositive())

	require.Greater(t, f.Keeper.GetCurrentFeeBps(), types.DefaultFeeBps)
	require.LessOrEqual(t, f.Keeper.GetCurrentFeeBps(), uint32(100))
}

func TestSwap_KNeverDecreases(t *testing.T) {
	f := keepertest.InitializedPair(t)
	ctx := keepertest.Ctx(100, 10, keepertest.Trader)
	keepertest.SeedLiquidity(t, f, ctx, math.NewInt(1_000_000), math.NewInt(1_000_000))

	kPrev := math.NewInt(1_000_000).Mul(math.NewInt(1_000_000))

	swaps := []struct {
		in  int64
		out int64
	}{
		{10_500, 10_000},
		{52_000, 48_000},
		{5_000, 4_000},
	}
	for _, s := range swaps {
		deliverInput(t, f, ctx, keepertest.TokenA, math.NewInt(s.in))
		require.NoError(t, f.Keeper.Swap(ctx, math.ZeroInt(), math.NewInt(s.out), keepertest.Trader))

		reserveA, reserveB, _, err := f.Keeper.GetReserves()
		require.NoError(t, err)
		k := reserveA.Mul(reserveB)
		require.True(t, k.GTE(kPrev), "k decreased: %s < %s", k, kPrev)
		kPrev = k
	}
}

func TestSwap_BothDirections(t *testing.T) {
	f := keepertest.InitializedPair(t)
	ctx := keepertest.Ctx(100, 10, keepertest.Trader)
	keepertest.SeedLiquidity(t, f, ctx, math.NewInt(2_000_000), math.NewInt(500_000))

	// Buy token A with token B at the 4:1 price, with fee headroom.
	deliverInput(t, f, ctx, keepertest.TokenB, math.NewInt(2_700))
	err := f.Keeper.Swap(ctx, math.NewInt(10_000), math.ZeroInt(), keepertest.Trader)
	require.NoError(t, err)

	got, err := f.Bank.Balance(ctx, keepertest.TokenA, keepertest.Trader)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(10_000), got)
}
