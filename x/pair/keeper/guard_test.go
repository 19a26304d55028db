package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/IyanuOluwaJesuloba/coralswap-core/testutil/keeper"
	"github.com/IyanuOluwaJesuloba/coralswap-core/x/pair/types"
)

func TestGuard_CorruptRecordTreatedAsLocked(t *testing.T) {
	f := keepertest.InitializedPair(t)
	ctx := keepertest.Ctx(100, 10, keepertest.Trader)
	keepertest.SeedLiquidity(t, f, ctx, math.NewInt(1_000_000), math.NewInt(1_000_000))

	f.Store.Set(types.ReentrancyGuardKey, []byte("not json"))

	deliverInput(t, f, ctx, keepertest.TokenA, math.NewInt(10_500))
	err := f.Keeper.Swap(ctx, math.ZeroInt(), math.NewInt(10_000), keepertest.Trader)
	require.ErrorIs(t, err, types.ErrLocked)
}

func TestGuard_ReleasedAfterFailedSwap(t *testing.T) {
	f := keepertest.InitializedPair(t)
	ctx := keepertest.Ctx(100, 10, keepertest.Trader)
	keepertest.SeedLiquidity(t, f, ctx, math.NewInt(1_000_000), math.NewInt(1_000_000))

	// No input delivered, swap fails past the lock acquisition.
	err := f.Keeper.Swap(ctx, math.ZeroInt(), math.NewInt(10_000), keepertest.Trader)
	require.ErrorIs(t, err, types.ErrInsufficientInputAmount)

	// The lock is gone and the next swap proceeds normally.
	deliverInput(t, f, ctx, keepertest.TokenA, math.NewInt(10_500))
	err = f.Keeper.Swap(ctx, math.ZeroInt(), math.NewInt(10_000), keepertest.Trader)
	require.NoError(t, err)
}
