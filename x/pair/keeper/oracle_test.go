package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/IyanuOluwaJesuloba/coralswap-core/testutil/keeper"
	"github.com/IyanuOluwaJesuloba/coralswap-core/x/pair/keeper"
	"github.com/IyanuOluwaJesuloba/coralswap-core/x/pair/types"
)

func TestOracle_CumulativePriceGrowsWithTime(t *testing.T) {
	f := keepertest.InitializedPair(t)
	keepertest.SeedLiquidity(t, f, keepertest.Ctx(100, 10, keepertest.Provider),
		math.NewInt(1_000_000), math.NewInt(2_000_000))

	// 50 time units at price B/A = 2.0 accumulate 2*Scale*50.
	require.NoError(t, f.Keeper.Sync(keepertest.Ctx(150, 15, keepertest.Provider)))

	pair, found, err := f.Keeper.GetPairState()
	require.NoError(t, err)
	require.True(t, found)

	expectedA := types.Scale.MulRaw(2).MulRaw(50)
	require.Equal(t, expectedA, pair.PriceACumulative)

	expectedB := types.Scale.QuoRaw(2).MulRaw(50)
	require.Equal(t, expectedB, pair.PriceBCumulative)
	require.Equal(t, uint64(150), pair.BlockTimestampLast)
}

func TestOracle_NoAccrualWhenTimeStandsStill(t *testing.T) {
	f := keepertest.InitializedPair(t)
	ctx := keepertest.Ctx(100, 10, keepertest.Provider)
	keepertest.SeedLiquidity(t, f, ctx, math.NewInt(1_000_000), math.NewInt(2_000_000))

	require.NoError(t, f.Keeper.Sync(ctx))

	pair, _, err := f.Keeper.GetPairState()
	require.NoError(t, err)
	require.True(t, pair.PriceACumulative.IsZero())
}

func TestOracle_TWAPOverWindow(t *testing.T) {
	f := keepertest.InitializedPair(t)
	keepertest.SeedLiquidity(t, f, keepertest.Ctx(100, 10, keepertest.Provider),
		math.NewInt(1_000_000), math.NewInt(2_000_000))

	start, _, err := f.Keeper.GetPairState()
	require.NoError(t, err)

	require.NoError(t, f.Keeper.Sync(keepertest.Ctx(160, 16, keepertest.Provider)))

	end, _, err := f.Keeper.GetPairState()
	require.NoError(t, err)

	twap, err := keeper.ConsultTWAP(start.PriceACumulative, end.PriceACumulative, 60)
	require.NoError(t, err)
	require.Equal(t, types.Scale.MulRaw(2), twap)
}

func TestConsultTWAP_BadWindows(t *testing.T) {
	_, err := keeper.ConsultTWAP(math.ZeroInt(), types.Scale, 0)
	require.ErrorIs(t, err, types.ErrInvalidInput)

	_, err = keeper.ConsultTWAP(types.Scale, math.ZeroInt(), 10)
	require.ErrorIs(t, err, types.ErrInvalidInput)
}
