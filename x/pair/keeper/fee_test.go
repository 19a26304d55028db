package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/IyanuOluwaJesuloba/coralswap-core/x/pair/keeper"
	"github.com/IyanuOluwaJesuloba/coralswap-core/x/pair/types"
)

func testFeeState() types.FeeState {
	return types.DefaultFeeParams().NewFeeState(10)
}

func TestUpdateVolatility_RejectsBadInputs(t *testing.T) {
	fs := testFeeState()

	err := keeper.UpdateVolatility(&fs, math.NewInt(-1), math.OneInt(), math.OneInt(), 11)
	require.ErrorIs(t, err, types.ErrInvalidInput)

	err = keeper.UpdateVolatility(&fs, math.OneInt(), math.ZeroInt(), math.OneInt(), 11)
	require.ErrorIs(t, err, types.ErrInvalidInput)

	err = keeper.UpdateVolatility(&fs, math.OneInt(), math.OneInt(), math.ZeroInt(), 11)
	require.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestUpdateVolatility_SizeWeighting(t *testing.T) {
	delta := types.Scale.QuoRaw(10) // 10% price move
	reserve := math.NewInt(1_000_000)

	small := testFeeState()
	require.NoError(t, keeper.UpdateVolatility(&small, delta, math.NewInt(1_000), reserve, 11))

	large := testFeeState()
	require.NoError(t, keeper.UpdateVolatility(&large, delta, math.NewInt(500_000), reserve, 11))

	require.True(t, large.VolAccumulator.GT(small.VolAccumulator),
		"larger trade must contribute more: %s <= %s", large.VolAccumulator, small.VolAccumulator)
	require.Equal(t, uint64(11), large.LastFeeUpdate)
}

func TestUpdateVolatility_FrozenAlpha(t *testing.T) {
	fs := testFeeState()
	fs.EmaAlpha = math.ZeroInt()
	fs.VolAccumulator = math.NewInt(12_345)

	require.NoError(t, keeper.UpdateVolatility(&fs, types.Scale, math.NewInt(500_000), math.NewInt(1_000_000), 11))
	require.Equal(t, math.NewInt(12_345), fs.VolAccumulator)
}

func TestUpdateVolatility_FullReplacementAlpha(t *testing.T) {
	fs := testFeeState()
	fs.EmaAlpha = types.Scale
	fs.VolAccumulator = math.NewInt(999_999_999)

	// weight = 1, observation = delta, and history is discarded entirely.
	delta := types.Scale.QuoRaw(4)
	require.NoError(t, keeper.UpdateVolatility(&fs, delta, math.NewInt(1_000_000), math.NewInt(1_000_000), 11))
	require.Equal(t, delta, fs.VolAccumulator)
}

func TestComputeFeeBps_ZeroVolatilityReturnsBaseline(t *testing.T) {
	fs := testFeeState()
	require.Equal(t, uint32(30), keeper.ComputeFeeBps(fs))

	// A baseline outside the bounds is clamped into them.
	fs.BaselineFeeBps = 3
	require.Equal(t, uint32(5), keeper.ComputeFeeBps(fs))
}

func TestComputeFeeBps_ExtremeVolatilityClampsToMax(t *testing.T) {
	fs := testFeeState()
	fs.VolAccumulator = types.Scale.MulRaw(1_000_000)
	require.Equal(t, uint32(100), keeper.ComputeFeeBps(fs))

	fs.VolAccumulator = keeper.MaxInt128
	require.Equal(t, uint32(100), keeper.ComputeFeeBps(fs))
}

func TestComputeFeeBps_Monotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		volLo := rapid.Int64Range(0, 1<<60).Draw(t, "volLo")
		volHi := rapid.Int64Range(volLo, 1<<61).Draw(t, "volHi")

		lo := testFeeState()
		lo.VolAccumulator = math.NewInt(volLo)
		hi := testFeeState()
		hi.VolAccumulator = math.NewInt(volHi)

		feeLo := keeper.ComputeFeeBps(lo)
		feeHi := keeper.ComputeFeeBps(hi)
		if feeHi < feeLo {
			t.Fatalf("fee decreased with volatility: vol %d -> %d bps, vol %d -> %d bps",
				volLo, feeLo, volHi, feeHi)
		}
		if feeLo < lo.MinFeeBps || feeLo > lo.MaxFeeBps {
			t.Fatalf("fee %d outside [%d, %d]", feeLo, lo.MinFeeBps, lo.MaxFeeBps)
		}
	})
}

func TestDecayStaleEMA_WithinThresholdNoop(t *testing.T) {
	fs := testFeeState()
	fs.VolAccumulator = math.NewInt(1_000_000)
	fs.LastFeeUpdate = 10

	keeper.DecayStaleEMA(&fs, 110) // exactly threshold (100) elapsed
	require.Equal(t, math.NewInt(1_000_000), fs.VolAccumulator)
	require.Equal(t, uint64(10), fs.LastFeeUpdate)
}

func TestDecayStaleEMA_HalvesPerPeriod(t *testing.T) {
	fs := testFeeState()
	fs.VolAccumulator = math.NewInt(1_000_000)
	fs.LastFeeUpdate = 10

	// 310 blocks elapsed at threshold 100 is three full periods.
	keeper.DecayStaleEMA(&fs, 320)
	require.Equal(t, math.NewInt(125_000), fs.VolAccumulator)
	require.Equal(t, uint64(320), fs.LastFeeUpdate)
}

func TestDecayStaleEMA_IdempotentAtSameSequence(t *testing.T) {
	fs := testFeeState()
	fs.VolAccumulator = math.NewInt(1_000_000)
	fs.LastFeeUpdate = 10

	keeper.DecayStaleEMA(&fs, 320)
	after := fs.VolAccumulator

	keeper.DecayStaleEMA(&fs, 320)
	require.Equal(t, after, fs.VolAccumulator)
}

func TestDecayStaleEMA_PeriodCap(t *testing.T) {
	fs := testFeeState()
	fs.VolAccumulator = types.Scale.MulRaw(1 << 40)
	fs.LastFeeUpdate = 0

	// An absurdly long gap applies at most MaxDecayPeriods halvings.
	keeper.DecayStaleEMA(&fs, 1<<50)
	expected := types.Scale.MulRaw(1 << 40).Quo(math.NewInt(1 << 32))
	require.Equal(t, expected, fs.VolAccumulator)
}

func TestDecayStaleEMA_FloorsAtZero(t *testing.T) {
	fs := testFeeState()
	fs.VolAccumulator = math.NewInt(3)
	fs.LastFeeUpdate = 10

	keeper.DecayStaleEMA(&fs, 10_000)
	require.True(t, fs.VolAccumulator.IsZero())
}
