package keeper

import (
	"cosmossdk.io/math"

	"github.com/IyanuOluwaJesuloba/coralswap-core/x/pair/types"
)

// Dynamic fee engine: a size-weighted EMA of absolute price changes drives
// the swap fee between its configured bounds. Large trades move the
// accumulator proportionally more than dust trades, so inflating the fee
// requires committing real capital.

// UpdateVolatility folds one price observation into the EMA accumulator.
//
// All values are fixed-point with scale 1e14:
//
//	weight      = trade_size * Scale / total_reserve
//	observation = price_delta_abs * weight / Scale
//	new_accum   = (alpha*observation + (Scale-alpha)*old_accum) / Scale
//
// Any intermediate 128-bit overflow aborts the update (and the invoking
// operation) with ErrOverflow.
func UpdateVolatility(fs *types.FeeState, priceDeltaAbs, tradeSize, totalReserve math.Int, currentHeight uint64) error {
	if priceDeltaAbs.IsNil() || priceDeltaAbs.IsNegative() {
		return types.ErrInvalidInput.Wrap("price delta must be non-negative")
	}
	if tradeSize.IsNil() || !tradeSize.IsPositive() {
		return types.ErrInvalidInput.Wrap("trade size must be positive")
	}
	if totalReserve.IsNil() || !totalReserve.IsPositive() {
		return types.ErrInvalidInput.Wrap("total reserve must be positive")
	}

	weight, err := SafeMulDiv(tradeSize, types.Scale, totalReserve)
	if err != nil {
		return err
	}

	observation, err := SafeMulDiv(priceDeltaAbs, weight, types.Scale)
	if err != nil {
		return err
	}

	alphaTerm, err := SafeMul(fs.EmaAlpha, observation)
	if err != nil {
		return err
	}

	complement, err := SafeSub(types.Scale, fs.EmaAlpha)
	if err != nil {
		return err
	}
	prevTerm, err := SafeMul(complement, fs.VolAccumulator)
	if err != nil {
		return err
	}

	blended, err := SafeAdd(alphaTerm, prevTerm)
	if err != nil {
		return err
	}
	fs.VolAccumulator, err = SafeQuo(blended, types.Scale)
	if err != nil {
		return err
	}

	fs.LastFeeUpdate = currentHeight
	return nil
}

// ComputeFeeBps derives the current fee from the EMA state:
//
//	fee = clamp(baseline + vol*ramp*(max-min)/Scale, min, max)
//
// The result is monotonic non-decreasing in the accumulator, and extreme
// accumulator values clamp to the maximum instead of overflowing.
func ComputeFeeBps(fs types.FeeState) uint32 {
	minFee := math.NewInt(int64(fs.MinFeeBps))
	maxFee := math.NewInt(int64(fs.MaxFeeBps))

	if fs.VolAccumulator.IsNil() || !fs.VolAccumulator.IsPositive() {
		baseline := math.NewInt(int64(fs.BaselineFeeBps))
		return uint32(clampInt(baseline, minFee, maxFee).Int64())
	}

	feeRange := math.NewInt(int64(fs.MaxFeeBps) - int64(fs.MinFeeBps))
	adjustment := fs.VolAccumulator.
		Mul(math.NewInt(int64(fs.RampUpMultiplier))).
		Mul(feeRange).
		Quo(types.Scale)

	fee := math.NewInt(int64(fs.BaselineFeeBps)).Add(adjustment)
	return uint32(clampInt(fee, minFee, maxFee).Int64())
}

// DecayStaleEMA shrinks the accumulator of an idle pool so it does not keep
// charging an inflated fee once the volatility that justified it has passed.
// Each full idle period divides the accumulator by the cooldown divisor;
// the number of periods applied is capped so arbitrarily long gaps cannot
// make a single call do unbounded work. A second call at the same sequence
// number is a no-op.
func DecayStaleEMA(fs *types.FeeState, currentHeight uint64) {
	if currentHeight <= fs.LastFeeUpdate {
		return
	}
	elapsed := currentHeight - fs.LastFeeUpdate

	threshold := fs.DecayThresholdBlocks
	if threshold == 0 {
		threshold = 1
	}
	if elapsed <= threshold {
		return
	}

	periods := elapsed / threshold
	if periods > types.MaxDecayPeriods {
		periods = types.MaxDecayPeriods
	}

	divisor := int64(fs.CooldownDivisor)
	if divisor < 2 {
		divisor = 2
	}
	div := math.NewInt(divisor)

	for i := uint64(0); i < periods && fs.VolAccumulator.IsPositive(); i++ {
		fs.VolAccumulator = fs.VolAccumulator.Quo(div)
	}
	if fs.VolAccumulator.IsNegative() {
		fs.VolAccumulator = math.ZeroInt()
	}

	fs.LastFeeUpdate = currentHeight
}

func clampInt(v, lo, hi math.Int) math.Int {
	if v.LT(lo) {
		return lo
	}
	if v.GT(hi) {
		return hi
	}
	return v
}
