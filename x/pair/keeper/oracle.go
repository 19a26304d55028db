package keeper

import (
	"cosmossdk.io/math"

	"github.com/IyanuOluwaJesuloba/coralswap-core/x/pair/types"
)

// Cumulative price oracle. On every reserve-synchronizing operation the
// accumulators grow by price*elapsed, using the reserves that were in effect
// for the elapsed window. A consumer derives a TWAP from two accumulator
// snapshots; single-block manipulation cannot rewrite the accumulated
// history.

// accrueCumulativePrices advances both price accumulators for the time
// elapsed since the last update and stamps the pair with the current time.
// Prices are fixed-point with scale 1e14; accumulation is skipped when no
// time has passed or either reserve was zero going in.
func accrueCumulativePrices(pair *types.PairState, now uint64) error {
	if now <= pair.BlockTimestampLast {
		return nil
	}
	elapsed := math.NewIntFromUint64(now - pair.BlockTimestampLast)

	if pair.ReserveA.IsPositive() && pair.ReserveB.IsPositive() {
		priceA, err := SafeMulDiv(pair.ReserveB, types.Scale, pair.ReserveA)
		if err != nil {
			return err
		}
		incA, err := SafeMul(priceA, elapsed)
		if err != nil {
			return err
		}
		cumA, err := SafeAdd(pair.PriceACumulative, incA)
		if err != nil {
			return err
		}

		priceB, err := SafeMulDiv(pair.ReserveA, types.Scale, pair.ReserveB)
		if err != nil {
			return err
		}
		incB, err := SafeMul(priceB, elapsed)
		if err != nil {
			return err
		}
		cumB, err := SafeAdd(pair.PriceBCumulative, incB)
		if err != nil {
			return err
		}

		pair.PriceACumulative = cumA
		pair.PriceBCumulative = cumB
	}

	pair.BlockTimestampLast = now
	return nil
}

// ConsultTWAP computes the time-weighted average price over a window from
// two accumulator snapshots: (end - start) / elapsed, in 1e14 fixed point.
func ConsultTWAP(cumulativeStart, cumulativeEnd math.Int, elapsed uint64) (math.Int, error) {
	if elapsed == 0 {
		return math.Int{}, types.ErrInvalidInput.Wrap("twap window must be positive")
	}
	if cumulativeEnd.LT(cumulativeStart) {
		return math.Int{}, types.ErrInvalidInput.Wrap("cumulative price decreased over window")
	}
	diff, err := SafeSub(cumulativeEnd, cumulativeStart)
	if err != nil {
		return math.Int{}, err
	}
	return SafeQuo(diff, math.NewIntFromUint64(elapsed))
}
