package keeper

import (
	"cosmossdk.io/math"

	"github.com/IyanuOluwaJesuloba/coralswap-core/x/pair/types"
)

// Swap executes a constant-product swap with the dynamic fee, protected by
// the reentrancy guard. The caller must have already delivered input tokens
// to the pair's custody (optimistic-transfer pattern): the engine sends the
// requested outputs first, re-reads its balances, and verifies the fee-
// adjusted invariant against what actually arrived.
func (k Keeper) Swap(ctx types.Context, amountAOut, amountBOut math.Int, to string) error {
	return k.withReentrancyGuard("swap", func() error {
		return k.swapInner(ctx, amountAOut, amountBOut, to)
	})
}

func (k Keeper) swapInner(ctx types.Context, amountAOut, amountBOut math.Int, to string) error {
	if amountAOut.IsNil() || amountBOut.IsNil() || amountAOut.IsNegative() || amountBOut.IsNegative() {
		return types.ErrInvalidInput.Wrap("output amounts cannot be negative")
	}
	if !amountAOut.IsPositive() && !amountBOut.IsPositive() {
		return types.ErrInsufficientOutputAmount
	}

	pair, found, err := k.GetPairState()
	if err != nil {
		return err
	}
	if !found {
		return types.ErrNotInitialized
	}

	// Outputs must leave residual liquidity on both sides.
	if amountAOut.GTE(pair.ReserveA) || amountBOut.GTE(pair.ReserveB) {
		return types.ErrInsufficientLiquidity.Wrapf(
			"requested %s/%s against reserves %s/%s",
			amountAOut, amountBOut, pair.ReserveA, pair.ReserveB,
		)
	}

	feeState, err := k.loadOrDefaultFeeState(ctx)
	if err != nil {
		return err
	}

	DecayStaleEMA(&feeState, ctx.BlockHeight)
	feeBps := ComputeFeeBps(feeState)

	// Optimistic transfer: outputs go out before inputs are verified.
	if amountAOut.IsPositive() {
		if err := k.bankKeeper.Transfer(ctx, pair.TokenA, k.address, to, amountAOut); err != nil {
			return err
		}
	}
	if amountBOut.IsPositive() {
		if err := k.bankKeeper.Transfer(ctx, pair.TokenB, k.address, to, amountBOut); err != nil {
			if amountAOut.IsPositive() {
				k.revertTransfer(ctx, pair.TokenA, to, amountAOut)
			}
			return err
		}
	}

	if err := k.settleSwap(ctx, pair, feeState, amountAOut, amountBOut, feeBps, to); err != nil {
		// Undo the optimistic transfers so a failed swap leaves custody
		// exactly as it was before the call.
		if amountAOut.IsPositive() {
			k.revertTransfer(ctx, pair.TokenA, to, amountAOut)
		}
		if amountBOut.IsPositive() {
			k.revertTransfer(ctx, pair.TokenB, to, amountBOut)
		}
		return err
	}
	return nil
}

func (k Keeper) settleSwap(
	ctx types.Context,
	pair types.PairState,
	feeState types.FeeState,
	amountAOut, amountBOut math.Int,
	feeBps uint32,
	to string,
) error {
	balanceA, balanceB, err := k.custodyBalances(ctx, pair)
	if err != nil {
		return err
	}

	// amount_in = max(0, new_balance - (old_reserve - amount_out))
	amountAIn, err := effectiveInput(balanceA, pair.ReserveA, amountAOut)
	if err != nil {
		return err
	}
	amountBIn, err := effectiveInput(balanceB, pair.ReserveB, amountBOut)
	if err != nil {
		return err
	}
	if !amountAIn.IsPositive() && !amountBIn.IsPositive() {
		return types.ErrInsufficientInputAmount
	}

	// balance_adj = balance*10000 - amount_in*fee_bps, exact integers.
	fee := math.NewInt(int64(feeBps))
	balanceAAdj, err := feeAdjustedBalance(balanceA, amountAIn, fee)
	if err != nil {
		return err
	}
	balanceBAdj, err := feeAdjustedBalance(balanceB, amountBIn, fee)
	if err != nil {
		return err
	}
	if !balanceAAdj.IsPositive() || !balanceBAdj.IsPositive() {
		return types.ErrInsufficientOutputAmount.Wrap("fee exceeds post-swap balance")
	}

	// balance_a_adj * balance_b_adj >= reserve_a * reserve_b * 10000^2
	kBefore, err := SafeMul(pair.ReserveA, pair.ReserveB)
	if err != nil {
		return err
	}
	kBefore, err = SafeMul(kBefore, math.NewInt(100_000_000))
	if err != nil {
		return err
	}
	kAfter, err := SafeMul(balanceAAdj, balanceBAdj)
	if err != nil {
		return err
	}
	if kAfter.LT(kBefore) {
		return types.ErrInvalidK.Wrapf("adjusted k %s < required %s", kAfter, kBefore)
	}

	// Feed the observed price shift into the volatility EMA, weighted by the
	// larger effective input.
	oldPrice := scaledSpotPrice(pair.ReserveB, pair.ReserveA)
	newPrice := scaledSpotPrice(balanceB, balanceA)
	priceDelta := newPrice.Sub(oldPrice).Abs()
	totalReserve := SaturatingAdd(pair.ReserveA, pair.ReserveB)
	tradeSize := MaxInt(amountAIn, amountBIn)

	if err := UpdateVolatility(&feeState, priceDelta, tradeSize, totalReserve, ctx.BlockHeight); err != nil {
		return err
	}

	if err := accrueCumulativePrices(&pair, ctx.BlockTime); err != nil {
		return err
	}

	pair.KLast, err = SafeMul(balanceA, balanceB)
	if err != nil {
		return err
	}
	pair.ReserveA = balanceA
	pair.ReserveB = balanceB

	if err := k.setPairState(pair); err != nil {
		return err
	}
	if err := k.setFeeState(feeState); err != nil {
		return err
	}

	k.emitEvent(types.EventTypeSwap, map[string]string{
		types.AttributeKeySender:     ctx.Caller,
		types.AttributeKeyAmountAIn:  amountAIn.String(),
		types.AttributeKeyAmountBIn:  amountBIn.String(),
		types.AttributeKeyAmountAOut: amountAOut.String(),
		types.AttributeKeyAmountBOut: amountBOut.String(),
		types.AttributeKeyFeeBps:     fee.String(),
		types.AttributeKeyRecipient:  to,
	})

	metrics := GetPairMetrics()
	metrics.SwapsTotal.Inc()
	metrics.CurrentFeeBps.Set(float64(feeBps))

	return nil
}

// revertTransfer returns an optimistically sent output to the pair's
// custody. Failure to revert cannot itself fail the (already failed) swap,
// so it is only logged.
func (k Keeper) revertTransfer(ctx types.Context, token, from string, amount math.Int) {
	if err := k.bankKeeper.Transfer(ctx, token, from, k.address, amount); err != nil {
		k.logger.Error("failed to revert optimistic swap transfer",
			"token", token,
			"from", from,
			"amount", amount.String(),
			"error", err,
		)
	}
}

func effectiveInput(balance, reserve, amountOut math.Int) (math.Int, error) {
	expected, err := SafeSub(reserve, amountOut)
	if err != nil {
		return math.Int{}, err
	}
	in, err := SafeSub(balance, expected)
	if err != nil {
		return math.Int{}, err
	}
	if in.IsNegative() {
		return math.ZeroInt(), nil
	}
	return in, nil
}

func feeAdjustedBalance(balance, amountIn, feeBps math.Int) (math.Int, error) {
	scaled, err := SafeMul(balance, types.BpsDenominator)
	if err != nil {
		return math.Int{}, err
	}
	feePart, err := SafeMul(amountIn, feeBps)
	if err != nil {
		return math.Int{}, err
	}
	return SafeSub(scaled, feePart)
}

// scaledSpotPrice returns numerator*Scale/denominator in 1e14 fixed point,
// or zero for an empty denominator. The same scale carries through the
// volatility EMA and the oracle accumulators.
func scaledSpotPrice(numerator, denominator math.Int) math.Int {
	if !denominator.IsPositive() {
		return math.ZeroInt()
	}
	return numerator.Mul(types.Scale).Quo(denominator)
}
