package keeper

import (
	"cosmossdk.io/math"

	"github.com/IyanuOluwaJesuloba/coralswap-core/x/pair/types"
)

// Flash-loan engine. The borrowed principal is transferred out, the receiver
// callback runs with the reentrancy lock held, and repayment is inferred
// entirely from post-callback custody balances: each borrowed token must come
// back with its fee, and the reserve product must not shrink even when the
// repayment is split unevenly across the two tokens. A loan that fails after
// the principal has left custody claws it back with compensating transfers,
// the same discipline the swap path applies to its optimistic outputs.

// ComputeFlashFee returns the fee for borrowing amount at the given fee
// rate. The rate is floored at FlashFeeFloorBps, the fee at one unit, and
// astronomically large loans saturate instead of overflowing.
func ComputeFlashFee(amount math.Int, currentFeeBps uint32) math.Int {
	if amount.IsNil() || !amount.IsPositive() {
		return math.ZeroInt()
	}

	effectiveBps := currentFeeBps
	if effectiveBps < types.FlashFeeFloorBps {
		effectiveBps = types.FlashFeeFloorBps
	}

	fee := amount.Mul(math.NewInt(int64(effectiveBps))).Quo(types.BpsDenominator)
	if fee.GT(MaxInt128) {
		return MaxInt128
	}
	if !fee.IsPositive() {
		return math.OneInt()
	}
	return fee
}

// FlashLoan lends the requested amounts to the receiver for the duration of
// its callback. This is the single suspension point of the engine: external
// code runs while the reentrancy lock is held, so attempts to re-enter swap
// or flash loan on the same pair fail with ErrLocked.
func (k Keeper) FlashLoan(ctx types.Context, receiver types.FlashLoanReceiver, amountA, amountB math.Int, payload []byte) error {
	if len(payload) > types.MaxFlashPayloadSize {
		return types.ErrFlashPayloadTooLarge.Wrapf("payload %d bytes exceeds cap %d", len(payload), types.MaxFlashPayloadSize)
	}
	if amountA.IsNil() || amountB.IsNil() || amountA.IsNegative() || amountB.IsNegative() {
		return types.ErrInvalidInput.Wrap("loan amounts cannot be negative")
	}
	if !amountA.IsPositive() && !amountB.IsPositive() {
		return types.ErrInvalidInput.Wrap("nothing borrowed")
	}
	if receiver == nil {
		return types.ErrInvalidInput.Wrap("receiver must be set")
	}

	pair, found, err := k.GetPairState()
	if err != nil {
		return err
	}
	if !found {
		return types.ErrNotInitialized
	}

	if amountA.GT(pair.ReserveA) || amountB.GT(pair.ReserveB) {
		return types.ErrInsufficientLiquidity.Wrapf(
			"requested %s/%s against reserves %s/%s",
			amountA, amountB, pair.ReserveA, pair.ReserveB,
		)
	}

	preK, err := SafeMul(pair.ReserveA, pair.ReserveB)
	if err != nil {
		return err
	}

	return k.withReentrancyGuard("flash_loan", func() error {
		return k.flashLoanInner(ctx, receiver, pair, preK, amountA, amountB, payload)
	})
}

func (k Keeper) flashLoanInner(
	ctx types.Context,
	receiver types.FlashLoanReceiver,
	pair types.PairState,
	preK math.Int,
	amountA, amountB math.Int,
	payload []byte,
) error {
	// Fee rate comes from the pool's dynamic fee when configured, the floor
	// otherwise.
	feeBps := types.FlashFeeFloorBps
	if feeState, found, err := k.GetFeeState(); err != nil {
		return err
	} else if found {
		feeBps = ComputeFeeBps(feeState)
	}

	feeA := ComputeFlashFee(amountA, feeBps)
	feeB := ComputeFlashFee(amountB, feeBps)

	receiverAddr := receiver.Address()
	if amountA.IsPositive() {
		if err := k.bankKeeper.Transfer(ctx, pair.TokenA, k.address, receiverAddr, amountA); err != nil {
			return err
		}
	}
	if amountB.IsPositive() {
		if err := k.bankKeeper.Transfer(ctx, pair.TokenB, k.address, receiverAddr, amountB); err != nil {
			if amountA.IsPositive() {
				k.revertTransfer(ctx, pair.TokenA, receiverAddr, amountA)
			}
			return err
		}
	}

	if err := k.settleFlashLoan(ctx, receiver, receiverAddr, pair, preK, amountA, amountB, feeA, feeB, payload); err != nil {
		// The principal is out but the loan did not settle; claw it back so
		// a defaulting receiver cannot keep custody funds. Best effort: a
		// receiver that burned or moved the funds leaves the transfer to
		// fail, which is logged like a failed swap revert.
		if amountA.IsPositive() {
			k.revertTransfer(ctx, pair.TokenA, receiverAddr, amountA)
		}
		if amountB.IsPositive() {
			k.revertTransfer(ctx, pair.TokenB, receiverAddr, amountB)
		}
		return err
	}
	return nil
}

func (k Keeper) settleFlashLoan(
	ctx types.Context,
	receiver types.FlashLoanReceiver,
	receiverAddr string,
	pair types.PairState,
	preK math.Int,
	amountA, amountB math.Int,
	feeA, feeB math.Int,
	payload []byte,
) error {
	if err := receiver.OnFlashLoan(ctx, ctx.Caller, pair.TokenA, pair.TokenB, amountA, amountB, feeA, feeB, payload); err != nil {
		return types.ErrFlashLoanNotRepaid.Wrapf("receiver callback failed: %v", err)
	}

	balanceA, balanceB, err := k.custodyBalances(ctx, pair)
	if err != nil {
		return err
	}

	if amountA.IsPositive() {
		owedA, err := SafeAdd(pair.ReserveA, feeA)
		if err != nil {
			return err
		}
		if balanceA.LT(owedA) {
			return types.ErrFlashLoanNotRepaid.Wrapf("token %s: balance %s < owed %s", pair.TokenA, balanceA, owedA)
		}
	}
	if amountB.IsPositive() {
		owedB, err := SafeAdd(pair.ReserveB, feeB)
		if err != nil {
			return err
		}
		if balanceB.LT(owedB) {
			return types.ErrFlashLoanNotRepaid.Wrapf("token %s: balance %s < owed %s", pair.TokenB, balanceB, owedB)
		}
	}

	if err := accrueCumulativePrices(&pair, ctx.BlockTime); err != nil {
		return err
	}

	pair.ReserveA = balanceA
	pair.ReserveB = balanceB

	// Nominal per-token repayment can still hide a shrunken product when the
	// two legs are gamed against each other.
	postK, err := SafeMul(balanceA, balanceB)
	if err != nil {
		return err
	}
	if postK.LT(preK) {
		return types.ErrInvalidK.Wrapf("post-loan k %s < pre-loan k %s", postK, preK)
	}
	pair.KLast = postK

	if err := k.setPairState(pair); err != nil {
		return err
	}

	k.emitEvent(types.EventTypeFlashLoan, map[string]string{
		types.AttributeKeyReceiver: receiverAddr,
		types.AttributeKeyAmountA:  amountA.String(),
		types.AttributeKeyAmountB:  amountB.String(),
		types.AttributeKeyFeeA:     feeA.String(),
		types.AttributeKeyFeeB:     feeB.String(),
	})
	GetPairMetrics().FlashLoansTotal.Inc()

	return nil
}
