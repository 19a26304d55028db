package keeper

import (
	"cosmossdk.io/math"

	"github.com/IyanuOluwaJesuloba/coralswap-core/internal/memstate"
	pairkeeper "github.com/IyanuOluwaJesuloba/coralswap-core/x/pair/keeper"
	"github.com/IyanuOluwaJesuloba/coralswap-core/x/pair/types"
)

// RepayingReceiver is a well-behaved flash-loan receiver: it returns principal
// plus fee for every borrowed token out of its own pre-funded balances.
type RepayingReceiver struct {
	Bank     *memstate.Bank
	Addr     string
	PairAddr string

	// Payload records what the engine forwarded to the callback.
	Payload []byte
	Calls   int
}

var _ types.FlashLoanReceiver = (*RepayingReceiver)(nil)

func (r *RepayingReceiver) Address() string { return r.Addr }

func (r *RepayingReceiver) OnFlashLoan(
	ctx types.Context,
	_ string,
	tokenA, tokenB string,
	amountA, amountB math.Int,
	feeA, feeB math.Int,
	payload []byte,
) error {
	r.Calls++
	r.Payload = append([]byte(nil), payload...)
	if amountA.IsPositive() {
		if err := r.Bank.Transfer(ctx, tokenA, r.Addr, r.PairAddr, amountA.Add(feeA)); err != nil {
			return err
		}
	}
	if amountB.IsPositive() {
		if err := r.Bank.Transfer(ctx, tokenB, r.Addr, r.PairAddr, amountB.Add(feeB)); err != nil {
			return err
		}
	}
	return nil
}

// DefaultingReceiver keeps the borrowed funds. Optionally it repays a partial
// amount of token A to exercise the under-repayment path.
type DefaultingReceiver struct {
	Bank     *memstate.Bank
	Addr     string
	PairAddr string
	RepayA   math.Int
}

var _ types.FlashLoanReceiver = (*DefaultingReceiver)(nil)

func (r *DefaultingReceiver) Address() string { return r.Addr }

func (r *DefaultingReceiver) OnFlashLoan(
	ctx types.Context,
	_, tokenA, _ string,
	_, _ math.Int,
	_, _ math.Int,
	_ []byte,
) error {
	if !r.RepayA.IsNil() && r.RepayA.IsPositive() {
		return r.Bank.Transfer(ctx, tokenA, r.Addr, r.PairAddr, r.RepayA)
	}
	return nil
}

// ReentrantReceiver tries to re-enter the engine from inside its callback,
// records the rejection, then repays honestly so the outer loan can settle.
type ReentrantReceiver struct {
	Keeper *pairkeeper.Keeper
	Inner  *RepayingReceiver

	// InnerErr is the error returned by the nested call.
	InnerErr error
	// Mode selects the nested call: "swap" or "flash_loan".
	Mode string
}

var _ types.FlashLoanReceiver = (*ReentrantReceiver)(nil)

func (r *ReentrantReceiver) Address() string { return r.Inner.Addr }

func (r *ReentrantReceiver) OnFlashLoan(
	ctx types.Context,
	initiator string,
	tokenA, tokenB string,
	amountA, amountB math.Int,
	feeA, feeB math.Int,
	payload []byte,
) error {
	switch r.Mode {
	case "swap":
		r.InnerErr = r.Keeper.Swap(ctx, math.ZeroInt(), math.OneInt(), r.Inner.Addr)
	default:
		r.InnerErr = r.Keeper.FlashLoan(ctx, r.Inner, math.OneInt(), math.ZeroInt(), nil)
	}
	return r.Inner.OnFlashLoan(ctx, initiator, tokenA, tokenB, amountA, amountB, feeA, feeB, payload)
}
