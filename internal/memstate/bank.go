package memstate

import (
	"cosmossdk.io/math"

	"github.com/IyanuOluwaJesuloba/coralswap-core/x/pair/types"
)

// Bank is an in-memory ledger implementing both the fungible token and the
// liquidity-share token capabilities. Transfers never go negative and every
// mutation is plain map arithmetic, so failures point at the engine.
type Bank struct {
	balances map[string]map[string]math.Int // token -> holder -> amount
	supplies map[string]math.Int            // token -> minted supply

	// FailTransfersTo makes every transfer to the named holder fail, for
	// exercising revert paths.
	FailTransfersTo string
}

// NewBank creates an empty ledger.
func NewBank() *Bank {
	return &Bank{
		balances: make(map[string]map[string]math.Int),
		supplies: make(map[string]math.Int),
	}
}

// Fund credits the holder with the given amount out of thin air.
func (b *Bank) Fund(token, holder string, amount math.Int) {
	b.credit(token, holder, amount)
}

func (b *Bank) credit(token, holder string, amount math.Int) {
	holders, ok := b.balances[token]
	if !ok {
		holders = make(map[string]math.Int)
		b.balances[token] = holders
	}
	current, ok := holders[holder]
	if !ok {
		current = math.ZeroInt()
	}
	holders[holder] = current.Add(amount)
}

func (b *Bank) Balance(_ types.Context, token, holder string) (math.Int, error) {
	holders, ok := b.balances[token]
	if !ok {
		return math.ZeroInt(), nil
	}
	amount, ok := holders[holder]
	if !ok {
		return math.ZeroInt(), nil
	}
	return amount, nil
}

func (b *Bank) Transfer(ctx types.Context, token, from, to string, amount math.Int) error {
	if to == b.FailTransfersTo {
		return types.ErrInvalidInput.Wrapf("transfers to %s are disabled", to)
	}
	if amount.IsNegative() {
		return types.ErrInvalidInput.Wrapf("negative transfer amount: %s", amount)
	}
	current, err := b.Balance(ctx, token, from)
	if err != nil {
		return err
	}
	if current.LT(amount) {
		return types.ErrInsufficientInputAmount.Wrapf(
			"%s holds %s %s, cannot send %s", from, current, token, amount,
		)
	}
	b.balances[token][from] = current.Sub(amount)
	b.credit(token, to, amount)
	return nil
}

func (b *Bank) Mint(_ types.Context, token, to string, amount math.Int) error {
	if amount.IsNegative() {
		return types.ErrInvalidInput.Wrapf("negative mint amount: %s", amount)
	}
	supply, ok := b.supplies[token]
	if !ok {
		supply = math.ZeroInt()
	}
	b.supplies[token] = supply.Add(amount)
	b.credit(token, to, amount)
	return nil
}

func (b *Bank) Burn(ctx types.Context, token, holder string, amount math.Int) error {
	current, err := b.Balance(ctx, token, holder)
	if err != nil {
		return err
	}
	if current.LT(amount) {
		return types.ErrInsufficientLiquidityBurned.Wrapf(
			"%s holds %s %s shares, cannot burn %s", holder, current, token, amount,
		)
	}
	b.balances[token][holder] = current.Sub(amount)
	b.supplies[token] = b.supplies[token].Sub(amount)
	return nil
}

func (b *Bank) TotalSupply(_ types.Context, token string) (math.Int, error) {
	supply, ok := b.supplies[token]
	if !ok {
		return math.ZeroInt(), nil
	}
	return supply, nil
}
