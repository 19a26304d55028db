package keeper

import (
	"cosmossdk.io/math"

	"github.com/IyanuOluwaJesuloba/coralswap-core/x/pair/types"
)

// Mint issues liquidity shares for deposits already delivered to the pair's
// custody. On the very first deposit, MinimumLiquidity shares are minted to
// a locked sink identity and never move again, so a later depositor cannot
// be griefed through a near-zero total supply.
func (k Keeper) Mint(ctx types.Context, to string) (math.Int, error) {
	pair, found, err := k.GetPairState()
	if err != nil {
		return math.Int{}, err
	}
	if !found {
		return math.Int{}, types.ErrNotInitialized
	}

	balanceA, balanceB, err := k.custodyBalances(ctx, pair)
	if err != nil {
		return math.Int{}, err
	}

	amountA, err := SafeSub(balanceA, pair.ReserveA)
	if err != nil {
		return math.Int{}, err
	}
	amountB, err := SafeSub(balanceB, pair.ReserveB)
	if err != nil {
		return math.Int{}, err
	}

	totalSupply, err := k.shareKeeper.TotalSupply(ctx, pair.LpToken)
	if err != nil {
		return math.Int{}, err
	}

	var liquidity math.Int
	if totalSupply.IsZero() {
		product, err := SafeMul(amountA, amountB)
		if err != nil {
			return math.Int{}, err
		}
		liquidity, err = SafeSub(Sqrt(product), types.MinimumLiquidity)
		if err != nil {
			return math.Int{}, err
		}
		if !liquidity.IsPositive() {
			return math.Int{}, types.ErrInsufficientLiquidityMinted.Wrapf(
				"first deposit sqrt(%s*%s) does not exceed the locked minimum %s",
				amountA, amountB, types.MinimumLiquidity,
			)
		}
		if err := k.shareKeeper.Mint(ctx, pair.LpToken, types.LockedSharesAddress, types.MinimumLiquidity); err != nil {
			return math.Int{}, err
		}
	} else {
		if !pair.ReserveA.IsPositive() || !pair.ReserveB.IsPositive() {
			return math.Int{}, types.ErrInsufficientLiquidity.Wrap("pair has share supply but empty reserves")
		}
		liquidityA, err := SafeMulDiv(amountA, totalSupply, pair.ReserveA)
		if err != nil {
			return math.Int{}, err
		}
		liquidityB, err := SafeMulDiv(amountB, totalSupply, pair.ReserveB)
		if err != nil {
			return math.Int{}, err
		}
		liquidity = liquidityA
		if liquidityB.LT(liquidity) {
			liquidity = liquidityB
		}
	}

	if !liquidity.IsPositive() {
		return math.Int{}, types.ErrInsufficientLiquidityMinted
	}

	if err := k.shareKeeper.Mint(ctx, pair.LpToken, to, liquidity); err != nil {
		return math.Int{}, err
	}

	if err := accrueCumulativePrices(&pair, ctx.BlockTime); err != nil {
		return math.Int{}, err
	}

	pair.ReserveA = balanceA
	pair.ReserveB = balanceB
	pair.KLast, err = SafeMul(balanceA, balanceB)
	if err != nil {
		return math.Int{}, err
	}

	if err := k.setPairState(pair); err != nil {
		return math.Int{}, err
	}

	k.emitEvent(types.EventTypeMint, map[string]string{
		types.AttributeKeySender:    ctx.Caller,
		types.AttributeKeyRecipient: to,
		types.AttributeKeyAmountA:   amountA.String(),
		types.AttributeKeyAmountB:   amountB.String(),
		types.AttributeKeyShares:    liquidity.String(),
	})
	GetPairMetrics().MintsTotal.Inc()

	return liquidity, nil
}

// Burn redeems the share tokens already delivered to the pair's custody for
// a proportional slice of both reserves.
func (k Keeper) Burn(ctx types.Context, to string) (math.Int, math.Int, error) {
	pair, found, err := k.GetPairState()
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if !found {
		return math.Int{}, math.Int{}, types.ErrNotInitialized
	}

	shareBalance, err := k.shareKeeper.Balance(ctx, pair.LpToken, k.address)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	totalSupply, err := k.shareKeeper.TotalSupply(ctx, pair.LpToken)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if !totalSupply.IsPositive() {
		return math.Int{}, math.Int{}, types.ErrInsufficientLiquidityBurned.Wrap("no share supply")
	}

	amountA, err := SafeMulDiv(shareBalance, pair.ReserveA, totalSupply)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	amountB, err := SafeMulDiv(shareBalance, pair.ReserveB, totalSupply)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	if !amountA.IsPositive() || !amountB.IsPositive() {
		return math.Int{}, math.Int{}, types.ErrInsufficientLiquidityBurned.Wrapf(
			"shares %s redeem to %s/%s", shareBalance, amountA, amountB,
		)
	}

	if err := k.shareKeeper.Burn(ctx, pair.LpToken, k.address, shareBalance); err != nil {
		return math.Int{}, math.Int{}, err
	}

	if err := k.bankKeeper.Transfer(ctx, pair.TokenA, k.address, to, amountA); err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := k.bankKeeper.Transfer(ctx, pair.TokenB, k.address, to, amountB); err != nil {
		return math.Int{}, math.Int{}, err
	}

	if err := accrueCumulativePrices(&pair, ctx.BlockTime); err != nil {
		return math.Int{}, math.Int{}, err
	}

	pair.ReserveA, err = SafeSub(pair.ReserveA, amountA)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	pair.ReserveB, err = SafeSub(pair.ReserveB, amountB)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	pair.KLast, err = SafeMul(pair.ReserveA, pair.ReserveB)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	if err := k.setPairState(pair); err != nil {
		return math.Int{}, math.Int{}, err
	}

	k.emitEvent(types.EventTypeBurn, map[string]string{
		types.AttributeKeySender:    ctx.Caller,
		types.AttributeKeyRecipient: to,
		types.AttributeKeyAmountA:   amountA.String(),
		types.AttributeKeyAmountB:   amountB.String(),
		types.AttributeKeyShares:    shareBalance.String(),
	})
	GetPairMetrics().BurnsTotal.Inc()

	return amountA, amountB, nil
}
