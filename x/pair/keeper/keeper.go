// Package keeper implements the settlement engine of one trading pair:
// constant-product swaps with a dynamic volatility-driven fee, liquidity
// provisioning against an external share token, flash loans with repayment
// verification, and a cumulative-price oracle. All external effects go
// through injected capability interfaces so the engine runs identically
// against a production host and against test fakes.
package keeper

import (
	"encoding/json"

	"cosmossdk.io/log"
	"cosmossdk.io/math"

	"github.com/IyanuOluwaJesuloba/coralswap-core/x/pair/types"
)

// Keeper of one pair instance's store
type Keeper struct {
	store       types.Store
	bankKeeper  types.BankKeeper
	shareKeeper types.ShareTokenKeeper
	events      types.EventEmitter
	logger      log.Logger
	feeParams   types.FeeParams

	// address is the custody account of this pair instance; token deposits
	// and loans settle against its balances.
	address string
}

// NewKeeper creates a new pair Keeper instance
func NewKeeper(
	store types.Store,
	bankKeeper types.BankKeeper,
	shareKeeper types.ShareTokenKeeper,
	events types.EventEmitter,
	logger log.Logger,
	pairAddress string,
	feeParams types.FeeParams,
) *Keeper {
	return &Keeper{
		store:       store,
		bankKeeper:  bankKeeper,
		shareKeeper: shareKeeper,
		events:      events,
		logger:      logger,
		feeParams:   feeParams,
		address:     pairAddress,
	}
}

// Address returns the custody account identity of this pair instance.
func (k Keeper) Address() string {
	return k.address
}

// Logger returns the keeper's logger.
func (k Keeper) Logger() log.Logger {
	return k.logger
}

// GetPairState loads the pair record if it has been initialized.
func (k Keeper) GetPairState() (types.PairState, bool, error) {
	bz := k.store.Get(types.PairStateKey)
	if bz == nil {
		return types.PairState{}, false, nil
	}

	var state types.PairState
	if err := json.Unmarshal(bz, &state); err != nil {
		return types.PairState{}, false, types.ErrInvalidInput.Wrapf("corrupt pair state: %v", err)
	}
	return state, true, nil
}

func (k Keeper) setPairState(state types.PairState) error {
	bz, err := json.Marshal(&state)
	if err != nil {
		return types.ErrInvalidInput.Wrapf("failed to marshal pair state: %v", err)
	}
	k.store.Set(types.PairStateKey, bz)
	return nil
}

// GetFeeState loads the dynamic fee record if it has been materialized.
func (k Keeper) GetFeeState() (types.FeeState, bool, error) {
	bz := k.store.Get(types.FeeStateKey)
	if bz == nil {
		return types.FeeState{}, false, nil
	}

	var state types.FeeState
	if err := json.Unmarshal(bz, &state); err != nil {
		return types.FeeState{}, false, types.ErrInvalidInput.Wrapf("corrupt fee state: %v", err)
	}
	return state, true, nil
}

func (k Keeper) setFeeState(state types.FeeState) error {
	bz, err := json.Marshal(&state)
	if err != nil {
		return types.ErrInvalidInput.Wrapf("failed to marshal fee state: %v", err)
	}
	k.store.Set(types.FeeStateKey, bz)
	return nil
}

// loadOrDefaultFeeState returns the stored fee state, or a fresh one built
// from the keeper's fee parameters when none has been created yet. A pool
// that has never seen a fee update charges the baseline fee.
func (k Keeper) loadOrDefaultFeeState(ctx types.Context) (types.FeeState, error) {
	fs, found, err := k.GetFeeState()
	if err != nil {
		return types.FeeState{}, err
	}
	if !found {
		fs = k.feeParams.NewFeeState(ctx.BlockHeight)
	}
	return fs, nil
}

// emitEvent forwards a notification to the sink, if one is wired. Emission is
// fire-and-forget and never affects settlement.
func (k Keeper) emitEvent(eventType string, attributes map[string]string) {
	if k.events == nil {
		return
	}
	k.events.EmitEvent(eventType, attributes)
}

// custodyBalances reads the engine's actual token holdings for both pair
// tokens.
func (k Keeper) custodyBalances(ctx types.Context, pair types.PairState) (math.Int, math.Int, error) {
	balanceA, err := k.bankKeeper.Balance(ctx, pair.TokenA, k.address)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	balanceB, err := k.bankKeeper.Balance(ctx, pair.TokenB, k.address)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	return balanceA, balanceB, nil
}
