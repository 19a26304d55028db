package keeper

import (
	"encoding/json"

	"github.com/IyanuOluwaJesuloba/coralswap-core/x/pair/types"
)

// Reentrancy guard: a single lock flag in the pair's store. Swap and flash
// loan acquire it on entry, so receiver callbacks that try to re-enter the
// same pair are rejected with ErrLocked. Release runs on every exit path via
// defer, the scoped-acquisition pattern, since the engine cannot rely on a
// host rolling the lock write back on failure.

func (k Keeper) getReentrancyGuard() types.ReentrancyGuard {
	bz := k.store.Get(types.ReentrancyGuardKey)
	if bz == nil {
		return types.ReentrancyGuard{Locked: false}
	}

	var guard types.ReentrancyGuard
	if err := json.Unmarshal(bz, &guard); err != nil {
		// A corrupt guard record is treated as locked: refusing service is
		// safer than running unguarded.
		return types.ReentrancyGuard{Locked: true}
	}
	return guard
}

func (k Keeper) setReentrancyGuard(guard types.ReentrancyGuard) {
	bz, err := json.Marshal(&guard)
	if err != nil {
		// Marshaling a single bool cannot fail.
		panic(err)
	}
	k.store.Set(types.ReentrancyGuardKey, bz)
}

// acquireLock takes the reentrancy lock, failing if it is already held.
func (k Keeper) acquireLock(operation string) error {
	if k.getReentrancyGuard().Locked {
		return types.ErrLocked.Wrapf("%s rejected: pair is executing another operation", operation)
	}
	k.setReentrancyGuard(types.ReentrancyGuard{Locked: true})
	return nil
}

// releaseLock unconditionally clears the lock; it is idempotent.
func (k Keeper) releaseLock() {
	k.setReentrancyGuard(types.ReentrancyGuard{Locked: false})
}

// withReentrancyGuard executes fn holding the lock, releasing it on every
// exit path including panics.
func (k Keeper) withReentrancyGuard(operation string, fn func() error) error {
	if err := k.acquireLock(operation); err != nil {
		return err
	}
	defer k.releaseLock()

	return fn()
}
