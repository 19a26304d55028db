package keeper

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/IyanuOluwaJesuloba/coralswap-core/internal/memstate"
	pairkeeper "github.com/IyanuOluwaJesuloba/coralswap-core/x/pair/keeper"
	"github.com/IyanuOluwaJesuloba/coralswap-core/x/pair/types"
)

// Well-known identities used across the test suite.
const (
	PairAddress = "pair1custody"
	Trader      = "coral1trader"
	Provider    = "coral1provider"
	TokenA      = "ucoral"
	TokenB      = "uusd"
	LpToken     = "lp-ucoral-uusd"
	Registry    = "coral1registry"
)

// Fixture bundles a pair keeper with its in-memory dependencies.
type Fixture struct {
	Keeper  *pairkeeper.Keeper
	Bank    *memstate.Bank
	Store   *memstate.MemStore
	Emitter *RecordingEmitter
}

// PairKeeper creates a test keeper wired to in-memory fakes.
func PairKeeper(t testing.TB) *Fixture {
	t.Helper()

	store := memstate.NewMemStore()
	bank := memstate.NewBank()
	emitter := &RecordingEmitter{}

	k := pairkeeper.NewKeeper(
		store,
		bank,
		bank,
		emitter,
		log.NewNopLogger(),
		PairAddress,
		types.DefaultFeeParams(),
	)

	return &Fixture{Keeper: k, Bank: bank, Store: store, Emitter: emitter}
}

// Ctx builds an invocation context at the given clock reading.
func Ctx(blockTime, blockHeight uint64, caller string) types.Context {
	return types.Context{BlockTime: blockTime, BlockHeight: blockHeight, Caller: caller}
}

// InitializedPair creates a fixture with an initialized ucoral/uusd pair and
// no liquidity.
func InitializedPair(t testing.TB) *Fixture {
	t.Helper()

	f := PairKeeper(t)
	err := f.Keeper.Initialize(Ctx(1, 1, Registry), Registry, TokenA, TokenB, LpToken)
	require.NoError(t, err)
	return f
}

// SeedLiquidity funds the provider, deposits amountA/amountB into custody and
// mints the first liquidity shares. It returns the shares credited to the
// provider.
func SeedLiquidity(t testing.TB, f *Fixture, ctx types.Context, amountA, amountB math.Int) math.Int {
	t.Helper()

	f.Bank.Fund(TokenA, Provider, amountA)
	f.Bank.Fund(TokenB, Provider, amountB)
	require.NoError(t, f.Bank.Transfer(ctx, TokenA, Provider, PairAddress, amountA))
	require.NoError(t, f.Bank.Transfer(ctx, TokenB, Provider, PairAddress, amountB))

	shares, err := f.Keeper.Mint(ctx, Provider)
	require.NoError(t, err)
	return shares
}
