package types

import (
	"cosmossdk.io/math"
)

// Store is the persistent record store backing one pair instance. The hosting
// environment is expected to provide call-scoped atomicity: all writes of a
// failed invocation are discarded together.
type Store interface {
	Get(key []byte) []byte
	Set(key, value []byte)
	Has(key []byte) bool
	Delete(key []byte)
}

// BankKeeper is the fungible token capability consumed for both pair tokens.
// Identities are opaque strings; amounts are checked 128-bit integers.
type BankKeeper interface {
	Balance(ctx Context, token, holder string) (math.Int, error)
	Transfer(ctx Context, token, from, to string, amount math.Int) error
}

// ShareTokenKeeper is the external liquidity-share token capability.
type ShareTokenKeeper interface {
	Mint(ctx Context, token, to string, amount math.Int) error
	Burn(ctx Context, token, holder string, amount math.Int) error
	TotalSupply(ctx Context, token string) (math.Int, error)
	Balance(ctx Context, token, holder string) (math.Int, error)
}

// FlashLoanReceiver is invoked after the loan principal has been transferred.
// The receiver must return principal plus fee to the pair's custody before the
// callback returns; success is inferred entirely from post-callback balances.
type FlashLoanReceiver interface {
	// Address is the identity the loan principal is transferred to.
	Address() string

	OnFlashLoan(
		ctx Context,
		initiator string,
		tokenA, tokenB string,
		amountA, amountB math.Int,
		feeA, feeB math.Int,
		payload []byte,
	) error
}

// EventEmitter is the fire-and-forget notification sink for swap, mint, burn,
// sync and flash-loan occurrences. Emission failures never affect settlement.
type EventEmitter interface {
	EmitEvent(eventType string, attributes map[string]string)
}
