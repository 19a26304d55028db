package types

import (
	"cosmossdk.io/math"
)

const (
	// ModuleName defines the module name
	ModuleName = "pair"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

var (
	// Scale is the fixed-point scale factor (1e14) used by the volatility
	// EMA and the price accumulators.
	Scale = math.NewInt(100_000_000_000_000)

	// BpsDenominator is the basis-point denominator.
	BpsDenominator = math.NewInt(10_000)

	// MinimumLiquidity is the share amount permanently locked on the first
	// deposit so later depositors cannot be griefed into rounding losses.
	MinimumLiquidity = math.NewInt(1_000)
)

const (
	// FlashFeeFloorBps is the minimum flash-loan fee in basis points,
	// applied even when the pool's dynamic fee is lower or unset.
	FlashFeeFloorBps = uint32(5)

	// MaxFlashPayloadSize caps the opaque payload forwarded to a flash-loan
	// receiver.
	MaxFlashPayloadSize = 256

	// DefaultFeeBps is the fee reported before any FeeState exists.
	DefaultFeeBps = uint32(30)

	// MaxDecayPeriods bounds the iterative fee decay so an arbitrarily long
	// idle gap cannot make a single swap do unbounded work.
	MaxDecayPeriods = uint64(32)

	// LockedSharesAddress holds the permanently locked first-deposit shares.
	// Nothing ever transfers or burns from it, so total supply can never
	// return to zero once a pair has been funded.
	LockedSharesAddress = "pair_locked_shares"
)

// Context carries the ambient execution facts for one invocation: the ledger
// clock, the sequence counter used by fee decay, and the caller identity.
// Operations receive it explicitly so the engine is testable with constructed
// contexts instead of global state.
type Context struct {
	BlockTime   uint64
	BlockHeight uint64
	Caller      string
}

// PairState is the engine's bookkeeping for one trading pair. Reserves always
// equal the last-synchronized view of actual token custody, and KLast equals
// ReserveA*ReserveB after every successful mutating call.
type PairState struct {
	Registry            string   `json:"registry"`
	TokenA              string   `json:"token_a"`
	TokenB              string   `json:"token_b"`
	LpToken             string   `json:"lp_token"`
	ReserveA            math.Int `json:"reserve_a"`
	ReserveB            math.Int `json:"reserve_b"`
	BlockTimestampLast  uint64   `json:"block_timestamp_last"`
	PriceACumulative    math.Int `json:"price_a_cumulative"`
	PriceBCumulative    math.Int `json:"price_b_cumulative"`
	KLast               math.Int `json:"k_last"`
}

// FeeState holds the dynamic fee engine's EMA accumulator and bounds.
type FeeState struct {
	VolAccumulator       math.Int `json:"vol_accumulator"`
	EmaAlpha             math.Int `json:"ema_alpha"`
	BaselineFeeBps       uint32   `json:"baseline_fee_bps"`
	MinFeeBps            uint32   `json:"min_fee_bps"`
	MaxFeeBps            uint32   `json:"max_fee_bps"`
	RampUpMultiplier     uint32   `json:"ramp_up_multiplier"`
	CooldownDivisor      uint32   `json:"cooldown_divisor"`
	LastFeeUpdate        uint64   `json:"last_fee_update"`
	DecayThresholdBlocks uint64   `json:"decay_threshold_blocks"`
}

// ReentrancyGuard is the single lock flag protecting swap and flash-loan
// execution. It defaults to unlocked.
type ReentrancyGuard struct {
	Locked bool `json:"locked"`
}

// Validate checks the PairState internal invariants.
func (p PairState) Validate() error {
	if p.TokenA == "" || p.TokenB == "" {
		return ErrInvalidInput.Wrap("pair tokens must be set")
	}
	if p.TokenA == p.TokenB {
		return ErrInvalidInput.Wrap("pair tokens must differ")
	}
	if p.TokenA > p.TokenB {
		return ErrInvalidInput.Wrapf("pair tokens out of canonical order: %s > %s", p.TokenA, p.TokenB)
	}
	if p.ReserveA.IsNil() || p.ReserveA.IsNegative() {
		return ErrInvalidInput.Wrapf("negative reserve A: %s", p.ReserveA)
	}
	if p.ReserveB.IsNil() || p.ReserveB.IsNegative() {
		return ErrInvalidInput.Wrapf("negative reserve B: %s", p.ReserveB)
	}
	return nil
}

// Validate checks the FeeState bounds.
func (f FeeState) Validate() error {
	if f.VolAccumulator.IsNil() || f.VolAccumulator.IsNegative() {
		return ErrInvalidInput.Wrapf("negative volatility accumulator: %s", f.VolAccumulator)
	}
	if f.EmaAlpha.IsNil() || f.EmaAlpha.IsNegative() || f.EmaAlpha.GT(Scale) {
		return ErrInvalidInput.Wrapf("ema alpha must be in [0, Scale], got %s", f.EmaAlpha)
	}
	if f.MinFeeBps > f.BaselineFeeBps || f.BaselineFeeBps > f.MaxFeeBps {
		return ErrInvalidInput.Wrapf(
			"fee bounds must satisfy min <= baseline <= max, got %d/%d/%d",
			f.MinFeeBps, f.BaselineFeeBps, f.MaxFeeBps,
		)
	}
	if f.CooldownDivisor < 2 {
		return ErrInvalidInput.Wrapf("cooldown divisor must be >= 2, got %d", f.CooldownDivisor)
	}
	if f.DecayThresholdBlocks == 0 {
		return ErrInvalidInput.Wrap("decay threshold must be positive")
	}
	return nil
}
