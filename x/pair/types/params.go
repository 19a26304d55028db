package types

import (
	"cosmossdk.io/math"
)

// FeeParams configures the dynamic fee engine when a pair's FeeState is first
// materialized.
type FeeParams struct {
	BaselineFeeBps       uint32
	MinFeeBps            uint32
	MaxFeeBps            uint32
	RampUpMultiplier     uint32
	CooldownDivisor      uint32
	EmaAlpha             math.Int
	DecayThresholdBlocks uint64
}

// DefaultFeeParams returns the fee parameters used when no explicit
// configuration is supplied: 30 bps baseline within [5, 100], 10% EMA alpha,
// halving decay after 100 idle blocks.
func DefaultFeeParams() FeeParams {
	return FeeParams{
		BaselineFeeBps:       DefaultFeeBps,
		MinFeeBps:            5,
		MaxFeeBps:            100,
		RampUpMultiplier:     2,
		CooldownDivisor:      2,
		EmaAlpha:             Scale.QuoRaw(10),
		DecayThresholdBlocks: 100,
	}
}

// Validate checks the parameter bounds.
func (p FeeParams) Validate() error {
	return p.NewFeeState(0).Validate()
}

// NewFeeState materializes a fresh FeeState from the parameters, with zero
// volatility and the given sequence counter as the last touch.
func (p FeeParams) NewFeeState(currentHeight uint64) FeeState {
	return FeeState{
		VolAccumulator:       math.ZeroInt(),
		EmaAlpha:             p.EmaAlpha,
		BaselineFeeBps:       p.BaselineFeeBps,
		MinFeeBps:            p.MinFeeBps,
		MaxFeeBps:            p.MaxFeeBps,
		RampUpMultiplier:     p.RampUpMultiplier,
		CooldownDivisor:      p.CooldownDivisor,
		LastFeeUpdate:        currentHeight,
		DecayThresholdBlocks: p.DecayThresholdBlocks,
	}
}
