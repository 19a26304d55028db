package types

// The pair engine's key space is small and fixed: three named singleton
// slots, one record each.
var (
	// PairStateKey stores the core pair configuration and reserve state.
	PairStateKey = []byte{0x01}

	// FeeStateKey stores the dynamic fee EMA accumulator state.
	FeeStateKey = []byte{0x02}

	// ReentrancyGuardKey stores the lock protecting swap and flash loan.
	ReentrancyGuardKey = []byte{0x03}
)
