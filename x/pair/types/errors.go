package types

import (
	"cosmossdk.io/errors"
)

// Pair module sentinel errors
var (
	ErrAlreadyInitialized          = errors.Register(ModuleName, 1, "pair already initialized")
	ErrNotInitialized              = errors.Register(ModuleName, 2, "pair not initialized")
	ErrInsufficientLiquidity       = errors.Register(ModuleName, 3, "insufficient liquidity in pair")
	ErrInsufficientInputAmount     = errors.Register(ModuleName, 4, "insufficient input amount")
	ErrInsufficientOutputAmount    = errors.Register(ModuleName, 5, "insufficient output amount")
	ErrInvalidK                    = errors.Register(ModuleName, 6, "constant product invariant violated")
	ErrLocked                      = errors.Register(ModuleName, 7, "reentrancy lock held")
	ErrFlashLoanNotRepaid          = errors.Register(ModuleName, 8, "flash loan not repaid")
	ErrFlashPayloadTooLarge        = errors.Register(ModuleName, 9, "flash loan payload too large")
	ErrOverflow                    = errors.Register(ModuleName, 10, "arithmetic overflow")
	ErrInvalidInput                = errors.Register(ModuleName, 11, "invalid input")
	ErrInsufficientLiquidityMinted = errors.Register(ModuleName, 12, "insufficient liquidity minted")
	ErrInsufficientLiquidityBurned = errors.Register(ModuleName, 13, "insufficient liquidity burned")
)
