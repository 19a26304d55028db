package keeper

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/IyanuOluwaJesuloba/coralswap-core/x/pair/types"
)

// SafeMath provides overflow-checked arithmetic for the pair engine. All
// monetary values are signed 128-bit integers; any intermediate result
// outside that range is reported as ErrOverflow, never wrapped silently.

var (
	// [-2^127, 2^127-1]
	maxInt128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minInt128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))

	// MaxInt128 is the saturation bound for operations that clamp instead
	// of failing.
	MaxInt128 = math.NewIntFromBigInt(new(big.Int).Set(maxInt128))
)

func checkedInt128(v *big.Int) (math.Int, error) {
	if v.Cmp(maxInt128) > 0 || v.Cmp(minInt128) < 0 {
		return math.Int{}, types.ErrOverflow.Wrapf("result %s exceeds 128-bit range", v.String())
	}
	return math.NewIntFromBigInt(v), nil
}

// SafeAdd adds two math.Int values with 128-bit overflow checking
func SafeAdd(a, b math.Int) (math.Int, error) {
	return checkedInt128(new(big.Int).Add(a.BigInt(), b.BigInt()))
}

// SafeSub subtracts b from a with 128-bit overflow checking
func SafeSub(a, b math.Int) (math.Int, error) {
	return checkedInt128(new(big.Int).Sub(a.BigInt(), b.BigInt()))
}

// SafeMul multiplies two math.Int values with 128-bit overflow checking
func SafeMul(a, b math.Int) (math.Int, error) {
	if a.IsZero() || b.IsZero() {
		return math.ZeroInt(), nil
	}
	return checkedInt128(new(big.Int).Mul(a.BigInt(), b.BigInt()))
}

// SafeQuo divides a by b, truncating toward zero, with division-by-zero
// checking
func SafeQuo(a, b math.Int) (math.Int, error) {
	if b.IsZero() {
		return math.Int{}, types.ErrInvalidInput.Wrap("division by zero")
	}
	return checkedInt128(new(big.Int).Quo(a.BigInt(), b.BigInt()))
}

// SafeMulDiv performs (a * b) / c in one step. The intermediate product is
// carried at full precision, so only the final quotient is range-checked.
func SafeMulDiv(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, types.ErrInvalidInput.Wrap("division by zero")
	}
	intermediate := new(big.Int).Mul(a.BigInt(), b.BigInt())
	return checkedInt128(intermediate.Quo(intermediate, c.BigInt()))
}

// SaturatingAdd adds two non-negative values, clamping to MaxInt128 instead
// of failing
func SaturatingAdd(a, b math.Int) math.Int {
	sum := new(big.Int).Add(a.BigInt(), b.BigInt())
	if sum.Cmp(maxInt128) > 0 {
		return MaxInt128
	}
	return math.NewIntFromBigInt(sum)
}

// Sqrt computes the integer square root by Newton's method. Non-positive
// inputs yield zero.
func Sqrt(value math.Int) math.Int {
	if !value.IsPositive() {
		return math.ZeroInt()
	}
	v := value.BigInt()
	x := new(big.Int).Set(v)
	y := new(big.Int).Add(x, big.NewInt(1))
	y.Rsh(y, 1)
	for y.Cmp(x) < 0 {
		x.Set(y)
		y.Quo(v, x)
		y.Add(y, x)
		y.Rsh(y, 1)
	}
	return math.NewIntFromBigInt(x)
}

// MaxInt returns the larger of two math.Int values
func MaxInt(a, b math.Int) math.Int {
	if a.GT(b) {
		return a
	}
	return b
}
