package types

// Event types emitted through the notification sink
const (
	EventTypeSwap      = "pair_swap"
	EventTypeMint      = "pair_mint"
	EventTypeBurn      = "pair_burn"
	EventTypeSync      = "pair_sync"
	EventTypeFlashLoan = "pair_flash_loan"
)

// Event attribute keys
const (
	AttributeKeySender     = "sender"
	AttributeKeyRecipient  = "recipient"
	AttributeKeyReceiver   = "receiver"
	AttributeKeyAmountAIn  = "amount_a_in"
	AttributeKeyAmountBIn  = "amount_b_in"
	AttributeKeyAmountAOut = "amount_a_out"
	AttributeKeyAmountBOut = "amount_b_out"
	AttributeKeyAmountA    = "amount_a"
	AttributeKeyAmountB    = "amount_b"
	AttributeKeyFeeA       = "fee_a"
	AttributeKeyFeeB       = "fee_b"
	AttributeKeyFeeBps     = "fee_bps"
	AttributeKeyReserveA   = "reserve_a"
	AttributeKeyReserveB   = "reserve_b"
	AttributeKeyShares     = "shares"
)
