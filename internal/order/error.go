package order

// Gate messages surfaced when a non-PENDING order blocks a mutation.
const (
	msgModifyFinalized  = "cannot modify a finalized order"
	msgDeleteNonPending = "only PENDING orders can be deleted"
)

const (
	kindOrder     = "order"
	kindOrderItem = "order item"
)
