package uid

import "github.com/rs/xid"

// XID generates short sortable string IDs, used for delivery and challenge
// tokens where a UUID's length buys nothing.
type XID struct{}

// NewXID returns an XID generator.
func NewXID() *XID {
	return &XID{}
}

// Generate returns a new xid string.
func (*XID) Generate() string {
	return xid.New().String()
}
