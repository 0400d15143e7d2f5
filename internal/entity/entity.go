package entity

import "strings"

type Entity interface {
	Slug() string
}

// Address is a 20 byte account identifier in its 0x hex form.
type Address string

const ZeroAddress Address = "0x0000000000000000000000000000000000000000"

// NoSeller marks a market item whose token was bought and not yet relisted.
const NoSeller = ZeroAddress

func NewAddress(addr string) Address {
	return Address(strings.ToLower(addr))
}

func (a Address) IsZero() bool {
	return a == ZeroAddress || a == ""
}
