package marketplace

import "errors"

var (
	// ErrInvalidPayment is returned when a purchase attaches anything
	// other than the exact listed price.
	ErrInvalidPayment = errors.New("payment does not match the listed price")

	// ErrInvalidPrice is returned when a relisting price is zero.
	ErrInvalidPrice = errors.New("price must be greater than zero")

	// ErrRoyaltyRequired is returned when a relisting attaches anything
	// other than the exact current royalty fee.
	ErrRoyaltyRequired = errors.New("payment does not match the royalty fee")

	// ErrUnauthorized is returned when a restricted operation is called
	// by anyone other than the market operator.
	ErrUnauthorized = errors.New("caller is not the market operator")

	// ErrNotListed is returned when an operation targets a token that is
	// not currently held by the marketplace.
	ErrNotListed = errors.New("token is not listed for sale")

	// ErrDeploymentMismatch is returned when the deployment payment does
	// not equal royalty fee times token count.
	ErrDeploymentMismatch = errors.New("deployment payment must equal royalty fee times token count")

	// ErrRoyaltyReserveEmpty is returned when the pooled deployment
	// prepayment can no longer cover the royalty due on a purchase.
	ErrRoyaltyReserveEmpty = errors.New("royalty reserve cannot cover the fee")
)
