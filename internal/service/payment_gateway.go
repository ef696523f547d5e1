package service

// Gateway is the checkout step between starting a payment and verifying it.
// A production deployment would redirect the user to a hosted checkout page
// for the order and resume on its callback.
type Gateway interface {
	Checkout(orderID string, amount float64, purpose string) error
}

// SimulatedGateway confirms every order immediately, standing in for the
// hosted checkout step.
type SimulatedGateway struct{}

func (SimulatedGateway) Checkout(orderID string, amount float64, purpose string) error {
	return nil
}
