package service

import "errors"

var (
	// ErrNoDriverAvailable is returned when no driver is within range in the
	// requested district/city. This is an expected outcome, not a failure.
	ErrNoDriverAvailable = errors.New("no nearby driver found in the same district/city")

	// ErrInvalidCustomerID is returned when the customer id is empty.
	ErrInvalidCustomerID = errors.New("invalid customer id")

	// ErrInvalidDriverID is returned when the driver id is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidTripID is returned when the trip id is empty.
	ErrInvalidTripID = errors.New("invalid trip id")

	// ErrInvalidPickupLocation is returned when pickup coordinates are out of
	// range.
	ErrInvalidPickupLocation = errors.New("invalid pickup location")

	// ErrInvalidDestinationLocation is returned when destination coordinates
	// are out of range.
	ErrInvalidDestinationLocation = errors.New("invalid destination location")

	// ErrInvalidLocation is returned when reported coordinates are out of
	// range.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrMissingFields is returned when a required request field is absent.
	ErrMissingFields = errors.New("missing required fields")

	// ErrCustomerNotRecognized is returned when the user service does not
	// know the customer. Blocking for trip creation.
	ErrCustomerNotRecognized = errors.New("customer id does not exist")

	// ErrDriverNotRecognized is returned when the user service does not know
	// the driver.
	ErrDriverNotRecognized = errors.New("driver id does not exist")

	// ErrInvalidBill is returned when a completion update carries a
	// non-positive bill.
	ErrInvalidBill = errors.New("invalid bill")
)
