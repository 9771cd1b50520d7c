package commands

import (
	"errors"

	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/pkg/guard"
)

var ErrReportCourierLocationCommandIsNotConstructed = errors.New(
	"ReportCourierLocationCommand must be created via NewReportCourierLocationCommand constructor",
)

// ReportCourierLocationCommand represents a position update from the courier
// working a delivery. Positions feed the tracking view and the live location
// store.
type ReportCourierLocationCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	location   kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewReportCourierLocationCommand creates a position report for the given
// delivery from raw coordinates.
func NewReportCourierLocationCommand(deliveryID kernel.UUID, lat, lng float64) (ReportCourierLocationCommand, error) {
	if err := deliveryID.Validate(); err != nil {
		return ReportCourierLocationCommand{}, err
	}

	location, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return ReportCourierLocationCommand{}, err
	}

	return ReportCourierLocationCommand{
		deliveryID: deliveryID,
		location:   location,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportCourierLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportCourierLocationCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery being worked.
func (c ReportCourierLocationCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Location returns the reported position.
func (c ReportCourierLocationCommand) Location() kernel.GeoPoint {
	return c.location
}
