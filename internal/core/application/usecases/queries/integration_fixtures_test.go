package queries_test

import (
	"context"
	"time"

	"mealdash/internal/adapters/out/postgres/deliveryrepo"
	"mealdash/internal/adapters/out/postgres/orderrepo"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// startQueryTestDatabase launches a PostgreSQL container, connects to it and
// migrates the order and delivery tables the read side queries against.
func startQueryTestDatabase(s *suite.Suite) (*postgres.PostgresContainer, *gorm.DB) {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	s.Require().NoError(err)

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &deliveryrepo.DeliveryDTO{})
	s.Require().NoError(err)

	return container, db
}

// newOrderRow builds an order row in the given status. Amounts keep the
// subtotal+fee+tax=total relationship so the row could round-trip through
// the write side too.
func newOrderRow(status string, createdAt time.Time) orderrepo.OrderDTO {
	return orderrepo.OrderDTO{
		ID:             uuid.New(),
		CustomerID:     uuid.New(),
		RestaurantID:   uuid.New(),
		RestaurantName: "Luigi's",
		Lines: []orderrepo.LineDTO{
			{MenuItemID: uuid.NewString(), Name: "Margherita", UnitPriceCents: 899, Quantity: 1},
		},
		Status:                status,
		SubtotalCents:         899,
		DeliveryFeeCents:      399,
		TaxCents:              72,
		TotalCents:            1370,
		PickupAddress:         "1 Restaurant Row",
		DeliveryAddress:       "12 Main St",
		CreatedAt:             createdAt,
		EstimatedDeliveryTime: createdAt.Add(45 * time.Minute),
	}
}

// newDeliveryRow builds a delivery row for the given order without a
// courier, as the write side creates it.
func newDeliveryRow(orderID uuid.UUID, status string, createdAt time.Time) deliveryrepo.DeliveryDTO {
	return deliveryrepo.DeliveryDTO{
		ID:              uuid.New(),
		OrderID:         orderID,
		Status:          status,
		PickupAddress:   "1 Restaurant Row",
		DeliveryAddress: "12 Main St",
		CreatedAt:       createdAt,
	}
}

// withCourier attaches courier columns and an assignment timestamp to a
// delivery row.
func withCourier(row deliveryrepo.DeliveryDTO, name string, phone string, assignedAt time.Time) deliveryrepo.DeliveryDTO {
	courierID := uuid.New()
	row.CourierID = &courierID
	row.CourierName = &name
	row.CourierPhone = &phone
	row.AssignedAt = &assignedAt
	return row
}
