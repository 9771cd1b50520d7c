// Package tracking implements the customer-facing order tracking loop: a
// poller that periodically merges order, delivery and route state into a
// view snapshot and publishes it to a sink.
package tracking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"mealdash/internal/core/domain/model/delivery"
	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/core/domain/model/order"
	"mealdash/internal/core/domain/services"
	"mealdash/internal/core/ports"
	"mealdash/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// After this many consecutive refresh failures the last good view is
// republished with the Degraded flag raised.
const degradedThreshold = 3

// OrderFetcher loads the current state of the tracked order.
type OrderFetcher interface {
	FetchOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error)
}

// DeliveryFetcher loads the delivery belonging to the tracked order.
type DeliveryFetcher interface {
	FetchDeliveryByOrder(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)
}

// Fetchers bundles the sources a poller reads from. Local deployments back
// them with repositories; remote ones with the REST client.
type Fetchers struct {
	Orders     OrderFetcher
	Deliveries DeliveryFetcher
}

// ViewSink receives every assembled tracking view.
type ViewSink interface {
	Publish(view services.View)
}

// ViewSinkFunc adapts a function to the ViewSink interface.
type ViewSinkFunc func(view services.View)

// Publish calls f(view).
func (f ViewSinkFunc) Publish(view services.View) {
	f(view)
}

// Poller refreshes the tracking view for one order on a fixed interval.
//
// Lifecycle rules:
//   - Start schedules the refresh; overlapping ticks are skipped, not queued.
//   - A refresh failure keeps the previous view; after three consecutive
//     failures the previous view is republished with Degraded set and
//     polling continues.
//   - A failed geocode or route lookup is not a refresh failure: the view is
//     published without the route section.
//   - Once the order reaches a terminal status the final view is published
//     and the poller stops itself.
//   - Stop is idempotent. In-flight refreshes are not cancelled, but their
//     results are discarded.
type Poller struct {
	orderID   kernel.UUID
	interval  time.Duration
	fetchers  Fetchers
	resolver  ports.GeoProvider
	sink      ViewSink
	assembler services.TrackingViewAssembler
	logger    *slog.Logger

	cron *cron.Cron

	mu       sync.Mutex
	started  bool
	stopped  bool
	failures int
	lastView *services.View
}

// NewPoller creates a poller for the given order. The interval must be
// positive; fetchers, resolver and sink are all required.
func NewPoller(
	orderID kernel.UUID,
	interval time.Duration,
	fetchers Fetchers,
	resolver ports.GeoProvider,
	sink ViewSink,
	logger *slog.Logger,
) (*Poller, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if interval <= 0 {
		return nil, errs.NewValueIsInvalidError("interval")
	}
	if fetchers.Orders == nil || fetchers.Deliveries == nil {
		return nil, errs.NewValueIsRequiredError("fetchers")
	}
	if resolver == nil {
		return nil, errs.NewValueIsRequiredError("resolver")
	}
	if sink == nil {
		return nil, errs.NewValueIsRequiredError("sink")
	}

	return &Poller{
		orderID:   orderID,
		interval:  interval,
		fetchers:  fetchers,
		resolver:  resolver,
		sink:      sink,
		assembler: services.NewTrackingViewAssembler(),
		logger:    logger.With("component", "tracking_poller", "order_id", orderID.String()),
	}, nil
}

// Start schedules the refresh loop. A stopped poller cannot be restarted.
func (p *Poller) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return errors.New("tracking poller cannot be restarted after stop")
	}
	if p.started {
		return nil
	}

	p.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := p.cron.AddFunc(fmt.Sprintf("@every %s", p.interval), func() {
		p.Tick(context.Background())
	})
	if err != nil {
		return err
	}

	p.cron.Start()
	p.started = true
	p.logger.InfoContext(context.Background(), "Tracking poller started", "interval", p.interval.String())
	return nil
}

// Stop ends the refresh loop. Safe to call more than once and concurrently
// with a running tick; a tick that is still in flight has its result
// discarded.
func (p *Poller) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	scheduler := p.cron
	p.mu.Unlock()

	if scheduler != nil {
		scheduler.Stop()
	}
	p.logger.InfoContext(context.Background(), "Tracking poller stopped")
}

// Tick runs one refresh: fetch order, fetch delivery when the order status
// implies an active one, resolve the route when a courier position is known,
// assemble and publish. Exposed so callers can force an immediate refresh.
func (p *Poller) Tick(ctx context.Context) {
	p.mu.Lock()
	stopped := p.stopped
	p.mu.Unlock()
	if stopped {
		return
	}

	view, err := p.refresh(ctx)
	if err != nil {
		p.recordFailure(ctx, err)
		return
	}
	p.publish(view)
}

func (p *Poller) refresh(ctx context.Context) (services.View, error) {
	trackedOrder, err := p.fetchers.Orders.FetchOrder(ctx, p.orderID)
	if err != nil {
		return services.View{}, fmt.Errorf("fetch order: %w", err)
	}

	var trackedDelivery *delivery.Delivery
	if trackedOrder.Status().ImpliesActiveDelivery() {
		trackedDelivery, err = p.fetchers.Deliveries.FetchDeliveryByOrder(ctx, p.orderID)
		if err != nil {
			return services.View{}, fmt.Errorf("fetch delivery: %w", err)
		}
	}

	route := p.resolveRoute(ctx, trackedDelivery)

	return p.assembler.Assemble(trackedOrder, trackedDelivery, route, time.Now())
}

// resolveRoute enriches the view with the courier's remaining route. Geo
// lookups failing is a normal outcome; the view simply carries no route.
func (p *Poller) resolveRoute(ctx context.Context, d *delivery.Delivery) *services.RouteSummary {
	if d == nil || d.CurrentLocation() == nil {
		return nil
	}

	destination, err := p.resolver.Geocode(ctx, d.DeliveryAddress())
	if err != nil {
		p.logger.DebugContext(ctx, "Geocode failed, view continues without route", "error", err)
		return nil
	}

	route, err := p.resolver.Route(ctx, *d.CurrentLocation(), destination)
	if err != nil {
		p.logger.DebugContext(ctx, "Route lookup failed, view continues without route", "error", err)
		return nil
	}

	return &route
}

func (p *Poller) publish(view services.View) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}

	p.failures = 0
	p.lastView = &view

	terminal := view.OrderStatus.IsTerminal()
	if terminal {
		p.stopped = true
	}
	scheduler := p.cron
	p.mu.Unlock()

	p.sink.Publish(view)

	if terminal {
		if scheduler != nil {
			scheduler.Stop()
		}
		p.logger.InfoContext(context.Background(), "Order reached terminal status, tracking poller stopping",
			"status", view.OrderStatus.String())
	}
}

func (p *Poller) recordFailure(ctx context.Context, err error) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}

	p.failures++
	failures := p.failures

	var degraded *services.View
	if failures == degradedThreshold {
		if p.lastView != nil {
			view := p.lastView.WithDegraded()
			p.lastView = &view
			degraded = &view
		} else {
			// no snapshot was ever captured; surface the signal with the
			// order identity alone
			view := services.View{
				OrderID:   p.orderID,
				UpdatedAt: time.Now(),
				Degraded:  true,
			}
			degraded = &view
		}
	}
	p.mu.Unlock()

	p.logger.WarnContext(ctx, "Tracking refresh failed", "error", err, "consecutive_failures", failures)

	if degraded != nil {
		p.sink.Publish(*degraded)
	}
}
