// Package restaurant manages a restaurant's ordered list of orders and its
// JSON file persistence.
package restaurant

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"takeout/pkg/logger"
	"takeout/pkg/order"
	"takeout/pkg/order/jsonfile"
	"takeout/pkg/otel"
)

// Restaurant owns an order repository. Modify and delete act on the first
// order whose customer and item names match, ignoring case; a missing match
// is logged and otherwise ignored.
type Restaurant struct {
	name string
	repo order.Repository
	log  *logger.Logger
}

// New returns a Restaurant named name backed by repo.
func New(name string, repo order.Repository, log *logger.Logger) *Restaurant {
	return &Restaurant{name: name, repo: repo, log: log}
}

// Name returns the restaurant name shown in DisplayOrders.
func (r *Restaurant) Name() string {
	return r.name
}

// AddOrder appends o.
func (r *Restaurant) AddOrder(ctx context.Context, o order.Order) error {
	ctx, span := otel.AddSpan(ctx, "restaurant.AddOrder", keyAttrs(order.KeyOf(o))...)
	defer span.End()

	if err := r.repo.Add(ctx, o); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("add order: %w", err)
	}
	r.log.Info(ctx, "added order", "order", o.String())
	return nil
}

// ModifyOrder replaces the first order matching customerName and itemName
// with newOrder. It reports whether a match was found.
func (r *Restaurant) ModifyOrder(ctx context.Context, customerName, itemName string, newOrder order.Order) (bool, error) {
	key := order.Key{CustomerName: customerName, ItemName: itemName}
	ctx, span := otel.AddSpan(ctx, "restaurant.ModifyOrder", keyAttrs(key)...)
	defer span.End()

	err := r.repo.Modify(ctx, key, newOrder)
	switch {
	case errors.Is(err, order.ErrNotFound):
		r.log.Info(ctx, "order not found", "customer", customerName, "item", itemName)
		return false, nil
	case err != nil:
		span.SetStatus(codes.Error, err.Error())
		return false, fmt.Errorf("modify order %s: %w", key, err)
	}
	r.log.Info(ctx, "modified order", "order", newOrder.String())
	return true, nil
}

// DeleteOrder removes the first order matching customerName and itemName.
// It reports whether a match was found.
func (r *Restaurant) DeleteOrder(ctx context.Context, customerName, itemName string) (bool, error) {
	key := order.Key{CustomerName: customerName, ItemName: itemName}
	ctx, span := otel.AddSpan(ctx, "restaurant.DeleteOrder", keyAttrs(key)...)
	defer span.End()

	removed, err := r.repo.Delete(ctx, key)
	switch {
	case errors.Is(err, order.ErrNotFound):
		r.log.Info(ctx, "order not found", "customer", customerName, "item", itemName)
		return false, nil
	case err != nil:
		span.SetStatus(codes.Error, err.Error())
		return false, fmt.Errorf("delete order %s: %w", key, err)
	}
	r.log.Info(ctx, "deleted order", "order", removed.String())
	return true, nil
}

// Orders returns the current orders in sequence order.
func (r *Restaurant) Orders(ctx context.Context) ([]order.Order, error) {
	return r.repo.List(ctx)
}

// DisplayOrders writes a header naming the restaurant followed by one line
// per order.
func (r *Restaurant) DisplayOrders(ctx context.Context, w io.Writer) error {
	ctx, span := otel.AddSpan(ctx, "restaurant.DisplayOrders")
	defer span.End()

	orders, err := r.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}
	if _, err := fmt.Fprintf(w, "\nOrders at %s:\n", r.name); err != nil {
		return err
	}
	for _, o := range orders {
		if _, err := fmt.Fprintln(w, o); err != nil {
			return err
		}
	}
	return nil
}

// LoadOrdersFromFile replaces all orders with those stored at path. On any
// failure the current orders are kept and the error is returned.
func (r *Restaurant) LoadOrdersFromFile(ctx context.Context, path string) error {
	ctx, span := otel.AddSpan(ctx, "restaurant.LoadOrdersFromFile", attribute.String("path", path))
	defer span.End()

	orders, err := jsonfile.Load(path)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		r.log.Error(ctx, "load orders", "path", path, "error", err)
		return err
	}
	if err := r.repo.Replace(ctx, orders); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("replace orders: %w", err)
	}
	span.SetAttributes(attribute.Int("orders", len(orders)))
	r.log.Info(ctx, "loaded orders", "path", path, "count", len(orders))
	return nil
}

// SaveOrdersToFile writes all orders to path, overwriting it.
func (r *Restaurant) SaveOrdersToFile(ctx context.Context, path string) error {
	ctx, span := otel.AddSpan(ctx, "restaurant.SaveOrdersToFile", attribute.String("path", path))
	defer span.End()

	orders, err := r.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}
	if err := jsonfile.Save(path, orders); err != nil {
		span.SetStatus(codes.Error, err.Error())
		r.log.Error(ctx, "save orders", "path", path, "error", err)
		return err
	}
	r.log.Info(ctx, "saved orders", "path", path, "count", len(orders))
	return nil
}

func keyAttrs(k order.Key) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("order.customer", k.CustomerName),
		attribute.String("order.item", k.ItemName),
	}
}
