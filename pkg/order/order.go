package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind is the fulfillment variant of an order. Its value is the tag written
// to the "type" field of the JSON representation.
type Kind string

const (
	KindDineIn   Kind = "DineInOrder"
	KindTakeout  Kind = "TakeoutOrder"
	KindDelivery Kind = "DeliveryOrder"
)

var (
	// ErrNotFound indicates no order matches the requested key.
	ErrNotFound = errors.New("order not found")
	// ErrUnknownVariant indicates a missing or unrecognized variant tag, or a
	// variant missing one of its required fields.
	ErrUnknownVariant = errors.New("unknown order variant")
	// ErrIO indicates an order file could not be read, written or parsed.
	ErrIO = errors.New("order file i/o")
)

// ParseKind accepts either a wire tag ("TakeoutOrder") or its short form
// ("takeout"), ignoring case.
func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{KindDineIn, KindTakeout, KindDelivery} {
		if strings.EqualFold(s, string(k)) || strings.EqualFold(s, strings.TrimSuffix(string(k), "Order")) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// Order represents a single customer order. Address is set for takeout and
// delivery orders, DeliveryCompany for delivery orders only.
type Order struct {
	Kind            Kind
	CustomerName    string
	ItemName        string
	Quantity        int
	Price           decimal.Decimal
	Address         string
	DeliveryCompany string
}

// NewDineIn returns a dine-in order.
func NewDineIn(customerName, itemName string, quantity int, price decimal.Decimal) Order {
	return Order{
		Kind:         KindDineIn,
		CustomerName: customerName,
		ItemName:     itemName,
		Quantity:     quantity,
		Price:        price,
	}
}

// NewTakeout returns a takeout order picked up from address.
func NewTakeout(customerName, itemName string, quantity int, price decimal.Decimal, address string) Order {
	o := NewDineIn(customerName, itemName, quantity, price)
	o.Kind = KindTakeout
	o.Address = address
	return o
}

// NewDelivery returns an order delivered to address by deliveryCompany.
func NewDelivery(customerName, itemName string, quantity int, price decimal.Decimal, address, deliveryCompany string) Order {
	o := NewTakeout(customerName, itemName, quantity, price, address)
	o.Kind = KindDelivery
	o.DeliveryCompany = deliveryCompany
	return o
}

// String renders the order for display, e.g.
// "Jane Smith ordered 1 x Pasta for $15.00 (Takeout: 123 Main St)".
func (o Order) String() string {
	s := fmt.Sprintf("%s ordered %d x %s for $%s", o.CustomerName, o.Quantity, o.ItemName, o.Price.StringFixed(2))
	switch o.Kind {
	case KindDineIn:
		return s + " (DineIn)"
	case KindTakeout:
		return s + " (Takeout: " + o.Address + ")"
	case KindDelivery:
		return s + " (Delivery by " + o.DeliveryCompany + ")"
	}
	return s
}

// Equal reports whether both orders carry the same variant and field values.
func (o Order) Equal(other Order) bool {
	return o.Kind == other.Kind &&
		o.CustomerName == other.CustomerName &&
		o.ItemName == other.ItemName &&
		o.Quantity == other.Quantity &&
		o.Price.Equal(other.Price) &&
		o.Address == other.Address &&
		o.DeliveryCompany == other.DeliveryCompany
}

// Key identifies orders for modification and deletion. It is not unique.
type Key struct {
	CustomerName string
	ItemName     string
}

// KeyOf returns the key of o.
func KeyOf(o Order) Key {
	return Key{CustomerName: o.CustomerName, ItemName: o.ItemName}
}

// Matches compares k with the order's customer and item names, ignoring case.
func (k Key) Matches(o Order) bool {
	return strings.EqualFold(o.CustomerName, k.CustomerName) && strings.EqualFold(o.ItemName, k.ItemName)
}

func (k Key) String() string {
	return k.CustomerName + " " + k.ItemName
}

// Repository defines behavior for an ordered collection of orders.
// Modify and Delete act on the first order matching the key and return
// ErrNotFound when there is none.
type Repository interface {
	Add(ctx context.Context, o Order) error
	Modify(ctx context.Context, key Key, o Order) error
	Delete(ctx context.Context, key Key) (Order, error)
	List(ctx context.Context) ([]Order, error)
	Replace(ctx context.Context, orders []Order) error
}
