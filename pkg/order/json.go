package order

import (
	"encoding/json"
	"fmt"
	"math"
)

// wireOrder is the tagged JSON form of an Order written by MarshalJSON.
// Nil variant fields are omitted.
type wireOrder struct {
	Type            string          `json:"type"`
	CustomerName    string          `json:"customerName"`
	ItemName        string          `json:"itemName"`
	Quantity        int             `json:"quantity"`
	Price           json.RawMessage `json:"price"`
	Address         *string         `json:"address,omitempty"`
	DeliveryCompany *string         `json:"deliveryCompany,omitempty"`
}

// MarshalJSON encodes o as a tagged object carrying only the fields of its
// variant. The price is written as a JSON number.
func (o Order) MarshalJSON() ([]byte, error) {
	w := wireOrder{
		Type:         string(o.Kind),
		CustomerName: o.CustomerName,
		ItemName:     o.ItemName,
		Quantity:     o.Quantity,
		Price:        json.RawMessage(o.Price.String()),
	}
	switch o.Kind {
	case KindDineIn:
	case KindTakeout:
		w.Address = &o.Address
	case KindDelivery:
		w.Address = &o.Address
		w.DeliveryCompany = &o.DeliveryCompany
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, o.Kind)
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a tagged object. Keys are matched exactly. Any
// failure, including a missing or mistyped field, wraps ErrUnknownVariant.
func (o *Order) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("%w: %v", ErrUnknownVariant, err)
	}
	if fields == nil {
		return fmt.Errorf("%w: not an object", ErrUnknownVariant)
	}

	var typ string
	if err := decodeField(fields, "type", &typ); err != nil {
		return err
	}
	n := Order{Kind: Kind(typ)}
	switch n.Kind {
	case KindDineIn, KindTakeout, KindDelivery:
	default:
		return fmt.Errorf("%w: type %q", ErrUnknownVariant, typ)
	}

	var quantity float64
	if err := decodeField(fields, "customerName", &n.CustomerName); err != nil {
		return err
	}
	if err := decodeField(fields, "itemName", &n.ItemName); err != nil {
		return err
	}
	if err := decodeField(fields, "quantity", &quantity); err != nil {
		return err
	}
	if quantity != math.Trunc(quantity) || quantity > math.MaxInt32 || quantity < math.MinInt32 {
		return fmt.Errorf("%w: quantity %v is not an integer", ErrUnknownVariant, quantity)
	}
	n.Quantity = int(quantity)
	if err := decodeField(fields, "price", &n.Price); err != nil {
		return err
	}
	if n.Kind != KindDineIn {
		if err := decodeField(fields, "address", &n.Address); err != nil {
			return err
		}
	}
	if n.Kind == KindDelivery {
		if err := decodeField(fields, "deliveryCompany", &n.DeliveryCompany); err != nil {
			return err
		}
	}

	*o = n
	return nil
}

// decodeField unmarshals the value stored under exactly name into dst.
// An absent or null value counts as missing.
func decodeField(fields map[string]json.RawMessage, name string, dst any) error {
	raw, ok := fields[name]
	if !ok || string(raw) == "null" {
		return fmt.Errorf("%w: missing %s", ErrUnknownVariant, name)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnknownVariant, name, err)
	}
	return nil
}
