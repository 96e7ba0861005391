// Package jsonfile reads and writes order sequences as a JSON array file.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"

	"takeout/pkg/order"
)

// Load reads the whole file at path and decodes it as a JSON array of
// orders, preserving array order. Read and syntax failures wrap order.ErrIO;
// an element that does not decode fails the whole load with its
// order.ErrUnknownVariant error.
func Load(path string) ([]order.Order, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", order.ErrIO, path, err)
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", order.ErrIO, path, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: parse %s: not an array", order.ErrIO, path)
	}
	orders := make([]order.Order, 0, len(raw))
	for i, r := range raw {
		var o order.Order
		if err := json.Unmarshal(r, &o); err != nil {
			return nil, fmt.Errorf("%s: element %d: %w", path, i, err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// Save writes orders to path as an indented JSON array, replacing any
// existing content. Orders are encoded before the file is opened, so an
// encoding failure leaves the file untouched.
func Save(path string, orders []order.Order) (err error) {
	if orders == nil {
		orders = []order.Order{}
	}
	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}
	data = append(data, '\n')

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", order.ErrIO, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close %s: %v", order.ErrIO, path, cerr)
		}
	}()
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("%w: write %s: %v", order.ErrIO, path, err)
	}
	return nil
}
