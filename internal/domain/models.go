package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Money is a decimal amount as the backend serializes it. Some endpoints send
// numbers, others quoted strings, so decoding accepts both.
type Money float64

func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) >= 2 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*m = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*m = Money(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*m = Money(f)
	return nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(m))
}

// OrderStatus is one of the five states the backend tracks for an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidStatus reports whether s is a status the backend accepts.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is a line of an order. Totals come from the backend verbatim and
// are never recomputed on this side.
type OrderItem struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Description string `json:"description,omitempty"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   Money  `json:"unit_price"`
	ItemTotal   Money  `json:"item_total"`
}

// Order is owned by the store backend. The console only reads orders and
// requests status transitions.
type Order struct {
	ID              int64       `json:"id"`
	Status          OrderStatus `json:"status"`
	OrderDate       string      `json:"order_date"`
	Username        string      `json:"username"`
	Email           string      `json:"email"`
	PhoneNumber     string      `json:"phone_number"`
	TotalAmount     Money       `json:"total_amount"`
	DeliveryAddress string      `json:"delivery_address"`
	IsOnlineOrder   bool        `json:"is_online_order"`
	Items           []OrderItem `json:"items"`
}

// Product is a catalog entry.
type Product struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	CategoryID    int64  `json:"category_id"`
	Price         Money  `json:"price"`
	StockQuantity int64  `json:"stock_quantity"`
	Unit          string `json:"unit,omitempty"`
	Barcode       string `json:"barcode,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
}

// Category is read-only from the console's perspective; the foreign reference
// in Product.CategoryID is not validated locally.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductInput is the body for product create/update. ImageBase64 carries the
// inline data-URI encoding; on update it is present only when a new image was
// selected.
type ProductInput struct {
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	CategoryID    int64   `json:"category_id"`
	Price         float64 `json:"price"`
	StockQuantity int64   `json:"stock_quantity"`
	Unit          string  `json:"unit,omitempty"`
	Barcode       string  `json:"barcode,omitempty"`
	ImageBase64   string  `json:"image_base64,omitempty"`
}

// Credentials for POST /api/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SalesReport is the aggregate admin report, displayed as-is.
type SalesReport struct {
	TotalSales  Money `json:"total_sales"`
	TotalOrders int64 `json:"total_orders"`
	Products    int64 `json:"total_products"`
	Customers   int64 `json:"total_customers"`
}
