package domain

import (
	"fmt"
	"strings"
)

const AuditTimeLayout = "2006-01-02 15:04:05"

// AuditRow is the flat order summary forwarded to the audit sink.
// Column order is fixed: it is the order of the spreadsheet columns.
type AuditRow struct {
	OrderID          string `csv:"order_id" json:"order_id"`
	CustomerName     string `csv:"customer_name" json:"customer_name"`
	Phone            string `csv:"phone" json:"phone"`
	Email            string `csv:"email" json:"email"`
	City             string `csv:"city" json:"city"`
	Address          string `csv:"address" json:"address"`
	ItemsDescription string `csv:"items_description" json:"items_description"`
	Total            string `csv:"total" json:"total"`
	CreatedAt        string `csv:"created_at" json:"created_at"`
}

func NewAuditRow(o Order) AuditRow {
	descriptions := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		name := item.ProductName
		if name == "" {
			name = item.ProductID.String()
		}
		descriptions = append(descriptions, fmt.Sprintf("%s x%d @ %s", name, item.Quantity, item.UnitPrice))
	}

	var createdAt string
	if !o.CreatedAt.IsZero() {
		createdAt = o.CreatedAt.UTC().Format(AuditTimeLayout)
	}

	return AuditRow{
		OrderID:          o.ID.String(),
		CustomerName:     o.Contact.Name,
		Phone:            o.Contact.Phone,
		Email:            o.Contact.Email,
		City:             o.Contact.City,
		Address:          o.Contact.Address,
		ItemsDescription: strings.Join(descriptions, " | "),
		Total:            o.Total.String(),
		CreatedAt:        createdAt,
	}
}

func (r AuditRow) Values() []string {
	return []string{
		r.OrderID,
		r.CustomerName,
		r.Phone,
		r.Email,
		r.City,
		r.Address,
		r.ItemsDescription,
		r.Total,
		r.CreatedAt,
	}
}

func AuditHeader() []string {
	return []string{
		"order_id",
		"customer_name",
		"phone",
		"email",
		"city",
		"address",
		"items_description",
		"total",
		"created_at",
	}
}
