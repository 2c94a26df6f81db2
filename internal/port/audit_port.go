package port

import (
	"context"

	"github.com/nikolayk812/ordercore/internal/domain"
)

// AuditSink receives flattened order rows. Delivery is best effort.
type AuditSink interface {
	Append(ctx context.Context, row domain.AuditRow) error
	Close() error
}
