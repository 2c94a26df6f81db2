package audit

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/gocarina/gocsv"
	"github.com/nikolayk812/ordercore/internal/domain"
	"github.com/nikolayk812/ordercore/internal/port"
)

type csvSink struct {
	mu   sync.Mutex
	path string
}

// NewCSVSink appends rows to the CSV file at path, writing the header into an empty file.
func NewCSVSink(path string) port.AuditSink {
	return &csvSink{path: path}
}

func (s *csvSink) Append(ctx context.Context, row domain.AuditRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("os.OpenFile: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("f.Stat: %w", err)
	}

	rows := []*domain.AuditRow{&row}

	if info.Size() == 0 {
		err = gocsv.MarshalFile(&rows, f)
	} else {
		err = gocsv.MarshalWithoutHeaders(&rows, f)
	}
	if err != nil {
		return fmt.Errorf("gocsv.Marshal: %w", err)
	}

	return f.Sync()
}

func (s *csvSink) Close() error {
	return nil
}
