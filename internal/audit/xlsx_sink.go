package audit

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/nikolayk812/ordercore/internal/domain"
	"github.com/nikolayk812/ordercore/internal/port"
)

const xlsxSheet = "Sheet1"

type xlsxSink struct {
	mu   sync.Mutex
	path string
}

// NewXLSXSink appends rows to the first sheet of the workbook at path.
// The workbook is created with a header row when it does not exist.
func NewXLSXSink(path string) port.AuditSink {
	return &xlsxSink{path: path}
}

func (s *xlsxSink) Append(ctx context.Context, row domain.AuditRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, next, err := s.open()
	if err != nil {
		return err
	}

	writeRow(f, next, row.Values())

	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("f.SaveAs: %w", err)
	}

	return nil
}

// open returns the workbook and the 1-based number of the first free row.
func (s *xlsxSink) open() (*excelize.File, int, error) {
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		f := excelize.NewFile()
		writeRow(f, 1, domain.AuditHeader())
		return f, 2, nil
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, 0, fmt.Errorf("excelize.OpenFile: %w", err)
	}

	rows, err := f.Rows(xlsxSheet)
	if err != nil {
		return nil, 0, fmt.Errorf("f.Rows: %w", err)
	}

	count := 0
	for rows.Next() {
		count++
	}

	return f, count + 1, nil
}

func writeRow(f *excelize.File, rowNum int, values []string) {
	f.SetSheetRow(xlsxSheet, fmt.Sprintf("%s%d", excelize.ToAlphaString(0), rowNum), &values)
}

func (s *xlsxSink) Close() error {
	return nil
}
