package repository

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"
	"tumble_cup/internal/models"
)

// RowSource is the tabular surface of the spreadsheet API. pkg/sheets
// implements it against Google Sheets; tests implement it in memory.
type RowSource interface {
	ReadAll(ctx context.Context) ([][]string, error)
	Append(ctx context.Context, rows [][]string) error
	Overwrite(ctx context.Context, rows [][]string) error
}

// AppendMode distinguishes the two observed ways of adding rows: a direct
// append, or reading everything, concatenating and overwriting the sheet.
type AppendMode string

const (
	AppendDirect  AppendMode = "append"
	AppendRewrite AppendMode = "rewrite"
)

// SheetStore persists orders in a remote spreadsheet. The sheet has no
// primary key column, so a record's id is its 1-based data-row position,
// and update/delete work by reading the whole sheet, mutating it in
// memory and overwriting it. A mutex serializes every operation since
// read-modify-overwrite is not atomic.
type SheetStore struct {
	source     RowSource
	appendMode AppendMode
	timeout    time.Duration
	mu         sync.Mutex
}

func NewSheetStore(source RowSource, appendMode AppendMode, timeout time.Duration) *SheetStore {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if appendMode != AppendRewrite {
		appendMode = AppendDirect
	}
	return &SheetStore{source: source, appendMode: appendMode, timeout: timeout}
}

// sheetHeader is the worksheet column order (no id column).
var sheetHeader = []string{
	"Order Number", "Name", "Email", "Phone no", "Address", "City",
	"Post Code", "Item", "Item Style", "Item Quantity", "Price", "Total",
	"Instructions", "Order Date", "Payment Method", "Payment Service",
	"Transaction ID", "Payment Status", "Status",
}

func (s *SheetStore) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

func (s *SheetStore) Append(orders []*models.Order) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.ctx()
	defer cancel()

	inserted := 0
	var lastErr error
	for _, o := range orders {
		var err error
		if s.appendMode == AppendRewrite {
			err = s.appendByRewrite(ctx, o)
		} else {
			err = s.source.Append(ctx, [][]string{orderToRow(o)})
		}
		if err != nil {
			log.Printf("Failed to append order line %s/%s: %v", o.ItemName, o.ItemStyle, err)
			lastErr = err
			continue
		}
		inserted++
	}
	if inserted == 0 && lastErr != nil {
		return 0, fmt.Errorf("failed to insert any order line: %w", lastErr)
	}
	return inserted, nil
}

func (s *SheetStore) appendByRewrite(ctx context.Context, o *models.Order) error {
	rows, err := s.readRows(ctx)
	if err != nil {
		return err
	}
	rows = append(rows, orderToRow(o))
	return s.source.Overwrite(ctx, append([][]string{sheetHeader}, rows...))
}

func (s *SheetStore) List(filter models.OrderFilter) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.ctx()
	defer cancel()

	rows, err := s.readRows(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]models.Order, 0, len(rows))
	for i, row := range rows {
		o := rowToOrder(row, uint(i+1))
		if MatchesFilter(&o, filter) {
			matched = append(matched, o)
		}
	}
	return matched, nil
}

func (s *SheetStore) UpdateStatus(id uint, status string) error {
	return s.mutateRow(id, func(row []string) {
		row[18] = status
	})
}

func (s *SheetStore) UpdatePaymentStatus(id uint, status string) error {
	return s.mutateRow(id, func(row []string) {
		row[17] = status
	})
}

func (s *SheetStore) mutateRow(id uint, mutate func(row []string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.ctx()
	defer cancel()

	rows, err := s.readRows(ctx)
	if err != nil {
		return err
	}
	if id == 0 || int(id) > len(rows) {
		return ErrNotFound
	}
	row := padRow(rows[id-1])
	mutate(row)
	rows[id-1] = row
	return s.source.Overwrite(ctx, append([][]string{sheetHeader}, rows...))
}

func (s *SheetStore) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.ctx()
	defer cancel()

	rows, err := s.readRows(ctx)
	if err != nil {
		return err
	}
	if id == 0 || int(id) > len(rows) {
		return ErrNotFound
	}
	rows = append(rows[:id-1], rows[id:]...)
	return s.source.Overwrite(ctx, append([][]string{sheetHeader}, rows...))
}

func (s *SheetStore) Count() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.ctx()
	defer cancel()

	rows, err := s.readRows(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

func (s *SheetStore) OrderNumbers() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.ctx()
	defer cancel()

	rows, err := s.readRows(ctx)
	if err != nil {
		return nil, err
	}
	numbers := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) > 0 {
			numbers = append(numbers, row[0])
		}
	}
	return numbers, nil
}

// readRows returns the data rows, skipping the header when present.
func (s *SheetStore) readRows(ctx context.Context) ([][]string, error) {
	rows, err := s.source.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 && len(rows[0]) > 0 && rows[0][0] == sheetHeader[0] {
		rows = rows[1:]
	}
	return rows, nil
}

func orderToRow(o *models.Order) []string {
	return []string{
		o.OrderNumber,
		o.CustomerName,
		o.Email,
		o.Phone,
		o.Address,
		o.City,
		o.PostalCode,
		o.ItemName,
		o.ItemStyle,
		strconv.Itoa(o.Quantity),
		strconv.FormatInt(o.Price, 10),
		strconv.FormatInt(o.TotalPrice, 10),
		o.Instructions,
		o.OrderDate.Format(models.OrderDateLayout),
		o.PaymentMethod,
		o.PaymentService,
		o.TransactionID,
		o.PaymentStatus,
		o.Status,
	}
}

func rowToOrder(row []string, id uint) models.Order {
	row = padRow(row)
	quantity, _ := strconv.Atoi(row[9])
	price, _ := strconv.ParseInt(row[10], 10, 64)
	total, _ := strconv.ParseInt(row[11], 10, 64)
	orderDate, _ := time.Parse(models.OrderDateLayout, row[13])

	return models.Order{
		ID:             id,
		OrderNumber:    row[0],
		CustomerName:   row[1],
		Email:          row[2],
		Phone:          row[3],
		Address:        row[4],
		City:           row[5],
		PostalCode:     row[6],
		ItemName:       row[7],
		ItemStyle:      row[8],
		Quantity:       quantity,
		Price:          price,
		TotalPrice:     total,
		Instructions:   row[12],
		OrderDate:      orderDate,
		PaymentMethod:  row[14],
		PaymentService: row[15],
		TransactionID:  row[16],
		PaymentStatus:  row[17],
		Status:         row[18],
	}
}

// padRow widens short rows (trailing empty cells are dropped by the API).
func padRow(row []string) []string {
	if len(row) >= len(sheetHeader) {
		return row
	}
	padded := make([]string, len(sheetHeader))
	copy(padded, row)
	return padded
}
