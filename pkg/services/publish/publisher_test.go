package publish

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/de-tools/fg-sync/pkg/models/domain"
	"github.com/de-tools/fg-sync/pkg/store/sheets"
)

type mockSpreadsheet struct{ mock.Mock }

func (m *mockSpreadsheet) Worksheet(ctx context.Context, title string, minColumns int) (*sheets.Worksheet, bool, error) {
	args := m.Called(ctx, title, minColumns)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*sheets.Worksheet), args.Bool(1), args.Error(2)
}

func (m *mockSpreadsheet) Clear(ctx context.Context, rng string) error {
	return m.Called(ctx, rng).Error(0)
}

func (m *mockSpreadsheet) Update(
	ctx context.Context,
	rng string,
	values [][]interface{},
	mode domain.ValueInputMode,
) (int, error) {
	args := m.Called(ctx, rng, values, mode)
	return args.Int(0), args.Error(1)
}

func openerFor(ss Spreadsheet) Opener {
	return func(context.Context) (Spreadsheet, error) { return ss, nil }
}

func TestColumnLetter(t *testing.T) {
	tests := map[int]string{0: "A", 4: "E", 22: "W", 25: "Z", 26: "AA", 51: "AZ", 52: "BA", 701: "ZZ", 702: "AAA"}
	for in, want := range tests {
		assert.Equal(t, want, ColumnLetter(in), "column %d", in)
	}
}

func TestSheetRange(t *testing.T) {
	assert.Equal(t, "'Pack'!A1:E3", SheetRange("Pack", Span(1, 3, 5)))
	assert.Equal(t, "'Bob''s'!A1", SheetRange("Bob's", "A1"))
}

func TestPublisher_Overwrite(t *testing.T) {
	ctx := context.Background()
	rows := [][]interface{}{{"a", 1.0}, {"b", 2.0}}
	expected := [][]interface{}{{"name", "qty"}, {"a", 1.0}, {"b", 2.0}}

	ss := new(mockSpreadsheet)
	ss.On("Worksheet", mock.Anything, "raw", 2).Return(&sheets.Worksheet{Title: "raw", RowCount: 1000}, false, nil)
	ss.On("Clear", mock.Anything, "'raw'!A1:B1000").Return(nil)
	ss.On("Update", mock.Anything, "'raw'!A1", expected, domain.ValueInputRaw).Return(3, nil)

	res := NewPublisher(openerFor(ss)).Publish(ctx, Request{
		Sheet:   "raw",
		Header:  []string{"name", "qty"},
		Rows:    rows,
		Columns: 2,
		Mode:    domain.ValueInputRaw,
	})

	assert.Equal(t, domain.PublishPublished, res.Status)
	assert.Equal(t, "'raw'!A1:B3", res.Range)
	assert.Equal(t, 3, res.Rows)
	assert.NoError(t, res.Err)
	ss.AssertExpectations(t)
}

func TestPublisher_AppendAtOffset(t *testing.T) {
	ctx := context.Background()
	rows := [][]interface{}{{"2025-03-10", "OA/1", "Main Co", 10.0, 100.0}}

	ss := new(mockSpreadsheet)
	ss.On("Worksheet", mock.Anything, "Pack", 5).Return(&sheets.Worksheet{Title: "Pack", RowCount: 40000}, false, nil)
	ss.On("Clear", mock.Anything, "'Pack'!A33557:E40000").Return(nil)
	ss.On("Update", mock.Anything, "'Pack'!A33557", rows, domain.ValueInputUserEntered).Return(1, nil)

	res := NewPublisher(openerFor(ss)).Publish(ctx, Request{
		Sheet:    "Pack",
		StartRow: 33557,
		Rows:     rows,
		Columns:  5,
		Mode:     domain.ValueInputUserEntered,
	})

	assert.Equal(t, domain.PublishPublished, res.Status)
	assert.Equal(t, "'Pack'!A33557:E33557", res.Range)
	ss.AssertExpectations(t)
}

func TestPublisher_SheetShorterThanStartRowSkipsClear(t *testing.T) {
	ss := new(mockSpreadsheet)
	ss.On("Worksheet", mock.Anything, "Pack", 5).Return(&sheets.Worksheet{Title: "Pack", RowCount: 1000}, true, nil)
	ss.On("Update", mock.Anything, "'Pack'!A33557", mock.Anything, domain.ValueInputUserEntered).Return(1, nil)

	res := NewPublisher(openerFor(ss)).Publish(context.Background(), Request{
		Sheet:    "Pack",
		StartRow: 33557,
		Rows:     [][]interface{}{{1, 2, 3, 4, 5}},
		Columns:  5,
		Mode:     domain.ValueInputUserEntered,
	})

	assert.Equal(t, domain.PublishPublished, res.Status)
	ss.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}

func TestPublisher_Failures(t *testing.T) {
	ctx := context.Background()
	req := Request{Sheet: "raw", Rows: [][]interface{}{{"a"}}, Columns: 1, Mode: domain.ValueInputRaw}

	t.Run("open failure", func(t *testing.T) {
		p := NewPublisher(func(context.Context) (Spreadsheet, error) {
			return nil, errors.New("invalid_grant")
		})
		res := p.Publish(ctx, req)
		assert.Equal(t, domain.PublishFailed, res.Status)
		assert.ErrorContains(t, res.Err, "invalid_grant")
		assert.False(t, res.OK())
	})

	t.Run("clear failure degrades", func(t *testing.T) {
		ss := new(mockSpreadsheet)
		ss.On("Worksheet", mock.Anything, "raw", 1).Return(&sheets.Worksheet{RowCount: 10}, false, nil)
		ss.On("Clear", mock.Anything, mock.Anything).Return(errors.New("quota exceeded"))
		ss.On("Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(1, nil)

		res := NewPublisher(openerFor(ss)).Publish(ctx, req)
		assert.Equal(t, domain.PublishDegraded, res.Status)
		assert.True(t, res.OK())
	})

	t.Run("write failure", func(t *testing.T) {
		ss := new(mockSpreadsheet)
		ss.On("Worksheet", mock.Anything, "raw", 1).Return(&sheets.Worksheet{RowCount: 10}, false, nil)
		ss.On("Clear", mock.Anything, mock.Anything).Return(nil)
		ss.On("Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(0, errors.New("permission denied"))

		res := NewPublisher(openerFor(ss)).Publish(ctx, req)
		assert.Equal(t, domain.PublishFailed, res.Status)
		assert.ErrorContains(t, res.Err, "permission denied")
	})

	t.Run("nothing to publish", func(t *testing.T) {
		ss := new(mockSpreadsheet)
		res := NewPublisher(openerFor(ss)).Publish(ctx, Request{Sheet: "raw", Columns: 1})
		assert.Equal(t, domain.PublishSkipped, res.Status)
		ss.AssertNotCalled(t, "Worksheet", mock.Anything, mock.Anything, mock.Anything)
	})
}
