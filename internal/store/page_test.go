package store

import (
	"errors"
	"testing"
)

func TestPageValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	testCases := []struct {
		name    string
		page    Page
		wantErr bool
	}{
		{name: "valid first page", page: Page{Number: 1, Size: 10}, wantErr: false},
		{name: "zero page number", page: Page{Number: 0, Size: 10}, wantErr: true},
		{name: "negative page number", page: Page{Number: -2, Size: 10}, wantErr: true},
		{name: "zero size", page: Page{Number: 1, Size: 0}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.page.Validate()
			if tc.wantErr && !errors.Is(err, ErrInvalidPage) {
				t.Errorf("Expected ErrInvalidPage, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestPageOffset(t *testing.T) {
	t.Parallel() // Enable parallel execution
	if got := (Page{Number: 1, Size: 10}).Offset(); got != 0 {
		t.Errorf("Expected offset 0, got %d", got)
	}
	if got := (Page{Number: 2, Size: 10}).Offset(); got != 10 {
		t.Errorf("Expected offset 10, got %d", got)
	}
	if got := (Page{Number: 3, Size: 25}).Offset(); got != 50 {
		t.Errorf("Expected offset 50, got %d", got)
	}
}

func TestSortValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	if err := (Sort{Key: "name", Dir: SortAsc}).Validate(GroupSortKeys); err != nil {
		t.Errorf("Expected no error for allowed key, got %v", err)
	}

	if err := (Sort{}).Validate(GroupSortKeys); err != nil {
		t.Errorf("Expected empty sort to be valid, got %v", err)
	}

	err := (Sort{Key: "colour", Dir: SortAsc}).Validate(GroupSortKeys)
	if !errors.Is(err, ErrInvalidSortKey) {
		t.Errorf("Expected ErrInvalidSortKey for unknown key, got %v", err)
	}

	err = (Sort{Key: "name", Dir: SortDir("sideways")}).Validate(GroupSortKeys)
	if !errors.Is(err, ErrInvalidSortKey) {
		t.Errorf("Expected ErrInvalidSortKey for unknown direction, got %v", err)
	}
}

func TestTotalPages(t *testing.T) {
	t.Parallel() // Enable parallel execution
	testCases := []struct {
		name     string
		total    int
		size     int
		expected int
	}{
		{name: "empty", total: 0, size: 10, expected: 0},
		{name: "exact fit", total: 20, size: 10, expected: 2},
		{name: "partial last page", total: 25, size: 10, expected: 3},
		{name: "single item", total: 1, size: 10, expected: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TotalPages(tc.total, tc.size); got != tc.expected {
				t.Errorf("TotalPages(%d, %d) = %d, expected %d", tc.total, tc.size, got, tc.expected)
			}
		})
	}
}
