package shared

import (
	"errors"
	"math"
	"testing"
)

func TestMoneyAdd(t *testing.T) {
	tests := []struct {
		name    string
		a, b    *Money
		want    int64
		wantErr error
	}{
		{"simple sum", NewMoney(100, "UZS"), NewMoney(250, "UZS"), 350, nil},
		{"zero operand", NewMoney(0, "UZS"), NewMoney(500, "UZS"), 500, nil},
		{"negative operand", NewMoney(-100, "UZS"), NewMoney(40, "UZS"), -60, nil},
		{"currency mismatch", NewMoney(100, "UZS"), NewMoney(100, "USD"), 0, ErrCurrencyMismatch},
		{"positive overflow", NewMoney(math.MaxInt64, "UZS"), NewMoney(1, "UZS"), 0, ErrMoneyOverflow},
		{"negative overflow", NewMoney(math.MinInt64, "UZS"), NewMoney(-1, "UZS"), 0, ErrMoneyOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Add(*tt.b)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Add() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Add() unexpected error: %v", err)
			}
			if got.Amount() != tt.want {
				t.Errorf("Add() = %d, want %d", got.Amount(), tt.want)
			}
			if got.Currency() != tt.a.Currency() {
				t.Errorf("Add() currency = %s, want %s", got.Currency(), tt.a.Currency())
			}
		})
	}
}

func TestMoneyMultiply(t *testing.T) {
	tests := []struct {
		name     string
		m        *Money
		quantity int
		want     int64
		wantErr  error
	}{
		{"simple product", NewMoney(100, "UZS"), 3, 300, nil},
		{"zero quantity", NewMoney(100, "UZS"), 0, 0, nil},
		{"zero amount", NewMoney(0, "UZS"), 7, 0, nil},
		{"negative quantity", NewMoney(100, "UZS"), -2, -200, nil},
		{"overflow", NewMoney(math.MaxInt64/2, "UZS"), 3, 0, ErrMoneyOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.m.Multiply(tt.quantity)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Multiply() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Multiply() unexpected error: %v", err)
			}
			if got.Amount() != tt.want {
				t.Errorf("Multiply() = %d, want %d", got.Amount(), tt.want)
			}
		})
	}
}

func TestMoneyPredicates(t *testing.T) {
	if !NewMoney(0, "UZS").IsZero() {
		t.Error("IsZero() = false for zero amount")
	}
	if NewMoney(1, "UZS").IsZero() {
		t.Error("IsZero() = true for nonzero amount")
	}
	if !NewMoney(-1, "UZS").IsNegative() {
		t.Error("IsNegative() = false for negative amount")
	}
	if !NewMoney(100, "UZS").Equals(*NewMoney(100, "UZS")) {
		t.Error("Equals() = false for identical values")
	}
	if NewMoney(100, "UZS").Equals(*NewMoney(100, "USD")) {
		t.Error("Equals() = true across currencies")
	}
}
