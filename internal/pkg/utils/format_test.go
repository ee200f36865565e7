package utils

import (
	"testing"

	"github.com/shopspring/decimal"

	"supervault_dashboard/internal/domain/entity"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount string
		places int32
		want   string
	}{
		{"1234567.891", 2, "1,234,567.89"},
		{"1234.5", 6, "1,234.500000"},
		{"0", 2, "0.00"},
		{"999", 0, "999"},
		{"0.125", 2, "0.12"},
		{"0.135", 2, "0.14"},
		{"-1234.5", 2, "-1,234.50"},
		{"12345000000000000000", 2, "12,345,000,000,000,000,000.00"},
		{"20000000000000000000", 6, "20,000,000,000,000,000,000.000000"},
	}
	for _, tt := range tests {
		amount := decimal.RequireFromString(tt.amount)
		if got := FormatAmount(amount, tt.places); got != tt.want {
			t.Errorf("FormatAmount(%s, %d) = %q, want %q", tt.amount, tt.places, got, tt.want)
		}
	}
}

func TestFormatPercentage(t *testing.T) {
	tests := []struct {
		value  float64
		places int
		want   string
	}{
		{12.345, 2, "12.35%"},
		{0, 2, "0.00%"},
		{5, 1, "5.0%"},
		{-1.5, 2, "-1.50%"},
	}
	for _, tt := range tests {
		if got := FormatPercentage(tt.value, tt.places); got != tt.want {
			t.Errorf("FormatPercentage(%v, %d) = %q, want %q", tt.value, tt.places, got, tt.want)
		}
	}
}

func TestWeiToUnits(t *testing.T) {
	tests := []struct {
		wei      entity.Amount
		decimals int32
		want     string
	}{
		{"1000000000000000000", 18, "1"},
		{"1500000", 6, "1.5"},
		{"123", 0, "123"},
		{"", 18, "0"},
		{"not-a-number", 18, "0"},
		{"1e18", 18, "1"},
	}
	for _, tt := range tests {
		if got := WeiToUnits(tt.wei, tt.decimals).String(); got != tt.want {
			t.Errorf("WeiToUnits(%q, %d) = %s, want %s", tt.wei, tt.decimals, got, tt.want)
		}
	}
}

func TestFormatUnits(t *testing.T) {
	if got := FormatUnits("123456789000000000000", 18, 4); got != "123.4568" {
		t.Errorf("FormatUnits = %s, want 123.4568", got)
	}
	if got := FormatUnits("", 18, 4); got != "0.0000" {
		t.Errorf("FormatUnits(empty) = %s, want 0.0000", got)
	}
}

func TestTruncateAddress(t *testing.T) {
	addr := "0x1234567890abcdef1234567890abcdef12345678"
	tests := []struct {
		address string
		chars   int
		want    string
	}{
		{addr, 4, "0x1234...5678"},
		{addr, 6, "0x123456...345678"},
		{"0xabcd", 4, "0xabcd"},
		{"12345678", 4, "12345678"},
		{"", 4, ""},
	}
	for _, tt := range tests {
		if got := TruncateAddress(tt.address, tt.chars); got != tt.want {
			t.Errorf("TruncateAddress(%q, %d) = %q, want %q", tt.address, tt.chars, got, tt.want)
		}
	}
}

func TestShortAddress(t *testing.T) {
	if got := ShortAddress("0x1234567890abcdef1234567890abcdef12345678"); got != "0x1234...5678" {
		t.Errorf("ShortAddress(long) = %q", got)
	}
	if got := ShortAddress("0x1234567890"); got != "0x1234567890" {
		t.Errorf("ShortAddress(short) = %q", got)
	}
}
