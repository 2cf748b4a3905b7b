package models

import (
	"strings"

	stockdomain "github.com/ghuser/gildedstock/services/stock/domain"
)

// Name is a value object representing a valid item name.
// A Name is never blank (empty or whitespace-only).
type Name string

// NewName constructs a valid Name or returns ErrBlankName.
func NewName(s string) (Name, error) {
	if strings.TrimSpace(s) == "" {
		return "", stockdomain.ErrBlankName
	}
	return Name(s), nil
}

// String returns the underlying string value.
func (n Name) String() string {
	return string(n)
}
