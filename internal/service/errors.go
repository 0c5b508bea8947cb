package service

import (
	"errors"
	"fmt"
	"strings"
)

// Typed failures surfaced to the handler layer. Wrapped errors keep these as
// their errors.Is target so handlers can map them to HTTP statuses.
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrWarehouseNotFound = errors.New("warehouse not found")
	ErrShelfNotFound     = errors.New("shelf not found in warehouse")
	ErrShelfRequired     = errors.New("warehouse has a shelf system, shelf is required")
	ErrTemplateNotFound  = errors.New("label template not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrBarcodeNotFound   = errors.New("barcode not found")

	ErrInvalidQuantity = errors.New("piece entries require a positive integer quantity")
	ErrInvalidLengths  = errors.New("length entries require at least one positive length")

	// ErrBarcodeGeneration aborts a fan-out when a code could not be minted;
	// the whole entry rolls back, never leaving a partial barcode list.
	ErrBarcodeGeneration = errors.New("barcode generation failed")

	ErrCannotDeleteDefault = errors.New("default template cannot be deleted")
	ErrDuplicate           = errors.New("record already exists")
)

// ValidationError carries every rule violation from template validation so
// the client can show all of them at once.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

func duplicate(what string) error {
	return fmt.Errorf("%s: %w", what, ErrDuplicate)
}
