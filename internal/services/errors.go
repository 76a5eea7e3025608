package services

import "errors"

// Engine error taxonomy. Every rejected operation leaves prior state
// untouched; handlers map these to HTTP statuses with errors.Is.
var (
	ErrPortfolioNotFound  = errors.New("portfolio not found")
	ErrInstrumentNotFound = errors.New("instrument not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrNoPosition         = errors.New("no position")
)
