package apperrors

import "errors"

var (
	ErrNotAdmin            = errors.New("caller is not the administrator")
	ErrUnauthorized        = errors.New("caller is not authorized for this ticket")
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrInvalidInfo         = errors.New("ticket info is empty or too long")
	ErrBatchTooLarge       = errors.New("batch exceeds maximum size")
	ErrAlreadyCancelled    = errors.New("ticket already cancelled")
	ErrCancelFailed        = errors.New("ticket is not cancelled")
	ErrPriceTooLow         = errors.New("price below minimum")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternalServerError = errors.New("internal server error")
)
