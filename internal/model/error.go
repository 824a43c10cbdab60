package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeFileTooLarge         = "FILE_TOO_LARGE"
	ErrCodeMissingFile          = "MISSING_FILE"
	ErrCodeUnsupportedExtension = "UNSUPPORTED_EXTENSION"
	ErrCodeMenuItemNotFound     = "MENU_ITEM_NOT_FOUND"
	ErrCodeCartNotFound         = "CART_NOT_FOUND"
	ErrCodeEmptyCart            = "EMPTY_CART"
	ErrCodePaymentFailed        = "PAYMENT_FAILED"
	ErrCodeInvalidPrice         = "INVALID_PRICE"
	ErrCodeMissingField         = "MISSING_FIELD"
	ErrCodeUnauthorised         = "UNAUTHORIZED"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

// DomainError is a business-rule violation carrying a stable error code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrFileTooLarge         = NewDomainError(ErrCodeFileTooLarge, "Image file size must not exceed 1 MiB")
	ErrMissingFile          = NewDomainError(ErrCodeMissingFile, "An image file is required")
	ErrUnsupportedExtension = NewDomainError(ErrCodeUnsupportedExtension, "Image file must be .jpg, .jpeg or .png")
	ErrMenuItemNotFound     = NewDomainError(ErrCodeMenuItemNotFound, "Menu item not found")
	ErrCartNotFound         = NewDomainError(ErrCodeCartNotFound, "Shopping cart not found")
	ErrEmptyCart            = NewDomainError(ErrCodeEmptyCart, "Shopping cart has no items")
	ErrPaymentFailed        = NewDomainError(ErrCodePaymentFailed, "Payment order creation failed")
	ErrInvalidPrice         = NewDomainError(ErrCodeInvalidPrice, "Price must be non-negative")
)
