// Package httperrors defines the public error payload returned by the API.
package httperrors

import (
	"fmt"
	"net/http"
)

const (
	// TypeGeneric marks errors without a more specific machine-readable type.
	TypeGeneric = "generic"

	TypeInvalidMnemonic   = "invalid_mnemonic"
	TypeInvalidPrivateKey = "invalid_private_key"
	TypeInvalidAddress    = "invalid_address"
	TypeSignature         = "signature_error"
	TypeDecode            = "decode_error"
	TypeUnsupportedTx     = "unsupported_transaction_type"
)

// HTTPError is the JSON error body. Code and Title mirror the HTTP status,
// Type carries a stable machine-readable identifier.
type HTTPError struct {
	Code     int     `json:"status"`
	Type     string  `json:"type"`
	Title    string  `json:"title"`
	Detail   *string `json:"detail,omitempty"`
	Internal error   `json:"-"`
}

func (e *HTTPError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("HTTPError %d (%s): %s, %v", e.Code, e.Type, e.Title, e.Internal)
	}
	return fmt.Sprintf("HTTPError %d (%s): %s", e.Code, e.Type, e.Title)
}

// NewHTTPError creates an error with the given status, type and title.
func NewHTTPError(code int, errorType, title string) *HTTPError {
	return &HTTPError{
		Code:  code,
		Type:  errorType,
		Title: title,
	}
}

// NewHTTPErrorWithDetail creates an error carrying an additional
// human-readable detail string.
func NewHTTPErrorWithDetail(code int, errorType, title, detail string) *HTTPError {
	return &HTTPError{
		Code:   code,
		Type:   errorType,
		Title:  title,
		Detail: &detail,
	}
}

// NewBadRequest is shorthand for a 400 with the given type and title.
func NewBadRequest(errorType, title string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, errorType, title)
}
