package solana

import (
	"github.com/pkg/errors"
)

// Errors returned by the Solana signing surface.
var (
	ErrSignature = errors.New("signature error")
	ErrDecode    = errors.New("failed to decode transaction")
)
