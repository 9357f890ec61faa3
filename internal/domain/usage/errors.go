package usage

import "errors"

// ErrQuotaExhausted is returned when a counter is already at its limit.
var ErrQuotaExhausted = errors.New("usage quota exhausted")
