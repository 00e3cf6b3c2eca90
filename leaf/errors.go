package leaf

import "github.com/joeycumines/asyncrt"

// Errcode discriminants for this package's leaf futures. Each leaf defines
// its own range, per asyncrt.Errcode's documented convention.
const (
	ErrTimerRegister asyncrt.Errcode = iota + 1
	ErrTCPSocket
	ErrTCPConnect
	ErrTCPRead
	ErrRedisCommand
)
