package validator

import (
	"fmt"
)

type ErrInvalidSettings struct {
	error
}

func NewErrInvalidSettings(format string, args ...any) *ErrInvalidSettings {
	return &ErrInvalidSettings{fmt.Errorf("invalid settings: "+format, args...)}
}
