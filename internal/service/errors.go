package service

import (
	"fmt"
)

type ErrFleetLimitExceeded struct {
	error
}

func NewErrFleetLimitExceeded(kind string, count, limit int) *ErrFleetLimitExceeded {
	return &ErrFleetLimitExceeded{fmt.Errorf("%d %ss configured, the limit is %d", count, kind, limit)}
}

type ErrEmptyFleet struct {
	error
}

func NewErrEmptyFleet(kind string) *ErrEmptyFleet {
	return &ErrEmptyFleet{fmt.Errorf("at least one %s is required", kind)}
}
