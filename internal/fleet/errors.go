package fleet

import "fmt"

type ErrFleetFull struct {
	error
}

func NewErrFleetFull(kind string, limit int) *ErrFleetFull {
	return &ErrFleetFull{fmt.Errorf("cannot add another %s: the fleet is limited to %d", kind, limit)}
}

type ErrUnitNotFound struct {
	error
}

func NewErrUnitNotFound(kind, id string) *ErrUnitNotFound {
	return &ErrUnitNotFound{fmt.Errorf("%s %s not found", kind, id)}
}
