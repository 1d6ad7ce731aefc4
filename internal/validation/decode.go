package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// rawText decodes a JSON string, or any other scalar kept exactly as written,
// leaving the number checks to ValidateField.
type rawText string

func (t *rawText) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*t = ""
	case trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*t = rawText(s)
	case trimmed[0] == '{' || trimmed[0] == '[':
		return fmt.Errorf("expected a number or a string, got %s", trimmed)
	default:
		*t = rawText(trimmed)
	}
	return nil
}

func (p *RawProject) UnmarshalJSON(data []byte) error {
	var aux struct {
		WorkHours  rawText `json:"workHours"`
		PondLength rawText `json:"pondLength"`
		PondWidth  rawText `json:"pondWidth"`
		PondDepth  rawText `json:"pondDepth"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = RawProject{
		WorkHours:  string(aux.WorkHours),
		PondLength: string(aux.PondLength),
		PondWidth:  string(aux.PondWidth),
		PondDepth:  string(aux.PondDepth),
	}
	return nil
}

// UnmarshalJSON is needed alongside RawProject's, which would otherwise be promoted
// and drop the equipment fields.
func (in *RawInputs) UnmarshalJSON(data []byte) error {
	var aux struct {
		ExcavatorCapacity rawText `json:"excavatorCapacity"`
		CycleTime         rawText `json:"cycleTime"`
		TruckCapacity     rawText `json:"truckCapacity"`
		RoundTripTime     rawText `json:"roundTripTime"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var project RawProject
	if err := project.UnmarshalJSON(data); err != nil {
		return err
	}
	*in = RawInputs{
		ExcavatorCapacity: string(aux.ExcavatorCapacity),
		CycleTime:         string(aux.CycleTime),
		TruckCapacity:     string(aux.TruckCapacity),
		RoundTripTime:     string(aux.RoundTripTime),
		RawProject:        project,
	}
	return nil
}

func (r *RawExcavator) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID             string  `json:"id"`
		Name           string  `json:"name"`
		BucketCapacity rawText `json:"bucketCapacity"`
		CycleTime      rawText `json:"cycleTime"`
		IsActive       bool    `json:"isActive"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = RawExcavator{
		ID:             aux.ID,
		Name:           aux.Name,
		BucketCapacity: string(aux.BucketCapacity),
		CycleTime:      string(aux.CycleTime),
		IsActive:       aux.IsActive,
	}
	return nil
}

func (r *RawTruck) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID            string  `json:"id"`
		Name          string  `json:"name"`
		Capacity      rawText `json:"capacity"`
		RoundTripTime rawText `json:"roundTripTime"`
		IsActive      bool    `json:"isActive"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = RawTruck{
		ID:            aux.ID,
		Name:          aux.Name,
		Capacity:      string(aux.Capacity),
		RoundTripTime: string(aux.RoundTripTime),
		IsActive:      aux.IsActive,
	}
	return nil
}
