package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidPayload is returned when a metrics response does not carry a
// branch list.
var ErrInvalidPayload = errors.New("invalid metrics payload")

// APIResponse is the body returned by the metrics endpoint.
type APIResponse struct {
	Branches []APIBranch `json:"branches"`
}

type APIBranch struct {
	BranchID   int         `json:"branch_id"`
	BranchName string      `json:"branch_name"`
	BranchCode string      `json:"branch_code"`
	City       string      `json:"city"`
	Status     string      `json:"status"`
	Metrics    []APIMetric `json:"metrics"`
}

type APIUnit struct {
	UnitID     int    `json:"unit_id"`
	UnitCode   string `json:"unit_code"`
	UnitName   string `json:"unit_name"`
	UnitSymbol string `json:"unit_symbol"`
}

type APIDataPoint struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

// APIMetric is one metric of a branch. Data that is not a list of
// {month, value} objects is dropped and flagged through DataMalformed so the
// slot degrades to an empty series instead of failing the whole response.
type APIMetric struct {
	MetricTypeID      int            `json:"metric_type_id"`
	MetricName        string         `json:"metric_name"`
	MetricDescription string         `json:"metric_description"`
	Unit              *APIUnit       `json:"unit,omitempty"`
	Data              []APIDataPoint `json:"data"`
	DataMalformed     bool           `json:"-"`
}

func (m *APIMetric) UnmarshalJSON(b []byte) error {
	var raw struct {
		MetricTypeID      int             `json:"metric_type_id"`
		MetricName        string          `json:"metric_name"`
		MetricDescription string          `json:"metric_description"`
		Unit              json.RawMessage `json:"unit"`
		Data              json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*m = APIMetric{
		MetricTypeID:      raw.MetricTypeID,
		MetricName:        raw.MetricName,
		MetricDescription: raw.MetricDescription,
		Unit:              decodeUnit(raw.Unit),
	}

	data := bytes.TrimSpace(raw.Data)
	if len(data) == 0 || data[0] != '[' {
		m.DataMalformed = true
		return nil
	}
	var points []APIDataPoint
	if err := json.Unmarshal(data, &points); err != nil {
		m.DataMalformed = true
		return nil
	}
	m.Data = points
	return nil
}

// decodeUnit returns nil for a missing, null or non-object unit.
func decodeUnit(raw json.RawMessage) *APIUnit {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}
	var u APIUnit
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil
	}
	return &u
}

// UnitSymbol returns the unit symbol or "" when the metric has no unit.
func (m APIMetric) UnitSymbol() string {
	if m.Unit == nil {
		return ""
	}
	return m.Unit.UnitSymbol
}

// DecodeResponse parses a metrics response body. It fails with
// ErrInvalidPayload when the body is not an object, when the branches key is
// missing, or when branches is not a list.
func DecodeResponse(body []byte) (APIResponse, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return APIResponse{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	raw, ok := envelope["branches"]
	if !ok {
		return APIResponse{}, fmt.Errorf("%w: missing branches", ErrInvalidPayload)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return APIResponse{}, fmt.Errorf("%w: branches is not a list", ErrInvalidPayload)
	}

	var branches []APIBranch
	if err := json.Unmarshal(trimmed, &branches); err != nil {
		return APIResponse{}, fmt.Errorf("%w: decoding branches: %v", ErrInvalidPayload, err)
	}
	return APIResponse{Branches: branches}, nil
}
