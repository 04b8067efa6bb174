package servicehistory

import (
	"fmt"

	perr "servicehistory/internal/platform/errors"
	"servicehistory/internal/platform/validate"
)

// Row is one destination row: the vehicle followed by the record's values in column order.
// Values are string, float64, uint32 or *string (nil for NULL)
type Row []any

// Normalize validates req and flattens it into rows for s.
// Any invalid field rejects the whole request before a row is returned.
// An empty visit list yields zero rows and no error
func Normalize[R Record](s Schema, req Request[R]) ([]Row, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if len(s.Columns) == 0 || s.Columns[0].Name != VehicleColumn {
		return nil, perr.Internalf("schema %s must lead with %s", s.Name, VehicleColumn)
	}

	vehicle := req.Vehicle()
	records := req.Records()
	rows := make([]Row, 0, len(records))
	for i, rec := range records {
		row, err := flatten(s, i, vehicle, rec.Values())
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func flatten(s Schema, idx int, vehicle string, values []any) (Row, error) {
	if len(values) != len(s.Columns)-1 {
		return nil, perr.Internalf("schema %s has %d columns, record has %d values", s.Name, len(s.Columns), len(values)+1)
	}
	row := make(Row, len(s.Columns))
	row[0] = vehicle
	for i, v := range values {
		col := s.Columns[i+1]
		out, err := coerce(col, v)
		if err != nil {
			path := fmt.Sprintf("result.serviceHistoryDetails[%d].%s", idx, col.Name)
			return nil, perr.WithField(perr.Validationf("%s %v", path, err), path)
		}
		row[i+1] = out
	}
	return row, nil
}

// coerce checks v against the column kind and unwraps it to the type the driver expects
func coerce(col Column, v any) (any, error) {
	switch col.Kind {
	case KindText:
		p, ok := v.(*string)
		if !ok {
			return nil, fmt.Errorf("expected text, got %T", v)
		}
		if p == nil {
			return nil, fmt.Errorf("is a required field")
		}
		if col.Date {
			return NormalizeDate(*p), nil
		}
		return *p, nil
	case KindFloat64:
		p, ok := v.(*float64)
		if !ok {
			return nil, fmt.Errorf("expected number, got %T", v)
		}
		if p == nil {
			return nil, fmt.Errorf("is a required field")
		}
		return *p, nil
	case KindUInt32:
		p, ok := v.(*uint32)
		if !ok {
			return nil, fmt.Errorf("expected non-negative integer, got %T", v)
		}
		if p == nil {
			return nil, fmt.Errorf("is a required field")
		}
		return *p, nil
	case KindNullableText:
		p, ok := v.(*string)
		if !ok {
			return nil, fmt.Errorf("expected text or null, got %T", v)
		}
		if p != nil && col.Date {
			d := NormalizeDate(*p)
			return &d, nil
		}
		return p, nil
	}
	return nil, fmt.Errorf("unsupported column kind %s", col.Kind)
}
