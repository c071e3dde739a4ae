package fixture

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/goliatone/go-autofixture/pkg/spec"
)

// Decode copies a record into target, which must be a non-nil pointer.
// Struct fields are matched by their `json` tag.
func Decode(record *Record, target any) error {
	if record == nil {
		return errors.New("fixture: decode: record is nil")
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  target,
	})
	if err != nil {
		return fmt.Errorf("fixture: decode: %w", err)
	}
	if err := decoder.Decode(record.Map()); err != nil {
		return fmt.Errorf("fixture: decode: %w", err)
	}
	return nil
}

// CreateAs generates one value shaped and typed like template.
func CreateAs[T any](b Builder, template T, specs spec.Map) (T, error) {
	var out T
	record, err := b.Create(template, specs)
	if err != nil {
		return out, err
	}
	if err := Decode(record, &out); err != nil {
		return out, err
	}
	return out, nil
}

// CreateManyAs generates count typed values. A count of zero uses
// ElementCount and a negative count yields none.
func CreateManyAs[T any](b Builder, template T, count int, specs spec.Map) ([]T, error) {
	records, err := b.CreateMany(template, count, specs)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(records))
	for _, record := range records {
		var value T
		if err := Decode(record, &value); err != nil {
			return nil, err
		}
		out = append(out, value)
	}
	return out, nil
}
