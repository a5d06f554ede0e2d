package catalog

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
)

// FromRecord coerces a raw catalog record (a decoded JSON map, whatever the
// upstream catalog service returned) into a normalized Product. This is the
// single place where loose upstream typing (numbers as strings, ints as
// bools, missing fields) gets fixed; everything past here works with a
// canonical Product.
func FromRecord(record map[string]interface{}) (*Product, error) {
	var p Product
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &p,
		TagName: "json",
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stringToNumberHook(),
			numberToStringHook(),
			intToBoolHook(),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(record); err != nil {
		return nil, fmt.Errorf("decode catalog record: %w", err)
	}
	p.Normalize()
	return &p, nil
}

// FromRecords converts a batch, skipping records that fail to decode.
func FromRecords(records []map[string]interface{}) []Product {
	out := make([]Product, 0, len(records))
	for _, r := range records {
		p, err := FromRecord(r)
		if err != nil {
			continue
		}
		out = append(out, *p)
	}
	return out
}

func numberToStringHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.String {
			return data, nil
		}
		switch f.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return fmt.Sprint(data), nil
		}
		return data, nil
	}
}

func stringToNumberHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		s, _ := data.(string)
		switch t.Kind() {
		case reflect.Float32, reflect.Float64:
			if s == "" {
				return float64(0), nil
			}
			return strconv.ParseFloat(s, 64)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if s == "" {
				return 0, nil
			}
			return strconv.Atoi(s)
		}
		return data, nil
	}
}

func intToBoolHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.Bool {
			return data, nil
		}
		switch v := data.(type) {
		case int:
			return v != 0, nil
		case int64:
			return v != 0, nil
		case float64:
			return int(v) != 0, nil
		}
		return data, nil
	}
}
