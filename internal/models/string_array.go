package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringArray stores string lists as JSON, while tolerating legacy plain-string data.
type StringArray []string

// CleanList trims every item and drops empties. Items are never split.
func CleanList(items []string) StringArray {
	out := StringArray{}
	for _, item := range items {
		if v := strings.TrimSpace(item); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// SplitList splits one comma-separated value.
func SplitList(s string) StringArray {
	return CleanList(strings.Split(s, ","))
}

// FormList reads repeated form values. A single value is comma-separated;
// repeated values are kept whole. Nil stays nil so an absent field reads as
// not supplied.
func FormList(items []string) StringArray {
	switch len(items) {
	case 0:
		if items == nil {
			return nil
		}
		return StringArray{}
	case 1:
		return SplitList(items[0])
	default:
		return CleanList(items)
	}
}

func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *StringArray) Scan(value interface{}) error {
	if a == nil {
		return fmt.Errorf("models.StringArray: Scan on nil pointer")
	}
	if value == nil {
		*a = StringArray{}
		return nil
	}

	var raw string
	switch v := value.(type) {
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("models.StringArray: unsupported Scan type %T", value)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		*a = StringArray{}
		return nil
	}

	var arr []string
	if err := json.Unmarshal([]byte(raw), &arr); err == nil {
		*a = arr
		return nil
	}

	*a = SplitList(raw)
	return nil
}

// MarshalJSON never emits null.
func (a StringArray) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(a))
}

// UnmarshalJSON accepts an array, kept element by element, or one
// comma-separated string. Null leaves the value untouched.
func (a *StringArray) UnmarshalJSON(data []byte) error {
	if strings.TrimSpace(string(data)) == "null" {
		return nil
	}
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*a = CleanList(arr)
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("expected a list of strings")
	}
	*a = SplitList(single)
	return nil
}
