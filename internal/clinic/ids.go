package clinic

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is a backend-assigned identifier. The backend uses numeric ids for most
// resources and strings for a few, so both JSON forms are accepted. Ids in
// canonical decimal form are written as numbers, anything else as a string.
type ID string

// IDFromInt formats a numeric id.
func IDFromInt(n int64) ID {
	return ID(strconv.FormatInt(n, 10))
}

func (id ID) String() string {
	return string(id)
}

// IsZero reports whether no id was assigned.
func (id ID) IsZero() bool {
	return id == ""
}

// Int returns the numeric form of id.
func (id ID) Int() (int64, error) {
	return strconv.ParseInt(string(id), 10, 64)
}

func (id ID) numeric() bool {
	n, err := id.Int()
	return err == nil && strconv.FormatInt(n, 10) == string(id)
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if id.numeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("clinic: invalid id %s: %w", data, err)
		}
		*id = ID(n.String())
		return nil
	}
}
