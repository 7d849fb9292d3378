package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID identifies a catalog item. The backend hands out numeric ids but older
// persisted carts may carry them as strings, so both decode.
type ID string

func (id ID) String() string { return string(id) }

func (id ID) numeric() bool {
	if len(id) == 0 || len(id) > 15 {
		return false
	}
	if id[0] == '0' && len(id) > 1 {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// MarshalJSON writes canonical digit ids as JSON numbers and anything else
// as a string.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a number or a string: %w", err)
	}
	*id = ID(n.String())
	return nil
}
