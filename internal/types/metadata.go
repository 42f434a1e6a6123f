package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Metadata is a JSONB column holding free-form key-value pairs attached to
// billing records, e.g. external invoice numbers from the authoring tool.
type Metadata map[string]string

// Scan implements sql.Scanner. The driver may hand back either []byte or
// string for jsonb columns.
func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = make(Metadata)
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}

	result := make(Metadata)
	if err := json.Unmarshal(data, &result); err != nil {
		return err
	}
	*m = result
	return nil
}

// Value implements driver.Valuer.
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return json.Marshal(make(Metadata))
	}
	return json.Marshal(m)
}
