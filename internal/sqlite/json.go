package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// marshalJSON renders an optional struct pointer or slice as a nullable
// JSON column value.
func marshalJSON(v any) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal json column: %w", err)
	}
	// json.Marshal renders a nil pointer as "null"; store NULL instead.
	if string(data) == "null" {
		return sql.NullString{}, nil
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// unmarshalJSON fills dest from a nullable JSON column value. A NULL
// column leaves dest untouched.
func unmarshalJSON(col sql.NullString, dest any) error {
	if !col.Valid || col.String == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(col.String), dest); err != nil {
		return fmt.Errorf("unmarshal json column: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func fromNullString(col sql.NullString) string {
	if !col.Valid {
		return ""
	}
	return col.String
}
