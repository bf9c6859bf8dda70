package database

import (
	"fmt"
	"time"
)

type Result struct {
	Columns []string
	Rows    [][]any
}

// Strings renders every value of the result set as text.
func (r *Result) Strings() [][]string {
	rows := make([][]string, len(r.Rows))

	for i, row := range r.Rows {
		rows[i] = make([]string, len(row))

		for j, value := range row {
			rows[i][j] = formatValue(value)
		}
	}

	return rows
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}
