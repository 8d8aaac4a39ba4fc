package export

import (
	"encoding/json"
	"fmt"
	"io"
)

type jsonDocument struct {
	Rows []Row `json:"rows"`
}

func WriteJSON(w io.Writer, rows []Row) error {
	if rows == nil {
		rows = []Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonDocument{Rows: rows}); err != nil {
		return fmt.Errorf("encoding json export: %w", err)
	}
	return nil
}
