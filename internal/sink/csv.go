package sink

import (
	"encoding/csv"
	"os"

	"minion-profit/internal/model"
)

// WriteCSV writes one row per result with a header row.
func WriteCSV(path string, results []model.Result, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(columnNames()); err != nil {
		return err
	}

	row := make([]string, len(columns))
	for _, r := range results {
		r = opts.apply(r)
		for i, c := range columns {
			if row[i], err = cell(c.field(&r)); err != nil {
				return err
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
