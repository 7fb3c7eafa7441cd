package sink

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"minion-profit/internal/model"
)

// WriteJSONL writes one JSON object per line.
func WriteJSONL(path string, results []model.Result, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, r := range results {
		if err := enc.Encode(opts.apply(r)); err != nil {
			return err
		}
	}
	return w.Flush()
}

// ReadJSONL reads results written by WriteJSONL.
func ReadJSONL(path string) ([]model.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []model.Result
	dec := json.NewDecoder(bufio.NewReader(f))
	for {
		var r model.Result
		err := dec.Decode(&r)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("result %d: %w", len(out)+1, err)
		}
		out = append(out, r)
	}
}
