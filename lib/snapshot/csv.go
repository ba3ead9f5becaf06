package snapshot

import (
	devenv "catalogwatch/dev/env"
	"catalogwatch/lib/catalog"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
)

var csvHeader = []string{"Name", "Price", "Availability"}

// CSVStore keeps the catalog in a csv file with a Name,Price,Availability
// header.
type CSVStore struct {
	path string
}

func NewCSVStore(path string) (CSVStore, error) {
	resolved, err := devenv.ResolvePath(path)
	if err != nil {
		return CSVStore{}, err
	}
	return CSVStore{path: resolved}, nil
}

func (s CSVStore) Path() string {
	return s.path
}

func (s CSVStore) Load(ctx context.Context) (catalog.Catalog, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return catalog.Catalog{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return c, nil
}

func (s CSVStore) Save(ctx context.Context, c catalog.Catalog) error {
	err := os.MkdirAll(filepath.Dir(s.path), 0777)
	if err != nil {
		return err
	}

	// write to a sibling file first so a failed write never leaves a
	// truncated snapshot behind
	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	err = WriteCSV(f, c)
	closeErr := f.Close()
	if err != nil || closeErr != nil {
		os.Remove(tmp)
		return errors.Join(err, closeErr)
	}
	return os.Rename(tmp, s.path)
}

// ReadCSV parses a snapshot, columns are located by header name so their
// order does not matter.
func ReadCSV(r io.Reader) (catalog.Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return catalog.Catalog{}, nil
	}
	if err != nil {
		return nil, err
	}

	columns := map[string]int{}
	for i, name := range header {
		columns[name] = i
	}
	indices := make([]int, len(csvHeader))
	for i, name := range csvHeader {
		idx, ok := columns[name]
		if !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
		indices[i] = idx
	}

	result := catalog.Catalog{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		for _, idx := range indices {
			if idx >= len(record) {
				return nil, fmt.Errorf("line %d: expected %d fields, got %d", line, len(header), len(record))
			}
		}
		price, err := decimal.NewFromString(record[indices[1]])
		if err != nil {
			return nil, fmt.Errorf("line %d: price: %w", line, err)
		}
		availability, err := catalog.ParseAvailability(record[indices[2]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		result = append(result, catalog.Product{
			Name:         record[indices[0]],
			Price:        price,
			Availability: availability,
		})
	}

	return result, nil
}

func WriteCSV(w io.Writer, c catalog.Catalog) error {
	writer := csv.NewWriter(w)
	err := writer.Write(csvHeader)
	if err != nil {
		return err
	}
	for _, p := range c {
		err = writer.Write([]string{p.Name, p.Price.String(), p.Availability.String()})
		if err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
