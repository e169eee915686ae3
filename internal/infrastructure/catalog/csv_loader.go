// Package catalog loads the multi-supplier offer table from CSV. The core
// engines never parse anything themselves; this is the ingestion collaborator
// that hands them clean, typed snapshots.
package catalog

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/procurelens/backend/internal/domain"
)

// requiredColumns is the input contract with upstream data. Order here is
// only for the error message; header position is discovered per file.
var requiredColumns = []string{
	"product_id", "product_name", "category", "subcategory",
	"brand", "supplier_name", "mrp", "selling_price",
	"pack_size", "unit",
}

// Loader reads offer snapshots from a CSV file.
type Loader struct {
	path string
}

// NewLoader creates a loader for the given CSV path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// LoadResult carries the parsed offers plus ingestion counters.
type LoadResult struct {
	Offers      []domain.Offer
	RowsTotal   int
	RowsSkipped int
}

// Load reads and validates the catalog file. Rows with unparsable product
// IDs or prices are skipped and counted rather than failing the whole load.
func (l *Loader) Load() (*LoadResult, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses catalog CSV from any reader.
func Read(r io.Reader) (*LoadResult, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}
	idx := indexMap(header)

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingColumns, strings.Join(missing, ", "))
	}

	result := &LoadResult{Offers: []domain.Offer{}}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog row: %w", err)
		}
		result.RowsTotal++

		offer, ok := parseRow(row, idx)
		if !ok {
			result.RowsSkipped++
			continue
		}
		result.Offers = append(result.Offers, offer)
	}

	return result, nil
}

func parseRow(row []string, idx map[string]int) (domain.Offer, bool) {
	get := func(col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	id, err := strconv.Atoi(get("product_id"))
	if err != nil {
		return domain.Offer{}, false
	}
	mrp, err := strconv.ParseFloat(get("mrp"), 64)
	if err != nil {
		return domain.Offer{}, false
	}
	price, err := strconv.ParseFloat(get("selling_price"), 64)
	if err != nil {
		return domain.Offer{}, false
	}
	// Pack size is optional in practice; a bad value degrades to zero
	// instead of dropping the row.
	packSize, _ := strconv.ParseFloat(get("pack_size"), 64)

	return domain.Offer{
		ProductID:    id,
		ProductName:  get("product_name"),
		Category:     get("category"),
		Subcategory:  get("subcategory"),
		Brand:        get("brand"),
		SupplierName: get("supplier_name"),
		MRP:          mrp,
		SellingPrice: price,
		PackSize:     packSize,
		Unit:         get("unit"),
	}, true
}

func indexMap(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, h := range header {
		m[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return m
}
