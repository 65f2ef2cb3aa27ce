package dataset

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ErrMissingColumns marks a configuration error: an input frame lacks
// columns the merge needs. The wrapping error names them.
var ErrMissingColumns = errors.New("missing required columns")

// MergeOptions names the columns the merge reads from the input frames.
type MergeOptions struct {
	YearColumn      string // default "Year"
	CountryColumn   string // default "Country"
	InflationColumn string // default "inflation_yoy"
	YieldName       string // output name for the yield series, default "yield_10y"
}

func (o MergeOptions) withDefaults() MergeOptions {
	if o.YearColumn == "" {
		o.YearColumn = "Year"
	}
	if o.CountryColumn == "" {
		o.CountryColumn = "Country"
	}
	if o.InflationColumn == "" {
		o.InflationColumn = "inflation_yoy"
	}
	if o.YieldName == "" {
		o.YieldName = "yield_10y"
	}
	return o
}

// MergeYieldsInflation joins a wide yield-by-country frame with a long
// country/year/inflation frame for one country. The join is inner on year,
// rows with a missing value on either side drop out, and the result is
// sorted chronologically with the yield series first.
func MergeYieldsInflation(yields, wb *Frame, countryCode, countryName string, opts MergeOptions) (*Table, error) {
	opts = opts.withDefaults()

	yearIdx := yields.ColumnIndex(opts.YearColumn)
	codeIdx := yields.ColumnIndex(countryCode)
	if missing := missingNames(map[string]int{opts.YearColumn: yearIdx, countryCode: codeIdx}); len(missing) > 0 {
		return nil, fmt.Errorf("yields frame: %w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	wbYearIdx := wb.ColumnIndex(opts.YearColumn)
	wbCountryIdx := wb.ColumnIndex(opts.CountryColumn)
	wbInfIdx := wb.ColumnIndex(opts.InflationColumn)
	if missing := missingNames(map[string]int{
		opts.YearColumn:      wbYearIdx,
		opts.CountryColumn:   wbCountryIdx,
		opts.InflationColumn: wbInfIdx,
	}); len(missing) > 0 {
		return nil, fmt.Errorf("inflation frame: %w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	yieldByYear := make(map[int]float64)
	for i, rec := range yields.Records {
		year, v, ok, err := parseCell(rec[yearIdx], rec[codeIdx])
		if err != nil {
			return nil, fmt.Errorf("yields row %d: %w", i+2, err)
		}
		if !ok {
			continue
		}
		if _, dup := yieldByYear[year]; dup {
			return nil, fmt.Errorf("yields frame: duplicate year %d", year)
		}
		yieldByYear[year] = v
	}

	infByYear := make(map[int]float64)
	for i, rec := range wb.Records {
		if rec[wbCountryIdx] != countryName {
			continue
		}
		year, v, ok, err := parseCell(rec[wbYearIdx], rec[wbInfIdx])
		if err != nil {
			return nil, fmt.Errorf("inflation row %d: %w", i+2, err)
		}
		if !ok {
			continue
		}
		if _, dup := infByYear[year]; dup {
			return nil, fmt.Errorf("inflation frame: duplicate year %d for %s", year, countryName)
		}
		infByYear[year] = v
	}

	var years []int
	for year := range yieldByYear {
		if _, ok := infByYear[year]; ok {
			years = append(years, year)
		}
	}
	if len(years) == 0 {
		return nil, fmt.Errorf("no overlapping years for %s (%s)", countryName, countryCode)
	}
	sort.Ints(years)

	y := mat.NewDense(len(years), 2, nil)
	for i, year := range years {
		y.Set(i, 0, yieldByYear[year])
		y.Set(i, 1, infByYear[year])
	}
	return NewTable(years, []string{opts.YieldName, opts.InflationColumn}, y)
}

// parseCell parses one (year, value) pair. A blank value means the row is
// missing and drops out of the join; a malformed one is an error.
func parseCell(yearStr, valStr string) (year int, v float64, ok bool, err error) {
	valStr = strings.TrimSpace(valStr)
	if valStr == "" {
		return 0, 0, false, nil
	}
	year, err = strconv.Atoi(strings.TrimSpace(yearStr))
	if err != nil {
		return 0, 0, false, fmt.Errorf("parse year %q: %w", yearStr, err)
	}
	v, err = strconv.ParseFloat(valStr, 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("parse value %q: %w", valStr, err)
	}
	if math.IsNaN(v) {
		return 0, 0, false, nil
	}
	return year, v, true, nil
}

func missingNames(found map[string]int) []string {
	var missing []string
	for name, idx := range found {
		if idx < 0 {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}
