// Package schedule loads the per-round price table the game runs on.
package schedule

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Stock is one row of the workbook: a company, its tradable float, and
// one price per round. Prices for rounds the sheet does not define are 0.
type Stock struct {
	Name            string  `json:"name"`
	InitialQuantity int64   `json:"initialQuantity"`
	Prices          []int64 `json:"prices"`
}

var roundColRE = regexp.MustCompile(`^Round(\d+)Price$`)

// Load reads the first sheet of an xlsx workbook. The header row must
// contain CompanyName and InitialQuantity plus any number of
// Round<N>Price columns, in any order. Round columns may be sparse; a
// missing round leaves a zero price at that index.
func Load(path string) ([]Stock, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s: sheet %q has no data rows", path, sheet)
	}

	nameCol, qtyCol := -1, -1
	roundCols := map[int]int{} // column index -> round number
	maxRound := 0
	for i, h := range rows[0] {
		switch h = strings.TrimSpace(h); h {
		case "CompanyName":
			nameCol = i
		case "InitialQuantity":
			qtyCol = i
		default:
			if m := roundColRE.FindStringSubmatch(h); m != nil {
				n, _ := strconv.Atoi(m[1])
				if n > 0 {
					roundCols[i] = n
					if n > maxRound {
						maxRound = n
					}
				}
			}
		}
	}
	if nameCol < 0 || qtyCol < 0 {
		return nil, fmt.Errorf("%s: header row must contain CompanyName and InitialQuantity", path)
	}
	if maxRound == 0 {
		return nil, fmt.Errorf("%s: no Round<N>Price columns found", path)
	}

	var stocks []Stock
	for rowNum, row := range rows[1:] {
		name := strings.TrimSpace(cell(row, nameCol))
		if name == "" {
			continue
		}
		qty, err := parseAmount(cell(row, qtyCol))
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: InitialQuantity: %w", path, rowNum+2, err)
		}
		st := Stock{Name: name, InitialQuantity: qty, Prices: make([]int64, maxRound)}
		for col, round := range roundCols {
			raw := strings.TrimSpace(cell(row, col))
			if raw == "" {
				continue
			}
			price, err := parseAmount(raw)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d: Round%dPrice: %w", path, rowNum+2, round, err)
			}
			st.Prices[round-1] = price
		}
		stocks = append(stocks, st)
	}
	if len(stocks) == 0 {
		return nil, fmt.Errorf("%s: no stocks defined", path)
	}
	return stocks, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func parseAmount(s string) (int64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative value %v", v)
	}
	return int64(math.Round(v)), nil
}
