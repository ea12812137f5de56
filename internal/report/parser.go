package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"StockSentinel/internal/model"
)

// headerKeywords mark metadata lines that must never be treated as data rows.
var headerKeywords = []string{
	"代號", "執行時間", "篩選條件", "共找到", "台股月MACD", "結果已寫入", "完成",
}

var fieldSep = regexp.MustCompile(`\s{2,}`)

// Parse reads a hand-off report and reconstructs the monitored securities, in
// report order. The reader is deliberately permissive: anything that does not
// look like a data row is skipped, and a malformed row is dropped rather than
// failing the whole report.
//
// A data row splits on runs of 2+ whitespace into at least 5 fields, the 5th
// of which parses as the monthly low. Source data occasionally tags codes with
// a literal 'O' marker; every 'O' is stripped from the code field.
func Parse(r io.Reader) ([]model.MonitoredStock, error) {
	var stocks []model.MonitoredStock

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, "=") || strings.HasPrefix(line, "-") {
			continue
		}
		if containsHeaderKeyword(line) {
			continue
		}

		parts := fieldSep.Split(strings.TrimSpace(line), -1)
		if len(parts) < 5 {
			continue
		}
		low, err := strconv.ParseFloat(strings.TrimSpace(parts[4]), 64)
		if err != nil {
			continue
		}
		code := strings.ReplaceAll(strings.TrimSpace(parts[0]), "O", "")
		stocks = append(stocks, model.MonitoredStock{
			Code:       code,
			Name:       strings.TrimSpace(parts[1]),
			Market:     model.Market(strings.TrimSpace(parts[2])),
			MonthlyLow: low,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	return stocks, nil
}

// ParseFile parses the report at path. A missing report is not an error
// condition for the caller to crash on; it is returned as-is so the monitor
// can terminate the run cleanly.
func ParseFile(path string) ([]model.MonitoredStock, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func containsHeaderKeyword(line string) bool {
	for _, kw := range headerKeywords {
		if strings.Contains(line, kw) {
			return true
		}
	}
	return false
}
