package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"StockSentinel/internal/model"
)

// padRight pads s with spaces to width, counting runes so CJK names line up
// the same way the historical reports did.
func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// Format renders the ranked scan results in the hand-off report layout. The
// layout is a compatibility contract: the monitor and downstream consumers
// parse it, so banner characters, header keywords and column order are fixed.
func Format(results []model.ScanResult, minYieldPct float64, now time.Time) string {
	var b strings.Builder
	banner := strings.Repeat("=", 60)

	b.WriteString(banner + "\n")
	b.WriteString("台股月MACD第一根紅柱掃描結果\n")
	b.WriteString(fmt.Sprintf("執行時間：%s\n", now.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("篩選條件：第一根紅柱 ＋ 有發股利 ＋ 殖利率 ≥ %.1f%%\n", minYieldPct))
	b.WriteString(fmt.Sprintf("共找到 %d 檔\n", len(results)))
	b.WriteString(banner + "\n")

	if len(results) == 0 {
		b.WriteString("本月無符合條件的股票\n")
	} else {
		b.WriteString(fmt.Sprintf("%s %s %s %7s %10s %6s %7s %s %s\n",
			padRight("代號", 6), padRight("名稱", 10), padRight("市場", 4),
			"現價", "當月最低價", "股利", "殖利率", padRight("MACD位階", 6), "柱狀體(本/前月)"))
		b.WriteString(strings.Repeat("-", 80) + "\n")
		for _, r := range results {
			b.WriteString(fmt.Sprintf("%s %s %s %7.2f %10.2f %6.2f %6.1f%% %s %8.4f / %8.4f\n",
				padRight(r.Code, 6), padRight(r.Name, 10), padRight(string(r.Market), 4),
				r.CurrentPrice, r.MonthlyLow, r.TrailingDiv, r.YieldPct,
				padRight(string(r.Regime), 6), r.CurrHistogram, r.PrevHistogram))
		}
	}

	b.WriteString(banner + "\n")
	return b.String()
}

// WriteFile renders and writes the report, replacing any previous one.
func WriteFile(path string, results []model.ScanResult, minYieldPct float64, now time.Time) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(Format(results, minYieldPct, now)), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
