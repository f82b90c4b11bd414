package replay

import (
	"encoding/csv"
	"os"
	"strconv"

	"portfolio-snapshots/internal/model"
)

// WriteSnapshotsCSV writes one row per daily snapshot. Positions collapse to
// their summed market value; the full structure stays available on the JSON
// side.
func WriteSnapshotsCSV(path string, snapshots []model.DailySnapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"snapshot_date",
		"cash",
		"stock_value",
		"positions",
		"open_options",
		"portfolio_value",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, s := range snapshots {
		var stockValue float64
		for _, pos := range s.StockPositions {
			stockValue += pos.MarketValue
		}
		row := []string{
			s.SnapshotDate.String(),
			fmtFloat(s.Cash),
			fmtFloat(stockValue),
			strconv.Itoa(len(s.StockPositions)),
			strconv.Itoa(len(s.OpenOptions)),
			fmtFloat(s.PortfolioValue),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
