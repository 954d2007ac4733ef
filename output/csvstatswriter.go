package output

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// StatsRow is one periodic snapshot of the accumulators, the
// `OutputData` record of spec.md §6. Grounded on pthm-soup's
// WindowStats/PerfStats CSV-record shape
// (telemetry/output.go's header-once-then-append pattern).
type StatsRow struct {
	SimTime       float64 `csv:"sim_time"`
	Events        int64   `csv:"events"`
	TotalDeltaKE  float64 `csv:"total_delta_ke"`
	TotalDeltaU   float64 `csv:"total_delta_u"`
	MomentumX     float64 `csv:"momentum_x"`
	MomentumY     float64 `csv:"momentum_y"`
	MomentumZ     float64 `csv:"momentum_z"`
}

// CSVStatsWriter periodically appends a StatsRow to an underlying
// writer: the header is emitted on the first row, every subsequent
// row is appended bare. Grounded on pthm-soup's
// OutputManager.WriteTelemetry.
type CSVStatsWriter struct {
	w             io.Writer
	headerWritten bool
}

// NewCSVStatsWriter returns a CSVStatsWriter appending to w.
func NewCSVStatsWriter(w io.Writer) *CSVStatsWriter {
	return &CSVStatsWriter{w: w}
}

// WriteRow appends one StatsRow, writing the CSV header first if this
// is the first call.
func (c *CSVStatsWriter) WriteRow(row StatsRow) error {
	rows := []StatsRow{row}
	var err error
	if !c.headerWritten {
		err = gocsv.Marshal(rows, c.w)
		c.headerWritten = true
	} else {
		err = gocsv.MarshalWithoutHeaders(rows, c.w)
	}
	if err != nil {
		return fmt.Errorf("output: write stats row: %w", err)
	}
	return nil
}

// Snapshot builds a StatsRow from an EnergyTracker's current totals
// at the given sim time and event count.
func Snapshot(simTime float64, events int64, e *EnergyTracker) StatsRow {
	return StatsRow{
		SimTime:      simTime,
		Events:       events,
		TotalDeltaKE: e.TotalDeltaKE,
		TotalDeltaU:  e.TotalDeltaU,
		MomentumX:    e.MomentumDrift.X,
		MomentumY:    e.MomentumDrift.Y,
		MomentumZ:    e.MomentumDrift.Z,
	}
}
