package output

// FormatRecord returns a copy of rec with fields stripped according to verbosity.
// At Minimal: confidence, scores, group aggregates and the report are dropped.
// At Standard: the report keeps its totals but loses per-question entries.
// At Full: all fields preserved.
func FormatRecord(rec Record, verbosity Verbosity) Record {
	switch verbosity {
	case Minimal:
		rec.Confidence = nil
		rec.Scores = nil
		rec.LowOrderScore = nil
		rec.HighOrderScore = nil
		rec.Difference = nil
		rec.Report = nil
	case Standard:
		if rec.Report != nil {
			summary := *rec.Report
			summary.Entries = nil
			rec.Report = &summary
		}
	}
	return rec
}
