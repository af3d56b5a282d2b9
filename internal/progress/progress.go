package progress

// ProgressUpdate carries the progress of a single engine through the
// orchestration pipeline. Value is the completion ratio in [0, 1].
type ProgressUpdate struct {
	EngineIndex int
	Value       float64
}

// ProgressCallback receives a completion ratio in [0, 1]. Engines invoke it
// after each unit of work; a nil callback disables reporting.
type ProgressCallback func(value float64)

// ReportStepProgress reports the completion of step out of totalSteps
// through cb. It harmonizes reporting across engines: every engine reports
// the same ratio scale regardless of how its work is subdivided. Values are
// clamped to [0, 1] and nothing is reported when cb is nil or totalSteps is
// not positive.
func ReportStepProgress(cb ProgressCallback, step, totalSteps int) {
	if cb == nil || totalSteps <= 0 {
		return
	}
	v := float64(step) / float64(totalSteps)
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	cb(v)
}
