package run

// SplitOvertime partitions per-week paid minutes into regular and
// overtime. The threshold applies to each calendar week independently,
// never to the period as a whole: a biweekly run with a 45-hour week
// and a 35-hour week yields 5 overtime hours, not zero.
func SplitOvertime(minutesByWeek map[WeekKey]int, thresholdMinutes int) (regular, overtime int) {
	for _, minutes := range minutesByWeek {
		if minutes > thresholdMinutes {
			regular += thresholdMinutes
			overtime += minutes - thresholdMinutes
		} else {
			regular += minutes
		}
	}
	return regular, overtime
}
