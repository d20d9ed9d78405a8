package monitor

// fullTurn is 2π in hundredths of a radian, truncated.
const fullTurn int32 = 628

// wrapHeading adds the stored correction to angle and folds the result into
// [0, fullTurn). The sum is taken in int64 so extreme inputs cannot wrap.
func wrapHeading(angle, correction int32) int32 {
	sum := (int64(angle) + int64(correction)) % int64(fullTurn)
	if sum < 0 {
		sum += int64(fullTurn)
	}
	return int32(sum)
}
