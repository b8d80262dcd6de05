package metrics

// Wake-up and bedtime windows, local hour of day. Half-open: a 09:00
// reading is not a wake-up reading.
const (
	wakeupStartHour  = 6
	wakeupEndHour    = 9
	bedtimeStartHour = 21
	bedtimeEndHour   = 24
)

// WakeupAverage returns the mean of readings taken between 06:00 and 08:59
// local time, or nil when no readings fall in the window.
func WakeupAverage(readings []Reading) *float64 {
	return hourWindowAverage(readings, wakeupStartHour, wakeupEndHour)
}

// BedtimeAverage returns the mean of readings taken between 21:00 and 23:59
// local time, or nil when no readings fall in the window.
func BedtimeAverage(readings []Reading) *float64 {
	return hourWindowAverage(readings, bedtimeStartHour, bedtimeEndHour)
}

func hourWindowAverage(readings []Reading, startHour, endHour int) *float64 {
	var sum float64
	count := 0
	for _, r := range readings {
		h := r.Time.Hour()
		if h >= startHour && h < endHour {
			sum += r.Value
			count++
		}
	}
	if count == 0 {
		return nil
	}
	return ptr(sum / float64(count))
}
