package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/lotlister-backend/pkg/db/models"
	"github.com/angelmondragon/lotlister-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/lotlister-backend/pkg/errors"
)

// scheduleTimeLayout is the representation the bulk-upload channel expects,
// always in UTC.
const scheduleTimeLayout = "2006-01-02 15:04:05"

const scheduledDateLayout = "2006-01-02"

// ComputeScheduleTime returns the listing start time for the card at the
// given zero-based batch index, or "" when the profile schedules nothing.
//
// The profile's date and time are local to the operator; tzOffsetMinutes
// is the amount to add to that local time to reach UTC (the convention
// browsers report). Index 0 gets the base time; with staggering enabled
// each later index adds index*StaggerSeconds. Output depends only on the
// arguments, never on the current clock.
func ComputeScheduleTime(profile models.ExportProfile, index int, tzOffsetMinutes int) (string, error) {
	if profile.ScheduleMode != enums.ScheduleModeScheduled {
		return "", nil
	}
	if profile.ScheduledDate == nil || profile.ScheduledTime == nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "scheduled export requires a base date and time")
	}

	base, err := composeBaseTime(*profile.ScheduledDate, *profile.ScheduledTime)
	if err != nil {
		return "", err
	}

	base = base.Add(time.Duration(tzOffsetMinutes) * time.Minute)
	if profile.StaggerEnabled {
		base = base.Add(time.Duration(index) * time.Duration(profile.StaggerSeconds) * time.Second)
	}
	return base.UTC().Format(scheduleTimeLayout), nil
}

func composeBaseTime(date, clock string) (time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)

	day, err := time.ParseInLocation(scheduledDateLayout, date, time.UTC)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("scheduled date %q is not in YYYY-MM-DD form", date))
	}

	var clockTime time.Time
	for _, layout := range []string{"15:04:05", "15:04"} {
		clockTime, err = time.Parse(layout, clock)
		if err == nil {
			return day.Add(time.Duration(clockTime.Hour())*time.Hour +
				time.Duration(clockTime.Minute())*time.Minute +
				time.Duration(clockTime.Second())*time.Second), nil
		}
	}
	return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation,
		fmt.Sprintf("scheduled time %q is not in HH:MM or HH:MM:SS form", clock))
}
