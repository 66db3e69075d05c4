package domain

// DaysPerWeek is the number of day cells per schedule week
const DaysPerWeek = 7

// ScheduleShift is one shift cell entry; a day cell holds a JSON array of these
type ScheduleShift struct {
	Name      string `json:"name"`
	Bartender string `json:"bartender"`
}

// ScheduleRow is one location's two-week schedule. Day cells run Sunday..Saturday
// and hold JSON-encoded []ScheduleShift.
type ScheduleRow struct {
	Location string
	Week1    [DaysPerWeek]string
	Week2    [DaysPerWeek]string
}

// PublicShift describes a shift kind from the public data document
type PublicShift struct {
	Name         string `json:"name"`
	FriendlyName string `json:"friendly_name"`
	Description  string `json:"description"`
}

// PublicLocation describes a location from the public data document
type PublicLocation struct {
	Name         string `json:"name"`
	FriendlyName string `json:"friendly_name"`
}

// PublicData lists the shifts and locations the schedule is built from
type PublicData struct {
	Shifts    []PublicShift    `json:"shifts"`
	Locations []PublicLocation `json:"locations"`
}

// RotateSchedule moves each location's second week into the first and resets the
// second week to emptyDay. Rows are emitted in public location order; rows whose
// location is not listed are dropped.
func RotateSchedule(rows []ScheduleRow, locations []PublicLocation, emptyDay string) []ScheduleRow {
	var out []ScheduleRow
	for _, loc := range locations {
		for _, row := range rows {
			if row.Location != loc.Name {
				continue
			}
			next := ScheduleRow{Location: loc.Name, Week1: row.Week2}
			for i := range next.Week2 {
				next.Week2[i] = emptyDay
			}
			out = append(out, next)
		}
	}
	return out
}
