package domain

// Placeholder duration used when a site has no selected activities.
const DefaultActivityMinutes = 180

// A unit of on-site work with its expected duration.
type Activity struct {
	ID      int
	Name    string
	Minutes int
}

// Activities selected per site code.
type SiteActivities map[string][]Activity

// Per-activity durations per site code.
type ActivityDurations map[string][]int

// Durations projects the selected activities onto their minutes.
func (sa SiteActivities) Durations() ActivityDurations {
	out := make(ActivityDurations, len(sa))
	for code, acts := range sa {
		mins := make([]int, 0, len(acts))
		for _, a := range acts {
			mins = append(mins, a.Minutes)
		}
		out[code] = mins
	}
	return out
}

// Minutes returns the total activity time for a site, falling back to a
// single DefaultActivityMinutes activity when the site has no entry.
func (d ActivityDurations) Minutes(code string) int {
	mins, ok := d[code]
	if !ok {
		return DefaultActivityMinutes
	}

	total := 0
	for _, m := range mins {
		total += m
	}
	return total
}

// TotalMinutes sums the durations of a list of activities.
func TotalMinutes(acts []Activity) int {
	total := 0
	for _, a := range acts {
		total += a.Minutes
	}
	return total
}
