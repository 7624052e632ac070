package fixtures

import (
	"encoding/json"
	"time"
)

// ==========================================
// DEMO MONTH
// ==========================================

// DemoHolidays maps month-day to a holiday name used by DemoMonth.
var DemoHolidays = map[[2]int]string{
	{1, 1}:   "元旦",
	{4, 5}:   "清明节",
	{5, 1}:   "劳动节",
	{10, 1}:  "国庆节",
	{12, 25}: "",
}

// demoDay uses the upstream HR field names so the output round-trips
// through the payload decoder exactly like a live response.
type demoDay struct {
	SWSBDKCS   int    `json:"SWSBDKCS"`
	IsSwSbbuka int    `json:"IsSwSbbuka"`
	XWXBDKCS   int    `json:"XWXBDKCS"`
	IsXwXbbuka int    `json:"IsXwXbbuka"`
	Isholiday  int    `json:"isholiday"`
	Jjr        string `json:"jjr"`
	IsQj       int    `json:"IsQj"`
}

type demoStatistics struct {
	Qjts     int `json:"qjts"`
	Cdts     int `json:"cdts"`
	Ztts     int `json:"ztts"`
	Qtjcnums int `json:"qtjcnums"`
}

type demoPayload struct {
	Statistics demoStatistics `json:"statistics"`
	Details    []demoDay      `json:"details"`
	Month      int            `json:"month"`
	Year       int            `json:"year"`
	Days       int            `json:"days"`
	IsWorkday  bool           `json:"is_workday"`
}

// DemoMonth builds a deterministic monthly payload for the given month:
// weekends and DemoHolidays are holidays, every 9th day is leave, every 7th
// day has a makeup morning punch, every 11th day has no punches and every
// 13th day misses the afternoon. Days of the month after today carry no punches.
func DemoMonth(year, month int, now time.Time) []byte {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location())
	days := first.AddDate(0, 1, -1).Day()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	p := demoPayload{
		Details:   make([]demoDay, days),
		Month:     month,
		Year:      year,
		Days:      days,
		IsWorkday: true,
	}

	for i := range p.Details {
		date := first.AddDate(0, 0, i)
		d := &p.Details[i]
		dom := i + 1

		if name, ok := DemoHolidays[[2]int{month, dom}]; ok {
			d.Isholiday, d.Jjr = 1, name
			continue
		}
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			d.Isholiday = 1
			continue
		}
		if date.After(today) {
			continue
		}

		switch {
		case dom%9 == 0:
			d.IsQj = 1
			p.Statistics.Qjts++
		case dom%11 == 0:
			if !date.Equal(today) {
				p.Statistics.Qtjcnums += 2
			}
		case dom%13 == 0:
			d.SWSBDKCS = 1
			if !date.Equal(today) {
				p.Statistics.Qtjcnums++
			}
		case date.Equal(today):
			// Leave today's punches to the clock
			if now.Hour() >= 9 {
				d.SWSBDKCS = 1
			}
		default:
			d.SWSBDKCS, d.XWXBDKCS = 1, 1
			if dom%7 == 0 {
				d.IsSwSbbuka = 1
				p.Statistics.Cdts++
			}
		}
	}

	if idx := now.Day() - 1; now.Year() == year && int(now.Month()) == month && idx < days {
		p.IsWorkday = p.Details[idx].Isholiday == 0
	}

	data, err := json.Marshal(p)
	if err != nil {
		// Only plain ints and strings are marshalled
		panic(err)
	}
	return data
}
