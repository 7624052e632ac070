package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/cmlabs-hris/clockin-console/internal/domain/attendance"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

type segment struct {
	text  string
	color *color.Color
}

// Renderer draws a classified month as a terminal calendar.
type Renderer struct {
	cfg    Config
	green  *color.Color
	yellow *color.Color
	red    *color.Color
	purple *color.Color
	gray   *color.Color
	bold   *color.Color
}

func New(cfg Config) *Renderer {
	r := &Renderer{
		cfg:    cfg,
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		red:    color.New(color.FgRed),
		purple: color.New(color.FgMagenta),
		gray:   color.New(color.FgHiBlack),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{r.green, r.yellow, r.red, r.purple, r.gray, r.bold} {
		if cfg.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Render writes the month title, weekday header, grid and statistics footer.
func (r *Renderer) Render(w io.Writer, cal attendance.Calendar) error {
	var b strings.Builder

	b.WriteString(r.bold.Sprintf("%04d-%02d", cal.Year, cal.Month))
	b.WriteString("\n")

	header := make([][]segment, 7)
	for i, name := range r.cfg.Labels.Weekdays {
		header[i] = []segment{{text: name, color: r.bold}}
	}
	r.writeRow(&b, header)

	for _, week := range Grid(cal) {
		numbers := make([][]segment, 7)
		marks := make([][][]segment, 7)
		height := 0
		for i, cell := range week {
			if cell.Day == 0 {
				continue
			}
			numbers[i] = []segment{{text: fmt.Sprintf("%d", cell.Day)}}
			marks[i] = r.marks(cell.Item)
			if len(marks[i]) > height {
				height = len(marks[i])
			}
		}
		r.writeRow(&b, numbers)

		for line := 0; line < height; line++ {
			row := make([][]segment, 7)
			for i := range marks {
				if line < len(marks[i]) {
					row[i] = marks[i][line]
				}
			}
			r.writeRow(&b, row)
		}
	}

	s := cal.Statistics
	fmt.Fprintf(&b, "请假 %d  迟到 %d  早退 %d  缺卡 %d\n", s.LeaveDays, s.LateCount, s.EarlyLeaveCount, s.MissingPunchCount)

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderNextAction writes the countdown caption, or a rest notice when
// nothing is owed.
func (r *Renderer) RenderNextAction(w io.Writer, resp *attendance.NextActionResponse) error {
	if resp == nil {
		_, err := fmt.Fprintln(w, r.gray.Sprint("今日无需打卡"))
		return err
	}
	_, err := fmt.Fprintf(w, "距离%s打卡还有 %s\n", resp.Label, r.bold.Sprint(resp.Countdown))
	return err
}

// CellLines returns the uncolored status lines drawn under a day number.
func (r *Renderer) CellLines(item *attendance.CalendarDay) []string {
	var lines []string
	for _, line := range r.marks(item) {
		var sb strings.Builder
		for _, seg := range line {
			sb.WriteString(seg.text)
		}
		lines = append(lines, sb.String())
	}
	return lines
}

func (r *Renderer) marks(item *attendance.CalendarDay) [][]segment {
	if item == nil {
		return nil
	}

	labels := r.cfg.Labels
	status := item.Status

	switch status.Kind {
	case attendance.DayFuture:
		return nil
	case attendance.DayHoliday:
		name := status.HolidayName
		if name == "" || name == attendance.RestLabel {
			name = labels.Rest
		}
		return [][]segment{{{text: name, color: r.green}}}
	case attendance.DayLeave:
		return [][]segment{{{text: labels.Leave, color: r.purple}}}
	}

	halves := attendance.HalfDays{Morning: attendance.HalfDayMissing, Afternoon: attendance.HalfDayMissing}
	if status.Halves != nil {
		halves = *status.Halves
	}

	pending := item.MorningPending || item.AfternoonPending
	if status.Kind == attendance.DayBothMissing && !pending {
		return [][]segment{{{text: labels.BothMissing, color: r.red}}}
	}

	morning := r.halfMark(halves.Morning, item.MorningPending)
	afternoon := r.halfMark(halves.Afternoon, item.AfternoonPending)
	if r.cfg.Style == StyleVertical {
		return [][]segment{{morning}, {afternoon}}
	}
	return [][]segment{{morning, afternoon}}
}

func (r *Renderer) halfMark(status attendance.HalfDayStatus, pending bool) segment {
	labels := r.cfg.Labels
	switch {
	case pending:
		return segment{text: labels.Pending, color: r.gray}
	case status == attendance.HalfDayNormal:
		return segment{text: labels.Check, color: r.green}
	case status == attendance.HalfDayMakeup:
		return segment{text: labels.Check, color: r.yellow}
	default:
		return segment{text: labels.Cross, color: r.red}
	}
}

func (r *Renderer) writeRow(b *strings.Builder, cells [][]segment) {
	for _, cell := range cells {
		width := 0
		for _, seg := range cell {
			if seg.color != nil {
				b.WriteString(seg.color.Sprint(seg.text))
			} else {
				b.WriteString(seg.text)
			}
			width += runewidth.StringWidth(seg.text)
		}
		if pad := r.cfg.CellWidth - width; pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	b.WriteString("\n")
}
