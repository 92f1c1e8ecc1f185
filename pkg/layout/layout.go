package layout

import (
	"sort"

	"github.com/dersplan/dersplan/pkg/schedule"
)

// Config describes the visible time window and the vertical scale of the
// day view.
type Config struct {
	StartHour     int
	EndHour       int
	PixelsPerHour float64
}

// overlapTolerance treats back-to-back events as non-overlapping even with
// floating-point error, in pixel units.
const overlapTolerance = 0.1

// Box is an event augmented with its rendered geometry. Top and Height are
// pixels, Left and Width are percentages of the day column.
type Box struct {
	Event        schedule.Event
	Top          float64
	Height       float64
	Column       int
	TotalColumns int
	Left         float64
	Width        float64
}

// PositionDay maps one day's events to non-overlapping rectangles: vertical
// placement from wall-clock times, horizontal placement by greedy first-fit
// column packing. The column count is global to the day, so the widths are
// uniform and sized to the maximum simultaneous overlap anywhere in the day.
//
// The input is not validated: an inverted or zero-length time range yields a
// degenerate box rather than an error, and events outside the visible window
// keep their computed geometry. Clipping is the renderer's concern.
func PositionDay(events []schedule.Event, cfg Config) []Box {
	if len(events) == 0 {
		return []Box{}
	}

	boxes := make([]Box, 0, len(events))
	for _, event := range events {
		start := fractionalHour(event.StartTime)
		end := fractionalHour(event.EndTime)
		boxes = append(boxes, Box{
			Event:  event,
			Top:    (start - float64(cfg.StartHour)) * cfg.PixelsPerHour,
			Height: (end - start) * cfg.PixelsPerHour,
		})
	}

	// Stable: chronological order first, insertion order on ties.
	sort.SliceStable(boxes, func(i, j int) bool {
		return boxes[i].Top < boxes[j].Top
	})

	// columnBottoms[i] is the bottom edge of the last event placed in column i.
	columnBottoms := make([]float64, 0)
	for i := range boxes {
		placed := false
		for col, bottom := range columnBottoms {
			if bottom <= boxes[i].Top+overlapTolerance {
				boxes[i].Column = col
				columnBottoms[col] = boxes[i].Top + boxes[i].Height
				placed = true
				break
			}
		}
		if !placed {
			boxes[i].Column = len(columnBottoms)
			columnBottoms = append(columnBottoms, boxes[i].Top+boxes[i].Height)
		}
	}

	totalColumns := len(columnBottoms)
	width := 100.0 / float64(totalColumns)
	for i := range boxes {
		boxes[i].TotalColumns = totalColumns
		boxes[i].Width = width
		boxes[i].Left = float64(boxes[i].Column) * width
	}

	return boxes
}

// fractionalHour converts HH:MM to hours as a float. Malformed input maps to
// zero; callers are expected to have validated times before layout.
func fractionalHour(clock string) float64 {
	minutes, err := schedule.ParseClock(clock)
	if err != nil {
		return 0
	}
	return float64(minutes) / 60.0
}
