package planner

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// Source supplies the walking-distance jitter. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// DefaultSource draws from the process-wide math/rand/v2 generator and is safe
// for concurrent use.
var DefaultSource Source = globalSource{}

// Engine turns trip requests into plans. It holds no per-call state; the
// Source is the only thing shared between calls.
type Engine struct {
	src Source
}

// NewEngine returns an engine drawing jitter from src, or from DefaultSource
// when src is nil.
func NewEngine(src Source) *Engine {
	if src == nil {
		src = DefaultSource
	}
	return &Engine{src: src}
}

// Synthesize validates req and builds the complete plan. A *ValidationError
// is returned unchanged; any failure while generating is reported as a
// *SynthesisError and no plan is returned.
func (e *Engine) Synthesize(req TripRequest) (plan *TripPlan, err error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			plan = nil
			if cause, ok := r.(error); ok {
				err = &SynthesisError{Cause: cause}
				return
			}
			err = &SynthesisError{Cause: fmt.Errorf("%v", r)}
		}
	}()

	days := req.Days.Int()
	return &TripPlan{
		Destination:        req.Destination,
		Duration:           fmt.Sprintf("%d days", days),
		Budget:             req.Budget,
		Travelers:          req.Travelers,
		Dates:              datesLabel(req.StartDate, req.EndDate),
		TravelStyle:        styleLabel(req.TravelStyle),
		TotalEstimatedCost: TotalEstimatedCost(req.Budget, days),
		Itinerary:          itinerary(req.Destination, days, e.src),
		Hotels:             hotels(req.Destination),
		Restaurants:        restaurants(req.Destination),
		Transportation:     transportation(),
		LocalTips:          localTips(req.Destination),
		Weather:            weather(),
		PackingList:        packingList(req.Interests),
	}, nil
}

// Synthesize runs a one-off engine over src.
func Synthesize(req TripRequest, src Source) (*TripPlan, error) {
	return NewEngine(src).Synthesize(req)
}

// FlexibleDates labels plans without a complete date range.
const FlexibleDates = "Flexible dates"

func datesLabel(start, end string) string {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" || end == "" {
		return FlexibleDates
	}
	return fmt.Sprintf("%s to %s", readableDate(start), readableDate(end))
}

// readableDate renders ISO dates as "Jan 2, 2006" and leaves anything else as typed.
func readableDate(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return t.Format("Jan 2, 2006")
}

func styleLabel(style string) string {
	if strings.TrimSpace(style) == "" {
		return "Mixed"
	}
	return style
}
