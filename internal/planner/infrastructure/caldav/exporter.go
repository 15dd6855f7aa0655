// Package caldav pushes a plan's non-break sessions to an external CalDAV
// calendar (Apple Calendar, Fastmail, Nextcloud, ...), a supplementary
// export surface alongside the ICS text export.
package caldav

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav"
	"github.com/emersion/go-webdav/caldav"
	"github.com/sony/gobreaker/v2"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
)

// PropXStudyFlow marks events this exporter created, so a repeat sync
// can tell its own entries apart from ones a user added by hand.
const PropXStudyFlow = "X-STUDYFLOW"

// Exporter pushes plan sessions into a CalDAV calendar, wrapped in a
// circuit breaker so a flaky external server degrades to a skipped push
// rather than blocking a rebuild or an export request.
type Exporter struct {
	baseURL      string
	username     string
	password     string
	calendarPath string
	logger       *slog.Logger
	breaker      *gobreaker.CircuitBreaker[*ExportResult]
}

// ExportResult summarizes one push.
type ExportResult struct {
	Pushed int
	Failed int
}

// NewExporter creates a CalDAV push exporter.
func NewExporter(baseURL, username, password string, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	settings := gobreaker.Settings{
		Name:        "caldav-export",
		MaxRequests: 1,
		Interval:    0,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	}
	return &Exporter{
		baseURL:  baseURL,
		username: username,
		password: password,
		logger:   logger,
		breaker:  gobreaker.NewCircuitBreaker[*ExportResult](settings),
	}
}

// WithCalendarPath pins a specific calendar path instead of auto-discovery.
func (e *Exporter) WithCalendarPath(path string) *Exporter {
	e.calendarPath = path
	return e
}

// Push sends every non-break session in the plan to the configured
// calendar, through the circuit breaker.
func (e *Exporter) Push(ctx context.Context, plan *pdomain.PlanRecord) (*ExportResult, error) {
	return e.breaker.Execute(func() (*ExportResult, error) {
		client, err := e.getClient()
		if err != nil {
			return nil, err
		}

		calPath, err := e.findCalendarPath(ctx, client)
		if err != nil {
			return nil, fmt.Errorf("failed to find calendar: %w", err)
		}

		result := &ExportResult{}
		for _, s := range plan.Sessions {
			if s.Source == pdomain.SourceBreak {
				continue
			}
			eventPath := fmt.Sprintf("%s%s.ics", calPath, s.ID.String())
			cal := toICalendar(s)
			if _, err := client.PutCalendarObject(ctx, eventPath, cal); err != nil {
				e.logger.Warn("caldav push failed", "event_path", eventPath, "error", err)
				result.Failed++
				continue
			}
			result.Pushed++
		}

		return result, nil
	})
}

func (e *Exporter) getClient() (*caldav.Client, error) {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	client, err := caldav.NewClient(webdav.HTTPClientWithBasicAuth(httpClient, e.username, e.password), e.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create caldav client: %w", err)
	}
	return client, nil
}

func (e *Exporter) findCalendarPath(ctx context.Context, client *caldav.Client) (string, error) {
	if e.calendarPath != "" {
		return e.calendarPath, nil
	}

	principal, err := client.FindCurrentUserPrincipal(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to find principal: %w", err)
	}
	homeSet, err := client.FindCalendarHomeSet(ctx, principal)
	if err != nil {
		return "", fmt.Errorf("failed to find calendar home set: %w", err)
	}
	cals, err := client.FindCalendars(ctx, homeSet)
	if err != nil {
		return "", fmt.Errorf("failed to find calendars: %w", err)
	}
	if len(cals) == 0 {
		return "", fmt.Errorf("no calendars found")
	}
	return cals[0].Path, nil
}

// toICalendar converts a Session into an ical.Calendar carrying a single
// VEVENT.
func toICalendar(s pdomain.Session) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//StudyFlow//Planner 1.0//VI")

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, fmt.Sprintf("%s@studyflow", s.ID.String()))
	event.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
	event.Props.SetDateTime(ical.PropDateTimeStart, s.PlannedStart.UTC())
	event.Props.SetDateTime(ical.PropDateTimeEnd, s.PlannedEnd.UTC())
	event.Props.SetText(ical.PropSummary, fmt.Sprintf("%s · %s", s.Subject, s.Title))

	prop := ical.NewProp(PropXStudyFlow)
	prop.Value = "1"
	event.Props[PropXStudyFlow] = []ical.Prop{*prop}

	cal.Children = append(cal.Children, event.Component)
	return cal
}
