package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/joaoppegoraro/garage-management/internal/app"
	"github.com/joaoppegoraro/garage-management/internal/domain"
)

// ParkingProcessor is the minimal interface the webhook needs to route
// lifecycle events.
type ParkingProcessor interface {
	ProcessEntry(ctx context.Context, in app.EntryInput) (domain.Record, error)
	ProcessParked(ctx context.Context, in app.ParkedInput) (domain.Record, error)
	ProcessExit(ctx context.Context, in app.ExitInput) (domain.Record, error)
}

// HandleWebhook returns the handler for the simulator's lifecycle events.
// The payload is a closed union tagged by event_type; dispatch happens on
// the tag alone.
func HandleWebhook(svc ParkingProcessor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var event webhookEvent
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&event); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		var err error
		switch domain.EventKind(event.EventType) {
		case domain.EventEntry:
			if event.EntryTime == nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "entry_time is required")
				return
			}
			_, err = svc.ProcessEntry(r.Context(), app.EntryInput{
				LicensePlate: event.LicensePlate,
				EntryTime:    event.EntryTime.Time,
			})
		case domain.EventParked:
			if event.Lat == nil || event.Lng == nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "lat and lng are required")
				return
			}
			_, err = svc.ProcessParked(r.Context(), app.ParkedInput{
				LicensePlate: event.LicensePlate,
				Lat:          *event.Lat,
				Lng:          *event.Lng,
			})
		case domain.EventExit:
			if event.ExitTime == nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "exit_time is required")
				return
			}
			_, err = svc.ProcessExit(r.Context(), app.ExitInput{
				LicensePlate: event.LicensePlate,
				ExitTime:     event.ExitTime.Time,
			})
		default:
			writeError(w, http.StatusBadRequest, codeUnknownEventType, "unknown event type")
			return
		}

		if err != nil {
			if err == domain.ErrDataInconsistency {
				log.Printf("ERROR: data inconsistency on %s event for plate %s: %v", event.EventType, event.LicensePlate, err)
			}
			writeDomainError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

type webhookEvent struct {
	EventType    string     `json:"event_type"`
	LicensePlate string     `json:"license_plate"`
	EntryTime    *eventTime `json:"entry_time,omitempty"`
	ExitTime     *eventTime `json:"exit_time,omitempty"`
	Lat          *float64   `json:"lat,omitempty"`
	Lng          *float64   `json:"lng,omitempty"`
}

// eventTime accepts both RFC 3339 timestamps and the simulator's zoneless
// local form, which is taken as UTC.
type eventTime struct {
	time.Time
}

const zonelessLayout = "2006-01-02T15:04:05"

func (t *eventTime) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.Parse(zonelessLayout, raw)
	if err != nil {
		return err
	}
	t.Time = parsed.UTC()
	return nil
}
