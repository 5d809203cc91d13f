// Package calendar 生成面试邀请的 iCalendar (RFC 5545) 内容。
package calendar

import (
	"errors"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

const (
	productID   = "-//Liftout//Interview Scheduler//EN"
	ContentType = "text/calendar; charset=utf-8; method=REQUEST"
	Filename    = "interview.ics"
)

var ErrInvalidEvent = errors.New("calendar: event requires uid, start and a positive duration")

// Event 面试日程
type Event struct {
	UID         string
	Summary     string
	Description string
	Location    string
	URL         string
	Start       time.Time
	Duration    time.Duration
	Organizer   string
	Attendees   []string
}

// BuildRequest 生成 METHOD:REQUEST 的 VCALENDAR，内含单个 VEVENT
func BuildRequest(e Event, now time.Time) ([]byte, error) {
	if e.UID == "" || e.Start.IsZero() || e.Duration <= 0 {
		return nil, ErrInvalidEvent
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodRequest)
	cal.SetProductId(productID)

	event := cal.AddEvent(e.UID)
	event.SetDtStampTime(now.UTC())
	event.SetCreatedTime(now.UTC())
	event.SetStartAt(e.Start.UTC())
	event.SetEndAt(e.Start.Add(e.Duration).UTC())
	event.SetSummary(e.Summary)
	if e.Description != "" {
		event.SetDescription(e.Description)
	}
	if e.Location != "" {
		event.SetLocation(e.Location)
	}
	if e.URL != "" {
		event.SetURL(e.URL)
	}
	if e.Organizer != "" {
		event.SetOrganizer("mailto:" + e.Organizer)
	}
	for _, a := range e.Attendees {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		event.AddAttendee("mailto:"+a,
			ics.CalendarUserTypeIndividual,
			ics.ParticipationStatusNeedsAction,
			ics.ParticipationRoleReqParticipant,
			ics.WithRSVP(true),
		)
	}

	return []byte(cal.Serialize()), nil
}
