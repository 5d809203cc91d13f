package calendar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
)

func TestBuildRequest_RoundTrip(t *testing.T) {
	start := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	data, err := BuildRequest(Event{
		UID:       "iv-1@liftout",
		Summary:   "Interview: Data Team / ML Lead",
		Location:  "HQ",
		URL:       "https://meet.example.com/abc",
		Start:     start,
		Duration:  45 * time.Minute,
		Organizer: "recruiter@acme.com",
		Attendees: []string{"a@team.com", " ", "b@team.com"},
	}, start.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("BuildRequest 失败: %v", err)
	}

	if !strings.Contains(string(data), "METHOD:REQUEST") {
		t.Error("期望包含 METHOD:REQUEST")
	}

	cal, err := ics.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("解析生成的 ICS 失败: %v", err)
	}
	events := cal.Events()
	if len(events) != 1 {
		t.Fatalf("期望 1 个事件，实际 %d", len(events))
	}
	ev := events[0]

	gotStart, err := ev.GetStartAt()
	if err != nil || !gotStart.Equal(start) {
		t.Errorf("期望开始时间 %v，实际 %v (err=%v)", start, gotStart, err)
	}
	gotEnd, err := ev.GetEndAt()
	if err != nil || !gotEnd.Equal(start.Add(45*time.Minute)) {
		t.Errorf("结束时间错误: %v (err=%v)", gotEnd, err)
	}
	if n := len(ev.Attendees()); n != 2 {
		t.Errorf("期望 2 名参会人，实际 %d", n)
	}
}

func TestBuildRequest_Invalid(t *testing.T) {
	if _, err := BuildRequest(Event{UID: "x", Start: time.Now()}, time.Now()); err != ErrInvalidEvent {
		t.Errorf("期望 ErrInvalidEvent，实际 %v", err)
	}
}
