package service

import (
	"testing"

	"github.com/gnanalytica/website/internal/core/domain"
)

const calendarBase = "https://calendar.google.com/appointments/schedules/AcZssZ20kz"

func TestCalendarEmbedURL(t *testing.T) {
	cases := []struct {
		name, base, tz string
		want           string
		ok             bool
	}{
		{"no timezone", calendarBase, "", calendarBase, true},
		{"timezone", calendarBase, "America/New_York", calendarBase + "?timezone=America%2FNew_York", true},
		{"existing query", calendarBase + "?gv=true", "Asia/Kolkata", calendarBase + "?gv=true&timezone=Asia%2FKolkata", true},
		{"empty", "", "UTC", "", false},
		{"placeholder", "https://calendar.google.com/YOUR_CALENDAR_ID", "", "", false},
		{"relative", "/calendar", "", "", false},
	}
	for _, tc := range cases {
		got, ok := CalendarEmbedURL(tc.base, tc.tz)
		if got != tc.want || ok != tc.ok {
			t.Errorf("%s: got (%q,%v), want (%q,%v)", tc.name, got, ok, tc.want, tc.ok)
		}
	}
}

func TestSiteService_SchedulingTimezoneOverride(t *testing.T) {
	svc := NewSiteService(domain.SiteContent{SchedulingBenefits: []string{"Complimentary"}},
		CalendarConfig{EmbedURL: calendarBase, Timezone: "UTC"})

	if got := svc.Scheduling("").EmbedURL; got != calendarBase+"?timezone=UTC" {
		t.Fatalf("configured timezone not applied: %q", got)
	}
	if got := svc.Scheduling("Europe/Berlin").EmbedURL; got != calendarBase+"?timezone=Europe%2FBerlin" {
		t.Fatalf("override not applied: %q", got)
	}
	if got := svc.Scheduling(`"><script>`).EmbedURL; got != calendarBase+"?timezone=UTC" {
		t.Fatalf("invalid override should be ignored: %q", got)
	}

	page := svc.Landing("")
	if !page.Scheduling.Configured || len(page.Scheduling.Benefits) != 1 {
		t.Fatalf("unexpected scheduling block: %+v", page.Scheduling)
	}
}

func TestSiteService_Unconfigured(t *testing.T) {
	svc := NewSiteService(domain.SiteContent{}, CalendarConfig{})
	if s := svc.Scheduling("UTC"); s.Configured || s.EmbedURL != "" {
		t.Fatalf("expected unconfigured calendar, got %+v", s)
	}
}
