package service

import (
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/gnanalytica/website/internal/core/domain"
	"github.com/gnanalytica/website/internal/core/ports"
)

const calendarPlaceholder = "YOUR_CALENDAR_ID"

var timezonePattern = regexp.MustCompile(`^[A-Za-z0-9_+\-/]{1,64}$`)

// CalendarConfig points at the external booking calendar.
type CalendarConfig struct {
	EmbedURL string
	Timezone string
}

// SiteService serves the marketing content.
type SiteService struct {
	content  domain.SiteContent
	calendar CalendarConfig
}

func NewSiteService(content domain.SiteContent, calendar CalendarConfig) *SiteService {
	return &SiteService{content: content, calendar: calendar}
}

func (s *SiteService) Landing(timezone string) ports.LandingPage {
	return ports.LandingPage{
		Content:    s.content,
		Scheduling: s.Scheduling(timezone),
	}
}

func (s *SiteService) Scheduling(timezone string) domain.Scheduling {
	tz := s.calendar.Timezone
	if timezone != "" && timezonePattern.MatchString(timezone) {
		tz = timezone
	}

	embed, ok := CalendarEmbedURL(s.calendar.EmbedURL, tz)
	return domain.Scheduling{
		Configured: ok,
		EmbedURL:   embed,
		Benefits:   slices.Clone(s.content.SchedulingBenefits),
	}
}

// CalendarEmbedURL returns the iframe URL for the booking calendar with an
// optional timezone query parameter. It reports false when no usable
// calendar is configured.
func CalendarEmbedURL(base, timezone string) (string, bool) {
	if base == "" || strings.Contains(base, calendarPlaceholder) {
		return "", false
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}
	if timezone != "" {
		q := u.Query()
		q.Set("timezone", timezone)
		u.RawQuery = q.Encode()
	}
	return u.String(), true
}
