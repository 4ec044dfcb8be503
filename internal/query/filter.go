// Package query turns untrusted URL query parameters into typed
// filters and computes pagination windows. Malformed or unrecognized
// parameters are silently dropped, never rejected: invalid input
// degrades to "filter absent".
package query

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/David-H-L/Backend/internal/models"
)

const (
	// PostDefaultLimit and PostMaxLimit bound the post listing window.
	PostDefaultLimit = 10
	PostMaxLimit     = 50
	// FlatListLimit is the absolute cap for unpaginated listings
	// (users, votes).
	FlatListLimit = 100
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EmailValid reports whether s looks like local@domain.tld.
func EmailValid(s string) bool { return emailPattern.MatchString(s) }

// SortOrder is a recognized post sort. Absent defaults to recent.
type SortOrder string

const (
	SortRecent  SortOrder = "recent"
	SortPopular SortOrder = "popular"
)

// PostFilter selects and windows a post listing. Zero values mean
// "not set".
type PostFilter struct {
	Status models.PostStatus
	UserID string
	Sort   SortOrder
	Page   int
	Limit  int
}

// NormalizePostFilter validates post-listing query parameters.
// Recognized: status, userId, sort, page, limit.
func NormalizePostFilter(values url.Values) PostFilter {
	var f PostFilter

	if s := models.PostStatus(values.Get("status")); s.Valid() {
		f.Status = s
	}
	if raw := values.Get("userId"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			f.UserID = id.String()
		}
	}
	if s := values.Get("sort"); s == string(SortRecent) || s == string(SortPopular) {
		f.Sort = SortOrder(s)
	}
	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		f.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit > 0 && limit <= PostMaxLimit {
		f.Limit = limit
	}
	return f
}

// UserFilter selects a user listing. String fields are matched as
// case-insensitive substrings downstream.
type UserFilter struct {
	FirstName string
	LastName  string
	Email     string
	Role      models.Role
	Country   string
	City      string
}

// NormalizeUserFilter validates user-listing query parameters.
// Recognized: firstName, lastName, email, role, country, city.
func NormalizeUserFilter(values url.Values) UserFilter {
	var f UserFilter

	f.FirstName = trimmed(values.Get("firstName"), 50)
	f.LastName = trimmed(values.Get("lastName"), 50)
	f.Country = trimmed(values.Get("country"), 50)
	f.City = trimmed(values.Get("city"), 50)

	if email := trimmed(values.Get("email"), 100); email != "" && EmailValid(email) {
		f.Email = email
	}
	if r := models.Role(values.Get("role")); r.Valid() {
		f.Role = r
	}
	return f
}

// VoteFilter selects a vote listing. Finished is a tri-state: nil
// means the parameter was absent.
type VoteFilter struct {
	Name     string
	Finished *bool
	StartAt  *time.Time
	EndsAt   *time.Time
}

// NormalizeVoteFilter validates vote-listing query parameters.
// Recognized: name, status, startAt, endsAt. A present status maps
// "true" to finished and anything else to unfinished.
func NormalizeVoteFilter(values url.Values) VoteFilter {
	var f VoteFilter

	f.Name = trimmed(values.Get("name"), 255)
	if _, ok := values["status"]; ok {
		finished := values.Get("status") == "true"
		f.Finished = &finished
	}
	if t, ok := parseDate(values.Get("startAt")); ok {
		f.StartAt = &t
	}
	if t, ok := parseDate(values.Get("endsAt")); ok {
		f.EndsAt = &t
	}
	return f
}

// trimmed drops the value when empty or over max characters. Bounds
// count runes so accented input is not penalized.
func trimmed(s string, max int) string {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > max {
		return ""
	}
	return s
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
