package service

import "github.com/campus-rooms/booking-service/internal/models"

// ruleCandidate is the view of a booking request that auto-approval rules are
// evaluated against.
type ruleCandidate struct {
	OrganizationID uint
	RoomID         uint
	UserID         uint
	// Duration of the requested slot in minutes.
	Duration int
	// StartClock is the request's start time as a zero-padded "HH:MM" string.
	StartClock string
}

// matchRule returns the first rule all of whose set scoping predicates hold
// for the candidate. Rules must already be ordered by creation time; the
// first match wins and later rules are not evaluated.
func matchRule(rules []models.AutoApprovalRule, c ruleCandidate) (*models.AutoApprovalRule, bool) {
	for i := range rules {
		if ruleMatches(&rules[i], c) {
			return &rules[i], true
		}
	}
	return nil, false
}

func ruleMatches(r *models.AutoApprovalRule, c ruleCandidate) bool {
	if r.OrganizationID != nil && *r.OrganizationID != c.OrganizationID {
		return false
	}
	if r.RoomID != nil && *r.RoomID != c.RoomID {
		return false
	}
	if r.UserID != nil && *r.UserID != c.UserID {
		return false
	}
	if r.MaxDuration != nil && c.Duration > *r.MaxDuration {
		return false
	}
	// Zero-padded "HH:MM" strings order the same lexicographically as
	// chronologically, so plain string comparison suffices. The two bounds
	// are independent: a window with StartHour > EndHour does not wrap past
	// midnight and can never match.
	if r.StartHour != nil && c.StartClock < *r.StartHour {
		return false
	}
	if r.EndHour != nil && c.StartClock > *r.EndHour {
		return false
	}
	return true
}
