package statemachine

import (
	"errors"
	"foodshare-api/models"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.DonationStatus
	To    models.DonationStatus
	Actor string // "ngo", "admin"
}

// validTransitions is the normal (non-override) lifecycle definition
var validTransitions = []Transition{
	// NGO claims an active donation
	{From: models.StatusActive, To: models.StatusClaimed, Actor: "ngo"},
	// Admin marks a claimed donation as picked up and done
	{From: models.StatusClaimed, To: models.StatusCompleted, Actor: "admin"},
	// Admin takes down an unclaimed donation
	{From: models.StatusActive, To: models.StatusRemoved, Actor: "admin"},
	{From: models.StatusClaimed, To: models.StatusRemoved, Actor: "admin"},
}

// allStatuses is the full status set the admin override may write
var allStatuses = map[models.DonationStatus]bool{
	models.StatusActive:    true,
	models.StatusClaimed:   true,
	models.StatusCompleted: true,
	models.StatusRemoved:   true,
}

type transitionKey struct {
	From  models.DonationStatus
	To    models.DonationStatus
	Actor string
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidStatus reports whether s is one of the four donation statuses.
// The admin override accepts any of them regardless of the current state.
func ValidStatus(s models.DonationStatus) bool {
	return allStatuses[s]
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.DonationStatus) []models.DonationStatus {
	var nexts []models.DonationStatus
	seen := map[models.DonationStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.DonationStatus, actor string) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.DonationStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the normal lifecycle for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
