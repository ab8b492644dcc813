package model

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

var statuses = []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

// ParseStatus accepts any casing and returns the canonical form.
func ParseStatus(value string) (Status, error) {
	value = strings.TrimSpace(value)

	for _, status := range statuses {
		if strings.EqualFold(value, string(status)) {
			return status, nil
		}
	}

	return "", fmt.Errorf("unknown booking status %q", value)
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type ActorRole string

const (
	ActorClient ActorRole = "client"
	ActorGuide  ActorRole = "guide"
)

func ParseActorRole(value string) (ActorRole, error) {
	switch ActorRole(strings.ToLower(strings.TrimSpace(value))) {
	case ActorClient:
		return ActorClient, nil
	case ActorGuide:
		return ActorGuide, nil
	default:
		return "", fmt.Errorf("role %q cannot change booking status", value)
	}
}

type transition struct {
	from Status
	to   Status
}

// transitions lists every permitted status change and who may request it.
// Confirmed -> Cancelled by a client additionally requires the confirmed cancellation policy.
var transitions = map[transition][]ActorRole{
	{StatusPending, StatusConfirmed}:   {ActorGuide},
	{StatusPending, StatusCancelled}:   {ActorGuide, ActorClient},
	{StatusConfirmed, StatusCompleted}: {ActorGuide},
	{StatusConfirmed, StatusCancelled}: {ActorClient},
}

// Policy holds the configurable parts of the state machine.
type Policy struct {
	AllowConfirmedCancellation bool
}

// CanTransition reports whether actor may move a booking from one status to another.
func (p Policy) CanTransition(from, to Status, actor ActorRole) bool {
	actors, ok := transitions[transition{from, to}]
	if !ok {
		return false
	}

	if from == StatusConfirmed && to == StatusCancelled && !p.AllowConfirmedCancellation {
		return false
	}

	for _, allowed := range actors {
		if allowed == actor {
			return true
		}
	}

	return false
}
