package kitchenstatus

import (
	"strings"
)

type Status struct {
	Name string
	rank int
}

func (s Status) Code() string {
	return s.Name
}

func (s Status) Label() string {
	if len(s.Name) == 0 {
		return ""
	}
	return strings.ToUpper(s.Name[:1]) + s.Name[1:]
}

// Terminal reports whether no further transition leaves this status.
func (s Status) Terminal() bool {
	return s.Name == Statuses.Bumped.Name
}

// After reports whether s comes strictly later than other in the line flow.
func (s Status) After(other Status) bool {
	return s.rank > other.rank
}

type Enum struct {
	Queued  Status
	Cooking Status
	Bumped  Status
}

var Statuses = Enum{
	Queued:  Status{Name: "queued", rank: 0},
	Cooking: Status{Name: "cooking", rank: 1},
	Bumped:  Status{Name: "bumped", rank: 2},
}

var All = []Status{
	Statuses.Queued,
	Statuses.Cooking,
	Statuses.Bumped,
}

// ByName returns the status for a given name, or nil if not found
func ByName(name string) *Status {
	for _, s := range All {
		if s.Name == name {
			return &s
		}
	}
	return nil
}

// Normalize maps an empty or unknown stored status to queued.
func Normalize(name string) Status {
	if s := ByName(name); s != nil {
		return *s
	}
	return Statuses.Queued
}
