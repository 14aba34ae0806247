package review

import (
	"fmt"

	"github.com/pkg/errors"
)

// ScopeKind selects which reviews a list shows.
type ScopeKind int

const (
	KindAll ScopeKind = iota
	KindUser
	KindTeacher
	KindSearch
)

// Scope is the navigation key of a review list.
type Scope struct {
	Kind   ScopeKind
	ID     int           // user or teacher id
	Params *SearchParams // KindSearch only
}

var ScopeAll = Scope{Kind: KindAll}

func ScopeUser(id int) Scope    { return Scope{Kind: KindUser, ID: id} }
func ScopeTeacher(id int) Scope { return Scope{Kind: KindTeacher, ID: id} }

func ScopeSearch(p SearchParams) Scope {
	return Scope{Kind: KindSearch, Params: &p}
}

func (s Scope) String() string {
	switch s.Kind {
	case KindUser:
		return fmt.Sprintf("user:%d", s.ID)
	case KindTeacher:
		return fmt.Sprintf("teacher:%d", s.ID)
	case KindSearch:
		return "search"
	default:
		return "all"
	}
}

// LabelState tells "no data yet" apart from "confirmed absent".
type LabelState int

const (
	LabelPending  LabelState = iota // nothing resolved yet
	LabelResolved                   // display name known
	LabelNotFound                   // the server confirmed the record does not exist
	LabelFallback                   // the lookup failed; Text is id based
)

var labelStates = [...]string{"pending", "resolved", "not_found", "fallback"}

func (s LabelState) String() string {
	if int(s) < len(labelStates) {
		return labelStates[s]
	}
	return "unknown"
}

func (s LabelState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *LabelState) UnmarshalText(b []byte) error {
	for i, name := range labelStates {
		if string(b) == name {
			*s = LabelState(i)
			return nil
		}
	}
	return errors.Errorf("unknown label state %q", b)
}

// Label is the display name of the record a scoped list belongs to.
type Label struct {
	State LabelState `json:"state"`
	Text  string     `json:"text"`
}

// Title is the heading of a list in scope s.
func (l Label) Title(s Scope) string {
	var base string
	switch s.Kind {
	case KindUser:
		base = "Reviews by user"
	case KindTeacher:
		base = "Reviews of teacher"
	case KindSearch:
		return "Search results"
	default:
		return "All reviews"
	}
	switch l.State {
	case LabelPending:
		return base
	default:
		return base + ": " + l.Text
	}
}

func resolvedLabel(text string) Label {
	return Label{State: LabelResolved, Text: text}
}

func notFoundLabel(s Scope, reason string) Label {
	what := "User"
	if s.Kind == KindTeacher {
		what = "Teacher"
	}
	return Label{State: LabelNotFound, Text: fmt.Sprintf("%s ID: %d (%s)", what, s.ID, reason)}
}

func fallbackLabel(s Scope) Label {
	return Label{State: LabelFallback, Text: fmt.Sprintf("ID: %d", s.ID)}
}
