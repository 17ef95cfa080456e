package model

import (
	"time"

	"telemed-checkout/internal/domain"
)

// FunnelState is one visitor's position in the plan wizard. It replaces the
// ad hoc page-level store with an explicit value that only changes through
// Reduce, so every transition is auditable and testable in isolation.
type FunnelState struct {
	SessionID string    `json:"session_id"`
	People    People    `json:"people"`
	Duration  Duration  `json:"duration"`
	Level     PlanLevel `json:"level"`
	Avulso    bool      `json:"avulso"`
	Vendor    string    `json:"vendedor,omitempty"`
	UTMQuery  string    `json:"url_utmfy,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewFunnelState opens a session at the wizard's starting selection.
func NewFunnelState(sessionID, vendor, utmQuery string) FunnelState {
	now := time.Now()
	return FunnelState{
		SessionID: sessionID,
		People:    PeopleOne,
		Duration:  DurationMonthly,
		Level:     LevelPremium,
		Vendor:    vendor,
		UTMQuery:  utmQuery,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TransitionKind enumerates the wizard's possible moves.
type TransitionKind string

const (
	SetPeople   TransitionKind = "set_people"
	SetDuration TransitionKind = "set_duration"
	SetLevel    TransitionKind = "set_level"
	SetAvulso   TransitionKind = "set_avulso"
)

// Transition is one wizard move. Only the field matching Kind is read.
type Transition struct {
	Kind     TransitionKind `json:"kind"`
	People   People         `json:"people,omitempty"`
	Duration Duration       `json:"duration,omitempty"`
	Level    PlanLevel      `json:"level,omitempty"`
	Avulso   bool           `json:"avulso,omitempty"`
}

// Reduce applies a transition to a state and returns the next state. It is a
// pure function: the input state is never mutated and invalid transitions
// return it unchanged alongside domain.ErrInvalidArgument.
func Reduce(s FunnelState, t Transition) (FunnelState, error) {
	next := s
	switch t.Kind {
	case SetPeople:
		if t.People != PeopleOne && t.People != PeopleFour {
			return s, domain.ErrInvalidArgument
		}
		next.People = t.People
	case SetDuration:
		switch t.Duration {
		case DurationMonthly, DurationQuarter, DurationSemester, DurationAnnual:
			next.Duration = t.Duration
		default:
			return s, domain.ErrInvalidArgument
		}
	case SetLevel:
		switch t.Level {
		case LevelPreferencial, LevelPremium, LevelVIP:
			next.Level = t.Level
		default:
			// Avulso is not a selectable wizard level; it is a flag.
			return s, domain.ErrInvalidArgument
		}
	case SetAvulso:
		next.Avulso = t.Avulso
	default:
		return s, domain.ErrInvalidArgument
	}
	next.UpdatedAt = time.Now()
	return next, nil
}

// MatchPlan returns the first catalog plan matching the state's selection.
// Avulso plans never match the main wizard path.
func MatchPlan(plans []NormalizedPlan, s FunnelState) (NormalizedPlan, bool) {
	for _, p := range plans {
		if p.Level == LevelAvulso {
			continue
		}
		if p.People == s.People && p.DurationMonths == s.Duration && p.Level == s.Level {
			return p, true
		}
	}
	return NormalizedPlan{}, false
}
