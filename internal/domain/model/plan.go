package model

import (
	"regexp"
	"strconv"
	"strings"
)

// PlanLevel is the marketing tier of a plan.
type PlanLevel string

const (
	LevelPreferencial PlanLevel = "Preferencial"
	LevelPremium      PlanLevel = "Premium"
	LevelVIP          PlanLevel = "VIP"
	LevelAvulso       PlanLevel = "Avulso"
)

// People is the covered-people count of a plan. Only two values exist
// in the catalog: individual (1) and family (up to 4).
type People int

const (
	PeopleOne  People = 1
	PeopleFour People = 4
)

// Duration is the plan duration in months.
type Duration int

const (
	DurationMonthly  Duration = 1
	DurationQuarter  Duration = 3
	DurationSemester Duration = 6
	DurationAnnual   Duration = 12
)

// RawPlan is the catalog record as served by the upstream plan API.
// The name is free text and is the only source of people/duration/tier
// signals; there are no dedicated columns for them upstream.
type RawPlan struct {
	ID              string  `json:"id"`
	Name            string  `json:"nome"`
	StripeProductID string  `json:"stripe_product_id"`
	StripePriceID   string  `json:"stripe_price_id"`
	MaxDependents   int     `json:"max_dependentes"`
	MaxSessionsMo   *int    `json:"max_sessoes_mes"`
	Active          bool    `json:"ativo"`
	Price           Price   `json:"valor"`
	PlanGroup       string  `json:"grupo_plano"`
}

// Price tolerates both JSON encodings seen upstream: a plain number and a
// quoted decimal string. Anything unparseable decodes to 0 rather than
// failing the whole catalog fetch.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		*p = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v != v {
		*p = 0
		return nil
	}
	*p = Price(v)
	return nil
}

// NormalizedPlan is the canonical plan shape used everywhere past the
// catalog fetch boundary. Constructed fresh on every fetch, never mutated.
type NormalizedPlan struct {
	ID             string    `json:"id"`
	StripePriceID  string    `json:"stripe_price_id"`
	OriginalName   string    `json:"nome_original"`
	Group          string    `json:"grupo"`
	People         People    `json:"pessoas"`
	DurationMonths Duration  `json:"duracao_meses"`
	Level          PlanLevel `json:"nivel"`
	MaxDependents  int       `json:"max_dependentes"`
	MaxSessionsMo  *int      `json:"max_sessoes_mes"`
	TotalPrice     float64   `json:"preco_total"`
	MonthlyPrice   float64   `json:"preco_mensal_equivalente"`
	SingleMonth    bool      `json:"is_mensal_unico"`
}

// NormalizePlans maps raw catalog records into the canonical shape, one to
// one, preserving order. It never fails: unparseable name signals fall back
// to documented defaults because they drive marketing display, not billing.
// The price is passed through from the trusted source; a zero price means
// the upstream record was broken and callers should treat it as suspect.
func NormalizePlans(raw []RawPlan) []NormalizedPlan {
	out := make([]NormalizedPlan, 0, len(raw))
	for _, item := range raw {
		out = append(out, normalizePlan(item))
	}
	return out
}

func normalizePlan(item RawPlan) NormalizedPlan {
	people := parsePeople(item.Name)
	duration := parseDuration(item.Name)
	level := parseLevel(item.Name, duration)

	total := float64(item.Price)
	if total < 0 || total != total { // negative or NaN
		total = 0
	}
	monthly := total
	if duration > 1 {
		monthly = total / float64(duration)
	}

	group := item.PlanGroup
	if group == "" {
		group = "plano 1"
	}

	maxDeps := item.MaxDependents
	if maxDeps < 0 {
		maxDeps = 0
	}

	return NormalizedPlan{
		ID:             item.ID,
		StripePriceID:  item.StripePriceID,
		OriginalName:   item.Name,
		Group:          group,
		People:         people,
		DurationMonths: duration,
		Level:          level,
		MaxDependents:  maxDeps,
		MaxSessionsMo:  item.MaxSessionsMo,
		TotalPrice:     total,
		MonthlyPrice:   monthly,
		SingleMonth:    duration == DurationMonthly,
	}
}

var monthsPattern = regexp.MustCompile(`\((\d+)\s*meses?\)`)

func parsePeople(name string) People {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "1 pessoa") || strings.Contains(lower, "uma pessoa") {
		return PeopleOne
	}
	if strings.Contains(lower, "4 pessoas") || strings.Contains(lower, "até 4") {
		return PeopleFour
	}
	return PeopleOne
}

// parseDuration cascades from the most specific signal to the least:
// an explicit "(N meses)" marker, then single-month phrases, then the
// absence of any month token (implicit monthly plan), then a final
// default of six months.
func parseDuration(name string) Duration {
	lower := strings.ToLower(name)

	if m := monthsPattern.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			switch Duration(n) {
			case DurationMonthly, DurationQuarter, DurationSemester, DurationAnnual:
				return Duration(n)
			}
		}
	}

	if strings.Contains(lower, "mês único") || strings.Contains(lower, "consulta única") {
		return DurationMonthly
	}

	if !strings.Contains(lower, "meses") && !strings.Contains(lower, "mês") {
		return DurationMonthly
	}

	return DurationSemester
}

// parseLevel derives the tier from the duration. "consulta única" plans are
// always Avulso, whatever else the name says. The name-scan fallback only
// runs when the tier words are the last signal left.
func parseLevel(name string, duration Duration) PlanLevel {
	lower := strings.ToLower(name)

	if strings.Contains(lower, "consulta única") {
		return LevelAvulso
	}

	switch duration {
	case DurationMonthly:
		return LevelPremium
	case DurationQuarter:
		return LevelPreferencial
	case DurationSemester:
		return LevelPremium
	case DurationAnnual:
		return LevelVIP
	}

	if strings.Contains(lower, "preferencial") {
		return LevelPreferencial
	}
	if strings.Contains(lower, "premium") {
		return LevelPremium
	}
	if strings.Contains(lower, "vip") {
		return LevelVIP
	}
	return LevelPremium
}
