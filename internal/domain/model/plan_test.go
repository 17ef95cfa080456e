package model

import (
	"encoding/json"
	"math"
	"testing"
)

func TestNormalizePlans_OneToOneAndOrder(t *testing.T) {
	t.Parallel()

	raw := []RawPlan{
		{ID: "a", Name: "Plano 1 pessoa - Premium (6 meses)", Price: 179.4},
		{ID: "b", Name: "Plano 2 para até 4 pessoas - VIP (12 meses)", Price: 598.8},
		{ID: "c", Name: "Plano 3 consulta única: $79,90", Price: 79.9},
	}
	got := NormalizePlans(raw)
	if len(got) != len(raw) {
		t.Fatalf("expected %d plans, got %d", len(raw), len(got))
	}
	for i := range raw {
		if got[i].ID != raw[i].ID {
			t.Fatalf("order not preserved at %d: want %q got %q", i, raw[i].ID, got[i].ID)
		}
	}
}

func TestNormalizePlans_EnumeratedDomains(t *testing.T) {
	t.Parallel()

	names := []string{
		"", "Plano 1 pessoa - Premium (6 meses)", "qualquer coisa",
		"Plano 2 para até 4 pessoas: $49,90", "(99 meses) estranho",
		"ÃÂÃÂ unicode ÃÂ", "Plano 3 consulta única: $79,90",
		"plano mensal simples", "Plano X (3 meses)", "Plano Y (12 meses)",
	}
	for _, name := range names {
		p := NormalizePlans([]RawPlan{{Name: name}})[0]
		if p.People != PeopleOne && p.People != PeopleFour {
			t.Fatalf("name %q: people %d outside {1,4}", name, p.People)
		}
		switch p.DurationMonths {
		case DurationMonthly, DurationQuarter, DurationSemester, DurationAnnual:
		default:
			t.Fatalf("name %q: duration %d outside {1,3,6,12}", name, p.DurationMonths)
		}
		switch p.Level {
		case LevelPreferencial, LevelPremium, LevelVIP, LevelAvulso:
		default:
			t.Fatalf("name %q: level %q unknown", name, p.Level)
		}
	}
}

func TestNormalizePlans_DurationAndTier(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		duration Duration
		level    PlanLevel
	}{
		{"Plano 1 pessoa - Premium (6 meses)", 6, LevelPremium},
		{"Plano 1 pessoa - VIP (12 meses)", 12, LevelVIP},
		{"Plano 1 pessoa - Preferencial (3 meses)", 3, LevelPreferencial},
		{"Plano 3 consulta única: $79,90", 1, LevelAvulso},
		{"consulta única (6 meses)", 6, LevelAvulso},
		{"Plano 4 para até 4 pessoas - mês único: $89,90", 1, LevelPremium},
		{"Plano 1 pessoa: $29,90", 1, LevelPremium},
		{"Plano estranho com meses mas sem padrão", 6, LevelPremium},
		{"(99 meses) fora da faixa", 6, LevelPremium},
	}
	for _, tc := range cases {
		p := NormalizePlans([]RawPlan{{Name: tc.name}})[0]
		if p.DurationMonths != tc.duration {
			t.Fatalf("%q: duration want %d got %d", tc.name, tc.duration, p.DurationMonths)
		}
		if p.Level != tc.level {
			t.Fatalf("%q: level want %q got %q", tc.name, tc.level, p.Level)
		}
	}
}

func TestNormalizePlans_People(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		people People
	}{
		{"Plano 1 pessoa - Premium (6 meses)", 1},
		{"Plano para uma pessoa", 1},
		{"Plano 2 para até 4 pessoas: $49,90", 4},
		{"até 4 em família", 4},
		{"sem sinal nenhum", 1},
	}
	for _, tc := range cases {
		p := NormalizePlans([]RawPlan{{Name: tc.name}})[0]
		if p.People != tc.people {
			t.Fatalf("%q: people want %d got %d", tc.name, tc.people, p.People)
		}
	}
}

func TestNormalizePlans_MonthlyEquivalent(t *testing.T) {
	t.Parallel()

	p := NormalizePlans([]RawPlan{{Name: "Plano 1 pessoa - Premium (6 meses)", Price: 299.40}})[0]
	if math.Abs(p.MonthlyPrice-49.90) > 1e-9 {
		t.Fatalf("monthly equivalent want 49.90 got %v", p.MonthlyPrice)
	}
	if p.TotalPrice != 299.40 {
		t.Fatalf("total want 299.40 got %v", p.TotalPrice)
	}
	if p.SingleMonth {
		t.Fatalf("6-month plan flagged single-month")
	}
}

func TestNormalizePlans_FamilyMonthlyEndToEnd(t *testing.T) {
	t.Parallel()

	p := NormalizePlans([]RawPlan{{
		Name:          "Plano 2 para até 4 pessoas: $49,90",
		Price:         49.9,
		MaxDependents: 4,
	}})[0]
	if p.People != 4 || p.DurationMonths != 1 || p.Level != LevelPremium {
		t.Fatalf("unexpected normalization: %+v", p)
	}
	if p.TotalPrice != 49.9 || p.MonthlyPrice != 49.9 {
		t.Fatalf("price passthrough broken: %+v", p)
	}
	if !p.SingleMonth {
		t.Fatalf("monthly plan not flagged single-month")
	}
	if p.MaxDependents != 4 {
		t.Fatalf("max dependents want 4 got %d", p.MaxDependents)
	}
}

func TestNormalizePlans_DefensivePrices(t *testing.T) {
	t.Parallel()

	for _, price := range []float64{0, -1, math.NaN()} {
		p := NormalizePlans([]RawPlan{{Name: "Plano qualquer", Price: Price(price)}})[0]
		if p.TotalPrice != 0 {
			t.Fatalf("price %v: total want 0 got %v", price, p.TotalPrice)
		}
		if p.MonthlyPrice != 0 {
			t.Fatalf("price %v: monthly want 0 got %v", price, p.MonthlyPrice)
		}
	}
}

func TestPrice_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want float64
	}{
		{`{"valor": 49.9}`, 49.9},
		{`{"valor": "299.40"}`, 299.4},
		{`{"valor": ""}`, 0},
		{`{"valor": null}`, 0},
		{`{"valor": "abc"}`, 0},
	}
	for _, tc := range cases {
		var rp RawPlan
		if err := json.Unmarshal([]byte(tc.in), &rp); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.in, err)
		}
		if float64(rp.Price) != tc.want {
			t.Fatalf("%s: price want %v got %v", tc.in, tc.want, rp.Price)
		}
	}
}

func TestNormalizePlans_GroupDefault(t *testing.T) {
	t.Parallel()

	p := NormalizePlans([]RawPlan{{Name: "x"}})[0]
	if p.Group != "plano 1" {
		t.Fatalf("group default want %q got %q", "plano 1", p.Group)
	}
	p = NormalizePlans([]RawPlan{{Name: "x", PlanGroup: "plano 3"}})[0]
	if p.Group != "plano 3" {
		t.Fatalf("group want %q got %q", "plano 3", p.Group)
	}
}
