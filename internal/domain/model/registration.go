package model

import (
	"strings"
)

// DocumentType is the canonical identity-document enumeration. Earlier
// revisions of the upstream contract reordered SSN/ITIN/Passport while
// reusing the 0-3 codes; this ordering is the canonical one and other
// orderings are a versioned-schema concern for the importer, never merged
// silently.
type DocumentType int

const (
	DocCPF DocumentType = iota
	DocSSN
	DocITIN
	DocPassport
)

func (d DocumentType) Valid() bool { return d >= DocCPF && d <= DocPassport }

func (d DocumentType) String() string {
	switch d {
	case DocCPF:
		return "CPF"
	case DocSSN:
		return "SSN"
	case DocITIN:
		return "ITIN"
	case DocPassport:
		return "PASSAPORTE"
	}
	return "UNKNOWN"
}

// Titular is the account holder. Only the fields the registration webhook
// needs; the holder's name/contact were captured at the lead step.
type Titular struct {
	DocumentType   DocumentType `json:"tipoDocumento"`
	DocumentNumber string       `json:"numeroDocumento" validate:"required,max=50"`
	Gender         string       `json:"genero" validate:"required"`
}

// Dependente is a secondary beneficiary registered under the titular's plan.
type Dependente struct {
	Name           string       `json:"nome" validate:"required,min=2,max=100"`
	Phone          string       `json:"telefone" validate:"required,intlphone"`
	CountryCode    string       `json:"codigoPais"`
	Email          string       `json:"email" validate:"required,email,max=255"`
	Gender         string       `json:"genero" validate:"required"`
	DocumentType   DocumentType `json:"tipoDocumento"`
	DocumentNumber string       `json:"numeroDocumento" validate:"required,max=50"`
}

// RegistrationForm is the validated submission from the dependents page.
type RegistrationForm struct {
	Titular     Titular      `json:"titular"`
	Dependentes []Dependente `json:"dependentes"`
	PlanName    string       `json:"plano"`
}

// RemainingSlots computes how many dependent slots are still open.
// Never negative: an over-registered customer simply has zero left.
func RemainingSlots(maxDependents, registered int) int {
	if maxDependents < 0 {
		maxDependents = 0
	}
	if registered < 0 {
		registered = 0
	}
	if registered >= maxDependents {
		return 0
	}
	return maxDependents - registered
}

// DependentQuota is the reconciled quota presented to the registration form.
type DependentQuota struct {
	MaxDependents int  `json:"max_dependentes"`
	Registered    int  `json:"cadastrados"`
	Remaining     int  `json:"restantes"`
	Degraded      bool `json:"degradado"`
}

// NewDependentQuota reconciles a plan's allowance with the registry count.
func NewDependentQuota(maxDependents, registered int) DependentQuota {
	return DependentQuota{
		MaxDependents: maxDependents,
		Registered:    registered,
		Remaining:     RemainingSlots(maxDependents, registered),
	}
}

// Exhausted reports the expected terminal state where a plan allows
// dependents but every slot is taken. Informational, not an error.
func (q DependentQuota) Exhausted() bool {
	return q.MaxDependents > 0 && q.Remaining == 0
}

// StripDigits drops every non-digit rune. Document numbers cross the wire
// digits-only regardless of the input mask.
func StripDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
