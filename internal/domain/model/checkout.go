package model

import "strings"

// LeadCheckoutPayload is the wire shape the lead webhook expects. Field
// names follow the upstream contract verbatim.
type LeadCheckoutPayload struct {
	Name           string  `json:"nome"`
	Email          string  `json:"email"`
	Phone          string  `json:"telefone"`
	StripePriceID  string  `json:"stripe_price_id"`
	Vendor         *string `json:"vendedor"`
	UTMQuery       *string `json:"URL_utmfy"`
	IdempotencyKey string  `json:"idempotency_key,omitempty"`
}

// Lead is the validated lead-capture form.
type Lead struct {
	Name  string `json:"nome" validate:"required,min=3"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"telefone" validate:"required,intlphone"`
}

// NewLeadCheckoutPayload assembles the lead webhook payload for the
// selected plan. Vendor and UTM query are nullable passthroughs captured
// when the funnel session opened.
func NewLeadCheckoutPayload(lead Lead, plan NormalizedPlan, vendor, utmQuery, idemKey string) LeadCheckoutPayload {
	p := LeadCheckoutPayload{
		Name:           strings.TrimSpace(lead.Name),
		Email:          strings.TrimSpace(lead.Email),
		Phone:          strings.TrimSpace(lead.Phone),
		StripePriceID:  plan.StripePriceID,
		IdempotencyKey: idemKey,
	}
	if vendor != "" {
		p.Vendor = &vendor
	}
	if utmQuery != "" {
		p.UTMQuery = &utmQuery
	}
	return p
}

// WirePerson is a dependent as the registration webhook expects it:
// document digits-only, phone split into calling code and local remainder.
type WirePerson struct {
	Name           string `json:"nome"`
	Phone          string `json:"telefone"`
	CountryCode    string `json:"codigoPais"`
	Email          string `json:"email"`
	Gender         string `json:"genero"`
	DocumentType   int    `json:"tipoDocumento"`
	DocumentNumber string `json:"numeroDocumento"`
}

// WireTitular mirrors Titular on the wire, digits-only document.
type WireTitular struct {
	DocumentType   int    `json:"tipoDocumento"`
	DocumentNumber string `json:"numeroDocumento"`
	Gender         string `json:"genero"`
}

// RegistrationPayload is the final POST body for the dependents webhook.
type RegistrationPayload struct {
	Titular        WireTitular  `json:"titular"`
	Dependentes    []WirePerson `json:"dependentes"`
	Plan           string       `json:"plano"`
	DependentCount int          `json:"quantidadeDependentes"`
	CustomerStripe string       `json:"customerStripe"`
	IdempotencyKey string       `json:"idempotency_key,omitempty"`
}

// NewRegistrationPayload assembles the registration webhook payload:
// documents stripped to digits, phones split, quota and customer reference
// attached.
func NewRegistrationPayload(form RegistrationForm, quota DependentQuota, customerRef, idemKey string) RegistrationPayload {
	deps := make([]WirePerson, 0, len(form.Dependentes))
	for _, d := range form.Dependentes {
		code, local := SplitPhone(d.Phone)
		doc := d.DocumentNumber
		if d.DocumentType != DocPassport {
			doc = StripDigits(doc)
		}
		deps = append(deps, WirePerson{
			Name:           strings.TrimSpace(d.Name),
			Phone:          local,
			CountryCode:    code,
			Email:          strings.TrimSpace(d.Email),
			Gender:         d.Gender,
			DocumentType:   int(d.DocumentType),
			DocumentNumber: doc,
		})
	}
	titularDoc := form.Titular.DocumentNumber
	if form.Titular.DocumentType != DocPassport {
		titularDoc = StripDigits(titularDoc)
	}
	return RegistrationPayload{
		Titular: WireTitular{
			DocumentType:   int(form.Titular.DocumentType),
			DocumentNumber: titularDoc,
			Gender:         form.Titular.Gender,
		},
		Dependentes:    deps,
		Plan:           form.PlanName,
		DependentCount: quota.Remaining,
		CustomerStripe: customerRef,
		IdempotencyKey: idemKey,
	}
}

// SplitPhone breaks a combined international number into a "+CC" calling
// code and the local remainder. Brazil and the US are the fast paths; any
// other plausible calling code of up to three digits is split generically
// instead of being mislabeled. A number with no leading "+" keeps its raw
// digits under the default Brazilian code.
func SplitPhone(phone string) (countryCode, local string) {
	trimmed := strings.TrimSpace(phone)
	digits := StripDigits(trimmed)

	if !strings.HasPrefix(trimmed, "+") {
		return "+55", digits
	}

	switch {
	case strings.HasPrefix(digits, "55") && len(digits) > 2:
		return "+55", digits[2:]
	case strings.HasPrefix(digits, "1") && len(digits) > 1:
		return "+1", digits[1:]
	}

	// Generic split for other codes. 1 and 7 are the only single-digit
	// calling codes; everything else is treated as two digits, which
	// covers the markets this funnel actually sees.
	if len(digits) > 2 {
		if digits[0] == '7' {
			return "+7", digits[1:]
		}
		return "+" + digits[:2], digits[2:]
	}
	return "+55", digits
}

// WebhookResponse is the shape both submission endpoints answer with. An
// empty body on a 2xx status is implicit success.
type WebhookResponse struct {
	Success bool         `json:"success"`
	Data    *WebhookData `json:"data,omitempty"`
	URL     string       `json:"url,omitempty"`
	Message string       `json:"message,omitempty"`
}

// WebhookData is the nested payload some upstream revisions answer with.
type WebhookData struct {
	CheckoutURL string `json:"checkout_url"`
	URL         string `json:"url"`
}

// RedirectURL extracts the checkout redirect target, preferring the nested
// data.checkout_url, then data.url, then the top-level url.
func (r WebhookResponse) RedirectURL() string {
	if r.Data != nil {
		if r.Data.CheckoutURL != "" {
			return r.Data.CheckoutURL
		}
		if r.Data.URL != "" {
			return r.Data.URL
		}
	}
	return r.URL
}
