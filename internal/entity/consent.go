package entity

import "time"

type Consent struct {
	ConsentType string    `json:"consent_type"`
	Consented   bool      `json:"consented"`
	ConsentedAt time.Time `json:"consented_at"`
}

const (
	ConsentTermsLabel      = "Terms of Service and Privacy Policy"
	ConsentBackgroundLabel = "Background Check"
	ConsentUpdatesLabel    = "Receive Updates"
)

// Registration forms for each kind submit their own consent tokens.
var consentLabels = map[UserKind]map[string]string{
	KindAdopter: {
		"terms_agreed":     ConsentTermsLabel,
		"background_check": ConsentBackgroundLabel,
		"receive_updates":  ConsentUpdatesLabel,
	},
	KindVolunteer: {
		"agreed_terms":             ConsentTermsLabel,
		"consent_background_check": ConsentBackgroundLabel,
		"wants_updates":            ConsentUpdatesLabel,
	},
	KindStaff: {
		"terms_agreed":     ConsentTermsLabel,
		"background_check": ConsentBackgroundLabel,
		"receive_updates":  ConsentUpdatesLabel,
	},
}

// BuildConsents maps consent tokens through the kind's label table. Unknown
// tokens are kept verbatim.
func BuildConsents(kind UserKind, tokens []string, at time.Time) []Consent {
	labels := consentLabels[kind]
	consents := make([]Consent, 0, len(tokens))
	for _, token := range tokens {
		label, ok := labels[token]
		if !ok {
			label = token
		}
		consents = append(consents, Consent{
			ConsentType: label,
			Consented:   true,
			ConsentedAt: at,
		})
	}
	return consents
}
