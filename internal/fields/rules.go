package fields

import "github.com/joseph-ayodele/resume-extractor/constants"

// PhoneBoostRules adds Bonus to a phone candidate whose digits start with
// one of CountryCodes or whose first digit is in LeadingDigits.
type PhoneBoostRules struct {
	CountryCodes  []string
	LeadingDigits string
	Bonus         int
}

// Rules configures the pattern extractors. It is copied on construction.
type Rules struct {
	SocialDomains  []string
	PhoneBoost     PhoneBoostRules
	PhoneMinDigits int
	PhoneMaxDigits int
}

// DefaultRules returns the reference allow-list and the 91 / 6-9 phone boost.
func DefaultRules() Rules {
	return Rules{
		SocialDomains: constants.SocialDomains(),
		PhoneBoost: PhoneBoostRules{
			CountryCodes:  []string{constants.DefaultPhoneCountryCode},
			LeadingDigits: constants.DefaultPhoneLeadingDigits,
			Bonus:         constants.DefaultPhoneBonus,
		},
		PhoneMinDigits: constants.DefaultPhoneMinDigits,
		PhoneMaxDigits: constants.DefaultPhoneMaxDigits,
	}
}

func (r Rules) clone() Rules {
	out := r
	out.SocialDomains = constants.CanonicalizeList(r.SocialDomains)
	out.PhoneBoost.CountryCodes = append([]string(nil), r.PhoneBoost.CountryCodes...)
	if out.PhoneMinDigits <= 0 {
		out.PhoneMinDigits = constants.DefaultPhoneMinDigits
	}
	if out.PhoneMaxDigits < out.PhoneMinDigits {
		out.PhoneMaxDigits = out.PhoneMinDigits
	}
	return out
}
