package config

// Plan is the billing tier a deployment runs under. There is no per-user
// billing; the plan is fixed configuration so request handling never consults
// ambient global state.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

type Feature string

const (
	FeatureUnlimitedMeetups Feature = "unlimited_meetups"
	FeatureEmailInvites     Feature = "email_invites"
	FeatureNoAds            Feature = "no_ads"
)

var planFeatures = map[Plan][]Feature{
	PlanFree: {FeatureEmailInvites},
	PlanPro:  {FeatureUnlimitedMeetups, FeatureEmailInvites, FeatureNoAds},
}

func (p Plan) Valid() bool {
	_, ok := planFeatures[p]
	return ok
}

func (p Plan) HasFeature(f Feature) bool {
	for _, feature := range planFeatures[p] {
		if feature == f {
			return true
		}
	}
	return false
}
