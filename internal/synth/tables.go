package synth

import (
	"fmt"

	"github.com/hcpe/hcpe/internal/domain/campaign"
	"github.com/hcpe/hcpe/internal/domain/engagement"
	"github.com/hcpe/hcpe/internal/domain/hcp"
)

// The correlation chain: specialty → tier → segment → preferred channel.
// Every lookup is an exhaustive switch over the typed enums so an unmapped
// value fails loudly instead of falling through to a default distribution.

var specialtyWeights = []Weighted[hcp.Specialty]{
	{hcp.SpecialtyPrimaryCare, 30},
	{hcp.SpecialtyCardiology, 18},
	{hcp.SpecialtyOncology, 15},
	{hcp.SpecialtyEndocrinology, 14},
	{hcp.SpecialtyNeurology, 12},
	{hcp.SpecialtyPsychiatry, 11},
}

func tierWeights(s hcp.Specialty) []Weighted[int] {
	switch s {
	case hcp.SpecialtyOncology:
		return []Weighted[int]{{1, 40}, {2, 40}, {3, 20}}
	case hcp.SpecialtyCardiology:
		return []Weighted[int]{{1, 35}, {2, 40}, {3, 25}}
	case hcp.SpecialtyEndocrinology:
		return []Weighted[int]{{1, 30}, {2, 45}, {3, 25}}
	case hcp.SpecialtyNeurology:
		return []Weighted[int]{{1, 25}, {2, 45}, {3, 30}}
	case hcp.SpecialtyPsychiatry:
		return []Weighted[int]{{1, 20}, {2, 45}, {3, 35}}
	case hcp.SpecialtyPrimaryCare:
		return []Weighted[int]{{1, 15}, {2, 45}, {3, 40}}
	}
	panic(fmt.Sprintf("synth: no tier weights for specialty %q", s))
}

func segmentWeights(tier int) []Weighted[hcp.Segment] {
	switch tier {
	case 1:
		return []Weighted[hcp.Segment]{
			{hcp.SegmentHighPrescriber, 35},
			{hcp.SegmentAcademicLeader, 25},
			{hcp.SegmentEngagedDigital, 15},
			{hcp.SegmentGrowthPotential, 10},
			{hcp.SegmentTraditionalPreference, 10},
			{hcp.SegmentNewTarget, 5},
		}
	case 2:
		return []Weighted[hcp.Segment]{
			{hcp.SegmentHighPrescriber, 15},
			{hcp.SegmentAcademicLeader, 10},
			{hcp.SegmentEngagedDigital, 20},
			{hcp.SegmentGrowthPotential, 25},
			{hcp.SegmentTraditionalPreference, 15},
			{hcp.SegmentNewTarget, 15},
		}
	case 3:
		return []Weighted[hcp.Segment]{
			{hcp.SegmentHighPrescriber, 5},
			{hcp.SegmentAcademicLeader, 5},
			{hcp.SegmentEngagedDigital, 15},
			{hcp.SegmentGrowthPotential, 25},
			{hcp.SegmentTraditionalPreference, 20},
			{hcp.SegmentNewTarget, 30},
		}
	}
	panic(fmt.Sprintf("synth: no segment weights for tier %d", tier))
}

func channelWeights(s hcp.Segment) []Weighted[hcp.Channel] {
	switch s {
	case hcp.SegmentHighPrescriber:
		return []Weighted[hcp.Channel]{
			{hcp.ChannelRepVisit, 35}, {hcp.ChannelEmail, 20}, {hcp.ChannelPhone, 15},
			{hcp.ChannelDirectMail, 12}, {hcp.ChannelWebinar, 10}, {hcp.ChannelDigitalAd, 8},
		}
	case hcp.SegmentAcademicLeader:
		return []Weighted[hcp.Channel]{
			{hcp.ChannelWebinar, 30}, {hcp.ChannelEmail, 25}, {hcp.ChannelRepVisit, 20},
			{hcp.ChannelDigitalAd, 12}, {hcp.ChannelPhone, 8}, {hcp.ChannelDirectMail, 5},
		}
	case hcp.SegmentEngagedDigital:
		return []Weighted[hcp.Channel]{
			{hcp.ChannelEmail, 30}, {hcp.ChannelDigitalAd, 25}, {hcp.ChannelWebinar, 20},
			{hcp.ChannelRepVisit, 10}, {hcp.ChannelDirectMail, 10}, {hcp.ChannelPhone, 5},
		}
	case hcp.SegmentGrowthPotential:
		return []Weighted[hcp.Channel]{
			{hcp.ChannelEmail, 25}, {hcp.ChannelRepVisit, 25}, {hcp.ChannelPhone, 15},
			{hcp.ChannelDigitalAd, 13}, {hcp.ChannelWebinar, 12}, {hcp.ChannelDirectMail, 10},
		}
	case hcp.SegmentTraditionalPreference:
		return []Weighted[hcp.Channel]{
			{hcp.ChannelRepVisit, 30}, {hcp.ChannelPhone, 25}, {hcp.ChannelDirectMail, 20},
			{hcp.ChannelEmail, 15}, {hcp.ChannelWebinar, 5}, {hcp.ChannelDigitalAd, 5},
		}
	case hcp.SegmentNewTarget:
		return []Weighted[hcp.Channel]{
			{hcp.ChannelEmail, 28}, {hcp.ChannelDigitalAd, 22}, {hcp.ChannelDirectMail, 15},
			{hcp.ChannelRepVisit, 15}, {hcp.ChannelPhone, 10}, {hcp.ChannelWebinar, 10},
		}
	}
	panic(fmt.Sprintf("synth: no channel weights for segment %q", s))
}

// Engagement score: normal draw around a tier base shifted by segment.

func tierEngagementMean(tier int) float64 {
	switch tier {
	case 1:
		return 72
	case 2:
		return 58
	case 3:
		return 45
	}
	panic(fmt.Sprintf("synth: no engagement mean for tier %d", tier))
}

func segmentEngagementModifier(s hcp.Segment) float64 {
	switch s {
	case hcp.SegmentHighPrescriber:
		return 8
	case hcp.SegmentEngagedDigital:
		return 6
	case hcp.SegmentAcademicLeader:
		return 5
	case hcp.SegmentGrowthPotential:
		return 2
	case hcp.SegmentTraditionalPreference:
		return -4
	case hcp.SegmentNewTarget:
		return -8
	}
	panic(fmt.Sprintf("synth: no engagement modifier for segment %q", s))
}

// Prescribing volume: tier-scaled normal draw, floored downstream.

func tierRxVolume(tier int) (mean, stdDev float64) {
	switch tier {
	case 1:
		return 220, 40
	case 2:
		return 130, 30
	case 3:
		return 60, 20
	}
	panic(fmt.Sprintf("synth: no rx volume for tier %d", tier))
}

// Channel touch counts per persona: range by tier, widened for the
// preferred channel.

func tierTouchRange(tier int) (lo, hi int) {
	switch tier {
	case 1:
		return 8, 25
	case 2:
		return 5, 18
	case 3:
		return 2, 12
	}
	panic(fmt.Sprintf("synth: no touch range for tier %d", tier))
}

// Stimuli volume per HCP over the modeled window.

func tierStimulusRange(tier int) (lo, hi int) {
	switch tier {
	case 1:
		return 50, 80
	case 2:
		return 30, 50
	case 3:
		return 15, 30
	}
	panic(fmt.Sprintf("synth: no stimulus range for tier %d", tier))
}

// Predicted impact: tier base engagement delta scaled by channel.

func tierImpactBase(tier int) float64 {
	switch tier {
	case 1:
		return 8
	case 2:
		return 5
	case 3:
		return 3
	}
	panic(fmt.Sprintf("synth: no impact base for tier %d", tier))
}

func channelImpactMultiplier(c hcp.Channel) float64 {
	switch c {
	case hcp.ChannelRepVisit:
		return 1.5
	case hcp.ChannelWebinar:
		return 1.3
	case hcp.ChannelPhone:
		return 1.1
	case hcp.ChannelEmail:
		return 1.0
	case hcp.ChannelDigitalAd:
		return 0.7
	case hcp.ChannelDirectMail:
		return 0.6
	}
	panic(fmt.Sprintf("synth: no impact multiplier for channel %q", c))
}

// Response probability factors.

func channelBaseRate(c hcp.Channel) float64 {
	switch c {
	case hcp.ChannelRepVisit:
		return 0.45
	case hcp.ChannelWebinar:
		return 0.35
	case hcp.ChannelPhone:
		return 0.30
	case hcp.ChannelEmail:
		return 0.18
	case hcp.ChannelDigitalAd:
		return 0.08
	case hcp.ChannelDirectMail:
		return 0.05
	}
	panic(fmt.Sprintf("synth: no base rate for channel %q", c))
}

func tierResponseModifier(tier int) float64 {
	switch tier {
	case 1:
		return 1.2
	case 2:
		return 1.0
	case 3:
		return 0.8
	}
	panic(fmt.Sprintf("synth: no response modifier for tier %d", tier))
}

func segmentResponseModifier(s hcp.Segment) float64 {
	switch s {
	case hcp.SegmentEngagedDigital:
		return 1.20
	case hcp.SegmentHighPrescriber:
		return 1.15
	case hcp.SegmentAcademicLeader:
		return 1.10
	case hcp.SegmentGrowthPotential:
		return 1.00
	case hcp.SegmentTraditionalPreference:
		return 0.85
	case hcp.SegmentNewTarget:
		return 0.70
	}
	panic(fmt.Sprintf("synth: no response modifier for segment %q", s))
}

// touchDecay is the step function over cumulative touch count. The
// breakpoints are empirically chosen in the upstream analytics model and are
// kept verbatim.
func touchDecay(touchCount int) float64 {
	switch {
	case touchCount <= 3:
		return 1.0
	case touchCount <= 5:
		return 0.9
	case touchCount <= 10:
		return 0.8
	default:
		return 0.6
	}
}

// Stimulus content.

func channelSubtypes(c hcp.Channel) []string {
	switch c {
	case hcp.ChannelEmail:
		return []string{"promotional_email", "educational_email", "event_invite_email"}
	case hcp.ChannelRepVisit:
		return []string{"detail_visit", "lunch_and_learn", "sample_drop"}
	case hcp.ChannelPhone:
		return []string{"rep_call", "msl_call"}
	case hcp.ChannelWebinar:
		return []string{"live_webinar", "on_demand_webinar"}
	case hcp.ChannelDigitalAd:
		return []string{"banner_ad", "social_ad", "search_ad"}
	case hcp.ChannelDirectMail:
		return []string{"brochure", "reprint_mailer"}
	}
	panic(fmt.Sprintf("synth: no subtypes for channel %q", c))
}

var messageVariants = []string{"variant_a", "variant_b", "variant_c", "variant_d"}

var callsToAction = []string{
	"Schedule a rep visit",
	"Download the efficacy summary",
	"Register for the upcoming webinar",
	"Request patient samples",
	"Review the updated dosing guide",
	"Explore patient savings options",
}

var deliveryStatusWeights = []Weighted[engagement.DeliveryStatus]{
	{engagement.DeliveryDelivered, 85},
	{engagement.DeliveryBounced, 5},
	{engagement.DeliveryScheduled, 5},
	{engagement.DeliveryPending, 3},
	{engagement.DeliveryFailed, 2},
}

// Outcome types and their per-channel likelihoods, biased toward low-effort
// responses.

const (
	outcomeOpen            = "open"
	outcomeClick           = "click"
	outcomeContentDownload = "content_download"
	outcomeEventRegistered = "event_registration"
	outcomeMeetingRequest  = "meeting_request"
	outcomeSampleRequest   = "sample_request"
	outcomeCallCompleted   = "call_completed"
	outcomeRxWritten       = "rx_written"
)

func outcomeWeights(c hcp.Channel) []Weighted[string] {
	switch c {
	case hcp.ChannelEmail:
		return []Weighted[string]{
			{outcomeOpen, 55}, {outcomeClick, 25}, {outcomeContentDownload, 10},
			{outcomeEventRegistered, 5}, {outcomeMeetingRequest, 3}, {outcomeRxWritten, 2},
		}
	case hcp.ChannelRepVisit:
		return []Weighted[string]{
			{outcomeSampleRequest, 40}, {outcomeRxWritten, 25},
			{outcomeMeetingRequest, 20}, {outcomeContentDownload, 15},
		}
	case hcp.ChannelPhone:
		return []Weighted[string]{
			{outcomeCallCompleted, 60}, {outcomeMeetingRequest, 20},
			{outcomeSampleRequest, 12}, {outcomeRxWritten, 8},
		}
	case hcp.ChannelWebinar:
		return []Weighted[string]{
			{outcomeEventRegistered, 50}, {outcomeContentDownload, 25},
			{outcomeMeetingRequest, 15}, {outcomeRxWritten, 10},
		}
	case hcp.ChannelDigitalAd:
		return []Weighted[string]{
			{outcomeClick, 70}, {outcomeContentDownload, 20},
			{outcomeEventRegistered, 8}, {outcomeRxWritten, 2},
		}
	case hcp.ChannelDirectMail:
		return []Weighted[string]{
			{outcomeOpen, 50}, {outcomeContentDownload, 25},
			{outcomeSampleRequest, 15}, {outcomeRxWritten, 10},
		}
	}
	panic(fmt.Sprintf("synth: no outcome weights for channel %q", c))
}

// outcomeOffsetDays is the lag window between a stimulus and its outcome.
func outcomeOffsetDays(outcomeType string) (lo, hi int) {
	switch outcomeType {
	case outcomeOpen, outcomeClick:
		return 0, 3
	case outcomeCallCompleted:
		return 0, 2
	case outcomeContentDownload:
		return 0, 5
	case outcomeSampleRequest:
		return 1, 7
	case outcomeMeetingRequest:
		return 1, 10
	case outcomeEventRegistered:
		return 1, 14
	case outcomeRxWritten:
		return 1, 45
	}
	panic(fmt.Sprintf("synth: no offset window for outcome %q", outcomeType))
}

// outcomeValueRange returns the monetary range for outcome types that carry
// one, or ok=false for the rest.
func outcomeValueRange(outcomeType string) (lo, hi float64, ok bool) {
	switch outcomeType {
	case outcomeRxWritten:
		return 150, 600, true
	case outcomeMeetingRequest:
		return 80, 250, true
	case outcomeSampleRequest:
		return 50, 150, true
	}
	return 0, 0, false
}

// highEffortOutcome marks the types that carry a quality score.
func highEffortOutcome(outcomeType string) bool {
	switch outcomeType {
	case outcomeMeetingRequest, outcomeSampleRequest, outcomeCallCompleted, outcomeRxWritten:
		return true
	}
	return false
}

// Campaigns.

var campaignTypeWeights = []Weighted[campaign.Type]{
	{campaign.TypeAwareness, 25},
	{campaign.TypeEducation, 25},
	{campaign.TypeLoyalty, 20},
	{campaign.TypeProductLaunch, 15},
	{campaign.TypeReactivation, 15},
}

// campaignDurationWeeks is the duration window per campaign type.
func campaignDurationWeeks(t campaign.Type) (lo, hi int) {
	switch t {
	case campaign.TypeProductLaunch:
		return 8, 16
	case campaign.TypeAwareness:
		return 4, 12
	case campaign.TypeEducation:
		return 6, 10
	case campaign.TypeLoyalty:
		return 12, 24
	case campaign.TypeReactivation:
		return 4, 8
	}
	panic(fmt.Sprintf("synth: no duration for campaign type %q", t))
}

var campaignGoalWeights = []Weighted[campaign.GoalType]{
	{campaign.GoalEngagementRate, 30},
	{campaign.GoalReach, 30},
	{campaign.GoalConversions, 25},
	{campaign.GoalRxLift, 15},
}

var campaignThemes = []string{
	"Efficacy First", "Patient Outcomes", "Access Matters", "Clinical Confidence",
	"Next Steps", "Proven Results", "Treatment Momentum",
}

var productNames = []string{"Cardivex", "Glucemra", "Neurantis"}

var participationStatusWeights = []Weighted[campaign.ParticipationStatus]{
	{campaign.ParticipationOptedOut, 5},
	{campaign.ParticipationCompleted, 25},
	{campaign.ParticipationActive, 40},
	{campaign.ParticipationEnrolled, 30},
}

var optOutReasons = []string{
	"too_frequent", "not_relevant", "left_practice", "requested_removal",
}

// Geography: a fixed state → region mapping with a few cities per state.

type stateInfo struct {
	State  string
	Region string
	Cities []string
}

var states = []stateInfo{
	{"NY", "northeast", []string{"New York", "Buffalo", "Rochester"}},
	{"MA", "northeast", []string{"Boston", "Worcester", "Springfield"}},
	{"PA", "northeast", []string{"Philadelphia", "Pittsburgh", "Allentown"}},
	{"NJ", "northeast", []string{"Newark", "Jersey City", "Trenton"}},
	{"FL", "south", []string{"Miami", "Tampa", "Orlando"}},
	{"TX", "south", []string{"Houston", "Dallas", "Austin"}},
	{"GA", "south", []string{"Atlanta", "Savannah", "Augusta"}},
	{"NC", "south", []string{"Charlotte", "Raleigh", "Durham"}},
	{"IL", "midwest", []string{"Chicago", "Springfield", "Peoria"}},
	{"OH", "midwest", []string{"Columbus", "Cleveland", "Cincinnati"}},
	{"MI", "midwest", []string{"Detroit", "Grand Rapids", "Ann Arbor"}},
	{"MN", "midwest", []string{"Minneapolis", "St. Paul", "Rochester"}},
	{"CA", "west", []string{"Los Angeles", "San Francisco", "San Diego"}},
	{"WA", "west", []string{"Seattle", "Spokane", "Tacoma"}},
	{"CO", "west", []string{"Denver", "Boulder", "Colorado Springs"}},
	{"AZ", "west", []string{"Phoenix", "Tucson", "Scottsdale"}},
}

var firstNames = []string{
	"James", "Maria", "Robert", "Linda", "Michael", "Patricia", "David", "Jennifer",
	"William", "Elizabeth", "Richard", "Susan", "Joseph", "Jessica", "Thomas", "Sarah",
	"Carlos", "Karen", "Daniel", "Nancy", "Wei", "Priya", "Ahmed", "Fatima",
	"Kenji", "Aisha", "Viktor", "Elena", "Rajesh", "Mei", "Omar", "Ingrid",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
	"Thomas", "Taylor", "Moore", "Chen", "Patel", "Kim", "Nguyen", "Singh", "Ali",
	"Tanaka", "Kowalski", "Petrov", "Okafor", "Larsson", "Rossi", "Dubois", "Novak",
}
