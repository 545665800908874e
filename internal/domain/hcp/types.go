package hcp

import "fmt"

// Specialty is the coarse clinical classification of an HCP.
type Specialty string

const (
	SpecialtyPrimaryCare   Specialty = "primary_care"
	SpecialtyCardiology    Specialty = "cardiology"
	SpecialtyOncology      Specialty = "oncology"
	SpecialtyEndocrinology Specialty = "endocrinology"
	SpecialtyNeurology     Specialty = "neurology"
	SpecialtyPsychiatry    Specialty = "psychiatry"
)

// Specialties lists every valid specialty in a stable order.
var Specialties = []Specialty{
	SpecialtyPrimaryCare,
	SpecialtyCardiology,
	SpecialtyOncology,
	SpecialtyEndocrinology,
	SpecialtyNeurology,
	SpecialtyPsychiatry,
}

// Segment is the fine-grained behavioral classification of an HCP.
type Segment string

const (
	SegmentHighPrescriber        Segment = "high_prescriber"
	SegmentAcademicLeader        Segment = "academic_leader"
	SegmentGrowthPotential       Segment = "growth_potential"
	SegmentEngagedDigital        Segment = "engaged_digital"
	SegmentTraditionalPreference Segment = "traditional_preference"
	SegmentNewTarget             Segment = "new_target"
)

// Segments lists every valid segment in a stable order.
var Segments = []Segment{
	SegmentHighPrescriber,
	SegmentAcademicLeader,
	SegmentGrowthPotential,
	SegmentEngagedDigital,
	SegmentTraditionalPreference,
	SegmentNewTarget,
}

// Channel is an engagement channel through which an HCP can be reached.
type Channel string

const (
	ChannelEmail      Channel = "email"
	ChannelRepVisit   Channel = "rep_visit"
	ChannelPhone      Channel = "phone"
	ChannelWebinar    Channel = "webinar"
	ChannelDigitalAd  Channel = "digital_ad"
	ChannelDirectMail Channel = "direct_mail"
)

// Channels lists every valid channel in a stable order.
var Channels = []Channel{
	ChannelEmail,
	ChannelRepVisit,
	ChannelPhone,
	ChannelWebinar,
	ChannelDigitalAd,
	ChannelDirectMail,
}

// AdoptionStage is the funnel position inferred from an HCP's segment.
type AdoptionStage string

const (
	StageAwareness     AdoptionStage = "awareness"
	StageTrial         AdoptionStage = "trial"
	StageConsideration AdoptionStage = "consideration"
	StageLoyalty       AdoptionStage = "loyalty"
)

// AdoptionStageForSegment maps a segment to its funnel position.
func AdoptionStageForSegment(s Segment) (AdoptionStage, error) {
	switch s {
	case SegmentHighPrescriber, SegmentAcademicLeader:
		return StageLoyalty, nil
	case SegmentGrowthPotential, SegmentEngagedDigital:
		return StageConsideration, nil
	case SegmentTraditionalPreference:
		return StageTrial, nil
	case SegmentNewTarget:
		return StageAwareness, nil
	}
	return "", fmt.Errorf("unmapped segment: %q", s)
}

// ValidTier reports whether t is one of the three supported tiers.
func ValidTier(t int) bool {
	return t >= 1 && t <= 3
}
