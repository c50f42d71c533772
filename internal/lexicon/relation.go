package lexicon

// SenseRelType is the kind of a sense-to-sense relation. Codes outside the
// known set decode to SenseRelOther.
type SenseRelType string

const (
	SenseRelAntonym            SenseRelType = "antonym"
	SenseRelAlso               SenseRelType = "also"
	SenseRelParticiple         SenseRelType = "participle"
	SenseRelPertainym          SenseRelType = "pertainym"
	SenseRelDerivation         SenseRelType = "derivation"
	SenseRelDomainTopic        SenseRelType = "domain_topic"
	SenseRelDomainMemberTopic  SenseRelType = "domain_member_topic"
	SenseRelDomainRegion       SenseRelType = "domain_region"
	SenseRelDomainMemberRegion SenseRelType = "domain_member_region"
	SenseRelExemplifies        SenseRelType = "exemplifies"
	SenseRelIsExemplifiedBy    SenseRelType = "is_exemplified_by"
	SenseRelOther              SenseRelType = "other"
)

var senseRelTypes = map[SenseRelType]struct{}{
	SenseRelAntonym:            {},
	SenseRelAlso:               {},
	SenseRelParticiple:         {},
	SenseRelPertainym:          {},
	SenseRelDerivation:         {},
	SenseRelDomainTopic:        {},
	SenseRelDomainMemberTopic:  {},
	SenseRelDomainRegion:       {},
	SenseRelDomainMemberRegion: {},
	SenseRelExemplifies:        {},
	SenseRelIsExemplifiedBy:    {},
	SenseRelOther:              {},
}

// SynsetRelType is the kind of a synset-to-synset relation. It covers the
// Princeton relations and the extended LMF set; codes outside both decode to
// SynsetRelUnknown. SynsetRelOther is a named kind of its own.
type SynsetRelType string

const (
	SynsetRelHypernym                SynsetRelType = "hypernym"
	SynsetRelHyponym                 SynsetRelType = "hyponym"
	SynsetRelInstanceHypernym        SynsetRelType = "instance_hypernym"
	SynsetRelInstanceHyponym         SynsetRelType = "instance_hyponym"
	SynsetRelMeroMember              SynsetRelType = "mero_member"
	SynsetRelMeroPart                SynsetRelType = "mero_part"
	SynsetRelMeroSubstance           SynsetRelType = "mero_substance"
	SynsetRelHoloMember              SynsetRelType = "holo_member"
	SynsetRelHoloPart                SynsetRelType = "holo_part"
	SynsetRelHoloSubstance           SynsetRelType = "holo_substance"
	SynsetRelEntails                 SynsetRelType = "entails"
	SynsetRelCauses                  SynsetRelType = "causes"
	SynsetRelSimilar                 SynsetRelType = "similar"
	SynsetRelAttribute               SynsetRelType = "attribute"
	SynsetRelDomainRegion            SynsetRelType = "domain_region"
	SynsetRelDomainTopic             SynsetRelType = "domain_topic"
	SynsetRelHasDomainRegion         SynsetRelType = "has_domain_region"
	SynsetRelHasDomainTopic          SynsetRelType = "has_domain_topic"
	SynsetRelExemplifies             SynsetRelType = "exemplifies"
	SynsetRelIsExemplifiedBy         SynsetRelType = "is_exemplified_by"
	SynsetRelAgent                   SynsetRelType = "agent"
	SynsetRelAlso                    SynsetRelType = "also"
	SynsetRelAntoConverse            SynsetRelType = "anto_converse"
	SynsetRelAntoGradable            SynsetRelType = "anto_gradable"
	SynsetRelAntoSimple              SynsetRelType = "anto_simple"
	SynsetRelAntonym                 SynsetRelType = "antonym"
	SynsetRelAugmentative            SynsetRelType = "augmentative"
	SynsetRelBeInState               SynsetRelType = "be_in_state"
	SynsetRelClassifiedBy            SynsetRelType = "classified_by"
	SynsetRelClassifies              SynsetRelType = "classifies"
	SynsetRelCoAgentInstrument       SynsetRelType = "co_agent_instrument"
	SynsetRelCoAgentPatient          SynsetRelType = "co_agent_patient"
	SynsetRelCoAgentResult           SynsetRelType = "co_agent_result"
	SynsetRelCoInstrumentAgent       SynsetRelType = "co_instrument_agent"
	SynsetRelCoInstrumentPatient     SynsetRelType = "co_instrument_patient"
	SynsetRelCoInstrumentResult      SynsetRelType = "co_instrument_result"
	SynsetRelCoPatientAgent          SynsetRelType = "co_patient_agent"
	SynsetRelCoPatientInstrument     SynsetRelType = "co_patient_instrument"
	SynsetRelCoResultAgent           SynsetRelType = "co_result_agent"
	SynsetRelCoResultInstrument      SynsetRelType = "co_result_instrument"
	SynsetRelCoRole                  SynsetRelType = "co_role"
	SynsetRelConstitutive            SynsetRelType = "constitutive"
	SynsetRelDerivation              SynsetRelType = "derivation"
	SynsetRelDiminutive              SynsetRelType = "diminutive"
	SynsetRelDirection               SynsetRelType = "direction"
	SynsetRelDomain                  SynsetRelType = "domain"
	SynsetRelEqSynonym               SynsetRelType = "eq_synonym"
	SynsetRelFeminine                SynsetRelType = "feminine"
	SynsetRelHasAugmentative         SynsetRelType = "has_augmentative"
	SynsetRelHasDiminutive           SynsetRelType = "has_diminutive"
	SynsetRelHasDomain               SynsetRelType = "has_domain"
	SynsetRelHasFeminine             SynsetRelType = "has_feminine"
	SynsetRelHasMasculine            SynsetRelType = "has_masculine"
	SynsetRelHasYoung                SynsetRelType = "has_young"
	SynsetRelHoloLocation            SynsetRelType = "holo_location"
	SynsetRelHoloPortion             SynsetRelType = "holo_portion"
	SynsetRelHolonym                 SynsetRelType = "holonym"
	SynsetRelInManner                SynsetRelType = "in_manner"
	SynsetRelInstrument              SynsetRelType = "instrument"
	SynsetRelInvolved                SynsetRelType = "involved"
	SynsetRelInvolvedAgent           SynsetRelType = "involved_agent"
	SynsetRelInvolvedDirection       SynsetRelType = "involved_direction"
	SynsetRelInvolvedInstrument      SynsetRelType = "involved_instrument"
	SynsetRelInvolvedLocation        SynsetRelType = "involved_location"
	SynsetRelInvolvedPatient         SynsetRelType = "involved_patient"
	SynsetRelInvolvedResult          SynsetRelType = "involved_result"
	SynsetRelInvolvedSourceDirection SynsetRelType = "involved_source_direction"
	SynsetRelInvolvedTargetDirection SynsetRelType = "involved_target_direction"
	SynsetRelIrSynonym               SynsetRelType = "ir_synonym"
	SynsetRelIsCausedBy              SynsetRelType = "is_caused_by"
	SynsetRelIsEntailedBy            SynsetRelType = "is_entailed_by"
	SynsetRelIsSubeventOf            SynsetRelType = "is_subevent_of"
	SynsetRelLocation                SynsetRelType = "location"
	SynsetRelMannerOf                SynsetRelType = "manner_of"
	SynsetRelMasculine               SynsetRelType = "masculine"
	SynsetRelMeroLocation            SynsetRelType = "mero_location"
	SynsetRelMeroPortion             SynsetRelType = "mero_portion"
	SynsetRelMeronym                 SynsetRelType = "meronym"
	SynsetRelOther                   SynsetRelType = "other"
	SynsetRelParticiple              SynsetRelType = "participle"
	SynsetRelPatient                 SynsetRelType = "patient"
	SynsetRelPertainym               SynsetRelType = "pertainym"
	SynsetRelRestrictedBy            SynsetRelType = "restricted_by"
	SynsetRelRestricts               SynsetRelType = "restricts"
	SynsetRelResult                  SynsetRelType = "result"
	SynsetRelRole                    SynsetRelType = "role"
	SynsetRelSecondaryAspectIp       SynsetRelType = "secondary_aspect_ip"
	SynsetRelSecondaryAspectPi       SynsetRelType = "secondary_aspect_pi"
	SynsetRelSimpleAspectIp          SynsetRelType = "simple_aspect_ip"
	SynsetRelSimpleAspectPi          SynsetRelType = "simple_aspect_pi"
	SynsetRelSourceDirection         SynsetRelType = "source_direction"
	SynsetRelStateOf                 SynsetRelType = "state_of"
	SynsetRelSubevent                SynsetRelType = "subevent"
	SynsetRelTargetDirection         SynsetRelType = "target_direction"
	SynsetRelYoung                   SynsetRelType = "young"
	SynsetRelUnknown                 SynsetRelType = "unknown"
)

var synsetRelTypes = map[SynsetRelType]struct{}{
	SynsetRelHypernym:                {},
	SynsetRelHyponym:                 {},
	SynsetRelInstanceHypernym:        {},
	SynsetRelInstanceHyponym:         {},
	SynsetRelMeroMember:              {},
	SynsetRelMeroPart:                {},
	SynsetRelMeroSubstance:           {},
	SynsetRelHoloMember:              {},
	SynsetRelHoloPart:                {},
	SynsetRelHoloSubstance:           {},
	SynsetRelEntails:                 {},
	SynsetRelCauses:                  {},
	SynsetRelSimilar:                 {},
	SynsetRelAttribute:               {},
	SynsetRelDomainRegion:            {},
	SynsetRelDomainTopic:             {},
	SynsetRelHasDomainRegion:         {},
	SynsetRelHasDomainTopic:          {},
	SynsetRelExemplifies:             {},
	SynsetRelIsExemplifiedBy:         {},
	SynsetRelAgent:                   {},
	SynsetRelAlso:                    {},
	SynsetRelAntoConverse:            {},
	SynsetRelAntoGradable:            {},
	SynsetRelAntoSimple:              {},
	SynsetRelAntonym:                 {},
	SynsetRelAugmentative:            {},
	SynsetRelBeInState:               {},
	SynsetRelClassifiedBy:            {},
	SynsetRelClassifies:              {},
	SynsetRelCoAgentInstrument:       {},
	SynsetRelCoAgentPatient:          {},
	SynsetRelCoAgentResult:           {},
	SynsetRelCoInstrumentAgent:       {},
	SynsetRelCoInstrumentPatient:     {},
	SynsetRelCoInstrumentResult:      {},
	SynsetRelCoPatientAgent:          {},
	SynsetRelCoPatientInstrument:     {},
	SynsetRelCoResultAgent:           {},
	SynsetRelCoResultInstrument:      {},
	SynsetRelCoRole:                  {},
	SynsetRelConstitutive:            {},
	SynsetRelDerivation:              {},
	SynsetRelDiminutive:              {},
	SynsetRelDirection:               {},
	SynsetRelDomain:                  {},
	SynsetRelEqSynonym:               {},
	SynsetRelFeminine:                {},
	SynsetRelHasAugmentative:         {},
	SynsetRelHasDiminutive:           {},
	SynsetRelHasDomain:               {},
	SynsetRelHasFeminine:             {},
	SynsetRelHasMasculine:            {},
	SynsetRelHasYoung:                {},
	SynsetRelHoloLocation:            {},
	SynsetRelHoloPortion:             {},
	SynsetRelHolonym:                 {},
	SynsetRelInManner:                {},
	SynsetRelInstrument:              {},
	SynsetRelInvolved:                {},
	SynsetRelInvolvedAgent:           {},
	SynsetRelInvolvedDirection:       {},
	SynsetRelInvolvedInstrument:      {},
	SynsetRelInvolvedLocation:        {},
	SynsetRelInvolvedPatient:         {},
	SynsetRelInvolvedResult:          {},
	SynsetRelInvolvedSourceDirection: {},
	SynsetRelInvolvedTargetDirection: {},
	SynsetRelIrSynonym:               {},
	SynsetRelIsCausedBy:              {},
	SynsetRelIsEntailedBy:            {},
	SynsetRelIsSubeventOf:            {},
	SynsetRelLocation:                {},
	SynsetRelMannerOf:                {},
	SynsetRelMasculine:               {},
	SynsetRelMeroLocation:            {},
	SynsetRelMeroPortion:             {},
	SynsetRelMeronym:                 {},
	SynsetRelOther:                   {},
	SynsetRelParticiple:              {},
	SynsetRelPatient:                 {},
	SynsetRelPertainym:               {},
	SynsetRelRestrictedBy:            {},
	SynsetRelRestricts:               {},
	SynsetRelResult:                  {},
	SynsetRelRole:                    {},
	SynsetRelSecondaryAspectIp:       {},
	SynsetRelSecondaryAspectPi:       {},
	SynsetRelSimpleAspectIp:          {},
	SynsetRelSimpleAspectPi:          {},
	SynsetRelSourceDirection:         {},
	SynsetRelStateOf:                 {},
	SynsetRelSubevent:                {},
	SynsetRelTargetDirection:         {},
	SynsetRelYoung:                   {},
	SynsetRelUnknown:                 {},
}

// ParseSenseRelType never fails: unrecognised codes map to SenseRelOther.
func ParseSenseRelType(code string) SenseRelType {
	if _, ok := senseRelTypes[SenseRelType(code)]; ok {
		return SenseRelType(code)
	}
	return SenseRelOther
}

// Known reports whether t is a named kind rather than the catch-all.
func (t SenseRelType) Known() bool {
	_, ok := senseRelTypes[t]
	return ok && t != SenseRelOther
}

func (t SenseRelType) String() string {
	return string(t)
}

// ParseSynsetRelType never fails: unrecognised codes map to SynsetRelUnknown.
func ParseSynsetRelType(code string) SynsetRelType {
	if _, ok := synsetRelTypes[SynsetRelType(code)]; ok {
		return SynsetRelType(code)
	}
	return SynsetRelUnknown
}

func (t SynsetRelType) Known() bool {
	_, ok := synsetRelTypes[t]
	return ok && t != SynsetRelUnknown
}

func (t SynsetRelType) String() string {
	return string(t)
}
