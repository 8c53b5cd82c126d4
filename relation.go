package wordnet

// Relation is a pointer symbol as written in data files. Symbols outside
// the known set are kept verbatim so that unknown pointers survive a
// read/write round trip.
type Relation string

const (
	Hypernym              Relation = "@"
	InstanceHypernym      Relation = "@i"
	Hyponym               Relation = "~"
	InstanceHyponym       Relation = "~i"
	Antonym               Relation = "!"
	MemberHolonym         Relation = "#m"
	SubstanceHolonym      Relation = "#s"
	PartHolonym           Relation = "#p"
	MemberMeronym         Relation = "%m"
	SubstanceMeronym      Relation = "%s"
	PartMeronym           Relation = "%p"
	AttributeRelation     Relation = "="
	Entailment            Relation = "*"
	Cause                 Relation = ">"
	AlsoSee               Relation = "^"
	VerbGroup             Relation = "$"
	SimilarTo             Relation = "&"
	DerivationallyRelated Relation = "+"
	Pertainym             Relation = "\\"
	Participle            Relation = "<"
	DomainTopic           Relation = ";c"
	MemberTopic           Relation = "-c"
	DomainRegion          Relation = ";r"
	MemberRegion          Relation = "-r"
	DomainUsage           Relation = ";u"
	MemberUsage           Relation = "-u"

	// Related links a per-document term node to its candidate senses.
	// It never appears in dictionary files.
	Related Relation = "related"
)

var reflexives = map[Relation]Relation{
	Hypernym:              Hyponym,
	Hyponym:               Hypernym,
	InstanceHypernym:      InstanceHyponym,
	InstanceHyponym:       InstanceHypernym,
	Antonym:               Antonym,
	MemberHolonym:         MemberMeronym,
	SubstanceHolonym:      SubstanceMeronym,
	PartHolonym:           PartMeronym,
	MemberMeronym:         MemberHolonym,
	SubstanceMeronym:      SubstanceHolonym,
	PartMeronym:           PartHolonym,
	AttributeRelation:     AttributeRelation,
	AlsoSee:               AlsoSee,
	SimilarTo:             SimilarTo,
	DerivationallyRelated: DerivationallyRelated,
	DomainTopic:           MemberTopic,
	MemberTopic:           DomainTopic,
	DomainRegion:          MemberRegion,
	MemberRegion:          DomainRegion,
	DomainUsage:           MemberUsage,
	MemberUsage:           DomainUsage,
}

var relationNames = map[Relation]string{
	Hypernym:              "hypernym",
	InstanceHypernym:      "instance_hypernym",
	Hyponym:               "hyponym",
	InstanceHyponym:       "instance_hyponym",
	Antonym:               "antonym",
	MemberHolonym:         "member_holonym",
	SubstanceHolonym:      "substance_holonym",
	PartHolonym:           "part_holonym",
	MemberMeronym:         "member_meronym",
	SubstanceMeronym:      "substance_meronym",
	PartMeronym:           "part_meronym",
	AttributeRelation:     "attribute",
	Entailment:            "entailment",
	Cause:                 "cause",
	AlsoSee:               "also_see",
	VerbGroup:             "verb_group",
	SimilarTo:             "similar_to",
	DerivationallyRelated: "derivationally_related",
	Pertainym:             "pertainym",
	Participle:            "participle",
	DomainTopic:           "domain_topic",
	MemberTopic:           "member_topic",
	DomainRegion:          "domain_region",
	MemberRegion:          "member_region",
	DomainUsage:           "domain_usage",
	MemberUsage:           "member_usage",
	Related:               "related",
}

// Reflexive returns the relation that mirrors r, if any.
func (r Relation) Reflexive() (Relation, bool) {
	rev, ok := reflexives[r]
	return rev, ok
}

// String returns the readable name of r, or the raw symbol when unknown.
func (r Relation) String() string {
	if name, ok := relationNames[r]; ok {
		return name
	}
	return string(r)
}

// ParseRelation accepts either a readable name ("hypernym") or a symbol ("@").
func ParseRelation(s string) (Relation, bool) {
	if _, ok := relationNames[Relation(s)]; ok {
		return Relation(s), true
	}
	for r, name := range relationNames {
		if name == s {
			return r, true
		}
	}
	return "", false
}

// parentRelations are followed upwards by every hierarchy algorithm.
var parentRelations = []Relation{Hypernym, InstanceHypernym}

var childRelations = []Relation{Hyponym, InstanceHyponym}

func isParentRelation(r Relation) bool {
	return r == Hypernym || r == InstanceHypernym || r == Hyponym || r == InstanceHyponym
}
