package models

type ExperienceLevel string

const (
	ExperienceAny            ExperienceLevel = "any"
	ExperienceInternship     ExperienceLevel = "internship"
	ExperienceEntryLevel     ExperienceLevel = "entryLevel"
	ExperienceAssociate      ExperienceLevel = "associate"
	ExperienceMidSeniorLevel ExperienceLevel = "midSeniorLevel"
	ExperienceDirector       ExperienceLevel = "director"
	ExperienceExecutive      ExperienceLevel = "executive"
)

type OnsiteRemote string

const (
	WorkAny    OnsiteRemote = "any"
	WorkOnSite OnsiteRemote = "onSite"
	WorkRemote OnsiteRemote = "remote"
	WorkHybrid OnsiteRemote = "hybrid"
)

type Sort string

const (
	SortMostRelevant Sort = "mostRelevant"
	SortMostRecent   Sort = "mostRecent"
)

// SearchParams is the immutable snapshot sent to the job-search API.
// Empty string fields are omitted from the query.
type SearchParams struct {
	Keywords        string          `json:"keywords"`
	LocationID      string          `json:"locationId,omitempty"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel,omitempty"`
	OnsiteRemote    OnsiteRemote    `json:"onsiteRemote,omitempty"`
	TitleIDs        string          `json:"titleIds,omitempty"`
	FunctionIDs     string          `json:"functionIds,omitempty"`
	IndustryIDs     string          `json:"industryIds,omitempty"`
	Sort            Sort            `json:"sort,omitempty"`
	Start           int             `json:"start"`
}
