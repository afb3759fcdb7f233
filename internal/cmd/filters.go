package cmd

import (
	"github.com/jimezsa/hirenova/internal/params"
)

// FilterOptions are the search filters shared by search and browse.
// Empty flags keep the configured defaults.
type FilterOptions struct {
	Location    string `help:"Upstream location id (defaults to default_location)."`
	Experience  string `help:"Experience level." enum:",any,internship,entryLevel,associate,midSeniorLevel,director,executive" default:""`
	WorkType    string `name:"work-type" help:"On-site, remote or hybrid." enum:",any,onSite,remote,hybrid" default:""`
	Sort        string `help:"Result order." enum:",mostRelevant,mostRecent" default:""`
	TitleIDs    string `name:"title-ids" help:"Upstream title ids, comma-separated."`
	FunctionIDs string `name:"function-ids" help:"Upstream job function ids, comma-separated."`
	IndustryIDs string `name:"industry-ids" help:"Upstream industry ids, comma-separated."`
}

func (f FilterOptions) patch(keywords string) params.Patch {
	p := params.Patch{Keywords: params.String(keywords)}
	if f.Location != "" {
		p.LocationID = params.String(f.Location)
	}
	if f.Experience != "" {
		p.ExperienceLevel = params.Experience(f.Experience)
	}
	if f.WorkType != "" {
		p.OnsiteRemote = params.Work(f.WorkType)
	}
	if f.Sort != "" {
		p.Sort = params.SortOrder(f.Sort)
	}
	if f.TitleIDs != "" {
		p.TitleIDs = params.String(f.TitleIDs)
	}
	if f.FunctionIDs != "" {
		p.FunctionIDs = params.String(f.FunctionIDs)
	}
	if f.IndustryIDs != "" {
		p.IndustryIDs = params.String(f.IndustryIDs)
	}
	return p
}
