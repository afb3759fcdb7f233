package jobsearch

import (
	"net/url"
	"strconv"

	"github.com/jimezsa/hirenova/internal/models"
)

// BuildQuery encodes params, omitting every empty value. Start is
// omitted at 0, the upstream default offset. The web search form always
// sent start=0; leaving it out on purpose requests the same first page.
func BuildQuery(params models.SearchParams) url.Values {
	values := url.Values{}
	set := func(key, value string) {
		if value == "" {
			return
		}
		values.Set(key, value)
	}

	set("keywords", params.Keywords)
	set("locationId", params.LocationID)
	set("experienceLevel", string(params.ExperienceLevel))
	set("titleIds", params.TitleIDs)
	set("functionIds", params.FunctionIDs)
	set("industryIds", params.IndustryIDs)
	set("onsiteRemote", string(params.OnsiteRemote))
	set("sort", string(params.Sort))
	if params.Start > 0 {
		values.Set("start", strconv.Itoa(params.Start))
	}
	return values
}
