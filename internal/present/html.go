package present

import (
	"html/template"
	"io"
	"strconv"

	"github.com/jimezsa/hirenova/internal/models"
)

type htmlOption struct {
	Value    string
	Label    string
	Selected bool
}

type htmlPageLink struct {
	Label    string
	Href     string
	Current  bool
	Ellipsis bool
}

type htmlPage struct {
	Params     models.SearchParams
	Experience []htmlOption
	WorkTypes  []htmlOption
	Sorts      []htmlOption
	Notice     string
	State      string
	Cards      []Card
	EmptyTitle string
	EmptyHint  string
	Pages      []htmlPageLink
	PrevHref   string
	NextHref   string
}

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>HireNova Jobs</title>
</head>
<body>
<main class="jobs" data-state="{{.State}}">
<h1>DevJobs</h1>
<form class="search-filters" method="get" action="/">
  <input type="text" name="keywords" placeholder="Job title, skills, or company" value="{{.Params.Keywords}}">
  <input type="text" name="locationId" placeholder="City, state, or country" value="{{.Params.LocationID}}">
  <select name="experienceLevel">{{range .Experience}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}</select>
  <select name="onsiteRemote">{{range .WorkTypes}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}</select>
  <select name="sort">{{range .Sorts}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}</select>
  <button type="submit">Search Jobs</button>
</form>
{{if .Notice}}<p class="notice">{{.Notice}}</p>{{end}}
{{if eq .State "empty"}}<div class="empty"><h3>{{.EmptyTitle}}</h3><p>{{.EmptyHint}}</p></div>{{end}}
<div class="job-list">
{{range .Cards}}{{if .Placeholder}}<div class="job-card placeholder"></div>
{{else}}<article class="job-card" data-id="{{.ID}}">
  {{if .Logo}}<img class="logo" src="{{.Logo}}" alt="{{.Company}}">{{else}}<div class="logo logo-missing"></div>{{end}}
  <h3 class="title">{{.Title}}</h3>
  <p class="company">{{.Company}}</p>
  <p class="location">{{.Location}}</p>
  <p class="type">{{.Type}}</p>
  <p class="posted">{{.Posted}}</p>
  {{if .Benefits}}<p class="benefits">{{.Benefits}}</p>{{end}}
  {{range .Badges}}<span class="badge badge-{{.}}">{{.}}</span>{{end}}
  <a class="apply" href="{{.URL}}" target="_blank" rel="noopener">Apply Now</a>
</article>
{{end}}{{end}}
</div>
{{if .Pages}}<nav class="pagination">
  {{if .PrevHref}}<a class="prev" href="{{.PrevHref}}">&lsaquo;</a>{{end}}
  {{range .Pages}}{{if .Ellipsis}}<span class="ellipsis">...</span>{{else if .Current}}<span class="page current">{{.Label}}</span>{{else}}<a class="page" href="{{.Href}}">{{.Label}}</a>{{end}}
  {{end}}
  {{if .NextHref}}<a class="next" href="{{.NextHref}}">&rsaquo;</a>{{end}}
</nav>{{end}}
</main>
</body>
</html>
`))

var (
	experienceOptions = []htmlOption{
		{Value: string(models.ExperienceAny), Label: "Any experience"},
		{Value: string(models.ExperienceInternship), Label: "Internship"},
		{Value: string(models.ExperienceEntryLevel), Label: "Entry Level"},
		{Value: string(models.ExperienceAssociate), Label: "Associate"},
		{Value: string(models.ExperienceMidSeniorLevel), Label: "Mid-Senior Level"},
		{Value: string(models.ExperienceDirector), Label: "Director"},
		{Value: string(models.ExperienceExecutive), Label: "Executive"},
	}
	workTypeOptions = []htmlOption{
		{Value: string(models.WorkAny), Label: "Any work type"},
		{Value: string(models.WorkOnSite), Label: "On-site"},
		{Value: string(models.WorkRemote), Label: "Remote"},
		{Value: string(models.WorkHybrid), Label: "Hybrid"},
	}
	sortOptions = []htmlOption{
		{Value: string(models.SortMostRelevant), Label: "Most Relevant"},
		{Value: string(models.SortMostRecent), Label: "Most Recent"},
	}
)

func writeHTML(w io.Writer, v View, opts WriteOptions) error {
	link := opts.PageLink
	if link == nil {
		link = func(page int) string {
			return "?page=" + strconv.Itoa(page)
		}
	}

	page := htmlPage{
		Params:     v.Params,
		Experience: selectOptions(experienceOptions, string(v.Params.ExperienceLevel)),
		WorkTypes:  selectOptions(workTypeOptions, string(v.Params.OnsiteRemote)),
		Sorts:      selectOptions(sortOptions, string(v.Params.Sort)),
		State:      v.State().String(),
		Cards:      Cards(v),
		EmptyTitle: EmptyTitle,
		EmptyHint:  EmptyHint,
	}
	if opts.ShowDegraded && v.Degraded {
		page.Notice = noticeText(v)
	}
	if v.State() == StatePopulated {
		for _, item := range v.Pages {
			page.Pages = append(page.Pages, htmlPageLink{
				Label:    item.String(),
				Href:     link(item.Page),
				Current:  !item.Ellipsis && item.Page == v.Page,
				Ellipsis: item.Ellipsis,
			})
		}
		if len(page.Pages) > 0 && v.Page > 1 {
			page.PrevHref = link(v.Page - 1)
		}
		if len(page.Pages) > 0 && v.Page < v.TotalPages {
			page.NextHref = link(v.Page + 1)
		}
	}
	return pageTemplate.Execute(w, page)
}

func selectOptions(base []htmlOption, current string) []htmlOption {
	out := make([]htmlOption, len(base))
	for i, opt := range base {
		opt.Selected = opt.Value == current
		out[i] = opt
	}
	return out
}
