package jobsearch

import "github.com/jimezsa/hirenova/internal/models"

const (
	FallbackTotal   = 120
	placeholderLogo = "/placeholder.svg?height=200&width=200"
)

// Fallback returns the fixed dataset served whenever the upstream call
// fails or no API key is configured. Each call returns a fresh copy.
func Fallback() models.SearchResult {
	return models.SearchResult{
		Jobs: []models.Job{
			{
				ID:          "3847401358",
				Title:       "Go Developer",
				URL:         "https://www.linkedin.com/jobs/view/3847401358",
				ReferenceID: "aYFvP5j3neBOlxUSmxYANA==",
				PosterID:    "22219443",
				Company: &models.Company{
					Name:            "5V Video | Certified B Corp™",
					Logo:            "https://media.licdn.com/dms/image/D4E0BAQHrQWecvQHiEw/company-logo_200_200/0/1688391543328/5vvideo_logo?e=1718841600&v=beta&t=0-TUF4uK0Uf4h_RFgskMIOAsHSdrVhRT2mc9G5wnS94",
					URL:             "https://www.linkedin.com/company/5vvideo/life",
					StaffCountRange: "51-200 employees",
					Headquarter:     "New York, NY",
				},
				Location: "New York City Metropolitan Area (Hybrid)",
				Type:     "Contract",
				PostDate: "1 week ago",
				Benefits: "$65/hr - $88/hr",
			},
			{
				ID:    "3847401359",
				Title: "Senior React Developer",
				URL:   "https://www.linkedin.com/jobs/view/3847401359",
				Company: &models.Company{
					Name: "Tech Innovations Inc.",
					Logo: placeholderLogo,
					URL:  "https://www.linkedin.com/company/techinnovations/",
				},
				Location: "San Francisco, CA (Remote)",
				Type:     "Full-time",
				PostDate: "2 days ago",
				Benefits: "$120K - $150K/year",
			},
			{
				ID:    "3847401360",
				Title: "Frontend Engineer",
				URL:   "https://www.linkedin.com/jobs/view/3847401360",
				Company: &models.Company{
					Name: "StartupXYZ",
					Logo: placeholderLogo,
					URL:  "https://www.linkedin.com/company/startupxyz/",
				},
				Location: "Austin, TX (Hybrid)",
				Type:     "Full-time",
				PostDate: "3 days ago",
				Benefits: "$90K - $120K/year",
			},
			{
				ID:    "3847401361",
				Title: "Backend Developer",
				URL:   "https://www.linkedin.com/jobs/view/3847401361",
				Company: &models.Company{
					Name: "Enterprise Solutions",
					Logo: placeholderLogo,
					URL:  "https://www.linkedin.com/company/enterprise-solutions/",
				},
				Location: "Chicago, IL (On-site)",
				Type:     "Full-time",
				PostDate: "1 week ago",
				Benefits: "$100K - $130K/year",
			},
			{
				ID:    "3847401362",
				Title: "DevOps Engineer",
				URL:   "https://www.linkedin.com/jobs/view/3847401362",
				Company: &models.Company{
					Name: "Cloud Systems Inc.",
					Logo: placeholderLogo,
					URL:  "https://www.linkedin.com/company/cloud-systems/",
				},
				Location: "Remote",
				Type:     "Contract",
				PostDate: "5 days ago",
				Benefits: "$70/hr - $90/hr",
			},
			{
				ID:    "3847401363",
				Title: "Full Stack Developer",
				URL:   "https://www.linkedin.com/jobs/view/3847401363",
				Company: &models.Company{
					Name: "Digital Agency",
					Logo: placeholderLogo,
					URL:  "https://www.linkedin.com/company/digital-agency/",
				},
				Location: "Boston, MA (Hybrid)",
				Type:     "Full-time",
				PostDate: "2 weeks ago",
				Benefits: "$95K - $125K/year",
			},
		},
		Total: FallbackTotal,
	}
}
