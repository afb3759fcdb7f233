package cmd

import (
	"io"

	"github.com/jimezsa/hirenova/internal/config"
	"github.com/jimezsa/hirenova/internal/jobsearch"
	"github.com/jimezsa/hirenova/internal/models"
	"github.com/jimezsa/hirenova/internal/network"
	"github.com/jimezsa/hirenova/internal/ui"
	"github.com/rs/zerolog"
)

type Context struct {
	In         io.Reader
	Out        io.Writer
	Err        io.Writer
	UI         *ui.UI
	Config     config.Config
	ConfigDir  string
	Logger     zerolog.Logger
	Verbose    bool
	JSONOutput bool
	PlainText  bool
	Version    string
	ColorMode  ui.ColorMode

	// Searcher replaces the upstream client when set.
	Searcher jobsearch.Searcher
}

// searcher returns the job search client for the configured upstream,
// routed through the given proxies.
func (c *Context) searcher(proxyFlag string) (jobsearch.Searcher, error) {
	if c.Searcher != nil {
		return c.Searcher, nil
	}

	proxies, err := config.LoadProxies(proxyFlag)
	if err != nil {
		return nil, err
	}
	client, err := network.NewClient(nil, c.Config.ClientConfig(proxies))
	if err != nil {
		return nil, err
	}
	return jobsearch.NewClient(client, jobsearch.Config{
		APIKey:          c.Config.APIKey,
		Host:            c.Config.APIHost,
		Endpoint:        c.Config.Endpoint,
		DisableFallback: !c.Config.Fallback,
		Logger:          c.Logger,
	}), nil
}

// defaults are the starting search parameters from config.
func (c *Context) defaults() models.SearchParams {
	return models.SearchParams{
		LocationID: c.Config.DefaultLocation,
		Sort:       models.Sort(c.Config.DefaultSort),
	}
}

func (c *Context) colorEnabled() bool {
	return c.UI != nil && c.UI.ColorEnabled
}
