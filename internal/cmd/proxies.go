package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/hirenova/internal/config"
	"github.com/jimezsa/hirenova/internal/jobsearch"
	"github.com/jimezsa/hirenova/internal/models"
	"github.com/jimezsa/hirenova/internal/network"
)

type ProxiesCmd struct {
	Check ProxyCheckCmd `cmd:"" help:"Validate proxies against a target URL."`
}

type ProxyCheckCmd struct {
	Target  string `help:"Target URL (defaults to the job search endpoint)."`
	Timeout int    `help:"Timeout in seconds." default:"15"`
}

type ProxyCheckResult struct {
	Proxy     string `json:"proxy"`
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

func (p *ProxyCheckCmd) Run(ctx *Context) error {
	proxies, err := config.LoadProxies("")
	if err != nil {
		return err
	}
	if len(proxies) == 0 {
		return fmt.Errorf("no proxies configured")
	}

	target := p.Target
	if target == "" {
		target = ctx.Config.Endpoint
	}
	if target == "" {
		target = jobsearch.DefaultEndpoint
	}
	timeout := time.Duration(p.Timeout) * time.Second

	results := make([]ProxyCheckResult, 0, len(proxies))
	for _, proxy := range proxies {
		results = append(results, checkProxy(proxy, target, timeout))
	}
	if err := writeProxyResults(ctx, results); err != nil {
		return err
	}
	if !ctx.JSONOutput {
		printProxySummary(ctx, results)
	}
	return nil
}

func checkProxy(proxy, target string, timeout time.Duration) ProxyCheckResult {
	result := ProxyCheckResult{Proxy: proxy, Status: "error"}
	fail := func(err error) ProxyCheckResult {
		result.Error = err.Error()
		return result
	}

	rotator, err := network.NewRotator([]string{proxy}, time.Minute)
	if err != nil {
		return fail(err)
	}
	client, err := network.NewClient(rotator, models.ClientConfig{Timeout: timeout})
	if err != nil {
		return fail(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, target, nil)
	if err != nil {
		return fail(err)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return fail(err)
	}
	_ = resp.Body.Close()

	result.LatencyMS = time.Since(start).Milliseconds()
	result.Status = fmt.Sprintf("%d", resp.StatusCode)
	// a 403 or 429 bans the proxy in the client's rotator
	usable, _ := client.Available()
	result.Available = usable > 0
	return result
}

func writeProxyResults(ctx *Context, results []ProxyCheckResult) error {
	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if ctx.PlainText {
		for _, res := range results {
			line := []string{res.Proxy, res.Status, fmt.Sprintf("%d", res.LatencyMS), strconv.FormatBool(res.Available), res.Error}
			fmt.Fprintln(ctx.Out, strings.Join(line, "\t"))
		}
		return nil
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "proxy\tstatus\tlatency_ms\tavailable\terror")
	for _, res := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%t\t%s\n", res.Proxy, res.Status, res.LatencyMS, res.Available, res.Error)
	}
	return tw.Flush()
}

func printProxySummary(ctx *Context, results []ProxyCheckResult) {
	available := 0
	for _, res := range results {
		if res.Available {
			available++
		}
	}
	fmt.Fprintf(ctx.Err, "%d of %d proxies available\n", available, len(results))
}
