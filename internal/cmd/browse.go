package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jimezsa/hirenova/internal/pagination"
	"github.com/jimezsa/hirenova/internal/params"
	"github.com/jimezsa/hirenova/internal/present"
	"github.com/jimezsa/hirenova/internal/session"
	"github.com/jimezsa/hirenova/internal/ui"
)

type BrowseCmd struct {
	Query string `arg:"" optional:"" help:"Initial keywords."`
	FilterOptions
	Links   string `help:"Link display: short or full." enum:"short,full" default:"short"`
	Proxies string `help:"Comma-separated proxy URLs."`
}

const browseHelp = `commands: n next, p prev, <number> go to page, s <keywords> search,
          f <filter>=<value> (location, experience, work, sort, title, function, industry),
          r refresh, h help, q quit`

func (b *BrowseCmd) Run(ctx *Context) error {
	searcher, err := ctx.searcher(b.Proxies)
	if err != nil {
		return err
	}

	br := &browser{
		ctx:  ctx,
		sess: session.New(searcher, session.Options{Defaults: ctx.defaults(), Logger: ctx.Logger}),
		opts: present.WriteOptions{
			ColorEnabled: ctx.colorEnabled(),
			Hyperlinks:   ctx.colorEnabled() && ui.IsTTY(ctx.Out),
			LinkStyle:    present.LinkStyle(b.Links),
			ShowDegraded: ctx.Config.ShowDegraded,
		},
	}
	return br.loop(context.Background(), b.FilterOptions.patch(b.Query))
}

type browser struct {
	ctx  *Context
	sess *session.Session
	opts present.WriteOptions
}

func (br *browser) loop(ctx context.Context, initial params.Patch) error {
	if err := br.fetch(func() error { return br.sess.Submit(ctx, initial) }); err != nil {
		return err
	}

	in := br.ctx.In
	if in == nil {
		in = strings.NewReader("")
	}
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(br.ctx.Out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(br.ctx.Out)
			return scanner.Err()
		}
		quit, err := br.handle(ctx, strings.TrimSpace(scanner.Text()))
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// handle runs one command line. Unknown input and out-of-range pages are
// reported and the loop continues.
func (br *browser) handle(ctx context.Context, line string) (bool, error) {
	command, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	var err error
	switch strings.ToLower(command) {
	case "":
		return false, nil
	case "q", "quit", "exit":
		return true, nil
	case "h", "help", "?":
		fmt.Fprintln(br.ctx.Out, browseHelp)
		return false, nil
	case "n", "next":
		err = br.fetch(func() error { return br.sess.Next(ctx) })
	case "p", "prev":
		err = br.fetch(func() error { return br.sess.Prev(ctx) })
	case "r", "refresh":
		err = br.fetch(func() error { return br.sess.Refresh(ctx) })
	case "s", "search":
		err = br.fetch(func() error { return br.sess.Submit(ctx, params.Patch{Keywords: params.String(arg)}) })
	case "f", "filter":
		patch, perr := filterPatch(arg)
		if perr != nil {
			br.warn("%v", perr)
			return false, nil
		}
		err = br.fetch(func() error { return br.sess.Submit(ctx, patch) })
	default:
		page, perr := strconv.Atoi(command)
		if perr != nil {
			br.warn("unknown command %q (h for help)", command)
			return false, nil
		}
		err = br.fetch(func() error { return br.sess.ChangePage(ctx, page) })
	}

	if errors.Is(err, pagination.ErrPageOutOfRange) {
		br.warn("no such page (1-%d)", br.sess.Pager().TotalPages())
		return false, nil
	}
	return false, err
}

// fetch shows the loading frame, runs fn and draws the resulting frame.
// Rejected page changes leave the current frame in place.
func (br *browser) fetch(fn func() error) error {
	before := br.sess.View()
	br.draw(present.View{Loading: true, Params: before.Params})
	stop := br.ctx.UI.StartSpinner("Loading...")
	err := fn()
	stop()

	if errors.Is(err, pagination.ErrPageOutOfRange) {
		br.draw(before)
		return err
	}
	if err != nil {
		return err
	}
	br.draw(br.sess.View())
	return nil
}

func (br *browser) draw(v present.View) {
	if br.ctx.UI != nil {
		br.ctx.UI.ClearScreen()
	}
	if err := present.Render(br.ctx.Out, v, present.FormatCards, br.opts); err != nil {
		br.ctx.Logger.Debug().Err(err).Msg("render frame")
	}
	if !v.Loading {
		printFilters(br.ctx.Out, v)
	}
}

func (br *browser) warn(format string, args ...any) {
	if br.ctx.UI != nil {
		br.ctx.UI.Warnf(format, args...)
		return
	}
	fmt.Fprintf(br.ctx.Err, format+"\n", args...)
}

func printFilters(w io.Writer, v present.View) {
	p := v.Params
	fields := []string{"keywords=" + strconv.Quote(p.Keywords)}
	add := func(name, value string) {
		if value != "" {
			fields = append(fields, name+"="+value)
		}
	}
	add("location", p.LocationID)
	add("experience", string(p.ExperienceLevel))
	add("work", string(p.OnsiteRemote))
	add("sort", string(p.Sort))
	add("title", p.TitleIDs)
	add("function", p.FunctionIDs)
	add("industry", p.IndustryIDs)
	fmt.Fprintf(w, "filters: %s\n", strings.Join(fields, " "))
}

func filterPatch(arg string) (params.Patch, error) {
	name, value, ok := strings.Cut(arg, "=")
	if !ok {
		return params.Patch{}, fmt.Errorf("usage: f <filter>=<value>")
	}
	value = strings.TrimSpace(value)

	var p params.Patch
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "location":
		p.LocationID = params.String(value)
	case "experience":
		p.ExperienceLevel = params.Experience(value)
	case "work", "work-type":
		p.OnsiteRemote = params.Work(value)
	case "sort":
		p.Sort = params.SortOrder(value)
	case "title":
		p.TitleIDs = params.String(value)
	case "function":
		p.FunctionIDs = params.String(value)
	case "industry":
		p.IndustryIDs = params.String(value)
	default:
		return params.Patch{}, fmt.Errorf("unknown filter %q", name)
	}
	return p, nil
}
