package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jimezsa/hirenova/internal/server"
)

type ServeCmd struct {
	Listen  string `help:"Listen address (defaults to listen_addr)."`
	Proxies string `help:"Comma-separated proxy URLs."`
}

func (s *ServeCmd) Run(ctx *Context) error {
	searcher, err := ctx.searcher(s.Proxies)
	if err != nil {
		return err
	}

	addr := s.Listen
	if addr == "" {
		addr = ctx.Config.ListenAddr
	}

	srv := server.New(server.Options{
		Searcher:     searcher,
		Defaults:     ctx.defaults(),
		ShowDegraded: ctx.Config.ShowDegraded,
		Logger:       ctx.Logger,
	})

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(runCtx, addr)
}
