package cmd

import (
	"encoding/json"
	"fmt"
)

type VersionCmd struct{}

func (v *VersionCmd) Run(ctx *Context) error {
	if ctx.JSONOutput {
		return json.NewEncoder(ctx.Out).Encode(map[string]string{"version": ctx.Version})
	}
	_, err := fmt.Fprintf(ctx.Out, "hirenova %s\n", ctx.Version)
	return err
}
