package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/claes/dirigible/internal/cast"
	"github.com/claes/dirigible/internal/config"
	"github.com/claes/dirigible/internal/loader"
	"github.com/claes/dirigible/internal/model"
)

type played struct {
	mi  model.MediaInfo
	err error
}

func newPlayCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "play <video-id>",
		Short: "Cast a video to the configured Chromecast",
		Long:  "Cast a video to the configured Chromecast. Without --chromecast the media descriptor is printed instead.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			var out played
			l := loader.New(func(ctx context.Context, id string) played {
				mi, err := a.caster.Cast(ctx, id)
				return played{mi: mi, err: err}
			}, func(p played) { out = p })
			l.Init(args[0])
			l.Wait()

			if errors.Is(out.err, cast.ErrNoPlayer) {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out.mi)
			}
			if out.err != nil {
				return out.err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "casting %s\n", out.mi.Metadata.Title)
			return nil
		},
	}
}
