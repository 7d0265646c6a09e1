package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/claes/dirigible/internal/cast"
	"github.com/claes/dirigible/internal/config"
	"github.com/claes/dirigible/internal/naming"
)

// cast-url needs no Google account, so it does not go through newApp.
func newCastURLCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "cast-url <url>",
		Short: "Cast an MP4 served over plain HTTP; <name>.jpg next to it is used as artwork",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, file := naming.SplitURL(args[0])
			if dir == "" || !naming.IsVideo(file) {
				return fmt.Errorf("not an mp4 url: %s", args[0])
			}
			if cfg.Chromecast == "" {
				return cast.ErrNoPlayer
			}
			cc, err := cast.NewChromecast(cfg.Chromecast)
			if err != nil {
				return err
			}
			defer cc.Close()

			mi := naming.BuildMediaInfo(dir, file)
			if err := cc.Play(cmd.Context(), mi); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "casting %s\n", mi.Metadata.Title)
			return nil
		},
	}
}
