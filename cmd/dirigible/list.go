package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/claes/dirigible/internal/config"
	"github.com/claes/dirigible/internal/loader"
	"github.com/claes/dirigible/internal/model"
)

type pageArgs struct {
	query string
	token string
}

func newListCmd(cfg *config.Config) *cobra.Command {
	var page string
	var all bool
	cmd := &cobra.Command{
		Use:   "list [query]",
		Short: "List videos in the Drive \"Videos\" folder",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			var query string
			if len(args) > 0 {
				query = args[0]
			}
			var authURL string
			out := cmd.OutOrStdout()

			var l *loader.Loader[pageArgs, model.Result]
			l = loader.New(func(ctx context.Context, p pageArgs) model.Result {
				return a.lib.Load(ctx, p.query, p.token)
			}, func(res model.Result) {
				if res.Authorization != nil {
					authURL = res.Authorization.URL
					return
				}
				if res.Videos == nil {
					fmt.Fprintln(out, "no library: not signed in or no \"Videos\" folder")
					return
				}
				printVideos(out, res.Videos)
				if res.NextPageToken == "" {
					return
				}
				if all {
					l.Restart(pageArgs{query: query, token: res.NextPageToken})
					return
				}
				fmt.Fprintf(out, "\nnext page: %s\n", res.NextPageToken)
			})
			l.Init(pageArgs{query: query, token: page})
			l.Wait()

			if authURL != "" {
				return fmt.Errorf("authorization required, run `dirigible login` or visit %s", authURL)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&page, "page", "", "page token from a previous listing")
	cmd.Flags().BoolVar(&all, "all", false, "follow page tokens until the listing ends")
	return cmd
}

func printVideos(w io.Writer, videos []model.Video) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, v := range videos {
		size := "-"
		if v.Size > 0 {
			size = humanize.Bytes(uint64(v.Size))
		}
		thumb := ""
		if v.Icon != "" {
			thumb = "thumb"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.ID, v.Name, size, thumb)
	}
	_ = tw.Flush()
}
