package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ningdev/ningapi/ningapi/client"

	"github.com/urfave/cli/v2"
)

// Builds one of the recent/alpha/count commands.
func listCommand(name string) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     fmt.Sprintf("query the '%s' endpoint of a resource", name),
		ArgsUsage: "<resource> [key=value...]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "fields",
				Usage: "fields to include in each entry",
			},
			&cli.IntFlag{
				Name:  "count",
				Usage: "maximum number of entries to return",
			},
			&cli.StringFlag{
				Name:  "anchor",
				Usage: "anchor returned by a previous request, to continue a listing",
			},
			&cli.StringFlag{
				Name:  "author",
				Usage: "only return entries by this screen name",
			},
			&cli.BoolFlag{
				Name:  "secure",
				Usage: "send the request over https",
			},
		},
		Action: func(cctx *cli.Context) error {
			return runList(cctx, name)
		},
	}
}

func runList(cctx *cli.Context, endpoint string) error {
	ctx := context.Background()
	name := cctx.Args().First()
	if name == "" {
		return fmt.Errorf("need to provide a resource name as argument (eg, 'Photo')")
	}

	extra, err := parseParams(cctx.Args().Tail())
	if err != nil {
		return err
	}
	q := &client.Query{
		Fields: cctx.StringSlice("fields"),
		Count:  cctx.Int("count"),
		Anchor: cctx.String("anchor"),
		Author: cctx.String("author"),
		Extra:  extra,
	}

	c, err := loadClient(ctx, cctx)
	if err != nil {
		return err
	}
	r, err := lookupResource(c, name)
	if err != nil {
		return err
	}

	var opts []client.RequestOption
	if cctx.Bool("secure") {
		opts = append(opts, client.Secure())
	}

	var res *client.Result
	switch endpoint {
	case "recent":
		res, err = r.Recent(ctx, q, opts...)
	case "alpha":
		res, err = r.Alpha(ctx, q, opts...)
	case "count":
		res, err = r.Count(ctx, q, opts...)
	default:
		return fmt.Errorf("unknown endpoint: %s", endpoint)
	}
	if err != nil {
		return err
	}
	return printResult(os.Stdout, res)
}

// Finds a resource handle by name, ignoring case.
func lookupResource(c *client.Client, name string) (*client.Resource, error) {
	for _, r := range []*client.Resource{
		c.ActivityItem,
		c.BlogPost,
		c.BroadcastMessage,
		c.Comment,
		c.Network,
		c.Photo,
		c.User,
		c.Video,
	} {
		if strings.EqualFold(r.Path(), name) {
			return r, nil
		}
	}
	return nil, fmt.Errorf("unknown resource: %s", name)
}
