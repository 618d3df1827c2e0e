package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/ningdev/ningapi/ningapi/client"

	"github.com/urfave/cli/v2"
)

// Builds one of the get/post/put/delete commands.
func callCommand(name string) *cli.Command {
	method := strings.ToUpper(name)
	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:  "secure",
			Usage: "send the request over https",
		},
	}
	if method == http.MethodPost || method == http.MethodPut {
		flags = append(flags, &cli.StringFlag{
			Name:  "file",
			Usage: "path of a file to upload (sent as multipart form data)",
		})
	}
	return &cli.Command{
		Name:      name,
		Usage:     fmt.Sprintf("send a signed %s request", method),
		ArgsUsage: "<path> [key=value...]",
		Flags:     flags,
		Action: func(cctx *cli.Context) error {
			return runCall(cctx, method)
		},
	}
}

func runCall(cctx *cli.Context, method string) error {
	ctx := context.Background()
	path := cctx.Args().First()
	if path == "" {
		return fmt.Errorf("need to provide an API path as argument (eg, 'User/recent')")
	}

	params, err := parseParams(cctx.Args().Tail())
	if err != nil {
		return err
	}

	if fPath := cctx.String("file"); fPath != "" {
		upload, f, err := client.OpenFile(fPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if params == nil {
			params = make(client.Params)
		}
		params[client.FileParam] = upload
	}

	c, err := loadClient(ctx, cctx)
	if err != nil {
		return err
	}

	var opts []client.RequestOption
	if cctx.Bool("secure") {
		opts = append(opts, client.Secure())
	}
	res, err := c.Call(ctx, method, path, params, opts...)
	if err != nil {
		return err
	}
	return printResult(os.Stdout, res)
}

// Parses key=value arguments. Repeated keys become multi-valued params.
func parseParams(args []string) (client.Params, error) {
	if len(args) == 0 {
		return nil, nil
	}
	params := make(client.Params, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("parameters must be split with an equals sign: %q", arg)
		}
		if strings.HasPrefix(value, "\"") {
			value = strings.Trim(value, "\"'")
		}
		switch existing := params[key].(type) {
		case nil:
			params[key] = value
		case string:
			params[key] = []string{existing, value}
		case []string:
			params[key] = append(existing, value)
		}
	}
	return params, nil
}
