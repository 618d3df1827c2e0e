package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/ningdev/ningapi/ningapi/client"

	"github.com/adrg/xdg"
	"github.com/urfave/cli/v2"
)

var cmdLogin = &cli.Command{
	Name:   "login",
	Usage:  "log in to a network and save the token pair",
	Action: runLogin,
}

var cmdLogout = &cli.Command{
	Name:   "logout",
	Usage:  "remove the saved login session",
	Action: runLogout,
}

func runLogin(cctx *cli.Context) error {
	ctx := context.Background()
	cfg := configFromFlags(cctx)

	c, err := client.New(ctx, cfg, clientOptions(cctx)...)
	if err != nil {
		return err
	}

	fPath, err := xdg.StateFile(sessionFile)
	if err != nil {
		return err
	}
	sess := Session{
		Subdomain: c.Subdomain(),
		Email:     c.Email(),
		APIHost:   cctx.String("api-host"),
		Tokens:    c.Tokens(),
	}
	if err := persistSession(fPath, &sess); err != nil {
		return err
	}

	fmt.Printf("logged in to %s as %s\n", c.Subdomain(), c.Email())
	return nil
}

func runLogout(cctx *cli.Context) error {
	fPath, err := xdg.SearchStateFile(sessionFile)
	if err != nil {
		fmt.Println("no login session found (already logged out)")
		return nil
	}
	if err := wipeSession(fPath); errors.Is(err, ErrNoSession) {
		fmt.Println("no login session found (already logged out)")
		return nil
	} else if err != nil {
		return err
	}
	return nil
}
