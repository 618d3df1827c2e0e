package client_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/ningdev/ningapi/ningapi/client"
)

func ExampleNew() {
	ctx := context.Background()

	c, err := client.New(ctx, client.Config{
		Subdomain:      "apiexample",
		Email:          "member@example.com",
		Password:       "secret",
		ConsumerKey:    "consumer-key",
		ConsumerSecret: "consumer-secret",
	})
	if err != nil {
		panic(err)
	}

	res, err := c.Photo.Recent(ctx, &client.Query{Fields: []string{"title", "url"}, Count: 10})
	if err != nil {
		var apierr *client.APIError
		if errors.As(err, &apierr) {
			fmt.Println("API failure:", apierr.Reason)
		}
		panic(err)
	}
	fmt.Println(string(res.Entry))
}
