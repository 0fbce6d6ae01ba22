package command

import (
	"github.com/urfave/cli/v2"
)

// FeedCommand returns the feed command.
func FeedCommand() *cli.Command {
	return &cli.Command{
		Name:  "feed",
		Usage: "Posts from users you follow",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "page", Value: 1, Usage: "Page number"},
		},
		Action: feed,
	}
}

func feed(c *cli.Context) error {
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	ctx, cancel := rt.RequestContext(c)
	defer cancel()

	page, err := rt.Services.Feed.List(ctx, c.Int("page"))
	if err != nil {
		return err
	}
	return printPosts(rt, c, page)
}
