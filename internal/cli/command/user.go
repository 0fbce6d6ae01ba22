package command

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/mitaina-cli/internal/cli/view"
	"github.com/yndnr/mitaina-cli/internal/core/domain"
)

// UserCommand returns the user subcommand group.
func UserCommand() *cli.Command {
	return &cli.Command{
		Name:    "user",
		Aliases: []string{"u"},
		Usage:   "Look at other users",
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Show a user's profile",
				ArgsUsage: "USERNAME",
				Action:    userGet,
			},
			{
				Name:      "posts",
				Usage:     "List a user's posts",
				ArgsUsage: "[options] USERNAME",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "page", Value: 1, Usage: "Page number"},
				},
				Action: userPosts,
			},
			{
				Name:      "followers",
				Usage:     "List who follows a user",
				ArgsUsage: "USERNAME",
				Action:    userFollowers,
			},
			{
				Name:      "following",
				Usage:     "List who a user follows",
				ArgsUsage: "USERNAME",
				Action:    userFollowing,
			},
			{
				Name:      "reactions",
				Usage:     "List posts a user reacted to",
				ArgsUsage: "[options] USERNAME",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "type",
						Aliases: []string{"t"},
						Value:   domain.ReactionLike,
						Usage:   "Reaction type: " + strings.Join(domain.ReactionFilters, ", "),
					},
					&cli.IntFlag{Name: "page", Value: 1, Usage: "Page number"},
				},
				Action: userReactions,
			},
			{
				Name:      "follow",
				Usage:     "Toggle following a user",
				ArgsUsage: "USERNAME",
				Action:    userFollow,
			},
		},
	}
}

func usernameArg(c *cli.Context) (string, error) {
	if err := checkArgs(c, 1); err != nil {
		return "", err
	}
	name := strings.TrimPrefix(c.Args().First(), "@")
	if name == "" {
		return "", domain.ErrMissingArgument.WithDetails("username")
	}
	return name, nil
}

func userGet(c *cli.Context) error {
	name, err := usernameArg(c)
	if err != nil {
		return err
	}
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	ctx, cancel := rt.RequestContext(c)
	defer cancel()

	u, err := rt.Services.Users.Get(ctx, name)
	if err != nil {
		return err
	}

	p, err := rt.Printer(c)
	if err != nil {
		return err
	}
	return p.Print(u, view.UserTable(u))
}

func userPosts(c *cli.Context) error {
	name, err := usernameArg(c)
	if err != nil {
		return err
	}
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	ctx, cancel := rt.RequestContext(c)
	defer cancel()

	page, err := rt.Services.Users.Posts(ctx, name, c.Int("page"))
	if err != nil {
		return err
	}
	return printPosts(rt, c, page)
}

func userFollowers(c *cli.Context) error {
	return userFollowList(c, true)
}

func userFollowing(c *cli.Context) error {
	return userFollowList(c, false)
}

func userFollowList(c *cli.Context, followers bool) error {
	name, err := usernameArg(c)
	if err != nil {
		return err
	}
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	ctx, cancel := rt.RequestContext(c)
	defer cancel()

	var follows []domain.Follow
	if followers {
		follows, err = rt.Services.Users.Followers(ctx, name)
	} else {
		follows, err = rt.Services.Users.Following(ctx, name)
	}
	if err != nil {
		return err
	}

	p, err := rt.Printer(c)
	if err != nil {
		return err
	}
	if p.Human() && len(follows) == 0 {
		p.Message("Nobody yet.")
		return nil
	}
	return p.Print(follows, view.FollowsTable(follows, followers))
}

func userReactions(c *cli.Context) error {
	name, err := usernameArg(c)
	if err != nil {
		return err
	}
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	ctx, cancel := rt.RequestContext(c)
	defer cancel()

	page, err := rt.Services.Users.Reactions(ctx, name, c.String("type"), c.Int("page"))
	if err != nil {
		return err
	}
	return printPosts(rt, c, page)
}

func userFollow(c *cli.Context) error {
	name, err := usernameArg(c)
	if err != nil {
		return err
	}
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	ctx, cancel := rt.RequestContext(c)
	defer cancel()

	res, err := rt.Services.Users.Follow(ctx, name)
	if err != nil {
		return err
	}
	return printToggle(rt, c, res, "following @"+name)
}
