package command

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/mitaina-cli/internal/cli/view"
	"github.com/yndnr/mitaina-cli/internal/core/domain"
	"github.com/yndnr/mitaina-cli/internal/core/service"
)

// PostCommand returns the post subcommand group.
func PostCommand() *cli.Command {
	return &cli.Command{
		Name:    "post",
		Aliases: []string{"posts"},
		Usage:   "Browse and manage posts",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List posts",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "genre", Aliases: []string{"g"}, Usage: "Filter by genre"},
					&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "Search text, work and performer"},
					&cli.StringFlag{
						Name:  "ordering",
						Usage: "Sort order: " + strings.Join(service.PostOrderings, ", "),
					},
					&cli.IntFlag{Name: "page", Value: 1, Usage: "Page number"},
				},
				Action: postList,
			},
			{
				Name:      "get",
				Usage:     "Show a post",
				ArgsUsage: "POST_ID",
				Action:    postGet,
			},
			{
				Name:  "new",
				Usage: "Create a post",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "text", Aliases: []string{"t"}, Usage: "Post text, at most 136 characters (prompted when omitted)"},
					&cli.StringFlag{Name: "genre", Aliases: []string{"g"}, Usage: "Genre"},
					&cli.StringFlag{Name: "work", Usage: "Work title"},
					&cli.StringFlag{Name: "performer", Usage: "Performer name"},
				},
				Action: postNew,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete one of your posts",
				ArgsUsage: "[options] POST_ID",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "Skip confirmation",
					},
				},
				Action: postDelete,
			},
			{
				Name:      "react",
				Usage:     "Toggle a reaction: " + strings.Join(domain.ReactionTypes, ", "),
				ArgsUsage: "POST_ID TYPE",
				Action:    postReact,
			},
			{
				Name:      "report",
				Usage:     "Report a post: " + strings.Join(domain.ReportReasons, ", "),
				ArgsUsage: "POST_ID REASON",
				Action:    postReport,
			},
		},
	}
}

func postList(c *cli.Context) error {
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	ctx, cancel := rt.RequestContext(c)
	defer cancel()

	page, err := rt.Services.Posts.List(ctx, service.PostQuery{
		Genre:    c.String("genre"),
		Search:   c.String("search"),
		Ordering: c.String("ordering"),
		Page:     c.Int("page"),
	})
	if err != nil {
		return err
	}
	return printPosts(rt, c, page)
}

func postGet(c *cli.Context) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}
	id, err := postIDArg(c)
	if err != nil {
		return err
	}
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	ctx, cancel := rt.RequestContext(c)
	defer cancel()

	post, err := rt.Services.Posts.Get(ctx, id)
	if err != nil {
		return err
	}

	p, err := rt.Printer(c)
	if err != nil {
		return err
	}
	return p.Print(post, view.PostTable(post))
}

func postNew(c *cli.Context) error {
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	np := domain.NewPost{
		Text:          c.String("text"),
		Genre:         c.String("genre"),
		WorkTitle:     c.String("work"),
		PerformerName: c.String("performer"),
	}
	if err := askMissing(rt, field{"Text", &np.Text, false}); err != nil {
		return err
	}

	ctx, cancel := rt.RequestContext(c)
	defer cancel()

	post, err := rt.Services.Posts.Create(ctx, np)
	if err != nil {
		return err
	}

	p, err := rt.Printer(c)
	if err != nil {
		return err
	}
	if p.Human() {
		p.Message("Posted #%d.", post.ID)
		return nil
	}
	return p.Print(post, nil)
}

func postDelete(c *cli.Context) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}
	id, err := postIDArg(c)
	if err != nil {
		return err
	}
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	if !c.Bool("force") {
		answer, err := rt.Prompter.Ask(fmt.Sprintf("Delete post %d? [y/N]", id))
		if err != nil {
			return err
		}
		if answer != "y" && answer != "Y" {
			fmt.Fprintln(rt.Out, "Cancelled.")
			return nil
		}
	}

	ctx, cancel := rt.RequestContext(c)
	defer cancel()

	if err := rt.Services.Posts.Delete(ctx, id); err != nil {
		return err
	}

	p, err := rt.Printer(c)
	if err != nil {
		return err
	}
	p.Message("Post %d deleted.", id)
	return nil
}

func postReact(c *cli.Context) error {
	if err := checkArgs(c, 2); err != nil {
		return err
	}
	id, err := postIDArg(c)
	if err != nil {
		return err
	}
	reaction := c.Args().Get(1)
	if reaction == "" {
		return domain.ErrMissingArgument.WithDetails("reaction type")
	}
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	ctx, cancel := rt.RequestContext(c)
	defer cancel()

	res, err := rt.Services.Posts.React(ctx, id, reaction)
	if err != nil {
		return err
	}
	return printToggle(rt, c, res, fmt.Sprintf("%s on post %d", reaction, id))
}

func postReport(c *cli.Context) error {
	if err := checkArgs(c, 2); err != nil {
		return err
	}
	id, err := postIDArg(c)
	if err != nil {
		return err
	}
	reason := c.Args().Get(1)
	if reason == "" {
		return domain.ErrMissingArgument.WithDetails("report reason")
	}
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	ctx, cancel := rt.RequestContext(c)
	defer cancel()

	detail, err := rt.Services.Posts.Report(ctx, id, reason)
	if err != nil {
		return err
	}
	return printDetail(rt, c, detail, fmt.Sprintf("Post %d reported.", id))
}

func postIDArg(c *cli.Context) (int64, error) {
	arg := c.Args().First()
	if arg == "" {
		return 0, domain.ErrMissingArgument.WithDetails("post ID")
	}
	return domain.ParsePostID(arg)
}

// printPosts prints a page of posts with its links as the table footer.
func printPosts(rt *Runtime, c *cli.Context, page *domain.Page[domain.Post]) error {
	p, err := rt.Printer(c)
	if err != nil {
		return err
	}
	if p.Human() && len(page.Results) == 0 {
		p.Message("No posts.")
		return nil
	}
	table := view.PostsTable(page.Results, p.Wide)
	table.Footer = view.PageFooter(page)
	return p.Print(page, table)
}

func printToggle(rt *Runtime, c *cli.Context, res *domain.ToggleResult, what string) error {
	p, err := rt.Printer(c)
	if err != nil {
		return err
	}
	if !p.Human() {
		return p.Print(res, nil)
	}
	state := "off"
	if res.Active() {
		state = "on"
	}
	p.Message("%s: %s", what, state)
	return nil
}
