package command

import (
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/mitaina-cli/internal/cli/view"
	"github.com/yndnr/mitaina-cli/internal/core/domain"
)

// MeCommand returns the me subcommand group.
func MeCommand() *cli.Command {
	return &cli.Command{
		Name:  "me",
		Usage: "Your profile, reactions and notifications",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show your profile",
				Action: meShow,
			},
			{
				Name:  "update",
				Usage: "Change your profile",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Usage: "New username"},
					&cli.StringFlag{Name: "handle-name", Usage: "New display name"},
					&cli.StringFlag{Name: "email", Usage: "New email address"},
				},
				Action: meUpdate,
			},
			{
				Name:  "reactions",
				Usage: "List posts you reacted to",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "type",
						Aliases: []string{"t"},
						Value:   domain.ReactionLike,
						Usage:   "Reaction type: " + strings.Join(domain.ReactionFilters, ", "),
					},
					&cli.IntFlag{Name: "page", Value: 1, Usage: "Page number"},
				},
				Action: meReactions,
			},
			{
				Name:    "notifications",
				Aliases: []string{"notes"},
				Usage:   "List your notifications",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "page", Value: 1, Usage: "Page number"},
					&cli.BoolFlag{Name: "unread", Usage: "Only unread notifications"},
				},
				Action: meNotifications,
			},
			{
				Name:      "read",
				Usage:     "Mark a notification as read",
				ArgsUsage: "NOTIFICATION_ID",
				Action:    meRead,
			},
			{
				Name:   "read-all",
				Usage:  "Mark every notification as read",
				Action: meReadAll,
			},
		},
	}
}

func meShow(c *cli.Context) error {
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	ctx, cancel := rt.RequestContext(c)
	defer cancel()

	u, err := rt.Services.Me.Profile(ctx)
	if err != nil {
		return err
	}

	p, err := rt.Printer(c)
	if err != nil {
		return err
	}
	return p.Print(u, view.UserTable(u))
}

func meUpdate(c *cli.Context) error {
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	var upd domain.ProfileUpdate
	if c.IsSet("username") {
		v := c.String("username")
		upd.Username = &v
	}
	if c.IsSet("handle-name") {
		v := c.String("handle-name")
		upd.HandleName = &v
	}
	if c.IsSet("email") {
		v := c.String("email")
		upd.Email = &v
	}

	ctx, cancel := rt.RequestContext(c)
	defer cancel()

	u, err := rt.Services.Me.UpdateProfile(ctx, upd)
	if err != nil {
		return err
	}

	p, err := rt.Printer(c)
	if err != nil {
		return err
	}
	return p.Print(u, view.UserTable(u))
}

func meReactions(c *cli.Context) error {
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	ctx, cancel := rt.RequestContext(c)
	defer cancel()

	page, err := rt.Services.Me.Reactions(ctx, c.String("type"), c.Int("page"))
	if err != nil {
		return err
	}
	return printPosts(rt, c, page)
}

func meNotifications(c *cli.Context) error {
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	ctx, cancel := rt.RequestContext(c)
	defer cancel()

	page, err := rt.Services.Me.Notifications(ctx, c.Int("page"))
	if err != nil {
		return err
	}
	if c.Bool("unread") {
		unread := page.Results[:0]
		for _, n := range page.Results {
			if !n.IsRead {
				unread = append(unread, n)
			}
		}
		page.Results = unread
	}
	return printNotifications(rt, c, page)
}

func printNotifications(rt *Runtime, c *cli.Context, page *domain.Page[domain.Notification]) error {
	p, err := rt.Printer(c)
	if err != nil {
		return err
	}
	if p.Human() && len(page.Results) == 0 {
		p.Message("No notifications.")
		return nil
	}
	table := view.NotificationsTable(page.Results)
	table.Footer = view.PageFooter(page)
	return p.Print(page, table)
}

func meRead(c *cli.Context) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}
	arg := c.Args().First()
	if arg == "" {
		return domain.ErrMissingArgument.WithDetails("notification ID")
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return domain.ErrInvalidArgument.WithDetails("notification ID " + strconv.Quote(arg))
	}
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	ctx, cancel := rt.RequestContext(c)
	defer cancel()

	n, err := rt.Services.Me.MarkRead(ctx, id)
	if err != nil {
		return err
	}

	p, err := rt.Printer(c)
	if err != nil {
		return err
	}
	if p.Human() {
		p.Message("Notification %d marked as read.", n.ID)
		return nil
	}
	return p.Print(n, nil)
}

func meReadAll(c *cli.Context) error {
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	ctx, cancel := rt.RequestContext(c)
	defer cancel()

	detail, err := rt.Services.Me.MarkAllRead(ctx)
	if err != nil {
		return err
	}
	return printDetail(rt, c, detail, "All notifications marked as read.")
}
