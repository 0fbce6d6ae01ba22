package command

import (
	"fmt"
	"net/url"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/mitaina-cli/internal/core/domain"
)

// LoginCommand returns the login command.
func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Log in and store the session token",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "Username (prompted when omitted)",
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "Password (prompted when omitted)",
				EnvVars: []string{"MITAINA_PASSWORD"},
			},
		},
		Action: login,
	}
}

func login(c *cli.Context) error {
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	creds := domain.Credentials{
		Username: c.String("username"),
		Password: c.String("password"),
	}
	if err := askMissing(rt, field{"Username", &creds.Username, false}, field{"Password", &creds.Password, true}); err != nil {
		return err
	}

	ctx, cancel := rt.RequestContext(c)
	defer cancel()

	if err := rt.Services.Auth.Login(ctx, creds); err != nil {
		return err
	}

	p, err := rt.Printer(c)
	if err != nil {
		return err
	}
	p.Message("Logged in as %s.", creds.Username)
	return nil
}

// LogoutCommand returns the logout command.
func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "Log out and forget the session token",
		Action: logout,
	}
}

func logout(c *cli.Context) error {
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	ctx, cancel := rt.RequestContext(c)
	defer cancel()

	// The local token is gone even when the server call fails.
	err = rt.Services.Auth.Logout(ctx)

	p, perr := rt.Printer(c)
	if perr != nil {
		return perr
	}
	if err != nil {
		rt.Log.Warn("server logout failed", "error", err)
	}
	p.Message("Logged out.")
	return nil
}

// RegisterCommand returns the register command.
func RegisterCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "Create an account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Username"},
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Email address"},
			&cli.StringFlag{Name: "handle-name", Usage: "Display name"},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Password (prompted twice when omitted)", EnvVars: []string{"MITAINA_PASSWORD"}},
		},
		Action: register,
	}
}

func register(c *cli.Context) error {
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	reg := domain.Registration{
		Username:   c.String("username"),
		Email:      c.String("email"),
		HandleName: c.String("handle-name"),
		Password1:  c.String("password"),
	}
	if reg.Password1 != "" {
		reg.Password2 = reg.Password1
	}
	err = askMissing(rt,
		field{"Username", &reg.Username, false},
		field{"Email", &reg.Email, false},
		field{"Password", &reg.Password1, true},
		field{"Password (again)", &reg.Password2, true},
	)
	if err != nil {
		return err
	}

	ctx, cancel := rt.RequestContext(c)
	defer cancel()

	loggedIn, err := rt.Services.Auth.Register(ctx, reg)
	if err != nil {
		return err
	}

	p, err := rt.Printer(c)
	if err != nil {
		return err
	}
	if loggedIn {
		p.Message("Registered and logged in as %s.", reg.Username)
	} else {
		p.Message("Registered. Confirm your email address, then log in.")
	}
	return nil
}

// PasswordResetCommand returns the password-reset subcommand group.
func PasswordResetCommand() *cli.Command {
	return &cli.Command{
		Name:  "password-reset",
		Usage: "Reset a forgotten password",
		Subcommands: []*cli.Command{
			{
				Name:  "request",
				Usage: "Email a reset link",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email (prompted when omitted)"},
				},
				Action: passwordResetRequest,
			},
			{
				Name:      "confirm",
				Usage:     "Set a new password from a reset link",
				ArgsUsage: "[options] [LINK]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "uid", Usage: "uid from the reset link"},
					&cli.StringFlag{Name: "token", Usage: "token from the reset link"},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "New password (prompted twice when omitted)", EnvVars: []string{"MITAINA_PASSWORD"}},
				},
				Action: passwordResetConfirm,
			},
		},
	}
}

func passwordResetRequest(c *cli.Context) error {
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	email := c.String("email")
	if err := askMissing(rt, field{"Email", &email, false}); err != nil {
		return err
	}

	ctx, cancel := rt.RequestContext(c)
	defer cancel()

	detail, err := rt.Services.Auth.RequestPasswordReset(ctx, email)
	if err != nil {
		return err
	}
	return printDetail(rt, c, detail, "Password reset e-mail has been sent.")
}

func passwordResetConfirm(c *cli.Context) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	conf := domain.PasswordResetConfirm{
		UID:          c.String("uid"),
		Token:        c.String("token"),
		NewPassword1: c.String("password"),
	}
	if link := c.Args().First(); link != "" {
		u, err := url.Parse(link)
		if err != nil {
			return fmt.Errorf("parse reset link: %w", err)
		}
		q := u.Query()
		if conf.UID == "" {
			conf.UID = q.Get("uid")
		}
		if conf.Token == "" {
			conf.Token = q.Get("token")
		}
	}
	if conf.UID == "" || conf.Token == "" {
		return domain.ErrResetLinkIncomplete
	}
	if conf.NewPassword1 != "" {
		conf.NewPassword2 = conf.NewPassword1
	}
	err = askMissing(rt,
		field{"New password", &conf.NewPassword1, true},
		field{"New password (again)", &conf.NewPassword2, true},
	)
	if err != nil {
		return err
	}

	ctx, cancel := rt.RequestContext(c)
	defer cancel()

	detail, err := rt.Services.Auth.ConfirmPasswordReset(ctx, conf)
	if err != nil {
		return err
	}
	return printDetail(rt, c, detail, "Password has been reset with the new password.")
}

// field is one value that is prompted for when empty.
type field struct {
	label  string
	dst    *string
	secret bool
}

func askMissing(rt *Runtime, fields ...field) error {
	for _, f := range fields {
		if *f.dst != "" {
			continue
		}
		ask := rt.Prompter.Ask
		if f.secret {
			ask = rt.Prompter.AskSecret
		}
		v, err := ask(f.label)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return nil
}

func printDetail(rt *Runtime, c *cli.Context, detail, fallback string) error {
	p, err := rt.Printer(c)
	if err != nil {
		return err
	}
	if detail == "" {
		detail = fallback
	}
	if p.Human() {
		p.Message("%s", detail)
		return nil
	}
	return p.Print(domain.Detail{Detail: detail}, nil)
}
