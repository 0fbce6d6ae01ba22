package view

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strconv"

	"github.com/yndnr/mitaina-cli/internal/cli/router"
	"github.com/yndnr/mitaina-cli/internal/core/domain"
	"github.com/yndnr/mitaina-cli/internal/core/service"
)

// formField is one prompted answer.
type formField struct {
	label  string
	dst    *string
	secret bool
}

func (s *Screens) home(ctx context.Context, loc *router.Location) (string, error) {
	q := service.PostQuery{
		Genre:    loc.Query.Get("genre"),
		Search:   loc.Query.Get("search"),
		Ordering: loc.Query.Get("ordering"),
		Page:     queryInt(loc.Query, "page"),
	}
	page, err := s.svc.Posts.List(ctx, q)
	if err != nil {
		return "", err
	}

	p := s.Printer()
	if !p.Human() {
		return "", p.Print(page, nil)
	}

	if len(page.Results) == 0 {
		p.Message("No posts.")
		return "", nil
	}
	if err := p.Print(page, PostsTable(page.Results, p.Wide)); err != nil {
		return "", err
	}
	p.Message("")
	p.Message("Total: %d", page.Count)
	if page.HasPrevious() {
		p.Message("prev: %s", pageLocation(loc, PageNumber(*page.Previous)))
	}
	if page.HasNext() {
		p.Message("next: %s", pageLocation(loc, PageNumber(*page.Next)))
	}
	return "", nil
}

// pageLocation is loc with its page parameter replaced.
func pageLocation(loc *router.Location, page int) string {
	q := url.Values{}
	for k, v := range loc.Query {
		q[k] = v
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	} else {
		q.Del("page")
	}
	next := router.Location{Path: loc.Path, Query: q}
	return next.FullPath()
}

func (s *Screens) login(ctx context.Context, _ *router.Location) (string, error) {
	username, err := s.prompt.Ask("Username")
	if err != nil {
		return "", err
	}
	password, err := s.prompt.AskSecret("Password")
	if err != nil {
		return "", err
	}

	if err := s.svc.Auth.Login(ctx, domain.Credentials{Username: username, Password: password}); err != nil {
		return "", err
	}
	s.Printer().Message("Logged in as %s.", username)
	return router.PathHome, nil
}

func (s *Screens) register(ctx context.Context, _ *router.Location) (string, error) {
	var reg domain.Registration
	fields := []formField{
		{"Username", &reg.Username, false},
		{"Email", &reg.Email, false},
		{"Handle name", &reg.HandleName, false},
		{"Password", &reg.Password1, true},
		{"Password (again)", &reg.Password2, true},
	}
	if err := s.askAll(fields); err != nil {
		return "", err
	}

	loggedIn, err := s.svc.Auth.Register(ctx, reg)
	if err != nil {
		return "", err
	}

	p := s.Printer()
	if loggedIn {
		p.Message("Registered and logged in as %s.", reg.Username)
		return router.PathHome, nil
	}
	p.Message("Registered. Confirm your email address, then log in.")
	return router.PathLogin, nil
}

func (s *Screens) passwordReset(ctx context.Context, loc *router.Location) (string, error) {
	uid, token := loc.Query.Get("uid"), loc.Query.Get("token")
	if uid == "" && token == "" {
		email, err := s.prompt.Ask("Email")
		if err != nil {
			return "", err
		}
		detail, err := s.svc.Auth.RequestPasswordReset(ctx, email)
		if err != nil {
			return "", err
		}
		s.Printer().Message("%s", orDefault(detail, "Password reset e-mail has been sent."))
		return "", nil
	}

	c := domain.PasswordResetConfirm{UID: uid, Token: token}
	fields := []formField{
		{"New password", &c.NewPassword1, true},
		{"New password (again)", &c.NewPassword2, true},
	}
	if err := s.askAll(fields); err != nil {
		return "", err
	}

	detail, err := s.svc.Auth.ConfirmPasswordReset(ctx, c)
	if err != nil {
		return "", err
	}
	s.Printer().Message("%s", orDefault(detail, "Password has been reset with the new password."))
	return router.PathLogin, nil
}

func (s *Screens) newPost(ctx context.Context, _ *router.Location) (string, error) {
	var np domain.NewPost
	fields := []formField{
		{"Text", &np.Text, false},
		{"Genre", &np.Genre, false},
		{"Work title", &np.WorkTitle, false},
		{"Performer", &np.PerformerName, false},
	}
	if err := s.askAll(fields); err != nil {
		return "", err
	}

	post, err := s.svc.Posts.Create(ctx, np)
	if err != nil {
		return "", err
	}
	s.Printer().Message("Posted #%d.", post.ID)
	return router.Build("/p/:id", "id", strconv.FormatInt(post.ID, 10)), nil
}

func (s *Screens) me(ctx context.Context, _ *router.Location) (string, error) {
	profile, err := s.svc.Me.Profile(ctx)
	if err != nil {
		return "", err
	}
	notes, err := s.svc.Me.Notifications(ctx, 1)
	if err != nil {
		return "", err
	}

	unread := make([]domain.Notification, 0, len(notes.Results))
	for _, n := range notes.Results {
		if !n.IsRead {
			unread = append(unread, n)
		}
	}

	p := s.Printer()
	if !p.Human() {
		return "", p.Print(struct {
			Profile       *domain.User          `json:"profile" yaml:"profile"`
			Notifications []domain.Notification `json:"unread_notifications" yaml:"unread_notifications"`
		}{profile, unread}, nil)
	}

	if err := p.Print(profile, UserTable(profile)); err != nil {
		return "", err
	}
	p.Message("")
	if len(unread) == 0 {
		p.Message("No unread notifications.")
		return "", nil
	}
	p.Message("Unread notifications:")
	return "", p.Print(unread, NotificationsTable(unread))
}

func (s *Screens) post(ctx context.Context, loc *router.Location) (string, error) {
	id, err := domain.ParsePostID(loc.Param("id"))
	if err != nil {
		return "", err
	}
	post, err := s.svc.Posts.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return "", s.Printer().Print(post, PostTable(post))
}

func (s *Screens) user(ctx context.Context, loc *router.Location) (string, error) {
	username := loc.Param("username")
	u, err := s.svc.Users.Get(ctx, username)
	if err != nil {
		return "", err
	}
	posts, err := s.svc.Users.Posts(ctx, username, queryInt(loc.Query, "page"))
	if err != nil {
		return "", err
	}

	p := s.Printer()
	if !p.Human() {
		return "", p.Print(struct {
			User  *domain.User              `json:"user" yaml:"user"`
			Posts *domain.Page[domain.Post] `json:"posts" yaml:"posts"`
		}{u, posts}, nil)
	}

	if err := p.Print(u, UserTable(u)); err != nil {
		return "", err
	}
	p.Message("")
	if len(posts.Results) == 0 {
		p.Message("No posts.")
		return "", nil
	}
	if err := p.Print(posts, PostsTable(posts.Results, p.Wide)); err != nil {
		return "", err
	}
	if posts.HasNext() {
		p.Message("next: %s", pageLocation(loc, PageNumber(*posts.Next)))
	}
	return "", nil
}

func (s *Screens) askAll(fields []formField) error {
	for _, f := range fields {
		ask := s.prompt.Ask
		if f.secret {
			ask = s.prompt.AskSecret
		}
		v, err := ask(f.label)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return nil
}

func queryInt(q url.Values, key string) int {
	n, err := strconv.Atoi(q.Get(key))
	if err != nil {
		return 0
	}
	return n
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// IsAborted reports whether err came from input closing during a prompt.
func IsAborted(err error) bool {
	return errors.Is(err, io.EOF)
}
