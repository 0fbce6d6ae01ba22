package view

import (
	"net/url"
	"strconv"

	"github.com/yndnr/mitaina-cli/internal/cli/output"
	"github.com/yndnr/mitaina-cli/internal/core/domain"
)

const textWidth = 40

// PostsTable lists posts one per row. Wide adds the work and performer
// columns and stops truncating text.
func PostsTable(posts []domain.Post, wide bool) *output.Table {
	headers := []string{"ID", "AUTHOR", "TEXT", "GENRE", "LIKE", "HATENA", "CORRECT", "CREATED"}
	if wide {
		headers = append(headers, "WORK", "PERFORMER")
	}
	t := output.NewTable(headers...)

	for _, p := range posts {
		text := p.Text
		if !wide {
			text = output.Truncate(text, textWidth)
		}
		row := []string{
			strconv.FormatInt(p.ID, 10),
			"@" + p.Author.Username,
			text,
			dash(p.Genre),
			strconv.Itoa(p.LikeCount),
			strconv.Itoa(p.HatenaCount),
			strconv.Itoa(p.CorrectCount),
			output.FormatTime(p.CreatedAt),
		}
		if wide {
			row = append(row, dash(p.WorkTitle), dash(p.PerformerName))
		}
		t.AddRow(row...)
	}
	return t
}

// PostTable shows one post as field/value rows.
func PostTable(p *domain.Post) *output.Table {
	t := output.NewTable("FIELD", "VALUE")
	t.AddRow("ID", strconv.FormatInt(p.ID, 10))
	t.AddRow("Author", p.Author.DisplayName())
	t.AddRow("Text", p.Text)
	t.AddRow("Genre", dash(p.Genre))
	t.AddRow("Work", dash(p.WorkTitle))
	t.AddRow("Performer", dash(p.PerformerName))
	t.AddRow("Like", strconv.Itoa(p.ReactionCounts.Like))
	t.AddRow("Hatena", strconv.Itoa(p.ReactionCounts.Hatena))
	t.AddRow("Correct", strconv.Itoa(p.ReactionCounts.Correct))
	t.AddRow("Created", output.FormatTime(p.CreatedAt))
	return t
}

// UserTable shows one user as field/value rows.
func UserTable(u *domain.User) *output.Table {
	t := output.NewTable("FIELD", "VALUE")
	t.AddRow("ID", strconv.FormatInt(u.ID, 10))
	t.AddRow("Username", u.Username)
	t.AddRow("Handle", dash(u.HandleName))
	if u.Email != "" {
		t.AddRow("Email", u.Email)
	}
	return t
}

// FollowsTable lists follow edges. With followers set the follower side
// is shown, otherwise the followed user.
func FollowsTable(follows []domain.Follow, followers bool) *output.Table {
	t := output.NewTable("USERNAME", "HANDLE", "SINCE")
	for _, f := range follows {
		u := f.Following
		if followers {
			u = f.Follower
		}
		t.AddRow(u.Username, dash(u.HandleName), output.FormatTime(f.CreatedAt))
	}
	return t
}

// NotificationsTable lists notifications one per row.
func NotificationsTable(ns []domain.Notification) *output.Table {
	t := output.NewTable("ID", "TYPE", "FROM", "POST", "READ", "CREATED")
	for _, n := range ns {
		post := "-"
		if n.Post != nil {
			post = strconv.FormatInt(n.Post.ID, 10)
		}
		read := "no"
		if n.IsRead {
			read = "yes"
		}
		t.AddRow(
			strconv.FormatInt(n.ID, 10),
			n.Type,
			"@"+n.Actor.Username,
			post,
			read,
			output.FormatTime(n.CreatedAt),
		)
	}
	return t
}

// PageFooter summarizes a page and its links for the table footer.
func PageFooter[T any](p *domain.Page[T]) string {
	footer := "Total: " + strconv.Itoa(p.Count)
	if p.HasPrevious() {
		footer += "\nprev: " + *p.Previous
	}
	if p.HasNext() {
		footer += "\nnext: " + *p.Next
	}
	return footer
}

// PageNumber returns the page query parameter of a pagination link.
// A link without one is the first page.
func PageNumber(link string) int {
	u, err := url.Parse(link)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(u.Query().Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
