package command

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/yndnr/mitaina-cli/internal/core/domain"
)

func TestUserGet(t *testing.T) {
	srv := newMockServer(t)
	srv.reply("GET /api/users/taro/", http.StatusOK, sampleUser)

	res := runCLI(t, srv, tokenKV(t, ""), "", "user", "get", "@taro")
	if res.err != nil {
		t.Fatal(res.err)
	}
	if srv.last().URI != "/api/users/taro/" {
		t.Errorf("URI = %q", srv.last().URI)
	}
	if !strings.Contains(res.out, "Taro") {
		t.Errorf("output = %s", res.out)
	}

	res = runCLI(t, srv, tokenKV(t, ""), "", "user", "get")
	if !errors.Is(res.err, domain.ErrMissingArgument) {
		t.Errorf("err = %v", res.err)
	}
}

func TestUserPosts(t *testing.T) {
	srv := newMockServer(t)
	srv.reply("GET /api/users/taro/posts/", http.StatusOK, postPage("", samplePost))

	res := runCLI(t, srv, tokenKV(t, ""), "", "user", "posts", "--page", "2", "taro")
	if res.err != nil {
		t.Fatal(res.err)
	}
	if srv.last().URI != "/api/users/taro/posts/?page=2" {
		t.Errorf("URI = %q", srv.last().URI)
	}
	if !strings.Contains(res.out, "猫みたいな") {
		t.Errorf("output = %s", res.out)
	}
}

func TestUserFollowers(t *testing.T) {
	srv := newMockServer(t)
	srv.reply("GET /api/users/taro/followers/", http.StatusOK,
		`[{"id":3,"follower":{"id":2,"public_id":"hanako","handle_name":"Hanako"},"following":{"id":1,"public_id":"taro","handle_name":"Taro"},"created_at":"2026-01-02T03:04:05Z"}]`)
	srv.reply("GET /api/users/taro/following/", http.StatusOK, `[]`)

	res := runCLI(t, srv, tokenKV(t, ""), "", "user", "followers", "taro")
	if res.err != nil {
		t.Fatal(res.err)
	}
	if !strings.Contains(res.out, "hanako") || strings.Contains(res.out, "taro ") {
		t.Errorf("followers output = %s", res.out)
	}

	res = runCLI(t, srv, tokenKV(t, ""), "", "user", "following", "taro")
	if res.err != nil {
		t.Fatal(res.err)
	}
	if !strings.Contains(res.out, "Nobody yet.") {
		t.Errorf("following output = %q", res.out)
	}
}

func TestUserReactions(t *testing.T) {
	srv := newMockServer(t)
	srv.reply("GET /api/users/taro/reactions/", http.StatusOK, postPage("", samplePost))

	res := runCLI(t, srv, tokenKV(t, ""), "", "user", "reactions", "--type", "collect", "taro")
	if res.err != nil {
		t.Fatal(res.err)
	}
	if srv.last().URI != "/api/users/taro/reactions/?type=collect" {
		t.Errorf("URI = %q", srv.last().URI)
	}

	before := srv.count()
	res = runCLI(t, srv, tokenKV(t, ""), "", "user", "reactions", "--type", "love", "taro")
	if !errors.Is(res.err, domain.ErrInvalidReaction) {
		t.Errorf("err = %v", res.err)
	}
	if srv.count() != before {
		t.Error("invalid type should not reach the server")
	}
}

func TestUserFollow(t *testing.T) {
	srv := newMockServer(t)
	srv.reply("POST /api/users/taro/follow/", http.StatusOK, `{"detail":"followed","is_following":true}`)

	res := runCLI(t, srv, tokenKV(t, "tok"), "", "user", "follow", "taro")
	if res.err != nil {
		t.Fatal(res.err)
	}
	if srv.last().Auth != "Token tok" {
		t.Errorf("Authorization = %q", srv.last().Auth)
	}
	if !strings.Contains(res.out, "following @taro: on") {
		t.Errorf("output = %q", res.out)
	}
}

func TestUserCommands_FlagAfterArgument(t *testing.T) {
	srv := newMockServer(t)
	srv.reply("GET /api/users/taro/", http.StatusOK, postPage("", samplePost))

	for _, args := range [][]string{
		{"user", "posts", "taro", "--page", "2"},
		{"user", "reactions", "taro", "--type", "love"},
		{"user", "get", "taro", "hanako"},
	} {
		res := runCLI(t, srv, tokenKV(t, ""), "", args...)
		if !errors.Is(res.err, domain.ErrInvalidArgument) {
			t.Errorf("%v: err = %v, want ErrInvalidArgument", args, res.err)
		}
	}
	if srv.count() != 0 {
		t.Errorf("misplaced flags reached the server %d times", srv.count())
	}
}
