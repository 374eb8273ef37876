package actorctx

import (
	"context"
	"testing"

	"github.com/geocoder89/antologia/internal/domain/user"
	"github.com/geocoder89/antologia/internal/session"
)

func TestSessionRoundTrip(t *testing.T) {
	if SessionFrom(context.Background()).IsLoggedIn() {
		t.Fatalf("empty context must be anonymous")
	}

	want := session.Session{UserID: 3, Username: "ana", Role: user.RoleAuthor}
	ctx := WithSession(context.Background(), want)

	if got := SessionFrom(ctx); got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
