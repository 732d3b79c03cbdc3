package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/plumablog/backend/internal/auth"
	"github.com/plumablog/backend/internal/httperr"
	"github.com/plumablog/backend/internal/repository/memory"
	"github.com/plumablog/backend/internal/worker"
)

type userFixture struct {
	svc   *UserService
	users *memory.Users
	logs  *memory.AuditLogs
	wp    *worker.Pool
	tm    *auth.TokenManager
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	users := memory.NewUsers()
	logs := memory.NewAuditLogs()
	wp := worker.NewPool(1)
	tm := auth.NewTokenManager("test-secret", 0)
	return &userFixture{
		svc:   NewUserService(users, tm, bcrypt.MinCost, logs, wp),
		users: users,
		logs:  logs,
		wp:    wp,
		tm:    tm,
	}
}

func wantStatus(t *testing.T, err error, status int) {
	t.Helper()
	if err == nil {
		t.Fatalf("want status %d, got nil error", status)
	}
	he := httperr.From(err)
	if he.Status != status {
		t.Fatalf("status = %d (%s), want %d", he.Status, he.Message, status)
	}
}

func TestSignupHashesPassword(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	u, token, err := f.svc.Signup(ctx, "alice", "alice@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	stored, err := f.users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.PasswordHash == "hunter2" {
		t.Fatal("stored password equals plaintext")
	}
	if !auth.CheckPassword("hunter2", stored.PasswordHash) {
		t.Fatal("stored hash does not verify")
	}

	claims, err := f.tm.Parse(token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != u.ID || claims.IsAdmin {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestSignupNeverSerializesPassword(t *testing.T) {
	f := newUserFixture(t)
	u, _, err := f.svc.Signup(context.Background(), "alice", "alice@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	b, _ := json.Marshal(u)
	if strings.Contains(strings.ToLower(string(b)), "password") {
		t.Fatalf("serialized user leaks password field: %s", b)
	}
}

func TestSignupEmptyFields(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	for _, c := range [][3]string{
		{"", "a@b.com", "pw"},
		{"alice", "", "pw"},
		{"alice", "a@b.com", ""},
	} {
		_, _, err := f.svc.Signup(ctx, c[0], c[1], c[2])
		wantStatus(t, err, 400)
	}
}

func TestSignupDuplicateCaseInsensitive(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	if _, _, err := f.svc.Signup(ctx, "Alice", "Alice@Example.com", "pw"); err != nil {
		t.Fatalf("first signup: %v", err)
	}

	_, _, err := f.svc.Signup(ctx, "ALICE", "other@example.com", "pw")
	wantStatus(t, err, 400)
	_, _, err = f.svc.Signup(ctx, "bob", "ALICE@EXAMPLE.COM", "pw")
	wantStatus(t, err, 400)

	if n, _ := f.users.Count(ctx); n != 1 {
		t.Fatalf("user count = %d after duplicate signups, want 1", n)
	}
}

func TestSignInStatuses(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	if _, _, err := f.svc.Signup(ctx, "alice", "alice@example.com", "hunter2"); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	_, _, err := f.svc.SignIn(ctx, "", "pw")
	wantStatus(t, err, 400)

	_, _, err = f.svc.SignIn(ctx, "nobody@example.com", "pw")
	wantStatus(t, err, 404)

	// wrong password is 400, not 401
	_, _, err = f.svc.SignIn(ctx, "alice@example.com", "wrong")
	wantStatus(t, err, 400)

	u, token, err := f.svc.SignIn(ctx, "alice@example.com", "hunter2")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if u.Email != "alice@example.com" || token == "" {
		t.Fatalf("signin result = %+v, token %q", u, token)
	}
}

func TestGoogleFindOrCreate(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	u, token, err := f.svc.Google(ctx, "sara@example.com", "Sara Connor", "https://pic.example/s.png")
	if err != nil {
		t.Fatalf("Google: %v", err)
	}
	if token == "" {
		t.Fatal("no token issued")
	}
	if !strings.HasPrefix(u.Username, "sara") || len(u.Username) != len("sara")+4 {
		t.Fatalf("username = %q, want sara plus 4 digits", u.Username)
	}
	if u.ProfilePic != "https://pic.example/s.png" {
		t.Fatalf("profile pic = %q", u.ProfilePic)
	}
	if u.PasswordHash == "" {
		t.Fatal("no synthesized password stored")
	}

	again, _, err := f.svc.Google(ctx, "sara@example.com", "Sara Connor", "ignored")
	if err != nil {
		t.Fatalf("second Google: %v", err)
	}
	if again.ID != u.ID {
		t.Fatal("second federated sign-in created a new account")
	}
	if n, _ := f.users.Count(ctx); n != 1 {
		t.Fatalf("user count = %d, want 1", n)
	}
}

func TestUpdateSelfOnly(t *testing.T) {
	f := newUserFixture(t)
	_, err := f.svc.Update(context.Background(), "actor-1", "target-2", UpdateUserInput{Username: "x"})
	wantStatus(t, err, 401)
}

func TestUpdateProfilePicOnly(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	u, _, _ := f.svc.Signup(ctx, "alice", "alice@example.com", "pw")
	before, _ := f.users.GetByID(ctx, u.ID)

	got, err := f.svc.Update(ctx, u.ID, u.ID, UpdateUserInput{ProfilePic: "https://pic.example/new.png"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.ProfilePic != "https://pic.example/new.png" {
		t.Fatalf("profile pic = %q", got.ProfilePic)
	}
	after, _ := f.users.GetByID(ctx, u.ID)
	if after.PasswordHash != before.PasswordHash || after.Username != before.Username {
		t.Fatal("profile-pic-only update touched other fields")
	}
}

func TestUpdateKeepsHashWhenPasswordOmitted(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	u, _, _ := f.svc.Signup(ctx, "alice", "alice@example.com", "pw")
	before, _ := f.users.GetByID(ctx, u.ID)

	if _, err := f.svc.Update(ctx, u.ID, u.ID, UpdateUserInput{Username: "alice2", Email: "alice2@example.com"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	after, _ := f.users.GetByID(ctx, u.ID)
	if after.Username != "alice2" || after.Email != "alice2@example.com" {
		t.Fatalf("fields not updated: %+v", after)
	}
	if after.PasswordHash != before.PasswordHash {
		t.Fatal("password rehashed although none was supplied")
	}
}

func TestUpdateRehashesSuppliedPassword(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	u, _, _ := f.svc.Signup(ctx, "alice", "alice@example.com", "old-pw")

	if _, err := f.svc.Update(ctx, u.ID, u.ID, UpdateUserInput{Password: "new-pw"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	after, _ := f.users.GetByID(ctx, u.ID)
	if !auth.CheckPassword("new-pw", after.PasswordHash) {
		t.Fatal("new password does not verify")
	}
	if auth.CheckPassword("old-pw", after.PasswordHash) {
		t.Fatal("old password still verifies")
	}
}

func TestDeleteAuthorization(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	u, _, _ := f.svc.Signup(ctx, "alice", "alice@example.com", "pw")

	wantStatus(t, f.svc.Delete(ctx, "someone-else", u.ID), 401)
	wantStatus(t, f.svc.DeleteAsAdmin(ctx, auth.Identity{ID: "x", IsAdmin: false}, u.ID), 401)

	if err := f.svc.Delete(ctx, u.ID, u.ID); err != nil {
		t.Fatalf("self delete: %v", err)
	}
	if n, _ := f.users.Count(ctx); n != 0 {
		t.Fatalf("user count = %d after delete", n)
	}

	f.wp.Stop()
	entries := f.logs.Entries()
	if len(entries) != 1 || entries[0].Action != "delete" || entries[0].EntityID != u.ID {
		t.Fatalf("audit entries = %+v", entries)
	}
}

func TestListAdminOnly(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	for _, name := range []string{"a", "b", "c"} {
		if _, _, err := f.svc.Signup(ctx, name, name+"@example.com", "pw"); err != nil {
			t.Fatalf("Signup %s: %v", name, err)
		}
	}

	_, err := f.svc.List(ctx, auth.Identity{ID: "u", IsAdmin: false}, pageOf(10, 0))
	wantStatus(t, err, 401)

	res, err := f.svc.List(ctx, auth.Identity{ID: "admin", IsAdmin: true}, pageOf(2, 0))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.TotalUsers != 3 || len(res.Users) != 2 {
		t.Fatalf("total = %d, page len = %d", res.TotalUsers, len(res.Users))
	}
	if res.LastMonth != 3 {
		t.Fatalf("lastMonth = %d, want 3", res.LastMonth)
	}
}

func TestGetUser(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	_, err := f.svc.Get(ctx, "missing")
	wantStatus(t, err, 404)

	u, _, _ := f.svc.Signup(ctx, "alice", "alice@example.com", "pw")
	got, err := f.svc.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Username != "alice" {
		t.Fatalf("got = %+v", got)
	}
}
