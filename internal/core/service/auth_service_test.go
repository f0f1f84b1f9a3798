package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
	"github.com/clinicnavigator/clinic-portal/internal/core/ports"
)

type authFixture struct {
	creds    *stubCredentialRepo
	profiles *stubProfileRepo
	sessions *stubSessionStore
	activity *stubRecorder
	svc      *AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		creds:    newStubCredentialRepo(),
		profiles: newStubProfileRepo(),
		sessions: newStubSessionStore(),
		activity: &stubRecorder{},
	}
	f.svc = NewAuthService(f.creds, f.profiles, f.sessions, f.activity, "secret", time.Hour, zerolog.Nop())
	return f
}

// seedUser stores a credential with the given password and, when role is
// non-nil, a profile carrying that role tag.
func (f *authFixture) seedUser(t *testing.T, uid, email, password string, role *string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	f.creds.byEmail[email] = &domain.Credential{ID: uid, Email: email, PasswordHash: string(hash)}
	if role != nil {
		f.profiles.put(&domain.Profile{UID: uid, Email: email, FullName: "Test User", Role: *role})
	}
}

func strPtr(s string) *string { return &s }

func TestAuthService_Login_RoutesEveryRole(t *testing.T) {
	for _, role := range domain.Roles() {
		t.Run(role.String(), func(t *testing.T) {
			f := newAuthFixture()
			f.seedUser(t, "uid-1", "user@clinic.test", "s3cret!", strPtr(role.String()))

			res, err := f.svc.Login(context.Background(), "user@clinic.test", "s3cret!")
			if err != nil {
				t.Fatalf("login failed: %v", err)
			}
			want, _ := role.DashboardPath()
			if res.DashboardPath != want {
				t.Fatalf("expected %s, got %s", want, res.DashboardPath)
			}
			if res.Role != role {
				t.Fatalf("expected role %s, got %s", role, res.Role)
			}
			if len(f.sessions.live) != 1 {
				t.Fatalf("expected one live session, got %d", len(f.sessions.live))
			}
		})
	}
}

func TestAuthService_Login_TokenClaims(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "uid-7", "carol@clinic.test", "s3cret!", strPtr("Doctor"))

	res, err := f.svc.Login(context.Background(), "  Carol@Clinic.test ", "s3cret!")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(res.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != "Doctor" || claims["sub"] != "uid-7" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	jti, _ := claims["jti"].(string)
	if _, ok := f.sessions.live[jti]; !ok {
		t.Fatalf("token jti %q has no live session", jti)
	}
}

func TestAuthService_Login_UnknownRoleSignsOut(t *testing.T) {
	for _, tag := range []string{"", "Janitor", "doctor"} {
		t.Run("role="+tag, func(t *testing.T) {
			f := newAuthFixture()
			f.seedUser(t, "uid-2", "odd@clinic.test", "s3cret!", strPtr(tag))

			res, err := f.svc.Login(context.Background(), "odd@clinic.test", "s3cret!")
			if !errors.Is(err, domain.ErrRoleUndefined) {
				t.Fatalf("expected ErrRoleUndefined, got %v", err)
			}
			if res != nil {
				t.Fatalf("expected no result, got %+v", res)
			}
			if len(f.sessions.live) != 0 || len(f.sessions.revoked) != 1 {
				t.Fatalf("expected session revoked, live=%d revoked=%d", len(f.sessions.live), len(f.sessions.revoked))
			}
			kinds := f.activity.kinds()
			if len(kinds) != 1 || kinds[0] != domain.ActivityLoginRejected {
				t.Fatalf("expected login_rejected activity, got %v", kinds)
			}
		})
	}
}

func TestAuthService_Login_MissingProfileSignsOut(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "uid-3", "ghost@clinic.test", "s3cret!", nil)

	_, err := f.svc.Login(context.Background(), "ghost@clinic.test", "s3cret!")
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
	if len(f.sessions.live) != 0 || len(f.sessions.revoked) != 1 {
		t.Fatalf("expected session revoked")
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "uid-4", "dave@clinic.test", "goodpass", strPtr("Nurse"))

	if _, err := f.svc.Login(context.Background(), "dave@clinic.test", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := f.svc.Login(context.Background(), "nobody@clinic.test", "goodpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
	if len(f.sessions.live) != 0 {
		t.Fatalf("no session should be opened on bad credentials")
	}
}

func TestAuthService_Login_InputValidation(t *testing.T) {
	f := newAuthFixture()

	if _, err := f.svc.Login(context.Background(), "", "pass"); err != domain.ErrMissingCredentials {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
	if _, err := f.svc.Login(context.Background(), "a@b.c", "   "); err != domain.ErrMissingCredentials {
		t.Fatalf("expected ErrMissingCredentials for blank password, got %v", err)
	}
	if _, err := f.svc.Login(context.Background(), "not-an-email", "pass"); err != domain.ErrInvalidEmail {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthFixture()
	f.sessions.live["sess-1"] = domain.Session{ID: "sess-1", UserID: "uid-1"}

	if err := f.svc.Logout(context.Background(), "sess-1", "uid-1"); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, ok := f.sessions.live["sess-1"]; ok {
		t.Fatalf("session still live after logout")
	}
	if err := f.svc.Logout(context.Background(), "", "uid-1"); err != domain.ErrSessionRevoked {
		t.Fatalf("expected ErrSessionRevoked for empty session, got %v", err)
	}
}

func TestAuthService_Register_AlwaysPatient(t *testing.T) {
	f := newAuthFixture()

	p, err := f.svc.Register(context.Background(), ports.SelfRegisterInput{
		FullName:        "Jane Doe",
		Email:           "Jane@Clinic.test",
		Password:        "pass123",
		ConfirmPassword: "pass123",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if p.Role != "Patient" {
		t.Fatalf("expected Patient role, got %s", p.Role)
	}
	if p.AssignedDoctorID != "" {
		t.Fatalf("self-registered patient should have no doctor")
	}

	cred := f.creds.byEmail["jane@clinic.test"]
	if cred == nil {
		t.Fatalf("credential not stored under normalized email")
	}
	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte("pass123")) != nil {
		t.Fatalf("stored hash does not match password")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	cases := []struct {
		name string
		in   ports.SelfRegisterInput
		want error
	}{
		{"mismatch", ports.SelfRegisterInput{FullName: "A", Email: "a@b.co", Password: "pass123", ConfirmPassword: "pass124"}, domain.ErrPasswordMismatch},
		{"no name", ports.SelfRegisterInput{FullName: "  ", Email: "a@b.co", Password: "pass123", ConfirmPassword: "pass123"}, domain.ErrMissingFields},
		{"bad email", ports.SelfRegisterInput{FullName: "A", Email: "nope", Password: "pass123", ConfirmPassword: "pass123"}, domain.ErrInvalidEmail},
		{"weak", ports.SelfRegisterInput{FullName: "A", Email: "a@b.co", Password: "12345", ConfirmPassword: "12345"}, domain.ErrWeakPassword},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.svc.Register(ctx, tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	f := newAuthFixture()
	in := ports.SelfRegisterInput{FullName: "Bob", Email: "bob@clinic.test", Password: "pass123", ConfirmPassword: "pass123"}

	if _, err := f.svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := f.svc.Register(context.Background(), in); !errors.Is(err, domain.ErrEmailInUse) {
		t.Fatalf("expected ErrEmailInUse, got %v", err)
	}
}

func TestAuthService_Resolve(t *testing.T) {
	f := newAuthFixture()

	info, err := f.svc.Resolve("Cashier")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if info.DashboardPath != "/cashier/dashboard" || len(info.Navigation) == 0 {
		t.Fatalf("unexpected route info: %+v", info)
	}

	if _, err := f.svc.Resolve("Janitor"); !errors.Is(err, domain.ErrRoleUndefined) {
		t.Fatalf("expected ErrRoleUndefined, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailStillHashes(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "uid-1", "known@clinic.test", "s3cret!", strPtr("Nurse"))

	var compared [][]byte
	f.svc.compare = func(hash, password []byte) error {
		compared = append(compared, hash)
		return bcrypt.CompareHashAndPassword(hash, password)
	}

	if _, err := f.svc.Login(context.Background(), "ghost@clinic.test", "s3cret!"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := f.svc.Login(context.Background(), "known@clinic.test", "wrong!"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(compared) != 2 {
		t.Fatalf("expected a bcrypt comparison on both paths, got %d", len(compared))
	}
	if cost, err := bcrypt.Cost(compared[0]); err != nil || cost != bcrypt.DefaultCost {
		t.Fatalf("unknown email compared against cost %d (%v), want %d", cost, err, bcrypt.DefaultCost)
	}
}

func TestAuthService_Login_SessionUpdateFailureSignsOut(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "uid-3", "dana@clinic.test", "s3cret!", strPtr("Cashier"))
	f.sessions.saveErr = errors.New("redis down")
	f.sessions.failOnSave = 2

	res, err := f.svc.Login(context.Background(), "dana@clinic.test", "s3cret!")
	if err == nil || res != nil {
		t.Fatalf("expected login to fail, got %+v", res)
	}
	if len(f.sessions.live) != 0 {
		t.Fatalf("expected no live session, got %d", len(f.sessions.live))
	}
	if len(f.sessions.revoked) != 1 {
		t.Fatalf("expected the opened session to be revoked, got %v", f.sessions.revoked)
	}
	kinds := f.activity.kinds()
	if len(kinds) != 1 || kinds[0] != domain.ActivityLoginRejected {
		t.Fatalf("expected one login_rejected activity, got %v", kinds)
	}
}
