package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/clinicnavigator/clinic-portal/internal/api/middleware"
	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
	"github.com/clinicnavigator/clinic-portal/internal/core/ports"
)

type stubAuthService struct {
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	logoutFn   func(ctx context.Context, sessionID, uid string) error
	registerFn func(ctx context.Context, in ports.SelfRegisterInput) (*domain.Profile, error)
	resolveFn  func(role string) (*ports.RouteInfo, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, sessionID, uid string) error {
	return s.logoutFn(ctx, sessionID, uid)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.SelfRegisterInput) (*domain.Profile, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Resolve(role string) (*ports.RouteInfo, error) {
	return s.resolveFn(role)
}

type stubProfileService struct {
	getFn  func(ctx context.Context, uid string) (*domain.Profile, error)
	saveFn func(ctx context.Context, uid string, patch domain.ProfilePatch) (*domain.Profile, error)
	listFn func(ctx context.Context, doctorID, search string) ([]*domain.Profile, error)
}

func (s *stubProfileService) GetProfile(ctx context.Context, uid string) (*domain.Profile, error) {
	return s.getFn(ctx, uid)
}

func (s *stubProfileService) SaveProfile(ctx context.Context, uid string, patch domain.ProfilePatch) (*domain.Profile, error) {
	return s.saveFn(ctx, uid, patch)
}

func (s *stubProfileService) ListAssignedPatients(ctx context.Context, doctorID, search string) ([]*domain.Profile, error) {
	return s.listFn(ctx, doctorID, search)
}

type stubRegistrarService struct {
	registerFn func(ctx context.Context, in ports.RegisterPatientInput) (*domain.Profile, error)
	doctorsFn  func(ctx context.Context) ([]domain.DoctorSummary, error)
}

func (s *stubRegistrarService) RegisterPatient(ctx context.Context, in ports.RegisterPatientInput) (*domain.Profile, error) {
	return s.registerFn(ctx, in)
}

func (s *stubRegistrarService) ListDoctors(ctx context.Context) ([]domain.DoctorSummary, error) {
	return s.doctorsFn(ctx)
}

type stubVisitService struct {
	recordFn func(ctx context.Context, in ports.RecordVisitInput) (*domain.Visit, error)
	listFn   func(ctx context.Context, in ports.ListVisitsInput) ([]*domain.Visit, error)
}

func (s *stubVisitService) RecordVisit(ctx context.Context, in ports.RecordVisitInput) (*domain.Visit, error) {
	return s.recordFn(ctx, in)
}

func (s *stubVisitService) ListVisits(ctx context.Context, in ports.ListVisitsInput) ([]*domain.Visit, error) {
	return s.listFn(ctx, in)
}

// newContext builds an echo context with the validator installed and, when
// uid is non-empty, the claims the Auth middleware would have set.
func newContext(method, target, body, uid, role string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if uid != "" {
		c.Set(middleware.CtxUserID, uid)
		c.Set(middleware.CtxRole, role)
		c.Set(middleware.CtxSessionID, "sess-"+uid)
	}
	return c, rec
}
