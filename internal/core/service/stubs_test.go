package service

import (
	"context"
	"sort"
	"sync"

	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
	"github.com/clinicnavigator/clinic-portal/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Credentials
// ---------------------------------------------------------------------------

type stubCredentialRepo struct {
	byEmail   map[string]*domain.Credential
	createErr error
}

func newStubCredentialRepo() *stubCredentialRepo {
	return &stubCredentialRepo{byEmail: make(map[string]*domain.Credential)}
}

func (r *stubCredentialRepo) FindByEmail(_ context.Context, email string) (*domain.Credential, error) {
	c, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrCredentialNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCredentialRepo) FindByID(_ context.Context, id string) (*domain.Credential, error) {
	for _, c := range r.byEmail {
		if c.ID == id {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCredentialNotFound
}

func (r *stubCredentialRepo) Create(_ context.Context, cred *domain.Credential) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.byEmail[cred.Email]; exists {
		return domain.ErrEmailInUse
	}
	clone := *cred
	r.byEmail[cred.Email] = &clone
	return nil
}

// ---------------------------------------------------------------------------
// Profiles
// ---------------------------------------------------------------------------

type stubProfileRepo struct {
	byUID     map[string]*domain.Profile
	getErr    error
	createErr error
	created   int
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{byUID: make(map[string]*domain.Profile)}
}

func (r *stubProfileRepo) put(p *domain.Profile) {
	clone := *p
	r.byUID[p.UID] = &clone
}

func (r *stubProfileRepo) Get(_ context.Context, uid string) (*domain.Profile, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	p, ok := r.byUID[uid]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProfileRepo) Create(_ context.Context, p *domain.Profile) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created++
	r.put(p)
	return nil
}

func (r *stubProfileRepo) Merge(_ context.Context, uid, email string, patch domain.ProfilePatch) (*domain.Profile, error) {
	p, ok := r.byUID[uid]
	if !ok {
		p = &domain.Profile{UID: uid}
		r.byUID[uid] = p
	}
	p.Email = email
	if patch.FullName != nil {
		p.FullName = *patch.FullName
	}
	if patch.Phone != nil {
		p.Phone = *patch.Phone
	}
	if patch.DateOfBirth != nil {
		p.DateOfBirth = *patch.DateOfBirth
	}
	if patch.Gender != nil {
		p.Gender = *patch.Gender
	}
	if patch.Address != nil {
		p.Address = *patch.Address
	}
	clone := *p
	return &clone, nil
}

func (r *stubProfileRepo) List(_ context.Context, f ports.ProfileFilter) ([]*domain.Profile, error) {
	var out []*domain.Profile
	for _, p := range r.byUID {
		if f.Role != "" && domain.Role(p.Role) != f.Role {
			continue
		}
		if f.AssignedDoctorID != "" && p.AssignedDoctorID != f.AssignedDoctorID {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

// ---------------------------------------------------------------------------
// Visits
// ---------------------------------------------------------------------------

type stubVisitRepo struct {
	visits    []*domain.Visit
	insertErr error
}

func (r *stubVisitRepo) Insert(_ context.Context, v *domain.Visit) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	clone := *v
	r.visits = append(r.visits, &clone)
	return nil
}

func (r *stubVisitRepo) ListByPatient(_ context.Context, patientID string) ([]*domain.Visit, error) {
	var out []*domain.Visit
	for _, v := range r.visits {
		if v.PatientID == patientID {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].VisitDate.After(out[j].VisitDate) })
	return out, nil
}

// ---------------------------------------------------------------------------
// Sessions and activity
// ---------------------------------------------------------------------------

type stubSessionStore struct {
	live    map[string]domain.Session
	revoked []string
	saveErr error
	// failOnSave makes the n-th Save call (1-based) fail with saveErr.
	failOnSave int
	saves      int
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{live: make(map[string]domain.Session)}
}

func (s *stubSessionStore) Save(_ context.Context, sess domain.Session) error {
	s.saves++
	if s.saveErr != nil && (s.failOnSave == 0 || s.failOnSave == s.saves) {
		return s.saveErr
	}
	s.live[sess.ID] = sess
	return nil
}

func (s *stubSessionStore) Exists(_ context.Context, id string) (bool, error) {
	_, ok := s.live[id]
	return ok, nil
}

func (s *stubSessionStore) Revoke(_ context.Context, id string) error {
	delete(s.live, id)
	s.revoked = append(s.revoked, id)
	return nil
}

type stubRecorder struct {
	mu   sync.Mutex
	seen []domain.Activity
}

func (r *stubRecorder) Record(a domain.Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, a)
}

func (r *stubRecorder) kinds() []domain.ActivityKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ActivityKind, len(r.seen))
	for i, a := range r.seen {
		out[i] = a.Kind
	}
	return out
}
