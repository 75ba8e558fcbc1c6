package user_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"chat-server/internal/domain/identity"
	"chat-server/internal/domain/user"
	"chat-server/internal/utils/platformerrors"
)

// mockUserRepository is an in-memory Repository for testing
type mockUserRepository struct {
	mu        sync.Mutex
	bySubject map[string]*user.User
	nextID    uint

	// lastConversationActivity mirrors the repository contract: a guest
	// with any conversation updated at or after the purge cutoff is kept.
	lastConversationActivity map[uint]time.Time

	createCalls  int
	updateCalls  int
	failCreate   error
	notFoundOnce bool
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		bySubject:                make(map[string]*user.User),
		lastConversationActivity: make(map[uint]time.Time),
		nextID:                   1,
	}
}

func (m *mockUserRepository) FindBySubject(ctx context.Context, subject string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.notFoundOnce {
		m.notFoundOnce = false
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"user not found", nil, "11111111-1111-1111-1111-111111111111")
	}
	if u, ok := m.bySubject[subject]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
		"user not found", nil, "11111111-1111-1111-1111-111111111111")
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.bySubject {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
		"user not found", nil, "22222222-2222-2222-2222-222222222222")
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if m.failCreate != nil {
		err := m.failCreate
		m.failCreate = nil
		return err
	}
	if _, exists := m.bySubject[u.Subject]; exists {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConflict,
			"duplicate subject", nil, "33333333-3333-3333-3333-333333333333")
	}
	u.ID = m.nextID
	m.nextID++
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	copied := *u
	m.bySubject[u.Subject] = &copied
	return nil
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	copied := *u
	m.bySubject[u.Subject] = &copied
	return nil
}

func (m *mockUserRepository) DeleteGuestsInactiveSince(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for subject, u := range m.bySubject {
		if !u.Anonymous || !u.UpdatedAt.Before(cutoff) {
			continue
		}
		if activity, ok := m.lastConversationActivity[u.ID]; ok && !activity.Before(cutoff) {
			continue
		}
		delete(m.bySubject, subject)
		deleted++
	}
	return deleted, nil
}

func TestEnsureProfile_CreatesOnFirstSight(t *testing.T) {
	repo := newMockUserRepository()
	svc := user.NewService(repo)

	principal := identity.Principal{
		Kind:    identity.PrincipalRegistered,
		Subject: "auth0|abc123",
		Email:   "jane@example.com",
		Name:    "Jane",
	}

	usr, err := svc.EnsureProfile(context.Background(), principal)
	if err != nil {
		t.Fatalf("EnsureProfile returned error: %v", err)
	}
	if usr.Subject != "auth0|abc123" {
		t.Errorf("subject = %q, want %q", usr.Subject, "auth0|abc123")
	}
	if usr.Email == nil || *usr.Email != "jane@example.com" {
		t.Errorf("email not persisted: %v", usr.Email)
	}
	if usr.Anonymous {
		t.Error("registered principal should not be anonymous")
	}
	if len(usr.PublicID) == 0 {
		t.Error("public ID not assigned")
	}
}

func TestEnsureProfile_IdempotentSecondCall(t *testing.T) {
	repo := newMockUserRepository()
	svc := user.NewService(repo)

	principal := identity.Principal{Kind: identity.PrincipalRegistered, Subject: "sub-1", Email: "a@b.c"}

	first, err := svc.EnsureProfile(context.Background(), principal)
	if err != nil {
		t.Fatalf("first EnsureProfile: %v", err)
	}
	second, err := svc.EnsureProfile(context.Background(), principal)
	if err != nil {
		t.Fatalf("second EnsureProfile: %v", err)
	}
	if first.PublicID != second.PublicID {
		t.Errorf("second call returned a different profile: %q vs %q", first.PublicID, second.PublicID)
	}
	if repo.createCalls != 1 {
		t.Errorf("createCalls = %d, want 1", repo.createCalls)
	}
	if repo.updateCalls != 0 {
		t.Errorf("unchanged profile should not be rewritten, updateCalls = %d", repo.updateCalls)
	}
}

func TestEnsureProfile_ReconcilesChangedFields(t *testing.T) {
	repo := newMockUserRepository()
	svc := user.NewService(repo)

	if _, err := svc.EnsureProfile(context.Background(), identity.Principal{
		Kind: identity.PrincipalGuest, Subject: "sub-2", Anonymous: true,
	}); err != nil {
		t.Fatalf("provision guest: %v", err)
	}

	// guest upgraded to a registered account keeping the same subject
	upgraded, err := svc.EnsureProfile(context.Background(), identity.Principal{
		Kind: identity.PrincipalRegistered, Subject: "sub-2", Email: "new@example.com",
	})
	if err != nil {
		t.Fatalf("EnsureProfile after upgrade: %v", err)
	}
	if upgraded.Anonymous {
		t.Error("anonymous flag not reconciled")
	}
	if upgraded.Email == nil || *upgraded.Email != "new@example.com" {
		t.Errorf("email not reconciled: %v", upgraded.Email)
	}
	if repo.updateCalls != 1 {
		t.Errorf("updateCalls = %d, want 1", repo.updateCalls)
	}
}

func TestEnsureProfile_RecoversFromInsertRace(t *testing.T) {
	repo := newMockUserRepository()
	svc := user.NewService(repo)

	ctx := context.Background()

	// simulate the race loser: the first read misses, the insert conflicts
	// because a concurrent request created the row in between, and the
	// re-read returns the winner
	winner := &user.User{ID: 7, PublicID: "user_winner0000000", Subject: "sub-3"}
	repo.bySubject["sub-3"] = winner
	repo.notFoundOnce = true
	repo.failCreate = platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConflict,
		"duplicate subject", nil, "44444444-4444-4444-4444-444444444444")

	usr, err := svc.EnsureProfile(ctx, identity.Principal{Kind: identity.PrincipalRegistered, Subject: "sub-3"})
	if err != nil {
		t.Fatalf("EnsureProfile should recover from the insert race: %v", err)
	}
	if usr.PublicID != "user_winner0000000" {
		t.Errorf("expected the winning row, got %q", usr.PublicID)
	}
}

func TestEnsureProfile_ConcurrentCallsOneRow(t *testing.T) {
	repo := newMockUserRepository()
	svc := user.NewService(repo)

	principal := identity.Principal{Kind: identity.PrincipalRegistered, Subject: "sub-race", Email: "race@example.com"}

	const callers = 16
	results := make([]*user.User, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.EnsureProfile(context.Background(), principal)
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
	}

	if len(repo.bySubject) != 1 {
		t.Fatalf("got %d rows for one subject, want 1", len(repo.bySubject))
	}
	want := results[0].PublicID
	for i, usr := range results {
		if usr.PublicID != want {
			t.Errorf("caller %d got profile %q, want %q", i, usr.PublicID, want)
		}
	}
}

func TestEnsureProfile_RejectsEmptySubject(t *testing.T) {
	svc := user.NewService(newMockUserRepository())

	_, err := svc.EnsureProfile(context.Background(), identity.Principal{Kind: identity.PrincipalRegistered})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPurgeStaleGuests(t *testing.T) {
	repo := newMockUserRepository()
	svc := user.NewService(repo)

	stale := &user.User{ID: 10, Subject: "guest-old", Anonymous: true, UpdatedAt: time.Now().AddDate(0, 0, -60)}
	fresh := &user.User{ID: 11, Subject: "guest-new", Anonymous: true, UpdatedAt: time.Now()}
	registered := &user.User{ID: 12, Subject: "reg-old", Anonymous: false, UpdatedAt: time.Now().AddDate(0, 0, -60)}
	repo.bySubject[stale.Subject] = stale
	repo.bySubject[fresh.Subject] = fresh
	repo.bySubject[registered.Subject] = registered

	purged, err := svc.PurgeStaleGuests(context.Background(), time.Now().AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("PurgeStaleGuests: %v", err)
	}
	if purged != 1 {
		t.Errorf("purged = %d, want 1", purged)
	}
	if _, ok := repo.bySubject["reg-old"]; !ok {
		t.Error("registered profile must never be purged")
	}
	if _, ok := repo.bySubject["guest-new"]; !ok {
		t.Error("active guest must not be purged")
	}
}

func TestPurgeStaleGuests_RecentConversationActivityKeepsGuest(t *testing.T) {
	repo := newMockUserRepository()
	svc := user.NewService(repo)

	// the profile row never changes after provisioning, but the guest
	// chats daily; their conversations carry the recent activity
	chatty := &user.User{ID: 20, Subject: "guest-chatty", Anonymous: true, UpdatedAt: time.Now().AddDate(0, 0, -60)}
	silent := &user.User{ID: 21, Subject: "guest-silent", Anonymous: true, UpdatedAt: time.Now().AddDate(0, 0, -60)}
	repo.bySubject[chatty.Subject] = chatty
	repo.bySubject[silent.Subject] = silent
	repo.lastConversationActivity[chatty.ID] = time.Now().AddDate(0, 0, -1)
	repo.lastConversationActivity[silent.ID] = time.Now().AddDate(0, 0, -45)

	purged, err := svc.PurgeStaleGuests(context.Background(), time.Now().AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("PurgeStaleGuests: %v", err)
	}
	if purged != 1 {
		t.Errorf("purged = %d, want 1", purged)
	}
	if _, ok := repo.bySubject["guest-chatty"]; !ok {
		t.Error("guest with recent conversation activity must not be purged")
	}
	if _, ok := repo.bySubject["guest-silent"]; ok {
		t.Error("guest idle across profile and conversations must be purged")
	}
}
