package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/psychicstar/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/psychicstar/internal/client/repositories/users"
	"github.com/dmitrijs2005/psychicstar/internal/client/repositories/verifications"
	"github.com/dmitrijs2005/psychicstar/internal/cryptox"
	"github.com/dmitrijs2005/psychicstar/internal/logging"
)

type fakeMailer struct {
	mu    sync.Mutex
	codes map[string]string
	sends int
	err   error
}

func (f *fakeMailer) Send(_ context.Context, to, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends++
	if f.err != nil {
		return f.err
	}
	if f.codes == nil {
		f.codes = make(map[string]string)
	}
	f.codes[to] = code
	return nil
}

func (f *fakeMailer) last(email string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.codes[email]
}

type fixture struct {
	store  *metadata.MemoryRepository
	users  users.Repository
	ledger VerificationLedger
	mail   *fakeMailer
	hasher cryptox.Hasher
	auth   AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := metadata.NewMemoryRepository()
	log := logging.Nop()

	h, err := cryptox.NewHasher(cryptox.SchemeSHA256, "")
	require.NoError(t, err)

	f := &fixture{
		store:  store,
		users:  users.NewBlobRepository(store, log),
		ledger: NewVerificationLedger(verifications.NewBlobRepository(store, log)),
		mail:   &fakeMailer{},
		hasher: h,
	}
	f.auth = NewAuthService(f.users, f.ledger, f.mail, h, log, 0)
	return f
}
