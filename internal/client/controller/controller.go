package controller

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/psychicstar/internal/client/models"
	"github.com/dmitrijs2005/psychicstar/internal/client/repositories/session"
	"github.com/dmitrijs2005/psychicstar/internal/client/services"
	"github.com/dmitrijs2005/psychicstar/internal/common"
	"github.com/dmitrijs2005/psychicstar/internal/logging"
)

// DefaultIdleTimeout signs the user out after this much inactivity.
const DefaultIdleTimeout = 15 * time.Minute

// DefaultResendCooldown is the wait between two resent verification codes.
const DefaultResendCooldown = 60 * time.Second

type Deps struct {
	Auth     services.AuthService
	Accounts services.AccountService
	Readings services.ReadingService
	Session  session.Repository
	Logger   logging.Logger

	IdleTimeout    time.Duration
	ResendCooldown time.Duration
	// OnExpire runs after an inactivity sign-out, outside the controller lock.
	OnExpire func()
}

// Controller is the application state machine. Handlers are serialized by
// one mutex; RequestReading releases it while the generator runs.
//
// The controller keeps a private copy of the signed-in account and writes
// every change through the services before updating that copy.
type Controller struct {
	mu sync.Mutex

	auth     services.AuthService
	accounts services.AccountService
	readings services.ReadingService
	session  session.Repository
	log      logging.Logger
	now      func() time.Time

	idle     time.Duration
	onExpire func()
	timer    *time.Timer
	cooldown time.Duration

	state    State
	email    string
	profile  *models.Profile
	history  []models.Reading
	moods    []models.Mood
	current  *models.Reading
	pending  string
	resentAt time.Time
	lastErr  string
	busy     bool
	// epoch changes whenever a session begins or ends.
	epoch uint64
}

func New(d Deps) *Controller {
	idle := d.IdleTimeout
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}
	cooldown := d.ResendCooldown
	if cooldown <= 0 {
		cooldown = DefaultResendCooldown
	}
	log := d.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Controller{
		auth:     d.Auth,
		accounts: d.Accounts,
		readings: d.Readings,
		session:  d.Session,
		log:      log,
		now:      time.Now,
		idle:     idle,
		onExpire: d.OnExpire,
		cooldown: cooldown,
		state:    StateUnauthenticated,
	}
}

// fail records err as the visible error and returns it as *Error.
func (c *Controller) fail(ctx context.Context, op string, err error) error {
	msg := messageFor(err)
	if msg == MsgUnexpected || msg == MsgReadingFailed || msg == MsgDispatchFailed {
		c.log.Error(ctx, op+" failed", "error", err)
	} else {
		c.log.Debug(ctx, op+" rejected", "error", err)
	}
	c.lastErr = msg
	return &Error{Message: msg, Err: err}
}

func (c *Controller) ok() {
	c.lastErr = ""
}

func (c *Controller) require(states ...State) error {
	if slices.Contains(states, c.state) {
		return nil
	}
	return ErrWrongState
}

// stateFor picks the first onboarding step the profile has not finished.
func stateFor(p models.Profile) State {
	switch {
	case !p.HasConsented:
		return StateNeedsConsent
	case !p.Completed():
		return StateNeedsQuiz
	default:
		return StateDashboard
	}
}

// attach loads acc as the signed-in account and starts a new epoch.
func (c *Controller) attach(acc *models.Account, state State) {
	acc = acc.Clone()
	c.epoch++
	c.email = acc.Email
	c.profile = &acc.Profile
	c.history = acc.Readings
	c.moods = acc.Moods
	c.current = nil
	c.pending = ""
	c.resentAt = time.Time{}
	c.state = state
	c.armTimer()
}

// detach discards the in-memory session and starts a new epoch.
func (c *Controller) detach() {
	c.epoch++
	c.stopTimer()
	c.email = ""
	c.profile = nil
	c.history = nil
	c.moods = nil
	c.current = nil
	c.pending = ""
	c.resentAt = time.Time{}
	c.busy = false
	c.state = StateUnauthenticated
}

func (c *Controller) beginSession(ctx context.Context, acc *models.Account, state State) error {
	if err := c.session.Begin(ctx, acc.Email); err != nil {
		return err
	}
	c.attach(acc, state)
	return nil
}

func (c *Controller) endSession(ctx context.Context) {
	if err := c.session.End(ctx); err != nil {
		c.log.Error(ctx, "clear session pointer failed", "error", err)
	}
	c.detach()
}

func (c *Controller) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) armTimer() {
	c.stopTimer()
	epoch := c.epoch
	c.timer = time.AfterFunc(c.idle, func() { c.expire(epoch) })
}

func (c *Controller) expire(epoch uint64) {
	ctx := context.Background()

	c.mu.Lock()
	if c.epoch != epoch || !c.state.SignedIn() {
		c.mu.Unlock()
		return
	}
	c.log.Info(ctx, "user inactive, signing out", "email", c.email)
	c.endSession(ctx)
	c.mu.Unlock()

	if c.onExpire != nil {
		c.onExpire()
	}
}

// Touch records user activity and restarts the idle timer of an active
// session.
func (c *Controller) Touch() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.SignedIn() {
		c.armTimer()
	}
}

// Close stops the idle timer.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimer()
}

// Start re-attaches to the account named by the session pointer. A pointer
// to a missing account is cleared.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	email, ok, err := c.session.Current(ctx)
	if err != nil {
		return c.fail(ctx, "session restore", err)
	}
	if !ok {
		c.ok()
		return nil
	}

	acc, err := c.accounts.Load(ctx, email)
	if err != nil {
		return c.fail(ctx, "session restore", err)
	}
	if acc == nil {
		c.log.Warn(ctx, "stale session pointer cleared", "email", email)
		c.endSession(ctx)
		c.ok()
		return nil
	}

	c.attach(acc, stateFor(acc.Profile))
	c.log.Info(ctx, "session restored", "email", acc.Email)
	c.ok()
	return nil
}

func (c *Controller) Signup(ctx context.Context, email string, password []byte, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.require(StateUnauthenticated); err != nil {
		return c.fail(ctx, "signup", err)
	}

	acc, err := c.auth.Signup(ctx, email, password, name)
	if err != nil {
		return c.fail(ctx, "signup", err)
	}

	c.pending = acc.Email
	c.resentAt = time.Time{}
	c.state = StatePendingVerification
	c.ok()
	return nil
}

func (c *Controller) Login(ctx context.Context, email string, password []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.require(StateUnauthenticated); err != nil {
		return c.fail(ctx, "login", err)
	}

	acc, err := c.auth.Login(ctx, email, password)
	if errors.Is(err, services.ErrUnverified) {
		c.pending = common.NormalizeEmail(email)
		c.resentAt = time.Time{}
		c.state = StatePendingVerification
		return c.fail(ctx, "login", err)
	}
	if err != nil {
		return c.fail(ctx, "login", err)
	}

	if err := c.beginSession(ctx, acc, stateFor(acc.Profile)); err != nil {
		return c.fail(ctx, "login", err)
	}
	c.log.Info(ctx, "signed in", "email", acc.Email)
	c.ok()
	return nil
}

func (c *Controller) Verify(ctx context.Context, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.require(StatePendingVerification); err != nil {
		return c.fail(ctx, "verify", err)
	}

	acc, err := c.auth.Verify(ctx, c.pending, code)
	if errors.Is(err, common.ErrorNotFound) || (err == nil && acc == nil) {
		c.detach()
		if err == nil {
			err = common.ErrorNotFound
		}
		return c.fail(ctx, "verify", err)
	}
	if err != nil {
		return c.fail(ctx, "verify", err)
	}

	// Consent is asked again right after verification.
	if err := c.beginSession(ctx, acc, StateNeedsConsent); err != nil {
		return c.fail(ctx, "verify", err)
	}
	c.log.Info(ctx, "email verified", "email", acc.Email)
	c.ok()
	return nil
}

func (c *Controller) ResendCode(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.require(StatePendingVerification); err != nil {
		return c.fail(ctx, "resend code", err)
	}
	if !c.resentAt.IsZero() && c.now().Sub(c.resentAt) < c.cooldown {
		return c.fail(ctx, "resend code", ErrResendCooldown)
	}
	if err := c.auth.Resend(ctx, c.pending); err != nil {
		return c.fail(ctx, "resend code", err)
	}
	c.resentAt = c.now()
	c.ok()
	return nil
}

func (c *Controller) CancelVerification() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.require(StatePendingVerification); err != nil {
		return c.fail(context.Background(), "cancel verification", err)
	}
	c.pending = ""
	c.resentAt = time.Time{}
	c.state = StateUnauthenticated
	c.ok()
	return nil
}

func (c *Controller) Consent(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.require(StateNeedsConsent); err != nil {
		return c.fail(ctx, "consent", err)
	}

	p, err := c.accounts.Consent(ctx, c.email)
	if err != nil {
		return c.fail(ctx, "consent", err)
	}

	c.profile = p
	c.state = stateFor(*p)
	c.ok()
	return nil
}

func (c *Controller) CompleteQuiz(ctx context.Context, answers map[int]int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.require(StateNeedsQuiz); err != nil {
		return c.fail(ctx, "quiz", err)
	}

	p, err := c.accounts.CompleteQuiz(ctx, c.email, answers)
	if err != nil {
		return c.fail(ctx, "quiz", err)
	}

	c.profile = p
	c.state = StateDashboard
	c.ok()
	return nil
}

func (c *Controller) LogMood(ctx context.Context, value int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.require(StateDashboard); err != nil {
		return c.fail(ctx, "log mood", err)
	}

	m, err := c.accounts.LogMood(ctx, c.email, value)
	if err != nil {
		return c.fail(ctx, "log mood", err)
	}

	c.moods = append(c.moods, *m)
	c.ok()
	return nil
}

// HasLoggedMoodToday reports whether the signed-in user logged a mood since
// local midnight.
func (c *Controller) HasLoggedMoodToday() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return services.HasLoggedMoodToday(c.moods, c.now())
}

func (c *Controller) NewReading() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.require(StateDashboard, StateReadingDetail); err != nil {
		return c.fail(context.Background(), "new reading", err)
	}
	c.current = nil
	c.state = StateComposingReading
	c.ok()
	return nil
}

func (c *Controller) OpenReading(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx := context.Background()
	if err := c.require(StateDashboard, StateReadingDetail, StateComposingReading); err != nil {
		return c.fail(ctx, "open reading", err)
	}

	i := slices.IndexFunc(c.history, func(r models.Reading) bool { return r.ID == id })
	if i < 0 {
		return c.fail(ctx, "open reading", ErrReadingUnknown)
	}

	r := c.history[i].Clone()
	c.current = &r
	c.state = StateReadingDetail
	c.ok()
	return nil
}

func (c *Controller) ReturnToDashboard() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.require(StateDashboard, StateReadingDetail, StateComposingReading); err != nil {
		return c.fail(context.Background(), "dashboard", err)
	}
	c.current = nil
	c.state = StateDashboard
	c.ok()
	return nil
}

// RequestReading asks the generator for a reading. The lock is released
// while the generator runs; a result that returns after the session it was
// requested for has ended is dropped without being saved.
func (c *Controller) RequestReading(ctx context.Context, query string) error {
	c.mu.Lock()

	if err := c.require(StateComposingReading); err != nil {
		defer c.mu.Unlock()
		return c.fail(ctx, "reading", err)
	}
	if c.busy {
		defer c.mu.Unlock()
		return c.fail(ctx, "reading", ErrBusy)
	}

	epoch := c.epoch
	email := c.email
	var profile *models.BigFiveProfile
	if c.profile != nil && c.profile.QuizResults != nil {
		q := *c.profile.QuizResults
		profile = &q
	}
	c.busy = true
	c.lastErr = ""
	c.mu.Unlock()

	reading, genErr := c.readings.Generate(ctx, query, profile)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.epoch != epoch {
		c.log.Warn(ctx, "discarding reading for ended session", "email", email)
		return nil
	}
	c.busy = false

	if genErr != nil {
		if errors.Is(genErr, services.ErrBlankQuery) {
			return c.fail(ctx, "reading", genErr)
		}
		c.log.Error(ctx, "reading generation failed", "error", genErr)
		c.lastErr = MsgReadingFailed
		return &Error{Message: MsgReadingFailed, Err: genErr}
	}

	if err := c.readings.Save(ctx, email, *reading); err != nil {
		return c.fail(ctx, "reading", err)
	}

	c.history = append(c.history, reading.Clone())
	if c.state == StateComposingReading {
		r := reading.Clone()
		c.current = &r
		c.state = StateReadingDetail
	}
	c.ok()
	return nil
}

func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	email := c.email
	c.endSession(ctx)
	c.ok()
	if email != "" {
		c.log.Info(ctx, "signed out", "email", email)
	}
	return nil
}

// View returns a snapshot of the renderable state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		State:        c.state,
		PendingEmail: c.pending,
		Error:        c.lastErr,
		Busy:         c.busy,
		Moods:        slices.Clone(c.moods),
		MoodToday:    services.HasLoggedMoodToday(c.moods, c.now()),
	}
	if c.profile != nil {
		p := *c.profile
		if p.QuizResults != nil {
			q := *p.QuizResults
			p.QuizResults = &q
		}
		v.User = &p
	}
	if c.history != nil {
		v.Readings = make([]models.Reading, len(c.history))
		for i, r := range c.history {
			v.Readings[i] = r.Clone()
		}
	}
	if c.current != nil {
		r := c.current.Clone()
		v.Current = &r
	}
	return v
}
