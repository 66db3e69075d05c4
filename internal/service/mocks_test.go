package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
	"github.com/Elgenzay/kava.elg.gg/internal/biz/usecase"
	"github.com/Elgenzay/kava.elg.gg/internal/conf"
)

var errMock = errors.New("mock failure")

const (
	testGuild    domain.Snowflake = 100
	testErrorCh  domain.Snowflake = 200
	testLogCh    domain.Snowflake = 300
	testOperator domain.Snowflake = 97802694302896128
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type mockConfigRepo struct {
	doc domain.ConfigDocument
	err error
}

func (m *mockConfigRepo) Load(ctx context.Context) (*domain.BotConfig, error) {
	if m.err != nil {
		return nil, m.err
	}
	return domain.NewBotConfig(m.doc)
}

func (m *mockConfigRepo) Path() string { return "BotConfig.json" }

type mockQueueRepo struct {
	mu      sync.Mutex
	rows    []domain.QueuedMessage
	nextID  int64
	pingErr error
	deletes int
}

func (m *mockQueueRepo) Ping(ctx context.Context) error { return m.pingErr }

func (m *mockQueueRepo) Oldest(ctx context.Context) (*domain.QueuedMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.rows) == 0 {
		return nil, nil
	}
	msg := m.rows[0]
	return &msg, nil
}

func (m *mockQueueRepo) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	for i, r := range m.rows {
		if r.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockQueueRepo) Enqueue(ctx context.Context, msg *domain.QueuedMessage) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	row := *msg
	row.ID = m.nextID
	m.rows = append(m.rows, row)
	return row.ID, nil
}

func (m *mockQueueRepo) Depth(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.rows)), nil
}

func (m *mockQueueRepo) Close() error { return nil }

func (m *mockQueueRepo) bodies() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, r := range m.rows {
		out = append(out, r.Body)
	}
	return out
}

type mockMessageRepo struct {
	mu      sync.Mutex
	sendErr error
	sent    []string
}

func (m *mockMessageRepo) ResolveChannel(ctx context.Context, guildID, channelID domain.Snowflake) (*domain.Channel, error) {
	if guildID != testGuild {
		return nil, fmt.Errorf("unknown guild %d", guildID)
	}
	return &domain.Channel{GuildID: guildID, ID: channelID}, nil
}

func (m *mockMessageRepo) SendText(ctx context.Context, channelID domain.Snowflake, text string) (domain.Snowflake, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return 0, m.sendErr
	}
	m.sent = append(m.sent, text)
	return domain.Snowflake(1000 + len(m.sent)), nil
}

func (m *mockMessageRepo) AddReaction(ctx context.Context, channelID, msgID domain.Snowflake, glyph string) error {
	return nil
}

func (m *mockMessageRepo) texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

type mockMemberRepo struct {
	mu    sync.Mutex
	roles map[domain.Snowflake]bool
	err   error
}

func (m *mockMemberRepo) ResolveMember(ctx context.Context, guildID, userID domain.Snowflake) (*domain.Member, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Member{GuildID: guildID, UserID: userID}, nil
}

func (m *mockMemberRepo) AddRole(ctx context.Context, guildID, userID, roleID domain.Snowflake) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roles[roleID] = true
	return nil
}

func (m *mockMemberRepo) RemoveRole(ctx context.Context, guildID, userID, roleID domain.Snowflake) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.roles, roleID)
	return nil
}

type mockScheduleRepo struct {
	rows     []domain.ScheduleRow
	replaced int
}

func (m *mockScheduleRepo) PublicData(ctx context.Context) (*domain.PublicData, error) {
	return &domain.PublicData{
		Shifts:    []domain.PublicShift{{Name: "open"}},
		Locations: []domain.PublicLocation{{Name: "downtown"}},
	}, nil
}

func (m *mockScheduleRepo) ListRows(ctx context.Context) ([]domain.ScheduleRow, error) {
	return m.rows, nil
}

func (m *mockScheduleRepo) ReplaceRows(ctx context.Context, rows []domain.ScheduleRow) error {
	m.rows = rows
	m.replaced++
	return nil
}

type mockReporter struct {
	mu       sync.Mutex
	errors   []string
	messages []string
	fatals   []string
}

func (m *mockReporter) LogError(ctx context.Context, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, msg)
}

func (m *mockReporter) LogMessage(ctx context.Context, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

func (m *mockReporter) Fatal(ctx context.Context, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fatals = append(m.fatals, msg)
}

var e2eDoc = domain.ConfigDocument{
	ReactRoleGroups: []domain.ReactionRoleGroup{{
		MessageID:         42,
		MutuallyExclusive: true,
		Roles: []domain.ReactionRole{
			{Emoji: "✅", RoleID: 1},
			{Emoji: "❎", RoleID: 2},
		},
	}},
}

// harness wires the real usecases over mocks
type harness struct {
	clock    *testClock
	config   *mockConfigRepo
	queue    *mockQueueRepo
	messages *mockMessageRepo
	members  *mockMemberRepo
	schedule *mockScheduleRepo
	reporter *mockReporter

	stateCache *usecase.StateCache
	cycleUC    *usecase.CycleUsecase
	scheduler  *TickScheduler
}

func newHarness(start time.Time) *harness {
	h := &harness{
		clock:    &testClock{now: start},
		config:   &mockConfigRepo{doc: e2eDoc},
		queue:    &mockQueueRepo{},
		messages: &mockMessageRepo{},
		members:  &mockMemberRepo{roles: map[domain.Snowflake]bool{}},
		schedule: &mockScheduleRepo{},
		reporter: &mockReporter{},
	}

	tracker := usecase.NewDayTracker(-3, h.clock.Now)
	h.stateCache = usecase.NewStateCache(h.config, tracker)
	h.cycleUC = usecase.NewCycleUsecase(
		usecase.NewScheduleUsecase(h.schedule),
		h.queue,
		conf.DefaultTemplatesConfig(),
		testGuild, testLogCh,
	)
	drainUC := usecase.NewDrainUsecase(h.queue, h.messages)
	h.scheduler = NewTickScheduler(h.queue, h.stateCache, tracker, h.cycleUC, drainUC, h.reporter, time.Second, time.Saturday)
	return h
}
