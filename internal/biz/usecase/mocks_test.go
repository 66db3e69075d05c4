package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
)

var errMock = errors.New("mock failure")

// Mock implementations

type mockConfigRepo struct {
	mu    sync.Mutex
	doc   domain.ConfigDocument
	err   error
	loads int
}

func (m *mockConfigRepo) Load(ctx context.Context) (*domain.BotConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.err != nil {
		return nil, m.err
	}
	return domain.NewBotConfig(m.doc)
}

func (m *mockConfigRepo) Path() string { return "BotConfig.json" }

func (m *mockConfigRepo) loadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads
}

type mockQueueRepo struct {
	mu        sync.Mutex
	rows      []*domain.QueuedMessage
	nextID    int64
	pingErr   error
	oldestErr error
	deleteErr error
	enqErr    error
	deletes   []int64
	calls     *[]string
}

func (m *mockQueueRepo) record(s string) {
	if m.calls != nil {
		*m.calls = append(*m.calls, s)
	}
}

func (m *mockQueueRepo) Ping(ctx context.Context) error { return m.pingErr }

func (m *mockQueueRepo) Oldest(ctx context.Context) (*domain.QueuedMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.oldestErr != nil {
		return nil, m.oldestErr
	}
	if len(m.rows) == 0 {
		return nil, nil
	}
	sort.Slice(m.rows, func(i, j int) bool { return m.rows[i].ID < m.rows[j].ID })
	msg := *m.rows[0]
	return &msg, nil
}

func (m *mockQueueRepo) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.record(fmt.Sprintf("delete:%d", id))
	m.deletes = append(m.deletes, id)
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
	if m.enqErr != nil {
		return 0, m.enqErr
	}
	m.nextID++
	row := *msg
	row.ID = m.nextID
	m.rows = append(m.rows, &row)
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

type sentMessage struct {
	ChannelID domain.Snowflake
	Text      string
	Reactions []string
}

type mockMessageRepo struct {
	channels   map[domain.Snowflake]domain.Snowflake // channel -> guild
	sendErr    error
	reactErrAt string
	sent       []*sentMessage
	calls      *[]string
}

func (m *mockMessageRepo) ResolveChannel(ctx context.Context, guildID, channelID domain.Snowflake) (*domain.Channel, error) {
	g, ok := m.channels[channelID]
	if !ok || g != guildID {
		return nil, fmt.Errorf("unknown channel %d", channelID)
	}
	return &domain.Channel{GuildID: guildID, ID: channelID}, nil
}

func (m *mockMessageRepo) SendText(ctx context.Context, channelID domain.Snowflake, text string) (domain.Snowflake, error) {
	if m.sendErr != nil {
		return 0, m.sendErr
	}
	if m.calls != nil {
		*m.calls = append(*m.calls, "send:"+text)
	}
	m.sent = append(m.sent, &sentMessage{ChannelID: channelID, Text: text})
	return domain.Snowflake(1000 + len(m.sent)), nil
}

func (m *mockMessageRepo) AddReaction(ctx context.Context, channelID, msgID domain.Snowflake, glyph string) error {
	if glyph == m.reactErrAt {
		return errMock
	}
	idx := int(msgID) - 1001
	m.sent[idx].Reactions = append(m.sent[idx].Reactions, glyph)
	return nil
}

func (m *mockMessageRepo) texts() []string {
	var out []string
	for _, s := range m.sent {
		out = append(out, s.Text)
	}
	return out
}

type mockMemberRepo struct {
	mu         sync.Mutex
	roles      map[domain.Snowflake]map[domain.Snowflake]bool // user -> roles
	resolveErr error
	failRole   domain.Snowflake
	calls      []string
}

func newMockMemberRepo() *mockMemberRepo {
	return &mockMemberRepo{roles: make(map[domain.Snowflake]map[domain.Snowflake]bool)}
}

func (m *mockMemberRepo) give(userID domain.Snowflake, roleIDs ...domain.Snowflake) {
	if m.roles[userID] == nil {
		m.roles[userID] = make(map[domain.Snowflake]bool)
	}
	for _, r := range roleIDs {
		m.roles[userID][r] = true
	}
}

func (m *mockMemberRepo) held(userID domain.Snowflake) []domain.Snowflake {
	var out []domain.Snowflake
	for r := range m.roles[userID] {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (m *mockMemberRepo) ResolveMember(ctx context.Context, guildID, userID domain.Snowflake) (*domain.Member, error) {
	if m.resolveErr != nil {
		return nil, m.resolveErr
	}
	return &domain.Member{GuildID: guildID, UserID: userID, Roles: m.held(userID)}, nil
}

func (m *mockMemberRepo) AddRole(ctx context.Context, guildID, userID, roleID domain.Snowflake) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if roleID == m.failRole {
		return errMock
	}
	m.calls = append(m.calls, fmt.Sprintf("add:%d", roleID))
	m.give(userID, roleID)
	return nil
}

func (m *mockMemberRepo) RemoveRole(ctx context.Context, guildID, userID, roleID domain.Snowflake) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if roleID == m.failRole {
		return errMock
	}
	m.calls = append(m.calls, fmt.Sprintf("remove:%d", roleID))
	delete(m.roles[userID], roleID)
	return nil
}

type mockScheduleRepo struct {
	pub     *domain.PublicData
	rows    []domain.ScheduleRow
	pubErr  error
	saveErr error
	saved   bool
}

func (m *mockScheduleRepo) PublicData(ctx context.Context) (*domain.PublicData, error) {
	if m.pubErr != nil {
		return nil, m.pubErr
	}
	return m.pub, nil
}

func (m *mockScheduleRepo) ListRows(ctx context.Context) ([]domain.ScheduleRow, error) {
	return m.rows, nil
}

func (m *mockScheduleRepo) ReplaceRows(ctx context.Context, rows []domain.ScheduleRow) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.rows = rows
	m.saved = true
	return nil
}
