package data

import (
	"database/sql"

	"github.com/bwmarrin/discordgo"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/repo"
)

// Repositories contains all repositories
type Repositories struct {
	Queue    repo.QueueRepo
	Config   repo.ConfigRepo
	Schedule repo.ScheduleRepo
	Message  repo.MessageRepo
	Member   repo.MemberRepo
}

// NewRepositories creates all repositories. session may be nil for tools
// that only touch the database.
func NewRepositories(db *sql.DB, session *discordgo.Session, configPath, publicDataPath string) *Repositories {
	repos := &Repositories{
		Queue:    NewQueueRepo(db),
		Config:   NewConfigRepo(configPath),
		Schedule: NewScheduleRepo(db, publicDataPath),
	}
	if session != nil {
		discord := newDiscordRepo(session)
		repos.Message = discord
		repos.Member = discord
	}
	return repos
}
