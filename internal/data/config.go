package data

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
	"github.com/Elgenzay/kava.elg.gg/internal/biz/repo"
)

// configRepo reads the reaction-role document from disk on every Load.
// Comments and trailing commas are accepted.
type configRepo struct {
	path string
}

// NewConfigRepo creates a file-backed configuration repository
func NewConfigRepo(path string) repo.ConfigRepo {
	return &configRepo{path: path}
}

// Load reads and validates the document
func (r *configRepo) Load(ctx context.Context) (*domain.BotConfig, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	return ParseBotConfig(raw)
}

// Path returns the document location
func (r *configRepo) Path() string {
	return r.path
}

// ParseBotConfig parses a JSONC configuration document
func ParseBotConfig(raw []byte) (*domain.BotConfig, error) {
	var doc domain.ConfigDocument
	if err := json.Unmarshal(jsonc.ToJSON(raw), &doc); err != nil {
		return nil, fmt.Errorf("%w: parse: %v", domain.ErrInvalidConfig, err)
	}
	return domain.NewBotConfig(doc)
}
