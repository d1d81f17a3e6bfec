package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/tasksheet/tasksheet-cli/internal/board"
	"github.com/tasksheet/tasksheet-cli/internal/model"
	"github.com/tasksheet/tasksheet-cli/internal/store"
)

// validateColumnFlag checks a --column value before it reaches the board,
// so a bad column name gets its own diagnostic instead of falling through
// as a generic add failure. Empty means "use the default column".
func validateColumnFlag(columnID string) error {
	if columnID != "" && !model.IsValidColumn(columnID) {
		return fmt.Errorf("invalid column %q (valid: %s)", columnID, strings.Join(model.ColumnOrder, ", "))
	}
	return nil
}

// buildStore picks the persistence backend from the config: Postgres when
// the database section is enabled, the local JSON files otherwise.
func buildStore(config model.Config) (store.Store, error) {
	if config.Database.Enable {
		if config.Database.DSN == "" {
			return nil, fmt.Errorf("database is enabled but no DSN is configured")
		}
		return store.NewPostgresStore(config.Database.DSN)
	}
	return store.NewJSONStore(config.DataDir), nil
}

func userID(config model.Config) string {
	if config.UserID != "" {
		return config.UserID
	}
	return "local"
}

// buildService loads the config's backend and wires the board service on
// top of it.
func buildService(ctx context.Context, config model.Config) (*board.Service, error) {
	st, err := buildStore(config)
	if err != nil {
		return nil, err
	}
	return board.NewService(ctx, st, userID(config))
}
