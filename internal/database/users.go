package database

import (
	"context"

	"github.com/google/uuid"
)

// TerminalUser is a terminal_users table row. One row per staff login on a
// physical terminal (cashier station, kiosk, indoor station).
type TerminalUser struct {
	ID           uuid.UUID
	TerminalID   uuid.UUID
	Username     string
	FullName     string
	PasscodeHash string
	Role         string
}

// GetTerminalUserByUsername looks up an active terminal user for login.
func (q *Queries) GetTerminalUserByUsername(ctx context.Context, username string) (TerminalUser, error) {
	row := q.db.QueryRow(ctx, `
		SELECT id, terminal_id, username, full_name, passcode_hash, role
		FROM terminal_users
		WHERE username = $1 AND is_active = true`, username)

	var u TerminalUser
	err := row.Scan(&u.ID, &u.TerminalID, &u.Username, &u.FullName, &u.PasscodeHash, &u.Role)
	return u, err
}
