package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
)

type User struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
	CreatedAt   time.Time
}

type Board struct {
	ID        string
	Name      string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type BoardMember struct {
	BoardID     string
	UserID      string
	Role        Role
	DisplayName string
	Email       string
}

type Snapshot struct {
	ID        string
	BoardID   string
	Version   int32
	Document  []byte
	CreatedAt time.Time
}

// Queries is the hand-written query layer over the pool.
type Queries struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Queries {
	return &Queries{pool: pool}
}

// --- users ---

type CreateUserParams struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
}

func (q *Queries) CreateUser(ctx context.Context, p CreateUserParams) (User, error) {
	row := q.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password, display_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, password, display_name, created_at`,
		p.ID, p.Email, p.Password, p.DisplayName)
	return scanUser(row)
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.pool.QueryRow(ctx, `
		SELECT id, email, password, display_name, created_at
		FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (q *Queries) GetUserByID(ctx context.Context, id string) (User, error) {
	row := q.pool.QueryRow(ctx, `
		SELECT id, email, password, display_name, created_at
		FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	return u, err
}

// --- boards ---

type CreateBoardParams struct {
	ID      string
	Name    string
	OwnerID string
}

func (q *Queries) CreateBoard(ctx context.Context, p CreateBoardParams) (Board, error) {
	row := q.pool.QueryRow(ctx, `
		INSERT INTO boards (id, name, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, owner_id, created_at, updated_at`,
		p.ID, p.Name, p.OwnerID)
	return scanBoard(row)
}

func (q *Queries) GetBoard(ctx context.Context, id string) (Board, error) {
	row := q.pool.QueryRow(ctx, `
		SELECT id, name, owner_id, created_at, updated_at
		FROM boards WHERE id = $1`, id)
	return scanBoard(row)
}

func (q *Queries) ListBoardsForUser(ctx context.Context, userID string) ([]Board, error) {
	rows, err := q.pool.Query(ctx, `
		SELECT b.id, b.name, b.owner_id, b.created_at, b.updated_at
		FROM boards b
		JOIN board_members m ON m.board_id = b.id
		WHERE m.user_id = $1
		ORDER BY b.updated_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var boards []Board
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

func (q *Queries) RenameBoard(ctx context.Context, id, name string) error {
	_, err := q.pool.Exec(ctx, `
		UPDATE boards SET name = $2, updated_at = now() WHERE id = $1`, id, name)
	return err
}

func (q *Queries) DeleteBoard(ctx context.Context, id string) error {
	_, err := q.pool.Exec(ctx, `DELETE FROM boards WHERE id = $1`, id)
	return err
}

func scanBoard(row pgx.Row) (Board, error) {
	var b Board
	err := row.Scan(&b.ID, &b.Name, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// --- members ---

type AddBoardMemberParams struct {
	BoardID string
	UserID  string
	Role    Role
}

func (q *Queries) AddBoardMember(ctx context.Context, p AddBoardMemberParams) error {
	_, err := q.pool.Exec(ctx, `
		INSERT INTO board_members (board_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (board_id, user_id) DO NOTHING`,
		p.BoardID, p.UserID, p.Role)
	return err
}

type GetBoardMemberParams struct {
	BoardID string
	UserID  string
}

func (q *Queries) GetBoardMember(ctx context.Context, p GetBoardMemberParams) (BoardMember, error) {
	row := q.pool.QueryRow(ctx, `
		SELECT m.board_id, m.user_id, m.role, u.display_name, u.email
		FROM board_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.board_id = $1 AND m.user_id = $2`,
		p.BoardID, p.UserID)
	var m BoardMember
	err := row.Scan(&m.BoardID, &m.UserID, &m.Role, &m.DisplayName, &m.Email)
	return m, err
}

func (q *Queries) ListBoardMembers(ctx context.Context, boardID string) ([]BoardMember, error) {
	rows, err := q.pool.Query(ctx, `
		SELECT m.board_id, m.user_id, m.role, u.display_name, u.email
		FROM board_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.board_id = $1
		ORDER BY u.display_name`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []BoardMember
	for rows.Next() {
		var m BoardMember
		if err := rows.Scan(&m.BoardID, &m.UserID, &m.Role, &m.DisplayName, &m.Email); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

type RemoveBoardMemberParams struct {
	BoardID string
	UserID  string
}

func (q *Queries) RemoveBoardMember(ctx context.Context, p RemoveBoardMemberParams) error {
	_, err := q.pool.Exec(ctx, `
		DELETE FROM board_members WHERE board_id = $1 AND user_id = $2`,
		p.BoardID, p.UserID)
	return err
}

// --- snapshots ---

type CreateSnapshotParams struct {
	ID       string
	BoardID  string
	Version  int32
	Document []byte
}

func (q *Queries) CreateSnapshot(ctx context.Context, p CreateSnapshotParams) (Snapshot, error) {
	row := q.pool.QueryRow(ctx, `
		INSERT INTO board_snapshots (id, board_id, version, document)
		VALUES ($1, $2, $3, $4)
		RETURNING id, board_id, version, document, created_at`,
		p.ID, p.BoardID, p.Version, p.Document)
	var s Snapshot
	err := row.Scan(&s.ID, &s.BoardID, &s.Version, &s.Document, &s.CreatedAt)
	return s, err
}

func (q *Queries) GetLatestSnapshot(ctx context.Context, boardID string) (Snapshot, error) {
	row := q.pool.QueryRow(ctx, `
		SELECT id, board_id, version, document, created_at
		FROM board_snapshots
		WHERE board_id = $1
		ORDER BY version DESC
		LIMIT 1`, boardID)
	var s Snapshot
	err := row.Scan(&s.ID, &s.BoardID, &s.Version, &s.Document, &s.CreatedAt)
	return s, err
}
