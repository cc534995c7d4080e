package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/authgate/authgate-go/internal/model"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrDuplicateEmail  = errors.New("email already exists")
)

// mysqlDuplicateEntry is MySQL error 1062, raised when an insert violates a
// unique index. The unique index on accounts.email is what makes the
// duplicate check atomic under concurrent registrations.
const mysqlDuplicateEntry = 1062

// AccountRepository handles account persistence operations.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts a new account and sets the generated ID on the struct.
// Returns ErrDuplicateEmail if an account with the same email already exists.
func (r *AccountRepository) Create(ctx context.Context, account *model.Account) error {
	query := `INSERT INTO accounts (name, email, password_hash) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, account.Name, account.Email, account.PasswordHash)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	account.ID = id
	return nil
}

// GetByEmail retrieves an account by its email address. Emails compare
// case-sensitively; the column uses a binary collation.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `SELECT id, name, email, password_hash, created_at, updated_at FROM accounts WHERE email = ?`

	account := &model.Account{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&account.ID, &account.Name, &account.Email, &account.PasswordHash,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	return account, nil
}

// GetByID retrieves an account by its ID.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	query := `SELECT id, name, email, password_hash, created_at, updated_at FROM accounts WHERE id = ?`

	account := &model.Account{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID, &account.Name, &account.Email, &account.PasswordHash,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	return account, nil
}

// isDuplicateEntryError reports whether err is MySQL error 1062.
func isDuplicateEntryError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
