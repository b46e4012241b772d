package repository

import (
    "context"
    "database/sql"
    "errors"

    "golang.org/x/crypto/bcrypt"

    "github.com/iliyamo/exam-scheduler/internal/model"
)

// UserRepo manages persistence for users.  Identity management proper is
// outside this service; the repository exists so login can verify
// credentials and so the identity middleware can resolve roles and
// departments for visibility scoping.
type UserRepo struct {
    db *sql.DB
}

// NewUserRepo constructs a UserRepo with the given DB handle.
func NewUserRepo(db *sql.DB) *UserRepo {
    return &UserRepo{db: db}
}

const userColumns = `id, username, email, password_hash, role, department_id, student_no, is_active, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
    var m model.User
    var dept sql.NullInt64
    var studentNo sql.NullString
    err := row.Scan(
        &m.ID, &m.Username, &m.Email, &m.PasswordHash, &m.Role,
        &dept, &studentNo, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    if dept.Valid {
        d := uint64(dept.Int64)
        m.DepartmentID = &d
    }
    if studentNo.Valid {
        s := studentNo.String
        m.StudentNo = &s
    }
    return &m, nil
}

// GetByID retrieves a user by ID, returning ErrUserNotFound when no row
// matches.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
    const q = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
    u, err := scanUser(r.db.QueryRowContext(ctx, q, id))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrUserNotFound
        }
        return nil, err
    }
    return u, nil
}

// GetByEmail retrieves a user by email, returning ErrUserNotFound when no
// row matches.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
    const q = `SELECT ` + userColumns + ` FROM users WHERE email = ?`
    u, err := scanUser(r.db.QueryRowContext(ctx, q, email))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrUserNotFound
        }
        return nil, err
    }
    return u, nil
}

// VerifyPassword compares the stored bcrypt hash against the supplied
// plain text password.
func (r *UserRepo) VerifyPassword(u *model.User, password string) bool {
    return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Create inserts a new user with a freshly hashed password and assigns
// the generated ID back to the struct.  Used by the CSV seeder.
func (r *UserRepo) Create(ctx context.Context, m *model.User, password string, bcryptCost int) error {
    hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
    if err != nil {
        return err
    }
    const q = `INSERT INTO users (username, email, password_hash, role, department_id, student_no, is_active)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q,
        m.Username, m.Email, string(hash), m.Role, m.DepartmentID, m.StudentNo, m.IsActive,
    )
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    m.ID = uint64(id)
    m.PasswordHash = string(hash)
    return nil
}
