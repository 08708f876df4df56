package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) DB() *sql.DB {
	return s.db
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Users

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, display_name, password_hash, role, created_at, updated_at
		FROM users
		WHERE email=$1
	`, email).Scan(&user.ID, &user.Email, &user.DisplayName, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, userID string) (User, error) {
	var user User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, display_name, password_hash, role, created_at, updated_at
		FROM users
		WHERE id=$1
	`, userID).Scan(&user.ID, &user.Email, &user.DisplayName, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, user User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, display_name, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
	`, user.ID, user.Email, user.DisplayName, user.PasswordHash, user.Role)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateUserPassword(ctx context.Context, userID, passwordHash string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET password_hash=$2, updated_at=NOW() WHERE id=$1
	`, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	return nil
}

func (s *PostgresStore) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) CreatePasswordReset(ctx context.Context, userID, token string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO password_resets (token, user_id, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (token) DO NOTHING
	`, token, userID, expiresAt)
	if err != nil {
		return fmt.Errorf("create password reset: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetPasswordReset(ctx context.Context, token string) (string, error) {
	var userID string
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id FROM password_resets
		WHERE token=$1 AND used_at IS NULL AND expires_at > NOW()
	`, token).Scan(&userID)
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (s *PostgresStore) MarkPasswordResetUsed(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE password_resets SET used_at=NOW() WHERE token=$1`, token)
	if err != nil {
		return fmt.Errorf("mark password reset used: %w", err)
	}
	return nil
}

// Refresh sessions (Postgres fallback when Redis is not configured)

func (s *PostgresStore) SaveRefreshSession(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO refresh_sessions (token_hash, user_id, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (token_hash) DO UPDATE SET user_id=EXCLUDED.user_id, expires_at=EXCLUDED.expires_at, revoked_at=NULL
	`, tokenHash, userID, expiresAt)
	if err != nil {
		return fmt.Errorf("save refresh session: %w", err)
	}
	return nil
}

func (s *PostgresStore) LookupRefreshSession(ctx context.Context, tokenHash string) (User, error) {
	const query = `
		SELECT u.id, u.email, u.display_name, u.role
		FROM refresh_sessions rs
		JOIN users u ON u.id = rs.user_id
		WHERE rs.token_hash = $1
			AND rs.revoked_at IS NULL
			AND rs.expires_at > NOW()
	`
	var user User
	err := s.db.QueryRowContext(ctx, query, tokenHash).Scan(&user.ID, &user.Email, &user.DisplayName, &user.Role)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *PostgresStore) RevokeRefreshSession(ctx context.Context, tokenHash string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE refresh_sessions SET revoked_at=NOW() WHERE token_hash=$1`, tokenHash)
	if err != nil {
		return fmt.Errorf("revoke refresh session: %w", err)
	}
	return nil
}

// Profile

func (s *PostgresStore) GetProfile(ctx context.Context) (*Profile, error) {
	var (
		p       Profile
		socials []byte
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, full_name, headline, bio, email, phone, location, avatar_url, resume_url, socials, updated_at
		FROM profile
		LIMIT 1
	`).Scan(&p.ID, &p.FullName, &p.Headline, &p.Bio, &p.Email, &p.Phone, &p.Location, &p.AvatarURL, &p.ResumeURL, &socials, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if len(socials) > 0 {
		if err := json.Unmarshal(socials, &p.Socials); err != nil {
			return nil, fmt.Errorf("decode profile socials: %w", err)
		}
	}
	return &p, nil
}

func (s *PostgresStore) UpsertProfile(ctx context.Context, p Profile) error {
	socials, err := json.Marshal(p.Socials)
	if err != nil {
		return fmt.Errorf("encode profile socials: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profile (id, full_name, headline, bio, email, phone, location, avatar_url, resume_url, socials)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			full_name=EXCLUDED.full_name, headline=EXCLUDED.headline, bio=EXCLUDED.bio,
			email=EXCLUDED.email, phone=EXCLUDED.phone, location=EXCLUDED.location,
			avatar_url=EXCLUDED.avatar_url, resume_url=EXCLUDED.resume_url,
			socials=EXCLUDED.socials, updated_at=NOW()
	`, p.ID, p.FullName, p.Headline, p.Bio, p.Email, p.Phone, p.Location, p.AvatarURL, p.ResumeURL, socials)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// Skills

func (s *PostgresStore) ListSkills(ctx context.Context, visibleOnly bool) ([]Skill, error) {
	query := `
		SELECT id, name, category, level, visible, sort_order
		FROM skills
	`
	if visibleOnly {
		query += ` WHERE visible = TRUE`
	}
	query += ` ORDER BY sort_order, name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	defer rows.Close()

	items := make([]Skill, 0)
	for rows.Next() {
		var item Skill
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Level, &item.Visible, &item.SortOrder); err != nil {
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate skills: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) GetSkill(ctx context.Context, skillID string) (Skill, error) {
	var item Skill
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, category, level, visible, sort_order
		FROM skills
		WHERE id=$1
	`, skillID).Scan(&item.ID, &item.Name, &item.Category, &item.Level, &item.Visible, &item.SortOrder)
	if err != nil {
		return Skill{}, err
	}
	return item, nil
}

func (s *PostgresStore) InsertSkill(ctx context.Context, item Skill) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO skills (id, name, category, level, visible, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, item.ID, item.Name, item.Category, item.Level, item.Visible, item.SortOrder)
	if err != nil {
		return fmt.Errorf("insert skill: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateSkill(ctx context.Context, item Skill) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE skills
		SET name=$2, category=$3, level=$4, visible=$5, sort_order=$6
		WHERE id=$1
	`, item.ID, item.Name, item.Category, item.Level, item.Visible, item.SortOrder)
	if err != nil {
		return fmt.Errorf("update skill: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteSkill(ctx context.Context, skillID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM skills WHERE id=$1`, skillID)
	if err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	return nil
}

// Projects

func (s *PostgresStore) ListProjects(ctx context.Context, visibleOnly bool) ([]Project, error) {
	query := `
		SELECT id, title, slug, summary, description, repo_url, live_url, cover_url, tags, featured, visible, sort_order, created_at, updated_at
		FROM projects
	`
	if visibleOnly {
		query += ` WHERE visible = TRUE`
	}
	query += ` ORDER BY sort_order, created_at`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	items := make([]Project, 0)
	for rows.Next() {
		item, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) GetProject(ctx context.Context, projectID string) (Project, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, slug, summary, description, repo_url, live_url, cover_url, tags, featured, visible, sort_order, created_at, updated_at
		FROM projects
		WHERE id=$1
	`, projectID)
	return scanProject(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (Project, error) {
	var (
		item Project
		tags []byte
	)
	err := row.Scan(&item.ID, &item.Title, &item.Slug, &item.Summary, &item.Description,
		&item.RepoURL, &item.LiveURL, &item.CoverURL, &tags,
		&item.Featured, &item.Visible, &item.SortOrder, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return Project{}, err
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &item.Tags); err != nil {
			return Project{}, fmt.Errorf("decode project tags: %w", err)
		}
	}
	return item, nil
}

func (s *PostgresStore) InsertProject(ctx context.Context, item Project) error {
	tags, err := json.Marshal(item.Tags)
	if err != nil {
		return fmt.Errorf("encode project tags: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO projects (id, title, slug, summary, description, repo_url, live_url, cover_url, tags, featured, visible, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, item.ID, item.Title, item.Slug, item.Summary, item.Description,
		item.RepoURL, item.LiveURL, item.CoverURL, tags, item.Featured, item.Visible, item.SortOrder)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateProject(ctx context.Context, item Project) error {
	tags, err := json.Marshal(item.Tags)
	if err != nil {
		return fmt.Errorf("encode project tags: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		UPDATE projects
		SET title=$2, slug=$3, summary=$4, description=$5, repo_url=$6, live_url=$7,
			cover_url=$8, tags=$9, featured=$10, visible=$11, sort_order=$12, updated_at=NOW()
		WHERE id=$1
	`, item.ID, item.Title, item.Slug, item.Summary, item.Description,
		item.RepoURL, item.LiveURL, item.CoverURL, tags, item.Featured, item.Visible, item.SortOrder)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteProject(ctx context.Context, projectID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id=$1`, projectID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// Experience

func (s *PostgresStore) ListExperience(ctx context.Context, visibleOnly bool) ([]Experience, error) {
	query := `
		SELECT id, company, role, location, start_date, end_date, summary, highlights, visible, sort_order
		FROM experience
	`
	if visibleOnly {
		query += ` WHERE visible = TRUE`
	}
	query += ` ORDER BY sort_order`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list experience: %w", err)
	}
	defer rows.Close()

	items := make([]Experience, 0)
	for rows.Next() {
		var (
			item       Experience
			highlights []byte
		)
		if err := rows.Scan(&item.ID, &item.Company, &item.Role, &item.Location,
			&item.StartDate, &item.EndDate, &item.Summary, &highlights, &item.Visible, &item.SortOrder); err != nil {
			return nil, fmt.Errorf("scan experience: %w", err)
		}
		if len(highlights) > 0 {
			if err := json.Unmarshal(highlights, &item.Highlights); err != nil {
				return nil, fmt.Errorf("decode experience highlights: %w", err)
			}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate experience: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) GetExperience(ctx context.Context, experienceID string) (Experience, error) {
	var (
		item       Experience
		highlights []byte
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, company, role, location, start_date, end_date, summary, highlights, visible, sort_order
		FROM experience
		WHERE id=$1
	`, experienceID).Scan(&item.ID, &item.Company, &item.Role, &item.Location,
		&item.StartDate, &item.EndDate, &item.Summary, &highlights, &item.Visible, &item.SortOrder)
	if err != nil {
		return Experience{}, err
	}
	if len(highlights) > 0 {
		if err := json.Unmarshal(highlights, &item.Highlights); err != nil {
			return Experience{}, fmt.Errorf("decode experience highlights: %w", err)
		}
	}
	return item, nil
}

func (s *PostgresStore) InsertExperience(ctx context.Context, item Experience) error {
	highlights, err := json.Marshal(item.Highlights)
	if err != nil {
		return fmt.Errorf("encode experience highlights: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO experience (id, company, role, location, start_date, end_date, summary, highlights, visible, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, item.ID, item.Company, item.Role, item.Location, item.StartDate, item.EndDate,
		item.Summary, highlights, item.Visible, item.SortOrder)
	if err != nil {
		return fmt.Errorf("insert experience: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateExperience(ctx context.Context, item Experience) error {
	highlights, err := json.Marshal(item.Highlights)
	if err != nil {
		return fmt.Errorf("encode experience highlights: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		UPDATE experience
		SET company=$2, role=$3, location=$4, start_date=$5, end_date=$6, summary=$7,
			highlights=$8, visible=$9, sort_order=$10
		WHERE id=$1
	`, item.ID, item.Company, item.Role, item.Location, item.StartDate, item.EndDate,
		item.Summary, highlights, item.Visible, item.SortOrder)
	if err != nil {
		return fmt.Errorf("update experience: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteExperience(ctx context.Context, experienceID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM experience WHERE id=$1`, experienceID)
	if err != nil {
		return fmt.Errorf("delete experience: %w", err)
	}
	return nil
}

// Education

func (s *PostgresStore) ListEducation(ctx context.Context, visibleOnly bool) ([]Education, error) {
	query := `
		SELECT id, school, degree, field, start_year, end_year, notes, visible, sort_order
		FROM education
	`
	if visibleOnly {
		query += ` WHERE visible = TRUE`
	}
	query += ` ORDER BY sort_order`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list education: %w", err)
	}
	defer rows.Close()

	items := make([]Education, 0)
	for rows.Next() {
		var item Education
		if err := rows.Scan(&item.ID, &item.School, &item.Degree, &item.Field,
			&item.StartYear, &item.EndYear, &item.Notes, &item.Visible, &item.SortOrder); err != nil {
			return nil, fmt.Errorf("scan education: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate education: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) GetEducation(ctx context.Context, educationID string) (Education, error) {
	var item Education
	err := s.db.QueryRowContext(ctx, `
		SELECT id, school, degree, field, start_year, end_year, notes, visible, sort_order
		FROM education
		WHERE id=$1
	`, educationID).Scan(&item.ID, &item.School, &item.Degree, &item.Field,
		&item.StartYear, &item.EndYear, &item.Notes, &item.Visible, &item.SortOrder)
	if err != nil {
		return Education{}, err
	}
	return item, nil
}

func (s *PostgresStore) InsertEducation(ctx context.Context, item Education) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO education (id, school, degree, field, start_year, end_year, notes, visible, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, item.ID, item.School, item.Degree, item.Field, item.StartYear, item.EndYear,
		item.Notes, item.Visible, item.SortOrder)
	if err != nil {
		return fmt.Errorf("insert education: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateEducation(ctx context.Context, item Education) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE education
		SET school=$2, degree=$3, field=$4, start_year=$5, end_year=$6, notes=$7, visible=$8, sort_order=$9
		WHERE id=$1
	`, item.ID, item.School, item.Degree, item.Field, item.StartYear, item.EndYear,
		item.Notes, item.Visible, item.SortOrder)
	if err != nil {
		return fmt.Errorf("update education: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteEducation(ctx context.Context, educationID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM education WHERE id=$1`, educationID)
	if err != nil {
		return fmt.Errorf("delete education: %w", err)
	}
	return nil
}

// Site settings

func (s *PostgresStore) ListSettings(ctx context.Context) ([]SiteSetting, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM site_settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	items := make([]SiteSetting, 0)
	for rows.Next() {
		var item SiteSetting
		if err := rows.Scan(&item.Key, &item.Value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settings: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) UpsertSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO site_settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteSetting(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM site_settings WHERE key=$1`, key)
	if err != nil {
		return fmt.Errorf("delete setting: %w", err)
	}
	return nil
}

// Page layouts

func (s *PostgresStore) ListLayouts(ctx context.Context) ([]PageLayout, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT page, sections, updated_at FROM page_layouts ORDER BY page`)
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	defer rows.Close()

	items := make([]PageLayout, 0)
	for rows.Next() {
		var item PageLayout
		if err := rows.Scan(&item.Page, &item.Sections, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan layout: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate layouts: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) GetLayout(ctx context.Context, page string) (PageLayout, error) {
	var item PageLayout
	err := s.db.QueryRowContext(ctx, `
		SELECT page, sections, updated_at FROM page_layouts WHERE page=$1
	`, page).Scan(&item.Page, &item.Sections, &item.UpdatedAt)
	if err != nil {
		return PageLayout{}, err
	}
	return item, nil
}

func (s *PostgresStore) UpsertLayout(ctx context.Context, page string, sections []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO page_layouts (page, sections)
		VALUES ($1, $2)
		ON CONFLICT (page) DO UPDATE SET sections=EXCLUDED.sections, updated_at=NOW()
	`, page, sections)
	if err != nil {
		return fmt.Errorf("upsert layout: %w", err)
	}
	return nil
}

// Contact messages

func (s *PostgresStore) InsertMessage(ctx context.Context, item ContactMessage) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contact_messages (id, name, email, subject, body)
		VALUES ($1, $2, $3, $4, $5)
	`, item.ID, item.Name, item.Email, item.Subject, item.Body)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListMessages(ctx context.Context) ([]ContactMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, subject, body, read, created_at
		FROM contact_messages
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	items := make([]ContactMessage, 0)
	for rows.Next() {
		var item ContactMessage
		if err := rows.Scan(&item.ID, &item.Name, &item.Email, &item.Subject, &item.Body, &item.Read, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) GetMessage(ctx context.Context, messageID string) (ContactMessage, error) {
	var item ContactMessage
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, subject, body, read, created_at
		FROM contact_messages
		WHERE id=$1
	`, messageID).Scan(&item.ID, &item.Name, &item.Email, &item.Subject, &item.Body, &item.Read, &item.CreatedAt)
	if err != nil {
		return ContactMessage{}, err
	}
	return item, nil
}

func (s *PostgresStore) MarkMessageRead(ctx context.Context, messageID string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE contact_messages SET read=TRUE WHERE id=$1`, messageID)
	if err != nil {
		return fmt.Errorf("mark message read: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteMessage(ctx context.Context, messageID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id=$1`, messageID)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

// Audit log

func (s *PostgresStore) AppendAudit(ctx context.Context, entry AuditEntry) error {
	snapshot, err := json.Marshal(entry.Snapshot)
	if err != nil {
		return fmt.Errorf("encode audit snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO audit_log (actor, action, entity_type, entity_id, snapshot)
		VALUES ($1, $2, $3, $4, $5)
	`, entry.Actor, entry.Action, entry.EntityType, entry.EntityID, snapshot)
	if err != nil {
		return fmt.Errorf("append audit: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListAudit(ctx context.Context, limit int) ([]AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, actor, action, entity_type, entity_id, snapshot, created_at
		FROM audit_log
		ORDER BY id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	defer rows.Close()

	items := make([]AuditEntry, 0)
	for rows.Next() {
		var (
			item     AuditEntry
			snapshot []byte
		)
		if err := rows.Scan(&item.ID, &item.Actor, &item.Action, &item.EntityType, &item.EntityID, &snapshot, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if len(snapshot) > 0 {
			if err := json.Unmarshal(snapshot, &item.Snapshot); err != nil {
				return nil, fmt.Errorf("decode audit snapshot: %w", err)
			}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return items, nil
}
