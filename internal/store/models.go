package store

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Profile is the single public profile record. Optional fields are pointers
// so missing values surface as null, never as empty strings.
type Profile struct {
	ID        string            `json:"id"`
	FullName  string            `json:"fullName"`
	Headline  string            `json:"headline"`
	Bio       string            `json:"bio"`
	Email     string            `json:"email"`
	Phone     *string           `json:"phone"`
	Location  *string           `json:"location"`
	AvatarURL *string           `json:"avatarUrl"`
	ResumeURL *string           `json:"resumeUrl"`
	Socials   map[string]string `json:"socials"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

type Skill struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Level     int    `json:"level"`
	Visible   bool   `json:"visible"`
	SortOrder int    `json:"sortOrder"`
}

type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	RepoURL     *string   `json:"repoUrl"`
	LiveURL     *string   `json:"liveUrl"`
	CoverURL    *string   `json:"coverUrl"`
	Tags        []string  `json:"tags"`
	Featured    bool      `json:"featured"`
	Visible     bool      `json:"visible"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Experience struct {
	ID         string   `json:"id"`
	Company    string   `json:"company"`
	Role       string   `json:"role"`
	Location   *string  `json:"location"`
	StartDate  string   `json:"startDate"`
	EndDate    *string  `json:"endDate"`
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
	Visible    bool     `json:"visible"`
	SortOrder  int      `json:"sortOrder"`
}

type Education struct {
	ID        string  `json:"id"`
	School    string  `json:"school"`
	Degree    string  `json:"degree"`
	Field     string  `json:"field"`
	StartYear string  `json:"startYear"`
	EndYear   *string `json:"endYear"`
	Notes     string  `json:"notes"`
	Visible   bool    `json:"visible"`
	SortOrder int     `json:"sortOrder"`
}

type SiteSetting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// PageLayout stores one page's section list as a raw JSON array. Both the
// legacy enabled/config shape and the current visible/props shape occur in
// stored data; decoding is the section package's job.
type PageLayout struct {
	Page      string    `json:"page"`
	Sections  []byte    `json:"-"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuditEntry is append-only; nothing in the rendering pipeline reads it.
type AuditEntry struct {
	ID         int64          `json:"id"`
	Actor      string         `json:"actor"`
	Action     string         `json:"action"`
	EntityType string         `json:"entityType"`
	EntityID   string         `json:"entityId"`
	Snapshot   map[string]any `json:"snapshot,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}
