package app

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"folio/api/internal/auth"
	"folio/api/internal/authpw"
	"folio/api/internal/builder"
	"folio/api/internal/config"
	"folio/api/internal/export"
	"folio/api/internal/layouthist"
	"folio/api/internal/media"
	"folio/api/internal/rbac"
	"folio/api/internal/search"
	"folio/api/internal/section"
	"folio/api/internal/store"
	"folio/api/internal/util"
)

type Session struct {
	Token        string
	RefreshToken string
	UserID       string
	Email        string
	DisplayName  string
	Role         string
	JTI          string
	ExpiresAt    time.Time
}

type dataStore interface {
	Ping(ctx context.Context) error

	GetUserByID(ctx context.Context, id string) (store.User, error)
	CountUsers(ctx context.Context) (int, error)

	GetProfile(ctx context.Context) (*store.Profile, error)
	UpsertProfile(ctx context.Context, p store.Profile) error

	ListSkills(ctx context.Context, visibleOnly bool) ([]store.Skill, error)
	GetSkill(ctx context.Context, id string) (store.Skill, error)
	InsertSkill(ctx context.Context, item store.Skill) error
	UpdateSkill(ctx context.Context, item store.Skill) error
	DeleteSkill(ctx context.Context, id string) error

	ListProjects(ctx context.Context, visibleOnly bool) ([]store.Project, error)
	GetProject(ctx context.Context, id string) (store.Project, error)
	InsertProject(ctx context.Context, item store.Project) error
	UpdateProject(ctx context.Context, item store.Project) error
	DeleteProject(ctx context.Context, id string) error

	ListExperience(ctx context.Context, visibleOnly bool) ([]store.Experience, error)
	GetExperience(ctx context.Context, id string) (store.Experience, error)
	InsertExperience(ctx context.Context, item store.Experience) error
	UpdateExperience(ctx context.Context, item store.Experience) error
	DeleteExperience(ctx context.Context, id string) error

	ListEducation(ctx context.Context, visibleOnly bool) ([]store.Education, error)
	GetEducation(ctx context.Context, id string) (store.Education, error)
	InsertEducation(ctx context.Context, item store.Education) error
	UpdateEducation(ctx context.Context, item store.Education) error
	DeleteEducation(ctx context.Context, id string) error

	ListSettings(ctx context.Context) ([]store.SiteSetting, error)
	UpsertSetting(ctx context.Context, key, value string) error
	DeleteSetting(ctx context.Context, key string) error

	ListLayouts(ctx context.Context) ([]store.PageLayout, error)
	GetLayout(ctx context.Context, page string) (store.PageLayout, error)
	UpsertLayout(ctx context.Context, page string, sections []byte) error

	InsertMessage(ctx context.Context, item store.ContactMessage) error
	ListMessages(ctx context.Context) ([]store.ContactMessage, error)
	GetMessage(ctx context.Context, id string) (store.ContactMessage, error)
	MarkMessageRead(ctx context.Context, id string) error
	DeleteMessage(ctx context.Context, id string) error

	AppendAudit(ctx context.Context, entry store.AuditEntry) error
	ListAudit(ctx context.Context, limit int) ([]store.AuditEntry, error)
}

type sessionStore interface {
	SaveRefreshSession(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error
	LookupRefreshSession(ctx context.Context, tokenHash string) (store.User, error)
	RevokeRefreshSession(ctx context.Context, tokenHash string) error
}

type layoutHistory interface {
	Save(page string, layout json.RawMessage, author, message string) (layouthist.CommitInfo, error)
	History(page string, limit int) ([]layouthist.CommitInfo, error)
	GetByHash(page, hash string) (json.RawMessage, layouthist.CommitInfo, error)
}

type Service struct {
	cfg      config.Config
	store    dataStore
	sessions sessionStore
	history  layoutHistory
	search   *search.Service
	media    *media.Service
	export   *export.Service
	authpw   *authpw.Service
}

func New(cfg config.Config, dataStore dataStore, sessions sessionStore, history layoutHistory,
	searchSvc *search.Service, mediaSvc *media.Service, exportSvc *export.Service, authSvc *authpw.Service) *Service {
	return &Service{
		cfg:      cfg,
		store:    dataStore,
		sessions: sessions,
		history:  history,
		search:   searchSvc,
		media:    mediaSvc,
		export:   exportSvc,
		authpw:   authSvc,
	}
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Bootstrap prepares an empty database. It creates the admin account,
// seeds a placeholder profile and a default home layout, and backfills
// the search indexes. Safe to run on every start.
func (s *Service) Bootstrap(ctx context.Context) error {
	count, err := s.store.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		user, err := s.authpw.CreateUser(ctx, authpw.CreateUserRequest{
			Email:       s.cfg.AdminEmail,
			Password:    s.cfg.AdminPassword,
			DisplayName: "Admin",
			Role:        string(rbac.RoleAdmin),
		})
		if err != nil {
			return fmt.Errorf("seed admin user: %w", err)
		}
		log.Printf("bootstrap: created admin account %s", user.Email)
	}

	if _, err := s.store.GetLayout(ctx, "home"); errors.Is(err, sql.ErrNoRows) {
		sections := defaultHomeSections()
		encoded, err := section.EncodeList(sections)
		if err != nil {
			return fmt.Errorf("encode seed layout: %w", err)
		}
		if err := s.store.UpsertLayout(ctx, "home", encoded); err != nil {
			return fmt.Errorf("seed home layout: %w", err)
		}
		if _, err := s.history.Save("home", encoded, "folio", "seed home layout"); err != nil {
			log.Printf("bootstrap: layout history seed failed: %v", err)
		}
	} else if err != nil {
		return err
	}

	profile, err := s.store.GetProfile(ctx)
	if err != nil {
		return err
	}
	if profile == nil {
		if err := s.store.UpsertProfile(ctx, store.Profile{
			ID:       "profile",
			FullName: "Your Name",
			Headline: "What you do",
			Email:    s.cfg.AdminEmail,
			Socials:  map[string]string{},
		}); err != nil {
			return fmt.Errorf("seed profile: %w", err)
		}
	}

	if s.search != nil {
		s.search.ReindexAllFromPG(ctx)
	}
	return nil
}

func defaultHomeSections() []section.Section {
	types := []string{"hero", "about", "skills", "projects", "contact"}
	sections := make([]section.Section, 0, len(types))
	for i, typ := range types {
		sections = append(sections, section.Section{
			ID:      util.NewID("sec"),
			Type:    typ,
			Order:   i,
			Visible: true,
			Props:   section.Defaults(typ),
		})
	}
	return sections
}

// Session management

func (s *Service) SignIn(ctx context.Context, email, password string) (Session, error) {
	user, err := s.authpw.SignIn(ctx, authpw.SignInRequest{Email: email, Password: password})
	if err != nil {
		return Session{}, err
	}
	return s.issueSession(ctx, user)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	tokenHash := auth.HashToken(refreshToken)
	found, err := s.sessions.LookupRefreshSession(ctx, tokenHash)
	if err != nil {
		return Session{}, err
	}
	user, err := s.store.GetUserByID(ctx, found.ID)
	if err != nil {
		return Session{}, err
	}
	if err := s.sessions.RevokeRefreshSession(ctx, tokenHash); err != nil {
		return Session{}, err
	}
	return s.issueSession(ctx, user)
}

func (s *Service) issueSession(ctx context.Context, user store.User) (Session, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.AccessTTL)
	jti := util.NewID("jti")

	token, err := auth.IssueToken([]byte(s.cfg.TokenSecret), auth.Claims{
		Sub:   user.ID,
		Email: user.Email,
		Role:  user.Role,
		JTI:   jti,
		Exp:   expiresAt.Unix(),
	})
	if err != nil {
		return Session{}, err
	}

	refresh := util.NewID("rft") + util.NewID("")
	refreshExpires := now.Add(s.cfg.RefreshTTL)
	if err := s.sessions.SaveRefreshSession(ctx, auth.HashToken(refresh), user.ID, refreshExpires); err != nil {
		return Session{}, err
	}

	return Session{
		Token:        token,
		RefreshToken: refresh,
		UserID:       user.ID,
		Email:        user.Email,
		DisplayName:  user.DisplayName,
		Role:         user.Role,
		JTI:          jti,
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *Service) SessionFromToken(ctx context.Context, token string) (Session, error) {
	claims, err := auth.ParseToken([]byte(s.cfg.TokenSecret), token)
	if err != nil {
		return Session{}, err
	}

	user, err := s.store.GetUserByID(ctx, claims.Sub)
	if err != nil {
		return Session{}, err
	}

	return Session{
		Token:       token,
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		JTI:         claims.JTI,
		ExpiresAt:   time.Unix(claims.Exp, 0),
	}, nil
}

func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken != "" {
		_ = s.sessions.RevokeRefreshSession(ctx, auth.HashToken(refreshToken))
	}
	return nil
}

func (s *Service) Can(role string, action rbac.Action) bool {
	return rbac.Can(rbac.Normalize(role), action)
}

func (s *Service) AuthPasswordService() *authpw.Service {
	return s.authpw
}

func (s *Service) CreateUser(ctx context.Context, req authpw.CreateUserRequest, actor Session) (store.User, error) {
	user, err := s.authpw.CreateUser(ctx, req)
	if err != nil {
		return store.User{}, err
	}
	s.audit(ctx, actor.Email, "create", "user", user.ID, map[string]any{"email": user.Email, "role": user.Role})
	return user, nil
}

// Layouts

// Page names double as directory names in the layout history store, so
// they are restricted to a flat slug alphabet before reaching the disk.
var pageNamePattern = regexp.MustCompile(`^[a-z0-9-]+$`)

func checkPageName(page string) error {
	if !pageNamePattern.MatchString(page) {
		return validationError(fieldProblem{Field: "page", Message: "must match [a-z0-9-]+"})
	}
	return nil
}

// LayoutEditor opens a page-builder editing session backed by the store.
func (s *Service) LayoutEditor(page string) *builder.Editor {
	return builder.New(&layoutPersister{service: s}, page)
}

type layoutPersister struct {
	service *Service
}

func (p *layoutPersister) LoadSections(ctx context.Context, page string) ([]section.Section, error) {
	layout, err := p.service.store.GetLayout(ctx, page)
	if errors.Is(err, sql.ErrNoRows) {
		return []section.Section{}, nil
	}
	if err != nil {
		return nil, err
	}
	return section.DecodeList(layout.Sections)
}

func (p *layoutPersister) SaveSections(ctx context.Context, page string, sections []section.Section) error {
	_, err := p.service.persistLayout(ctx, page, sections, "folio", "builder save")
	return err
}

func (s *Service) ListLayoutPages(ctx context.Context) ([]map[string]any, error) {
	layouts, err := s.store.ListLayouts(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]map[string]any, 0, len(layouts))
	for _, layout := range layouts {
		sections, err := section.DecodeList(layout.Sections)
		if err != nil {
			return nil, fmt.Errorf("decode layout %s: %w", layout.Page, err)
		}
		items = append(items, map[string]any{
			"page":      layout.Page,
			"sections":  sections,
			"updatedAt": layout.UpdatedAt,
		})
	}
	return items, nil
}

func (s *Service) GetLayoutSections(ctx context.Context, page string) ([]section.Section, error) {
	layout, err := s.store.GetLayout(ctx, page)
	if err != nil {
		return nil, err
	}
	return section.DecodeList(layout.Sections)
}

// SaveLayout normalizes the submitted section list and persists it as the
// page's new layout. Sections without an id get one; duplicate ids are
// rejected.
func (s *Service) SaveLayout(ctx context.Context, page string, raws []section.Raw, actor Session) (map[string]any, error) {
	page = strings.TrimSpace(page)
	if err := checkPageName(page); err != nil {
		return nil, err
	}

	sections := make([]section.Section, 0, len(raws))
	seen := map[string]struct{}{}
	for i, raw := range raws {
		normalized := section.Normalize(raw)
		if normalized.ID == "" {
			normalized.ID = util.NewID("sec")
		}
		if _, dup := seen[normalized.ID]; dup {
			return nil, validationError(fieldProblem{Field: "sections", Message: fmt.Sprintf("duplicate section id %q", normalized.ID)})
		}
		seen[normalized.ID] = struct{}{}
		normalized.Order = i
		sections = append(sections, normalized)
	}

	commit, err := s.persistLayout(ctx, page, sections, actor.Email, fmt.Sprintf("update %s layout", page))
	if err != nil {
		return nil, err
	}

	s.audit(ctx, actor.Email, "update", "layout", page, map[string]any{"sections": len(sections)})

	return map[string]any{
		"page":     page,
		"sections": sections,
		"commit":   commit,
	}, nil
}

func (s *Service) persistLayout(ctx context.Context, page string, sections []section.Section, author, message string) (layouthist.CommitInfo, error) {
	if err := checkPageName(page); err != nil {
		return layouthist.CommitInfo{}, err
	}
	encoded, err := section.EncodeList(sections)
	if err != nil {
		return layouthist.CommitInfo{}, fmt.Errorf("encode layout: %w", err)
	}
	if err := s.store.UpsertLayout(ctx, page, encoded); err != nil {
		return layouthist.CommitInfo{}, err
	}
	commit, err := s.history.Save(page, encoded, author, message)
	if err != nil {
		// The layout is already saved; history is best effort.
		log.Printf("layout history save failed for %s: %v", page, err)
		return layouthist.CommitInfo{}, nil
	}
	return commit, nil
}

func (s *Service) LayoutHistory(ctx context.Context, page string, limit int) ([]layouthist.CommitInfo, error) {
	if err := checkPageName(page); err != nil {
		return nil, err
	}
	if _, err := s.store.GetLayout(ctx, page); err != nil {
		return nil, err
	}
	return s.history.History(page, limit)
}

func (s *Service) LayoutAtRevision(ctx context.Context, page, hash string) (map[string]any, error) {
	if err := checkPageName(page); err != nil {
		return nil, err
	}
	payload, commit, err := s.history.GetByHash(page, hash)
	if err != nil {
		return nil, domainError(http.StatusNotFound, "NOT_FOUND", "Revision not found", nil)
	}
	sections, err := section.DecodeList(payload)
	if err != nil {
		return nil, fmt.Errorf("decode revision: %w", err)
	}
	return map[string]any{
		"page":     page,
		"sections": sections,
		"commit":   commit,
	}, nil
}

// Profile

func (s *Service) SaveProfile(ctx context.Context, p store.Profile, actor Session) (store.Profile, error) {
	if strings.TrimSpace(p.FullName) == "" {
		return store.Profile{}, validationError(fieldProblem{Field: "fullName", Message: "required"})
	}
	if p.ID == "" {
		p.ID = "profile"
	}
	if err := s.store.UpsertProfile(ctx, p); err != nil {
		return store.Profile{}, err
	}
	s.audit(ctx, actor.Email, "update", "profile", p.ID, nil)
	return p, nil
}

// Skills

func (s *Service) CreateSkill(ctx context.Context, item store.Skill, actor Session) (store.Skill, error) {
	if strings.TrimSpace(item.Name) == "" {
		return store.Skill{}, validationError(fieldProblem{Field: "name", Message: "required"})
	}
	item.ID = util.NewID("skl")
	if err := s.store.InsertSkill(ctx, item); err != nil {
		return store.Skill{}, err
	}
	s.audit(ctx, actor.Email, "create", "skill", item.ID, nil)
	return item, nil
}

func (s *Service) UpdateSkill(ctx context.Context, item store.Skill, actor Session) (store.Skill, error) {
	if _, err := s.store.GetSkill(ctx, item.ID); err != nil {
		return store.Skill{}, err
	}
	if err := s.store.UpdateSkill(ctx, item); err != nil {
		return store.Skill{}, err
	}
	s.audit(ctx, actor.Email, "update", "skill", item.ID, nil)
	return item, nil
}

func (s *Service) DeleteSkill(ctx context.Context, id string, actor Session) error {
	item, err := s.store.GetSkill(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteSkill(ctx, id); err != nil {
		return err
	}
	s.audit(ctx, actor.Email, "delete", "skill", id, map[string]any{"name": item.Name, "category": item.Category})
	return nil
}

// Projects

func (s *Service) CreateProject(ctx context.Context, item store.Project, actor Session) (store.Project, error) {
	if strings.TrimSpace(item.Title) == "" {
		return store.Project{}, validationError(fieldProblem{Field: "title", Message: "required"})
	}
	item.ID = util.NewID("prj")
	if strings.TrimSpace(item.Slug) == "" {
		item.Slug = slugify(item.Title)
	}
	if err := s.store.InsertProject(ctx, item); err != nil {
		return store.Project{}, err
	}
	s.indexProject(item)
	s.audit(ctx, actor.Email, "create", "project", item.ID, nil)
	return item, nil
}

func (s *Service) UpdateProject(ctx context.Context, item store.Project, actor Session) (store.Project, error) {
	if _, err := s.store.GetProject(ctx, item.ID); err != nil {
		return store.Project{}, err
	}
	if err := s.store.UpdateProject(ctx, item); err != nil {
		return store.Project{}, err
	}
	s.indexProject(item)
	s.audit(ctx, actor.Email, "update", "project", item.ID, nil)
	return item, nil
}

func (s *Service) DeleteProject(ctx context.Context, id string, actor Session) error {
	item, err := s.store.GetProject(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteProject(ctx, id); err != nil {
		return err
	}
	if s.search != nil {
		s.search.DeleteProject(id)
	}
	s.audit(ctx, actor.Email, "delete", "project", id, map[string]any{"title": item.Title, "slug": item.Slug})
	return nil
}

func (s *Service) indexProject(item store.Project) {
	if s.search == nil {
		return
	}
	s.search.IndexProject(search.ProjectRecord{
		ID:          item.ID,
		Title:       item.Title,
		Slug:        item.Slug,
		Summary:     item.Summary,
		Description: item.Description,
		Visible:     item.Visible,
	})
}

// Experience

func (s *Service) CreateExperience(ctx context.Context, item store.Experience, actor Session) (store.Experience, error) {
	var problems []fieldProblem
	if strings.TrimSpace(item.Company) == "" {
		problems = append(problems, fieldProblem{Field: "company", Message: "required"})
	}
	if strings.TrimSpace(item.Role) == "" {
		problems = append(problems, fieldProblem{Field: "role", Message: "required"})
	}
	if len(problems) > 0 {
		return store.Experience{}, validationError(problems...)
	}
	item.ID = util.NewID("exp")
	if err := s.store.InsertExperience(ctx, item); err != nil {
		return store.Experience{}, err
	}
	s.audit(ctx, actor.Email, "create", "experience", item.ID, nil)
	return item, nil
}

func (s *Service) UpdateExperience(ctx context.Context, item store.Experience, actor Session) (store.Experience, error) {
	if _, err := s.store.GetExperience(ctx, item.ID); err != nil {
		return store.Experience{}, err
	}
	if err := s.store.UpdateExperience(ctx, item); err != nil {
		return store.Experience{}, err
	}
	s.audit(ctx, actor.Email, "update", "experience", item.ID, nil)
	return item, nil
}

func (s *Service) DeleteExperience(ctx context.Context, id string, actor Session) error {
	item, err := s.store.GetExperience(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteExperience(ctx, id); err != nil {
		return err
	}
	s.audit(ctx, actor.Email, "delete", "experience", id, map[string]any{"company": item.Company, "role": item.Role})
	return nil
}

// Education

func (s *Service) CreateEducation(ctx context.Context, item store.Education, actor Session) (store.Education, error) {
	if strings.TrimSpace(item.School) == "" {
		return store.Education{}, validationError(fieldProblem{Field: "school", Message: "required"})
	}
	item.ID = util.NewID("edu")
	if err := s.store.InsertEducation(ctx, item); err != nil {
		return store.Education{}, err
	}
	s.audit(ctx, actor.Email, "create", "education", item.ID, nil)
	return item, nil
}

func (s *Service) UpdateEducation(ctx context.Context, item store.Education, actor Session) (store.Education, error) {
	if _, err := s.store.GetEducation(ctx, item.ID); err != nil {
		return store.Education{}, err
	}
	if err := s.store.UpdateEducation(ctx, item); err != nil {
		return store.Education{}, err
	}
	s.audit(ctx, actor.Email, "update", "education", item.ID, nil)
	return item, nil
}

func (s *Service) DeleteEducation(ctx context.Context, id string, actor Session) error {
	item, err := s.store.GetEducation(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteEducation(ctx, id); err != nil {
		return err
	}
	s.audit(ctx, actor.Email, "delete", "education", id, map[string]any{"school": item.School})
	return nil
}

// Settings

func (s *Service) PutSetting(ctx context.Context, key, value string, actor Session) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return validationError(fieldProblem{Field: "key", Message: "required"})
	}
	if err := s.store.UpsertSetting(ctx, key, value); err != nil {
		return err
	}
	s.audit(ctx, actor.Email, "update", "setting", key, nil)
	return nil
}

func (s *Service) DeleteSetting(ctx context.Context, key string, actor Session) error {
	if err := s.store.DeleteSetting(ctx, key); err != nil {
		return err
	}
	s.audit(ctx, actor.Email, "delete", "setting", key, nil)
	return nil
}

// Contact messages

func (s *Service) SubmitContact(ctx context.Context, name, email, subject, body string) (store.ContactMessage, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	body = strings.TrimSpace(body)
	var problems []fieldProblem
	if name == "" {
		problems = append(problems, fieldProblem{Field: "name", Message: "required"})
	}
	if body == "" {
		problems = append(problems, fieldProblem{Field: "message", Message: "required"})
	}
	if !strings.Contains(email, "@") {
		problems = append(problems, fieldProblem{Field: "email", Message: "must be a valid email"})
	}
	if len(problems) > 0 {
		return store.ContactMessage{}, validationError(problems...)
	}

	msg := store.ContactMessage{
		ID:      util.NewID("msg"),
		Name:    name,
		Email:   email,
		Subject: strings.TrimSpace(subject),
		Body:    body,
	}
	if err := s.store.InsertMessage(ctx, msg); err != nil {
		return store.ContactMessage{}, err
	}
	if s.search != nil {
		s.search.IndexMessage(search.MessageRecord{
			ID:      msg.ID,
			Name:    msg.Name,
			Email:   msg.Email,
			Subject: msg.Subject,
			Body:    msg.Body,
		})
	}
	return msg, nil
}

func (s *Service) ListMessages(ctx context.Context) ([]store.ContactMessage, error) {
	return s.store.ListMessages(ctx)
}

func (s *Service) MarkMessageRead(ctx context.Context, id string, actor Session) error {
	if _, err := s.store.GetMessage(ctx, id); err != nil {
		return err
	}
	if err := s.store.MarkMessageRead(ctx, id); err != nil {
		return err
	}
	s.audit(ctx, actor.Email, "update", "message", id, map[string]any{"read": true})
	return nil
}

func (s *Service) DeleteMessage(ctx context.Context, id string, actor Session) error {
	item, err := s.store.GetMessage(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteMessage(ctx, id); err != nil {
		return err
	}
	if s.search != nil {
		s.search.DeleteMessage(id)
	}
	s.audit(ctx, actor.Email, "delete", "message", id, map[string]any{"from": item.Email, "subject": item.Subject})
	return nil
}

// Search, media, export, audit

func (s *Service) Search(q, filterType string, limit, offset int) (search.Response, error) {
	if s.search == nil {
		return search.Response{}, domainError(http.StatusServiceUnavailable, "SEARCH_UNAVAILABLE", "Search is not configured", nil)
	}
	return s.search.Search(search.Query{
		Text:       q,
		FilterType: search.ResultType(filterType),
		Limit:      limit,
		Offset:     offset,
	}), nil
}

func (s *Service) UploadMedia(ctx context.Context, filename string, size int64, contentType string, r io.Reader) (string, error) {
	if s.media == nil {
		return "", domainError(http.StatusServiceUnavailable, "MEDIA_UNAVAILABLE", "Media storage is not configured", nil)
	}
	return s.media.Upload(ctx, filename, size, contentType, r)
}

func (s *Service) ExportResume(ctx context.Context) (*export.Result, error) {
	if s.export == nil {
		return nil, domainError(http.StatusServiceUnavailable, "EXPORT_UNAVAILABLE", "Export is not configured", nil)
	}
	result, err := s.export.ExportResume(ctx)
	if errors.Is(err, export.ErrNoProfile) {
		return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Create a profile before exporting", nil)
	}
	if errors.Is(err, export.ErrPDFDependencyMissing) {
		return nil, domainError(http.StatusServiceUnavailable, "EXPORT_UNAVAILABLE", "PDF renderer unavailable", nil)
	}
	return result, err
}

func (s *Service) AuditLog(ctx context.Context, limit int) ([]store.AuditEntry, error) {
	return s.store.ListAudit(ctx, limit)
}

func (s *Service) audit(ctx context.Context, actor, action, entityType, entityID string, snapshot map[string]any) {
	err := s.store.AppendAudit(ctx, store.AuditEntry{
		Actor:      actor,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Snapshot:   snapshot,
	})
	if err != nil {
		log.Printf("audit append failed (%s %s %s): %v", action, entityType, entityID, err)
	}
}

func slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
