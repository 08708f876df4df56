// Package layouthist keeps a git-backed snapshot history of page layouts.
// Each page gets its own repository holding a single layout.json file on
// the main branch; every save becomes one commit.
package layouthist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const layoutFile = "layout.json"

// CommitInfo describes one saved layout revision.
type CommitInfo struct {
	Hash      string    `json:"hash"`
	Message   string    `json:"message"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

type Service struct {
	baseDir string
	lockMu  sync.Mutex
	locks   map[string]*sync.Mutex
}

func New(baseDir string) *Service {
	return &Service{
		baseDir: baseDir,
		locks:   make(map[string]*sync.Mutex),
	}
}

// Save commits the given layout JSON for a page, initializing the page's
// repository on first use.
func (s *Service) Save(page string, layout json.RawMessage, author, message string) (CommitInfo, error) {
	lock := s.pageLock(page)
	lock.Lock()
	defer lock.Unlock()

	repo, err := s.openOrInit(page)
	if err != nil {
		return CommitInfo{}, err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return CommitInfo{}, fmt.Errorf("open worktree: %w", err)
	}

	payload, err := indentJSON(layout)
	if err != nil {
		return CommitInfo{}, err
	}
	if err := os.WriteFile(filepath.Join(worktree.Filesystem.Root(), layoutFile), payload, 0o644); err != nil {
		return CommitInfo{}, fmt.Errorf("write layout file: %w", err)
	}
	if _, err := worktree.Add(layoutFile); err != nil {
		return CommitInfo{}, fmt.Errorf("git add layout: %w", err)
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{
		AllowEmptyCommits: true,
		Author:            signature(author),
	})
	if err != nil {
		return CommitInfo{}, fmt.Errorf("commit layout: %w", err)
	}

	commitObj, err := repo.CommitObject(hash)
	if err != nil {
		return CommitInfo{}, fmt.Errorf("read commit object: %w", err)
	}
	return toCommitInfo(commitObj), nil
}

// History lists saved revisions for a page, newest first.
func (s *Service) History(page string, limit int) ([]CommitInfo, error) {
	lock := s.pageLock(page)
	lock.Lock()
	defer lock.Unlock()

	repo, err := git.PlainOpen(s.repoPath(page))
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return []CommitInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return []CommitInfo{}, nil
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	defer iter.Close()

	items := make([]CommitInfo, 0, limit)
	count := 0
	err = iter.ForEach(func(commitObj *object.Commit) error {
		items = append(items, toCommitInfo(commitObj))
		count++
		if limit > 0 && count >= limit {
			return io.EOF
		}
		return nil
	})
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("iterate log: %w", err)
	}
	return items, nil
}

// GetByHash returns the layout JSON stored at a revision. Abbreviated
// hashes are accepted.
func (s *Service) GetByHash(page, hash string) (json.RawMessage, CommitInfo, error) {
	lock := s.pageLock(page)
	lock.Lock()
	defer lock.Unlock()

	repo, err := git.PlainOpen(s.repoPath(page))
	if err != nil {
		return nil, CommitInfo{}, fmt.Errorf("open repo: %w", err)
	}

	resolved, err := resolveHash(repo, hash)
	if err != nil {
		return nil, CommitInfo{}, err
	}
	commitObj, err := repo.CommitObject(resolved)
	if err != nil {
		return nil, CommitInfo{}, fmt.Errorf("read commit %s: %w", hash, err)
	}

	file, err := commitObj.File(layoutFile)
	if err != nil {
		return nil, CommitInfo{}, fmt.Errorf("load layout from commit: %w", err)
	}
	reader, err := file.Reader()
	if err != nil {
		return nil, CommitInfo{}, fmt.Errorf("open layout reader: %w", err)
	}
	defer reader.Close()

	payload, err := io.ReadAll(reader)
	if err != nil {
		return nil, CommitInfo{}, fmt.Errorf("read layout bytes: %w", err)
	}
	return payload, toCommitInfo(commitObj), nil
}

func (s *Service) openOrInit(page string) (*git.Repository, error) {
	path := s.repoPath(page)
	repo, err := git.PlainOpen(path)
	if err == nil {
		return repo, nil
	}
	if !errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("open repo: %w", err)
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create repo dir: %w", err)
	}
	repo, err = git.PlainInit(path, false)
	if err != nil {
		return nil, fmt.Errorf("init repo: %w", err)
	}
	return repo, nil
}

func (s *Service) repoPath(page string) string {
	return filepath.Join(s.baseDir, page)
}

func (s *Service) pageLock(page string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	lock, ok := s.locks[page]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[page] = lock
	}
	return lock
}

func signature(author string) *object.Signature {
	if author == "" {
		author = "folio"
	}
	return &object.Signature{
		Name:  author,
		Email: "layouts@folio.local",
		When:  time.Now(),
	}
}

func toCommitInfo(commitObj *object.Commit) CommitInfo {
	return CommitInfo{
		Hash:      commitObj.Hash.String()[:7],
		Message:   commitObj.Message,
		Author:    commitObj.Author.Name,
		CreatedAt: commitObj.Author.When,
	}
}

func resolveHash(repo *git.Repository, hash string) (plumbing.Hash, error) {
	if len(hash) == 40 {
		return plumbing.NewHash(hash), nil
	}
	resolved, err := repo.ResolveRevision(plumbing.Revision(hash))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolve hash %s: %w", hash, err)
	}
	return *resolved, nil
}

func indentJSON(raw json.RawMessage) ([]byte, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode layout json: %w", err)
	}
	payload, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode layout json: %w", err)
	}
	return append(payload, '\n'), nil
}
