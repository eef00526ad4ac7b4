// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Git versioning of generated project iterations

package project

import (
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	commitAuthorName  = "lamport"
	commitAuthorEmail = "lamport@localhost"
)

// InitRepo initializes a git repository in the project root so each
// generation and repair iteration becomes a diffable commit.
func (p *Project) InitRepo() error {
	_, err := git.PlainInit(p.Root, false)
	if err == git.ErrRepositoryAlreadyExists {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to init repository in %s: %w", p.Root, err)
	}
	return nil
}

// Commit stages everything under the project root and records a commit.
// Returns the short hash, or an empty string when there was nothing to
// commit.
func (p *Project) Commit(message string) (string, error) {
	repo, err := git.PlainOpen(p.Root)
	if err != nil {
		return "", fmt.Errorf("failed to open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", fmt.Errorf("failed to stage files: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree status: %w", err)
	}
	if status.IsClean() {
		return "", nil
	}

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  commitAuthorName,
			Email: commitAuthorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return hash.String()[:8], nil
}
