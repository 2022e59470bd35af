package workflow

import (
	"fmt"
	"sort"
	"time"

	"github.com/samzong/gitwrap/internal/git"
)

// fakeRepo tracks which pending paths have been staged and records commits.
type fakeRepo struct {
	staged    map[string]bool
	pending   map[string]bool
	commits   []string
	addCalls  [][]string
	statusErr error
	commitErr error
}

func newFakeRepo(pending ...string) *fakeRepo {
	r := &fakeRepo{staged: map[string]bool{}, pending: map[string]bool{}}
	for _, p := range pending {
		r.pending[p] = true
	}
	return r
}

func (r *fakeRepo) withStaged(paths ...string) *fakeRepo {
	for _, p := range paths {
		r.staged[p] = true
	}
	return r
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r *fakeRepo) Status() ([]git.StatusEntry, error) {
	if r.statusErr != nil {
		return nil, r.statusErr
	}
	var entries []git.StatusEntry
	for _, p := range sortedKeys(r.staged) {
		entries = append(entries, git.StatusEntry{Path: p, Status: git.StatusStaged, Change: git.ChangeNew})
	}
	for _, p := range sortedKeys(r.pending) {
		entries = append(entries, git.StatusEntry{Path: p, Status: git.StatusUntracked, Change: git.ChangeNew})
	}
	for i := range entries {
		entries[i].Index = i + 1
	}
	return entries, nil
}

func (r *fakeRepo) Add(paths []string, force bool) ([]string, error) {
	r.addCalls = append(r.addCalls, append([]string(nil), paths...))
	var added []string
	for _, p := range paths {
		switch {
		case r.pending[p]:
			delete(r.pending, p)
			r.staged[p] = true
			added = append(added, p)
		case r.staged[p]:
		default:
			return added, fmt.Errorf("%w: %s", git.ErrPathNotFound, p)
		}
	}
	return added, nil
}

func (r *fakeRepo) Commit(message string) (git.CommitInfo, error) {
	if r.commitErr != nil {
		return git.CommitInfo{}, r.commitErr
	}
	r.commits = append(r.commits, message)
	r.staged = map[string]bool{}
	hash := fmt.Sprintf("%040d", len(r.commits))
	return git.CommitInfo{
		Hash:      hash,
		ShortHash: hash[:7],
		When:      time.Date(2024, 1, 15, 9, 1, 0, 0, time.UTC),
		Message:   message,
	}, nil
}

// fakePrompter answers from canned values and records what it was asked.
type fakePrompter struct {
	interactive bool
	confirm     bool
	text        string
	textOK      bool
	err         error

	questions   []string
	textPrompts []string
}

func (p *fakePrompter) Interactive() bool { return p.interactive }

func (p *fakePrompter) Confirm(question string) (bool, error) {
	p.questions = append(p.questions, question)
	return p.confirm, p.err
}

func (p *fakePrompter) RequestText(prompt string) (string, bool, error) {
	p.textPrompts = append(p.textPrompts, prompt)
	return p.text, p.textOK, p.err
}
