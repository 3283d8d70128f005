// Package util provides shared utility functions.
package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lawrnfy/TaskForge/models"
)

// DefaultShortIDLength is the default number of characters for short IDs.
const DefaultShortIDLength = 8

// MaxAmbiguousCandidates is the max number of candidates to show in an
// ambiguous-prefix error.
const MaxAmbiguousCandidates = 5

// Errors returned by ID resolution.
var (
	ErrAmbiguousID = errors.New("ambiguous ID prefix")
	ErrNotFound    = errors.New("not found")
)

// ShortID returns a shortened version of a task UUID for display.
// If n is 0 or negative, DefaultShortIDLength (8) is used.
func ShortID(id string, n int) string {
	if n <= 0 {
		n = DefaultShortIDLength
	}
	if len(id) <= n {
		return id
	}
	return id[:n]
}

// ResolveTask resolves an ID or unique prefix to a task.
//
// Resolution rules:
//  1. An exact ID match wins, even if it is also a prefix of another ID.
//  2. A prefix matching exactly one task resolves to that task.
//  3. Multiple matches return ErrAmbiguousID listing candidates.
//  4. No matches return ErrNotFound.
func ResolveTask(tasks []models.Task, idOrPrefix string) (models.Task, error) {
	if idOrPrefix == "" {
		return models.Task{}, fmt.Errorf("task ID: %w", ErrNotFound)
	}

	prefix := strings.ToLower(idOrPrefix)
	var candidates []models.Task
	for _, t := range tasks {
		id := strings.ToLower(t.ID)
		if id == prefix {
			return t, nil
		}
		if strings.HasPrefix(id, prefix) {
			candidates = append(candidates, t)
		}
	}

	switch len(candidates) {
	case 0:
		return models.Task{}, fmt.Errorf("task with prefix %q: %w", idOrPrefix, ErrNotFound)
	case 1:
		return candidates[0], nil
	default:
		shown := make([]string, 0, MaxAmbiguousCandidates)
		for _, c := range candidates {
			if len(shown) == MaxAmbiguousCandidates {
				break
			}
			shown = append(shown, ShortID(c.ID, 0))
		}
		return models.Task{}, fmt.Errorf("%w: prefix %q matches %d tasks: %v",
			ErrAmbiguousID, idOrPrefix, len(candidates), shown)
	}
}
