package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
	"github.com/lawrnfy/TaskForge/models"
	"github.com/lawrnfy/TaskForge/types"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"
)

const (
	defaultDataFile   = "state.json"
	dataFileKey       = "dataFile"
	dataFileFormatKey = "dataFileFormat"
	defaultDataFormat = "json"
	formatJSON        = "json"
	formatYAML        = "yaml"
	formatTOML        = "toml"
	checksumSuffix    = ".checksum"
)

// document is the on-disk shape of the full application state.
type document struct {
	Tasks     []models.Task                   `json:"tasks" yaml:"tasks" toml:"tasks"`
	Session   models.SessionState             `json:"session" yaml:"session" toml:"session"`
	Stats     *models.Stats                   `json:"stats,omitempty" yaml:"stats,omitempty" toml:"stats,omitempty"`
	Reminders map[string]models.ReminderState `json:"reminders" yaml:"reminders" toml:"reminders"`
	Settings  *models.Settings                `json:"settings,omitempty" yaml:"settings,omitempty" toml:"settings,omitempty"`
}

// FileStateStore implements StateStore on a single flock-guarded document
// file with a checksum sidecar. It supports JSON, YAML, and TOML formats.
// Filesystem access goes through afero so tests can run in memory; file
// locking is only engaged on the real filesystem.
type FileStateStore struct {
	fs       afero.Fs
	filePath string
	format   string
	flk      *flock.Flock
	doc      document
}

// NewFileStateStore creates a store backed by the operating-system
// filesystem. Initialize must be called separately.
func NewFileStateStore() *FileStateStore {
	return &FileStateStore{fs: afero.NewOsFs()}
}

// NewFileStateStoreWithFs creates a store on the given filesystem. Use
// afero.NewMemMapFs() for tests.
func NewFileStateStoreWithFs(fsys afero.Fs) *FileStateStore {
	return &FileStateStore{fs: fsys}
}

// Initialize configures the store. It expects a 'dataFile' key in the
// config map; the format defaults to JSON. Existing state is loaded and a
// file lock established when running on the real filesystem.
func (s *FileStateStore) Initialize(config map[string]string) error {
	if val, ok := config[dataFileKey]; ok && val != "" {
		s.filePath = val
	} else {
		s.filePath = defaultDataFile
	}

	if val, ok := config[dataFileFormatKey]; ok && val != "" {
		formatLower := strings.ToLower(val)
		switch formatLower {
		case formatJSON, formatYAML, formatTOML:
			s.format = formatLower
		default:
			return fmt.Errorf("unsupported dataFileFormat: %s. Supported formats are json, yaml, toml", val)
		}
	} else {
		s.format = defaultDataFormat
	}

	if s.filePath == defaultDataFile && s.format != formatJSON {
		ext := filepath.Ext(s.filePath)
		s.filePath = strings.TrimSuffix(s.filePath, ext) + "." + s.format
	}

	dir := filepath.Dir(s.filePath)
	if dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if _, osBacked := s.fs.(*afero.OsFs); osBacked {
		s.flk = flock.New(s.filePath)
	}

	if err := s.lock(); err != nil {
		return fmt.Errorf("failed to acquire initial lock for %s: %w", s.filePath, err)
	}
	defer s.unlock()

	return s.loadInternal()
}

func (s *FileStateStore) lock() error {
	if s.flk == nil {
		return nil
	}
	return s.flk.Lock()
}

func (s *FileStateStore) unlock() {
	if s.flk != nil {
		_ = s.flk.Unlock()
	}
}

// calculateChecksum computes the SHA256 checksum of the given data.
func calculateChecksum(data []byte) string {
	hasher := sha256.New()
	hasher.Write(data) // Write never returns an error
	return hex.EncodeToString(hasher.Sum(nil))
}

// loadInternal reads the document from the file, verifies the checksum, and
// unmarshals. Assumes the lock is held.
func (s *FileStateStore) loadInternal() error {
	checksumFilePath := s.filePath + checksumSuffix

	data, err := afero.ReadFile(s.fs, s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.doc = emptyDocument()
			_ = s.fs.Remove(checksumFilePath)
			return s.saveInternal()
		}
		return fmt.Errorf("failed to read data file %s: %w", s.filePath, err)
	}

	if _, err := s.fs.Stat(checksumFilePath); err == nil {
		expectedChecksumBytes, readErr := afero.ReadFile(s.fs, checksumFilePath)
		if readErr != nil {
			return fmt.Errorf("failed to read checksum file %s: %w", checksumFilePath, readErr)
		}
		expectedChecksum := strings.TrimSpace(string(expectedChecksumBytes))
		if actual := calculateChecksum(data); actual != expectedChecksum {
			return fmt.Errorf("checksum mismatch for %s - expected %s, got %s - file is corrupt or tampered", s.filePath, expectedChecksum, actual)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error checking checksum file %s: %w", checksumFilePath, err)
	}

	if len(data) == 0 {
		s.doc = emptyDocument()
		return nil
	}

	var doc document
	switch s.format {
	case formatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to unmarshal JSON from %s: %w", s.filePath, err)
		}
	case formatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to unmarshal YAML from %s: %w", s.filePath, err)
		}
	case formatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to unmarshal TOML from %s: %w", s.filePath, err)
		}
	default:
		return fmt.Errorf("unsupported data format for loading: %s", s.format)
	}

	if doc.Reminders == nil {
		doc.Reminders = make(map[string]models.ReminderState)
	}
	if doc.Tasks == nil {
		doc.Tasks = []models.Task{}
	}
	s.doc = doc
	return nil
}

// saveInternal writes the document, then its checksum, both via a temp file
// rename so readers never observe a torn write. Assumes the lock is held.
func (s *FileStateStore) saveInternal() error {
	var marshaledData []byte
	var err error

	switch s.format {
	case formatJSON:
		marshaledData, err = json.MarshalIndent(s.doc, "", "  ")
	case formatYAML:
		marshaledData, err = yaml.Marshal(s.doc)
	case formatTOML:
		buf := new(bytes.Buffer)
		if encodeErr := toml.NewEncoder(buf).Encode(s.doc); encodeErr == nil {
			marshaledData = buf.Bytes()
		} else {
			err = fmt.Errorf("failed to marshal TOML: %w", encodeErr)
		}
	default:
		return fmt.Errorf("unsupported data format for saving: %s", s.format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal state to %s: %w", s.format, err)
	}

	tempFilePath := s.filePath + ".tmp"
	checksumFilePath := s.filePath + checksumSuffix
	tempChecksumFilePath := checksumFilePath + ".tmp"

	defer func() { _ = s.fs.Remove(tempFilePath) }()
	defer func() { _ = s.fs.Remove(tempChecksumFilePath) }()

	if err := afero.WriteFile(s.fs, tempFilePath, marshaledData, 0o644); err != nil {
		return fmt.Errorf("failed to write to temporary data file %s: %w", tempFilePath, err)
	}
	if err := afero.WriteFile(s.fs, tempChecksumFilePath, []byte(calculateChecksum(marshaledData)), 0o644); err != nil {
		return fmt.Errorf("failed to write to temporary checksum file %s: %w", tempChecksumFilePath, err)
	}

	if err := s.fs.Rename(tempFilePath, s.filePath); err != nil {
		return fmt.Errorf("failed to rename temporary data file %s to %s: %w", tempFilePath, s.filePath, err)
	}
	if err := s.fs.Rename(tempChecksumFilePath, checksumFilePath); err != nil {
		return fmt.Errorf("data file %s updated but checksum file %s was not: %w - store may be inconsistent", s.filePath, checksumFilePath, err)
	}

	return nil
}

func emptyDocument() document {
	return document{
		Tasks:     []models.Task{},
		Reminders: make(map[string]models.ReminderState),
	}
}

// mutate runs fn against freshly loaded state under the lock and persists
// the result.
func (s *FileStateStore) mutate(fn func(*document) error) error {
	if err := s.lock(); err != nil {
		return fmt.Errorf("could not lock state file: %w", err)
	}
	defer s.unlock()

	if err := s.loadInternal(); err != nil {
		return fmt.Errorf("failed to reload state before write: %w", err)
	}
	if err := fn(&s.doc); err != nil {
		return err
	}
	return s.saveInternal()
}

// view runs fn against freshly loaded state under the lock without writing.
func (s *FileStateStore) view(fn func(*document)) error {
	if err := s.lock(); err != nil {
		return fmt.Errorf("could not lock state file: %w", err)
	}
	defer s.unlock()

	if err := s.loadInternal(); err != nil {
		return fmt.Errorf("failed to reload state: %w", err)
	}
	fn(&s.doc)
	return nil
}

// ListTasks retrieves tasks, optionally filtered.
func (s *FileStateStore) ListTasks(filterFn func(models.Task) bool) ([]models.Task, error) {
	var out []models.Task
	err := s.view(func(d *document) {
		for _, t := range d.Tasks {
			if filterFn == nil || filterFn(t) {
				out = append(out, t)
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetTask retrieves a task by its unique identifier.
func (s *FileStateStore) GetTask(id string) (models.Task, error) {
	var found *models.Task
	err := s.view(func(d *document) {
		for i := range d.Tasks {
			if d.Tasks[i].ID == id {
				found = &d.Tasks[i]
				return
			}
		}
	})
	if err != nil {
		return models.Task{}, err
	}
	if found == nil {
		return models.Task{}, fmt.Errorf("task %s: %w", id, types.ErrTaskNotFound)
	}
	return *found, nil
}

// PutTask inserts or replaces a task after validating it.
func (s *FileStateStore) PutTask(task models.Task) error {
	if err := models.ValidateStruct(task); err != nil {
		return fmt.Errorf("validation failed for task: %w", err)
	}
	return s.mutate(func(d *document) error {
		for i := range d.Tasks {
			if d.Tasks[i].ID == task.ID {
				d.Tasks[i] = task
				return nil
			}
		}
		d.Tasks = append(d.Tasks, task)
		return nil
	})
}

// DeleteTask removes a task along with its reminder state.
func (s *FileStateStore) DeleteTask(id string) error {
	return s.mutate(func(d *document) error {
		idx := -1
		for i := range d.Tasks {
			if d.Tasks[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("task %s: %w", id, types.ErrTaskNotFound)
		}
		d.Tasks = append(d.Tasks[:idx], d.Tasks[idx+1:]...)
		delete(d.Reminders, id)
		return nil
	})
}

// GetSession returns the current session record.
func (s *FileStateStore) GetSession() (models.SessionState, error) {
	var out models.SessionState
	err := s.view(func(d *document) { out = d.Session })
	return out, err
}

// SetSession replaces the session record.
func (s *FileStateStore) SetSession(sess models.SessionState) error {
	return s.mutate(func(d *document) error {
		d.Session = sess
		return nil
	})
}

// GetStats returns the credit ledger. A document with no ledger yet reads
// as the zero value; callers stamp the credit epoch before mutating.
func (s *FileStateStore) GetStats() (models.Stats, error) {
	var out models.Stats
	err := s.view(func(d *document) {
		if d.Stats != nil {
			out = *d.Stats
		}
	})
	return out, err
}

// SetStats replaces the ledger.
func (s *FileStateStore) SetStats(st models.Stats) error {
	return s.mutate(func(d *document) error {
		d.Stats = &st
		return nil
	})
}

// GetReminders returns a copy of the reminder map.
func (s *FileStateStore) GetReminders() (map[string]models.ReminderState, error) {
	out := make(map[string]models.ReminderState)
	err := s.view(func(d *document) {
		for k, v := range d.Reminders {
			out[k] = v
		}
	})
	return out, err
}

// GetReminder returns the reminder state for one task.
func (s *FileStateStore) GetReminder(taskID string) (models.ReminderState, bool, error) {
	var (
		out models.ReminderState
		ok  bool
	)
	err := s.view(func(d *document) { out, ok = d.Reminders[taskID] })
	return out, ok, err
}

// SetReminder inserts or replaces reminder state for a task.
func (s *FileStateStore) SetReminder(taskID string, r models.ReminderState) error {
	return s.mutate(func(d *document) error {
		d.Reminders[taskID] = r
		return nil
	})
}

// SetReminders replaces the whole reminder map.
func (s *FileStateStore) SetReminders(rs map[string]models.ReminderState) error {
	return s.mutate(func(d *document) error {
		d.Reminders = make(map[string]models.ReminderState, len(rs))
		for k, v := range rs {
			d.Reminders[k] = v
		}
		return nil
	})
}

// DeleteReminder removes reminder state for a task.
func (s *FileStateStore) DeleteReminder(taskID string) error {
	return s.mutate(func(d *document) error {
		delete(d.Reminders, taskID)
		return nil
	})
}

// GetSettings returns stored settings, writing defaults on first read.
func (s *FileStateStore) GetSettings() (models.Settings, error) {
	var (
		out    models.Settings
		seeded bool
	)
	err := s.view(func(d *document) {
		if d.Settings != nil {
			out = *d.Settings
			seeded = true
		}
	})
	if err != nil {
		return models.Settings{}, err
	}
	if seeded {
		return out, nil
	}
	out = models.DefaultSettings()
	if err := s.SetSettings(out); err != nil {
		return models.Settings{}, err
	}
	return out, nil
}

// SetSettings replaces stored settings.
func (s *FileStateStore) SetSettings(set models.Settings) error {
	return s.mutate(func(d *document) error {
		d.Settings = &set
		return nil
	})
}

// Close releases the file lock if one is held.
func (s *FileStateStore) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}
