// Package store keeps entities in memory and persists them as fixed-width
// binary records.
package store

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
	"sync"

	bloomFilter "github.com/bits-and-blooms/bloom/v3"
	"github.com/janael-pinheiro/sensorhub/pkg/codec"
	"github.com/janael-pinheiro/sensorhub/pkg/entities"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const duplicationProbability = 0.01

// Entity is anything with a numeric identifier.
type Entity interface {
	Identifier() uint32
}

// Policy describes which entities a store accepts and must always keep.
type Policy[T Entity] struct {
	// Validate rejects entities that could not be written and read back.
	Validate func(T) error
	// Protected reports whether an entity may never be removed or renumbered.
	Protected func(T) bool
	// CheckUpdate rejects replacing current with next.
	CheckUpdate func(current, next T) error
	// Rename returns a copy of the entity carrying a new identifier.
	Rename func(entity T, id uint32) T
}

// Store is an insertion-ordered set of entities bound to a data file.
// Add and Update only touch memory; Remove and Clear rewrite the file.
type Store[T Entity] struct {
	mu       sync.RWMutex
	entities []T
	path     string
	codec    codec.Codec[T]
	policy   Policy[T]
	fs       filesystemManagement
	log      *logrus.Entry
}

func newStore[T Entity](path string, c codec.Codec[T], policy Policy[T], fs filesystemManagement, log *logrus.Entry) *Store[T] {
	if policy.Protected == nil {
		policy.Protected = func(T) bool { return false }
	}
	if policy.Validate == nil {
		policy.Validate = func(T) error { return nil }
	}
	if policy.CheckUpdate == nil {
		policy.CheckUpdate = func(_, _ T) error { return nil }
	}
	return &Store[T]{path: path, codec: c, policy: policy, fs: fs, log: log}
}

func identifierKey(id uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, id)
}

// Load merges the records of path into the store and returns how many were
// inserted. A missing file, corrupt records and duplicate identifiers are
// logged and skipped.
func (s *Store[T]) Load(path string) (int, error) {
	reader, size, err := s.fs.openDataFile(path)
	if errors.Is(err, os.ErrNotExist) {
		s.log.WithField("path", path).Warn("data file not found, starting empty")
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrapf(entities.ErrIOFailure, "open %s: %v", path, err)
	}
	defer reader.Close()

	s.mu.Lock()
	defer s.mu.Unlock()

	expected := uint(size)/uint(s.codec.RecordSize()) + uint(len(s.entities)) + 1
	filter := bloomFilter.NewWithEstimates(expected, duplicationProbability)
	for _, entity := range s.entities {
		filter.Add(identifierKey(entity.Identifier()))
	}

	stream := bufio.NewReader(reader)
	loaded := 0
	for record := 0; ; record++ {
		entity, err := codec.ReadOne(stream, s.codec)
		if err == io.EOF {
			break
		}
		if errors.Is(err, entities.ErrCorruptRecord) {
			s.log.WithFields(logrus.Fields{"path": path, "record": record}).Warnf("skipping corrupt record: %v", err)
			continue
		}
		if err != nil {
			return loaded, err
		}
		key := identifierKey(entity.Identifier())
		if filter.Test(key) && s.indexOf(entity.Identifier()) >= 0 {
			s.log.WithFields(logrus.Fields{"path": path, "record": record, "id": entity.Identifier()}).Warn("skipping duplicate identifier")
			continue
		}
		filter.Add(key)
		s.entities = append(s.entities, entity)
		loaded++
	}
	s.log.WithFields(logrus.Fields{"path": path, "loaded": loaded}).Debug("data file loaded")
	return loaded, nil
}

// Save truncates path and writes every entity in iteration order.
func (s *Store[T]) Save(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.save(path, s.entities)
}

func (s *Store[T]) save(path string, items []T) error {
	file, err := s.fs.createDataFile(path)
	if err != nil {
		return errors.Wrapf(entities.ErrIOFailure, "create %s: %v", path, err)
	}
	stream := bufio.NewWriter(file)
	for _, entity := range items {
		if err := codec.WriteOne(stream, s.codec, entity); err != nil {
			_ = file.Close()
			return errors.Wrapf(err, "write %s", path)
		}
	}
	if err := stream.Flush(); err != nil {
		_ = file.Close()
		return errors.Wrapf(entities.ErrIOFailure, "flush %s: %v", path, err)
	}
	if err := file.Close(); err != nil {
		return errors.Wrapf(entities.ErrIOFailure, "close %s: %v", path, err)
	}
	return nil
}

func (s *Store[T]) indexOf(id uint32) int {
	for i, entity := range s.entities {
		if entity.Identifier() == id {
			return i
		}
	}
	return -1
}

func (s *Store[T]) Add(entity T) error {
	id := entity.Identifier()
	if !entities.ValidIdentifier(id) {
		return errors.Wrapf(entities.ErrOutOfRange, "identifier %d", id)
	}
	if err := s.policy.Validate(entity); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(id) >= 0 {
		return errors.Wrapf(entities.ErrDuplicateIdentifier, "identifier %d", id)
	}
	s.entities = append(s.entities, entity)
	return nil
}

func (s *Store[T]) Update(entity T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(entity.Identifier())
	if i < 0 {
		return errors.Wrapf(entities.ErrNotFound, "identifier %d", entity.Identifier())
	}
	if err := s.policy.CheckUpdate(s.entities[i], entity); err != nil {
		return err
	}
	if err := s.policy.Validate(entity); err != nil {
		return err
	}
	s.entities[i] = entity
	return nil
}

// Remove deletes the entity with id and rewrites the bound data file.
// Protected entities are refused before anything is touched.
func (s *Store[T]) Remove(id uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return errors.Wrapf(entities.ErrNotFound, "identifier %d", id)
	}
	if s.policy.Protected(s.entities[i]) {
		return errors.Wrapf(entities.ErrProtectedEntity, "identifier %d", id)
	}
	remaining := make([]T, 0, len(s.entities)-1)
	remaining = append(remaining, s.entities[:i]...)
	remaining = append(remaining, s.entities[i+1:]...)
	if err := s.save(s.path, remaining); err != nil {
		return err
	}
	s.entities = remaining
	return nil
}

// Renumber moves the entity with oldID to newID.
func (s *Store[T]) Renumber(oldID, newID uint32) error {
	if !entities.ValidIdentifier(newID) {
		return errors.Wrapf(entities.ErrOutOfRange, "identifier %d", newID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(oldID)
	if i < 0 {
		return errors.Wrapf(entities.ErrNotFound, "identifier %d", oldID)
	}
	if s.policy.Protected(s.entities[i]) {
		return errors.Wrapf(entities.ErrProtectedEntity, "identifier %d", oldID)
	}
	if oldID == newID {
		return nil
	}
	if s.policy.Rename == nil {
		return errors.Wrap(entities.ErrInvalidInput, "store does not support renumbering")
	}
	if s.indexOf(newID) >= 0 {
		return errors.Wrapf(entities.ErrDuplicateIdentifier, "identifier %d", newID)
	}
	s.entities[i] = s.policy.Rename(s.entities[i], newID)
	return nil
}

// Clear drops every unprotected entity and rewrites path with what is left.
func (s *Store[T]) Clear(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]T, 0, len(s.entities))
	for _, entity := range s.entities {
		if s.policy.Protected(entity) {
			kept = append(kept, entity)
		}
	}
	if err := s.save(path, kept); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"path": path, "removed": len(s.entities) - len(kept)}).Info("store cleared")
	s.entities = kept
	return nil
}

func (s *Store[T]) FindByID(id uint32) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.entities[i], true
	}
	var zero T
	return zero, false
}

// All returns a copy of the entities in iteration order.
func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]T, len(s.entities))
	copy(snapshot, s.entities)
	return snapshot
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

// ensure inserts entity unless its identifier is already held.
func (s *Store[T]) ensure(entity T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(entity.Identifier()) >= 0 {
		return false
	}
	s.entities = append(s.entities, entity)
	return true
}
