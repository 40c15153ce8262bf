package roster

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"vpet/internal/pet"
)

// StorageKey is the blob store key holding the roster.
const StorageKey = "tamagotchis"

// ErrNoValue is returned by a BlobStore when a key has never been written.
var ErrNoValue = errors.New("roster: no value for key")

// BlobStore is the minimal key-value contract the roster persists through.
type BlobStore interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}

// FileStore keeps one file per key in a directory.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("roster: create state dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// DefaultDir returns ~/.config/vpet
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("roster: home dir: %w", err)
	}
	return filepath.Join(home, ".config", "vpet"), nil
}

// Dir returns the directory the store writes to
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the file backing key
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get implements BlobStore
func (s *FileStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoValue
	}
	if err != nil {
		return nil, fmt.Errorf("roster: read %s: %w", key, err)
	}
	return data, nil
}

// Put implements BlobStore. The value is written to a temp file and renamed
// so a crash never leaves a half-written roster behind.
func (s *FileStore) Put(key string, value []byte) error {
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("roster: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("roster: write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("roster: close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.Path(key)); err != nil {
		return fmt.Errorf("roster: replace %s: %w", key, err)
	}
	return nil
}

// MemoryStore is an in-process BlobStore.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get implements BlobStore
func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return nil, ErrNoValue
	}
	return append([]byte(nil), v...), nil
}

// Put implements BlobStore
func (s *MemoryStore) Put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

// encodePets serializes the roster in order.
func encodePets(pets []pet.Pet) ([]byte, error) {
	if pets == nil {
		pets = []pet.Pet{}
	}
	return json.MarshalIndent(pets, "", "  ")
}

// decodePets parses stored records. Records are normalized: missing ids are
// regenerated, types are mapped to known species, stats are clamped and the
// list is cut to MaxPets.
func decodePets(data []byte) ([]pet.Pet, error) {
	var records []pet.Pet
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("roster: decode: %w", err)
	}

	pets := make([]pet.Pet, 0, len(records))
	for _, p := range records {
		if len(pets) == pet.MaxPets {
			log.Printf("Dropping %d stored pets beyond the limit of %d", len(records)-pet.MaxPets, pet.MaxPets)
			break
		}
		if strings.TrimSpace(p.ID) == "" {
			p.ID = pet.NewID()
		}
		p.Species = pet.ParseSpecies(string(p.Species))
		p.Clamp()
		pets = append(pets, p)
	}
	return pets, nil
}

// LoadPets reads the roster from store. Missing or malformed data yields an
// empty roster; the error is only logged.
func LoadPets(store BlobStore) []pet.Pet {
	data, err := store.Get(StorageKey)
	if errors.Is(err, ErrNoValue) {
		return nil
	}
	if err != nil {
		log.Printf("Error reading roster: %v. Starting empty.", err)
		return nil
	}

	pets, err := decodePets(data)
	if err != nil {
		log.Printf("Error loading roster: %v. Starting empty.", err)
		return nil
	}
	return pets
}

// SavePets writes the roster to store.
func SavePets(store BlobStore, pets []pet.Pet) error {
	data, err := encodePets(pets)
	if err != nil {
		return fmt.Errorf("roster: encode: %w", err)
	}
	return store.Put(StorageKey, data)
}
