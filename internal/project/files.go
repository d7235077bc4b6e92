package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ============================================================
// File Storage
// ============================================================

const fileExt = ".json"

// FileStore хранит проекты файлами <name>.json в одном каталоге.
type FileStore struct {
	root string
}

func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

func (s *FileStore) Root() string {
	return s.root
}

// Path возвращает путь к файлу проекта. Расширение .json добавляется,
// если его нет; каталоги в имени отбрасываются.
func (s *FileStore) Path(name string) (string, error) {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "" || base == "." || base == ".." || base == string(filepath.Separator) {
		return "", fmt.Errorf("invalid project name %q", name)
	}
	if !strings.HasSuffix(base, fileExt) {
		base += fileExt
	}
	return filepath.Join(s.root, base), nil
}

func (s *FileStore) EnsureDir() error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("mkdir projects dir: %w", err)
	}
	return nil
}

// Save пишет документ и возвращает путь к файлу.
func (s *FileStore) Save(name string, doc Document) (string, error) {
	path, err := s.Path(name)
	if err != nil {
		return "", err
	}
	if err := s.EnsureDir(); err != nil {
		return "", err
	}
	data, err := Marshal(doc)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write project: %w", err)
	}
	return path, nil
}

// Load читает документ. Для отсутствующего файла возвращается ErrNotFound.
func (s *FileStore) Load(name string) (Document, string, error) {
	path, err := s.Path(name)
	if err != nil {
		return Document{}, "", err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Document{}, path, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Document{}, path, fmt.Errorf("open project: %w", err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return Document{}, path, err
	}
	return doc, path, nil
}

// List возвращает имена сохранённых проектов без расширения.
func (s *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read projects dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), fileExt))
	}
	sort.Strings(names)
	return names, nil
}
