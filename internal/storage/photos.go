// Package storage хранит снимки растений на диске и выдает
// стабильные пути; содержимое файлов ядро не интерпретирует.
package storage

import (
	"crypto/sha256"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

type PhotoStorage struct {
	dir string
}

func NewPhotoStorage(dir string) (*PhotoStorage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("ошибка создания каталога фото: %w", err)
	}
	return &PhotoStorage{dir: dir}, nil
}

// SavePhoto копирует снимок в хранилище под уникальным именем
// и возвращает путь к сохраненной копии
func (s *PhotoStorage) SavePhoto(srcPath string) (string, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("ошибка чтения снимка: %w", err)
	}
	defer src.Close()

	hash := sha256.Sum256([]byte(fmt.Sprintf("%s%d", srcPath, time.Now().UnixNano())))
	name := fmt.Sprintf("photo_%x.jpg", hash[:8])
	destPath := filepath.Join(s.dir, name)

	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("ошибка записи снимка: %w", err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, src); err != nil {
		os.Remove(destPath)
		return "", fmt.Errorf("ошибка копирования снимка: %w", err)
	}

	return destPath, nil
}

// Remove удаляет снимок; отсутствие файла не считается ошибкой
func (s *PhotoStorage) Remove(uri string) error {
	if uri == "" {
		return nil
	}
	if err := os.Remove(uri); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// RemoveAll удаляет снимки растения, ошибки только логируются
func (s *PhotoStorage) RemoveAll(uris []string) {
	for _, uri := range uris {
		if err := s.Remove(uri); err != nil {
			log.Printf("⚠️ Ошибка удаления фото %s: %v", uri, err)
		}
	}
}
