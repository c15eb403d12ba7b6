package storage // import "github.com/openleaf/openleaf/storage"

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/openleaf/openleaf/config"
	"github.com/openleaf/openleaf/log"
	"github.com/openleaf/openleaf/model"
	"github.com/openleaf/openleaf/util"
)

// Storage persists uploaded files.
type Storage interface {
	SaveBook(reader io.Reader, fileName string) (string, int64, error)
	SaveCover(reader io.Reader, fileName string) (string, error)
	RemoveBookFiles(book *model.Book) error
}

type LocalStorage struct {
	// Path to the storage directory
	Path string
}

func NewLocalStorage(path string) *LocalStorage {
	return &LocalStorage{Path: path}
}

// SaveBook stores an uploaded book file under a fresh random name and
// returns its path together with the number of bytes written.
func (s *LocalStorage) SaveBook(reader io.Reader, fileName string) (string, int64, error) {
	ext := filepath.Ext(fileName)
	if ext == "" || !config.CheckBookType(ext[1:]) {
		return "", 0, fmt.Errorf("Unsupported file type: %s", ext)
	}

	bookDir := filepath.Join(s.Path, "uploads")
	if err := os.MkdirAll(bookDir, os.ModePerm); err != nil {
		return "", 0, fmt.Errorf("Failed to create directories: %v", err)
	}

	// Random file name so two uploads of "book.pdf" never collide.
	filePath := filepath.Join(bookDir, util.GenUUID()+strings.ToLower(ext))
	outFile, err := os.Create(filePath)
	if err != nil {
		return "", 0, fmt.Errorf("Failed to create file: %v", err)
	}
	defer outFile.Close()

	// Copy data to the file and calculate the hash
	hash := sha256.New()
	written, err := io.Copy(io.MultiWriter(outFile, hash), reader)
	if err != nil {
		os.Remove(filePath)
		return "", 0, fmt.Errorf("Failed to write file: %v", err)
	}

	fileHash := hex.EncodeToString(hash.Sum(nil))
	log.Debug("Stored file", zap.String("path", filePath), zap.String("hash", fileHash))

	return filePath, written, nil
}

// SaveCover stores an uploaded cover image next to the books.
func (s *LocalStorage) SaveCover(reader io.Reader, fileName string) (string, error) {
	ext := filepath.Ext(fileName)
	if ext == "" || !config.CheckCoverType(ext[1:]) {
		return "", fmt.Errorf("Unsupported cover type: %s", ext)
	}

	coverDir := filepath.Join(s.Path, "covers")
	if err := os.MkdirAll(coverDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("Failed to create directories: %v", err)
	}

	filePath := filepath.Join(coverDir, util.GenUUID()+strings.ToLower(ext))
	outFile, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("Failed to create file: %v", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, reader); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("Failed to write file: %v", err)
	}

	return filePath, nil
}

// RemoveBookFiles deletes the book file and its cover. The bundled
// default cover is shared between books and never removed.
func (s *LocalStorage) RemoveBookFiles(book *model.Book) error {
	if book.FilePath != "" {
		if err := os.Remove(book.FilePath); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	if book.HasCover() {
		if err := os.Remove(book.CoverPath); err != nil && !os.IsNotExist(err) {
			log.Warn("Failed to remove cover", zap.String("path", book.CoverPath), zap.Error(err))
		}
	}
	return nil
}
