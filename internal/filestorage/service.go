package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"myapp_backend/internal/config"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// FileStorageService stores uploaded files flat inside one directory that
// is served under a public URL prefix.
type FileStorageService struct {
	storagePath string
	publicPath  string
	logger      *zap.Logger
}

// NewFileStorageService creates the uploads directory if needed.
func NewFileStorageService(storagePath, publicPath string, logger *zap.Logger) (*FileStorageService, error) {
	if storagePath == "" {
		return nil, fmt.Errorf("storage path cannot be empty")
	}
	if err := os.MkdirAll(storagePath, os.ModePerm); err != nil {
		logger.Error("Failed to create storage path directory", zap.String("path", storagePath), zap.Error(err))
		return nil, fmt.Errorf("failed to create storage path %s: %w", storagePath, err)
	}
	return &FileStorageService{
		storagePath: storagePath,
		publicPath:  "/" + strings.Trim(publicPath, "/"),
		logger:      logger,
	}, nil
}

// NewFromConfig wires the service to UPLOAD_DIR and UPLOAD_PUBLIC_PATH.
func NewFromConfig(cfg *config.Config, logger *zap.Logger) (*FileStorageService, error) {
	return NewFileStorageService(cfg.UploadDir, cfg.UploadPublicPath, logger.Named("filestorage"))
}

// SaveUploadedFile writes the upload as {uuid}-{slug of original name}{ext}
// and returns its public path, e.g. "/uploads/3f2c...-my-photo.jpg".
// The directory is created again if it disappeared since startup.
func (s *FileStorageService) SaveUploadedFile(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", fmt.Errorf("fileHeader cannot be nil")
	}

	src, err := fileHeader.Open()
	if err != nil {
		s.logger.Error("Failed to open uploaded file", zap.Error(err))
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	name := storedName(fileHeader)

	if err := os.MkdirAll(s.storagePath, os.ModePerm); err != nil {
		s.logger.Error("Failed to create uploads directory", zap.String("path", s.storagePath), zap.Error(err))
		return "", fmt.Errorf("failed to create directory %s: %w", s.storagePath, err)
	}

	destinationPath := filepath.Join(s.storagePath, name)
	dst, err := os.Create(destinationPath)
	if err != nil {
		s.logger.Error("Failed to create destination file", zap.String("path", destinationPath), zap.Error(err))
		return "", fmt.Errorf("failed to create file %s: %w", destinationPath, err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		s.logger.Error("Failed to copy uploaded file to destination", zap.String("path", destinationPath), zap.Error(err))
		os.Remove(destinationPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	s.logger.Info("File saved", zap.String("path", destinationPath))
	return path.Join(s.publicPath, name), nil
}

// storedName keeps the original name recognisable but safe for a path.
func storedName(fh *multipart.FileHeader) string {
	original := filepath.Base(strings.ReplaceAll(fh.Filename, "\\", "/"))
	ext := strings.ToLower(filepath.Ext(original))
	base := slug.Make(strings.TrimSuffix(original, filepath.Ext(original)))
	if base == "" {
		base = "file"
	}
	if !isSafeExt(ext) {
		ext = extensionFor(fh.Header.Get("Content-Type"))
	}
	return fmt.Sprintf("%s-%s%s", uuid.NewString(), base, ext)
}

func extensionFor(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/jpeg"):
		return ".jpg"
	case strings.HasPrefix(contentType, "image/png"):
		return ".png"
	case strings.HasPrefix(contentType, "image/gif"):
		return ".gif"
	case strings.HasPrefix(contentType, "image/webp"):
		return ".webp"
	default:
		return ""
	}
}

// imageExts are the only extensions kept on stored files. Anything else is
// dropped so the static handler never serves it as markup or script.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

func isSafeExt(ext string) bool {
	return imageExts[ext]
}

// DeleteFile removes a file given its public path ("/uploads/x.jpg") or
// its bare name. Missing files are not an error.
func (s *FileStorageService) DeleteFile(publicOrName string) error {
	name, err := s.nameFromPublic(publicOrName)
	if err != nil {
		s.logger.Warn("Refusing to delete file", zap.String("path", publicOrName), zap.Error(err))
		return err
	}

	fullPath := filepath.Join(s.storagePath, name)
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("Attempt to delete non-existent file", zap.String("path", fullPath))
			return nil
		}
		s.logger.Error("Failed to delete file", zap.String("path", fullPath), zap.Error(err))
		return fmt.Errorf("failed to delete file %s: %w", fullPath, err)
	}

	s.logger.Info("File deleted", zap.String("path", fullPath))
	return nil
}

// ListFiles returns the public paths of all regular files in the storage directory, sorted.
func (s *FileStorageService) ListFiles() ([]string, error) {
	entries, err := os.ReadDir(s.storagePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", s.storagePath, err)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			out = append(out, path.Join(s.publicPath, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *FileStorageService) nameFromPublic(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("relative path cannot be empty")
	}
	name := strings.TrimPrefix(p, s.publicPath+"/")
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid file path for deletion")
	}
	return name, nil
}
