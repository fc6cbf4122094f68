package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var ErrUploadFailed = errors.New("proof upload failed")

// Uploader stores an uploaded evidence image and returns an opaque
// reference for the payment record.
type Uploader interface {
	Save(orderID, filename string, src io.Reader) (string, error)
}

// DiskStore keeps uploads under root/payments/{orderID}/.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) *DiskStore {
	return &DiskStore{root: root}
}

func (s *DiskStore) Save(orderID, filename string, src io.Reader) (string, error) {
	dir := filepath.Join(s.root, "payments", orderID)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("%w: create upload dir: %v", ErrUploadFailed, err)
	}

	path := filepath.Join(dir, filepath.Base(filename))
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: create file: %v", ErrUploadFailed, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("%w: write file: %v", ErrUploadFailed, err)
	}

	return path, nil
}
