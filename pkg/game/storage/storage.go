// Package storage persists maze rasters. FileStore writes PNG files the way a
// server keeps level artwork on disk; MemoryStore keeps them in process for
// tests and dry runs.
package storage

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/image/draw"
)

// FileStore writes maze rasters to Dir as maze_<id>.png
type FileStore struct {
	Dir string
	// Scale upscales each raster pixel to a Scale x Scale block. Values
	// below 2 write the raster as is.
	Scale int
}

// NewFileStore creates a store writing unscaled images into dir
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir, Scale: 1}
}

// Path returns the file a maze image is written to
func (s *FileStore) Path(id int) string {
	return filepath.Join(s.Dir, fmt.Sprintf("maze_%d.png", id))
}

// SaveMazeImage encodes img as PNG. The file is written under a temporary
// name and renamed so readers never see a partial image.
func (s *FileStore) SaveMazeImage(ctx context.Context, id int, img image.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create image dir: %w", err)
	}

	path := s.Path(id)
	tmp, err := os.CreateTemp(s.Dir, filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, s.scaled(img)); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

func (s *FileStore) scaled(img image.Image) image.Image {
	if s.Scale < 2 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*s.Scale, b.Dy()*s.Scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// MemoryStore keeps saved images in memory. It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.Mutex
	images map[int]*image.RGBA
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{images: make(map[int]*image.RGBA)}
}

// SaveMazeImage stores a copy of img under id
func (s *MemoryStore) SaveMazeImage(ctx context.Context, id int, img image.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b := img.Bounds()
	c := image.NewRGBA(b)
	draw.Draw(c, b, img, b.Min, draw.Src)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[id] = c
	return nil
}

// Image returns the image saved under id
func (s *MemoryStore) Image(id int) (*image.RGBA, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	img, ok := s.images[id]
	return img, ok
}

// Len returns the number of stored images
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.images)
}
