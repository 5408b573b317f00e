// Package art fetches card artwork and keeps it on disk.
//
// Artwork is stored as <id>.png or <id>.jpg in the store directory. A
// download is written to a temp file next to its final name and only
// renamed into place after the whole body arrived, so a reader never sees
// a partial file.
package art

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/youruser/cardsmith/internal/logging"
	"github.com/youruser/cardsmith/internal/rescache"
	"github.com/youruser/cardsmith/internal/util"
)

var (
	// ErrUnknownFormat is returned when a download is neither PNG nor JPEG.
	ErrUnknownFormat = errors.New("art: unknown image format")
	// ErrNotFound is returned when no source could provide the artwork.
	ErrNotFound = errors.New("art: not found")
)

// DefaultURL serves cropped artwork by passcode.
const DefaultURL = "https://images.ygoprodeck.com/images/cards_cropped/%d.jpg"

// DecodedLimit bounds the number of decoded images kept in memory.
const DecodedLimit = 256

var (
	pngMagic  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
)

// Store is safe for concurrent use.
type Store struct {
	Dir string
	// URL templates, formatted with the numeric card id.
	HighResURL  string
	StandardURL string
	Client      *http.Client
	Log         *slog.Logger

	once   sync.Once
	images *rescache.Cache[uint32, image.Image]
}

func NewStore(dir string, client *http.Client) *Store {
	return &Store{
		Dir:         dir,
		HighResURL:  DefaultURL,
		StandardURL: DefaultURL,
		Client:      client,
	}
}

func (s *Store) init() {
	s.once.Do(func() {
		s.images = rescache.New[uint32, image.Image](rescache.WithoutErrorMemo(), rescache.WithLimit(DecodedLimit))
		if s.Log == nil {
			s.Log = logging.Logger()
		}
	})
}

// Sniff returns the file extension for an 8 byte header, or "" when the
// data is not PNG or JPEG.
func Sniff(head []byte) string {
	switch {
	case len(head) < len(pngMagic):
		return ""
	case bytes.Equal(head[:len(pngMagic)], pngMagic):
		return ".png"
	case bytes.HasPrefix(head, jpegMagic):
		return ".jpg"
	}
	return ""
}

// Path returns the stored file for id if one exists.
func (s *Store) Path(id uint32) (string, bool) {
	return util.FirstExisting(
		filepath.Join(s.Dir, fmt.Sprintf("%d.jpg", id)),
		filepath.Join(s.Dir, fmt.Sprintf("%d.png", id)),
	)
}

// Acquire returns the path of the artwork for id, downloading it when it is
// not stored yet. With preferHighRes the high resolution source is tried
// first and the standard one only on failure.
func (s *Store) Acquire(ctx context.Context, id uint32, preferHighRes bool) (string, error) {
	s.init()
	if p, ok := s.Path(id); ok {
		return p, nil
	}

	var sources []string
	if preferHighRes && s.HighResURL != "" {
		sources = append(sources, s.HighResURL)
	}
	if s.StandardURL != "" && (len(sources) == 0 || sources[0] != s.StandardURL) {
		sources = append(sources, s.StandardURL)
	}

	var errs []error
	for _, tmpl := range sources {
		p, err := s.download(ctx, id, fmt.Sprintf(tmpl, id))
		if err == nil {
			s.Log.Debug("art downloaded", "id", id, "path", p)
			return p, nil
		}
		s.Log.Warn("art download failed", "id", id, "err", err)
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) == 0 {
		return "", fmt.Errorf("art %d: %w", id, ErrNotFound)
	}
	return "", fmt.Errorf("art %d: %w: %w", id, ErrNotFound, errors.Join(errs...))
}

func (s *Store) download(ctx context.Context, id uint32, url string) (string, error) {
	body, err := util.Get(ctx, s.Client, url)
	if err != nil {
		return "", err
	}
	defer body.Close()

	head := make([]byte, len(pngMagic))
	if _, err := io.ReadFull(body, head); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return "", fmt.Errorf("%s: %w", url, ErrUnknownFormat)
		}
		return "", err
	}
	ext := Sniff(head)
	if ext == "" {
		return "", fmt.Errorf("%s: header % x: %w", url, head, ErrUnknownFormat)
	}

	final := filepath.Join(s.Dir, fmt.Sprintf("%d%s", id, ext))
	f, err := util.CreateTemp(final)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, io.MultiReader(bytes.NewReader(head), body)); err != nil {
		util.DiscardTemp(f)
		return "", err
	}
	if err := util.CommitTemp(f, final); err != nil {
		return "", err
	}
	return final, nil
}

// Image acquires and decodes the artwork for id. Decoded images are kept in
// memory; failures are not, so a later call retries.
func (s *Store) Image(ctx context.Context, id uint32, preferHighRes bool) (image.Image, error) {
	s.init()
	return s.images.GetOrCreate(id, func() (image.Image, error) {
		p, err := s.Acquire(ctx, id, preferHighRes)
		if err != nil {
			return nil, err
		}
		img, err := imaging.Open(p, imaging.AutoOrientation(true))
		if err != nil {
			return nil, fmt.Errorf("decode art %d: %w", id, err)
		}
		return img, nil
	})
}

// Cached returns a decoded image without touching disk or network.
func (s *Store) Cached(id uint32) (image.Image, bool) {
	s.init()
	return s.images.Get(id)
}

// ClearCache drops every decoded image. Files on disk are kept.
func (s *Store) ClearCache() {
	s.init()
	s.images.Clear()
}
