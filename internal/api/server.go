// Package api exposes the card renderer over HTTP.
package api

import (
	"bytes"
	"context"
	"errors"
	"image"
	"log/slog"
	"net/http"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"golang.org/x/image/font"

	"github.com/youruser/cardsmith/internal/art"
	"github.com/youruser/cardsmith/internal/card"
	"github.com/youruser/cardsmith/internal/compositor"
	"github.com/youruser/cardsmith/internal/logging"
)

// Renderer draws one card. The compositor satisfies it.
type Renderer interface {
	RenderImage(cd card.Data, art image.Image) (*image.RGBA, error)
}

// ArtSource provides card artwork by passcode.
type ArtSource interface {
	Acquire(ctx context.Context, id uint32, preferHighRes bool) (string, error)
	Image(ctx context.Context, id uint32, preferHighRes bool) (image.Image, error)
}

type Server struct {
	DB            *card.DB
	Renderer      Renderer
	Art           ArtSource
	PreferHighRes bool
	Log           *slog.Logger
	// TitleFace draws the deck name on proof sheets; nil leaves it out.
	TitleFace font.Face

	// renders go through one compositor, one at a time
	mu sync.Mutex
}

func NewServer(db *card.DB, r Renderer, a ArtSource) *Server {
	return &Server{DB: db, Renderer: r, Art: a, PreferHighRes: true, Log: logging.Logger()}
}

func (s *Server) render(cd card.Data, artImg image.Image) (*image.RGBA, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Renderer.RenderImage(cd, artImg)
}

// artFor returns the artwork for id, or nil when it cannot be had. A card
// without art still renders.
func (s *Server) artFor(ctx context.Context, id uint32, hires bool) image.Image {
	if s.Art == nil || id == 0 {
		return nil
	}
	img, err := s.Art.Image(ctx, id, hires)
	if err != nil {
		s.Log.Warn("rendering without art", "id", id, "err", err)
		return nil
	}
	return img
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, card.ErrUnknownCard), errors.Is(err, art.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, compositor.ErrBackendUnavailable), errors.Is(err, compositor.ErrBusy):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(c *gin.Context, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		s.Log.Error("request failed", "path", c.FullPath(), "err", err)
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (s *Server) writePNG(c *gin.Context, img image.Image) {
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.PNG); err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
