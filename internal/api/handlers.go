package api

import (
	"errors"
	"fmt"
	"image"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/youruser/cardsmith/internal/card"
	"github.com/youruser/cardsmith/internal/deck"
	"github.com/youruser/cardsmith/internal/sheet"
)

// MaxSheetCards caps the cards rendered for one deck sheet.
const MaxSheetCards = 90

func (s *Server) health(c *gin.Context) {
	n := 0
	if s.DB != nil {
		n = s.DB.Len()
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "cards": n})
}

func parseID(s string) (uint32, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid card id %q", s)
	}
	return uint32(id), nil
}

func (s *Server) hires(c *gin.Context) bool {
	if v, ok := c.GetQuery("hires"); ok {
		b, err := strconv.ParseBool(v)
		return err == nil && b
	}
	return s.PreferHighRes
}

// renderHandler draws the card given in the body. The optional "art" query
// names the passcode whose artwork is used.
func (s *Server) renderHandler(c *gin.Context) {
	var cd card.Data
	if err := c.ShouldBindJSON(&cd); err != nil {
		badRequest(c, err)
		return
	}
	cd.Normalize()

	artID := cd.ID
	if v := c.Query("art"); v != "" {
		id, err := parseID(v)
		if err != nil {
			badRequest(c, err)
			return
		}
		artID = id
	}
	img, err := s.render(cd, s.artFor(c.Request.Context(), artID, s.hires(c)))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.writePNG(c, img)
}

func (s *Server) lookup(c *gin.Context) (card.Data, bool) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		badRequest(c, err)
		return card.Data{}, false
	}
	if s.DB == nil {
		s.fail(c, fmt.Errorf("card %08d: %w", id, card.ErrUnknownCard))
		return card.Data{}, false
	}
	cd, err := s.DB.Get(id)
	if err != nil {
		s.fail(c, err)
		return card.Data{}, false
	}
	return cd, true
}

func (s *Server) cardImageHandler(c *gin.Context) {
	cd, ok := s.lookup(c)
	if !ok {
		return
	}
	img, err := s.render(cd, s.artFor(c.Request.Context(), cd.ID, s.hires(c)))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.writePNG(c, img)
}

func (s *Server) cardArtHandler(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		badRequest(c, err)
		return
	}
	if s.Art == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no art source configured"})
		return
	}
	p, err := s.Art.Acquire(c.Request.Context(), id, s.hires(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.File(p)
}

func (s *Server) searchHandler(c *gin.Context) {
	var opt card.FilterOptions
	if err := c.ShouldBindJSON(&opt); err != nil {
		badRequest(c, err)
		return
	}
	var all []card.Data
	if s.DB != nil {
		all = s.DB.All()
	}
	out := card.Filter(all, opt)
	c.JSON(http.StatusOK, gin.H{"count": len(out), "cards": out})
}

// deckSheetHandler takes a plain text deck list and returns a proof sheet of
// every card with a QR code of the list.
func (s *Server) deckSheetHandler(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		badRequest(c, err)
		return
	}
	d, err := deck.Parse(string(body))
	if err != nil {
		badRequest(c, err)
		return
	}
	ids := d.IDs()
	if len(ids) > MaxSheetCards {
		badRequest(c, fmt.Errorf("deck has %d cards, at most %d per sheet", len(ids), MaxSheetCards))
		return
	}

	var missing []string
	thumbs := make([]image.Image, 0, len(ids))
	rendered := map[uint32]image.Image{}
	for _, id := range ids {
		if img, ok := rendered[id]; ok {
			thumbs = append(thumbs, img)
			continue
		}
		if s.DB == nil {
			missing = append(missing, strconv.FormatUint(uint64(id), 10))
			continue
		}
		cd, err := s.DB.Get(id)
		if err != nil {
			missing = append(missing, strconv.FormatUint(uint64(id), 10))
			continue
		}
		img, err := s.render(cd, s.artFor(c.Request.Context(), id, s.hires(c)))
		if err != nil {
			s.fail(c, err)
			return
		}
		rendered[id] = img
		thumbs = append(thumbs, img)
	}
	if len(missing) > 0 {
		s.fail(c, fmt.Errorf("unknown cards %s: %w", strings.Join(missing, ", "), card.ErrUnknownCard))
		return
	}

	qr, err := sheet.QRImage(deck.Export(d), 400)
	if err != nil {
		s.fail(c, err)
		return
	}
	opt := sheet.DefaultOptions()
	opt.Title, opt.TitleFace = d.Name, s.TitleFace
	s.writePNG(c, sheet.Compose(thumbs, qr, opt))
}

func (s *Server) qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		badRequest(c, errors.New("missing text"))
		return
	}
	size := 400
	if v := c.Query("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 32 || n > 2048 {
			badRequest(c, fmt.Errorf("size %q must be between 32 and 2048", v))
			return
		}
		size = n
	}
	b, err := sheet.QRPNG(text, size)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}
