// cardgen renders a single card to a PNG file.
//
// Usage:
//
//	cardgen -o <file> -card <card.json> [-art <image>] [options]
//	cardgen -o <file> -id <passcode> [-data <dir>] [-fetch] [options]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/disintegration/imaging"

	"github.com/youruser/cardsmith/internal/art"
	"github.com/youruser/cardsmith/internal/assets"
	"github.com/youruser/cardsmith/internal/card"
	"github.com/youruser/cardsmith/internal/compositor"
	"github.com/youruser/cardsmith/internal/config"
	"github.com/youruser/cardsmith/internal/logging"
	"github.com/youruser/cardsmith/internal/util"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "help", "-h", "--help":
			printUsage()
			return
		}
	}
	if err := run(os.Args[1:]); err != nil {
		fatal(err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("cardgen", flag.ExitOnError)

	var (
		output     string
		cardPath   string
		id         uint
		artPath    string
		fetch      bool
		configPath string
		dataDir    string
		assetRoot  string
	)

	fs.StringVar(&output, "o", "", "Output PNG path")
	fs.StringVar(&output, "output", "", "Output PNG path")
	fs.StringVar(&cardPath, "card", "", "Card description as JSON")
	fs.UintVar(&id, "id", 0, "Card passcode to look up in the card data")
	fs.StringVar(&artPath, "art", "", "Artwork image (PNG or JPEG)")
	fs.BoolVar(&fetch, "fetch", false, "Download the artwork for -id when -art is not given")
	fs.StringVar(&configPath, "config", "", "YAML config file")
	fs.StringVar(&dataDir, "data", "", "Card data directory (overrides config)")
	fs.StringVar(&assetRoot, "assets", "", "Texture root (overrides config)")

	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		return err
	}
	if output == "" {
		return errors.New("missing -o")
	}
	if (cardPath == "") == (id == 0) {
		return errors.New("exactly one of -card or -id is required")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if assetRoot != "" {
		cfg.Assets.Root = assetRoot
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	logging.SetLogger(logger)

	cd, err := loadCard(cardPath, uint32(id), cfg.DataDir)
	if err != nil {
		return err
	}

	artImg, err := loadArt(cfg, artPath, cd.ID, fetch)
	if err != nil {
		return err
	}

	comp, err := compositor.New(
		assets.NewDir(cfg.Assets.Root, cfg.Assets.FallbackFonts),
		compositor.WithSpellTrapLabelColor(cfg.Compose.LabelColor()),
		compositor.WithNameSize(cfg.Compose.NameSize),
		compositor.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer comp.Close()

	img, err := comp.RenderImage(cd, artImg)
	if err != nil {
		return err
	}
	if err := imaging.Save(img, output); err != nil {
		return err
	}
	fmt.Printf("Saved: %s\n", output)
	return nil
}

func loadCard(path string, id uint32, dataDir string) (card.Data, error) {
	if path == "" {
		db, err := card.LoadDir(dataDir)
		if err != nil {
			return card.Data{}, err
		}
		return db.Get(id)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return card.Data{}, err
	}
	var cd card.Data
	if err := json.Unmarshal(b, &cd); err != nil {
		return card.Data{}, fmt.Errorf("%s: %w", path, err)
	}
	cd.Normalize()
	return cd, nil
}

// loadArt returns nil without an error when no artwork was asked for.
func loadArt(cfg *config.Config, path string, id uint32, fetch bool) (image.Image, error) {
	if path != "" {
		return imaging.Open(path, imaging.AutoOrientation(true))
	}
	if !fetch || id == 0 {
		return nil, nil
	}
	store := art.NewStore(cfg.Art.Dir, util.NewClient(cfg.Art.DownloadTimeout))
	store.HighResURL = cfg.Art.HighResURL
	store.StandardURL = cfg.Art.StandardURL
	if err := util.EnsureDir(store.Dir); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.Art.DownloadTimeout+time.Second)
	defer cancel()
	return store.Image(ctx, id, cfg.Art.PreferHighRes)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `cardgen - render a card image

Usage:
  cardgen -o <file> -card <card.json> [-art <image>] [options]
  cardgen -o <file> -id <passcode> [-data <dir>] [-art <image> | -fetch] [options]

Options:
  -o, -output   Output PNG path
  -card         Card description as JSON
  -id           Card passcode to look up in the card data
  -art          Artwork image (PNG or JPEG)
  -fetch        Download the artwork for -id
  -config       YAML config file
  -data         Card data directory
  -assets       Texture root directory
`)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
