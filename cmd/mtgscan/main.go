// Command mtgscan loads a reference database and an input image, runs the
// recognition pipeline, and prints the recognized cards as JSON. It
// contains no recognition logic of its own; it is a thin front-end over
// cardvision.
package main

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/cardvision/mtgscan/cardvision"
)

type recognizedCard struct {
	Name              string  `json:"name"`
	Score             float64 `json:"score"`
	ImageAreaFraction float64 `json:"image_area_fraction"`
}

func main() {
	logger := golog.NewDevelopmentLogger("mtgscan")

	app := &cli.App{
		Name:  "mtgscan",
		Usage: "recognize Magic: The Gathering cards photographed in a single still image",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "reference-db", Required: true, Usage: "path to a gob-encoded reference database"},
			&cli.StringFlag{Name: "image", Required: true, Usage: "path to the input image"},
			&cli.StringFlag{Name: "config", Usage: "optional YAML config overriding the defaults"},
		},
		Action: func(c *cli.Context) error {
			return run(c, logger)
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Fatal(err)
	}
}

func run(c *cli.Context, logger golog.Logger) error {
	cfg := cardvision.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := cardvision.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	entries, err := cardvision.LoadReferenceDB(c.String("reference-db"))
	if err != nil {
		return errors.Wrap(err, "loading reference database")
	}

	f, err := os.Open(c.String("image")) //nolint:gosec
	if err != nil {
		return errors.Wrap(err, "opening input image")
	}
	defer f.Close() //nolint:errcheck

	img, _, err := image.Decode(f)
	if err != nil {
		return errors.Wrap(err, "decoding input image")
	}

	testImage := cardvision.NewTestImage(img, cfg.MaxInputDimension)
	recognizer := cardvision.NewRecognizer(entries, cfg)
	pipeline := cardvision.NewPipeline(cfg, recognizer, logger)

	candidates := pipeline.Process(testImage)

	out := make([]recognizedCard, len(candidates))
	for i, cand := range candidates {
		out[i] = recognizedCard{
			Name:              cand.Name,
			Score:             cand.RecognitionScore,
			ImageAreaFraction: cand.ImageAreaFraction,
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(err, "encoding output")
	}
	fmt.Fprintf(os.Stderr, "recognized %d card(s)\n", len(out))
	return nil
}
