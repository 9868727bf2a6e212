// Command pptxpack-demo builds a small sample deck, exercising slides,
// textboxes, pictures, notes, and save.
package main

import (
	"fmt"
	"log/slog"
	"os"

	pp "github.com/slidesmith/pptxpack"
)

func main() {
	out := "demo.pptx"
	if len(os.Args) > 1 {
		out = os.Args[1]
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	pkg, err := pp.New(pp.Options{
		Path:   out,
		Title:  "pptxpack demo",
		Author: "pptxpack-demo",
		Logger: logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "create: %v\n", err)
		os.Exit(1)
	}
	defer pkg.Close()

	if _, err := pkg.AddSlide(pp.SlideOptions{BackgroundColor: []float64{1, 1, 1}}); err != nil {
		fail(err)
	}
	title := pp.TextboxOptions{
		FontSize:        36,
		FontWeight:      "bold",
		Color:           []float64{0.1, 0.1, 0.4},
		HorizontalAlign: "center",
		VerticalAlign:   "middle",
	}
	if err := pkg.AddTextbox("Quarterly Review\nFY26", pp.Geometry{
		OffsetX: pp.Inch(1), OffsetY: pp.Inch(2),
		Width: pp.Inch(8), Height: pp.Inch(2),
	}, title); err != nil {
		fail(err)
	}
	if err := pkg.AddNote("Welcome everyone, keep intros short."); err != nil {
		fail(err)
	}

	if _, err := pkg.AddSlide(pp.SlideOptions{}); err != nil {
		fail(err)
	}
	if err := pkg.AddTextbox("Highlights", pp.Geometry{
		OffsetX: pp.Inch(0.5), OffsetY: pp.Inch(0.5),
		Width: pp.Inch(9), Height: pp.Inch(1),
	}, pp.TextboxOptions{FontSize: 28, FontWeight: "bold"}); err != nil {
		fail(err)
	}
	if len(os.Args) > 2 {
		img, err := os.ReadFile(os.Args[2])
		if err != nil {
			fail(err)
		}
		if err := pkg.AddPicture(img, pp.PictureOptions{Scale: pp.ScaleMaxFixed}); err != nil {
			fail(err)
		}
	}

	if err := pkg.Save(""); err != nil {
		fail(err)
	}
	info := pkg.Query()
	fmt.Printf("wrote %s (%d slides)\n", info.Path, info.SlideCount)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
