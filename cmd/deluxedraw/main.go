// Command deluxedraw is a desktop front end for the deluxepaint engine.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ha1tch/deluxepaint"
	"github.com/ha1tch/deluxepaint/engine"
	"github.com/ha1tch/deluxepaint/internal/config"
	"github.com/ha1tch/deluxepaint/project"
)

var (
	configFlag = flag.String("config", "settings.yaml", "settings file")
	openFlag   = flag.String("open", "", "project (.ddd) or image to open")
	exportFlag = flag.String("export", "", "write the opened document to this file and exit")
)

func main() {
	flag.Parse()

	settings, err := config.LoadSettings(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "deluxedraw: %v\n", err)
		os.Exit(1)
	}
	deluxepaint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: settings.Level(),
	})))

	eng := engine.New(engine.WithCanvasConfig(settings.Canvas))
	eng.SetToolConfig(settings.Tool)
	palette := settings.Colors()

	if *openFlag != "" {
		doc, err := project.ReadFile(*openFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "deluxedraw: %v\n", err)
			os.Exit(1)
		}
		eng.Open(doc.Width, doc.Height, doc.Layers, doc.Active)
		if len(doc.Palette) > 0 {
			palette = doc.Palette
		}
	}

	if *exportFlag != "" {
		if err := project.WriteFile(*exportFlag, eng.Layers(), palette, eng.Flatten()); err != nil {
			fmt.Fprintf(os.Stderr, "deluxedraw: %v\n", err)
			os.Exit(1)
		}
		return
	}

	a := newApp(eng, settings, palette)
	if *openFlag != "" {
		a.path = *openFlag
	}
	a.run()
}
