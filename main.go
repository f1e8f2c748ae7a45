package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"syscall"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/ui"
)

func main() {
	optNoAnim := flag.Bool("n", false, "no animations")
	optReplay := flag.String("r", "", "path to replay file (_ means default location)")
	optGameLogs := flag.Bool("l", false, "write game logs to log file")
	optVersion := flag.Bool("version", false, "print build info")
	opt16colors := flag.Bool("s", false, "use standard 16-color palette (default on most systems)")
	opt256colors := flag.Bool("x", false, "use xterm 256-color palette (solarized approximation)")
	optTrueColor := flag.Bool("t", false, "use true color selenized palette (not supported by all terminals)")
	flag.Parse()

	if *optVersion {
		fmt.Printf("skarn\t%v\n", Version)
		if bi, ok := debug.ReadBuildInfo(); ok {
			fmt.Print(bi)
		}
		os.Exit(0)
	}
	if *optNoAnim {
		DisableAnimations = true
	}
	if runtime.GOOS == "windows" {
		ColorMode = ColorMode8
	}
	switch {
	case *opt256colors:
		ColorMode = ColorMode256
	case *opt16colors:
		ColorMode = ColorMode16
	case *optTrueColor:
		ColorMode = ColorMode24bit
	}
	log.SetPrefix("skarn ")
	if err := InitPrefs(); err != nil {
		log.Print(err)
	}
	if err := LoadUserConfigs(); err != nil {
		log.Print(err)
	}
	initDriver()
	if *optReplay != "" {
		RunReplay(*optReplay)
	} else {
		RunGame(*optGameLogs)
	}
}

// RunGame starts the game, writing game logs to the log file if gamelogs is
// set.
func RunGame(gamelogs bool) {
	gd := gruid.NewGrid(UIWidth, UIHeight)
	md := &model{gd: gd, g: &Game{}, targ: &targeting{}}
	var repw io.WriteCloser
	dir, err := DataDir()
	defer func() {
		if repw != nil {
			if err := repw.Close(); err != nil {
				log.Printf("closing replay file: %v", err)
			}
		}
		if md.gameEnded && dir != "" {
			if err := RemoveSaveFile(); err != nil {
				log.Printf("removing save file: %v", err)
			}
			_, err := os.Stat(filepath.Join(dir, "replay.part"))
			if err != nil {
				log.Printf("no replay file: %v", err)
				return
			}
			if err := os.Rename(filepath.Join(dir, "replay.part"), filepath.Join(dir, "replay")); err != nil {
				log.Printf("writing replay file: %v", err)
			}
		}
	}()
	if err == nil {
		replay, err := os.OpenFile(filepath.Join(dir, "replay.part"), os.O_RDWR|os.O_APPEND|os.O_CREATE, 0666)
		if err == nil {
			repw = replay
		} else {
			log.Printf("writing to replay file: %v", err)
		}
	} else {
		log.Print(err)
	}
	if gamelogs {
		LogGame = true
	}
	app := gruid.NewApp(gruid.AppConfig{
		Driver:      driver,
		Model:       md,
		FrameWriter: repw,
	})
	if f := setLogOutput(); f != nil {
		defer func() {
			f.Close()
		}()
	}
	err = app.Start(context.Background())
	log.SetOutput(os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
}

// RunReplay runs the given replay file.
func RunReplay(file string) {
	if file == "_" {
		dir, err := DataDir()
		if err == nil {
			file = filepath.Join(dir, "replay")
		} else {
			log.Print(err)
		}
	}
	replay, err := os.Open(file)
	if err != nil {
		log.Fatalf("loading replay file: %v", err)
	}
	defer replay.Close()
	fd, err := gruid.NewFrameDecoder(replay)
	if err != nil {
		log.Fatalf("frame decoder: %v", err)
	}
	gd := gruid.NewGrid(UIWidth, UIHeight)
	rep := ui.NewReplay(ui.ReplayConfig{
		Grid:         gd,
		FrameDecoder: fd,
	})
	app := gruid.NewApp(gruid.AppConfig{
		Driver: driver,
		Model:  rep,
	})
	if f := setLogOutput(); f != nil {
		defer func() {
			f.Close()
		}()
	}
	if err := app.Start(context.Background()); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}

// setLogOutput sets standard log output to the logs file in the game's data
// directory.
func setLogOutput() *os.File {
	dataDir, err := DataDir()
	if err != nil {
		log.Print(err)
		return nil
	}
	logFile := filepath.Join(dataDir, "logs.txt")
	f, err := os.Create(logFile)
	if err != nil {
		log.Print(err)
		return nil
	}
	log.SetOutput(f)
	return f
}

// subSig is a subscription that intercepts SIGTERM for closing the game
// gracefully.
func subSig(ctx context.Context, msgs chan<- gruid.Msg) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	select {
	case <-ctx.Done():
	case <-sig:
		msgs <- gruid.MsgQuit{}
	}
}
