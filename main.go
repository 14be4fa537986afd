package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/levels"
	"github.com/automoto/doomerang-arena/network"
	"github.com/automoto/doomerang-arena/scenes"
	"github.com/automoto/doomerang-arena/shared/protocol"
	"github.com/hajimehoshi/ebiten/v2"
)

const appName = "doomerang-arena"

type Scene interface {
	Update() error
	Draw(screen *ebiten.Image)
}

type Game struct {
	scene Scene
}

func (g *Game) Update() error {
	return g.scene.Update()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	return scenes.ScreenWidth, scenes.ScreenHeight
}

func main() {
	connect := flag.String("connect", "", "Join a server at host:port instead of playing locally")
	name := flag.String("name", "", "Player name when joining a server")
	level := flag.String("level", "", "Path to a .tmx level (default: bundled arena)")
	tuningPath := flag.String("config", "", "Path to a YAML tuning file, reloaded on change")
	flag.Parse()

	// Register network components for client-side deserialization
	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register network components: %v", err)
	}

	var fsys fs.FS = levels.FS
	levelName := levels.Default
	if *level != "" {
		fsys = os.DirFS(filepath.Dir(*level))
		levelName = filepath.Base(*level)
	}

	store, err := config.OpenStore(appName)
	if err != nil {
		log.Printf("Warning: Could not open settings store: %v", err)
	}
	tuning, watcher := loadTuning(*tuningPath, store)
	if watcher != nil {
		defer watcher.Close()
	}

	var scene Scene
	if *connect != "" {
		scene = scenes.NewNetworkedScene(network.NewClient(), scenes.NetworkOptions{
			Address:    *connect,
			PlayerName: *name,
			LevelFS:    fsys,
			Level:      levelName,
			Tuning:     tuning,
		})
	} else {
		scene = scenes.NewPlatformerScene(scenes.LocalOptions{
			LevelFS: fsys,
			Level:   levelName,
			Tuning:  tuning,
			Watcher: watcher,
			Store:   store,
		})
	}

	ebiten.SetWindowSize(scenes.ScreenWidth*2, scenes.ScreenHeight*2)
	ebiten.SetWindowTitle("Doomerang Arena")

	if err := ebiten.RunGame(&Game{scene: scene}); err != nil && !errors.Is(err, scenes.ErrDisconnected) {
		log.Fatal(err)
	}
}

// loadTuning prefers an explicit file, then the last saved tuning, then the
// defaults. A file given on the command line is also watched for changes.
func loadTuning(path string, store *config.Store) (config.Tuning, *config.Watcher) {
	if path == "" {
		if saved, ok := store.Load(); ok {
			return saved, nil
		}
		return config.Default(), nil
	}

	t, err := config.LoadFile(path)
	if err != nil {
		log.Fatalf("Failed to load tuning: %v", err)
	}
	w, err := config.Watch(path)
	if err != nil {
		log.Printf("Warning: tuning hot reload disabled: %v", err)
		return t, nil
	}
	return t, w
}
