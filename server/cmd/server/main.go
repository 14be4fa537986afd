package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/levels"
	"github.com/automoto/doomerang-arena/server/core"
	"github.com/automoto/doomerang-arena/shared/leveldata"
	"github.com/automoto/doomerang-arena/shared/netconfig"
	"github.com/automoto/doomerang-arena/shared/protocol"
)

func main() {
	port := flag.Uint("port", 0, "Server port (default from tuning)")
	tickRate := flag.Int("tickrate", 0, "Server tick rate in updates per second (default from tuning)")
	name := flag.String("name", "Arena Server", "Server display name")
	level := flag.String("level", "", "Bundled map name or path to a .tmx level (default: bundled arena)")
	tuningPath := flag.String("config", "", "Path to a YAML tuning file")
	maxPlayers := flag.Int("maxplayers", netconfig.MaxPlayers, "Maximum number of players")
	flag.Parse()

	tuning, err := config.LoadFile(*tuningPath)
	if err != nil {
		log.Fatalf("Failed to load tuning: %v", err)
	}
	if *port != 0 {
		tuning.Network.Port = *port
	}
	if *tickRate > 0 {
		tuning.Network.TickRate = *tickRate
	}

	lvl, err := loadLevel(*level, tuning)
	if err != nil {
		log.Fatalf("Failed to load level: %v", err)
	}

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	server, err := core.NewServer(core.Options{
		Name:       *name,
		Version:    netconfig.ProtocolVersion,
		Tuning:     tuning,
		Level:      lvl,
		MaxPlayers: *maxPlayers,
	})
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		server.Stop()
		os.Exit(0)
	}()

	log.Printf("Starting arena server %q on port %d (tick rate: %d/s, level: %s, version: %s)",
		*name, tuning.Network.Port, tuning.Network.TickRate, lvl.Name, netconfig.ProtocolVersion)
	if err := server.Start(tuning.Network.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// loadLevel resolves name against the bundled maps first. Anything ending in
// .tmx is read from disk.
func loadLevel(name string, tuning config.Tuning) (*core.ServerLevel, error) {
	seed := time.Now().UnixNano()
	if strings.HasSuffix(name, ".tmx") {
		return core.LoadServerLevel(os.DirFS(filepath.Dir(name)), filepath.Base(name), tuning, seed)
	}

	bundled, names, err := leveldata.LoadAllLevels(levels.FS, ".")
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = strings.TrimSuffix(levels.Default, ".tmx")
	}
	data, ok := bundled[name]
	if !ok {
		return nil, fmt.Errorf("unknown level %q (bundled: %s)", name, strings.Join(names, ", "))
	}
	return core.NewServerLevel(name, data, tuning, seed), nil
}
