// daifugosrv is the arbiter: it seats five clients, runs the configured
// number of games, and reports the standings.
package main

import (
	"crypto/rand"
	"encoding/binary"
	"flag"
	"fmt"
	mrand "math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/vctt94/daifugo/pkg/config"
	"github.com/vctt94/daifugo/pkg/daifugo"
	"github.com/vctt94/daifugo/pkg/display"
	"github.com/vctt94/daifugo/pkg/gamelog"
	"github.com/vctt94/daifugo/pkg/logging"
	"github.com/vctt94/daifugo/pkg/server"
	"github.com/vctt94/daifugo/pkg/utils"
)

func main() {
	var (
		cfgPath    string
		datadir    string
		port       int
		numGames   int
		seed       int64
		gameLogDir string
		showHands  bool
		verbose    bool
	)
	flag.StringVar(&cfgPath, "c", "", "Path to YAML config file")
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file")
	flag.StringVar(&datadir, "d", "", "Data directory for logs (optional)")
	flag.IntVar(&port, "p", 0, "Port to listen on (overrides config)")
	flag.IntVar(&port, "port", 0, "Port to listen on (overrides config)")
	flag.IntVar(&numGames, "n", 0, "Number of games to play (overrides config)")
	flag.IntVar(&numGames, "num-games", 0, "Number of games to play (overrides config)")
	flag.Int64Var(&seed, "seed", 0, "Deterministic shuffle seed (0 = random)")
	flag.StringVar(&gameLogDir, "game-log", "", "Directory for replay logs (overrides config)")
	flag.BoolVar(&showHands, "show-hands", false, "Echo dealt hands to the console")
	flag.BoolVar(&verbose, "v", false, "Debug logging")
	flag.BoolVar(&verbose, "verbose", false, "Debug logging")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if numGames != 0 {
		cfg.Game.NumGames = numGames
	}
	if seed != 0 {
		cfg.Game.Seed = seed
	}
	if gameLogDir != "" {
		cfg.GameLog.Dir = gameLogDir
	}
	if showHands {
		cfg.Logging.ShowHands = true
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if datadir != "" {
		if err := utils.EnsureDataDirExists(datadir); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		if cfg.Logging.LogFile == "" {
			cfg.Logging.LogFile = filepath.Join(datadir, "logs", "daifugosrv.log")
		}
		if cfg.GameLog.Dir == "" {
			cfg.GameLog.Dir = filepath.Join(datadir, "gamelogs")
		}
	}

	logBackend, err := logging.NewLogBackend(logging.LogConfig{
		LogFile:    cfg.Logging.LogFile,
		DebugLevel: cfg.Logging.Level,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer logBackend.Close()
	log := logBackend.Logger("SRVR")

	rngSeed := cfg.Game.Seed
	if rngSeed == 0 {
		var b [8]byte
		if _, err := rand.Read(b[:]); err != nil {
			log.Errorf("seed entropy: %v", err)
			os.Exit(1)
		}
		rngSeed = int64(binary.BigEndian.Uint64(b[:]))
	} else {
		log.Infof("using fixed shuffle seed %d", rngSeed)
	}
	rng := mrand.New(mrand.NewSource(rngSeed))

	console := display.New(os.Stdout, cfg.Logging.ShowHands)

	srv, err := server.New(server.Config{
		Address:    cfg.Address(),
		NumPlayers: daifugo.NumPlayers,
	}, logBackend.Logger("NETW"))
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
	defer srv.Close()

	// The replay logger is only opened once the table fills, so the
	// handler picks it up through the channel rather than a shared var.
	glogCh := make(chan *gamelog.Logger, 1)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warnf("interrupted, shutting down")
		select {
		case glog := <-glogCh:
			glog.Close()
		default:
		}
		srv.Close()
		logBackend.Close()
		os.Exit(130)
	}()

	fmt.Printf("waiting for %d players on %s\n", daifugo.NumPlayers, cfg.Address())
	if err := srv.AcceptPlayers(func(p *server.Peer) {
		console.PlayerConnected(p.ID, p.Name, p.ProtocolVersion)
	}); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}

	players := make([]*daifugo.Player, 0, daifugo.NumPlayers)
	names := make([]string, 0, daifugo.NumPlayers)
	for _, p := range srv.Peers() {
		players = append(players, daifugo.NewPlayer(p.ID, p.Name, p.ProtocolVersion))
		names = append(names, p.Name)
	}
	console.Roster(names)

	var glog *gamelog.Logger
	if cfg.GameLog.Dir != "" {
		path := gamelog.Filename(cfg.GameLog.Dir, names, time.Now())
		glog, err = gamelog.New(path)
		if err != nil {
			log.Errorf("%v", err)
			os.Exit(1)
		}
		defer glog.Close()
		glogCh <- glog
		log.Infof("writing replay log to %s", path)
	}

	engine := daifugo.NewEngine(srv, players, cfg.Rules, rng, logBackend.Logger("GAME"), glog)
	totalGames := cfg.Game.NumGames
	engine.SetGameStartHook(func(game int, hands []daifugo.CardSet, firstPlayer int) {
		console.GameStart(game, totalGames, hands, firstPlayer)
	})
	engine.SetGameEndHook(func(game int, finishOrder []int) {
		console.GameResult(game, finishOrder)
	})

	points, ranking, err := engine.RunSession(totalGames)
	if err != nil {
		log.Errorf("session aborted: %v", err)
		os.Exit(1)
	}
	console.FinalResults(totalGames, points, ranking)
}
