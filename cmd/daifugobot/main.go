// daifugobot is the reference client: it connects to an arbiter and
// plays full sessions with the shipped strategy.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vctt94/daifugo/pkg/agent"
	"github.com/vctt94/daifugo/pkg/logging"
	"github.com/vctt94/daifugo/pkg/protocol"
)

func main() {
	var (
		host    string
		port    int
		name    string
		verbose bool
	)
	flag.StringVar(&host, "H", "127.0.0.1", "Arbiter host")
	flag.StringVar(&host, "host", "127.0.0.1", "Arbiter host")
	flag.IntVar(&port, "p", protocol.DefaultPort, "Arbiter port")
	flag.IntVar(&port, "port", protocol.DefaultPort, "Arbiter port")
	flag.StringVar(&name, "n", "GoBot", "Player name sent in the handshake")
	flag.StringVar(&name, "name", "GoBot", "Player name sent in the handshake")
	flag.BoolVar(&verbose, "v", false, "Debug logging")
	flag.BoolVar(&verbose, "verbose", false, "Debug logging")
	flag.Parse()

	level := "info"
	if verbose {
		level = "debug"
	}
	logBackend, err := logging.NewLogBackend(logging.LogConfig{DebugLevel: level})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer logBackend.Close()
	log := logBackend.Logger("BOT")

	conn, err := agent.Dial(fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
	defer conn.Close()

	id, err := conn.Handshake(name)
	if err != nil {
		log.Errorf("handshake: %v", err)
		os.Exit(1)
	}
	log.Infof("connected as player %d (%s)", id, name)

	a := agent.New(conn, id, agent.SimpleStrategy{}, log)
	if err := a.Run(); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}
