package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/inamate/sketchboard/internal/discovery"
)

func main() {
	timeout := flag.Duration("timeout", 3*time.Second, "how long to listen for board servers")
	flag.Parse()

	n := 0
	err := discovery.Browse(*timeout, func(s discovery.Server) {
		n++
		fmt.Printf("%s\thttp://%s\n", s.Instance, s.Addr)
	})
	if err != nil {
		slog.Error("browse board servers", "error", err)
		os.Exit(1)
	}
	if n == 0 {
		fmt.Fprintln(os.Stderr, "no board servers found")
	}
}
