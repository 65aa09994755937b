package discovery

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

const ServiceType = "_sketchboard._tcp"

// Advertise announces a board server on the local network. An empty instance
// name falls back to the hostname. Callers Shutdown the returned server.
func Advertise(instance string, port int) (*mdns.Server, error) {
	if instance == "" {
		host, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("could not get hostname: %w", err)
		}
		instance = host
	}

	service, err := mdns.NewMDNSService(instance, ServiceType, "", "", port, nil, []string{"sketchboard"})
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}

	slog.Info("advertising board server", "instance", instance, "service", ServiceType, "port", port)
	return server, nil
}

// Server is a board server found on the network.
type Server struct {
	Instance string
	Addr     string
}

// Browse queries the network for board servers until timeout, calling found
// for every entry with a usable IPv4 address.
func Browse(timeout time.Duration, found func(Server)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		for e := range entries {
			if s, ok := serverFromEntry(e); ok {
				found(s)
			}
		}
	}()

	params := mdns.DefaultParams(ServiceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.Query(params)
	close(entries)
	<-finished
	return err
}

func serverFromEntry(e *mdns.ServiceEntry) (Server, bool) {
	if e == nil || e.AddrV4 == nil || e.Port == 0 {
		return Server{}, false
	}
	return Server{
		Instance: e.Name,
		Addr:     fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port),
	}, true
}
