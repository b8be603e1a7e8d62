// Package keepalive self-pings the service's health endpoint so free-tier
// hosting platforms do not idle the instance.
package keepalive

import (
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	pingInterval = 14 * time.Minute
	pingTimeout  = 10 * time.Second
)

// Start launches the ping loop in a background goroutine. A failed ping is
// logged and never fatal. When baseURL is empty nothing is started.
func Start(baseURL string) {
	if baseURL == "" {
		log.Println("KEEP_ALIVE_URL not set — keep-alive disabled")
		return
	}

	healthURL := strings.TrimRight(baseURL, "/") + "/api/health"
	client := &http.Client{Timeout: pingTimeout}

	go func() {
		for {
			time.Sleep(pingInterval)
			resp, err := client.Get(healthURL)
			if err != nil {
				log.Printf("Keep-alive ping failed: %v", err)
				continue
			}
			resp.Body.Close()
			log.Printf("Keep-alive ping %s → %d", healthURL, resp.StatusCode)
		}
	}()

	log.Printf("Keep-alive started — pinging %s every %s", healthURL, pingInterval)
}
