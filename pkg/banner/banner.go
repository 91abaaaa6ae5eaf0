// Package banner prints the startup summary for the indexer command.
package banner

import (
	"fmt"

	"chainindexer/pkg/config"
)

const banner = `
 _____ _           _       _____           _
/  __ \ |         (_)     |_   _|         | |
| /  \/ |__   __ _ _ _ __    | | _ __   __| | _____  _____ _ __
| |   | '_ \ / _  | | '_ \   | || '_ \ / _  |/ _ \ \/ / _ \ '__|
| \__/\ | | | (_| | | | | | _| || | | | (_| |  __/>  <  __/ |
 \____/_| |_|\__,_|_|_| |_| \___/_| |_|\__,_|\___/_/\_\___|_|
`

// Print prints the startup banner plus a summary of the effective config.
func Print(cfg *config.FileConfig, version string) {
	fmt.Print(banner)
	fmt.Println("== Config =====================================================")
	if version != "" {
		fmt.Printf("Version:        %s\n", version)
	}
	fmt.Printf("Runner name:    %s\n", cfg.Name)
	fmt.Printf("Flush interval: %s\n", cfg.Flush.Interval.Duration())
	fmt.Printf("Batch size:     %d\n", cfg.Batch.MaxSize)
	fmt.Printf("Concurrency:    %d\n", cfg.Concurrency.Max)
	fmt.Printf("Queue max size: %d\n", cfg.Queue.MaxSize)
	fmt.Printf("Dedup entries:  %v\n", cfg.Queue.Dedup)
	if cfg.Poll.Enabled {
		if cfg.Poll.Cron != "" {
			fmt.Printf("Poll mode:      enabled (cron=%s)\n", cfg.Poll.Cron)
		} else {
			fmt.Printf("Poll mode:      enabled (interval=%s)\n", cfg.Poll.Interval.Duration())
		}
	} else {
		fmt.Println("Poll mode:      disabled")
	}
	fmt.Printf("Store path:     %s\n", cfg.Store.Path)
	if cfg.Memory.ThresholdBytes > 0 {
		fmt.Printf("Mem threshold:  %d bytes\n", cfg.Memory.ThresholdBytes)
	} else {
		fmt.Println("Mem threshold:  default (512MiB)")
	}
	fmt.Println("\n== Endpoints ==================================================")
	fmt.Println("GET /debug   - buffered entries, queued and in-flight batches")
	fmt.Println("GET /metrics - Prometheus metrics")
}
