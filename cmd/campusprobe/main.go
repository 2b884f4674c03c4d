package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"campusmock/internal/client"
)

func main() {
	base := flag.String("base", "http://localhost:8080", "server base URL")
	h2c := flag.Bool("h2c", false, "use cleartext HTTP/2 with prior knowledge")
	insecure := flag.Bool("insecure", false, "skip TLS certificate verification")
	timeout := flag.Duration("timeout", 10*time.Second, "overall probe timeout")
	flag.Parse()

	var rt http.RoundTripper = client.NewTransport(*insecure)
	if *h2c {
		rt = client.NewH2CTransport()
	}
	c := client.New(*base, rt)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, c); err != nil {
		log.Printf("probe failed: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *client.Client) error {
	idx, err := c.Index(ctx)
	if err != nil {
		return fmt.Errorf("index: %w", err)
	}
	fmt.Printf("%s v%s\n", idx.Name, idx.Version)

	health, err := c.Health(ctx)
	if err != nil {
		return fmt.Errorf("health: %w", err)
	}
	fmt.Printf("health: %s (%s)\n", health.Status, health.Timestamp)

	cats, err := c.Categories(ctx)
	if err != nil {
		return fmt.Errorf("categories: %w", err)
	}
	if len(cats) == 0 {
		return fmt.Errorf("categories: empty list")
	}
	fmt.Printf("categories: %d\n", len(cats))

	anns, err := c.Announcements(ctx)
	if err != nil {
		return fmt.Errorf("announcements: %w", err)
	}
	fmt.Printf("announcements: %d\n", len(anns))

	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	resp, err := c.SyncActivity(ctx, client.ActivityPayload{
		ID:              int(time.Now().Unix()%100000) + 1,
		Title:           "探针测试活动",
		Description:     "campusprobe smoke test",
		Category:        cats[0].Name,
		Organizer:       "campusprobe",
		StartTime:       start.Format("2006-01-02T15:04:05"),
		EndTime:         start.Add(2 * time.Hour).Format("2006-01-02T15:04:05"),
		MaxParticipants: 30,
		Location:        "probe",
		Status:          1,
	})
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	fmt.Printf("sync: %s (activity_id=%v)\n", resp.Message, resp.ActivityID)

	synced, err := c.SyncedActivities(ctx)
	if err != nil {
		return fmt.Errorf("synced activities: %w", err)
	}
	fmt.Printf("synced activities: %d\n", synced.Count)
	return nil
}
