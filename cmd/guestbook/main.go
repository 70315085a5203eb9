package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"guestbook/internal/client"
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage:
  guestbook [-server URL] list
  guestbook [-server URL] post -message TEXT [-name NAME]
`)
	os.Exit(2)
}

func main() {
	serverURL := flag.String("server", envOr("GUESTBOOK_URL", "http://localhost:5000"), "guestbook server base URL")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
	}

	c := client.New(*serverURL)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch flag.Arg(0) {
	case "list":
		entries, err := c.ListEntries(ctx)
		if err != nil {
			log.Fatal(err)
		}
		if len(entries) == 0 {
			fmt.Println("No entries yet.")
			return
		}
		for _, e := range entries {
			fmt.Printf("#%d  %s  %s\n    %s\n", e.ID, e.CreatedAt, e.Name, e.Message)
		}

	case "post":
		fs := flag.NewFlagSet("post", flag.ExitOnError)
		name := fs.String("name", "", "display name (default Anonymous)")
		message := fs.String("message", "", "message text")
		_ = fs.Parse(flag.Args()[1:])

		e, err := c.CreateEntry(ctx, *name, *message)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("posted #%d as %s at %s\n", e.ID, e.Name, e.CreatedAt)

	default:
		usage()
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
