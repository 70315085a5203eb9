package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"guestbook/internal/shared"
	"guestbook/internal/store"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "optional JSON config file")
	flag.Parse()

	cfg, err := shared.LoadServerConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	st, err := store.Open(ctx, cfg, zap.NewNop())
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	fmt.Println("Backend:", cfg.Backend)
	switch s := st.(type) {
	case *store.FileStore:
		fmt.Println("File:", s.Path())
	case *store.SQLStore:
		tables, err := s.Tables(ctx)
		if err != nil {
			log.Fatalf("list tables: %v", err)
		}
		fmt.Println("Tables:")
		for _, name := range tables {
			fmt.Println(" -", name)
		}
	}

	entries, err := st.ListEntries(ctx)
	if err != nil {
		log.Fatalf("list entries: %v", err)
	}
	fmt.Println("Entries:", len(entries))
	if len(entries) > 0 {
		e := entries[0]
		fmt.Printf("Newest: #%d %s (%s): %s\n", e.ID, e.Name, e.CreatedAt, e.Message)
	}
}
