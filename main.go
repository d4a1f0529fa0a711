package main

import (
	"BTreeDB/config"
	"BTreeDB/logger"
	"BTreeDB/query_parser/parser"
	storageengine "BTreeDB/storage_engine"
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	defer log.Sync()

	engine, err := storageengine.NewStorageEngine(storageengine.Options{
		DataDir:          cfg.DataDir,
		CacheBytes:       cfg.CacheBytes,
		LeafCapacity:     cfg.LeafCapacity,
		InternalCapacity: cfg.InternalCapacity,
		Logger:           log,
	})
	if err != nil {
		log.Fatal("failed to start storage engine", zap.Error(err))
	}
	defer engine.Close()

	log.Debug("storage engine ready",
		zap.String("data_dir", cfg.DataDir),
		zap.Int64("cache_bytes", cfg.CacheBytes))

	scanner := bufio.NewScanner(os.Stdin)
	// REPL
	for {
		fmt.Print("btreedb> ")

		if !scanner.Scan() { // Ctrl+D pressed
			fmt.Println()
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		stmt, err := parser.Parse(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		err = engine.Execute(stmt, os.Stdout)
		if errors.Is(err, storageengine.ErrQuit) {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}
