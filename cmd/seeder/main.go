package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/poiesic/docquery"
	"github.com/poiesic/docquery/auth"
	"github.com/poiesic/docquery/core"
)

var inventory = []map[string]any{
	{"product": "Widget", "category": "Hardware", "price": 9.99, "stock": 412},
	{"product": "Gadget", "category": "Hardware", "price": 24.50, "stock": 87},
	{"product": "Gizmo", "category": "Hardware", "price": 14.00, "stock": 230},
	{"product": "Doohickey", "category": "Accessories", "price": 3.25, "stock": 1044},
	{"product": "Contraption", "category": "Machinery", "price": 149.99, "stock": 12},
	{"product": "Thingamajig", "category": "Accessories", "price": 7.75, "stock": 356},
	{"product": "Whatsit", "category": "Machinery", "price": 89.00, "stock": 31},
	{"product": "Doodad", "category": "Hardware", "price": 5.49, "stock": 720},
}

var employees = []map[string]any{
	{"name": "Ava Chen", "department": "Engineering", "role": "Backend Engineer", "start_year": 2019},
	{"name": "Marcus Webb", "department": "Engineering", "role": "SRE", "start_year": 2021},
	{"name": "Priya Nair", "department": "Sales", "role": "Account Executive", "start_year": 2020},
	{"name": "Tomás Ruiz", "department": "Sales", "role": "Sales Manager", "start_year": 2017},
	{"name": "Lena Fischer", "department": "Support", "role": "Support Lead", "start_year": 2018},
	{"name": "Kofi Mensah", "department": "Support", "role": "Support Engineer", "start_year": 2022},
}

var (
	dbPath  = flag.String("db", "./data", "path to the database directory")
	srcFile = flag.String("src", "", "extra JSON or Excel file to seed")
	email   = flag.String("email", "demo@example.com", "email for the seeded account")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func mustJSON(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

func main() {
	svc, err := docquery.NewService(*dbPath)
	if err != nil {
		panic(err)
	}
	defer svc.Close()

	ctx := context.Background()

	hash, err := auth.HashPassword("demo-password")
	if err != nil {
		panic(err)
	}

	user, err := svc.UserRepository().AddUser(ctx, &core.User{
		Email:        *email,
		Name:         "Demo User",
		PasswordHash: hash,
	})
	if err != nil {
		panic(err)
	}
	slog.Info("seeded user", "id", user.Id, "email", user.Email)

	pipeline, err := svc.NewIngestPipeline()
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()

	samples := map[string][]byte{
		"inventory.json": mustJSON(inventory),
		"employees.json": mustJSON(employees),
	}
	for filename, content := range samples {
		doc, err := pipeline.Ingest(ctx, user.Id, filename, content)
		if err != nil {
			panic(err)
		}
		slog.Info("seeded document", "filename", doc.Filename, "chunks", doc.ChunkCount())
	}

	if *srcFile != "" {
		content, err := os.ReadFile(*srcFile)
		if err != nil {
			panic(err)
		}
		doc, err := pipeline.Ingest(ctx, user.Id, filepath.Base(*srcFile), content)
		if err != nil {
			panic(err)
		}
		slog.Info("seeded document", "filename", doc.Filename, "chunks", doc.ChunkCount())
	}
}
