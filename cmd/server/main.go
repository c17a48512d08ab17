package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync/atomic"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/nirholas/hyperscape-sub002/internal/batch"
	"github.com/nirholas/hyperscape-sub002/internal/builder"
	"github.com/nirholas/hyperscape-sub002/internal/protocol"
	"github.com/nirholas/hyperscape-sub002/internal/recipe"
	"github.com/nirholas/hyperscape-sub002/internal/web/views"
	"github.com/nirholas/hyperscape-sub002/internal/ws"
)

// server holds the viewer state: the recipe registry, the client hub and
// the latest generated snapshot.
type server struct {
	registry *recipe.Registry
	hub      *ws.Hub
	latest   atomic.Pointer[protocol.BuildingSnapshot]
}

func (s *server) generate(req protocol.RequestGenerate) (*protocol.BuildingSnapshot, error) {
	res, err := builder.Generate(s.registry, builder.Request{
		TypeKey:     req.TypeKey,
		Seed:        req.Seed,
		IncludeRoof: req.IncludeRoof,
	})
	if err != nil {
		return nil, err
	}
	snap := protocol.SnapshotOf(uuid.NewString(), req.TypeKey, req.Seed, res)
	s.latest.Store(&snap)
	return &snap, nil
}

func (s *server) broadcast(snap *protocol.BuildingSnapshot) {
	if err := s.hub.BroadcastPatch("BuildingGenerated", snap); err != nil {
		log.Printf("broadcast failed: %v", err)
		return
	}
	log.Printf("broadcast %s %s/%s to %d clients (%d triangles)",
		snap.BuildID, snap.TypeKey, snap.Seed, s.hub.Count(), len(snap.Mesh.Indices)/3)
}

func (s *server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("websocket accept failed: %v", err)
		return
	}
	s.hub.Add(conn)
	defer s.hub.Remove(conn)
	log.Printf("client connected (%d total)", s.hub.Count())

	ctx := r.Context()
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		var intent protocol.IntentEnvelope
		if err := json.Unmarshal(data, &intent); err != nil {
			log.Printf("bad intent: %v", err)
			continue
		}
		switch intent.Type {
		case "RequestGenerate":
			var req protocol.RequestGenerate
			if err := json.Unmarshal(intent.Payload, &req); err != nil {
				log.Printf("bad RequestGenerate payload: %v", err)
				continue
			}
			snap, err := s.generate(req)
			if err != nil {
				log.Printf("generate %s/%s failed: %v", req.TypeKey, req.Seed, err)
				continue
			}
			s.broadcast(snap)
		default:
			log.Printf("unknown intent type %q", intent.Type)
		}
	}
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	snap := s.latest.Load()
	if snap == nil {
		http.Error(w, "no building generated yet", http.StatusServiceUnavailable)
		return
	}
	keys := s.registry.Types()
	if err := views.IndexPage(*snap, keys).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// bake generates one building per builtin type for the given seed count and
// prints the stats, as a batch smoke run.
func bake(reg *recipe.Registry, seedCount, workers int) error {
	var requests []builder.Request
	for _, key := range reg.Types() {
		for i := 0; i < seedCount; i++ {
			requests = append(requests, builder.Request{
				TypeKey:     key,
				Seed:        fmt.Sprintf("%s-%d", key, i),
				IncludeRoof: true,
			})
		}
	}
	results, err := batch.Generate(context.Background(), reg, requests, workers)
	if err != nil {
		return err
	}
	for i, res := range results {
		req := requests[i]
		log.Printf("%s/%s: floors=%d rooms=%d walls=%d triangles=%d",
			req.TypeKey, req.Seed, res.Layout.Floors, res.Stats.Rooms,
			res.Stats.WallSegments, res.Nodes[0].TriangleCount())
	}
	return nil
}

func main() {
	var (
		recipeDir = flag.String("recipes", "", "directory of recipe JSON overrides")
		typeKey   = flag.String("type", "house", "initial building type")
		seed      = flag.String("seed", "house-1", "initial seed")
		bakeCount = flag.Int("bake", 0, "generate N seeds per type, print stats and exit")
		workers   = flag.Int("workers", 4, "parallel generations in bake mode")
	)
	flag.Parse()

	registry := recipe.Builtin()
	if *recipeDir != "" {
		var err error
		registry, err = recipe.LoadDir(*recipeDir)
		if err != nil {
			log.Fatalf("failed to load recipes: %v", err)
		}
	}

	if *bakeCount > 0 {
		if err := bake(registry, *bakeCount, *workers); err != nil {
			log.Fatalf("bake failed: %v", err)
		}
		return
	}

	srv := &server{registry: registry, hub: ws.NewHub()}
	snap, err := srv.generate(protocol.RequestGenerate{
		TypeKey: *typeKey, Seed: *seed, IncludeRoof: true,
	})
	if err != nil {
		log.Fatalf("initial generation failed: %v", err)
	}
	log.Printf("initial building %s %s/%s: %d floors, %d rooms",
		snap.BuildID, snap.TypeKey, snap.Seed, snap.Floors, snap.Stats.Rooms)

	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.handleIndex)
	mux.HandleFunc("/stream", srv.handleStream)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("listening on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, mux))
}
