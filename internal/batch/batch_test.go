package batch

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/nirholas/hyperscape-sub002/internal/builder"
	"github.com/nirholas/hyperscape-sub002/internal/recipe"
)

func TestBatchMatchesSequential(t *testing.T) {
	reg := recipe.Builtin()
	var requests []builder.Request
	for i := 0; i < 12; i++ {
		requests = append(requests, builder.Request{
			TypeKey:     "house",
			Seed:        fmt.Sprintf("batch-%d", i),
			IncludeRoof: true,
		})
	}

	parallel, err := Generate(context.Background(), reg, requests, 4)
	if err != nil {
		t.Fatal(err)
	}
	for i, req := range requests {
		single, err := builder.Generate(reg, req)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(parallel[i].Stats, single.Stats) {
			t.Fatalf("request %d: parallel stats diverged from sequential", i)
		}
	}
}

func TestBatchFailsOnUnknownType(t *testing.T) {
	requests := []builder.Request{
		{TypeKey: "house", Seed: "a"},
		{TypeKey: "castle", Seed: "b"},
	}
	if _, err := Generate(context.Background(), recipe.Builtin(), requests, 0); err == nil {
		t.Fatal("expected error for unknown type in batch")
	}
}

func TestBatchEmpty(t *testing.T) {
	results, err := Generate(context.Background(), recipe.Builtin(), nil, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Fatalf("empty batch returned %d results", len(results))
	}
}
