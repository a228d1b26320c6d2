package main

import (
	"testing"

	"github.com/tablemind/chain-automa/game/engine"
)

func TestAnalyzeFronts_NoPanic(t *testing.T) {
	catalog, err := engine.LoadCatalog()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzeFronts panicked: %v", r)
		}
	}()

	analyzeFronts(catalog.ActionCards())
}

func TestAnalyzeBacks_NoPanic(t *testing.T) {
	catalog, err := engine.LoadCatalog()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzeBacks panicked: %v", r)
		}
	}()

	analyzeBacks(catalog.ActionCards())
}

func TestAnalyzeCompetition_NoPanic(t *testing.T) {
	catalog, err := engine.LoadCatalog()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzeCompetition panicked: %v", r)
		}
	}()

	analyzeCompetition("Warm", catalog.WarmCards())
	analyzeCompetition("Cool", catalog.CoolCards())
}

func TestAnalyze_HandlesNilSides(t *testing.T) {
	// Cards without fronts or backs must not crash the analyzers.
	cards := []*engine.Card{
		{Type: engine.CardWarm, Number: 1},
		{Type: engine.CardCool, Number: 2},
	}

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzer panicked on cards without sides: %v", r)
		}
	}()

	analyzeFronts(cards)
	analyzeBacks(cards)
}

func TestSortedKeys(t *testing.T) {
	keys := sortedKeys(map[string]int{"snow": 6, "flame": 6, "sun": 8})
	if len(keys) != 3 {
		t.Fatalf("Expected 3 keys, got %d", len(keys))
	}
	if keys[0] != "flame" || keys[1] != "snow" || keys[2] != "sun" {
		t.Errorf("Expected sorted keys [flame snow sun], got %v", keys)
	}
}

func TestDeckSizes(t *testing.T) {
	catalog, err := engine.LoadCatalog()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	if len(catalog.ActionCards()) == 0 {
		t.Error("Expected a non-empty action deck")
	}
	if len(catalog.WarmCards()) == 0 {
		t.Error("Expected a non-empty warm deck")
	}
	if len(catalog.CoolCards()) == 0 {
		t.Error("Expected a non-empty cool deck")
	}
}
