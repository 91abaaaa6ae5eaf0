package config

import (
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDurationUnmarshalsParseDurationStrings(t *testing.T) {
	var d Duration
	node := &yaml.Node{Value: "1500ms"}
	if err := d.UnmarshalYAML(node); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Duration() != 1500*time.Millisecond {
		t.Fatalf("expected 1500ms, got %s", d.Duration())
	}
}

func TestDurationUnmarshalsBareNumberAsSeconds(t *testing.T) {
	var d Duration
	node := &yaml.Node{Value: "2.5"}
	if err := d.UnmarshalYAML(node); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Duration() != 2500*time.Millisecond {
		t.Fatalf("expected 2.5s, got %s", d.Duration())
	}
}

func TestDurationUnmarshalRejectsGarbage(t *testing.T) {
	var d Duration
	node := &yaml.Node{Value: "not-a-duration"}
	if err := d.UnmarshalYAML(node); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestSizeBytesUnmarshalsHumanFriendlyStrings(t *testing.T) {
	var s SizeBytes
	node := &yaml.Node{Value: "64MB"}
	if err := s.UnmarshalYAML(node); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Int() != 64*1000*1000 {
		t.Fatalf("expected 64,000,000 bytes, got %d", s.Int())
	}
}

func TestSizeBytesUnmarshalsPlainInteger(t *testing.T) {
	var s SizeBytes
	node := &yaml.Node{Value: "1024"}
	if err := s.UnmarshalYAML(node); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Int() != 1024 {
		t.Fatalf("expected 1024, got %d", s.Int())
	}
}
