package config_test

import (
	"testing"

	"github.com/joemooney/jmt/pkg/config"
	"gopkg.in/yaml.v3"
)

func TestDefaultValidates(t *testing.T) {
	s := config.Default()
	if err := s.Validate(); err != nil {
		t.Fatalf("default settings must validate: %v", err)
	}
}

func TestValidateRejectsNonPositiveSlotStep(t *testing.T) {
	s := config.Default()
	s.SlotStep = 0
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for zero slot_step")
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	s := config.Default()
	data, err := yaml.Marshal(&s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var out config.Settings
	if err := yaml.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if out != s {
		t.Errorf("round trip mismatch: got %+v, want %+v", out, s)
	}
}
