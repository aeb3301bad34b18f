package config

import "fmt"

// Color is an RGBA fill/stroke color, persisted as its four channel
// values (0-255, written in decimal) so the YAML stays human-diffable.
type Color struct {
	R, G, B, A uint8 `yaml:",flow"`
}

// Settings holds the diagram-wide defaults enumerated in the
// specification's Configuration section. Individual elements may
// override these through their own explicit fields; Settings only
// supplies what an element doesn't set itself.
type Settings struct {
	ShowActivities   bool   `yaml:"show_activities" json:"show_activities"`
	ShowLeaderLines  bool   `yaml:"show_leader_lines" json:"show_leader_lines"`
	CodeIndent       string `yaml:"code_indent" json:"code_indent"`
	NewLine          string `yaml:"new_line" json:"new_line"`
	DefaultFill      Color  `yaml:"default_fill" json:"default_fill"`
	DefaultStroke    Color  `yaml:"default_stroke" json:"default_stroke"`
	MinStateWidth    int    `yaml:"min_state_width" json:"min_state_width"`
	MinStateHeight   int    `yaml:"min_state_height" json:"min_state_height"`
	SlotStep         int    `yaml:"slot_step" json:"slot_step"`
	AlignmentTol     int    `yaml:"alignment_tolerance" json:"alignment_tolerance"`
	MinSeparation    int    `yaml:"min_separation" json:"min_separation"`
	StubLength       int    `yaml:"stub_length" json:"stub_length"`
	DoubleClickMS    int    `yaml:"double_click_ms" json:"double_click_ms"`
	DoubleClickDist  int    `yaml:"double_click_distance" json:"double_click_distance"`
}

// Default returns the specification's default Settings (§6).
func Default() Settings {
	return Settings{
		ShowActivities:  true,
		ShowLeaderLines: false,
		CodeIndent:      "    ",
		NewLine:         "\n",
		DefaultFill:     Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		DefaultStroke:   Color{R: 0x00, G: 0x00, B: 0x00, A: 0xff},
		MinStateWidth:   40,
		MinStateHeight:  30,
		SlotStep:        15,
		AlignmentTol:    20,
		MinSeparation:   20,
		StubLength:      10,
		DoubleClickMS:   500,
		DoubleClickDist: 10,
	}
}

// Validate range-checks every numeric field, returning the first violation
// found.
func (s *Settings) Validate() error {
	if s.MinStateWidth <= 0 {
		return fmt.Errorf("min_state_width must be positive, got %d", s.MinStateWidth)
	}
	if s.MinStateHeight <= 0 {
		return fmt.Errorf("min_state_height must be positive, got %d", s.MinStateHeight)
	}
	if s.SlotStep <= 0 {
		return fmt.Errorf("slot_step must be positive, got %d", s.SlotStep)
	}
	if s.AlignmentTol < 0 {
		return fmt.Errorf("alignment_tolerance must be non-negative, got %d", s.AlignmentTol)
	}
	if s.MinSeparation < 0 {
		return fmt.Errorf("min_separation must be non-negative, got %d", s.MinSeparation)
	}
	if s.StubLength <= 0 {
		return fmt.Errorf("stub_length must be positive, got %d", s.StubLength)
	}
	if s.DoubleClickMS <= 0 {
		return fmt.Errorf("double_click_ms must be positive, got %d", s.DoubleClickMS)
	}
	if s.DoubleClickDist <= 0 {
		return fmt.Errorf("double_click_distance must be positive, got %d", s.DoubleClickDist)
	}
	return nil
}
