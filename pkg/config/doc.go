// Package config defines the per-diagram Settings struct: the set of
// diagram-wide defaults recognised by §6 of the specification, with YAML
// marshalling and range-checked validation in the style of the teacher
// repository's dungeon.Config.
package config
