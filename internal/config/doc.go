// Package config provides configuration structures and utilities for
// paperscan. It defines the verification options populated from CLI
// flags, the .paperscan preferences file, and its discovery rules.
package config
