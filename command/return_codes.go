// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package command

// Success indicates a successful command execution.
const Success int = 0

// The following error group is intended for issues within the command's execution.
const (
	// FlagParseError indicates that a command was unable to successfully parse the flags/arguments provided to it.
	FlagParseError int = iota + 16

	// ConfigError indicates that there was an error in the tracescrub configuration.
	ConfigError

	// InputError indicates that the raw trace input could not be read.
	InputError

	// ParseError indicates that the trace parser failed on the raw input.
	ParseError

	// OutputError indicates an error rendering or writing the redacted frames.
	OutputError
)
