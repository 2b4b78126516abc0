/*
Package types defines the data model shared by the generator, the parser and
the collaborators around them.

# Overview

  - KeyBinding: one `bind "<key>" "<value>"` line in the generated script
  - Command: a console command template plus its positional parameters
  - GeneratedConfig: the sole input of one generation call
  - PreviousDocument: the persisted one-step history used for diffing

# Enabled Flag

Command.Enabled is a pointer so that "not specified" can be told apart from
"explicitly disabled". Defaults files written by hand usually omit the flag,
and those commands are emitted.

# File Formats

Every type carries json, yaml and toml tags. JSON matching is case-insensitive,
so defaults files that use PascalCase keys ("Key", "CommandBase") load as-is.
*/
package types
