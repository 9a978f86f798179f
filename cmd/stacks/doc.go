// Package main hosts the stacks CLI entrypoint and command graph.
//
// The root command keeps the classic interface: `stacks --stack` sorts the
// desktop into category folders and `stacks --unstack` reverses it. The
// subcommands expose the same operations alongside inspection helpers
// (plan, classify, folders, apps, check) and configuration scaffolding.
// Configuration resolution, desktop provider construction, and logging
// setup are centralized in commandContext so commands stay declarative.
package main
