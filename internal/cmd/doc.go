// Package cmd provides the command-line interface implementation for fastdl.
//
// It uses the Cobra library for command structure and Fang for styling.
// Each command lives in its own file with a constructor that returns a
// *cobra.Command:
//   - root: command coordinator and entry point
//   - process: classify, walk and materialize input folders
//   - verify: check compressed artifacts in an output directory
//
// Flags are turned into a fastdl.Config here; nothing below this package
// reads flags or global state.
package cmd
