// Package main provides the fastdl command-line interface.
//
// fastdl prepares Garry's Mod style addon and gamemode folders for FastDL,
// the convention where a game server's custom content is mirrored, with
// bzip2-compressed copies, onto an HTTP host that clients download from.
//
// The main binary supports these subcommands:
//   - process: Mirror content folders into a FastDL output directory
//   - verify: Check the compressed artifacts of an output directory
package main
