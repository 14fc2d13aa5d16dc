// Package fastdl prepares addon and gamemode content for FastDL hosting.
//
// A run has three stages per input folder:
//
//   - Classify finds the content root: the folder itself when it holds
//     addon.json, or its content/ directory for a gamemode.
//   - Walker enumerates the regular files below each content category
//     (materials, models, sound, maps, particles, resource) that exists.
//   - Materializer writes, for each file, a lowercase-named copy and a
//     bzip2-compressed copy into the output tree, skipping any artifact
//     that is already present.
//
// Processor ties the stages together and applies the per-folder failure
// policy. Verify re-reads an output tree and checks every compressed
// artifact against its uncompressed sibling.
//
// Note that the Materializer may write into the input tree: a source file
// whose path is not lowercase gets a lowercase copy next to it unless
// Config.RepairSourceCase is false.
package fastdl
