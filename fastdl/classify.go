package fastdl

import (
	"fmt"
	"path/filepath"

	"github.com/dendrascience/fastdl/util"
	"github.com/rs/zerolog"
)

// Structure is the layout of an input folder.
type Structure int

const (
	StructureAddon Structure = iota + 1
	StructureGamemode
)

func (s Structure) String() string {
	switch s {
	case StructureAddon:
		return "addon"
	case StructureGamemode:
		return "gamemode"
	default:
		return "unknown"
	}
}

const (
	addonMarker      = "addon.json"
	gamemodeContents = "content"
)

// Classify decides whether folder is an addon (addon.json at its top) or a
// gamemode (content/ at its top) and returns the directory that holds the
// content categories.
func Classify(folder string, logger zerolog.Logger) (string, Structure, error) {
	ok, err := util.Exists(filepath.Join(folder, addonMarker))
	if err != nil {
		return "", 0, err
	}
	if ok {
		logger.Info().Str("folder", folder).Msg("detected addon structure")
		return folder, StructureAddon, nil
	}

	content := filepath.Join(folder, gamemodeContents)
	ok, err = util.IsDir(content)
	if err != nil {
		return "", 0, err
	}
	if ok {
		logger.Info().Str("folder", folder).Msg("detected gamemode structure")
		return content, StructureGamemode, nil
	}

	return "", 0, fmt.Errorf("%w: couldn't determine %s file structure", util.ErrStructureUnrecognized, folder)
}
