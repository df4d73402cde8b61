package scrub

import (
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// allowlistFile is the on-disk TOML shape:
//
//	[allowlist]
//	regexes = ["example-key-[0-9]+"]
type allowlistFile struct {
	Allowlist struct {
		Regexes []string `toml:"regexes"`
	} `toml:"allowlist"`
}

// loadAllowlist reads allowlist regexes from path. A missing file yields
// an empty allowlist.
func loadAllowlist(path string) ([]*regexp.Regexp, error) {
	if path == "" {
		return nil, nil
	}

	var file allowlistFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	return compileAllow(file.Allowlist.Regexes)
}
