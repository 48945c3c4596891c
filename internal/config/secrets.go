package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Secrets holds credentials kept out of the main config file.
type Secrets struct {
	WithoutBGAPIKey string `toml:"withoutbg_api_key"`
	SMTPSender      string `toml:"smtp_sender"`
	SMTPPassword    string `toml:"smtp_password"`
}

// LoadSecrets decodes a TOML secrets file. A missing file is not an
// error; every credential is optional and each consumer degrades on
// its own terms.
func LoadSecrets(path string) (Secrets, error) {
	var s Secrets
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, nil
	}
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return Secrets{}, fmt.Errorf("config: decode secrets %s: %w", path, err)
	}
	return s, nil
}
