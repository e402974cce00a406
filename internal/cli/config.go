package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL    string
	PlayerID     string
	IdentityFile string
	Output       string

	// identities maps room code to the player id created or joined as
	identities map[string]string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:    getEnvOrDefault("WORDTIDE_SERVER", "http://localhost:8080"),
		PlayerID:     os.Getenv("WORDTIDE_PLAYER"),
		IdentityFile: getEnvOrDefault("WORDTIDE_IDENTITY_FILE", defaultIdentityFile()),
		Output:       "text",
		identities:   map[string]string{},
	}
}

// LoadIdentities loads the room-to-player mapping from the identity file
func (c *Config) LoadIdentities() error {
	data, err := os.ReadFile(c.IdentityFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No identity file is fine
		}
		return err
	}

	return json.Unmarshal(data, &c.identities)
}

// SaveIdentity remembers the player id used for a room
func (c *Config) SaveIdentity(roomID, playerID string) error {
	c.identities[roomID] = playerID

	dir := filepath.Dir(c.IdentityFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.Marshal(c.identities)
	if err != nil {
		return err
	}
	return os.WriteFile(c.IdentityFile, data, 0600)
}

// PlayerFor resolves the player id to act as for a room: the --player
// override wins, otherwise the saved identity from create/join.
func (c *Config) PlayerFor(roomID string) (string, error) {
	if c.PlayerID != "" {
		return c.PlayerID, nil
	}
	if id, ok := c.identities[roomID]; ok {
		return id, nil
	}
	return "", fmt.Errorf("no saved player for room %s; pass --player or join first", roomID)
}

func defaultIdentityFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wordtide/identity"
	}
	return filepath.Join(home, ".wordtide", "identity")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
