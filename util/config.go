package util

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const Name = "quill"
const ConfigFileName = "config.yaml"

//go:embed config_default.yaml
var embeddedConfig []byte

type AppConfig struct {
	Conf struct {
		Host      string
		HttpPort  int    `yaml:"httpPort"`
		Scheme    string `yaml:"scheme"`
		Domain    string `yaml:"domain"`
		NodeName  string `yaml:"nodeName"`
		DbPath    string `yaml:"dbPath"`
		JwtSecret string `yaml:"jwtSecret"`
	}
}

// BaseURL returns the absolute URL prefix of this node, without a trailing slash.
func (c *AppConfig) BaseURL() string {
	return fmt.Sprintf("%s://%s", c.Conf.Scheme, c.Conf.Domain)
}

// APIBase returns the absolute URL prefix of the API surface, without a trailing slash.
func (c *AppConfig) APIBase() string {
	return c.BaseURL() + "/api"
}

// IsOwnURL reports whether the given absolute URL points at this node.
func (c *AppConfig) IsOwnURL(rawURL string) bool {
	return rawURL == c.BaseURL() || strings.HasPrefix(rawURL, c.BaseURL()+"/")
}

func ReadConf() (*AppConfig, error) {

	c := &AppConfig{}

	// Try to resolve config file path (local first, then user dir)
	configPath := ResolveFilePath(ConfigFileName)

	var buf []byte
	var err error

	// Try to read from resolved path
	buf, err = os.ReadFile(configPath)
	if err != nil {
		// If file doesn't exist, use embedded config and create user config file
		log.Printf("Config file not found at %s, using embedded defaults", configPath)
		buf = embeddedConfig

		// Try to write default config to user config directory
		configDir, dirErr := GetConfigDir()
		if dirErr == nil {
			userConfigPath := configDir + "/" + ConfigFileName
			writeErr := os.WriteFile(userConfigPath, embeddedConfig, 0644)
			if writeErr != nil {
				log.Printf("Warning: could not write default config to %s: %v", userConfigPath, writeErr)
			} else {
				log.Printf("Created default config file at %s", userConfigPath)
			}
		}
	}

	err = yaml.Unmarshal(buf, c)
	if err != nil {
		return nil, fmt.Errorf("in config file: %w", err)
	}

	envHost := os.Getenv("QUILL_HOST")
	envHttpPort := os.Getenv("QUILL_HTTPPORT")
	envScheme := os.Getenv("QUILL_SCHEME")
	envDomain := os.Getenv("QUILL_DOMAIN")
	envNodeName := os.Getenv("QUILL_NODENAME")
	envDbPath := os.Getenv("QUILL_DBPATH")
	envJwtSecret := os.Getenv("QUILL_JWTSECRET")

	if envHost != "" {
		c.Conf.Host = envHost
	}

	if envHttpPort != "" {
		v, err := strconv.Atoi(envHttpPort)
		if err != nil {
			fmt.Println(err)
		}
		c.Conf.HttpPort = v
	}

	if envScheme != "" {
		c.Conf.Scheme = envScheme
	}

	if envDomain != "" {
		c.Conf.Domain = envDomain
	}

	if envNodeName != "" {
		c.Conf.NodeName = envNodeName
	}

	if envDbPath != "" {
		c.Conf.DbPath = envDbPath
	}

	if envJwtSecret != "" {
		c.Conf.JwtSecret = envJwtSecret
	}

	// Without a configured secret, sessions would be signable by anyone
	// who read the default config. Generate an ephemeral one instead;
	// tokens then stop surviving restarts until a secret is set.
	if c.Conf.JwtSecret == "" {
		c.Conf.JwtSecret = RandomString(32)
		log.Println("No jwtSecret configured, generated an ephemeral one")
	}

	return c, nil
}
