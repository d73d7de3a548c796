package service

import (
	"sync"

	"github.com/spf13/viper"
)

// Mode selects how a response is delivered back to the chat.
type Mode string

const (
	// ModeEdit edits the triggering message in place.
	ModeEdit Mode = "edit"
	// ModeReply sends one reply and edits it on later calls.
	ModeReply Mode = "reply"
	// ModeRepost sends a reply, deletes the trigger, then edits the repost.
	ModeRepost Mode = "repost"
)

// Settings is the runtime-mutable slice of the configuration: seeded from
// viper at construction, mutated only through its methods afterwards.
type Settings struct {
	mu      sync.RWMutex
	prefix  string
	mode    Mode
	redact  bool
	secrets []string
}

// NewSettings reads the bot configuration keys and collects the secret
// values redaction scrubs from outbound text.
func NewSettings() *Settings {
	viper.SetDefault("bot.command_prefix", "/")
	viper.SetDefault("bot.response_mode", string(ModeEdit))
	viper.SetDefault("bot.redact", true)

	var secrets []string
	secretKeys := []string{
		"telegram.bot_token",
		"telegram.api_id",
		"telegram.api_hash",
		"telegram.phone",
		"openrouter.api_key",
	}
	for _, key := range secretKeys {
		if v := viper.GetString(key); v != "" {
			secrets = append(secrets, v)
		}
	}

	return &Settings{
		prefix:  viper.GetString("bot.command_prefix"),
		mode:    Mode(viper.GetString("bot.response_mode")),
		redact:  viper.GetBool("bot.redact"),
		secrets: secrets,
	}
}

func (s *Settings) Prefix() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.prefix
}

func (s *Settings) SetPrefix(prefix string) {
	s.mu.Lock()
	s.prefix = prefix
	s.mu.Unlock()
}

func (s *Settings) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.mode
}

func (s *Settings) Redact() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.redact
}

// Secrets returns a copy of the configured secret values.
func (s *Settings) Secrets() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.secrets))
	copy(out, s.secrets)

	return out
}
