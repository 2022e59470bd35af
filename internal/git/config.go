package git

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/config"
	format "github.com/go-git/go-git/v5/plumbing/format/config"
)

// ConfigScope selects which git config files are consulted.
type ConfigScope int

const (
	ScopeLocal ConfigScope = iota
	ScopeGlobal
)

// ConfigEntry is one key/value pair in git config.
type ConfigEntry struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

type configKey struct {
	section    string
	subsection string
	name       string
}

// parseConfigKey splits "section.key" or "section.sub.section.key".
func parseConfigKey(key string) (configKey, error) {
	first := strings.Index(key, ".")
	last := strings.LastIndex(key, ".")
	if first <= 0 || last == len(key)-1 {
		return configKey{}, fmt.Errorf("%w: %q (want section.key)", ErrInvalidConfigKey, key)
	}
	k := configKey{section: key[:first], name: key[last+1:]}
	if first != last {
		k.subsection = key[first+1 : last]
	}
	return k, nil
}

// rawConfigs returns the raw config layers for scope, lowest precedence first.
func (c *Client) rawConfigs(scope ConfigScope) ([]*format.Config, error) {
	local, err := c.repo.Config()
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if scope != ScopeGlobal {
		return []*format.Config{local.Raw}, nil
	}
	global, err := config.LoadConfig(config.GlobalScope)
	if err != nil {
		return nil, fmt.Errorf("failed to read global config: %w", err)
	}
	return []*format.Config{global.Raw, local.Raw}, nil
}

func lookupOption(raw *format.Config, k configKey) (string, bool) {
	if raw == nil || !raw.HasSection(k.section) {
		return "", false
	}
	s := raw.Section(k.section)
	if k.subsection == "" {
		if !s.HasOption(k.name) {
			return "", false
		}
		return s.Option(k.name), true
	}
	if !s.HasSubsection(k.subsection) {
		return "", false
	}
	ss := s.Subsection(k.subsection)
	if !ss.HasOption(k.name) {
		return "", false
	}
	return ss.Option(k.name), true
}

// ConfigGet returns the value of key. With ScopeGlobal, repository values
// take precedence over the user's global config.
func (c *Client) ConfigGet(key string, scope ConfigScope) (string, error) {
	k, err := parseConfigKey(key)
	if err != nil {
		return "", err
	}
	layers, err := c.rawConfigs(scope)
	if err != nil {
		return "", err
	}
	for i := len(layers) - 1; i >= 0; i-- {
		if v, ok := lookupOption(layers[i], k); ok {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrConfigKeyNotFound, key)
}

// ConfigSet writes key=value to the repository config.
func (c *Client) ConfigSet(key, value string) error {
	k, err := parseConfigKey(key)
	if err != nil {
		return err
	}
	return c.editRaw(func(raw *format.Config) {
		s := raw.Section(k.section)
		if k.subsection == "" {
			s.SetOption(k.name, value)
			return
		}
		s.Subsection(k.subsection).SetOption(k.name, value)
	})
}

// ConfigUnset removes key from the repository config.
func (c *Client) ConfigUnset(key string) error {
	if _, err := c.ConfigGet(key, ScopeLocal); err != nil {
		return err
	}
	k, _ := parseConfigKey(key)
	return c.editRaw(func(raw *format.Config) {
		s := raw.Section(k.section)
		if k.subsection == "" {
			s.RemoveOption(k.name)
			return
		}
		s.Subsection(k.subsection).RemoveOption(k.name)
	})
}

// editRaw applies fn to the raw config and re-parses it before saving, so
// typed fields (user, branches, remotes) pick up the edit instead of
// overwriting it on marshal.
func (c *Client) editRaw(fn func(raw *format.Config)) error {
	cfg, err := c.repo.Config()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	raw, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	parsed := format.New()
	if err := format.NewDecoder(bytes.NewReader(raw)).Decode(parsed); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	fn(parsed)

	var buf bytes.Buffer
	if err := format.NewEncoder(&buf).Encode(parsed); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	updated := config.NewConfig()
	if err := updated.Unmarshal(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if err := c.repo.SetConfig(updated); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	c.logger.Debug().Msg("updated repository config")
	return nil
}

// ConfigList returns every key/value pair, sorted by key. Repository values
// shadow global ones.
func (c *Client) ConfigList(scope ConfigScope) ([]ConfigEntry, error) {
	layers, err := c.rawConfigs(scope)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string)
	for _, raw := range layers {
		if raw == nil {
			continue
		}
		for _, s := range raw.Sections {
			for _, o := range s.Options {
				values[s.Name+"."+o.Key] = o.Value
			}
			for _, ss := range s.Subsections {
				for _, o := range ss.Options {
					values[s.Name+"."+ss.Name+"."+o.Key] = o.Value
				}
			}
		}
	}

	entries := make([]ConfigEntry, 0, len(values))
	for k, v := range values {
		entries = append(entries, ConfigEntry{Key: k, Value: v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}
