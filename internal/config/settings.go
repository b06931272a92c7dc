package config

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

type Settings = orderedmap.OrderedMap[string, any]

// NewSettings returns the configuration as an ordered tree keyed like the configuration file.
// Secrets are redacted and urls, sizes and durations are rendered as strings.
func NewSettings(c Config) *Settings {
	root := orderedmap.New[string, any]()
	walkSettings(reflect.ValueOf(c), "", func(key string, value reflect.Value) {
		parts := strings.Split(key, ".")
		node := root
		for _, part := range parts[:len(parts)-1] {
			child, ok := node.Get(part)
			if !ok {
				child = orderedmap.New[string, any]()
				node.Set(part, child)
			}
			node = child.(*Settings)
		}
		node.Set(parts[len(parts)-1], settingValue(value))
	})
	return root
}

func settingValue(value reflect.Value) any {
	if value.Type() == urlType {
		if value.IsNil() {
			return nil
		}
		return value.Interface().(*url.URL).String()
	}
	switch v := value.Interface().(type) {
	case RedactedString:
		return v.String()
	case ByteSize:
		return v.String()
	case time.Duration:
		return v.String()
	default:
		return v
	}
}

// SettingsYAML renders the settings of c as YAML, keeping the section order.
func SettingsYAML(c Config) ([]byte, error) {
	node, err := settingsNode(NewSettings(c))
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

func settingsNode(s *Settings) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for pair := s.Oldest(); pair != nil; pair = pair.Next() {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key}
		var value *yaml.Node
		if child, ok := pair.Value.(*Settings); ok {
			childNode, err := settingsNode(child)
			if err != nil {
				return nil, err
			}
			value = childNode
		} else {
			value = &yaml.Node{}
			if err := value.Encode(pair.Value); err != nil {
				return nil, fmt.Errorf("cannot encode setting %s: %w", pair.Key, err)
			}
		}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}
