package config

import (
	"bytes"
	_ "embed"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed config.template.yaml
var template []byte

const generatedSecretLength int = 32

// GeneratedSecrets are the keys whose placeholders FillSecrets replaces with random values.
var GeneratedSecrets = []string{"jwt.secret", "app.sessionSecret"}

// Template returns the committed configuration template.
func Template() []byte {
	return bytes.Clone(template)
}

// FillSecrets replaces the placeholders of the generated secrets in a configuration document
// with random base64 encoded values read from random. Comments and key order are preserved and
// keys that no longer hold a placeholder are left alone.
func FillSecrets(document []byte, random io.Reader) ([]byte, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(document, &root); err != nil {
		return nil, fmt.Errorf("cannot parse the configuration document: %w", err)
	}
	for _, key := range GeneratedSecrets {
		node, err := findNode(&root, key)
		if err != nil {
			return nil, err
		}
		if !IsPlaceholder(node.Value) {
			continue
		}
		secret := make([]byte, generatedSecretLength)
		if _, err := io.ReadFull(random, secret); err != nil {
			return nil, err
		}
		node.Value = base64.StdEncoding.EncodeToString(secret)
		node.Style = yaml.DoubleQuotedStyle
	}
	var out bytes.Buffer
	encoder := yaml.NewEncoder(&out)
	encoder.SetIndent(2)
	if err := encoder.Encode(&root); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// findNode looks up the scalar at the dotted key in a yaml document.
func findNode(root *yaml.Node, key string) (*yaml.Node, error) {
	node := root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	for _, part := range strings.Split(key, ".") {
		if node.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("cannot find %s in the configuration document", key)
		}
		var next *yaml.Node
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == part {
				next = node.Content[i+1]
				break
			}
		}
		if next == nil {
			return nil, fmt.Errorf("cannot find %s in the configuration document", key)
		}
		node = next
	}
	if node.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("%s is not a scalar value in the configuration document", key)
	}
	return node, nil
}
